//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/aeroops/diversion-engine/internal/adapter/kafka"
	"github.com/aeroops/diversion-engine/internal/config"
	"github.com/aeroops/diversion-engine/internal/domain"
	"github.com/aeroops/diversion-engine/internal/observability"
	"github.com/aeroops/diversion-engine/internal/pipeline"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSourceTopic = "test-source"
	testSinkTopic   = "test-sink"
)

// briefMessage holds a deserialized decision brief read from the sink topic.
type briefMessage struct {
	Brief   domain.DecisionBrief
	Key     string
	Headers map[string]string
}

// readBrief reads a single message from the sink consumer and deserializes it.
func readBrief(ctx context.Context, t *testing.T, consumer *kafkago.Reader) briefMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from sink topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var brief domain.DecisionBrief
	require.NoError(t, json.Unmarshal(msg.Value, &brief), "unmarshal sink message")

	return briefMessage{
		Brief:   brief,
		Key:     string(msg.Key),
		Headers: headers,
	}
}

// newTestTransformer wires a transformer over the default engine with no
// airport source; fixture requests carry their own candidates.
func newTestTransformer() *pipeline.BriefTransformer {
	engine := domain.NewEngine(domain.DefaultCatalog(), domain.DefaultPolicy(), discardLogger())
	return pipeline.NewTransformer(engine, nil, 0, discardLogger(), observability.NewMetricsForTesting())
}

// TestKafkaReaderWriter verifies the adapter layer: kafka.Reader
// (BatchExtractor) and kafka.Writer (BatchLoader) correctly round-trip a
// request through Kafka.
func TestKafkaReaderWriter(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)

	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)

	cfg := &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaSourceTopic:   testSourceTopic,
		KafkaSinkTopic:     testSinkTopic,
		KafkaGroupID:       fmt.Sprintf("test-reader-%d", time.Now().UnixNano()),
		BatchFlushInterval: 5 * time.Second,
	}

	// Publish one request to the source topic.
	requests := loadMockRequests(t)
	request := requests[0] // UA932, engine failure over the mid-Atlantic
	payload, err := json.Marshal(request)
	require.NoError(t, err)

	producer := &kafkago.Writer{
		Addr:  kafkago.TCP(broker),
		Topic: testSourceTopic,
	}
	t.Cleanup(func() { _ = producer.Close() })

	require.NoError(t, producer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(request.FlightID),
		Value: payload,
	}))

	// Extract via kafka.Reader.
	// Retry because the consumer group may need time to rebalance before
	// partitions are assigned and messages become available.
	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	var batch []domain.RawEvent
	for {
		var err error
		batch, err = reader.ExtractBatch(ctx, 1)
		require.NoError(t, err)
		if len(batch) > 0 {
			break
		}
		if ctx.Err() != nil {
			t.Fatal("timed out waiting for message from source topic")
		}
	}
	require.Len(t, batch, 1)
	raw := batch[0]
	assert.Equal(t, []byte(request.FlightID), raw.Key)
	assert.Equal(t, payload, raw.Value)
	assert.Equal(t, testSourceTopic, raw.Topic)
	require.NotNil(t, raw.Commit, "commit callback should be set")

	// Commit the offset.
	require.NoError(t, raw.Commit(ctx))

	// Transform the raw event into a decision brief.
	transformer := newTestTransformer()
	out, err := transformer.Transform(ctx, raw)
	require.NoError(t, err)

	// Load via kafka.Writer.
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	require.NoError(t, writer.LoadBatch(ctx, []domain.OutputEvent{out}))

	// Read from the sink topic and verify headers + value.
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	bm := readBrief(ctx, t, consumer)
	assert.Equal(t, request.FlightID, bm.Key)
	assert.Equal(t, request.FlightID, bm.Headers["flight_id"])
	assert.Equal(t, request.ScenarioType, bm.Headers["scenario_type"])
	_, err = time.Parse(time.RFC3339, bm.Headers["generated_at"])
	assert.NoError(t, err, "generated_at should be valid RFC3339")

	assert.Equal(t, request.FlightID, bm.Brief.FlightID)
	assert.Equal(t, request.Route, bm.Brief.Route)
	assert.Equal(t, request.AircraftType, bm.Brief.Assessment.AircraftType)
	assert.False(t, bm.Brief.Assessment.SpecFallback)
	assert.Len(t, bm.Brief.Assessment.Evaluations, len(request.Candidates))
	assert.NotEmpty(t, bm.Brief.Assessment.Ranked, "mid-Atlantic candidates should be feasible")
}

// TestPipelineEndToEnd wires the full pipeline (Reader → Transformer → Writer)
// with real Kafka and verifies that every fixture request produces a brief.
func TestPipelineEndToEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)

	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)

	cfg := &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaSourceTopic:   testSourceTopic,
		KafkaSinkTopic:     testSinkTopic,
		KafkaGroupID:       fmt.Sprintf("test-pipeline-%d", time.Now().UnixNano()),
		BatchFlushInterval: 5 * time.Second,
	}

	// Publish all fixture requests to the source topic.
	requests := loadMockRequests(t)

	producer := &kafkago.Writer{
		Addr:  kafkago.TCP(broker),
		Topic: testSourceTopic,
	}
	t.Cleanup(func() { _ = producer.Close() })

	msgs := make([]kafkago.Message, 0, len(requests))
	for _, req := range requests {
		payload, err := json.Marshal(req)
		require.NoError(t, err)
		msgs = append(msgs, kafkago.Message{
			Key:   []byte(req.FlightID),
			Value: payload,
		})
	}
	require.NoError(t, producer.WriteMessages(ctx, msgs...))

	// Wire up the pipeline.
	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	transformer := newTestTransformer()

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	metrics := observability.NewMetricsForTesting()
	p := pipeline.New(reader, transformer, writer, discardLogger(), metrics, 50)

	// Run the pipeline in a goroutine.
	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	// Read all briefs from the sink topic.
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-sink-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	received := make(map[string]briefMessage, len(requests))
	for len(received) < len(requests) {
		bm := readBrief(ctx, t, consumer)
		received[bm.Brief.FlightID] = bm
	}

	pipelineCancel()
	require.NoError(t, <-errCh)

	require.Len(t, received, len(requests))
	for _, req := range requests {
		bm, ok := received[req.FlightID]
		require.True(t, ok, "missing brief for %s", req.FlightID)

		// Every message must carry flight_id, scenario_type, and generated_at
		// headers.
		assert.Equal(t, req.FlightID, bm.Headers["flight_id"])
		assert.Equal(t, req.ScenarioType, bm.Headers["scenario_type"])
		_, err := time.Parse(time.RFC3339, bm.Headers["generated_at"])
		assert.NoError(t, err, "invalid generated_at format for %s", req.FlightID)

		// Fixture requests use only known aircraft and scenario types.
		assert.False(t, bm.Brief.Assessment.SpecFallback, "%s spec fallback", req.FlightID)
		assert.False(t, bm.Brief.Assessment.ScenarioFallback, "%s scenario fallback", req.FlightID)
		assert.Len(t, bm.Brief.Assessment.Evaluations, len(req.Candidates))

		assert.GreaterOrEqual(t, bm.Brief.Risk.Probability, 0.0)
		assert.LessOrEqual(t, bm.Brief.Risk.Probability, 1.0)
		assert.NotEmpty(t, bm.Brief.Risk.RecommendedActions)
		assert.False(t, bm.Brief.GeneratedAt.IsZero())
	}

	// Spot-check the engine-failure brief: B777 over the mid-Atlantic drifts
	// down to 25000 ft at 440 kt with every candidate reachable.
	ua932 := received["UA932"].Brief
	assert.Equal(t, "KJFK-EGLL", ua932.Route)
	assert.Equal(t, domain.FamilyWideBody, ua932.Assessment.Family)
	assert.Equal(t, 440.0, ua932.Assessment.Performance.SpeedKt)
	assert.Equal(t, 25000.0, ua932.Assessment.Performance.AltitudeFt)
	assert.Len(t, ua932.Assessment.Ranked, 3)
	assert.False(t, ua932.Risk.FallbackUsed, "KJFK-EGLL is a known route")

	// Spot-check the medical-emergency brief: performance stays nominal and
	// the short basic-tier strip never wins the ranking.
	aa2411 := received["AA2411"].Brief
	assert.Equal(t, 453.0, aa2411.Assessment.Performance.SpeedKt)
	require.NotEmpty(t, aa2411.Assessment.Ranked)
	assert.NotEqual(t, "KASE", aa2411.Assessment.Ranked[0].Ident)
}

// TestPipelineTransformError verifies that an invalid message (poison pill) is
// skipped and the pipeline continues processing valid messages.
func TestPipelineTransformError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)

	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)

	cfg := &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaSourceTopic:   testSourceTopic,
		KafkaSinkTopic:     testSinkTopic,
		KafkaGroupID:       fmt.Sprintf("test-poison-%d", time.Now().UnixNano()),
		BatchFlushInterval: 5 * time.Second,
	}

	// Publish: invalid JSON, then a valid request.
	requests := loadMockRequests(t)
	validPayload, err := json.Marshal(requests[0])
	require.NoError(t, err)

	producer := &kafkago.Writer{
		Addr:  kafkago.TCP(broker),
		Topic: testSourceTopic,
	}
	t.Cleanup(func() { _ = producer.Close() })

	require.NoError(t, producer.WriteMessages(ctx,
		kafkago.Message{Key: []byte("bad"), Value: []byte("not-json{{{")},
		kafkago.Message{Key: []byte(requests[0].FlightID), Value: validPayload},
	))

	// Wire up the pipeline.
	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	transformer := newTestTransformer()

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	metrics := observability.NewMetricsForTesting()
	p := pipeline.New(reader, transformer, writer, discardLogger(), metrics, 50)

	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	// Only the valid message should appear on the sink topic.
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-sink-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	bm := readBrief(ctx, t, consumer)
	assert.Equal(t, requests[0].FlightID, bm.Brief.FlightID)

	// Verify no second message arrives (the poison pill was skipped).
	readCtx, readCancel := context.WithTimeout(ctx, 5*time.Second)
	_, err = consumer.ReadMessage(readCtx)
	readCancel()
	assert.Error(t, err, "expected no second message on sink topic")

	pipelineCancel()
	require.NoError(t, <-errCh)
}
