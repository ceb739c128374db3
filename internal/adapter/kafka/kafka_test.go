package kafka

import (
	"testing"
	"time"

	"github.com/aeroops/diversion-engine/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestMapMessageToRawEvent(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("UA932"),
		Value:     []byte(`{"flight_id":"UA932"}`),
		Topic:     "diversion-requests",
		Partition: 2,
		Offset:    42,
		Time:      now,
		Headers: []kafkago.Header{
			{Key: "source", Value: []byte("flight-tracking")},
		},
	}

	raw := mapMessageToRawEvent(msg)

	assert.Equal(t, []byte("UA932"), raw.Key)
	assert.JSONEq(t, `{"flight_id":"UA932"}`, string(raw.Value))
	assert.Equal(t, "diversion-requests", raw.Topic)
	assert.Equal(t, 2, raw.Partition)
	assert.Equal(t, int64(42), raw.Offset)
	assert.Equal(t, now, raw.Timestamp)
	assert.Equal(t, "flight-tracking", raw.Headers["source"])
	assert.Nil(t, raw.Commit, "commit closure is attached during extraction, not mapping")
}

func TestMapOutputToMessage(t *testing.T) {
	event := domain.OutputEvent{
		Key:   []byte("UA932"),
		Value: []byte(`{"flight_id":"UA932"}`),
		Headers: map[string]string{
			"scenario_type": "engineFailure",
			"flight_id":     "UA932",
			"generated_at":  "2026-06-02T11:40:00Z",
		},
	}

	msg := mapOutputToMessage(event)

	assert.Equal(t, []byte("UA932"), msg.Key)
	assert.Equal(t, event.Value, msg.Value)

	// Sorted key order.
	assert.Len(t, msg.Headers, 3)
	assert.Equal(t, "flight_id", msg.Headers[0].Key)
	assert.Equal(t, []byte("UA932"), msg.Headers[0].Value)
	assert.Equal(t, "generated_at", msg.Headers[1].Key)
	assert.Equal(t, "scenario_type", msg.Headers[2].Key)
	assert.Equal(t, []byte("engineFailure"), msg.Headers[2].Value)
}

func TestMapOutputToMessage_NoHeaders(t *testing.T) {
	msg := mapOutputToMessage(domain.OutputEvent{Key: []byte("k"), Value: []byte("v")})
	assert.Empty(t, msg.Headers)
}
