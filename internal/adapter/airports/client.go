package airports

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/aeroops/diversion-engine/internal/domain"
)

// Client implements domain.AirportSource against the airport database HTTP
// API.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates an airport database client.
func NewClient(baseURL, token string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		logger:  logger,
	}
}

// NearbyCandidates returns candidate diversion airports within radiusNm of the
// position. An empty list with a nil error means no airport in range.
func (c *Client) NearbyCandidates(ctx context.Context, pos domain.Position, radiusNm float64) ([]domain.DiversionCandidate, error) {
	params := url.Values{
		"access_token": {c.token},
		"lat":          {strconv.FormatFloat(pos.Lat, 'f', 6, 64)},
		"lon":          {strconv.FormatFloat(pos.Lon, 'f', 6, 64)},
		"radius_nm":    {strconv.FormatFloat(radiusNm, 'f', 1, 64)},
	}
	fullURL := fmt.Sprintf("%s/v1/airports/near?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("airport lookup request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("airport API error: status %d: %s", resp.StatusCode, body)
	}

	var apiResp response
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	candidates := make([]domain.DiversionCandidate, 0, len(apiResp.Airports))
	for _, a := range apiResp.Airports {
		tier, err := parseMedicalTier(a.MedicalTier)
		if err != nil {
			c.logger.Warn("skipping airport with unknown medical tier",
				"ident", a.Ident,
				"medical_tier", a.MedicalTier,
			)
			continue
		}
		candidates = append(candidates, domain.DiversionCandidate{
			Ident:         a.Ident,
			Position:      domain.Position{Lat: a.Lat, Lon: a.Lon},
			RunwayLengthM: a.LongestRunwayM,
			MedicalTier:   tier,
			Open24h:       a.Open24h,
		})
	}
	return candidates, nil
}

func parseMedicalTier(s string) (domain.MedicalTier, error) {
	if s == "" {
		return domain.MedicalNone, nil
	}
	var tier domain.MedicalTier
	if err := tier.UnmarshalJSON([]byte(strconv.Quote(s))); err != nil {
		return domain.MedicalNone, err
	}
	return tier, nil
}

// Airport database API response types.

type response struct {
	Airports []airport `json:"airports"`
}

type airport struct {
	Ident          string  `json:"ident"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	LongestRunwayM float64 `json:"longest_runway_m"`
	MedicalTier    string  `json:"medical_tier"`
	Open24h        bool    `json:"open_24h"`
}
