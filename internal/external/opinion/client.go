package opinion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/minsuk/argos/internal/contracts"
	"github.com/minsuk/argos/pkg/config"
	"github.com/minsuk/argos/pkg/httputil"
	"github.com/minsuk/argos/pkg/logger"
)

// Client calls the external analysis service for a structured opinion.
// All opinion requests go through this client, which paces them locally
// on top of the shared Redis limiter so a burst of symbols cannot
// hammer the service.
type Client struct {
	httpClient *httputil.Client
	limiter    *rate.Limiter
	logger     *logger.Logger
	apiKey     string
	baseURL    string
	enabled    bool
}

// analyzeRequest is the payload sent to the analysis service
type analyzeRequest struct {
	Symbol        string   `json:"symbol"`
	Sector        string   `json:"sector,omitempty"`
	PER           *float64 `json:"per,omitempty"`
	ROE           *float64 `json:"roe,omitempty"`
	RevenueGrowth *float64 `json:"revenue_growth,omitempty"`
	DebtRatio     *float64 `json:"debt_ratio,omitempty"`
	Return1M      *float64 `json:"return_1m,omitempty"`
	Headlines     []string `json:"headlines,omitempty"`
}

// analyzeResponse mirrors the service's reply schema
type analyzeResponse struct {
	OverallScore  float64  `json:"overall_score"`
	Strengths     []string `json:"strengths"`
	Risks         []string `json:"risks"`
	AllocationPct float64  `json:"suggested_allocation_pct"`
}

// NewClient creates an opinion service client
func NewClient(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(5), 1),
		logger:     log,
		apiKey:     cfg.Opinion.APIKey,
		baseURL:    cfg.Opinion.BaseURL,
		enabled:    cfg.Opinion.Enabled,
	}
}

// Enabled reports whether the service is configured for use
func (c *Client) Enabled() bool {
	return c.enabled && c.baseURL != ""
}

// Analyze requests an opinion for one snapshot. A transport or service
// failure comes back as ExternalAnalysisError; a reply that does not
// match the schema comes back as ValidationError. Both degrade the
// caller to the fallback profile.
func (c *Client) Analyze(ctx context.Context, metrics *contracts.SymbolMetrics) (*contracts.AnalystOpinion, error) {
	symbol := metrics.Symbol

	if !c.Enabled() {
		return nil, &contracts.ExternalAnalysisError{
			Symbol: symbol,
			Cause:  fmt.Errorf("opinion service disabled"),
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &contracts.ExternalAnalysisError{Symbol: symbol, Cause: err}
	}

	headlines := make([]string, 0, len(metrics.Headlines))
	for _, item := range metrics.Headlines {
		headlines = append(headlines, item.Headline)
	}

	payload := analyzeRequest{
		Symbol:        symbol,
		Sector:        metrics.Sector,
		PER:           metrics.PER,
		ROE:           metrics.ROE,
		RevenueGrowth: metrics.RevenueGrowth,
		DebtRatio:     metrics.DebtRatio,
		Return1M:      metrics.Return1M,
		Headlines:     headlines,
	}

	endpoint := fmt.Sprintf("%s/v1/analyze?api_key=%s", c.baseURL, url.QueryEscape(c.apiKey))

	resp, err := c.httpClient.PostJSON(ctx, endpoint, payload)
	if err != nil {
		return nil, &contracts.ExternalAnalysisError{Symbol: symbol, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, &contracts.ExternalAnalysisError{
			Symbol: symbol,
			Cause:  fmt.Errorf("analysis service returned status %d", resp.StatusCode),
		}
	}

	var reply analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, &contracts.ValidationError{
			Symbol: symbol,
			Detail: fmt.Sprintf("malformed response body: %v", err),
		}
	}

	if err := validate(&reply); err != nil {
		return nil, &contracts.ValidationError{Symbol: symbol, Detail: err.Error()}
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"score":  reply.OverallScore,
	}).Debug("Received analyst opinion")

	return &contracts.AnalystOpinion{
		OverallScore:  reply.OverallScore,
		Strengths:     reply.Strengths,
		Risks:         reply.Risks,
		AllocationPct: reply.AllocationPct,
	}, nil
}

// validate checks the reply against the fixed schema bounds
func validate(r *analyzeResponse) error {
	if r.OverallScore < 0 || r.OverallScore > 100 {
		return fmt.Errorf("overall_score %.2f out of range [0, 100]", r.OverallScore)
	}
	if r.AllocationPct < 0 || r.AllocationPct > 100 {
		return fmt.Errorf("suggested_allocation_pct %.2f out of range [0, 100]", r.AllocationPct)
	}
	return nil
}
