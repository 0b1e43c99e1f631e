package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/minsuk/argos/internal/contracts"
	"github.com/minsuk/argos/pkg/httputil"
	"github.com/minsuk/argos/pkg/logger"
)

// LogNotifier writes the summary to the structured log. Used when no
// webhook is configured.
type LogNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier creates a log-only notifier
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: log}
}

// Notify logs the summary event
func (n *LogNotifier) Notify(ctx context.Context, event contracts.SummaryEvent) error {
	n.logger.WithFields(map[string]interface{}{
		"strategy":   event.Strategy,
		"date":       event.Date.Format("2006-01-02"),
		"picks":      event.PickCount,
		"mean_score": event.MeanScore,
		"top_picks":  strings.Join(event.TopPicks, ","),
	}).Info("Research run completed")
	return nil
}

// WebhookNotifier posts the summary event as JSON to a configured URL.
// Delivery failures are reported to the caller but must never abort the
// run that produced the event.
type WebhookNotifier struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	url        string
}

// NewWebhookNotifier creates a webhook notifier
func NewWebhookNotifier(url string, httpClient *httputil.Client, log *logger.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		httpClient: httpClient,
		logger:     log,
		url:        url,
	}
}

// Notify delivers the event to the webhook
func (n *WebhookNotifier) Notify(ctx context.Context, event contracts.SummaryEvent) error {
	resp, err := n.httpClient.PostJSON(ctx, n.url, event)
	if err != nil {
		return fmt.Errorf("webhook delivery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook delivery failed: status %d", resp.StatusCode)
	}

	n.logger.WithFields(map[string]interface{}{
		"strategy": event.Strategy,
		"picks":    event.PickCount,
	}).Debug("Delivered summary webhook")

	return nil
}
