package counter

import (
	"context"
	"strconv"

	"github.com/confeitapro/confeitapro/internal/pkg/cache"
)

const (
	webhookReceivedKey = "billing:counters:webhook:received"
	webhookFailedKey   = "billing:counters:webhook:failed"
	webhookRejectedKey = "billing:counters:webhook:rejected"
)

// AddWebhookReceived increments the per-type counter for an accepted
// webhook delivery in Redis.
func AddWebhookReceived(eventType string) error {
	ctx := context.Background()
	return cache.GetClient().HIncrBy(ctx, webhookReceivedKey, eventType, 1).Err()
}

// AddWebhookFailed increments the per-type counter for a delivery whose
// handler errored and was answered with 5xx.
func AddWebhookFailed(eventType string) error {
	ctx := context.Background()
	return cache.GetClient().HIncrBy(ctx, webhookFailedKey, eventType, 1).Err()
}

// AddWebhookRejected increments the counter for deliveries that failed
// signature verification.
func AddWebhookRejected() error {
	ctx := context.Background()
	return cache.GetClient().HIncrBy(ctx, webhookRejectedKey, "invalid_signature", 1).Err()
}

// WebhookCounts reads the received counters, mainly for the metrics surface
// and tests.
func WebhookCounts() (map[string]int64, error) {
	ctx := context.Background()
	data, err := cache.GetClient().HGetAll(ctx, webhookReceivedKey).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(data))
	for k, v := range data {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		out[k] = n
	}
	return out, nil
}
