package redis

import (
	"context"
	"encoding/json"
	"time"

	"DBsentinel-Gateway/internal/app/ds"

	"github.com/sirupsen/logrus"
)

const summaryKey = "data:summary"

// GetSummary возвращает сохранённую статистику, если она ещё не устарела
func (c *Client) GetSummary(ctx context.Context) (*ds.SummaryResponse, bool) {
	raw, err := c.get(ctx, summaryKey)
	if err != nil {
		if !IsNil(err) {
			logrus.Warnf("failed to read summary cache: %v", err)
		}
		return nil, false
	}

	var summary ds.SummaryResponse
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		logrus.Warnf("failed to decode summary cache: %v", err)
		return nil, false
	}
	return &summary, true
}

// SaveSummary сохраняет статистику на ttl
func (c *Client) SaveSummary(ctx context.Context, summary *ds.SummaryResponse, ttl time.Duration) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.put(ctx, summaryKey, raw, ttl)
}
