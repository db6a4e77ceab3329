// Package notify delivers generated broadcast alerts to downstream channels.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// Alert is the message emitted when an emergency campaign launches.
type Alert struct {
	CampaignID       string    `json:"campaignId"`
	CampaignName     string    `json:"campaignName"`
	ProjectID        string    `json:"projectId"`
	PushNotification string    `json:"pushNotification"`
	EmailSubject     string    `json:"emailSubject"`
	EmailBody        string    `json:"emailBody"`
	SMSMessage       string    `json:"smsMessage"`
	LaunchedAt       time.Time `json:"launchedAt"`
}

// ToJSON encodes the alert for the wire.
func (a Alert) ToJSON() ([]byte, error) {
	return json.Marshal(a)
}

// AlertFromJSON decodes an alert received from the broker.
func AlertFromJSON(data []byte) (*Alert, error) {
	var a Alert
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("unmarshal alert: %w", err)
	}
	return &a, nil
}

// Publisher hands an alert to whatever delivers it.
type Publisher interface {
	PublishAlert(ctx context.Context, alert Alert) error
	Close() error
}

// LogPublisher only logs alerts. It is used when no broker is configured.
type LogPublisher struct{}

func (LogPublisher) PublishAlert(ctx context.Context, alert Alert) error {
	slog.InfoContext(ctx, "Broadcast alert ready",
		"campaign_id", alert.CampaignID,
		"campaign", alert.CampaignName,
		"push", alert.PushNotification,
		"sms", alert.SMSMessage)
	return nil
}

func (LogPublisher) Close() error { return nil }
