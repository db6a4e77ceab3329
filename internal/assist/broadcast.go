package assist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	broadcastUseCase = "broadcast_alert"

	// MaxPushLength and MaxSMSLength are character limits of the channels.
	MaxPushLength = 150
	MaxSMSLength  = 160
)

const broadcastInstructions = `You coordinate emergency response for ` + OrgName + `, a charity.
Write alert messages for the new emergency donation campaign described in the input.

1. pushNotification: a short, urgent mobile push message of at most 150 characters.
2. emailSubject: an urgent, compelling subject line.
3. emailBody: a clear, persuasive plain-text email. Explain the need and the fundraising goal, include
   the admin's custom message, keep a serious and empathetic tone and sign off as "` + signOff + `".
4. smsMessage: a concise text message of at most 160 characters with a call to action.

Respond with a single JSON object and nothing else:
{"pushNotification": string, "emailSubject": string, "emailBody": string, "smsMessage": string}`

// BroadcastInput describes the campaign being announced.
type BroadcastInput struct {
	CampaignName string          `json:"campaignName"`
	Description  string          `json:"description"`
	Goal         decimal.Decimal `json:"goal"`
	Message      string          `json:"message"`
}

// BroadcastAlert is the generated copy for every alert channel.
type BroadcastAlert struct {
	PushNotification string `json:"pushNotification"`
	EmailSubject     string `json:"emailSubject"`
	EmailBody        string `json:"emailBody"`
	SMSMessage       string `json:"smsMessage"`
}

func (b BroadcastAlert) Validate() error {
	var errs []error
	for field, v := range map[string]string{
		"pushNotification": b.PushNotification,
		"emailSubject":     b.EmailSubject,
		"emailBody":        b.EmailBody,
		"smsMessage":       b.SMSMessage,
	} {
		if strings.TrimSpace(v) == "" {
			errs = append(errs, fmt.Errorf("%s is required", field))
		}
	}
	if n := utf8.RuneCountInString(b.PushNotification); n > MaxPushLength {
		errs = append(errs, fmt.Errorf("pushNotification has %d characters, max %d", n, MaxPushLength))
	}
	if n := utf8.RuneCountInString(b.SMSMessage); n > MaxSMSLength {
		errs = append(errs, fmt.Errorf("smsMessage has %d characters, max %d", n, MaxSMSLength))
	}
	return errors.Join(errs...)
}

// BroadcastAlert drafts the alert set for a campaign launch.
func (a *Assistant) BroadcastAlert(ctx context.Context, in BroadcastInput) (BroadcastAlert, error) {
	if strings.TrimSpace(in.CampaignName) == "" {
		return BroadcastAlert{}, fmt.Errorf("%w: campaign name is required", ErrInvalidInput)
	}
	if !in.Goal.IsPositive() {
		return BroadcastAlert{}, fmt.Errorf("%w: goal must be greater than zero", ErrInvalidInput)
	}
	return generate[BroadcastAlert](ctx, a.provider, broadcastUseCase, broadcastInstructions, map[string]any{
		"campaignName":  in.CampaignName,
		"description":   in.Description,
		"goal":          in.Goal.InexactFloat64(),
		"goalFormatted": FormatRupees(in.Goal),
		"message":       in.Message,
	}, 0.6)
}
