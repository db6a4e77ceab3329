package assist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const thankYouUseCase = "thank_you_email"

const thankYouInstructions = `You are the director of ` + OrgName + `, a charity.
Write a personal thank-you email to the donor described in the input.

- The subject line should be appreciative.
- The body should thank the donor for their specific contributions (use the formatted total and the
  number of donations), describe the impact their support makes, and stay professional yet warm.
- Sign off as "` + signOff + `".
- Write the body as plain text, not Markdown.

Respond with a single JSON object and nothing else:
{"emailSubject": string, "emailBody": string}`

// ThankYouInput describes the donor being thanked.
type ThankYouInput struct {
	DonorName     string          `json:"donorName"`
	TotalDonated  decimal.Decimal `json:"totalDonated"`
	DonationCount int             `json:"donationCount"`
}

// Email is a generated subject and plain-text body.
type Email struct {
	EmailSubject string `json:"emailSubject"`
	EmailBody    string `json:"emailBody"`
}

func (e Email) Validate() error {
	if strings.TrimSpace(e.EmailSubject) == "" {
		return errors.New("emailSubject is required")
	}
	if strings.TrimSpace(e.EmailBody) == "" {
		return errors.New("emailBody is required")
	}
	return nil
}

// ThankYouEmail drafts a thank-you email for a donor.
func (a *Assistant) ThankYouEmail(ctx context.Context, in ThankYouInput) (Email, error) {
	if strings.TrimSpace(in.DonorName) == "" {
		return Email{}, fmt.Errorf("%w: donor name is required", ErrInvalidInput)
	}
	if in.DonationCount < 0 || in.TotalDonated.IsNegative() {
		return Email{}, fmt.Errorf("%w: totals must not be negative", ErrInvalidInput)
	}
	return generate[Email](ctx, a.provider, thankYouUseCase, thankYouInstructions, map[string]any{
		"donorName":      in.DonorName,
		"totalDonated":   in.TotalDonated.InexactFloat64(),
		"totalFormatted": FormatRupees(in.TotalDonated),
		"donationCount":  in.DonationCount,
	}, 0.7)
}
