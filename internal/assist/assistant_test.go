package assist

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/bairooha/donordesk/internal/genai"
)

func TestFormatRupees(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"500", "₹500"},
		{"5000", "₹5,000"},
		{"250.5", "₹250.50"},
	}
	for _, tt := range tests {
		if got := FormatRupees(decimal.RequireFromString(tt.amount)); got != tt.want {
			t.Errorf("FormatRupees(%s) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestThankYouEmail(t *testing.T) {
	a := NewAssistant(fakeProvider{generate: func(_ context.Context, req genai.Request) (string, error) {
		fields := req.Input.GetFields()
		if fields["totalFormatted"].GetStringValue() != "₹5,000" {
			t.Errorf("totalFormatted = %q", fields["totalFormatted"].GetStringValue())
		}
		if fields["donationCount"].GetNumberValue() != 3 {
			t.Errorf("donationCount = %v", fields["donationCount"].GetNumberValue())
		}
		return `{"emailSubject":"Thank you, Ravi","emailBody":"Dear Ravi,\n...\nThe Bairooha Foundation Team"}`, nil
	}})

	email, err := a.ThankYouEmail(context.Background(), ThankYouInput{
		DonorName: "Ravi Kumar", TotalDonated: decimal.NewFromInt(5000), DonationCount: 3,
	})
	if err != nil {
		t.Fatalf("ThankYouEmail returned error: %v", err)
	}
	if email.EmailSubject != "Thank you, Ravi" {
		t.Errorf("subject = %q", email.EmailSubject)
	}

	if _, err := a.ThankYouEmail(context.Background(), ThankYouInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestThankYouEmailSurfacesFailures(t *testing.T) {
	a := NewAssistant(respond(`{"emailSubject":"Hi"}`))
	_, err := a.ThankYouEmail(context.Background(), ThankYouInput{DonorName: "A", TotalDonated: decimal.NewFromInt(1), DonationCount: 1})
	if !errors.Is(err, genai.ErrInvalidOutput) {
		t.Errorf("expected ErrInvalidOutput, got %v", err)
	}

	a = NewAssistant(genai.Disabled{})
	_, err = a.ThankYouEmail(context.Background(), ThankYouInput{DonorName: "A", TotalDonated: decimal.NewFromInt(1), DonationCount: 1})
	if !errors.Is(err, genai.ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestBroadcastAlert(t *testing.T) {
	input := BroadcastInput{
		CampaignName: "Flood Relief",
		Description:  "Families displaced by floods need food and shelter.",
		Goal:         decimal.NewFromInt(100000),
		Message:      "Every rupee counts.",
	}

	t.Run("valid alert set", func(t *testing.T) {
		a := NewAssistant(respond(`{"pushNotification":"Flood relief: give now","emailSubject":"Urgent","emailBody":"Body","smsMessage":"Donate now"}`))
		alert, err := a.BroadcastAlert(context.Background(), input)
		if err != nil {
			t.Fatalf("BroadcastAlert returned error: %v", err)
		}
		if alert.SMSMessage != "Donate now" {
			t.Errorf("sms = %q", alert.SMSMessage)
		}
	})

	t.Run("overlong sms is rejected", func(t *testing.T) {
		sms := strings.Repeat("x", MaxSMSLength+1)
		a := NewAssistant(respond(`{"pushNotification":"p","emailSubject":"s","emailBody":"b","smsMessage":"` + sms + `"}`))
		if _, err := a.BroadcastAlert(context.Background(), input); !errors.Is(err, genai.ErrInvalidOutput) {
			t.Errorf("expected ErrInvalidOutput, got %v", err)
		}
	})

	t.Run("non-positive goal is rejected before calling the provider", func(t *testing.T) {
		a := NewAssistant(fakeProvider{generate: func(context.Context, genai.Request) (string, error) {
			t.Error("provider should not be called")
			return "", nil
		}})
		bad := input
		bad.Goal = decimal.Zero
		if _, err := a.BroadcastAlert(context.Background(), bad); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestChat(t *testing.T) {
	a := NewAssistant(fakeProvider{generate: func(_ context.Context, req genai.Request) (string, error) {
		history := req.Input.GetFields()["history"].GetListValue().GetValues()
		if len(history) != 2 {
			t.Errorf("history length = %d, want 2", len(history))
		}
		return `{"response":"You can add a payment from the Payments page."}`, nil
	}})

	reply, err := a.Chat(context.Background(), ChatInput{
		History: []ChatMessage{
			{Role: RoleUser, Content: "Hi"},
			{Role: RoleModel, Content: "Hello! How can I help?"},
		},
		Message: "How do I record a manual donation?",
	})
	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if !strings.Contains(reply.Response, "Payments") {
		t.Errorf("response = %q", reply.Response)
	}

	_, err = a.Chat(context.Background(), ChatInput{History: []ChatMessage{{Role: "system", Content: "x"}}, Message: "hi"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for unknown role, got %v", err)
	}
}
