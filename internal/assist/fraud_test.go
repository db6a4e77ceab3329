package assist

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bairooha/donordesk/internal/genai"
	"github.com/bairooha/donordesk/internal/metrics"
	"github.com/bairooha/donordesk/internal/models"
)

// fakeProvider answers with generate, or errors when it is nil.
type fakeProvider struct {
	generate func(context.Context, genai.Request) (string, error)
}

func (f fakeProvider) Generate(ctx context.Context, req genai.Request) (string, error) {
	if f.generate != nil {
		return f.generate(ctx, req)
	}
	return "", errors.New("generate not implemented")
}

func respond(text string) fakeProvider {
	return fakeProvider{generate: func(context.Context, genai.Request) (string, error) { return text, nil }}
}

func payment(donor string, amount int64, date string, mode models.TransactionMode) models.Transaction {
	return models.Transaction{
		ID:        donor + date + string(mode),
		DonorName: donor,
		Amount:    decimal.NewFromInt(amount),
		Date:      models.MustParseDate(date),
		Mode:      mode,
	}
}

func TestAssessDonor(t *testing.T) {
	history := []models.Transaction{
		payment("Sandeep Kumar", 1, "2024-07-22", models.ModeOnline),
		payment("Sandeep Kumar", 500, "2024-07-22", models.ModeRefund),
	}

	tests := []struct {
		name     string
		provider genai.Provider
		want     models.FraudVerdict
	}{
		{
			name:     "suspicious verdict",
			provider: respond(`{"isSuspicious":true,"reason":"Tiny test payments followed by a refund."}`),
			want:     models.FraudVerdict{IsSuspicious: true, Reason: "Tiny test payments followed by a refund."},
		},
		{
			name:     "clear verdict in a code fence",
			provider: respond("```json\n{\"isSuspicious\":false,\"reason\":\"No suspicious activity detected.\"}\n```"),
			want:     models.FraudVerdict{IsSuspicious: false, Reason: ClearReason},
		},
		{
			name:     "provider error falls back",
			provider: fakeProvider{},
			want:     Unavailable(),
		},
		{
			name:     "missing field falls back",
			provider: respond(`{"reason":"looks fine"}`),
			want:     Unavailable(),
		},
		{
			name:     "unparseable output falls back",
			provider: respond(`I think this donor is fine.`),
			want:     Unavailable(),
		},
		{
			name:     "unconfigured provider falls back",
			provider: genai.Disabled{},
			want:     Unavailable(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewFraudAdapter(tt.provider, WithFraudMetrics(metrics.NewUnregistered()))
			got := a.AssessDonor(context.Background(), "Sandeep Kumar", history)
			if got != tt.want {
				t.Errorf("AssessDonor = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAssessDonorSendsRefunds(t *testing.T) {
	var prompt string
	a := NewFraudAdapter(fakeProvider{generate: func(_ context.Context, req genai.Request) (string, error) {
		fields := req.Input.GetFields()
		if fields["donorName"].GetStringValue() != "Sandeep Kumar" {
			t.Errorf("donorName = %q", fields["donorName"].GetStringValue())
		}
		txs := fields["transactions"].GetListValue().GetValues()
		if len(txs) != 2 {
			t.Errorf("expected 2 transactions including the refund, got %d", len(txs))
		}
		if mode := txs[1].GetStructValue().GetFields()["mode"].GetStringValue(); mode != "Refund" {
			t.Errorf("second transaction mode = %q, want Refund", mode)
		}
		prompt = req.Instructions
		return `{"isSuspicious":false,"reason":"No suspicious activity detected."}`, nil
	}})

	a.AssessDonor(context.Background(), "Sandeep Kumar", []models.Transaction{
		payment("Sandeep Kumar", 1, "2024-07-22", models.ModeOnline),
		payment("Sandeep Kumar", 500, "2024-07-22", models.ModeRefund),
	})
	if !strings.Contains(prompt, "Refund") || !strings.Contains(prompt, OrgName) {
		t.Errorf("instructions missing red flags: %q", prompt)
	}
}

func TestAssessDonorTimeout(t *testing.T) {
	// The provider ignores its context entirely.
	release := make(chan struct{})
	defer close(release)
	slow := fakeProvider{generate: func(context.Context, genai.Request) (string, error) {
		<-release
		return `{"isSuspicious":true,"reason":"late"}`, nil
	}}

	a := NewFraudAdapter(slow, WithTimeout(20*time.Millisecond))
	start := time.Now()
	got := a.AssessDonor(context.Background(), "Slow", nil)
	if got != Unavailable() {
		t.Errorf("AssessDonor = %+v, want unavailable", got)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("AssessDonor took %v, timeout not enforced", elapsed)
	}
}

func TestAssessAll(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	var calls atomic.Int32
	provider := fakeProvider{generate: func(ctx context.Context, req genai.Request) (string, error) {
		calls.Add(1)
		switch req.Input.GetFields()["donorName"].GetStringValue() {
		case "Hangs":
			<-release
			return "", errors.New("too late")
		case "Fails":
			return "", errors.New("quota exceeded")
		case "Suspicious":
			return `{"isSuspicious":true,"reason":"rapid small payments"}`, nil
		default:
			return `{"isSuspicious":false,"reason":"No suspicious activity detected."}`, nil
		}
	}}

	transactions := []models.Transaction{
		payment("Hangs", 10, "2024-07-01", models.ModeOnline),
		payment("Fails", 10, "2024-07-01", models.ModeOnline),
		payment("Suspicious", 1, "2024-07-01", models.ModeOnline),
		payment("Suspicious", 1, "2024-07-02", models.ModeOnline),
		payment("Fine", 1000, "2024-07-01", models.ModeWallet),
	}
	order, byDonor := GroupByDonor(transactions)
	if len(order) != 4 || order[0] != "Hangs" || len(byDonor["Suspicious"]) != 2 {
		t.Fatalf("unexpected grouping: %v", order)
	}

	a := NewFraudAdapter(provider, WithTimeout(50*time.Millisecond), WithConcurrency(2))
	start := time.Now()
	verdicts := a.AssessAll(context.Background(), byDonor)
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("AssessAll took %v; a hanging donor delayed the others", elapsed)
	}

	if len(verdicts) != 4 {
		t.Fatalf("expected 4 verdicts, got %d", len(verdicts))
	}
	if verdicts["Hangs"] != Unavailable() {
		t.Errorf("Hangs = %+v, want unavailable", verdicts["Hangs"])
	}
	if verdicts["Fails"] != Unavailable() {
		t.Errorf("Fails = %+v, want unavailable", verdicts["Fails"])
	}
	if !verdicts["Suspicious"].IsSuspicious {
		t.Errorf("Suspicious = %+v, want suspicious", verdicts["Suspicious"])
	}
	if verdicts["Fine"].IsSuspicious || verdicts["Fine"].Reason != ClearReason {
		t.Errorf("Fine = %+v", verdicts["Fine"])
	}
	if calls.Load() != 4 {
		t.Errorf("provider called %d times, want 4", calls.Load())
	}
}

func TestAssessAllEmpty(t *testing.T) {
	a := NewFraudAdapter(fakeProvider{})
	if got := a.AssessAll(context.Background(), nil); len(got) != 0 {
		t.Errorf("expected empty map, got %v", got)
	}
}
