package assist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/bairooha/donordesk/internal/genai"
	"github.com/bairooha/donordesk/internal/metrics"
	"github.com/bairooha/donordesk/internal/models"
)

const (
	// DefaultFraudTimeout bounds each donor's assessment.
	DefaultFraudTimeout = 5 * time.Second

	// UnavailableReason is reported when a verdict could not be obtained.
	UnavailableReason = "analysis unavailable"

	// ClearReason is the reason the model is asked to give for clean histories.
	ClearReason = "No suspicious activity detected."

	fraudUseCase = "fraud"
)

const fraudInstructions = `You are a fraud detection analyst for ` + OrgName + `, a charity platform.
Review the donor's transaction history in the input and decide whether it looks suspicious.

Treat these as red flags:
- Several small donations in quick succession, as when stolen cards are being tested.
- A single donation far larger than the donor's usual pattern.
- A transaction in "Refund" mode shortly after other transactions.
- Any other pattern that looks designed to probe the payment system.

Respond with a single JSON object and nothing else:
{"isSuspicious": boolean, "reason": string}

If the activity is suspicious, set isSuspicious to true and give a short, concrete reason.
Otherwise set isSuspicious to false and set reason to "` + ClearReason + `"`

// Unavailable is the verdict used whenever assessment fails.
func Unavailable() models.FraudVerdict {
	return models.FraudVerdict{IsSuspicious: false, Reason: UnavailableReason}
}

type fraudOutput struct {
	IsSuspicious *bool  `json:"isSuspicious"`
	Reason       string `json:"reason"`
}

func (o fraudOutput) Validate() error {
	if o.IsSuspicious == nil {
		return errors.New("isSuspicious is required")
	}
	if o.Reason == "" {
		return errors.New("reason is required")
	}
	return nil
}

// FraudAdapter turns a donor's transaction history into a verdict using a
// generative provider. It never fails: any provider problem yields the
// Unavailable verdict.
type FraudAdapter struct {
	provider    genai.Provider
	timeout     time.Duration
	concurrency int
	metrics     *metrics.Metrics
}

// FraudOption configures a FraudAdapter.
type FraudOption func(*FraudAdapter)

// WithTimeout sets the per-donor deadline. Non-positive values keep the default.
func WithTimeout(d time.Duration) FraudOption {
	return func(a *FraudAdapter) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithConcurrency caps in-flight assessments in AssessAll. Zero means no cap.
func WithConcurrency(n int) FraudOption {
	return func(a *FraudAdapter) { a.concurrency = n }
}

// WithFraudMetrics counts verdicts by outcome.
func WithFraudMetrics(m *metrics.Metrics) FraudOption {
	return func(a *FraudAdapter) { a.metrics = m }
}

// NewFraudAdapter creates a FraudAdapter over provider.
func NewFraudAdapter(provider genai.Provider, opts ...FraudOption) *FraudAdapter {
	a := &FraudAdapter{provider: provider, timeout: DefaultFraudTimeout}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AssessDonor asks the provider about one donor. transactions should
// include refunds, since a refund after other activity is itself a signal.
// The call is abandoned when the adapter's timeout elapses even if the
// provider ignores cancellation.
func (a *FraudAdapter) AssessDonor(ctx context.Context, donorName string, transactions []models.Transaction) models.FraudVerdict {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	req, err := fraudRequest(donorName, transactions)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to build fraud request", "donor", donorName, "error", err)
		return a.record(Unavailable(), "unavailable")
	}

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		text, err := a.provider.Generate(ctx, req)
		done <- result{text: text, err: err}
	}()

	var res result
	select {
	case res = <-done:
	case <-ctx.Done():
		res = result{err: ctx.Err()}
	}
	if res.err != nil {
		slog.WarnContext(ctx, "Fraud assessment unavailable", "donor", donorName, "error", res.err)
		return a.record(Unavailable(), "unavailable")
	}

	out, err := genai.Decode[fraudOutput](res.text)
	if err != nil {
		slog.WarnContext(ctx, "Fraud assessment returned invalid output", "donor", donorName, "error", err)
		return a.record(Unavailable(), "unavailable")
	}

	verdict := models.FraudVerdict{IsSuspicious: *out.IsSuspicious, Reason: out.Reason}
	if verdict.IsSuspicious {
		return a.record(verdict, "suspicious")
	}
	return a.record(verdict, "clear")
}

// AssessAll assesses every donor concurrently and returns one verdict per
// donor. Each donor has its own deadline, so a slow or failing call only
// affects that donor's entry.
func (a *FraudAdapter) AssessAll(ctx context.Context, byDonor map[string][]models.Transaction) map[string]models.FraudVerdict {
	verdicts := make(map[string]models.FraudVerdict, len(byDonor))
	var mu sync.Mutex

	var g errgroup.Group
	if a.concurrency > 0 {
		g.SetLimit(a.concurrency)
	}
	for donor, transactions := range byDonor {
		g.Go(func() error {
			verdict := a.AssessDonor(ctx, donor, transactions)
			mu.Lock()
			verdicts[donor] = verdict
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // tasks never return errors

	return verdicts
}

// GroupByDonor collects each donor's transactions, refunds included, in
// first-seen donor order.
func GroupByDonor(transactions []models.Transaction) ([]string, map[string][]models.Transaction) {
	var order []string
	byDonor := make(map[string][]models.Transaction)
	for _, tx := range transactions {
		if _, seen := byDonor[tx.DonorName]; !seen {
			order = append(order, tx.DonorName)
		}
		byDonor[tx.DonorName] = append(byDonor[tx.DonorName], tx)
	}
	return order, byDonor
}

func (a *FraudAdapter) record(v models.FraudVerdict, label string) models.FraudVerdict {
	if a.metrics != nil {
		a.metrics.FraudVerdicts.WithLabelValues(label).Inc()
	}
	return v
}

func fraudRequest(donorName string, transactions []models.Transaction) (genai.Request, error) {
	history := make([]any, 0, len(transactions))
	for _, tx := range transactions {
		history = append(history, map[string]any{
			"date":    tx.Date.String(),
			"amount":  tx.Amount.InexactFloat64(),
			"display": FormatRupees(tx.Amount),
			"mode":    string(tx.Mode),
		})
	}
	input, err := structpb.NewStruct(map[string]any{
		"donorName":    donorName,
		"transactions": history,
	})
	if err != nil {
		return genai.Request{}, fmt.Errorf("failed to encode fraud input: %w", err)
	}
	return genai.Request{
		UseCase:      fraudUseCase,
		Instructions: fraudInstructions,
		Input:        input,
		Temperature:  0.1,
	}, nil
}
