package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/bairooha/donordesk/internal/analytics"
	"github.com/bairooha/donordesk/internal/assist"
	"github.com/bairooha/donordesk/internal/ledger"
	"github.com/bairooha/donordesk/internal/models"
)

type ListDonorsRequest struct{}

type ListDonorsResponse struct {
	Donors []models.DonorRollup `json:"donors"`
}

type AssessDonorsRequest struct {
	// DonorNames limits the assessment; empty assesses every donor.
	DonorNames []string `json:"donorNames"`
}

type AssessDonorsResponse struct {
	Verdicts map[string]models.FraudVerdict `json:"verdicts"`
}

type DraftThankYouRequest struct {
	DonorName string `json:"donorName"`
}

type DraftThankYouResponse struct {
	Donor models.DonorRollup `json:"donor"`
	Email assist.Email       `json:"email"`
}

// DonorService serves the donors page.
type DonorService struct {
	ledger    *ledger.Ledger
	fraud     *assist.FraudAdapter
	assistant *assist.Assistant
}

// NewDonorService creates a DonorService.
func NewDonorService(l *ledger.Ledger, fraud *assist.FraudAdapter, assistant *assist.Assistant) *DonorService {
	return &DonorService{ledger: l, fraud: fraud, assistant: assistant}
}

// NewDonorServiceHandler returns the mount path and handler for s.
func NewDonorServiceHandler(s *DonorService, opts ...connect.HandlerOption) (string, http.Handler) {
	return serviceHandler(DonorServiceName, map[string]http.Handler{
		ListDonorsProcedure:    unaryHandler(ListDonorsProcedure, s.ListDonors, opts),
		AssessDonorsProcedure:  unaryHandler(AssessDonorsProcedure, s.AssessDonors, opts),
		DraftThankYouProcedure: unaryHandler(DraftThankYouProcedure, s.DraftThankYou, opts),
	})
}

// ListDonors returns every donor's rollup, most engaged first.
func (s *DonorService) ListDonors(ctx context.Context, req *connect.Request[ListDonorsRequest]) (*connect.Response[ListDonorsResponse], error) {
	payments, err := s.ledger.Payments(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ListDonorsResponse{
		Donors: analytics.ComputeDonorRollups(payments, s.ledger.Now()),
	}), nil
}

// AssessDonors runs the fraud heuristic for each donor concurrently.
// It does not fail when the provider does; affected donors get the
// "analysis unavailable" verdict.
func (s *DonorService) AssessDonors(ctx context.Context, req *connect.Request[AssessDonorsRequest]) (*connect.Response[AssessDonorsResponse], error) {
	payments, err := s.ledger.Payments(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	_, byDonor := assist.GroupByDonor(payments)

	if len(req.Msg.DonorNames) > 0 {
		selected := make(map[string][]models.Transaction, len(req.Msg.DonorNames))
		for _, name := range req.Msg.DonorNames {
			history, ok := byDonor[name]
			if !ok {
				return nil, toConnectError(fmt.Errorf("donor %q: %w", name, ledger.ErrNotFound))
			}
			selected[name] = history
		}
		byDonor = selected
	}

	return connect.NewResponse(&AssessDonorsResponse{Verdicts: s.fraud.AssessAll(ctx, byDonor)}), nil
}

// DraftThankYou writes a thank-you email from the donor's rollup.
func (s *DonorService) DraftThankYou(ctx context.Context, req *connect.Request[DraftThankYouRequest]) (*connect.Response[DraftThankYouResponse], error) {
	name := strings.TrimSpace(req.Msg.DonorName)
	if name == "" {
		return nil, toConnectError(fmt.Errorf("%w: donor name is required", assist.ErrInvalidInput))
	}
	payments, err := s.ledger.Payments(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}

	for _, donor := range analytics.ComputeDonorRollups(payments, s.ledger.Now()) {
		if donor.Name != name {
			continue
		}
		email, err := s.assistant.ThankYouEmail(ctx, assist.ThankYouInput{
			DonorName:     donor.Name,
			TotalDonated:  donor.TotalDonated,
			DonationCount: donor.DonationCount,
		})
		if err != nil {
			return nil, toConnectError(err)
		}
		return connect.NewResponse(&DraftThankYouResponse{Donor: donor, Email: email}), nil
	}
	return nil, toConnectError(fmt.Errorf("donor %q: %w", name, ledger.ErrNotFound))
}
