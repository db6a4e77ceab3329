package service

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/bairooha/donordesk/internal/analytics"
	"github.com/bairooha/donordesk/internal/ledger"
	"github.com/bairooha/donordesk/internal/models"
)

type ListPaymentsRequest struct {
	Query string `json:"query"`
}

type ListPaymentsResponse struct {
	Entries []analytics.LedgerEntry `json:"entries"`
	Totals  analytics.PaymentTotals `json:"totals"`
	Balance decimal.Decimal         `json:"balance"`
}

type AddPaymentRequest struct {
	Payment models.Transaction `json:"payment"`
}

type AddPaymentResponse struct {
	Payment models.Transaction `json:"payment"`
}

type AddDebitRequest struct {
	Debit models.Debit `json:"debit"`
}

type AddDebitResponse struct {
	Debit models.Debit `json:"debit"`
}

type ListProjectsRequest struct{}

type ListProjectsResponse struct {
	Projects []models.Project `json:"projects"`
}

type GetProjectRequest struct {
	ID string `json:"id"`
}

type GetProjectResponse struct {
	Project  models.Project       `json:"project"`
	Progress float64              `json:"progress"`
	Payments []models.Transaction `json:"payments"`
	Debits   []models.Debit       `json:"debits"`
}

type AddProjectRequest struct {
	Project models.Project `json:"project"`
}

type AddProjectResponse struct {
	Project models.Project `json:"project"`
}

type AddProjectMediaRequest struct {
	ProjectID string              `json:"projectId"`
	Media     models.ProjectMedia `json:"media"`
}

type AddProjectMediaResponse struct {
	Project models.Project `json:"project"`
}

// LedgerService serves the payments and projects pages.
type LedgerService struct {
	ledger *ledger.Ledger
}

// NewLedgerService creates a LedgerService.
func NewLedgerService(l *ledger.Ledger) *LedgerService {
	return &LedgerService{ledger: l}
}

// NewLedgerServiceHandler returns the mount path and handler for s.
func NewLedgerServiceHandler(s *LedgerService, opts ...connect.HandlerOption) (string, http.Handler) {
	return serviceHandler(LedgerServiceName, map[string]http.Handler{
		ListPaymentsProcedure:    unaryHandler(ListPaymentsProcedure, s.ListPayments, opts),
		AddPaymentProcedure:      unaryHandler(AddPaymentProcedure, s.AddPayment, opts),
		AddDebitProcedure:        unaryHandler(AddDebitProcedure, s.AddDebit, opts),
		ListProjectsProcedure:    unaryHandler(ListProjectsProcedure, s.ListProjects, opts),
		GetProjectProcedure:      unaryHandler(GetProjectProcedure, s.GetProject, opts),
		AddProjectProcedure:      unaryHandler(AddProjectProcedure, s.AddProject, opts),
		AddProjectMediaProcedure: unaryHandler(AddProjectMediaProcedure, s.AddProjectMedia, opts),
	})
}

// ListPayments returns matching credits and debits, newest first, with
// totals over the whole ledger.
func (s *LedgerService) ListPayments(ctx context.Context, req *connect.Request[ListPaymentsRequest]) (*connect.Response[ListPaymentsResponse], error) {
	payments, err := s.ledger.Payments(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	debits, err := s.ledger.Debits(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	totals := analytics.SummarizePayments(payments, debits)
	return connect.NewResponse(&ListPaymentsResponse{
		Entries: analytics.SearchLedger(payments, debits, req.Msg.Query),
		Totals:  totals,
		Balance: totals.Balance(),
	}), nil
}

func (s *LedgerService) AddPayment(ctx context.Context, req *connect.Request[AddPaymentRequest]) (*connect.Response[AddPaymentResponse], error) {
	payment, err := s.ledger.AddPayment(ctx, req.Msg.Payment)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&AddPaymentResponse{Payment: payment}), nil
}

func (s *LedgerService) AddDebit(ctx context.Context, req *connect.Request[AddDebitRequest]) (*connect.Response[AddDebitResponse], error) {
	debit, err := s.ledger.AddDebit(ctx, req.Msg.Debit)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&AddDebitResponse{Debit: debit}), nil
}

func (s *LedgerService) ListProjects(ctx context.Context, req *connect.Request[ListProjectsRequest]) (*connect.Response[ListProjectsResponse], error) {
	projects, err := s.ledger.Projects(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ListProjectsResponse{Projects: projects}), nil
}

// GetProject returns a project with its funding progress and the ledger
// entries booked against it.
func (s *LedgerService) GetProject(ctx context.Context, req *connect.Request[GetProjectRequest]) (*connect.Response[GetProjectResponse], error) {
	project, err := s.ledger.Project(ctx, req.Msg.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	payments, err := s.ledger.Payments(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	debits, err := s.ledger.Debits(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}

	resp := &GetProjectResponse{
		Project:  project,
		Progress: analytics.Progress(project.Raised, project.Goal),
		Payments: []models.Transaction{},
		Debits:   []models.Debit{},
	}
	for _, tx := range payments {
		if tx.ProjectID == project.ID {
			resp.Payments = append(resp.Payments, tx)
		}
	}
	for _, d := range debits {
		if d.ProjectID == project.ID {
			resp.Debits = append(resp.Debits, d)
		}
	}
	return connect.NewResponse(resp), nil
}

func (s *LedgerService) AddProject(ctx context.Context, req *connect.Request[AddProjectRequest]) (*connect.Response[AddProjectResponse], error) {
	project, err := s.ledger.AddProject(ctx, req.Msg.Project)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&AddProjectResponse{Project: project}), nil
}

func (s *LedgerService) AddProjectMedia(ctx context.Context, req *connect.Request[AddProjectMediaRequest]) (*connect.Response[AddProjectMediaResponse], error) {
	project, err := s.ledger.AddProjectMedia(ctx, req.Msg.ProjectID, req.Msg.Media)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&AddProjectMediaResponse{Project: project}), nil
}
