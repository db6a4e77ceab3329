package service

import (
	"context"
	"fmt"
	"net/http"

	"connectrpc.com/connect"

	"github.com/bairooha/donordesk/internal/ledger"
	"github.com/bairooha/donordesk/internal/models"
)

type ListStaffRequest struct{}

type ListStaffResponse struct {
	Staff []models.StaffMember `json:"staff"`
}

type AddStaffRequest struct {
	Member models.StaffMember `json:"member"`
}

type AddStaffResponse struct {
	Member models.StaffMember `json:"member"`
}

type UpdatePermissionsRequest struct {
	ID           string               `json:"id"`
	Permissions  models.Permissions   `json:"permissions"`
	WorkingHours *models.WorkingHours `json:"workingHours,omitempty"`
}

type UpdatePermissionsResponse struct {
	Member models.StaffMember `json:"member"`
}

type RemoveStaffRequest struct {
	ID string `json:"id"`
}

type RemoveStaffResponse struct{}

// StaffService serves the staff management page.
type StaffService struct {
	ledger *ledger.Ledger
}

// NewStaffService creates a StaffService.
func NewStaffService(l *ledger.Ledger) *StaffService {
	return &StaffService{ledger: l}
}

// NewStaffServiceHandler returns the mount path and handler for s.
func NewStaffServiceHandler(s *StaffService, opts ...connect.HandlerOption) (string, http.Handler) {
	return serviceHandler(StaffServiceName, map[string]http.Handler{
		ListStaffProcedure:         unaryHandler(ListStaffProcedure, s.ListStaff, opts),
		AddStaffProcedure:          unaryHandler(AddStaffProcedure, s.AddStaff, opts),
		UpdatePermissionsProcedure: unaryHandler(UpdatePermissionsProcedure, s.UpdatePermissions, opts),
		RemoveStaffProcedure:       unaryHandler(RemoveStaffProcedure, s.RemoveStaff, opts),
	})
}

func (s *StaffService) ListStaff(ctx context.Context, req *connect.Request[ListStaffRequest]) (*connect.Response[ListStaffResponse], error) {
	staff, err := s.ledger.Staff(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ListStaffResponse{Staff: staff}), nil
}

func (s *StaffService) AddStaff(ctx context.Context, req *connect.Request[AddStaffRequest]) (*connect.Response[AddStaffResponse], error) {
	member, err := s.ledger.AddStaff(ctx, req.Msg.Member)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&AddStaffResponse{Member: member}), nil
}

// UpdatePermissions replaces a member's permissions, and optionally
// hours. The role follows the new permissions.
func (s *StaffService) UpdatePermissions(ctx context.Context, req *connect.Request[UpdatePermissionsRequest]) (*connect.Response[UpdatePermissionsResponse], error) {
	staff, err := s.ledger.Staff(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	for _, m := range staff {
		if m.ID != req.Msg.ID {
			continue
		}
		m.Permissions = req.Msg.Permissions
		if req.Msg.WorkingHours != nil {
			m.WorkingHours = *req.Msg.WorkingHours
		}
		updated, err := s.ledger.UpdateStaff(ctx, m)
		if err != nil {
			return nil, toConnectError(err)
		}
		return connect.NewResponse(&UpdatePermissionsResponse{Member: updated}), nil
	}
	return nil, toConnectError(fmt.Errorf("staff %s: %w", req.Msg.ID, ledger.ErrNotFound))
}

func (s *StaffService) RemoveStaff(ctx context.Context, req *connect.Request[RemoveStaffRequest]) (*connect.Response[RemoveStaffResponse], error) {
	if err := s.ledger.RemoveStaff(ctx, req.Msg.ID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&RemoveStaffResponse{}), nil
}
