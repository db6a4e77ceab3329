package service

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/bairooha/donordesk/internal/campaign"
	"github.com/bairooha/donordesk/internal/models"
)

type LaunchCampaignRequest = campaign.LaunchRequest

type LaunchCampaignResponse = campaign.Launched

type EndCampaignRequest struct {
	ID string `json:"id"`
}

type EndCampaignResponse struct {
	Campaign models.EmergencyCampaign `json:"campaign"`
}

type ListCampaignsRequest struct{}

type ListCampaignsResponse struct {
	// Campaigns are newest first.
	Campaigns []models.EmergencyCampaign `json:"campaigns"`
	Active    *campaign.Progress         `json:"active,omitempty"`
}

// CampaignService serves the emergency page.
type CampaignService struct {
	controller *campaign.Controller
}

// NewCampaignService creates a CampaignService.
func NewCampaignService(c *campaign.Controller) *CampaignService {
	return &CampaignService{controller: c}
}

// NewCampaignServiceHandler returns the mount path and handler for s.
func NewCampaignServiceHandler(s *CampaignService, opts ...connect.HandlerOption) (string, http.Handler) {
	return serviceHandler(CampaignServiceName, map[string]http.Handler{
		LaunchCampaignProcedure: unaryHandler(LaunchCampaignProcedure, s.LaunchCampaign, opts),
		EndCampaignProcedure:    unaryHandler(EndCampaignProcedure, s.EndCampaign, opts),
		ListCampaignsProcedure:  unaryHandler(ListCampaignsProcedure, s.ListCampaigns, opts),
	})
}

// LaunchCampaign starts an emergency campaign. It fails with
// FailedPrecondition while another campaign is active and with
// Unavailable when the alert copy cannot be generated.
func (s *CampaignService) LaunchCampaign(ctx context.Context, req *connect.Request[LaunchCampaignRequest]) (*connect.Response[LaunchCampaignResponse], error) {
	launched, err := s.controller.Launch(ctx, *req.Msg)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&launched), nil
}

func (s *CampaignService) EndCampaign(ctx context.Context, req *connect.Request[EndCampaignRequest]) (*connect.Response[EndCampaignResponse], error) {
	ended, err := s.controller.End(ctx, req.Msg.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&EndCampaignResponse{Campaign: ended}), nil
}

func (s *CampaignService) ListCampaigns(ctx context.Context, req *connect.Request[ListCampaignsRequest]) (*connect.Response[ListCampaignsResponse], error) {
	campaigns, err := s.controller.List(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	resp := &ListCampaignsResponse{Campaigns: campaigns}
	for _, c := range campaigns {
		if !c.IsActive {
			continue
		}
		progress, err := s.controller.Progress(ctx, c.ID)
		if err != nil {
			return nil, toConnectError(err)
		}
		resp.Active = &progress
		break
	}
	return connect.NewResponse(resp), nil
}
