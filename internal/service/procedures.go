package service

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const (
	DashboardServiceName = "donordesk.v1.DashboardService"
	DonorServiceName     = "donordesk.v1.DonorService"
	LedgerServiceName    = "donordesk.v1.LedgerService"
	CampaignServiceName  = "donordesk.v1.CampaignService"
	StaffServiceName     = "donordesk.v1.StaffService"
	AssistantServiceName = "donordesk.v1.AssistantService"
)

const (
	GetOverviewProcedure   = "/" + DashboardServiceName + "/GetOverview"
	GetTrendProcedure      = "/" + DashboardServiceName + "/GetTrend"
	WatchLiveFeedProcedure = "/" + DashboardServiceName + "/WatchLiveFeed"

	ListDonorsProcedure    = "/" + DonorServiceName + "/ListDonors"
	AssessDonorsProcedure  = "/" + DonorServiceName + "/AssessDonors"
	DraftThankYouProcedure = "/" + DonorServiceName + "/DraftThankYou"

	ListPaymentsProcedure    = "/" + LedgerServiceName + "/ListPayments"
	AddPaymentProcedure      = "/" + LedgerServiceName + "/AddPayment"
	AddDebitProcedure        = "/" + LedgerServiceName + "/AddDebit"
	ListProjectsProcedure    = "/" + LedgerServiceName + "/ListProjects"
	GetProjectProcedure      = "/" + LedgerServiceName + "/GetProject"
	AddProjectProcedure      = "/" + LedgerServiceName + "/AddProject"
	AddProjectMediaProcedure = "/" + LedgerServiceName + "/AddProjectMedia"

	LaunchCampaignProcedure = "/" + CampaignServiceName + "/LaunchCampaign"
	EndCampaignProcedure    = "/" + CampaignServiceName + "/EndCampaign"
	ListCampaignsProcedure  = "/" + CampaignServiceName + "/ListCampaigns"

	ListStaffProcedure         = "/" + StaffServiceName + "/ListStaff"
	AddStaffProcedure          = "/" + StaffServiceName + "/AddStaff"
	UpdatePermissionsProcedure = "/" + StaffServiceName + "/UpdatePermissions"
	RemoveStaffProcedure       = "/" + StaffServiceName + "/RemoveStaff"

	ChatProcedure = "/" + AssistantServiceName + "/Chat"
)

func withJSON(opts []connect.HandlerOption) []connect.HandlerOption {
	out := make([]connect.HandlerOption, 0, len(opts)+1)
	out = append(out, connect.WithCodec(jsonCodec{}))
	return append(out, opts...)
}

func unaryHandler[Req, Res any](
	procedure string,
	fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error),
	opts []connect.HandlerOption,
) http.Handler {
	return connect.NewUnaryHandler(procedure, fn, withJSON(opts)...)
}

// serviceHandler routes a service's procedures, returning the path
// prefix to mount it under.
func serviceHandler(name string, procedures map[string]http.Handler) (string, http.Handler) {
	prefix := "/" + name + "/"
	return prefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, prefix) {
			http.NotFound(w, r)
			return
		}
		h, ok := procedures[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}
