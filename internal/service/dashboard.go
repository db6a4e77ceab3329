package service

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"

	"github.com/bairooha/donordesk/internal/analytics"
	"github.com/bairooha/donordesk/internal/campaign"
	"github.com/bairooha/donordesk/internal/ledger"
	"github.com/bairooha/donordesk/internal/models"
)

// DefaultFeedInterval is how often the live feed advances.
const DefaultFeedInterval = 3500 * time.Millisecond

type GetOverviewRequest struct {
	// Granularity of the trend chart; empty means monthly.
	Granularity string `json:"granularity"`
}

type GetOverviewResponse struct {
	Stats          analytics.Stats     `json:"stats"`
	Granularity    string              `json:"granularity"`
	Trend          []models.TrendPoint `json:"trend"`
	TopDonors      analytics.TopDonors `json:"topDonors"`
	ActiveCampaign *campaign.Progress  `json:"activeCampaign,omitempty"`
}

type GetTrendRequest struct {
	Granularity string `json:"granularity"`
}

type GetTrendResponse struct {
	Granularity string              `json:"granularity"`
	Points      []models.TrendPoint `json:"points"`
}

type WatchLiveFeedRequest struct {
	// Size of the window; zero means the default of five.
	Size int `json:"size"`

	// MaxUpdates ends the stream after that many messages. Zero streams
	// until the client goes away.
	MaxUpdates int `json:"maxUpdates"`
}

type LiveFeedUpdate struct {
	Sequence int                  `json:"sequence"`
	Entries  []models.Transaction `json:"entries"`
	Next     int                  `json:"next"`
}

// DashboardService serves the overview page.
type DashboardService struct {
	ledger       *ledger.Ledger
	campaigns    *campaign.Controller
	feedInterval time.Duration
	feedSize     int
}

// DashboardOption configures a DashboardService.
type DashboardOption func(*DashboardService)

// WithFeedInterval sets how often WatchLiveFeed advances.
func WithFeedInterval(d time.Duration) DashboardOption {
	return func(s *DashboardService) {
		if d > 0 {
			s.feedInterval = d
		}
	}
}

// WithFeedSize sets the live feed window used when a request gives none.
func WithFeedSize(n int) DashboardOption {
	return func(s *DashboardService) {
		if n > 0 {
			s.feedSize = n
		}
	}
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(l *ledger.Ledger, c *campaign.Controller, opts ...DashboardOption) *DashboardService {
	s := &DashboardService{
		ledger:       l,
		campaigns:    c,
		feedInterval: DefaultFeedInterval,
		feedSize:     analytics.DefaultFeedSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewDashboardServiceHandler returns the mount path and handler for s.
func NewDashboardServiceHandler(s *DashboardService, opts ...connect.HandlerOption) (string, http.Handler) {
	return serviceHandler(DashboardServiceName, map[string]http.Handler{
		GetOverviewProcedure:   unaryHandler(GetOverviewProcedure, s.GetOverview, opts),
		GetTrendProcedure:      unaryHandler(GetTrendProcedure, s.GetTrend, opts),
		WatchLiveFeedProcedure: connect.NewServerStreamHandler(WatchLiveFeedProcedure, s.WatchLiveFeed, withJSON(opts)...),
	})
}

// GetOverview returns the headline stats, a trend series, today's top
// donors and the active campaign's progress.
func (s *DashboardService) GetOverview(ctx context.Context, req *connect.Request[GetOverviewRequest]) (*connect.Response[GetOverviewResponse], error) {
	granularity, err := parseGranularity(req.Msg.Granularity)
	if err != nil {
		return nil, toConnectError(err)
	}

	projects, err := s.ledger.Projects(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	payments, err := s.ledger.Payments(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}

	now := s.ledger.Now()
	trend, err := analytics.ComputeTrend(payments, granularity, now)
	if err != nil {
		return nil, toConnectError(err)
	}

	resp := &GetOverviewResponse{
		Stats:       analytics.ComputeStats(projects, payments),
		Granularity: string(granularity),
		Trend:       trend,
		TopDonors:   analytics.SelectTopDonorsForDate(payments, models.DateOf(now)),
	}

	active, err := s.campaigns.Active(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	if active != nil {
		progress, err := s.campaigns.Progress(ctx, active.ID)
		if err != nil {
			return nil, toConnectError(err)
		}
		resp.ActiveCampaign = &progress
	}

	return connect.NewResponse(resp), nil
}

// GetTrend returns one trend series.
func (s *DashboardService) GetTrend(ctx context.Context, req *connect.Request[GetTrendRequest]) (*connect.Response[GetTrendResponse], error) {
	granularity, err := parseGranularity(req.Msg.Granularity)
	if err != nil {
		return nil, toConnectError(err)
	}
	payments, err := s.ledger.Payments(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	points, err := analytics.ComputeTrend(payments, granularity, s.ledger.Now())
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&GetTrendResponse{Granularity: string(granularity), Points: points}), nil
}

// WatchLiveFeed streams the rotating donation feed: the initial window,
// then one update per interval.
func (s *DashboardService) WatchLiveFeed(ctx context.Context, req *connect.Request[WatchLiveFeedRequest], stream *connect.ServerStream[LiveFeedUpdate]) error {
	size := req.Msg.Size
	if size <= 0 {
		size = s.feedSize
	}
	payments, err := s.ledger.Payments(ctx)
	if err != nil {
		return toConnectError(err)
	}
	feed := analytics.NewLiveFeed(payments, size)

	send := func(seq int) error {
		return stream.Send(&LiveFeedUpdate{Sequence: seq, Entries: feed.Window(), Next: feed.Index()})
	}
	if err := send(0); err != nil {
		return err
	}

	ticker := time.NewTicker(s.feedInterval)
	defer ticker.Stop()

	for seq := 1; req.Msg.MaxUpdates <= 0 || seq < req.Msg.MaxUpdates; seq++ {
		select {
		case <-ctx.Done():
			slog.DebugContext(ctx, "Live feed watcher left", "updates", seq)
			return nil
		case <-ticker.C:
		}
		feed.Tick()
		if err := send(seq); err != nil {
			return err
		}
	}
	return nil
}

func parseGranularity(s string) (analytics.Granularity, error) {
	if s == "" {
		return analytics.Monthly, nil
	}
	return analytics.ParseGranularity(s)
}
