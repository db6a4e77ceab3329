// Package campaign launches and ends emergency campaigns. At most one
// campaign is active at any time.
package campaign

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bairooha/donordesk/internal/analytics"
	"github.com/bairooha/donordesk/internal/assist"
	"github.com/bairooha/donordesk/internal/ledger"
	"github.com/bairooha/donordesk/internal/models"
	"github.com/bairooha/donordesk/internal/notify"
)

var (
	// ErrCampaignActive is returned by Launch while another campaign runs.
	ErrCampaignActive = errors.New("an emergency campaign is already active")

	// ErrCampaignNotFound is returned for an unknown campaign id.
	ErrCampaignNotFound = errors.New("campaign not found")
)

// Broadcaster drafts the alert copy for a launch.
type Broadcaster interface {
	BroadcastAlert(ctx context.Context, in assist.BroadcastInput) (assist.BroadcastAlert, error)
}

// LaunchRequest is the admin's input for a new campaign.
type LaunchRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Goal        decimal.Decimal `json:"goal"`
	Message     string          `json:"message"`
}

// Launched is the result of a successful launch.
type Launched struct {
	Campaign models.EmergencyCampaign `json:"campaign"`
	Project  models.Project           `json:"project"`
	Alert    assist.BroadcastAlert    `json:"alert"`
}

// Progress is a campaign with its funding state.
type Progress struct {
	Campaign models.EmergencyCampaign `json:"campaign"`
	Raised   decimal.Decimal          `json:"raised"`
	Percent  float64                  `json:"percent"`
}

// Controller coordinates the ledger, the alert generator and the notifier.
type Controller struct {
	ledger      *ledger.Ledger
	broadcaster Broadcaster
	publisher   notify.Publisher
	now         func() time.Time

	// mu makes the active check and the launch write one step.
	mu sync.Mutex
}

// NewController creates a Controller. A nil publisher logs alerts only.
func NewController(l *ledger.Ledger, b Broadcaster, p notify.Publisher) *Controller {
	if p == nil {
		p = notify.LogPublisher{}
	}
	return &Controller{ledger: l, broadcaster: b, publisher: p, now: time.Now}
}

// Launch creates a campaign and its project, after generating the alert
// copy. Nothing is stored when generation fails.
func (c *Controller) Launch(ctx context.Context, req LaunchRequest) (Launched, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	active, err := c.active(ctx)
	if err != nil {
		return Launched{}, err
	}
	if active != nil {
		return Launched{}, fmt.Errorf("%w: %s", ErrCampaignActive, active.Name)
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if req.Name == "" {
		return Launched{}, ledger.ErrMissingName
	}
	if req.Description == "" {
		return Launched{}, ledger.ErrMissingDescription
	}
	if !req.Goal.IsPositive() {
		return Launched{}, ledger.ErrInvalidGoal
	}

	alert, err := c.broadcaster.BroadcastAlert(ctx, assist.BroadcastInput{
		CampaignName: req.Name,
		Description:  req.Description,
		Goal:         req.Goal,
		Message:      req.Message,
	})
	if err != nil {
		return Launched{}, fmt.Errorf("failed to generate broadcast alert: %w", err)
	}

	project := models.Project{
		ID:          "proj-emergency-" + uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Goal:        req.Goal,
		Raised:      decimal.Zero,
		Media:       []models.ProjectMedia{},
	}
	campaign := models.EmergencyCampaign{
		ID:               "emergency-" + uuid.New().String(),
		Name:             req.Name,
		Description:      req.Description,
		Goal:             req.Goal,
		IsActive:         true,
		BroadcastMessage: req.Message,
		ProjectID:        project.ID,
	}
	if err := c.ledger.StartCampaign(ctx, project, campaign); err != nil {
		return Launched{}, err
	}
	slog.InfoContext(ctx, "Emergency campaign launched", "campaign_id", campaign.ID, "project_id", project.ID)

	err = c.publisher.PublishAlert(ctx, notify.Alert{
		CampaignID:       campaign.ID,
		CampaignName:     campaign.Name,
		ProjectID:        project.ID,
		PushNotification: alert.PushNotification,
		EmailSubject:     alert.EmailSubject,
		EmailBody:        alert.EmailBody,
		SMSMessage:       alert.SMSMessage,
		LaunchedAt:       c.now(),
	})
	if err != nil {
		slog.ErrorContext(ctx, "Failed to publish broadcast alert", "campaign_id", campaign.ID, "error", err)
	}

	return Launched{Campaign: campaign, Project: project, Alert: alert}, nil
}

// End deactivates a campaign. Ending an inactive campaign is a no-op.
func (c *Controller) End(ctx context.Context, id string) (models.EmergencyCampaign, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ended, err := c.ledger.EndCampaign(ctx, id)
	if errors.Is(err, ledger.ErrNotFound) {
		return models.EmergencyCampaign{}, fmt.Errorf("%w: %s", ErrCampaignNotFound, id)
	}
	if err != nil {
		return models.EmergencyCampaign{}, err
	}
	return ended, nil
}

// Active returns the running campaign, or nil when there is none.
func (c *Controller) Active(ctx context.Context) (*models.EmergencyCampaign, error) {
	return c.active(ctx)
}

func (c *Controller) active(ctx context.Context) (*models.EmergencyCampaign, error) {
	campaigns, err := c.ledger.Campaigns(ctx)
	if err != nil {
		return nil, err
	}
	for i := range campaigns {
		if campaigns[i].IsActive {
			return &campaigns[i], nil
		}
	}
	return nil, nil
}

// List returns every campaign, newest first.
func (c *Controller) List(ctx context.Context) ([]models.EmergencyCampaign, error) {
	campaigns, err := c.ledger.Campaigns(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.EmergencyCampaign, 0, len(campaigns))
	for i := len(campaigns) - 1; i >= 0; i-- {
		out = append(out, campaigns[i])
	}
	return out, nil
}

// Progress reports how much a campaign's project has raised.
func (c *Controller) Progress(ctx context.Context, id string) (Progress, error) {
	campaigns, err := c.ledger.Campaigns(ctx)
	if err != nil {
		return Progress{}, err
	}
	for _, camp := range campaigns {
		if camp.ID != id {
			continue
		}
		payments, err := c.ledger.Payments(ctx)
		if err != nil {
			return Progress{}, err
		}
		raised := analytics.ProjectRaised(camp.ProjectID, payments)
		return Progress{
			Campaign: camp,
			Raised:   raised,
			Percent:  analytics.Progress(raised, camp.Goal),
		}, nil
	}
	return Progress{}, fmt.Errorf("%w: %s", ErrCampaignNotFound, id)
}
