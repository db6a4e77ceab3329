package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bairooha/donordesk/internal/models"
	"github.com/bairooha/donordesk/internal/storage"
)

// Campaigns returns every emergency campaign, active or ended.
func (l *Ledger) Campaigns(ctx context.Context) ([]models.EmergencyCampaign, error) {
	return load(ctx, l.store, storage.KeyEmergencyCampaigns, seedCampaigns)
}

// StartCampaign stores project and campaign together. Every other
// campaign is deactivated and campaign is appended as the active one.
//
// Projects are written first. If writing the campaigns then fails, the
// previous project list is restored.
func (l *Ledger) StartCampaign(ctx context.Context, project models.Project, campaign models.EmergencyCampaign) error {
	if err := validateProject(project); err != nil {
		return err
	}
	project.Raised = decimal.Zero
	if project.Media == nil {
		project.Media = []models.ProjectMedia{}
	}
	campaign.ProjectID = project.ID
	campaign.IsActive = true

	l.mu.Lock()
	defer l.mu.Unlock()

	projects, err := l.loadProjects(ctx)
	if err != nil {
		return err
	}
	campaigns, err := l.Campaigns(ctx)
	if err != nil {
		return err
	}

	if err := save(ctx, l.store, storage.KeyProjects, append([]models.Project{project}, projects...)); err != nil {
		return err
	}

	for i := range campaigns {
		campaigns[i].IsActive = false
	}
	campaigns = append(campaigns, campaign)
	if err := save(ctx, l.store, storage.KeyEmergencyCampaigns, campaigns); err != nil {
		if rbErr := save(ctx, l.store, storage.KeyProjects, projects); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}
	return nil
}

// EndCampaign marks the campaign inactive. Ended campaigns are kept.
// Ending an already inactive campaign is a no-op.
func (l *Ledger) EndCampaign(ctx context.Context, id string) (models.EmergencyCampaign, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	campaigns, err := l.Campaigns(ctx)
	if err != nil {
		return models.EmergencyCampaign{}, err
	}
	for i := range campaigns {
		if campaigns[i].ID != id {
			continue
		}
		if !campaigns[i].IsActive {
			return campaigns[i], nil
		}
		campaigns[i].IsActive = false
		if err := save(ctx, l.store, storage.KeyEmergencyCampaigns, campaigns); err != nil {
			return models.EmergencyCampaign{}, err
		}
		return campaigns[i], nil
	}
	return models.EmergencyCampaign{}, fmt.Errorf("campaign %s: %w", id, ErrNotFound)
}
