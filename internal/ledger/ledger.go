// Package ledger owns the charity's records: projects, payments, debits,
// staff and emergency campaigns.
//
// Each collection is stored as one JSON array in a storage.BlobStore and
// is always read and written whole. A missing or unreadable collection
// falls back to the seed dataset. Project.Raised is recomputed from the
// payments on every read.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bairooha/donordesk/internal/analytics"
	"github.com/bairooha/donordesk/internal/models"
	"github.com/bairooha/donordesk/internal/storage"
)

// Ledger is the validation and persistence boundary for all records.
type Ledger struct {
	store storage.BlobStore
	now   func() time.Time

	// mu serializes read-modify-write cycles within this process.
	mu sync.Mutex
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the clock used for "today" (seed data, default dates).
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// New creates a Ledger over store.
func New(store storage.BlobStore, opts ...Option) *Ledger {
	l := &Ledger{store: store, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Now returns the ledger's clock reading.
func (l *Ledger) Now() time.Time {
	return l.now()
}

// Today returns the current calendar day according to the ledger's clock.
func (l *Ledger) Today() models.Date {
	return models.DateOf(l.now())
}

// load decodes the collection under key, or returns seed() when the key
// is absent or its contents cannot be decoded.
func load[T any](ctx context.Context, store storage.BlobStore, key string, seed func() []T) ([]T, error) {
	blob, err := store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return seed(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}

	var items []T
	if err := json.Unmarshal(blob, &items); err != nil {
		slog.WarnContext(ctx, "Stored collection is unreadable, using seed data", "key", key, "error", err)
		return seed(), nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func save[T any](ctx context.Context, store storage.BlobStore, key string, items []T) error {
	blob, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := store.Put(ctx, key, blob); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func (l *Ledger) loadProjects(ctx context.Context) ([]models.Project, error) {
	return load(ctx, l.store, storage.KeyProjects, seedProjects)
}

func (l *Ledger) loadPayments(ctx context.Context) ([]models.Transaction, error) {
	today := l.Today()
	return load(ctx, l.store, storage.KeyPayments, func() []models.Transaction { return seedPayments(today) })
}

// Projects returns every project with Raised recomputed from the payments.
func (l *Ledger) Projects(ctx context.Context) ([]models.Project, error) {
	projects, err := l.loadProjects(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := l.loadPayments(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.WithRaised(projects, payments), nil
}

// Project returns one project with Raised recomputed.
func (l *Ledger) Project(ctx context.Context, id string) (models.Project, error) {
	projects, err := l.Projects(ctx)
	if err != nil {
		return models.Project{}, err
	}
	for _, p := range projects {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Project{}, fmt.Errorf("project %s: %w", id, ErrNotFound)
}

// AddProject validates p, assigns an id when empty and stores it first in
// the list. Raised always starts at zero.
func (l *Ledger) AddProject(ctx context.Context, p models.Project) (models.Project, error) {
	if err := validateProject(p); err != nil {
		return models.Project{}, err
	}
	if p.ID == "" {
		p.ID = "proj-" + uuid.New().String()
	}
	p.Raised = decimal.Zero
	if p.Media == nil {
		p.Media = []models.ProjectMedia{}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	projects, err := l.loadProjects(ctx)
	if err != nil {
		return models.Project{}, err
	}
	projects = append([]models.Project{p}, projects...)
	if err := save(ctx, l.store, storage.KeyProjects, projects); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// AddProjectMedia appends a before/after entry to a project.
func (l *Ledger) AddProjectMedia(ctx context.Context, projectID string, media models.ProjectMedia) (models.Project, error) {
	switch media.Type {
	case models.MediaImage, models.MediaVideo, models.MediaStory:
	default:
		return models.Project{}, ErrInvalidMediaType
	}
	if media.ID == "" {
		media.ID = "media-" + uuid.New().String()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	projects, err := l.loadProjects(ctx)
	if err != nil {
		return models.Project{}, err
	}
	idx := -1
	for i := range projects {
		if projects[i].ID == projectID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Project{}, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	projects[idx].Media = append(projects[idx].Media, media)
	if err := save(ctx, l.store, storage.KeyProjects, projects); err != nil {
		return models.Project{}, err
	}

	payments, err := l.loadPayments(ctx)
	if err != nil {
		return models.Project{}, err
	}
	updated := projects[idx]
	updated.Raised = analytics.ProjectRaised(projectID, payments)
	return updated, nil
}

// Payments returns every credit transaction, newest insertion first.
func (l *Ledger) Payments(ctx context.Context) ([]models.Transaction, error) {
	return l.loadPayments(ctx)
}

// AddPayment validates tx against the known projects and records it.
// A zero date defaults to today; an empty id gets "pay-<uuid>".
func (l *Ledger) AddPayment(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	tx.DonorName = strings.TrimSpace(tx.DonorName)
	if tx.DonorName == "" {
		return models.Transaction{}, ErrMissingDonor
	}
	if !tx.Amount.IsPositive() {
		return models.Transaction{}, ErrInvalidAmount
	}
	if !tx.Mode.Valid() {
		return models.Transaction{}, fmt.Errorf("%w: %q", ErrInvalidMode, tx.Mode)
	}
	if tx.Date.IsZero() {
		tx.Date = l.Today()
	}
	if tx.ID == "" {
		tx.ID = "pay-" + uuid.New().String()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	project, err := l.findProject(ctx, tx.ProjectID)
	if err != nil {
		return models.Transaction{}, err
	}
	tx.ProjectName = project.Name

	payments, err := l.loadPayments(ctx)
	if err != nil {
		return models.Transaction{}, err
	}
	payments = append([]models.Transaction{tx}, payments...)
	if err := save(ctx, l.store, storage.KeyPayments, payments); err != nil {
		return models.Transaction{}, err
	}
	return tx, nil
}

// Debits returns every expense record.
func (l *Ledger) Debits(ctx context.Context) ([]models.Debit, error) {
	return load(ctx, l.store, storage.KeyDebits, seedDebits)
}

// AddDebit validates d against the known projects and records it.
func (l *Ledger) AddDebit(ctx context.Context, d models.Debit) (models.Debit, error) {
	d.Description = strings.TrimSpace(d.Description)
	if d.Description == "" {
		return models.Debit{}, ErrMissingDescription
	}
	if !d.Amount.IsPositive() {
		return models.Debit{}, ErrInvalidAmount
	}
	if d.Date.IsZero() {
		d.Date = l.Today()
	}
	if d.ID == "" {
		d.ID = "debit-" + uuid.New().String()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	project, err := l.findProject(ctx, d.ProjectID)
	if err != nil {
		return models.Debit{}, err
	}
	d.ProjectName = project.Name

	debits, err := l.Debits(ctx)
	if err != nil {
		return models.Debit{}, err
	}
	debits = append([]models.Debit{d}, debits...)
	if err := save(ctx, l.store, storage.KeyDebits, debits); err != nil {
		return models.Debit{}, err
	}
	return d, nil
}

// Reset drops every stored collection so the next read returns seed data.
func (l *Ledger) Reset(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, key := range storage.Keys {
		if err := l.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to reset %s: %w", key, err)
		}
	}
	return nil
}

func (l *Ledger) findProject(ctx context.Context, id string) (models.Project, error) {
	projects, err := l.loadProjects(ctx)
	if err != nil {
		return models.Project{}, err
	}
	for _, p := range projects {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Project{}, fmt.Errorf("%w: %q", ErrUnknownProject, id)
}

func validateProject(p models.Project) error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrMissingName
	}
	if !p.Goal.IsPositive() {
		return ErrInvalidGoal
	}
	return nil
}
