package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/bairooha/donordesk/internal/models"
	"github.com/bairooha/donordesk/internal/storage"
)

const defaultAvatar = avatarPlaceholder

// Staff returns every staff member.
func (l *Ledger) Staff(ctx context.Context) ([]models.StaffMember, error) {
	return load(ctx, l.store, storage.KeyStaff, seedStaff)
}

// AddStaff validates m, derives its role from its permissions and stores
// it first in the list.
func (l *Ledger) AddStaff(ctx context.Context, m models.StaffMember) (models.StaffMember, error) {
	if err := validateStaff(&m); err != nil {
		return models.StaffMember{}, err
	}
	if m.ID == "" {
		m.ID = "staff-" + uuid.New().String()
	}
	if m.Avatar == "" {
		m.Avatar = defaultAvatar
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	staff, err := l.Staff(ctx)
	if err != nil {
		return models.StaffMember{}, err
	}
	staff = append([]models.StaffMember{m}, staff...)
	if err := save(ctx, l.store, storage.KeyStaff, staff); err != nil {
		return models.StaffMember{}, err
	}
	return m, nil
}

// UpdateStaff replaces the member with m.ID. The role is re-derived from
// the new permissions.
func (l *Ledger) UpdateStaff(ctx context.Context, m models.StaffMember) (models.StaffMember, error) {
	if err := validateStaff(&m); err != nil {
		return models.StaffMember{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	staff, err := l.Staff(ctx)
	if err != nil {
		return models.StaffMember{}, err
	}
	for i := range staff {
		if staff[i].ID != m.ID {
			continue
		}
		if m.Avatar == "" {
			m.Avatar = staff[i].Avatar
		}
		staff[i] = m
		if err := save(ctx, l.store, storage.KeyStaff, staff); err != nil {
			return models.StaffMember{}, err
		}
		return m, nil
	}
	return models.StaffMember{}, fmt.Errorf("staff %s: %w", m.ID, ErrNotFound)
}

// RemoveStaff deletes the member with id.
func (l *Ledger) RemoveStaff(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	staff, err := l.Staff(ctx)
	if err != nil {
		return err
	}
	kept := staff[:0]
	for _, m := range staff {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(staff) {
		return fmt.Errorf("staff %s: %w", id, ErrNotFound)
	}
	return save(ctx, l.store, storage.KeyStaff, kept)
}

func validateStaff(m *models.StaffMember) error {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	if m.Name == "" {
		return ErrMissingName
	}
	if m.Email == "" {
		return ErrMissingEmail
	}
	m.Role = models.RoleFor(m.Permissions)
	return nil
}
