package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nutrimize/backend/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// normalizeMenuName prepares a menu name for storage: trimmed and
// title-cased, so "bulk week" and "BULK WEEK" store identically.
func normalizeMenuName(name string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(name))
}

// MenuService persists plans the user chose to keep. Menu names are
// unique per user, compared case-insensitively.
type MenuService struct {
	menus domain.MenuRepository
}

func NewMenuService(menus domain.MenuRepository) *MenuService {
	return &MenuService{menus: menus}
}

// SaveMenu stores a generated plan under a user-chosen name.
func (s *MenuService) SaveMenu(ctx context.Context, userID uuid.UUID, menu *domain.SavedMenu) error {
	if menu == nil || strings.TrimSpace(menu.Name) == "" {
		return fmt.Errorf("%w: menu name is required", domain.ErrInvalidTarget)
	}
	menu.Name = normalizeMenuName(menu.Name)
	menu.UserID = userID
	menu.CreatedAt = time.Now()

	existing, err := s.menus.FindByName(ctx, userID, menu.Name)
	if err != nil && !errors.Is(err, domain.ErrMenuNotFound) {
		return fmt.Errorf("checking menu name: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("%w: %q", domain.ErrMenuExists, menu.Name)
	}

	if err := s.menus.Save(ctx, menu); err != nil {
		return fmt.Errorf("saving menu: %w", err)
	}
	return nil
}

// ListMenus returns all of the user's saved menus. An empty list is a
// normal outcome, not an error.
func (s *MenuService) ListMenus(ctx context.Context, userID uuid.UUID) ([]domain.SavedMenu, error) {
	menus, err := s.menus.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing menus: %w", err)
	}
	return menus, nil
}

// ListMenuNames returns just the names of the user's saved menus.
func (s *MenuService) ListMenuNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	names, err := s.menus.ListNames(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing menu names: %w", err)
	}
	return names, nil
}

// GetMenu fetches one saved menu by name.
func (s *MenuService) GetMenu(ctx context.Context, userID uuid.UUID, name string) (*domain.SavedMenu, error) {
	menu, err := s.menus.FindByName(ctx, userID, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	return menu, nil
}

// DeleteMenu removes one saved menu by name.
func (s *MenuService) DeleteMenu(ctx context.Context, userID uuid.UUID, name string) error {
	return s.menus.DeleteByName(ctx, userID, strings.TrimSpace(name))
}
