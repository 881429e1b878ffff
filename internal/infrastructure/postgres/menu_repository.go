package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nutrimize/backend/internal/domain"
	"gorm.io/gorm"
)

// MenuRepository persists saved menus in Postgres.
type MenuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

// Save inserts a new saved menu.
func (r *MenuRepository) Save(ctx context.Context, menu *domain.SavedMenu) error {
	planJSON, err := json.Marshal(menu.Plan)
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}
	restrictionsJSON, err := json.Marshal(menu.Restrictions)
	if err != nil {
		return fmt.Errorf("encoding restrictions: %w", err)
	}

	row := menuRow{
		UserID:             menu.UserID,
		Name:               menu.Name,
		TotalKcal:          menu.TotalKcal,
		TotalCost:          menu.TotalCost,
		TotalFat:           menu.TotalFat,
		TotalCarbs:         menu.TotalCarbs,
		TotalProtein:       menu.TotalProtein,
		TotalDairyProtein:  menu.TotalDairyProtein,
		TotalAnimalProtein: menu.TotalAnimalProtein,
		TotalPlantProtein:  menu.TotalPlantProtein,
		TotalSugar:         menu.TotalSugar,
		TotalSatFat:        menu.TotalSatFat,
		TotalSalt:          menu.TotalSalt,
		Plan:               planJSON,
		Restrictions:       restrictionsJSON,
		Vegan:              menu.Vegan,
		Vegetarian:         menu.Vegetarian,
		DairyFree:          menu.DairyFree,
		CreatedAt:          menu.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("inserting menu: %w", err)
	}
	menu.ID = row.ID
	return nil
}

// FindByName fetches one menu by name, case-insensitively.
func (r *MenuRepository) FindByName(ctx context.Context, userID uuid.UUID, name string) (*domain.SavedMenu, error) {
	var row menuRow
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, name).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMenuNotFound
		}
		return nil, fmt.Errorf("querying menu: %w", err)
	}
	return rowToMenu(&row)
}

// ListByUser returns all saved menus of one user, newest first.
func (r *MenuRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.SavedMenu, error) {
	var rows []menuRow
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("querying menus: %w", err)
	}

	menus := make([]domain.SavedMenu, 0, len(rows))
	for i := range rows {
		menu, err := rowToMenu(&rows[i])
		if err != nil {
			return nil, err
		}
		menus = append(menus, *menu)
	}
	return menus, nil
}

// ListNames returns the menu names of one user.
func (r *MenuRepository) ListNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&menuRow{}).
		Where("user_id = ?", userID).
		Order("name").
		Pluck("name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("querying menu names: %w", err)
	}
	return names, nil
}

// DeleteByName removes one menu by name, case-insensitively.
func (r *MenuRepository) DeleteByName(ctx context.Context, userID uuid.UUID, name string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, name).
		Delete(&menuRow{})
	if res.Error != nil {
		return fmt.Errorf("deleting menu: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrMenuNotFound
	}
	return nil
}

func rowToMenu(row *menuRow) (*domain.SavedMenu, error) {
	menu := &domain.SavedMenu{
		ID:         row.ID,
		UserID:     row.UserID,
		Name:       row.Name,
		Vegan:      row.Vegan,
		Vegetarian: row.Vegetarian,
		DairyFree:  row.DairyFree,
		CreatedAt:  row.CreatedAt,
		PlanTotals: domain.PlanTotals{
			TotalKcal:          row.TotalKcal,
			TotalCost:          row.TotalCost,
			TotalFat:           row.TotalFat,
			TotalCarbs:         row.TotalCarbs,
			TotalProtein:       row.TotalProtein,
			TotalDairyProtein:  row.TotalDairyProtein,
			TotalAnimalProtein: row.TotalAnimalProtein,
			TotalPlantProtein:  row.TotalPlantProtein,
			TotalSugar:         row.TotalSugar,
			TotalSatFat:        row.TotalSatFat,
			TotalSalt:          row.TotalSalt,
		},
	}

	if len(row.Plan) > 0 {
		if err := json.Unmarshal(row.Plan, &menu.Plan); err != nil {
			return nil, fmt.Errorf("decoding plan: %w", err)
		}
	}
	if len(row.Restrictions) > 0 {
		if err := json.Unmarshal(row.Restrictions, &menu.Restrictions); err != nil {
			return nil, fmt.Errorf("decoding restrictions: %w", err)
		}
	}
	return menu, nil
}
