package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nutrimize/backend/internal/domain"
	"gorm.io/gorm"
)

const globalCatalogKey = "catalog:global"

// ProductRepository reads candidate products from Postgres. The global
// catalog is served through a short-lived cache snapshot; per-user lists
// are always read fresh.
type ProductRepository struct {
	db       *gorm.DB
	cache    domain.CacheRepository
	cacheTTL time.Duration
}

// NewProductRepository creates a product repository. A nil cache disables
// snapshot caching.
func NewProductRepository(db *gorm.DB, cache domain.CacheRepository, cacheTTL time.Duration) *ProductRepository {
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
	}
	return &ProductRepository{db: db, cache: cache, cacheTTL: cacheTTL}
}

// GlobalProducts returns the full global catalog, ordered by ID.
func (r *ProductRepository) GlobalProducts(ctx context.Context) ([]domain.Product, error) {
	if r.cache != nil {
		if cached, err := r.cache.Get(ctx, globalCatalogKey); err == nil {
			if products, ok := cached.([]domain.Product); ok {
				return products, nil
			}
		}
	}

	var rows []productRow
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, domain.Product{
			ID:         domain.GlobalID(row.ID),
			Name:       row.ProductName,
			Kcal:       row.Kcal,
			Fat:        row.Fat,
			SatFat:     row.SatFat,
			Carbs:      row.Carbs,
			Sugars:     row.Sugars,
			Protein:    row.Protein,
			DairyProt:  row.DairyProt,
			AnimalProt: row.AnimalProt,
			PlantProt:  row.PlantProt,
			Salt:       row.Salt,
			Price100g:  row.Price100g,
			Vegan:      row.Vegan,
			Vegetarian: row.Vegetarian,
			DairyFree:  row.DairyFree,
		})
	}

	if r.cache != nil {
		// Best effort; a failed cache write only costs the next read a query.
		_ = r.cache.Set(ctx, globalCatalogKey, products, r.cacheTTL)
	}
	return products, nil
}

// UserProducts returns one user's private products, ordered by ID.
func (r *ProductRepository) UserProducts(ctx context.Context, userID uuid.UUID) ([]domain.Product, error) {
	var rows []userProductRow
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("querying user products: %w", err)
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, domain.Product{
			ID:         domain.UserOwnedID(row.ID),
			Name:       row.ProductName,
			Kcal:       row.Kcal,
			Fat:        row.Fat,
			SatFat:     row.SatFat,
			Carbs:      row.Carbs,
			Sugars:     row.Sugars,
			Protein:    row.Protein,
			DairyProt:  row.DairyProt,
			AnimalProt: row.AnimalProt,
			PlantProt:  row.PlantProt,
			Salt:       row.Salt,
			Price100g:  row.Price100g,
			Vegan:      row.Vegan,
			Vegetarian: row.Vegetarian,
			DairyFree:  row.DairyFree,
		})
	}
	return products, nil
}
