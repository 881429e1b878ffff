// Package postgres implements the domain repositories on a gorm-managed
// Postgres database.
package postgres

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// productRow is the global catalog table, one row per product with its
// per-100g nutrient profile and split protein sources.
type productRow struct {
	ID          int64   `gorm:"primaryKey"`
	ProductName string  `gorm:"uniqueIndex;not null"`
	Kcal        float64 `gorm:"not null;default:0"`
	Fat         float64 `gorm:"not null;default:0"`
	SatFat      float64 `gorm:"not null;default:0"`
	Carbs       float64 `gorm:"not null;default:0"`
	Sugars      float64 `gorm:"not null;default:0"`
	Protein     float64 `gorm:"not null;default:0"`
	DairyProt   float64 `gorm:"not null;default:0"`
	AnimalProt  float64 `gorm:"not null;default:0"`
	PlantProt   float64 `gorm:"not null;default:0"`
	Salt        float64 `gorm:"not null;default:0"`
	Price100g   float64 `gorm:"not null;default:0"`
	Vegan       bool    `gorm:"not null;default:false"`
	Vegetarian  bool    `gorm:"not null;default:false"`
	DairyFree   bool    `gorm:"not null;default:false"`
}

func (productRow) TableName() string { return "products" }

// userProductRow is a user's private catalog entry, same profile as a
// global product but scoped to one user.
type userProductRow struct {
	ID          int64     `gorm:"primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductName string    `gorm:"not null"`
	Kcal        float64   `gorm:"not null;default:0"`
	Fat         float64   `gorm:"not null;default:0"`
	SatFat      float64   `gorm:"not null;default:0"`
	Carbs       float64   `gorm:"not null;default:0"`
	Sugars      float64   `gorm:"not null;default:0"`
	Protein     float64   `gorm:"not null;default:0"`
	DairyProt   float64   `gorm:"not null;default:0"`
	AnimalProt  float64   `gorm:"not null;default:0"`
	PlantProt   float64   `gorm:"not null;default:0"`
	Salt        float64   `gorm:"not null;default:0"`
	Price100g   float64   `gorm:"not null;default:0"`
	Vegan       bool      `gorm:"not null;default:false"`
	Vegetarian  bool      `gorm:"not null;default:false"`
	DairyFree   bool      `gorm:"not null;default:false"`
}

func (userProductRow) TableName() string { return "user_products" }

// menuRow is a saved plan. The allocation list and restrictions are kept
// as JSON columns.
type menuRow struct {
	ID                 int64     `gorm:"primaryKey"`
	UserID             uuid.UUID `gorm:"type:uuid;index;not null"`
	Name               string    `gorm:"not null"`
	TotalKcal          float64
	TotalCost          float64
	TotalFat           float64
	TotalCarbs         float64
	TotalProtein       float64
	TotalDairyProtein  float64
	TotalAnimalProtein float64
	TotalPlantProtein  float64
	TotalSugar         float64
	TotalSatFat        float64
	TotalSalt          float64
	Plan               datatypes.JSON
	Restrictions       datatypes.JSON
	Vegan              bool `gorm:"not null;default:false"`
	Vegetarian         bool `gorm:"not null;default:false"`
	DairyFree          bool `gorm:"not null;default:false"`
	CreatedAt          time.Time
}

func (menuRow) TableName() string { return "user_menus" }

// Open connects to Postgres and migrates the schema.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := db.AutoMigrate(&productRow{}, &userProductRow{}, &menuRow{}); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	return db, nil
}
