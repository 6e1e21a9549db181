package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Ingredient is the wire/storage shape of one recipe ingredient line.
type Ingredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Recipe is a household-wide catalog row. Recipes are shared by every member
// of the household; nothing per-user lives here (see UserRecipePreference).
// At most one row exists per non-null (external_provider, external_id) pair;
// manually created recipes leave both null.
type Recipe struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	// Uniqueness of the live (external_provider, external_id) pair is
	// enforced by a partial index created in data/db; soft-deleted rows are
	// excluded so a deleted recipe can be re-imported.
	ExternalProvider *string `gorm:"column:external_provider;index:idx_recipe_external" json:"external_provider,omitempty"`
	ExternalID       *string `gorm:"column:external_id;index:idx_recipe_external" json:"external_id,omitempty"`
	SourceURL        string  `gorm:"column:source_url" json:"source_url,omitempty"`

	Name         string                            `gorm:"not null" json:"name"`
	Description  string                            `gorm:"type:text" json:"description"`
	Ingredients  datatypes.JSONSlice[Ingredient]   `gorm:"not null" json:"ingredients"`
	Instructions datatypes.JSONSlice[string]       `json:"instructions"`

	PrepTime  int                         `gorm:"column:prep_time" json:"prep_time"`
	CookTime  int                         `gorm:"column:cook_time" json:"cook_time"`
	TotalTime int                         `gorm:"column:total_time" json:"total_time"`
	Servings  int                         `gorm:"default:4" json:"servings"`
	Tags      datatypes.JSONSlice[string] `json:"tags"`
	Category  datatypes.JSONSlice[string] `json:"category"`

	ImageURL string `gorm:"column:image_url" json:"image_url,omitempty"`

	// Audit only: who first imported or created the row. Nulled when that
	// user is deleted; never cascades to the shared recipe.
	ImportedBy *uuid.UUID `gorm:"type:uuid;column:imported_by" json:"imported_by,omitempty"`

	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	LastSyncedAt *time.Time     `gorm:"column:last_synced_at" json:"last_synced_at,omitempty"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Recipe) TableName() string { return "recipe" }
