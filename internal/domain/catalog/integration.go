package catalog

import (
	"time"

	"github.com/google/uuid"
)

// RecipeIntegration records a user's recipe-manager connection settings and
// sync bookkeeping. API tokens are supplied per request and never persisted.
type RecipeIntegration struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`

	Provider     string `gorm:"not null" json:"provider"`
	ServerURL    string `gorm:"column:server_url" json:"server_url"`
	ImportImages bool   `gorm:"column:import_images;default:true" json:"import_images"`

	LastSyncAt           *time.Time `gorm:"column:last_sync_at" json:"last_sync_at,omitempty"`
	TotalRecipesImported int        `gorm:"column:total_recipes_imported;default:0" json:"total_recipes_imported"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (RecipeIntegration) TableName() string { return "recipe_integration" }
