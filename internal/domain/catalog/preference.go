package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserRecipePreference holds everything per-user about a shared recipe:
// the user's own annotations plus the cached result of the last match run.
// Match fields are a cache, always derivable by re-running the calculator
// against a current pantry snapshot.
type UserRecipePreference struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_user_recipe" json:"user_id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_user_recipe;index" json:"recipe_id"`

	// Cached match result.
	MatchPercentage     float64                         `gorm:"type:decimal(5,2);default:0" json:"match_percentage"`
	AvailableCount      int                             `gorm:"column:available_count;default:0" json:"available_count"`
	MissingCount        int                             `gorm:"column:missing_count;default:0" json:"missing_count"`
	ExpiringCount       int                             `gorm:"column:expiring_count;default:0" json:"expiring_count"`
	MissingIngredients  datatypes.JSONSlice[Ingredient] `json:"missing_ingredients"`
	ExpiringIngredients datatypes.JSONSlice[Ingredient] `json:"expiring_ingredients"`
	UsesExpiringItems   bool                            `gorm:"default:false" json:"uses_expiring_items"`

	// User-owned annotations. Never touched by match runs.
	Favorite    bool       `gorm:"default:false" json:"favorite"`
	Notes       string     `gorm:"type:text" json:"notes"`
	TimesCooked int        `gorm:"column:times_cooked;default:0" json:"times_cooked"`
	LastCooked  *time.Time `gorm:"column:last_cooked" json:"last_cooked,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserRecipePreference) TableName() string { return "user_recipe_preference" }
