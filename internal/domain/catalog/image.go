package catalog

import (
	"time"

	"github.com/google/uuid"
)

// RecipeImage tracks the stored copy of a recipe's picture. One row per
// recipe; re-imports overwrite in place.
type RecipeImage struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"recipe_id"`

	StorageKey  string `gorm:"column:storage_key;not null" json:"storage_key"`
	Source      string `json:"source"`
	OriginalURL string `gorm:"column:original_url" json:"original_url"`
	MimeType    string `gorm:"column:mime_type;default:image/webp" json:"mime_type"`

	DownloadedAt time.Time `gorm:"column:downloaded_at;not null;default:now()" json:"downloaded_at"`
}

func (RecipeImage) TableName() string { return "recipe_image" }
