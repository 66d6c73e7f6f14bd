package achievements

import (
	"errors"
	"log/slog"

	"github.com/consistify/consistify-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seed inserts missing catalog rows into the achievements table. Existing
// rows keep their ids; description/icon/threshold updates are applied.
func Seed(db *gorm.DB, catalog *Catalog) error {
	for _, def := range catalog.All() {
		var existing models.Achievement
		err := db.Where("name = ?", def.Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row := models.Achievement{
				ID:            uuid.New(),
				Name:          def.Name,
				Description:   def.Description,
				Icon:          def.Icon,
				RequiredValue: def.RequiredValue,
			}
			if err := db.Create(&row).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"description":    def.Description,
			"icon":           def.Icon,
			"required_value": def.RequiredValue,
		}
		if err := db.Model(&existing).Updates(updates).Error; err != nil {
			return err
		}
	}

	slog.Info("achievement catalog seeded", "count", len(catalog.All()))
	return nil
}
