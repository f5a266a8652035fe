package db

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sallatna/sallatna-backend/internal/logger"
	"github.com/sallatna/sallatna-backend/internal/types"
)

// Seed inserts the demo family/customer accounts and two products. It is
// idempotent: nothing happens when the family account already exists.
func Seed(ctx context.Context, gormDB *gorm.DB, log *logger.Logger) error {
	seedLog := log.With("component", "Seed")

	var count int64
	if err := gormDB.WithContext(ctx).
		Model(&types.User{}).
		Where("username = ?", "family1").
		Count(&count).Error; err != nil {
		return fmt.Errorf("Failed to check for existing seed user: %w", err)
	}
	if count > 0 {
		seedLog.Debug("Seed data already present, skipping")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("Failed to hash seed password: %w", err)
	}

	return gormDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		family := types.User{
			Username: "family1",
			Password: string(hashed),
			Role:     types.RoleFamily,
			Name:     "أسرة عبق الماضي",
		}
		if err := tx.Create(&family).Error; err != nil {
			return fmt.Errorf("Failed to create seed family user: %w", err)
		}

		customer := types.User{
			Username: "customer1",
			Password: string(hashed),
			Role:     types.RoleCustomer,
			Name:     "أحمد محمد",
		}
		if err := tx.Create(&customer).Error; err != nil {
			return fmt.Errorf("Failed to create seed customer user: %w", err)
		}

		seedProducts := []*types.Product{
			{
				FamilyID:    family.ID,
				Name:        "معمول تمر فاخر",
				Description: "معمول بالتمر السكري والزبدة الطبيعية، هش ولذيذ.",
				Price:       "45",
				ImageURL:    "https://images.unsplash.com/photo-1546069901-ba9599a7e63c",
			},
			{
				FamilyID:    family.ID,
				Name:        "كليجا قصيمية",
				Description: "كليجا محشوة بدبس التمر والبهارات القصيمية المميزة.",
				Price:       "35",
				ImageURL:    "https://images.unsplash.com/photo-1563729784474-d77dbb933a9e",
			},
		}
		if err := tx.Create(&seedProducts).Error; err != nil {
			return fmt.Errorf("Failed to create seed products: %w", err)
		}

		seedLog.Info("Seeded demo users and products")
		return nil
	})
}
