package types

import (
	"time"
)

type Product struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FamilyID    int64     `gorm:"not null;index;column:family_id" json:"familyId"`
	Name        string    `gorm:"not null;column:name" json:"name"`
	Description string    `gorm:"not null;column:description" json:"description"`
	Price       string    `gorm:"not null;column:price" json:"price"`
	ImageURL    string    `gorm:"not null;column:image_url" json:"imageUrl"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Product) TableName() string {
	return "products"
}

// ProductWithFamily is the enriched read model served by GET /api/products.
// Family is omitted when the owning user no longer exists.
type ProductWithFamily struct {
	Product
	Family *User `gorm:"-" json:"family,omitempty"`
}
