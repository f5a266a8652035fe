package types

import (
	"time"
)

const (
	OrderStatusProcessing = "processing"
	OrderStatusAccepted   = "accepted"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

type Order struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID  int64     `gorm:"not null;index;column:customer_id" json:"customerId"`
	FamilyID    int64     `gorm:"not null;index;column:family_id" json:"familyId"`
	Status      string    `gorm:"not null;default:processing;column:status" json:"status"`
	TotalAmount string    `gorm:"not null;column:total_amount" json:"totalAmount"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItemWithProduct is an order line enriched with its product snapshot's
// current catalog record.
type OrderItemWithProduct struct {
	OrderItem
	Product *Product `gorm:"-" json:"product"`
}

// OrderWithDetails is an Order enriched with its items and the two user records
// on either side of it.
type OrderWithDetails struct {
	Order
	Items    []*OrderItemWithProduct `gorm:"-" json:"items"`
	Customer *User                   `gorm:"-" json:"customer"`
	Family   *User                   `gorm:"-" json:"family"`
}
