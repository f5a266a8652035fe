package types

type OrderItem struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64  `gorm:"not null;index;column:order_id" json:"orderId"`
	ProductID int64  `gorm:"not null;column:product_id" json:"productId"`
	Quantity  int    `gorm:"not null;column:quantity" json:"quantity"`
	// Price is the per-unit amount captured when the order was placed. It is
	// never recomputed from the current product record.
	Price string `gorm:"not null;column:price" json:"price"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
