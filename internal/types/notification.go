package types

import (
	"time"
)

type Notification struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;index;column:user_id" json:"userId"`
	Message   string    `gorm:"not null;column:message" json:"message"`
	IsRead    bool      `gorm:"not null;default:false;column:is_read" json:"isRead"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Notification) TableName() string {
	return "notifications"
}
