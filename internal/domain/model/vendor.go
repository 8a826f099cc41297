package model

import "time"

type Vendor struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	LogoURL   string    `gorm:"type:text" json:"logoUrl,omitempty"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
}
