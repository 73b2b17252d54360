package models

import "time"

// Property represents a rentable unit owned by a landlord profile
type Property struct {
	ID          string   `gorm:"primaryKey;type:varchar(36)"`
	OwnerID     string   `gorm:"type:varchar(36);not null;index"`
	Owner       *Profile `gorm:"foreignKey:OwnerID"`
	Name        string
	Address     string
	City        string
	RentAmount  float64 `gorm:"type:decimal(10,2)"`
	IsVacant    bool
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Property) TableName() string {
	return Properties
}
