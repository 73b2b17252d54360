package models

import "time"

// MaintenanceRequest represents a repair request raised on a property
type MaintenanceRequest struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)"`
	PropertyID  *string   `gorm:"type:varchar(36);index"`
	Property    *Property `gorm:"foreignKey:PropertyID"`
	TenantID    *string   `gorm:"type:varchar(36);index"`
	Tenant      *Tenant   `gorm:"foreignKey:TenantID"`
	Title       string
	Description string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (MaintenanceRequest) TableName() string {
	return MaintenanceRequests
}
