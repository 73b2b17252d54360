package models

import "time"

// Payment represents a rent payment. TenantID is nil for payments recorded
// directly against the landlord.
type Payment struct {
	ID         string   `gorm:"primaryKey;type:varchar(36)"`
	TenantID   *string  `gorm:"type:varchar(36);index"`
	Tenant     *Tenant  `gorm:"foreignKey:TenantID"`
	LandlordID string   `gorm:"type:varchar(36);not null;index"`
	Landlord   *Profile `gorm:"foreignKey:LandlordID"`
	Amount     float64  `gorm:"type:decimal(10,2)"`
	PaidAt     time.Time
	Method     string
	CreatedAt  time.Time
}

func (Payment) TableName() string {
	return Payments
}
