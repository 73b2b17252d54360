package models

import "time"

// Tenant represents a person renting from a landlord. PropertyID is nil when
// the tenant is linked to the landlord but not yet assigned to a property.
type Tenant struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)"`
	LandlordID string    `gorm:"type:varchar(36);not null;index"`
	Landlord   *Profile  `gorm:"foreignKey:LandlordID"`
	PropertyID *string   `gorm:"type:varchar(36);index"`
	Property   *Property `gorm:"foreignKey:PropertyID"`
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	LeaseStart *time.Time
	LeaseEnd   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Tenant) TableName() string {
	return Tenants
}
