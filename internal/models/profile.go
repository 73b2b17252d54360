package models

import "time"

// Profile represents the application-side record of an identity-provider account.
// Its ID is the identity provider's user id.
type Profile struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	FullName  string
	Email     string `gorm:"index"`
	Phone     string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Profile) TableName() string {
	return Profiles
}
