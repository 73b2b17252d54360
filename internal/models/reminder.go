package models

import "time"

// Reminder represents a scheduled rent or lease reminder
type Reminder struct {
	ID          string   `gorm:"primaryKey;type:varchar(36)"`
	SenderID    string   `gorm:"type:varchar(36);not null;index"`
	Sender      *Profile `gorm:"foreignKey:SenderID"`
	RecipientID string   `gorm:"type:varchar(36);not null;index"`
	Recipient   *Profile `gorm:"foreignKey:RecipientID"`
	TenantID    *string  `gorm:"type:varchar(36);index"`
	Tenant      *Tenant  `gorm:"foreignKey:TenantID"`
	Subject     string
	DueAt       time.Time
	SentAt      *time.Time
	CreatedAt   time.Time
}

func (Reminder) TableName() string {
	return Reminders
}
