package models

import "time"

// Message represents a direct message between two profiles
type Message struct {
	ID          string   `gorm:"primaryKey;type:varchar(36)"`
	SenderID    string   `gorm:"type:varchar(36);not null;index"`
	Sender      *Profile `gorm:"foreignKey:SenderID"`
	RecipientID string   `gorm:"type:varchar(36);not null;index"`
	Recipient   *Profile `gorm:"foreignKey:RecipientID"`
	Body        string   `gorm:"type:text"`
	ReadAt      *time.Time
	CreatedAt   time.Time
}

func (Message) TableName() string {
	return Messages
}
