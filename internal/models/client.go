package models

import "time"

// Client is registered through the chat; ChatID is the messenger user id.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ChatID    *int64 `gorm:"uniqueIndex" json:"chat_id"`
	Telephone string `gorm:"size:20;not null;index" json:"telephone"`
	FirstName string `gorm:"size:100" json:"first_name"`
	Username  string `gorm:"size:100" json:"username"`
	Name      string `gorm:"size:100" json:"name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
