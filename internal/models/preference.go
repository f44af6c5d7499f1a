package models

import (
	"time"
)

// Preference is a single key/value setting. Stored values overlay the fixed
// default set owned by the preferences service.
type Preference struct {
	Key       string    `json:"key" gorm:"primaryKey;column:key;not null"`
	Value     string    `json:"value" gorm:"not null"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at"`
}

// TableName specifies the table name for Preference Model
func (Preference) TableName() string {
	return "preferences"
}
