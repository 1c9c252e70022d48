package models

import (
	"time"

	"github.com/BruksfildServices01/care-scheduler/internal/domain/schedule"
)

type BlockedSlot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Date      time.Time          `gorm:"type:date;not null;index" json:"date"`
	StartTime schedule.TimeOfDay `gorm:"type:time;not null" json:"start_time"`
	EndTime   schedule.TimeOfDay `gorm:"type:time;not null" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
}
