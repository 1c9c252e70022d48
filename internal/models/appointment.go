package models

import (
	"time"

	"github.com/BruksfildServices01/care-scheduler/internal/domain/schedule"
)

// Appointment is unique per (date, start_time): a second booking of the same
// slot is rejected by the store.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `gorm:"index" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"client"`

	Procedure string `gorm:"size:100;not null" json:"procedure"`

	Date      time.Time          `gorm:"type:date;not null;uniqueIndex:idx_appointments_slot,priority:1" json:"date"`
	StartTime schedule.TimeOfDay `gorm:"type:time;not null;uniqueIndex:idx_appointments_slot,priority:2" json:"start_time"`
	EndTime   schedule.TimeOfDay `gorm:"type:time;not null" json:"end_time"`

	Comment string `gorm:"size:255" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ap Appointment) Interval() schedule.Interval {
	return schedule.Interval{Start: ap.StartTime, End: ap.EndTime}
}
