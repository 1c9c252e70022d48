package dto

import (
	"github.com/BruksfildServices01/care-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

type AppointmentListDTO struct {
	ID          uint   `json:"id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Procedure   string `json:"procedure"`
	ClientID    uint   `json:"client_id"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	Username    string `json:"username,omitempty"`
	Comment     string `json:"comment,omitempty"`
}

func NewAppointmentList(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, AppointmentListDTO{
			ID:          ap.ID,
			Date:        schedule.DateKey(ap.Date),
			StartTime:   ap.StartTime.HHMM(),
			EndTime:     ap.EndTime.HHMM(),
			Procedure:   ap.Procedure,
			ClientID:    ap.ClientID,
			ClientName:  clientName(ap.Client),
			ClientPhone: ap.Client.Telephone,
			Username:    ap.Client.Username,
			Comment:     ap.Comment,
		})
	}
	return out
}

// clientName prefers the name given at registration over the messenger one.
func clientName(c models.Client) string {
	if c.Name != "" {
		return c.Name
	}
	return c.FirstName
}
