package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/care-scheduler/internal/dto"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
	usecase "github.com/BruksfildServices01/care-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create     *usecase.CreateAppointment
	cancel     *usecase.CancelAppointment
	reschedule *usecase.RescheduleAppointment
	byDate     *usecase.ListAppointmentsByDate
	byMonth    *usecase.ListAppointmentsByMonth
	byClient   *usecase.ListClientAppointments
	all        *usecase.ListAllAppointments
	loc        *time.Location
}

func NewAppointmentHandler(
	create *usecase.CreateAppointment,
	cancel *usecase.CancelAppointment,
	reschedule *usecase.RescheduleAppointment,
	byDate *usecase.ListAppointmentsByDate,
	byMonth *usecase.ListAppointmentsByMonth,
	byClient *usecase.ListClientAppointments,
	all *usecase.ListAllAppointments,
	loc *time.Location,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:     create,
		cancel:     cancel,
		reschedule: reschedule,
		byDate:     byDate,
		byMonth:    byMonth,
		byClient:   byClient,
		all:        all,
		loc:        loc,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID  uint   `json:"client_id" binding:"required"`
	Procedure string `json:"procedure" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Comment   string `json:"comment"`
}

type RescheduleAppointmentRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

// Create serves both the chat client and the operator booking on behalf of
// a client.
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	date, ok := parseDate(c, req.Date, h.loc)
	if !ok {
		return
	}
	start, ok := parseTimeOfDay(c, req.Time)
	if !ok {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), usecase.CreateAppointmentInput{
		ClientID:  req.ClientID,
		Procedure: req.Procedure,
		Date:      date,
		Start:     start,
		Comment:   req.Comment,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, single(ap))
}

// ======================================================
// CANCEL / RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, single(ap))
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	date, ok := parseDate(c, req.Date, h.loc)
	if !ok {
		return
	}
	start, ok := parseTimeOfDay(c, req.Time)
	if !ok {
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), usecase.RescheduleAppointmentInput{
		AppointmentID: id,
		Date:          date,
		Start:         start,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, single(ap))
}

// ======================================================
// LISTS
// ======================================================

func (h *AppointmentHandler) ListForClient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	out, err := h.byClient.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, out)
}

// List is the operator view: ?date=, ?year=&month=, or everything.
func (h *AppointmentHandler) List(c *gin.Context) {
	var (
		out []dto.AppointmentListDTO
		err error
	)

	month, ok := parseMonth(c)
	if !ok {
		return
	}

	switch {
	case c.Query("date") != "":
		date, ok := parseDate(c, c.Query("date"), h.loc)
		if !ok {
			return
		}
		out, err = h.byDate.Execute(c.Request.Context(), date)
	case month != nil:
		out, err = h.byMonth.Execute(c.Request.Context(), *month)
	default:
		out, err = h.all.Execute(c.Request.Context())
	}

	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, out)
}

func single(ap *models.Appointment) dto.AppointmentListDTO {
	return dto.NewAppointmentList([]models.Appointment{*ap})[0]
}
