package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/care-scheduler/internal/dto"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/httpresp"
	usecase "github.com/BruksfildServices01/care-scheduler/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type ScheduleHandler struct {
	scheduler *usecase.Scheduler
	loc       *time.Location
}

func NewScheduleHandler(scheduler *usecase.Scheduler, loc *time.Location) *ScheduleHandler {
	return &ScheduleHandler{scheduler: scheduler, loc: loc}
}

// ======================================================
// QUERIES
// ======================================================

func (h *ScheduleHandler) Procedures(c *gin.Context) {
	httpresp.List(c, h.scheduler.Procedures())
}

func (h *ScheduleHandler) WorkingHours(c *gin.Context) {
	date, ok := parseDate(c, c.Query("date"), h.loc)
	if !ok {
		return
	}

	window, open, err := h.scheduler.ResolveWorkingHours(c.Request.Context(), date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	out := dto.WorkingHoursDTO{Date: c.Query("date"), Open: open}
	if open {
		iv := dto.NewInterval(window)
		out.Hours = &iv
	}
	httpresp.OK(c, out)
}

func (h *ScheduleHandler) Free(c *gin.Context) {
	date, ok := parseDate(c, c.Query("date"), h.loc)
	if !ok {
		return
	}

	free, err := h.scheduler.FreeIntervals(c.Request.Context(), date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, dto.NewIntervals(free))
}

// Slots without a procedure returns the free intervals.
func (h *ScheduleHandler) Slots(c *gin.Context) {
	date, ok := parseDate(c, c.Query("date"), h.loc)
	if !ok {
		return
	}

	slots, err := h.scheduler.CandidateSlots(c.Request.Context(), date, c.Query("procedure"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, dto.NewIntervals(slots))
}

func (h *ScheduleHandler) Dates(c *gin.Context) {
	month, ok := parseMonth(c)
	if !ok {
		return
	}
	if month != nil && !h.scheduler.MonthAllowed(*month) {
		httperr.BadRequest(c, httperr.CodeMonthOutOfRange, "month is outside the booking horizon.")
		return
	}

	dates, err := h.scheduler.AvailableDates(c.Request.Context(), c.Query("procedure"), month)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, dto.DateKeys(dates))
}

func (h *ScheduleHandler) Months(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"today":  h.scheduler.Today().Format("2006-01-02"),
		"months": h.scheduler.AvailableMonths(),
	})
}
