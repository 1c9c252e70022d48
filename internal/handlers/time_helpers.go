package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/care-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/timezone"
)

// parseDate reads a YYYY-MM-DD value in the business timezone and writes a
// 400 when it is missing or malformed.
func parseDate(c *gin.Context, raw string, loc *time.Location) (time.Time, bool) {
	if raw == "" {
		httperr.BadRequest(c, httperr.CodeInvalidDate, "date is required (YYYY-MM-DD).")
		return time.Time{}, false
	}
	d, err := timezone.ParseDate(raw, loc)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidDate, "date must be YYYY-MM-DD.")
		return time.Time{}, false
	}
	return d, true
}

func parseTimeOfDay(c *gin.Context, raw string) (schedule.TimeOfDay, bool) {
	t, err := schedule.ParseTimeOfDay(raw)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInterval, "time must be HH:MM.")
		return 0, false
	}
	return t, true
}

// parseMonth reads optional year/month query params. Both or neither must be
// set; nil means no month was asked for.
func parseMonth(c *gin.Context) (*schedule.YearMonth, bool) {
	y, m := c.Query("year"), c.Query("month")
	if y == "" && m == "" {
		return nil, true
	}

	year, errY := strconv.Atoi(y)
	month, errM := strconv.Atoi(m)
	if errY != nil || errM != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, httperr.CodeInvalidDate, "year and month must both be numbers.")
		return nil, false
	}
	return &schedule.YearMonth{Year: year, Month: time.Month(month)}, true
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "invalid id.")
		return 0, false
	}
	return uint(id), true
}
