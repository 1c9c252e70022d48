package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/care-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/care-scheduler/internal/dto"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/httpresp"
	usecase "github.com/BruksfildServices01/care-scheduler/internal/usecase/schedule"
)

// ======================================================
// HANDLER (operator)
// ======================================================

type BlockHandler struct {
	blocker *usecase.Blocker
	loc     *time.Location
}

func NewBlockHandler(blocker *usecase.Blocker, loc *time.Location) *BlockHandler {
	return &BlockHandler{blocker: blocker, loc: loc}
}

// ======================================================
// REQUESTS
// ======================================================

type BlockDayRequest struct {
	Date string `json:"date" binding:"required"`
}

type BlockRangeRequest struct {
	Date  string `json:"date" binding:"required"`
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

// ======================================================
// ACTIONS
// ======================================================

func (h *BlockHandler) List(c *gin.Context) {
	date, ok := parseDate(c, c.Query("date"), h.loc)
	if !ok {
		return
	}

	ranges, err := h.blocker.BlockedRanges(c.Request.Context(), date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, dto.NewBlockedRanges(ranges))
}

func (h *BlockHandler) BlockDay(c *gin.Context) {
	var req BlockDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	date, ok := parseDate(c, req.Date, h.loc)
	if !ok {
		return
	}

	br, err := h.blocker.BlockWholeDay(c.Request.Context(), date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewBlockedRange(br))
}

func (h *BlockHandler) BlockRange(c *gin.Context) {
	var req BlockRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	date, ok := parseDate(c, req.Date, h.loc)
	if !ok {
		return
	}

	iv, err := schedule.ParseInterval(req.Start, req.End)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	br, err := h.blocker.BlockRange(c.Request.Context(), date, iv)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewBlockedRange(br))
}

func (h *BlockHandler) Unblock(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.blocker.Unblock(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
