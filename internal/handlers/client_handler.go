package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/httpresp"
	usecase "github.com/BruksfildServices01/care-scheduler/internal/usecase/client"
)

type ClientHandler struct {
	register *usecase.RegisterClient
	update   *usecase.UpdateClient
	lookup   *usecase.Lookup
}

func NewClientHandler(
	register *usecase.RegisterClient,
	update *usecase.UpdateClient,
	lookup *usecase.Lookup,
) *ClientHandler {
	return &ClientHandler{register: register, update: update, lookup: lookup}
}

type RegisterClientRequest struct {
	ChatID    int64  `json:"chat_id"`
	Telephone string `json:"telephone" binding:"required"`
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
	Name      string `json:"name"`
}

type UpdateClientRequest struct {
	Name      *string `json:"name"`
	Telephone *string `json:"telephone"`
}

// ======================================================
// REGISTER (chat or operator)
// ======================================================
func (h *ClientHandler) Register(c *gin.Context) {
	var req RegisterClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	client, err := h.register.Execute(c.Request.Context(), usecase.RegisterClientInput{
		ChatID:    req.ChatID,
		Telephone: req.Telephone,
		FirstName: req.FirstName,
		Username:  req.Username,
		Name:      req.Name,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) ByChat(c *gin.Context) {
	chatID, err := strconv.ParseInt(c.Param("chatId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "invalid chat id.")
		return
	}

	client, err := h.lookup.ByChatID(c.Request.Context(), chatID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, client)
}

// ======================================================
// LIST / SEARCH (operator)
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	if phone := strings.TrimSpace(c.Query("phone")); phone != "" {
		clients, err := h.lookup.ByPhone(c.Request.Context(), phone)
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		httpresp.List(c, clients)
		return
	}

	clients, err := h.lookup.List(c.Request.Context(), c.Query("query"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, clients)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	client, err := h.update.Execute(c.Request.Context(), usecase.UpdateClientInput{
		ID:        id,
		Name:      req.Name,
		Telephone: req.Telephone,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, client)
}
