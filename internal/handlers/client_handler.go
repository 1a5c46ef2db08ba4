package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/harmoniahq/practice-api/internal/httperr"
	"github.com/harmoniahq/practice-api/internal/httpresp"
	"github.com/harmoniahq/practice-api/internal/middleware"
	"github.com/harmoniahq/practice-api/internal/services"
)

type ClientHandler struct {
	svc *services.ClientService
}

func NewClientHandler(svc *services.ClientService) *ClientHandler {
	return &ClientHandler{svc: svc}
}

func (h *ClientHandler) Create(c *gin.Context) {
	var in services.CreateClientInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	client, err := h.svc.Create(middleware.CurrentUser(c), in)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.Created(c, client)
}

func (h *ClientHandler) List(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))

	clients, err := h.svc.List(middleware.CurrentUser(c).TenantID, query)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.List(c, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	client, err := h.svc.Get(middleware.CurrentUser(c).TenantID, id)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in services.CreateClientInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	client, err := h.svc.Update(middleware.CurrentUser(c), id, in)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, client)
}

func (h *ClientHandler) Patch(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in services.UpdateClientInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	client, err := h.svc.Patch(middleware.CurrentUser(c), id, in)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(middleware.CurrentUser(c), id); err != nil {
		httperr.From(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
