package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harmoniahq/practice-api/internal/httperr"
	"github.com/harmoniahq/practice-api/internal/httpresp"
	"github.com/harmoniahq/practice-api/internal/middleware"
	"github.com/harmoniahq/practice-api/internal/services"
)

type ClientConsentHandler struct {
	svc *services.ClientConsentService
}

func NewClientConsentHandler(svc *services.ClientConsentService) *ClientConsentHandler {
	return &ClientConsentHandler{svc: svc}
}

func (h *ClientConsentHandler) Create(c *gin.Context) {
	var in services.CreateConsentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	consent, err := h.svc.Create(middleware.CurrentUser(c), in)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.Created(c, consent)
}

func (h *ClientConsentHandler) List(c *gin.Context) {
	consents, err := h.svc.List(middleware.CurrentUser(c).TenantID, queryUint(c, "client_id"))
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.List(c, consents)
}

func (h *ClientConsentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	consent, err := h.svc.Get(middleware.CurrentUser(c).TenantID, id)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, consent)
}

func (h *ClientConsentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in services.CreateConsentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	consent, err := h.svc.Update(middleware.CurrentUser(c), id, in)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, consent)
}

func (h *ClientConsentHandler) Patch(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in services.UpdateConsentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	consent, err := h.svc.Patch(middleware.CurrentUser(c), id, in)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, consent)
}

func (h *ClientConsentHandler) Delete(c *gin.Context) {
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
