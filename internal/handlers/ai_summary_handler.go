package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harmoniahq/practice-api/internal/httperr"
	"github.com/harmoniahq/practice-api/internal/httpresp"
	"github.com/harmoniahq/practice-api/internal/middleware"
	"github.com/harmoniahq/practice-api/internal/services"
)

type AISummaryHandler struct {
	svc *services.AISummaryService
}

func NewAISummaryHandler(svc *services.AISummaryService) *AISummaryHandler {
	return &AISummaryHandler{svc: svc}
}

func (h *AISummaryHandler) Create(c *gin.Context) {
	var in services.CreateAISummaryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	summary, err := h.svc.Create(middleware.CurrentUser(c), in)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.Created(c, summary)
}

func (h *AISummaryHandler) List(c *gin.Context) {
	summaries, err := h.svc.List(middleware.CurrentUser(c).TenantID, queryUint(c, "session_id"))
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.List(c, summaries)
}

func (h *AISummaryHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	summary, err := h.svc.Get(middleware.CurrentUser(c).TenantID, id)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, summary)
}

func (h *AISummaryHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in services.CreateAISummaryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	summary, err := h.svc.Update(middleware.CurrentUser(c), id, in)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, summary)
}

func (h *AISummaryHandler) Patch(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in services.UpdateAISummaryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	summary, err := h.svc.Patch(middleware.CurrentUser(c), id, in)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, summary)
}

func (h *AISummaryHandler) Delete(c *gin.Context) {
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
