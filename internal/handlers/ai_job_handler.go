package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harmoniahq/practice-api/internal/httperr"
	"github.com/harmoniahq/practice-api/internal/httpresp"
	"github.com/harmoniahq/practice-api/internal/middleware"
	"github.com/harmoniahq/practice-api/internal/services"
)

type AIJobHandler struct {
	svc *services.AIJobService
}

func NewAIJobHandler(svc *services.AIJobService) *AIJobHandler {
	return &AIJobHandler{svc: svc}
}

func (h *AIJobHandler) Create(c *gin.Context) {
	var in services.CreateAIJobInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	job, err := h.svc.Create(middleware.CurrentUser(c), in)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.Created(c, job)
}

func (h *AIJobHandler) List(c *gin.Context) {
	filter := services.AIJobFilter{
		Status: queryString(c, "status"),
		Type:   queryString(c, "type"),
	}

	jobs, err := h.svc.List(middleware.CurrentUser(c).TenantID, filter)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.List(c, jobs)
}

func (h *AIJobHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	job, err := h.svc.Get(middleware.CurrentUser(c).TenantID, id)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, job)
}

func (h *AIJobHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in services.CreateAIJobInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	job, err := h.svc.Update(middleware.CurrentUser(c), id, in)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, job)
}

func (h *AIJobHandler) Patch(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in services.UpdateAIJobInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	job, err := h.svc.Patch(middleware.CurrentUser(c), id, in)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, job)
}

func (h *AIJobHandler) Delete(c *gin.Context) {
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
