package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harmoniahq/practice-api/internal/httperr"
	"github.com/harmoniahq/practice-api/internal/httpresp"
	"github.com/harmoniahq/practice-api/internal/middleware"
	"github.com/harmoniahq/practice-api/internal/services"
)

type SubscriptionPlanHandler struct {
	svc *services.SubscriptionPlanService
}

func NewSubscriptionPlanHandler(svc *services.SubscriptionPlanService) *SubscriptionPlanHandler {
	return &SubscriptionPlanHandler{svc: svc}
}

func (h *SubscriptionPlanHandler) Create(c *gin.Context) {
	var in services.CreatePlanInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	plan, err := h.svc.Create(middleware.CurrentUser(c), in)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.Created(c, plan)
}

func (h *SubscriptionPlanHandler) List(c *gin.Context) {
	plans, err := h.svc.List()
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.List(c, plans)
}

func (h *SubscriptionPlanHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	plan, err := h.svc.Get(id)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, plan)
}

func (h *SubscriptionPlanHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in services.CreatePlanInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	plan, err := h.svc.Update(middleware.CurrentUser(c), id, in)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, plan)
}

func (h *SubscriptionPlanHandler) Patch(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in services.UpdatePlanInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	plan, err := h.svc.Patch(middleware.CurrentUser(c), id, in)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, plan)
}

func (h *SubscriptionPlanHandler) Delete(c *gin.Context) {
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
