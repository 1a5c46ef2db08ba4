package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harmoniahq/practice-api/internal/httperr"
	"github.com/harmoniahq/practice-api/internal/httpresp"
	"github.com/harmoniahq/practice-api/internal/middleware"
	"github.com/harmoniahq/practice-api/internal/services"
)

type AppointmentHandler struct {
	svc *services.AppointmentService
}

func NewAppointmentHandler(svc *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{svc: svc}
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var in services.CreateAppointmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	appt, err := h.svc.Create(middleware.CurrentUser(c), in)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.Created(c, appt)
}

func (h *AppointmentHandler) List(c *gin.Context) {
	filter := services.AppointmentFilter{
		PractitionerID: queryUint(c, "practitioner_id"),
		ClientID:       queryUint(c, "client_id"),
	}

	appts, err := h.svc.List(middleware.CurrentUser(c).TenantID, filter)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.List(c, appts)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	appt, err := h.svc.Get(middleware.CurrentUser(c).TenantID, id)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, appt)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in services.CreateAppointmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	appt, err := h.svc.Update(middleware.CurrentUser(c), id, in)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, appt)
}

func (h *AppointmentHandler) Patch(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in services.UpdateAppointmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	appt, err := h.svc.Patch(middleware.CurrentUser(c), id, in)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, appt)
}

type changeStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// ChangeStatus handles PATCH /appointments/:id/status.
func (h *AppointmentHandler) ChangeStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in changeStatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	appt, err := h.svc.ChangeStatus(middleware.CurrentUser(c), id, in.Status)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, appt)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
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
