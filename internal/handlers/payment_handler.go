package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/dto"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/middleware"
	paymentuc "github.com/BruksfildServices01/barbershop-scheduler/internal/usecase/payment"
)

type PaymentHandler struct {
	svc *paymentuc.Service
	loc *time.Location
}

func NewPaymentHandler(svc *paymentuc.Service, loc *time.Location) *PaymentHandler {
	return &PaymentHandler{svc: svc, loc: loc}
}

type CreatePaymentRequest struct {
	AppointmentID uint `json:"appointment_id" binding:"required"`
}

func (h *PaymentHandler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, errInvalidRequest, "invalid_request")
		return
	}

	p, err := h.svc.Create(c.Request.Context(), middleware.SessionFrom(c), req.AppointmentID)
	if err != nil {
		httperr.Respond(c, err, "payment_create_failed")
		return
	}
	httpresp.Created(c, dto.Payment(*p, h.loc))
}

func (h *PaymentHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		httperr.Respond(c, err, "payments_list_failed")
		return
	}
	httpresp.OK(c, dto.Payments(list, h.loc))
}

func (h *PaymentHandler) Stats(c *gin.Context) {
	st, err := h.svc.Stats(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		httperr.Respond(c, err, "payments_stats_failed")
		return
	}
	httpresp.OK(c, st)
}

func (h *PaymentHandler) MarkPaid(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		httperr.Respond(c, err, "invalid_request")
		return
	}

	p, err := h.svc.MarkPaid(c.Request.Context(), middleware.SessionFrom(c), id)
	if err != nil {
		httperr.Respond(c, err, "payment_mark_paid_failed")
		return
	}
	httpresp.OK(c, dto.Payment(*p, h.loc))
}
