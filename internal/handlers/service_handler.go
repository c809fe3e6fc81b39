package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/account"
	domaincat "github.com/BruksfildServices01/barbershop-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/dto"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/middleware"
	cataloguc "github.com/BruksfildServices01/barbershop-scheduler/internal/usecase/catalog"
)

// ======================================================
// HANDLER
// ======================================================

type ServiceHandler struct {
	svc *cataloguc.Service
}

func NewServiceHandler(svc *cataloguc.Service) *ServiceHandler {
	return &ServiceHandler{svc: svc}
}

type ServiceRequest struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes" binding:"required"`
	// Price is accepted as a JSON number or a decimal string.
	Price  json.Number `json:"price" binding:"required"`
	Active *bool       `json:"active"`
}

func (r ServiceRequest) input() (cataloguc.ServiceInput, error) {
	price, err := r.Price.Float64()
	if err != nil {
		return cataloguc.ServiceInput{}, httperr.Validation("invalid_price", "Price must be a number.")
	}
	return cataloguc.ServiceInput{
		Name:            r.Name,
		Description:     r.Description,
		DurationMinutes: r.DurationMinutes,
		Price:           price,
		Active:          r.Active,
	}, nil
}

// ======================================================
// READ
// ======================================================

// List supports ?search=, ?ordering= and, for staff, ?include_inactive=true.
func (h *ServiceHandler) List(c *gin.Context) {
	var sess *account.Session
	if s := middleware.SessionFrom(c); s.UserID != 0 {
		sess = &s
	}

	list, err := h.svc.List(c.Request.Context(), sess, domaincat.ListQuery{
		IncludeInactive: c.Query("include_inactive") == "true",
		Search:          c.Query("search"),
		OrderBy:         c.Query("ordering"),
	})
	if err != nil {
		httperr.Respond(c, err, "services_list_failed")
		return
	}
	httpresp.OK(c, dto.Services(list))
}

func (h *ServiceHandler) Popular(c *gin.Context) {
	list, err := h.svc.Popular(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err, "services_popular_failed")
		return
	}
	httpresp.OK(c, dto.Services(list))
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		httperr.Respond(c, err, "invalid_request")
		return
	}
	svc, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err, "service_get_failed")
		return
	}
	httpresp.OK(c, dto.Service(*svc))
}

// ======================================================
// WRITE
// ======================================================

func (h *ServiceHandler) Create(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, errInvalidRequest, "invalid_request")
		return
	}

	in, err := req.input()
	if err != nil {
		httperr.Respond(c, err, "invalid_request")
		return
	}

	svc, err := h.svc.Create(c.Request.Context(), middleware.SessionFrom(c), in)
	if err != nil {
		httperr.Respond(c, err, "service_create_failed")
		return
	}
	httpresp.Created(c, dto.Service(*svc))
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		httperr.Respond(c, err, "invalid_request")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, errInvalidRequest, "invalid_request")
		return
	}

	in, err := req.input()
	if err != nil {
		httperr.Respond(c, err, "invalid_request")
		return
	}

	svc, err := h.svc.Update(c.Request.Context(), middleware.SessionFrom(c), id, in)
	if err != nil {
		httperr.Respond(c, err, "service_update_failed")
		return
	}
	httpresp.OK(c, dto.Service(*svc))
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		httperr.Respond(c, err, "invalid_request")
		return
	}

	if err := h.svc.Deactivate(c.Request.Context(), middleware.SessionFrom(c), id); err != nil {
		httperr.Respond(c, err, "service_delete_failed")
		return
	}
	httpresp.NoContent(c)
}
