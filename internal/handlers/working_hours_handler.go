package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/middleware"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
	accountuc "github.com/BruksfildServices01/barbershop-scheduler/internal/usecase/account"
)

type WorkingHoursHandler struct {
	svc *accountuc.Service
}

func NewWorkingHoursHandler(svc *accountuc.Service) *WorkingHoursHandler {
	return &WorkingHoursHandler{svc: svc}
}

type WorkingDayConfig struct {
	Weekday    *int   `json:"weekday" binding:"required,min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"dive"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	hours, err := h.svc.Schedule(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		httperr.Respond(c, err, "failed_to_get_working_hours")
		return
	}
	httpresp.OK(c, hours)
}

func (h *WorkingHoursHandler) Update(c *gin.Context) {
	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, errInvalidRequest, "invalid_request")
		return
	}

	days := make([]models.WorkingHours, 0, len(req.Days))
	for _, d := range req.Days {
		days = append(days, models.WorkingHours{
			Weekday:    *d.Weekday,
			Active:     d.Active,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			LunchStart: d.LunchStart,
			LunchEnd:   d.LunchEnd,
		})
	}

	hours, err := h.svc.ReplaceSchedule(c.Request.Context(), middleware.SessionFrom(c), days)
	if err != nil {
		httperr.Respond(c, err, "failed_to_save_working_hours")
		return
	}
	httpresp.OK(c, hours)
}
