package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/dto"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
	accountuc "github.com/BruksfildServices01/barbershop-scheduler/internal/usecase/account"
)

type AuthHandler struct {
	svc *accountuc.Service
	loc *time.Location
}

func NewAuthHandler(svc *accountuc.Service, loc *time.Location) *AuthHandler {
	return &AuthHandler{svc: svc, loc: loc}
}

// --------- Requests ---------

type RegisterRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Role        string `json:"role"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, errInvalidRequest, "invalid_request")
		return
	}

	u, token, err := h.svc.Register(c.Request.Context(), accountuc.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Role:      models.Role(req.Role),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.PhoneNumber,
	})
	if err != nil {
		httperr.Respond(c, err, "register_failed")
		return
	}

	httpresp.Created(c, dto.AuthDTO{Token: token, User: dto.Profile(*u, h.loc)})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, errInvalidRequest, "invalid_request")
		return
	}

	u, token, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		httperr.Respond(c, err, "login_failed")
		return
	}

	httpresp.OK(c, dto.AuthDTO{Token: token, User: dto.Profile(*u, h.loc)})
}
