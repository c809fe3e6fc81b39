package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/dto"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/media"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/middleware"
	accountuc "github.com/BruksfildServices01/barbershop-scheduler/internal/usecase/account"
)

type ProfileHandler struct {
	svc *accountuc.Service
	loc *time.Location
}

func NewProfileHandler(svc *accountuc.Service, loc *time.Location) *ProfileHandler {
	return &ProfileHandler{svc: svc, loc: loc}
}

func (h *ProfileHandler) Barbers(c *gin.Context) {
	list, err := h.svc.Barbers(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err, "barbers_list_failed")
		return
	}
	httpresp.OK(c, dto.BarberProfiles(list, h.loc))
}

func (h *ProfileHandler) Me(c *gin.Context) {
	u, err := h.svc.Me(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		httperr.Respond(c, err, "profile_failed")
		return
	}
	httpresp.OK(c, dto.Profile(*u, h.loc))
}

// Avatar accepts a multipart "file" field.
func (h *ProfileHandler) Avatar(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, media.MaxUploadBytes)

	fh, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "file_required", "Upload the image in the \"file\" field (max 5MB).")
		return
	}
	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "file_unreadable", "Could not read the uploaded file.")
		return
	}
	defer f.Close()

	url, err := h.svc.UpdateAvatar(c.Request.Context(), middleware.SessionFrom(c), f)
	if err != nil {
		if errors.Is(err, accountuc.ErrAvatarStorageDisabled) {
			httperr.Write(c, http.StatusServiceUnavailable, "avatar_storage_disabled", "Avatar upload is not available.")
			return
		}
		httperr.Respond(c, err, "avatar_upload_failed")
		return
	}

	httpresp.OK(c, gin.H{"avatar_url": url})
}

func (h *ProfileHandler) ToggleActive(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		httperr.Respond(c, err, "invalid_request")
		return
	}

	u, err := h.svc.ToggleActive(c.Request.Context(), middleware.SessionFrom(c), id)
	if err != nil {
		httperr.Respond(c, err, "toggle_active_failed")
		return
	}

	msg := "Profile deactivated"
	if u.Active {
		msg = "Profile activated"
	}
	httpresp.OK(c, gin.H{"id": u.ID, "active": u.Active, "message": msg})
}
