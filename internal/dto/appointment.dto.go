package dto

import (
	"time"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/timezone"
)

type ServiceDTO struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
	Price           string `json:"price"`
	Description     string `json:"description"`
	Active          bool   `json:"active"`
}

func Service(s models.Service) ServiceDTO {
	return ServiceDTO{
		ID:              s.ID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Price:           money(s.Price),
		Description:     s.Description,
		Active:          s.Active,
	}
}

func Services(in []models.Service) []ServiceDTO {
	out := make([]ServiceDTO, len(in))
	for i, s := range in {
		out[i] = Service(s)
	}
	return out
}

type AppointmentDTO struct {
	ID uint `json:"id"`

	Client      UserDTO    `json:"client"`
	ClientName  string     `json:"client_name"`
	Barber      UserDTO    `json:"barber"`
	BarberName  string     `json:"barber_name"`
	Service     ServiceDTO `json:"service"`
	ServiceName string     `json:"service_name"`

	AppointmentDatetime string `json:"appointment_datetime"`
	EndDatetime         string `json:"end_datetime"`
	DurationMinutes     int    `json:"duration_minutes"`

	Status       models.AppointmentStatus `json:"status"`
	Notes        string                   `json:"notes"`
	CancelReason string                   `json:"cancel_reason,omitempty"`
	CanceledAt   *string                  `json:"canceled_at,omitempty"`
	CompletedAt  *string                  `json:"completed_at,omitempty"`

	CreatedAt string `json:"created_at"`
	Active    bool   `json:"active"`
}

func Appointment(ap models.Appointment, loc *time.Location) AppointmentDTO {
	return AppointmentDTO{
		ID:                  ap.ID,
		Client:              User(ap.Client),
		ClientName:          ap.Client.Username,
		Barber:              User(ap.Barber),
		BarberName:          ap.Barber.Username,
		Service:             Service(ap.Service),
		ServiceName:         ap.Service.Name,
		AppointmentDatetime: timezone.Format(ap.StartTime, loc),
		EndDatetime:         timezone.Format(ap.End(), loc),
		DurationMinutes:     ap.DurationMinutes,
		Status:              ap.Status,
		Notes:               ap.Notes,
		CancelReason:        ap.CancelReason,
		CanceledAt:          timePtr(ap.CanceledAt, loc),
		CompletedAt:         timePtr(ap.CompletedAt, loc),
		CreatedAt:           timezone.Format(ap.CreatedAt, loc),
		Active:              ap.Active,
	}
}

func Appointments(in []models.Appointment, loc *time.Location) []AppointmentDTO {
	out := make([]AppointmentDTO, len(in))
	for i, ap := range in {
		out[i] = Appointment(ap, loc)
	}
	return out
}

type AvailabilityDTO struct {
	Available    bool    `json:"available"`
	Reason       string  `json:"reason,omitempty"`
	BarberID     uint    `json:"barber_id"`
	Datetime     string  `json:"datetime"`
	ConflictTime *string `json:"conflict_time,omitempty"`
}

func Availability(a appointment.Availability, loc *time.Location) AvailabilityDTO {
	return AvailabilityDTO{
		Available:    a.Available,
		Reason:       a.Reason,
		BarberID:     a.BarberID,
		Datetime:     timezone.Format(a.Start, loc),
		ConflictTime: timePtr(a.ConflictTime, loc),
	}
}
