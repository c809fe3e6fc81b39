package dto

import (
	"strconv"
	"time"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/timezone"
)

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func timePtr(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	s := timezone.Format(*t, loc)
	return &s
}
