package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/timezone"
)

var (
	errInvalidRequest  = httperr.Validation("invalid_request", "Invalid request body.")
	errInvalidDatetime = httperr.Validation("invalid_datetime", "Invalid datetime, expected YYYY-MM-DDTHH:MM:SS.")
	errInvalidDate     = httperr.Validation("invalid_date", "Invalid date, expected YYYY-MM-DD.")
	errInvalidID       = httperr.Validation("invalid_id", "Invalid id.")
)

// --------------------------------------------------
// Wire datetimes
// --------------------------------------------------

func parseDateTime(loc *time.Location, s string) (time.Time, error) {
	t, err := timezone.Parse(s, loc)
	if err != nil {
		return time.Time{}, errInvalidDatetime
	}
	return t, nil
}

// parseDateRange reads start_date / end_date (YYYY-MM-DD, local). The end
// date is inclusive.
func parseDateRange(c *gin.Context, loc *time.Location) (from, to *time.Time, err error) {
	if s := c.Query("start_date"); s != "" {
		d, perr := time.ParseInLocation("2006-01-02", s, loc)
		if perr != nil {
			return nil, nil, errInvalidDate
		}
		from = &d
	}
	if s := c.Query("end_date"); s != "" {
		d, perr := time.ParseInLocation("2006-01-02", s, loc)
		if perr != nil {
			return nil, nil, errInvalidDate
		}
		d = d.AddDate(0, 0, 1)
		to = &d
	}
	return from, to, nil
}

// --------------------------------------------------
// Params
// --------------------------------------------------

func idParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}

func uintQuery(c *gin.Context, key string) (*uint, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil || v == 0 {
		return nil, httperr.Validation("invalid_"+key, "Invalid "+key+".")
	}
	id := uint(v)
	return &id, nil
}
