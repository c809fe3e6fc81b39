package appointment

import "time"

type Availability struct {
	Available    bool
	Reason       string
	BarberID     uint
	Start        time.Time
	ConflictTime *time.Time
}
