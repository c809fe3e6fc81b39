package account

import "github.com/BruksfildServices01/barbershop-scheduler/internal/models"

// Session identifies the caller of an operation. It is built once per
// request from the bearer token and passed explicitly.
type Session struct {
	UserID   uint
	Username string
	Role     models.Role
}

func (s Session) IsAdmin() bool  { return s.Role == models.RoleAdmin }
func (s Session) IsBarber() bool { return s.Role == models.RoleBarber }
func (s Session) IsClient() bool { return s.Role == models.RoleClient }
