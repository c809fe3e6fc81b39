package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/lock"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/timezone"
)

type fixture struct {
	t     *testing.T
	ctx   context.Context
	store *memory.Store
	svc   *Service
	loc   *time.Location
	now   time.Time

	client  account.Session
	other   account.Session
	barber  account.Session
	admin   account.Session
	service models.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	loc := timezone.Location(timezone.DefaultTimezone)
	f := &fixture{
		t:     t,
		ctx:   context.Background(),
		store: memory.New(),
		loc:   loc,
		// Monday.
		now: time.Date(2030, 1, 7, 8, 0, 0, 0, loc),
	}

	f.client = f.user("carla", models.RoleClient)
	f.other = f.user("otto", models.RoleClient)
	f.barber = f.user("bruno", models.RoleBarber)
	f.admin = f.user("root", models.RoleAdmin)

	f.service = models.Service{Name: "Haircut", DurationMinutes: 30, Price: 50, Active: true}
	if err := f.store.CreateService(f.ctx, &f.service); err != nil {
		t.Fatal(err)
	}

	f.svc = New(Deps{
		Repo:     f.store,
		Locker:   lock.NewLocal(),
		Clock:    calendar.ClockFunc(func() time.Time { return f.now }),
		Location: loc,
	})
	return f
}

func (f *fixture) user(name string, role models.Role) account.Session {
	f.t.Helper()
	u := models.User{Username: name, Email: name + "@example.test", Role: role, Active: true}
	if err := f.store.CreateUser(f.ctx, &u); err != nil {
		f.t.Fatal(err)
	}
	return account.Session{UserID: u.ID, Username: u.Username, Role: u.Role}
}

// at is a wall-clock time on the fixture's Monday.
func (f *fixture) at(hour, minute int) time.Time {
	return time.Date(2030, 1, 7, hour, minute, 0, 0, f.loc)
}

func (f *fixture) book(sess account.Session, start time.Time, minutes int) (*models.Appointment, error) {
	return f.svc.Book(f.ctx, sess, BookInput{
		BarberID:        f.barber.UserID,
		ServiceID:       f.service.ID,
		Start:           start,
		DurationMinutes: minutes,
	})
}

func (f *fixture) mustBook(start time.Time, minutes int) *models.Appointment {
	f.t.Helper()
	ap, err := f.book(f.client, start, minutes)
	if err != nil {
		f.t.Fatalf("book %s: %v", start.Format(timezone.WireLayout), err)
	}
	return ap
}
