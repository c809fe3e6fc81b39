package account

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/auth"
	domainacc "github.com/BruksfildServices01/barbershop-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

type memAvatars struct{ keys []string }

func (m *memAvatars) Put(_ context.Context, key string, _ []byte, _ string) (string, error) {
	m.keys = append(m.keys, key)
	return "https://cdn.test/" + key, nil
}

func newService(t *testing.T, opts ...Option) (*Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	return New(store, auth.NewTokens("secret", time.Hour), nil, opts...), store
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	u, token, err := svc.Register(ctx, RegisterInput{
		Username: "carla", Email: " Carla@Example.test ", Password: "secret1",
	})
	if err != nil {
		t.Fatal(err)
	}
	if u.Role != models.RoleClient || u.Email != "carla@example.test" || token == "" {
		t.Fatalf("user = %+v token = %q", u, token)
	}

	if _, _, err := svc.Register(ctx, RegisterInput{Username: "carla", Email: "x@example.test", Password: "secret1"}); !httperr.IsCode(err, "username_taken") {
		t.Fatalf("dup username: err = %v", err)
	}
	if _, _, err := svc.Register(ctx, RegisterInput{Username: "carla2", Email: "carla@example.test", Password: "secret1"}); !httperr.IsCode(err, "email_taken") {
		t.Fatalf("dup email: err = %v", err)
	}

	got, token, err := svc.Login(ctx, "carla", "secret1")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != u.ID || token == "" {
		t.Fatalf("login = %+v", got)
	}
	if _, _, err := svc.Login(ctx, "carla", "wrong"); !httperr.IsKind(err, httperr.KindUnauthorized) {
		t.Fatalf("wrong password: err = %v", err)
	}
	if _, _, err := svc.Login(ctx, "nobody", "secret1"); !httperr.IsKind(err, httperr.KindUnauthorized) {
		t.Fatalf("unknown user: err = %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newService(t, WithEmailCheck(func(email string) bool { return !strings.HasSuffix(email, ".invalid") }))
	ctx := context.Background()

	cases := []RegisterInput{
		{Username: "ab", Email: "a@example.test", Password: "secret1"},
		{Username: "abc", Email: "nope", Password: "secret1"},
		{Username: "abc", Email: "a@example.test", Password: "123"},
		{Username: "abc", Email: "a@example.test", Password: "secret1", Role: models.RoleAdmin},
		{Username: "abc", Email: "a@mail.invalid", Password: "secret1"},
	}
	for _, in := range cases {
		if _, _, err := svc.Register(ctx, in); !httperr.IsKind(err, httperr.KindValidation) {
			t.Errorf("%+v: err = %v", in, err)
		}
	}
}

func TestReplaceSchedule(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	barber := models.User{Username: "bruno", Email: "b@example.test", Role: models.RoleBarber, Active: true}
	if err := store.CreateUser(ctx, &barber); err != nil {
		t.Fatal(err)
	}
	sess := domainacc.Session{UserID: barber.ID, Role: models.RoleBarber}

	days := []models.WorkingHours{
		{Weekday: 2, StartTime: "09:00", EndTime: "18:00", Active: true},
		{Weekday: 1, StartTime: "09:00", EndTime: "18:00", LunchStart: "12:00", LunchEnd: "13:00", Active: true},
	}
	got, err := svc.ReplaceSchedule(ctx, sess, days)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Weekday != 1 {
		t.Fatalf("schedule = %+v", got)
	}

	bad := []models.WorkingHours{{Weekday: 1, StartTime: "18:00", EndTime: "09:00", Active: true}}
	if _, err := svc.ReplaceSchedule(ctx, sess, bad); !httperr.IsKind(err, httperr.KindValidation) {
		t.Fatalf("err = %v", err)
	}
	dup := []models.WorkingHours{days[0], days[0]}
	if _, err := svc.ReplaceSchedule(ctx, sess, dup); !httperr.IsKind(err, httperr.KindValidation) {
		t.Fatalf("err = %v", err)
	}

	client := domainacc.Session{UserID: 999, Role: models.RoleClient}
	if _, err := svc.Schedule(ctx, client); !httperr.IsKind(err, httperr.KindForbidden) {
		t.Fatalf("err = %v", err)
	}
}

func TestUpdateAvatar(t *testing.T) {
	avatars := &memAvatars{}
	svc, store := newService(t, WithAvatarStore(avatars))
	ctx := context.Background()

	barber := models.User{Username: "bruno", Email: "b@example.test", Role: models.RoleBarber, Active: true}
	if err := store.CreateUser(ctx, &barber); err != nil {
		t.Fatal(err)
	}
	sess := domainacc.Session{UserID: barber.ID, Role: models.RoleBarber}

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 32, 32))); err != nil {
		t.Fatal(err)
	}

	url, err := svc.UpdateAvatar(ctx, sess, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(url, "https://cdn.test/avatars/") || len(avatars.keys) != 1 {
		t.Fatalf("url = %q keys = %v", url, avatars.keys)
	}

	me, err := svc.Me(ctx, sess)
	if err != nil {
		t.Fatal(err)
	}
	if me.AvatarURL != url {
		t.Fatalf("avatar url = %q", me.AvatarURL)
	}

	if _, err := svc.UpdateAvatar(ctx, sess, strings.NewReader("nope")); !httperr.IsCode(err, "invalid_image") {
		t.Fatalf("err = %v", err)
	}
}

func TestToggleActive(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	barber, _, err := svc.Register(ctx, RegisterInput{
		Username: "bruno", Email: "bruno@example.test", Password: "secret1", Role: models.RoleBarber,
	})
	if err != nil {
		t.Fatal(err)
	}
	admin := domainacc.Session{UserID: 500, Username: "root", Role: models.RoleAdmin}

	if _, err := svc.ToggleActive(ctx, domainacc.Session{UserID: barber.ID, Role: models.RoleBarber}, barber.ID); !httperr.IsKind(err, httperr.KindForbidden) {
		t.Fatalf("barber toggle: err = %v", err)
	}

	u, err := svc.ToggleActive(ctx, admin, barber.ID)
	if err != nil {
		t.Fatal(err)
	}
	if u.Active {
		t.Fatal("expected barber to be deactivated")
	}
	if _, _, err := svc.Login(ctx, "bruno", "secret1"); !httperr.IsCode(err, "invalid_credentials") {
		t.Fatalf("inactive login: err = %v", err)
	}
	if list, err := svc.Barbers(ctx); err != nil || len(list) != 0 {
		t.Fatalf("barbers = %+v, err = %v", list, err)
	}

	u, err = svc.ToggleActive(ctx, admin, barber.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !u.Active {
		t.Fatal("expected barber to be reactivated")
	}
	if _, _, err := svc.Login(ctx, "bruno", "secret1"); err != nil {
		t.Fatalf("login after reactivation: %v", err)
	}

	if _, err := svc.ToggleActive(ctx, admin, 9999); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("unknown user: err = %v", err)
	}
}
