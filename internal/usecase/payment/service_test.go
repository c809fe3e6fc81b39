package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/httperr"
	infrapay "github.com/BruksfildServices01/barbershop-scheduler/internal/infra/payment"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

type stubProvider struct{ err error }

func (stubProvider) Name() string { return "stub" }

func (p stubProvider) CreateCheckout(_ context.Context, req infrapay.CheckoutRequest) (infrapay.Checkout, error) {
	if p.err != nil {
		return infrapay.Checkout{}, p.err
	}
	return infrapay.Checkout{ProviderRef: "ref-" + req.Reference, URL: "https://pay.test/" + req.Reference}, nil
}

type fixture struct {
	ctx    context.Context
	store  *memory.Store
	client account.Session
	barber account.Session
	ap     *models.Appointment
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{ctx: context.Background(), store: memory.New()}

	mk := func(name string, role models.Role) account.Session {
		u := models.User{Username: name, Email: name + "@example.test", Role: role, Active: true}
		if err := f.store.CreateUser(f.ctx, &u); err != nil {
			t.Fatal(err)
		}
		return account.Session{UserID: u.ID, Username: name, Role: role}
	}
	f.client = mk("carla", models.RoleClient)
	f.barber = mk("bruno", models.RoleBarber)

	svc := models.Service{Name: "Haircut", DurationMinutes: 30, Price: 45.5, Active: true}
	if err := f.store.CreateService(f.ctx, &svc); err != nil {
		t.Fatal(err)
	}
	f.ap = &models.Appointment{
		ClientID: f.client.UserID, BarberID: f.barber.UserID, ServiceID: svc.ID,
		StartTime: time.Date(2030, 1, 7, 10, 0, 0, 0, time.UTC), DurationMinutes: 30,
		Status: models.StatusBooked, Active: true,
	}
	if err := f.store.CreateAppointment(f.ctx, f.ap); err != nil {
		t.Fatal(err)
	}
	return f
}

func (f *fixture) service(p infrapay.Provider) *Service {
	now := time.Date(2030, 1, 7, 11, 0, 0, 0, time.UTC)
	return New(f.store, p, "BRL", calendar.ClockFunc(func() time.Time { return now }), nil, nil, nil)
}

func TestCreateAndMarkPaid(t *testing.T) {
	f := newFixture(t)
	svc := f.service(stubProvider{})

	p, err := svc.Create(f.ctx, f.client, f.ap.ID)
	if err != nil {
		t.Fatal(err)
	}
	if p.Amount != 45.5 || p.Currency != "BRL" || p.Status != models.PaymentPending {
		t.Fatalf("payment = %+v", p)
	}
	if p.CheckoutURL == "" || p.ProviderRef == "" {
		t.Fatalf("checkout not recorded: %+v", p)
	}

	if _, err := svc.MarkPaid(f.ctx, f.client, p.ID); !httperr.IsKind(err, httperr.KindForbidden) {
		t.Fatalf("client mark paid: err = %v", err)
	}

	paid, err := svc.MarkPaid(f.ctx, f.barber, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if paid.Status != models.PaymentCompleted || paid.PaidAt == nil {
		t.Fatalf("paid = %+v", paid)
	}

	if _, err := svc.MarkPaid(f.ctx, f.barber, p.ID); !httperr.IsKind(err, httperr.KindInvalidState) {
		t.Fatalf("second mark paid: err = %v", err)
	}

	list, err := svc.List(f.ctx, f.client)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("list = %d", len(list))
	}
}

func TestCreateProviderFailure(t *testing.T) {
	f := newFixture(t)
	svc := f.service(stubProvider{err: errors.New("down")})

	if _, err := svc.Create(f.ctx, f.client, f.ap.ID); !httperr.IsCode(err, "payment_provider_unavailable") {
		t.Fatalf("err = %v", err)
	}
}

func TestCreateManualProvider(t *testing.T) {
	f := newFixture(t)
	svc := f.service(nil)

	p, err := svc.Create(f.ctx, f.client, f.ap.ID)
	if err != nil {
		t.Fatal(err)
	}
	if p.Provider != "manual" || p.CheckoutURL != "" {
		t.Fatalf("payment = %+v", p)
	}
}

func TestStatsByStatus(t *testing.T) {
	f := newFixture(t)
	svc := f.service(nil)

	first, err := svc.Create(f.ctx, f.client, f.ap.ID)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.MarkPaid(f.ctx, f.barber, first.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(f.ctx, f.client, f.ap.ID); err != nil {
		t.Fatal(err)
	}

	for _, sess := range []account.Session{f.client, f.barber} {
		st, err := svc.Stats(f.ctx, sess)
		if err != nil {
			t.Fatal(err)
		}
		if st.TotalPayments != 2 || st.Pending != 1 || st.Completed != 1 || st.Refunded != 0 || st.TotalAmount != 91 {
			t.Fatalf("%s stats = %+v", sess.Username, st)
		}
	}

	stranger := account.Session{UserID: 999, Username: "nobody", Role: models.RoleClient}
	st, err := svc.Stats(f.ctx, stranger)
	if err != nil {
		t.Fatal(err)
	}
	if st.TotalPayments != 0 || st.TotalAmount != 0 {
		t.Fatalf("stranger stats = %+v", st)
	}
}
