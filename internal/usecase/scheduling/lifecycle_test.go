package scheduling

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

func TestRescheduleOverlappingOwnSlot(t *testing.T) {
	f := newFixture(t)
	ap := f.mustBook(f.at(10, 0), 30)

	moved, err := f.svc.Reschedule(f.ctx, f.client, ap.ID, f.at(10, 15))
	if err != nil {
		t.Fatal(err)
	}
	if moved.ID != ap.ID {
		t.Fatalf("id changed: %d -> %d", ap.ID, moved.ID)
	}
	if !moved.StartTime.Equal(f.at(10, 15)) || !moved.EndTime.Equal(f.at(10, 45)) {
		t.Fatalf("slot = %v - %v", moved.StartTime, moved.EndTime)
	}
	if moved.Status != models.StatusBooked {
		t.Fatalf("status = %s", moved.Status)
	}

	if _, err := f.book(f.other, f.at(10, 0), 30); !httperr.IsKind(err, httperr.KindConflict) {
		t.Fatalf("10:00 should hit 10:15: %v", err)
	}
	// 9:45-10:15 overlaps only the old slot, which is free again.
	if _, err := f.book(f.other, f.at(9, 45), 30); err != nil {
		t.Fatalf("9:45-10:15 rejected: %v", err)
	}
}

func TestRescheduleConflictKeepsOriginal(t *testing.T) {
	f := newFixture(t)
	first := f.mustBook(f.at(10, 0), 30)
	f.mustBook(f.at(11, 0), 30)

	if _, err := f.svc.Reschedule(f.ctx, f.client, first.ID, f.at(11, 15)); !httperr.IsKind(err, httperr.KindConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}

	got, err := f.svc.Get(f.ctx, f.client, first.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.StartTime.Equal(f.at(10, 0)) {
		t.Fatalf("start moved to %v", got.StartTime)
	}
}

func TestRescheduleRules(t *testing.T) {
	f := newFixture(t)
	ap := f.mustBook(f.at(10, 0), 30)

	if _, err := f.svc.Reschedule(f.ctx, f.client, ap.ID, f.at(7, 0)); !httperr.IsKind(err, httperr.KindValidation) {
		t.Fatalf("past: err = %v", err)
	}
	if _, err := f.svc.Reschedule(f.ctx, f.other, ap.ID, f.at(15, 0)); !httperr.IsKind(err, httperr.KindForbidden) {
		t.Fatalf("stranger: err = %v", err)
	}
	if _, err := f.svc.Reschedule(f.ctx, f.barber, ap.ID, f.at(15, 0)); !httperr.IsKind(err, httperr.KindForbidden) {
		t.Fatalf("barber: err = %v", err)
	}
	if _, err := f.svc.Reschedule(f.ctx, f.admin, ap.ID, f.at(15, 0)); err != nil {
		t.Fatalf("admin: %v", err)
	}

	if _, err := f.svc.Cancel(f.ctx, f.client, ap.ID, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Reschedule(f.ctx, f.client, ap.ID, f.at(16, 0)); !httperr.IsKind(err, httperr.KindInvalidState) {
		t.Fatalf("canceled: err = %v", err)
	}
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	ap := f.mustBook(f.at(10, 0), 30)

	if _, err := f.svc.Cancel(f.ctx, f.other, ap.ID, "nope"); !httperr.IsKind(err, httperr.KindForbidden) {
		t.Fatalf("stranger: err = %v", err)
	}

	got, err := f.svc.Cancel(f.ctx, f.barber, ap.ID, "")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.StatusCanceled || got.CanceledAt == nil {
		t.Fatalf("got %+v", got)
	}
	if got.CancelReason != "No reason provided" {
		t.Fatalf("reason = %q", got.CancelReason)
	}

	if _, err := f.svc.Cancel(f.ctx, f.client, ap.ID, "again"); !httperr.IsKind(err, httperr.KindInvalidState) {
		t.Fatalf("second cancel: err = %v", err)
	}

	// The slot is free again.
	f.mustBook(f.at(10, 0), 30)
}

func TestComplete(t *testing.T) {
	f := newFixture(t)
	ap := f.mustBook(f.at(10, 0), 30)

	if _, err := f.svc.Complete(f.ctx, f.barber, ap.ID); !httperr.IsCode(err, "not_started") {
		t.Fatalf("early: err = %v", err)
	}

	f.now = f.at(10, 40)

	if _, err := f.svc.Complete(f.ctx, f.client, ap.ID); !httperr.IsKind(err, httperr.KindForbidden) {
		t.Fatalf("client: err = %v", err)
	}
	got, err := f.svc.Complete(f.ctx, f.barber, ap.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.StatusCompleted || got.CompletedAt == nil {
		t.Fatalf("got %+v", got)
	}

	if _, err := f.svc.Cancel(f.ctx, f.client, ap.ID, ""); !httperr.IsKind(err, httperr.KindInvalidState) {
		t.Fatalf("cancel completed: err = %v", err)
	}
	if _, err := f.svc.Complete(f.ctx, f.barber, ap.ID); !httperr.IsKind(err, httperr.KindInvalidState) {
		t.Fatalf("complete twice: err = %v", err)
	}
}

func TestCompleteDue(t *testing.T) {
	f := newFixture(t)
	early := f.mustBook(f.at(9, 0), 30)
	late := f.mustBook(f.at(12, 0), 30)
	canceled := f.mustBook(f.at(10, 0), 30)
	if _, err := f.svc.Cancel(f.ctx, f.client, canceled.ID, ""); err != nil {
		t.Fatal(err)
	}

	f.now = f.at(11, 0)
	n, err := f.svc.CompleteDue(f.ctx, f.now.Add(-15*time.Minute), 100)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("completed %d, want 1", n)
	}

	for id, want := range map[uint]models.AppointmentStatus{
		early.ID:    models.StatusCompleted,
		late.ID:     models.StatusBooked,
		canceled.ID: models.StatusCanceled,
	} {
		got, err := f.svc.Get(f.ctx, f.admin, id)
		if err != nil {
			t.Fatal(err)
		}
		if got.Status != want {
			t.Errorf("appointment %d: status %s, want %s", id, got.Status, want)
		}
	}
}

func TestUpcomingAndHistory(t *testing.T) {
	f := newFixture(t)
	a := f.mustBook(f.at(9, 0), 30)
	b := f.mustBook(f.at(11, 0), 30)
	c := f.mustBook(f.at(10, 0), 30)
	d := f.mustBook(f.at(13, 0), 30)
	if _, err := f.svc.Cancel(f.ctx, f.client, d.ID, ""); err != nil {
		t.Fatal(err)
	}
	f.now = f.at(9, 45)

	up, err := f.svc.Upcoming(f.ctx, f.client)
	if err != nil {
		t.Fatal(err)
	}
	if len(up) != 2 || up[0].ID != c.ID || up[1].ID != b.ID {
		t.Fatalf("upcoming = %v", ids(up))
	}

	hist, err := f.svc.History(f.ctx, f.client)
	if err != nil {
		t.Fatal(err)
	}
	if len(hist) != 2 || hist[0].ID != d.ID || hist[1].ID != a.ID {
		t.Fatalf("history = %v", ids(hist))
	}

	other, err := f.svc.Upcoming(f.ctx, f.other)
	if err != nil {
		t.Fatal(err)
	}
	if len(other) != 0 {
		t.Fatalf("other client sees %v", ids(other))
	}

	// Admins see their own bookings here, not the whole shop.
	adminUp, err := f.svc.Upcoming(f.ctx, f.admin)
	if err != nil {
		t.Fatal(err)
	}
	adminHist, err := f.svc.History(f.ctx, f.admin)
	if err != nil {
		t.Fatal(err)
	}
	if len(adminUp) != 0 || len(adminHist) != 0 {
		t.Fatalf("admin upcoming = %v, history = %v", ids(adminUp), ids(adminHist))
	}

	barberUp, err := f.svc.Upcoming(f.ctx, f.barber)
	if err != nil {
		t.Fatal(err)
	}
	if len(barberUp) != 2 {
		t.Fatalf("barber upcoming = %v", ids(barberUp))
	}

	st, err := f.svc.Stats(f.ctx, f.barber)
	if err != nil {
		t.Fatal(err)
	}
	if st.Total != 4 || st.Booked != 3 || st.Canceled != 1 {
		t.Fatalf("stats = %+v", st)
	}
}

func TestGetHidesOthersAppointments(t *testing.T) {
	f := newFixture(t)
	ap := f.mustBook(f.at(10, 0), 30)

	if _, err := f.svc.Get(f.ctx, f.other, ap.ID); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("err = %v", err)
	}
	if _, err := f.svc.Get(f.ctx, f.barber, ap.ID); err != nil {
		t.Fatal(err)
	}
}

func ids(list []models.Appointment) []uint {
	out := make([]uint, len(list))
	for i := range list {
		out[i] = list[i].ID
	}
	return out
}
