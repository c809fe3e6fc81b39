package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/audit"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/auth"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/lock"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/metrics"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/timezone"
	accountuc "github.com/BruksfildServices01/barbershop-scheduler/internal/usecase/account"
	cataloguc "github.com/BruksfildServices01/barbershop-scheduler/internal/usecase/catalog"
	paymentuc "github.com/BruksfildServices01/barbershop-scheduler/internal/usecase/payment"
	ratinguc "github.com/BruksfildServices01/barbershop-scheduler/internal/usecase/rating"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/usecase/scheduling"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ======================================================
// FIXTURE
// ======================================================

type server struct {
	t      *testing.T
	router *gin.Engine
	store  *memory.Store
	tokens *auth.Tokens
	now    time.Time

	client  string
	other   string
	barber  string
	admin   string
	barberU models.User
	service models.Service
}

func newServer(t *testing.T) *server {
	t.Helper()

	loc := timezone.Location(timezone.DefaultTimezone)
	s := &server{
		t:      t,
		store:  memory.New(),
		tokens: auth.NewTokens("test-secret", time.Hour),
		now:    time.Date(2030, 1, 7, 8, 0, 0, 0, loc),
	}
	clock := calendar.ClockFunc(func() time.Time { return s.now })
	m := metrics.NewCollector()
	log := zap.NewNop()
	auditLogger := audit.New(s.store)

	s.router = NewRouter(Deps{
		Scheduling: scheduling.New(scheduling.Deps{
			Repo:     s.store,
			Locker:   lock.NewLocal(),
			Clock:    clock,
			Metrics:  m,
			Log:      log,
			Location: loc,
		}),
		Ratings:  ratinguc.New(s.store, nil, m, log),
		Accounts: accountuc.New(s.store, s.tokens, log),
		Catalog:  cataloguc.New(s.store, nil),
		Payments: paymentuc.New(s.store, nil, "BRL", clock, nil, m, log),
		Audit:    auditLogger,
		Tokens:   s.tokens,
		Metrics:  m,
		Log:      log,
		Location: loc,
	})

	s.client, _ = s.user("carla", models.RoleClient)
	s.other, _ = s.user("otto", models.RoleClient)
	s.barber, s.barberU = s.user("bruno", models.RoleBarber)
	s.admin, _ = s.user("root", models.RoleAdmin)

	s.service = models.Service{Name: "Haircut", DurationMinutes: 30, Price: 50, Active: true}
	if err := s.store.CreateService(context.Background(), &s.service); err != nil {
		t.Fatal(err)
	}
	return s
}

func (s *server) user(name string, role models.Role) (string, models.User) {
	s.t.Helper()
	u := models.User{Username: name, Email: name + "@example.test", Role: role, Active: true}
	if err := s.store.CreateUser(context.Background(), &u); err != nil {
		s.t.Fatal(err)
	}
	token, err := s.tokens.Issue(&u)
	if err != nil {
		s.t.Fatal(err)
	}
	return token, u
}

func (s *server) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *server) book(token, datetime string) *httptest.ResponseRecorder {
	return s.do(http.MethodPost, "/api/appointments/", token, map[string]any{
		"barber_id":            s.barberU.ID,
		"service_id":           s.service.ID,
		"appointment_datetime": datetime,
		"duration_minutes":     30,
	})
}

func expect(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status = %d, want %d: %s", w.Code, status, w.Body.String())
	}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return out
}

type apiError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

type apptBody struct {
	ID                  uint   `json:"id"`
	AppointmentDatetime string `json:"appointment_datetime"`
	Status              string `json:"status"`
	Notes               string `json:"notes"`
	BarberName          string `json:"barber_name"`
}

// ======================================================
// TESTS
// ======================================================

func TestHealthAndMetrics(t *testing.T) {
	s := newServer(t)
	expect(t, s.do(http.MethodGet, "/health", "", nil), http.StatusOK)
	expect(t, s.do(http.MethodGet, "/metrics", "", nil), http.StatusOK)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	s := newServer(t)
	w := s.do(http.MethodGet, "/api/appointments/upcoming/", "", nil)
	expect(t, w, http.StatusUnauthorized)
	if e := decode[apiError](t, w); e.Code != "missing_authorization_header" {
		t.Fatalf("error_code = %q", e.Code)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	s := newServer(t)

	w := s.do(http.MethodPost, "/api/register/", "", map[string]any{
		"username": "maria",
		"email":    "maria@example.test",
		"password": "s3cret!",
	})
	expect(t, w, http.StatusCreated)
	reg := decode[struct {
		Token string `json:"token"`
		User  struct {
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"user"`
	}](t, w)
	if reg.Token == "" || reg.User.Username != "maria" || reg.User.Role != "client" {
		t.Fatalf("unexpected register body: %+v", reg)
	}

	expect(t, s.do(http.MethodPost, "/api/register/", "", map[string]any{
		"username": "maria",
		"email":    "other@example.test",
		"password": "s3cret!",
	}), http.StatusConflict)

	expect(t, s.do(http.MethodPost, "/api/login/", "", map[string]any{
		"username": "maria",
		"password": "s3cret!",
	}), http.StatusOK)

	w = s.do(http.MethodPost, "/api/login/", "", map[string]any{
		"username": "maria",
		"password": "wrong",
	})
	expect(t, w, http.StatusUnauthorized)
	if e := decode[apiError](t, w); e.Code != "invalid_credentials" {
		t.Fatalf("error_code = %q", e.Code)
	}
}

func TestCheckAvailabilityAndBook(t *testing.T) {
	s := newServer(t)

	type availability struct {
		Available    bool    `json:"available"`
		Reason       string  `json:"reason"`
		Datetime     string  `json:"datetime"`
		ConflictTime *string `json:"conflict_time"`
	}
	check := func(datetime string) availability {
		w := s.do(http.MethodPost, "/api/appointments/check_availability/", s.client, map[string]any{
			"barber_id":            s.barberU.ID,
			"appointment_datetime": datetime,
			"duration_minutes":     30,
		})
		expect(t, w, http.StatusOK)
		return decode[availability](t, w)
	}

	if a := check("2030-01-07T10:00:00"); !a.Available || a.Datetime != "2030-01-07T10:00:00" {
		t.Fatalf("empty calendar should be free: %+v", a)
	}

	w := s.book(s.client, "2030-01-07T10:00:00")
	expect(t, w, http.StatusCreated)
	ap := decode[apptBody](t, w)
	if ap.AppointmentDatetime != "2030-01-07T10:00:00" || ap.Status != "booked" || ap.BarberName != "bruno" {
		t.Fatalf("unexpected appointment: %+v", ap)
	}

	a := check("2030-01-07T10:15:00")
	if a.Available || a.ConflictTime == nil || *a.ConflictTime != "2030-01-07T10:00:00" {
		t.Fatalf("overlapping slot reported as %+v", a)
	}
	if a := check("2030-01-07T10:30:00"); !a.Available {
		t.Fatalf("back-to-back slot should be free: %+v", a)
	}
	if a := check("2030-01-07T07:00:00"); a.Available || a.Reason != calendar.ReasonPast {
		t.Fatalf("past slot reported as %+v", a)
	}

	w = s.book(s.other, "2030-01-07T10:15:00")
	expect(t, w, http.StatusConflict)
	if e := decode[apiError](t, w); e.Code != "time_conflict" {
		t.Fatalf("error_code = %q", e.Code)
	}

	expect(t, s.book(s.client, "2030-01-07T07:00:00"), http.StatusBadRequest)
	expect(t, s.book(s.client, "next tuesday"), http.StatusBadRequest)
}

func TestRescheduleCancelAndListings(t *testing.T) {
	s := newServer(t)

	ap := decode[apptBody](t, s.book(s.client, "2030-01-07T10:00:00"))
	other := decode[apptBody](t, s.book(s.other, "2030-01-07T11:00:00"))

	// Moving onto the other client's slot is refused.
	w := s.do(http.MethodPatch, "/api/appointments/"+itoa(ap.ID)+"/reschedule/", s.client, map[string]any{
		"appointment_datetime": "2030-01-07T11:15:00",
	})
	expect(t, w, http.StatusConflict)

	w = s.do(http.MethodPatch, "/api/appointments/"+itoa(ap.ID)+"/reschedule/", s.client, map[string]any{
		"appointment_datetime": "2030-01-07T14:00:00",
	})
	expect(t, w, http.StatusOK)
	if got := decode[apptBody](t, w); got.AppointmentDatetime != "2030-01-07T14:00:00" {
		t.Fatalf("rescheduled to %q", got.AppointmentDatetime)
	}

	// Other clients cannot see or touch the appointment.
	expect(t, s.do(http.MethodGet, "/api/appointments/"+itoa(ap.ID)+"/", s.other, nil), http.StatusNotFound)
	expect(t, s.do(http.MethodPatch, "/api/appointments/"+itoa(ap.ID)+"/cancel/", s.other, map[string]any{}), http.StatusForbidden)

	w = s.do(http.MethodPatch, "/api/appointments/"+itoa(other.ID)+"/cancel/", s.other, map[string]any{"reason": "sick"})
	expect(t, w, http.StatusOK)
	if got := decode[apptBody](t, w); got.Status != "canceled" {
		t.Fatalf("status = %q", got.Status)
	}
	expect(t, s.do(http.MethodPatch, "/api/appointments/"+itoa(other.ID)+"/cancel/", s.other, nil), http.StatusBadRequest)

	upcoming := decode[[]apptBody](t, s.do(http.MethodGet, "/api/appointments/upcoming/", s.client, nil))
	if len(upcoming) != 1 || upcoming[0].ID != ap.ID {
		t.Fatalf("client upcoming = %+v", upcoming)
	}
	history := decode[[]apptBody](t, s.do(http.MethodGet, "/api/appointments/history/", s.other, nil))
	if len(history) != 1 || history[0].ID != other.ID {
		t.Fatalf("other history = %+v", history)
	}

	barberList := decode[[]apptBody](t, s.do(http.MethodGet, "/api/appointments/?status=booked", s.barber, nil))
	if len(barberList) != 1 {
		t.Fatalf("barber booked list = %+v", barberList)
	}
	expect(t, s.do(http.MethodGet, "/api/appointments/?status=bogus", s.barber, nil), http.StatusBadRequest)

	stats := decode[struct {
		Total    int64 `json:"total"`
		Booked   int64 `json:"booked"`
		Canceled int64 `json:"canceled"`
	}](t, s.do(http.MethodGet, "/api/appointments/stats/", s.admin, nil))
	if stats.Total != 2 || stats.Booked != 1 || stats.Canceled != 1 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestCompleteAndRate(t *testing.T) {
	s := newServer(t)
	ap := decode[apptBody](t, s.book(s.client, "2030-01-07T10:00:00"))
	path := "/api/appointments/" + itoa(ap.ID)

	rate := func(token string, score int) *httptest.ResponseRecorder {
		return s.do(http.MethodPost, "/api/ratings/", token, map[string]any{
			"appointment_id": ap.ID,
			"score":          score,
			"comment":        "great fade",
		})
	}

	expect(t, rate(s.client, 5), http.StatusBadRequest)
	expect(t, s.do(http.MethodPatch, path+"/complete/", s.barber, nil), http.StatusBadRequest)

	s.now = s.now.Add(3 * time.Hour)
	expect(t, s.do(http.MethodPatch, path+"/complete/", s.client, nil), http.StatusForbidden)
	expect(t, s.do(http.MethodPatch, path+"/complete/", s.barber, nil), http.StatusOK)

	expect(t, rate(s.client, 6), http.StatusBadRequest)
	expect(t, rate(s.other, 4), http.StatusForbidden)
	expect(t, rate(s.client, 5), http.StatusCreated)

	w := rate(s.client, 3)
	expect(t, w, http.StatusConflict)
	if e := decode[apiError](t, w); e.Code != "already_rated" {
		t.Fatalf("error_code = %q", e.Code)
	}

	mine := decode[[]struct {
		Score    int    `json:"score"`
		UserName string `json:"user_name"`
	}](t, s.do(http.MethodGet, "/api/ratings/my_ratings/", s.client, nil))
	if len(mine) != 1 || mine[0].Score != 5 || mine[0].UserName != "carla" {
		t.Fatalf("my ratings = %+v", mine)
	}

	barbers := decode[[]struct {
		Username      string  `json:"username"`
		AverageRating float64 `json:"average_rating"`
		TotalRatings  int64   `json:"total_ratings"`
	}](t, s.do(http.MethodGet, "/api/profiles/barbers/", "", nil))
	if len(barbers) != 1 || barbers[0].AverageRating != 5 || barbers[0].TotalRatings != 1 {
		t.Fatalf("barbers = %+v", barbers)
	}

	stats := decode[struct {
		TotalRatings int64            `json:"total_ratings"`
		Distribution map[string]int64 `json:"rating_distribution"`
	}](t, s.do(http.MethodGet, "/api/ratings/barber_stats/?barber_id="+itoa(s.barberU.ID), s.client, nil))
	if stats.TotalRatings != 1 || stats.Distribution["5"] != 1 || stats.Distribution["1"] != 0 {
		t.Fatalf("barber stats = %+v", stats)
	}
	expect(t, s.do(http.MethodGet, "/api/ratings/barber_stats/", s.client, nil), http.StatusBadRequest)
}

func TestBarberAverageIsRoundedEverywhere(t *testing.T) {
	s := newServer(t)

	var ids []uint
	for _, at := range []string{"2030-01-07T09:00:00", "2030-01-07T10:00:00", "2030-01-07T11:00:00"} {
		ids = append(ids, decode[apptBody](t, s.book(s.client, at)).ID)
	}
	s.now = s.now.Add(6 * time.Hour)

	for i, score := range []int{4, 4, 3} {
		expect(t, s.do(http.MethodPatch, "/api/appointments/"+itoa(ids[i])+"/complete/", s.barber, nil), http.StatusOK)
		expect(t, s.do(http.MethodPost, "/api/ratings/", s.client, map[string]any{
			"appointment_id": ids[i],
			"score":          score,
		}), http.StatusCreated)
	}

	barbers := decode[[]struct {
		AverageRating float64 `json:"average_rating"`
		TotalRatings  int64   `json:"total_ratings"`
	}](t, s.do(http.MethodGet, "/api/profiles/barbers/", "", nil))
	if len(barbers) != 1 || barbers[0].AverageRating != 3.67 || barbers[0].TotalRatings != 3 {
		t.Fatalf("barbers = %+v", barbers)
	}

	stats := decode[struct {
		AverageRating float64 `json:"average_rating"`
	}](t, s.do(http.MethodGet, "/api/ratings/barber_stats/?barber_id="+itoa(s.barberU.ID), s.client, nil))
	if stats.AverageRating != barbers[0].AverageRating {
		t.Fatalf("barber_stats average = %v, listing = %v", stats.AverageRating, barbers[0].AverageRating)
	}
}

func TestCancelReasonWithChunkedBody(t *testing.T) {
	s := newServer(t)
	ap := decode[apptBody](t, s.book(s.client, "2030-01-07T10:00:00"))

	req := httptest.NewRequest(http.MethodPatch, "/api/appointments/"+itoa(ap.ID)+"/cancel/",
		strings.NewReader(`{"reason":"running late"}`))
	req.ContentLength = -1
	req.TransferEncoding = []string{"chunked"}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.client)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	expect(t, w, http.StatusOK)
	got := decode[struct {
		Status       string `json:"status"`
		CancelReason string `json:"cancel_reason"`
	}](t, w)
	if got.Status != "canceled" || got.CancelReason != "running late" {
		t.Fatalf("canceled = %+v", got)
	}
}

func TestToggleActive(t *testing.T) {
	s := newServer(t)
	path := "/api/profiles/" + itoa(s.barberU.ID) + "/toggle_active/"

	expect(t, s.do(http.MethodPatch, path, s.client, nil), http.StatusForbidden)

	w := s.do(http.MethodPatch, path, s.admin, nil)
	expect(t, w, http.StatusOK)
	got := decode[struct {
		ID     uint `json:"id"`
		Active bool `json:"active"`
	}](t, w)
	if got.ID != s.barberU.ID || got.Active {
		t.Fatalf("toggle = %+v", got)
	}

	barbers := decode[[]struct {
		ID uint `json:"id"`
	}](t, s.do(http.MethodGet, "/api/profiles/barbers/", "", nil))
	if len(barbers) != 0 {
		t.Fatalf("inactive barber still listed: %+v", barbers)
	}
	expect(t, s.book(s.client, "2030-01-07T10:00:00"), http.StatusBadRequest)

	expect(t, s.do(http.MethodPatch, "/api/profiles/9999/toggle_active/", s.admin, nil), http.StatusNotFound)
}

func TestServicesCatalog(t *testing.T) {
	s := newServer(t)

	list := decode[[]struct {
		Name  string `json:"name"`
		Price string `json:"price"`
	}](t, s.do(http.MethodGet, "/api/services/", "", nil))
	if len(list) != 1 || list[0].Price != "50.00" {
		t.Fatalf("services = %+v", list)
	}

	body := map[string]any{"name": "Beard", "duration_minutes": 20, "price": "35.50"}
	expect(t, s.do(http.MethodPost, "/api/services/", s.client, body), http.StatusForbidden)

	w := s.do(http.MethodPost, "/api/services/", s.barber, body)
	expect(t, w, http.StatusCreated)
	created := decode[struct {
		ID    uint   `json:"id"`
		Price string `json:"price"`
	}](t, w)
	if created.Price != "35.50" {
		t.Fatalf("price = %q", created.Price)
	}

	expect(t, s.do(http.MethodPost, "/api/services/", s.barber, map[string]any{
		"name": "Too long", "duration_minutes": 600, "price": 10,
	}), http.StatusBadRequest)

	expect(t, s.do(http.MethodDelete, "/api/services/"+itoa(created.ID)+"/", s.admin, nil), http.StatusNoContent)
	list = decode[[]struct {
		Name  string `json:"name"`
		Price string `json:"price"`
	}](t, s.do(http.MethodGet, "/api/services/", "", nil))
	if len(list) != 1 {
		t.Fatalf("deactivated service still listed: %+v", list)
	}
}

func TestWorkingHoursGateBooking(t *testing.T) {
	s := newServer(t)

	w := s.do(http.MethodPut, "/api/schedules/my_schedule/", s.barber, map[string]any{
		"days": []map[string]any{{
			"weekday":     1,
			"active":      true,
			"start_time":  "09:00",
			"end_time":    "18:00",
			"lunch_start": "12:00",
			"lunch_end":   "13:00",
		}},
	})
	expect(t, w, http.StatusOK)

	expect(t, s.do(http.MethodGet, "/api/schedules/my_schedule/", s.client, nil), http.StatusForbidden)

	w = s.book(s.client, "2030-01-07T12:15:00")
	expect(t, w, http.StatusConflict)
	if e := decode[apiError](t, w); e.Code != "outside_working_hours" {
		t.Fatalf("error_code = %q", e.Code)
	}
	expect(t, s.book(s.client, "2030-01-07T13:00:00"), http.StatusCreated)
}

func TestPaymentsManualProvider(t *testing.T) {
	s := newServer(t)
	ap := decode[apptBody](t, s.book(s.client, "2030-01-07T10:00:00"))

	w := s.do(http.MethodPost, "/api/payments/", s.client, map[string]any{"appointment_id": ap.ID})
	expect(t, w, http.StatusCreated)
	p := decode[struct {
		ID       uint   `json:"id"`
		Amount   string `json:"amount"`
		Status   string `json:"status"`
		Provider string `json:"provider"`
	}](t, w)
	if p.Amount != "50.00" || p.Status != "pending" || p.Provider != "manual" {
		t.Fatalf("payment = %+v", p)
	}

	expect(t, s.do(http.MethodPatch, "/api/payments/"+itoa(p.ID)+"/mark_paid/", s.client, nil), http.StatusForbidden)
	expect(t, s.do(http.MethodPatch, "/api/payments/"+itoa(p.ID)+"/mark_paid/", s.barber, nil), http.StatusOK)
	expect(t, s.do(http.MethodPatch, "/api/payments/"+itoa(p.ID)+"/mark_paid/", s.barber, nil), http.StatusBadRequest)

	mine := decode[[]struct {
		Status string `json:"status"`
	}](t, s.do(http.MethodGet, "/api/payments/", s.client, nil))
	if len(mine) != 1 || mine[0].Status != "completed" {
		t.Fatalf("payments = %+v", mine)
	}
	stats := decode[struct {
		TotalAmount   float64 `json:"total_amount"`
		TotalPayments int64   `json:"total_payments"`
		Completed     int64   `json:"completed"`
	}](t, s.do(http.MethodGet, "/api/payments/stats/", s.barber, nil))
	if stats.TotalPayments != 1 || stats.Completed != 1 || stats.TotalAmount != 50 {
		t.Fatalf("payment stats = %+v", stats)
	}
	other := decode[struct {
		TotalPayments int64 `json:"total_payments"`
	}](t, s.do(http.MethodGet, "/api/payments/stats/", s.other, nil))
	if other.TotalPayments != 0 {
		t.Fatalf("other payment stats = %+v", other)
	}
}

func TestAvatarWithoutStorage(t *testing.T) {
	s := newServer(t)

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		t.Fatal(err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "me.png")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write(pngBuf.Bytes())
	mw.Close()

	req := httptest.NewRequest(http.MethodPut, "/api/profiles/me/avatar/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.barber)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	expect(t, w, http.StatusServiceUnavailable)
}

func TestAuditLogsAdminOnly(t *testing.T) {
	s := newServer(t)
	expect(t, s.do(http.MethodGet, "/api/audit-logs/", s.client, nil), http.StatusForbidden)
	expect(t, s.do(http.MethodGet, "/api/audit-logs/", s.admin, nil), http.StatusOK)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
