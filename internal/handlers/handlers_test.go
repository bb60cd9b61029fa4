// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"codeberg.org/oliverandrich/tourbooking/internal/config"
	"codeberg.org/oliverandrich/tourbooking/internal/handlers"
	"codeberg.org/oliverandrich/tourbooking/internal/middleware"
	"codeberg.org/oliverandrich/tourbooking/internal/models"
	"codeberg.org/oliverandrich/tourbooking/internal/repository"
	"codeberg.org/oliverandrich/tourbooking/internal/services/auth"
	"codeberg.org/oliverandrich/tourbooking/internal/services/booking"
	"codeberg.org/oliverandrich/tourbooking/internal/services/tours"
	"codeberg.org/oliverandrich/tourbooking/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nullMailer struct{}

func (nullMailer) Send(context.Context, string, string, string) error { return nil }

type testServer struct {
	echo    *echo.Echo
	repo    *repository.Repository
	auth    *auth.Service
	booking *booking.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	_, repo := testutil.NewTestDB(t)

	authCfg := &config.AuthConfig{TokenSecret: "test-secret", SessionTTL: time.Hour}
	authService := auth.NewService(repo, nullMailer{}, authCfg, "http://localhost:8080")
	bookingService := booking.NewService(repo, nil)
	tourService := tours.NewService(repo)

	e := echo.New()
	authHandlers := handlers.NewAuth(authService)
	bookingHandlers := handlers.NewBookings(bookingService)
	tourHandlers := handlers.NewTours(tourService)

	e.GET("/health", handlers.Health)
	e.POST("/auth/register", authHandlers.Register)
	e.GET("/auth/verify-email", authHandlers.VerifyEmail)
	e.POST("/auth/login", authHandlers.Login)

	e.GET("/tours", tourHandlers.List)
	e.GET("/tours/:id", tourHandlers.Get)

	authed := e.Group("", middleware.RequireAuth(authService))
	authed.POST("/bookings", bookingHandlers.Create)
	authed.GET("/bookings/:id", bookingHandlers.Get)
	authed.POST("/bookings/:id/payments", bookingHandlers.RecordPayment)
	authed.POST("/bookings/:id/cancel", bookingHandlers.Cancel)

	admin := authed.Group("", middleware.RequireAdmin())
	admin.POST("/tours", tourHandlers.Create)

	return &testServer{echo: e, repo: repo, auth: authService, booking: bookingService}
}

func (s *testServer) request(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) loginAs(t *testing.T, email string) string {
	t.Helper()
	token, _, err := s.auth.Login(context.Background(), email, testutil.TestPassword)
	require.NoError(t, err)
	return token
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := s.request(http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := s.request(http.MethodPost, "/auth/register", "", `{
		"name": "Alice",
		"email": "alice@example.com",
		"password": "hunter2hunter2",
		"confirm_password": "hunter2hunter2"
	}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "alice@example.com", user.Email)
	assert.False(t, user.EmailConfirmed)
}

func TestRegisterEndpoint_DuplicateEmail(t *testing.T) {
	s := newTestServer(t)
	testutil.NewTestUser(t, s.repo, "alice@example.com")

	rec := s.request(http.MethodPost, "/auth/register", "", `{
		"name": "Alice",
		"email": "alice@example.com",
		"password": "hunter2hunter2",
		"confirm_password": "hunter2hunter2"
	}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginEndpoint(t *testing.T) {
	s := newTestServer(t)
	testutil.NewTestUser(t, s.repo, "alice@example.com")

	rec := s.request(http.MethodPost, "/auth/login", "", `{
		"email": "alice@example.com",
		"password": "`+testutil.TestPassword+`"
	}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
}

func TestLoginEndpoint_WrongPassword(t *testing.T) {
	s := newTestServer(t)
	testutil.NewTestUser(t, s.repo, "alice@example.com")

	rec := s.request(http.MethodPost, "/auth/login", "", `{
		"email": "alice@example.com",
		"password": "wrong"
	}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVerifyEmailEndpoint_InvalidToken(t *testing.T) {
	s := newTestServer(t)

	rec := s.request(http.MethodGet, "/auth/verify-email?token=bogus", "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBookingEndpoints_RequireAuth(t *testing.T) {
	s := newTestServer(t)

	rec := s.request(http.MethodPost, "/bookings", "", `{"tour_id": 1}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBookingFlow(t *testing.T) {
	s := newTestServer(t)
	testutil.NewTestUser(t, s.repo, "alice@example.com")
	tour := testutil.NewTestTour(t, s.repo, 10)
	token := s.loginAs(t, "alice@example.com")

	rec := s.request(http.MethodPost, "/bookings", token, `{
		"tour_id": `+jsonInt(tour.ID)+`,
		"adult_qty": 2,
		"child_qty": 1,
		"adult_price_cents": 5000,
		"child_price_cents": 2000,
		"contact_name": "Alice",
		"contact_email": "alice@example.com"
	}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(12000), created.TotalCents)
	assert.Equal(t, models.PaymentStatusPending, created.PaymentStatus)

	id := jsonInt(created.ID)

	// partial then final payment
	rec = s.request(http.MethodPost, "/bookings/"+id+"/payments", token, `{"amount_cents": 5000, "method": "card"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = s.request(http.MethodPost, "/bookings/"+id+"/payments", token, `{"amount_cents": 7000, "method": "card"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.request(http.MethodGet, "/bookings/"+id, token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var paid models.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &paid))
	assert.Equal(t, models.PaymentStatusPaid, paid.PaymentStatus)

	// over-payment is refused
	rec = s.request(http.MethodPost, "/bookings/"+id+"/payments", token, `{"amount_cents": 100, "method": "card"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.request(http.MethodPost, "/bookings/"+id+"/cancel", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBookingOwnership(t *testing.T) {
	s := newTestServer(t)
	alice := testutil.NewTestUser(t, s.repo, "alice@example.com")
	testutil.NewTestUser(t, s.repo, "bob@example.com")
	tour := testutil.NewTestTour(t, s.repo, 10)
	b := testutil.NewTestBooking(t, s.repo, alice.ID, tour.ID, 1, 50_00)

	// another user cannot see the booking
	bob := s.loginAs(t, "bob@example.com")
	rec := s.request(http.MethodGet, "/bookings/"+jsonInt(b.ID), bob, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	owner := s.loginAs(t, "alice@example.com")
	rec = s.request(http.MethodGet, "/bookings/"+jsonInt(b.ID), owner, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTourAdminEndpoints(t *testing.T) {
	s := newTestServer(t)
	testutil.NewTestUser(t, s.repo, "user@example.com")
	admin := &models.User{
		Email:          "admin@example.com",
		PasswordHash:   auth.HashPassword(testutil.TestPassword),
		Name:           "Admin",
		Role:           models.RoleAdmin,
		EmailConfirmed: true,
		Active:         true,
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, s.repo.CreateUser(context.Background(), admin))

	body := `{
		"name": "Mekong Delta",
		"description": "Two days on the river",
		"seats": 8,
		"start_date": "2026-10-01T00:00:00Z",
		"end_date": "2026-10-02T00:00:00Z",
		"price_cents": 20000
	}`

	userToken := s.loginAs(t, "user@example.com")
	rec := s.request(http.MethodPost, "/tours", userToken, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminToken := s.loginAs(t, "admin@example.com")
	rec = s.request(http.MethodPost, "/tours", adminToken, body)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = s.request(http.MethodGet, "/tours", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func jsonInt(id int64) string {
	return strconv.FormatInt(id, 10)
}
