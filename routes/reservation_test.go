package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"condominium-server/models"
	"condominium-server/scheduling"
	"condominium-server/storage"
	"condominium-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// buildTestApp wires the reservation routes against an in-memory SQLite
// database, mirroring the production party layout in main.go.
func buildTestApp(t *testing.T) *iris.Application {
	t.Helper()
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")
	os.Setenv("REFRESH_TOKEN_SECRET", "testrefreshsecret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	// A pooled :memory: connection would open a fresh empty database;
	// pin the pool to a single connection.
	if sqlDB, dbErr := db.DB(); dbErr == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	storage.DB = db
	storage.Redis = nil

	app := iris.New()
	app.Validator = validator.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	areas := app.Party("/api/common-areas")
	{
		areas.Get("/{id:uint}/availability", GetCommonAreaAvailability)
	}

	reservations := app.Party("/api/reservations", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		reservations.Post("/", CreateReservation)
		reservations.Post("/quote", QuoteReservation)
		reservations.Get("/", GetMyReservations)
		reservations.Post("/{id:uint}/cancel", CancelReservation)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/reservations", AdminListReservations)
		admin.Post("/reservations/{id:uint}/approve", AdminApproveReservation)
		admin.Post("/reservations/{id:uint}/reject", AdminRejectReservation)
	}

	if err := app.Build(); err != nil {
		t.Fatalf("failed to build app: %v", err)
	}
	return app
}

func signTestToken(t *testing.T, id uint, role string) string {
	t.Helper()
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), time.Hour)
	token, err := signer.Sign(utils.AccessToken{ID: id, Role: role})
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return string(token)
}

func seedUser(t *testing.T, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		FirstName: "Test",
		LastName:  string(role),
		Email:     fmt.Sprintf("%s-%d@example.com", role, time.Now().UnixNano()),
		Role:      role,
	}
	if err := storage.DB.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedArea(t *testing.T) *models.CommonArea {
	t.Helper()
	area := &models.CommonArea{
		Name:                   "Clubhouse",
		Capacity:               8,
		CostPerHour:            50,
		IsActive:               true,
		IsReservable:           true,
		AvailableFrom:          "08:00",
		AvailableTo:            "18:00",
		AvailableMonday:        true,
		AvailableTuesday:       true,
		AvailableWednesday:     true,
		AvailableThursday:      true,
		AvailableFriday:        true,
		MaxReservationHours:    4,
		AdvanceReservationDays: 30,
	}
	if err := storage.DB.Create(area).Error; err != nil {
		t.Fatalf("failed to seed area: %v", err)
	}
	return area
}

// nextMonday returns the Monday of next week so test slots are always in
// the future but inside the 30-day advance window.
func nextMonday() time.Time {
	return scheduling.WeekOf(time.Now().AddDate(0, 0, 7))
}

func doJSON(app *iris.Application, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func createReservationBody(areaID uint, day time.Time, start, end string) iris.Map {
	return iris.Map{
		"commonAreaId":       areaID,
		"reservationDate":    day.Format("2006-01-02"),
		"startTime":          start,
		"endTime":            end,
		"purpose":            "Community meeting",
		"estimatedAttendees": 5,
	}
}

func TestCreateReservationAndConflict(t *testing.T) {
	app := buildTestApp(t)
	resident := seedUser(t, models.ResidentRole)
	area := seedArea(t)
	token := signTestToken(t, resident.ID, "resident")
	day := nextMonday()

	resp := doJSON(app, http.MethodPost, "/api/reservations", token, createReservationBody(area.ID, day, "10:00", "12:00"))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		Data models.Reservation `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.Data.Status != models.ReservationPending {
		t.Fatalf("new reservations must start pending, got %s", created.Data.Status)
	}
	if created.Data.TotalHours != 2 || created.Data.TotalCost != 100 {
		t.Fatalf("expected 2h at 50/h = 100, got %v/%v", created.Data.TotalHours, created.Data.TotalCost)
	}
	if created.Data.Reference == "" {
		t.Fatal("reservations must carry a reference")
	}

	// Same slot again: the redundant backend conflict check must trip.
	resp = doJSON(app, http.MethodPost, "/api/reservations", token, createReservationBody(area.ID, day, "10:00", "12:00"))
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for double booking, got %d: %s", resp.Code, resp.Body.String())
	}

	// Overlapping but not identical range conflicts too.
	resp = doJSON(app, http.MethodPost, "/api/reservations", token, createReservationBody(area.ID, day, "11:00", "13:00"))
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for overlapping booking, got %d", resp.Code)
	}

	// An adjacent slot stays bookable.
	resp = doJSON(app, http.MethodPost, "/api/reservations", token, createReservationBody(area.ID, day, "12:00", "14:00"))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for adjacent slot, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCreateReservationCapacityWarningDoesNotBlock(t *testing.T) {
	app := buildTestApp(t)
	resident := seedUser(t, models.ResidentRole)
	area := seedArea(t) // capacity 8
	token := signTestToken(t, resident.ID, "resident")

	body := createReservationBody(area.ID, nextMonday(), "08:00", "10:00")
	body["estimatedAttendees"] = 10

	resp := doJSON(app, http.MethodPost, "/api/reservations", token, body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("capacity overflow must not block, got %d: %s", resp.Code, resp.Body.String())
	}
	var decoded struct {
		Warnings map[string]string `json:"warnings"`
	}
	json.Unmarshal(resp.Body.Bytes(), &decoded)
	if _, ok := decoded.Warnings["estimatedAttendees"]; !ok {
		t.Fatalf("expected a capacity warning in the response, got %s", resp.Body.String())
	}
}

func TestCreateReservationValidationFailure(t *testing.T) {
	app := buildTestApp(t)
	resident := seedUser(t, models.ResidentRole)
	area := seedArea(t)
	token := signTestToken(t, resident.ID, "resident")

	body := createReservationBody(area.ID, nextMonday(), "12:00", "10:00") // inverted
	resp := doJSON(app, http.MethodPost, "/api/reservations", token, body)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted range, got %d", resp.Code)
	}
}

func TestAdminApproveRejectFlow(t *testing.T) {
	app := buildTestApp(t)
	resident := seedUser(t, models.ResidentRole)
	adminUser := seedUser(t, models.AdminRole)
	area := seedArea(t)
	residentToken := signTestToken(t, resident.ID, "resident")
	adminToken := signTestToken(t, adminUser.ID, "admin")
	day := nextMonday()

	resp := doJSON(app, http.MethodPost, "/api/reservations", residentToken, createReservationBody(area.ID, day, "10:00", "12:00"))
	if resp.Code != http.StatusCreated {
		t.Fatalf("setup create failed: %d %s", resp.Code, resp.Body.String())
	}
	var created struct {
		Data models.Reservation `json:"data"`
	}
	json.Unmarshal(resp.Body.Bytes(), &created)
	id := created.Data.ID

	// A resident may not approve.
	resp = doJSON(app, http.MethodPost, fmt.Sprintf("/api/admin/reservations/%d/approve", id), residentToken, nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for resident approval, got %d", resp.Code)
	}

	// Admin approves.
	resp = doJSON(app, http.MethodPost, fmt.Sprintf("/api/admin/reservations/%d/approve", id), adminToken, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for approval, got %d: %s", resp.Code, resp.Body.String())
	}
	var approved struct {
		Data models.Reservation `json:"data"`
	}
	json.Unmarshal(resp.Body.Bytes(), &approved)
	if approved.Data.Status != models.ReservationApproved {
		t.Fatalf("expected approved, got %s", approved.Data.Status)
	}
	if approved.Data.ApprovedByID == nil || *approved.Data.ApprovedByID != adminUser.ID {
		t.Fatal("approval must record the acting administrator")
	}

	// Approving again is an invalid transition.
	resp = doJSON(app, http.MethodPost, fmt.Sprintf("/api/admin/reservations/%d/approve", id), adminToken, nil)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for double approval, got %d", resp.Code)
	}
}

func TestAdminRejectRequiresNotes(t *testing.T) {
	app := buildTestApp(t)
	resident := seedUser(t, models.ResidentRole)
	adminUser := seedUser(t, models.AdminRole)
	area := seedArea(t)
	residentToken := signTestToken(t, resident.ID, "resident")
	adminToken := signTestToken(t, adminUser.ID, "admin")

	resp := doJSON(app, http.MethodPost, "/api/reservations", residentToken, createReservationBody(area.ID, nextMonday(), "14:00", "16:00"))
	var created struct {
		Data models.Reservation `json:"data"`
	}
	json.Unmarshal(resp.Body.Bytes(), &created)
	id := created.Data.ID

	resp = doJSON(app, http.MethodPost, fmt.Sprintf("/api/admin/reservations/%d/reject", id), adminToken, iris.Map{})
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for reject without notes, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(app, http.MethodPost, fmt.Sprintf("/api/admin/reservations/%d/reject", id), adminToken, iris.Map{"adminNotes": "overlaps maintenance"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for reject with notes, got %d: %s", resp.Code, resp.Body.String())
	}
	var rejected struct {
		Data models.Reservation `json:"data"`
	}
	json.Unmarshal(resp.Body.Bytes(), &rejected)
	if rejected.Data.Status != models.ReservationRejected {
		t.Fatalf("expected rejected, got %s", rejected.Data.Status)
	}
}

func TestCancelFreesTheSlot(t *testing.T) {
	app := buildTestApp(t)
	resident := seedUser(t, models.ResidentRole)
	area := seedArea(t)
	token := signTestToken(t, resident.ID, "resident")
	day := nextMonday()

	resp := doJSON(app, http.MethodPost, "/api/reservations", token, createReservationBody(area.ID, day, "10:00", "12:00"))
	var created struct {
		Data models.Reservation `json:"data"`
	}
	json.Unmarshal(resp.Body.Bytes(), &created)

	resp = doJSON(app, http.MethodPost, fmt.Sprintf("/api/reservations/%d/cancel", created.Data.ID), token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for cancel, got %d: %s", resp.Code, resp.Body.String())
	}

	// The slot is free again: rebooking succeeds.
	resp = doJSON(app, http.MethodPost, "/api/reservations", token, createReservationBody(area.ID, day, "10:00", "12:00"))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 after cancellation freed the slot, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAvailabilityGrid(t *testing.T) {
	app := buildTestApp(t)
	resident := seedUser(t, models.ResidentRole)
	area := seedArea(t)
	token := signTestToken(t, resident.ID, "resident")
	day := nextMonday()

	resp := doJSON(app, http.MethodPost, "/api/reservations", token, createReservationBody(area.ID, day, "10:00", "12:00"))
	if resp.Code != http.StatusCreated {
		t.Fatalf("setup create failed: %d", resp.Code)
	}

	url := fmt.Sprintf("/api/common-areas/%d/availability?week=%s", area.ID, day.Format("2006-01-02"))
	resp = doJSON(app, http.MethodGet, url, "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var decoded struct {
		Data []scheduling.DayAvailability `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode grid: %v", err)
	}
	if len(decoded.Data) != 7 {
		t.Fatalf("expected a 7-day grid, got %d", len(decoded.Data))
	}

	monday := decoded.Data[0]
	if !monday.Open || len(monday.Slots) != 5 {
		t.Fatalf("expected Monday open with 5 slots, got %+v", monday)
	}
	if monday.Slots[1].Status != scheduling.SlotHeldPending {
		t.Fatalf("booked slot should be held_pending, got %s", monday.Slots[1].Status)
	}
	if monday.Slots[2].Status != scheduling.SlotFree {
		t.Fatalf("12:00 slot should be free, got %s", monday.Slots[2].Status)
	}
	if decoded.Data[5].Open || decoded.Data[6].Open {
		t.Fatal("weekend should be closed")
	}
}

func TestQuoteEndpoint(t *testing.T) {
	app := buildTestApp(t)
	resident := seedUser(t, models.ResidentRole)
	area := seedArea(t)
	token := signTestToken(t, resident.ID, "resident")

	resp := doJSON(app, http.MethodPost, "/api/reservations/quote", token, iris.Map{
		"commonAreaId": area.ID,
		"startTime":    "09:00",
		"endTime":      "11:00",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var decoded struct {
		Data struct {
			TotalHours float64 `json:"totalHours"`
			TotalCost  float64 `json:"totalCost"`
		} `json:"data"`
	}
	json.Unmarshal(resp.Body.Bytes(), &decoded)
	if decoded.Data.TotalHours != 2 || decoded.Data.TotalCost != 100 {
		t.Fatalf("expected 2h/100, got %v/%v", decoded.Data.TotalHours, decoded.Data.TotalCost)
	}
}
