package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"hotelier/internal/database"
	"hotelier/internal/domain"
	jwtsvc "hotelier/internal/pkg/jwt"
	"hotelier/internal/repository"
	"hotelier/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type E2ETestSuite struct {
	router     *gin.Engine
	db         *gorm.DB
	jwtService *jwtsvc.Service
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")

	require.NoError(t, repository.AutoMigrate(db), "Failed to migrate test database")

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)
	router := server.New(db, jwtService)

	return &E2ETestSuite{
		router:     router,
		db:         db,
		jwtService: jwtService,
	}
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp),
		"Failed to parse response. Status: %d, Body: %s", w.Code, w.Body.String())
	return &resp
}

// staffToken provisions a staff account straight through the repository
// and returns a token for it; there is no registration endpoint for staff.
func (s *E2ETestSuite) staffToken(t *testing.T, email string, role domain.UserRole) string {
	hash, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.MinCost)
	require.NoError(t, err)

	users := repository.NewUserRepository(s.db)
	u := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Name:         "Staff",
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	require.NoError(t, users.Create(context.Background(), u))

	token, err := s.jwtService.GenerateToken(u.ID, role)
	require.NoError(t, err)
	return token
}

func (s *E2ETestSuite) guestToken(t *testing.T, email string) string {
	w := s.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
		"email":    email,
		"password": "Password123!",
		"name":     "Guest",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, "registration failed: %s", w.Body.String())

	resp := parseResponse(t, w)
	return resp.Data["token"].(string)
}

func idFrom(t *testing.T, resp *TestResponse, key string) int64 {
	obj, ok := resp.Data[key].(map[string]interface{})
	require.True(t, ok, "missing %q in response data", key)
	idVal, ok := obj["id"].(float64)
	require.True(t, ok, "missing id in %q", key)
	return int64(idVal)
}

// seedCatalog creates one room type, one room and one service through the
// staff API and returns their ids.
func (s *E2ETestSuite) seedCatalog(t *testing.T, managerToken string) (typeID, roomID, serviceID int64) {
	w := s.makeRequest("POST", "/api/v1/room-types", map[string]interface{}{
		"name":      "Standard",
		"capacity":  2,
		"base_rate": 100.0,
	}, managerToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	typeID = idFrom(t, parseResponse(t, w), "room_type")

	w = s.makeRequest("POST", "/api/v1/rooms", map[string]interface{}{
		"room_type_id": typeID,
		"label":        "101",
	}, managerToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	roomID = idFrom(t, parseResponse(t, w), "room")

	w = s.makeRequest("POST", "/api/v1/services", map[string]interface{}{
		"name":       "Breakfast",
		"unit_price": 15.0,
	}, managerToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	serviceID = idFrom(t, parseResponse(t, w), "service")

	return typeID, roomID, serviceID
}

func TestFlow1_RegistrationAndAuth(t *testing.T) {
	suite := setupTestSuite(t)

	t.Run("POST /auth/register", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
			"email":    "guest@test.com",
			"password": "Password123!",
			"name":     "John Doe",
		}, "")

		assert.Equal(t, http.StatusCreated, w.Code)
		resp := parseResponse(t, w)
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Data["token"])
	})

	t.Run("POST /auth/register duplicate email", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
			"email":    "guest@test.com",
			"password": "Password123!",
			"name":     "John Doe",
		}, "")

		assert.Equal(t, http.StatusConflict, w.Code)
		resp := parseResponse(t, w)
		assert.Contains(t, resp.Error.Message, "email already registered")
	})

	t.Run("POST /auth/login", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
			"email":    "guest@test.com",
			"password": "Password123!",
		}, "")

		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Data["token"])
	})

	t.Run("POST /auth/login wrong password", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
			"email":    "guest@test.com",
			"password": "wrong",
		}, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("GET /auth/me", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
			"email":    "guest@test.com",
			"password": "Password123!",
		}, "")
		token := parseResponse(t, w).Data["token"].(string)

		w = suite.makeRequest("GET", "/api/v1/auth/me", nil, token)
		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		user := resp.Data["user"].(map[string]interface{})
		assert.Equal(t, "guest@test.com", user["email"])
	})
}

func TestFlow2_CatalogAndAvailability(t *testing.T) {
	suite := setupTestSuite(t)
	manager := suite.staffToken(t, "manager@test.com", domain.RoleManager)
	guest := suite.guestToken(t, "guest2@test.com")

	_, roomID, _ := suite.seedCatalog(t, manager)

	t.Run("guest cannot create rooms", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/rooms", map[string]interface{}{
			"room_type_id": 1,
			"label":        "999",
		}, guest)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("GET /availability lists the free room", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/availability?check_in=2026-09-01&check_out=2026-09-04&guests=2", nil, "")

		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		offers := resp.Data["offers"].([]interface{})
		require.Len(t, offers, 1)

		offer := offers[0].(map[string]interface{})
		assert.Equal(t, float64(3), offer["nights"])
		assert.Equal(t, 300.0, offer["total"])
	})

	t.Run("GET /availability rejects inverted range", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/availability?check_in=2026-09-04&check_out=2026-09-01&guests=2", nil, "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GET /availability filters by capacity", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/availability?check_in=2026-09-01&check_out=2026-09-04&guests=5", nil, "")

		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		assert.Empty(t, resp.Data["offers"])
	})

	t.Run("room out of service is excluded", func(t *testing.T) {
		w := suite.makeRequest("PATCH", fmt.Sprintf("/api/v1/rooms/%d/status", roomID), map[string]interface{}{
			"status": "maintenance",
		}, manager)
		require.Equal(t, http.StatusOK, w.Code)

		w = suite.makeRequest("GET", "/api/v1/availability?check_in=2026-09-01&check_out=2026-09-04&guests=2", nil, "")
		resp := parseResponse(t, w)
		assert.Empty(t, resp.Data["offers"])

		w = suite.makeRequest("PATCH", fmt.Sprintf("/api/v1/rooms/%d/status", roomID), map[string]interface{}{
			"status": "available",
		}, manager)
		require.Equal(t, http.StatusOK, w.Code)
	})
}

func TestFlow3_BookingLifecycle(t *testing.T) {
	suite := setupTestSuite(t)
	manager := suite.staffToken(t, "manager3@test.com", domain.RoleManager)
	guest := suite.guestToken(t, "guest3@test.com")

	_, roomID, serviceID := suite.seedCatalog(t, manager)

	var bookingID int64
	t.Run("POST /bookings", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/bookings", map[string]interface{}{
			"room_id":   roomID,
			"check_in":  "2026-09-01",
			"check_out": "2026-09-04",
			"guests":    2,
			"services":  []map[string]interface{}{{"service_item_id": serviceID, "quantity": 2}},
		}, guest)

		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		resp := parseResponse(t, w)
		booking := resp.Data["booking"].(map[string]interface{})
		assert.Equal(t, "pending", booking["status"])
		// 3 nights * 100 + 2 * 15
		assert.Equal(t, 330.0, booking["total"])
		bookingID = int64(booking["id"].(float64))
	})

	t.Run("overlapping booking conflicts", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/bookings", map[string]interface{}{
			"room_id":   roomID,
			"check_in":  "2026-09-03",
			"check_out": "2026-09-05",
			"guests":    1,
		}, guest)

		assert.Equal(t, http.StatusConflict, w.Code)
		resp := parseResponse(t, w)
		assert.Equal(t, "BOOKING_CONFLICT", resp.Error.Code)
	})

	var backToBackID int64
	t.Run("back-to-back booking is accepted", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/bookings", map[string]interface{}{
			"room_id":   roomID,
			"check_in":  "2026-09-04",
			"check_out": "2026-09-06",
			"guests":    1,
		}, guest)

		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		backToBackID = int64(parseResponse(t, w).Data["booking"].(map[string]interface{})["id"].(float64))
	})

	t.Run("GET /my/bookings", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/my/bookings", nil, guest)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		assert.Len(t, resp.Data["bookings"].([]interface{}), 2)
	})

	t.Run("another guest cannot read the booking", func(t *testing.T) {
		other := suite.guestToken(t, "other3@test.com")
		w := suite.makeRequest("GET", fmt.Sprintf("/api/v1/bookings/%d", bookingID), nil, other)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("PATCH /bookings/:id/status is staff only", func(t *testing.T) {
		w := suite.makeRequest("PATCH", fmt.Sprintf("/api/v1/bookings/%d/status", bookingID), map[string]interface{}{
			"status": "confirmed",
		}, guest)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = suite.makeRequest("PATCH", fmt.Sprintf("/api/v1/bookings/%d/status", bookingID), map[string]interface{}{
			"status": "confirmed",
		}, manager)
		assert.Equal(t, http.StatusOK, w.Code)
		booking := parseResponse(t, w).Data["booking"].(map[string]interface{})
		assert.Equal(t, "confirmed", booking["status"])
	})

	t.Run("cancel frees the room for new bookings", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/bookings/%d/cancel", bookingID), nil, guest)
		assert.Equal(t, http.StatusOK, w.Code)
		booking := parseResponse(t, w).Data["booking"].(map[string]interface{})
		assert.Equal(t, "cancelled", booking["status"])
		assert.NotNil(t, booking["cancelled_at"])

		// same dates, same room: goes through now
		w = suite.makeRequest("POST", "/api/v1/bookings", map[string]interface{}{
			"room_id":   roomID,
			"check_in":  "2026-09-01",
			"check_out": "2026-09-04",
			"guests":    2,
		}, guest)
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("cancelling twice is an invalid transition", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/bookings/%d/cancel", bookingID), nil, guest)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "INVALID_STATUS_TRANSITION", parseResponse(t, w).Error.Code)
	})

	t.Run("checked-out booking cannot move", func(t *testing.T) {
		w := suite.makeRequest("PATCH", fmt.Sprintf("/api/v1/bookings/%d/status", backToBackID), map[string]interface{}{
			"status": "checked_out",
		}, manager)
		require.Equal(t, http.StatusOK, w.Code)

		w = suite.makeRequest("PATCH", fmt.Sprintf("/api/v1/bookings/%d/status", backToBackID), map[string]interface{}{
			"status": "confirmed",
		}, manager)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestFlow4_ServiceAttachment(t *testing.T) {
	suite := setupTestSuite(t)
	manager := suite.staffToken(t, "manager4@test.com", domain.RoleManager)
	guest := suite.guestToken(t, "guest4@test.com")

	_, roomID, serviceID := suite.seedCatalog(t, manager)

	w := suite.makeRequest("POST", "/api/v1/bookings", map[string]interface{}{
		"room_id":   roomID,
		"check_in":  "2026-09-01",
		"check_out": "2026-09-03",
		"guests":    2,
	}, guest)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	bookingID := int64(parseResponse(t, w).Data["booking"].(map[string]interface{})["id"].(float64))

	var lineID int64
	t.Run("POST /bookings/:id/services raises the total", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/bookings/%d/services", bookingID), map[string]interface{}{
			"service_item_id": serviceID,
			"quantity":        2,
		}, manager)

		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		line := parseResponse(t, w).Data["line"].(map[string]interface{})
		assert.Equal(t, 30.0, line["line_total"])
		lineID = int64(line["id"].(float64))

		w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/bookings/%d", bookingID), nil, guest)
		require.Equal(t, http.StatusOK, w.Code)
		booking := parseResponse(t, w).Data["booking"].(map[string]interface{})
		// 2 nights * 100 + 2 * 15
		assert.Equal(t, 230.0, booking["total"])
	})

	t.Run("DELETE /service-lines/:id restores the total", func(t *testing.T) {
		w := suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/service-lines/%d", lineID), nil, manager)
		assert.Equal(t, http.StatusOK, w.Code)

		w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/bookings/%d", bookingID), nil, guest)
		booking := parseResponse(t, w).Data["booking"].(map[string]interface{})
		assert.Equal(t, 200.0, booking["total"])
	})

	t.Run("unknown service id is a validation error", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/bookings/%d/services", bookingID), map[string]interface{}{
			"service_item_id": 9999,
			"quantity":        1,
		}, manager)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("service in use cannot be deleted", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/bookings/%d/services", bookingID), map[string]interface{}{
			"service_item_id": serviceID,
			"quantity":        1,
		}, manager)
		require.Equal(t, http.StatusCreated, w.Code)

		w = suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/services/%d", serviceID), nil, manager)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "REFERENTIAL_INTEGRITY", parseResponse(t, w).Error.Code)
	})
}

func TestFlow5_Payments(t *testing.T) {
	suite := setupTestSuite(t)
	manager := suite.staffToken(t, "manager5@test.com", domain.RoleManager)
	guest := suite.guestToken(t, "guest5@test.com")

	_, roomID, _ := suite.seedCatalog(t, manager)

	w := suite.makeRequest("POST", "/api/v1/bookings", map[string]interface{}{
		"room_id":   roomID,
		"check_in":  "2026-09-01",
		"check_out": "2026-09-03",
		"guests":    2,
	}, guest)
	require.Equal(t, http.StatusCreated, w.Code)
	bookingID := int64(parseResponse(t, w).Data["booking"].(map[string]interface{})["id"].(float64))

	t.Run("paid payment confirms the booking", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/payments", map[string]interface{}{
			"booking_id": bookingID,
			"amount":     200.0,
			"method":     "card",
			"status":     "paid",
		}, manager)

		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/bookings/%d", bookingID), nil, guest)
		booking := parseResponse(t, w).Data["booking"].(map[string]interface{})
		assert.Equal(t, "confirmed", booking["status"])
	})

	t.Run("paid payment pulls a checked-in booking back to confirmed", func(t *testing.T) {
		w := suite.makeRequest("PATCH", fmt.Sprintf("/api/v1/bookings/%d/status", bookingID), map[string]interface{}{
			"status": "checked_in",
		}, manager)
		require.Equal(t, http.StatusOK, w.Code)

		w = suite.makeRequest("POST", "/api/v1/payments", map[string]interface{}{
			"booking_id": bookingID,
			"amount":     30.0,
			"method":     "cash",
			"status":     "paid",
		}, manager)
		require.Equal(t, http.StatusCreated, w.Code)

		w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/bookings/%d", bookingID), nil, guest)
		booking := parseResponse(t, w).Data["booking"].(map[string]interface{})
		assert.Equal(t, "confirmed", booking["status"])
	})

	t.Run("GET /bookings/:id/payments", func(t *testing.T) {
		w := suite.makeRequest("GET", fmt.Sprintf("/api/v1/bookings/%d/payments", bookingID), nil, manager)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, parseResponse(t, w).Data["payments"].([]interface{}), 2)
	})

	t.Run("unknown booking is a validation error", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/payments", map[string]interface{}{
			"booking_id": 9999,
			"amount":     10.0,
			"method":     "card",
		}, manager)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("guests cannot record payments", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/payments", map[string]interface{}{
			"booking_id": bookingID,
			"amount":     10.0,
			"method":     "card",
		}, guest)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestFlow6_DeletionGuards(t *testing.T) {
	suite := setupTestSuite(t)
	admin := suite.staffToken(t, "admin6@test.com", domain.RoleAdmin)
	guest := suite.guestToken(t, "guest6@test.com")

	typeID, roomID, _ := suite.seedCatalog(t, admin)

	w := suite.makeRequest("POST", "/api/v1/bookings", map[string]interface{}{
		"room_id":   roomID,
		"check_in":  "2026-09-01",
		"check_out": "2026-09-03",
		"guests":    2,
	}, guest)
	require.Equal(t, http.StatusCreated, w.Code)
	bookingID := int64(parseResponse(t, w).Data["booking"].(map[string]interface{})["id"].(float64))

	t.Run("room with active booking cannot be deleted", func(t *testing.T) {
		w := suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/rooms/%d", roomID), nil, admin)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "REFERENTIAL_INTEGRITY", parseResponse(t, w).Error.Code)
	})

	t.Run("room type with rooms cannot be deleted", func(t *testing.T) {
		w := suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/room-types/%d", typeID), nil, admin)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("cancelled bookings release the guards", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/bookings/%d/cancel", bookingID), nil, guest)
		require.Equal(t, http.StatusOK, w.Code)

		w = suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/rooms/%d", roomID), nil, admin)
		assert.Equal(t, http.StatusOK, w.Code)

		w = suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/room-types/%d", typeID), nil, admin)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}
