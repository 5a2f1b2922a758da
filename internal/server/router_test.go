package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aura-events/venues/internal/auth"
	"github.com/aura-events/venues/internal/locations"
	"github.com/aura-events/venues/internal/models"
	"github.com/aura-events/venues/internal/organizers"
	"github.com/aura-events/venues/internal/storetest"
)

type testServer struct {
	router    *gin.Engine
	tokens    *auth.JWTService
	orgRepo   *storetest.Organizers
	locRepo   *storetest.Locations
	pingError error
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ts := &testServer{
		tokens:  auth.NewJWTService("test-secret", 1),
		orgRepo: storetest.NewOrganizers(),
		locRepo: storetest.NewLocations(),
	}
	logger := zap.NewNop()
	ts.router = NewRouter(Deps{
		Logger:      logger,
		Tokens:      ts.tokens,
		Organizers:  organizers.NewService(ts.orgRepo, ts.tokens, logger),
		Locations:   locations.NewService(ts.locRepo, ts.orgRepo, logger),
		CORSOrigins: "*",
		Ping:        func(context.Context) error { return ts.pingError },
	})
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w, out
}

func (ts *testServer) register(t *testing.T, email, password string) int64 {
	t.Helper()
	w, body := ts.do(t, http.MethodPost, "/organizer/register", "", map[string]string{
		"email":     email,
		"password":  password,
		"firstname": "Ada",
		"lastname":  "Lovelace",
		"phone":     "555-0100",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := body["data"].(map[string]any)
	return int64(data["id"].(float64))
}

func (ts *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	w, body := ts.do(t, http.MethodPost, "/organizer/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return body["access_token"].(string)
}

func (ts *testServer) createLocation(t *testing.T, token, address string) int64 {
	t.Helper()
	w, body := ts.do(t, http.MethodPost, "/location/new", token, map[string]any{
		"name": "Main Hall", "address": address, "capacity": 120,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return int64(body["data"].(map[string]any)["id"].(float64))
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	w, body := ts.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	ts.pingError = errors.New("db down")
	w, _ = ts.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRegister(t *testing.T) {
	ts := newTestServer(t)
	w, body := ts.do(t, http.MethodPost, "/organizer/register", "", map[string]string{
		"email": "ada@example.com", "password": "pw", "firstname": "Ada", "lastname": "Lovelace", "phone": "1",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Organizer created successfully", body["message"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "ada@example.com", data["email"])
	assert.NotContains(t, data, "password")
	assert.NotContains(t, data, "password_hash")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "ada@example.com", "pw")

	w, body := ts.do(t, http.MethodPost, "/organizer/register", "", map[string]string{
		"email": "ada@example.com", "password": "pw", "firstname": "A", "lastname": "B", "phone": "1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Duplicated email", body["error_message"])
}

func TestRegister_ValidationFailure(t *testing.T) {
	ts := newTestServer(t)
	w, body := ts.do(t, http.MethodPost, "/organizer/register", "", map[string]string{
		"email": "not-an-email", "password": "pw",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation failed", body["error_message"])
	fields := body["errors"].(map[string]any)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "firstname")
	assert.Contains(t, fields, "lastname")
	assert.Contains(t, fields, "phone")
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)
	id := ts.register(t, "ada@example.com", "pw")

	token := ts.login(t, "ada@example.com", "pw")
	claims, err := ts.tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, models.Principal{ID: id, Type: "Organizer"}, claims.Principal())

	for _, creds := range []map[string]string{
		{"email": "ada@example.com", "password": "wrong"},
		{"email": "ghost@example.com", "password": "pw"},
	} {
		w, body := ts.do(t, http.MethodPost, "/organizer/login", "", creds)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid email or password.", body["error_message"])
	}
}

func TestOrganizerInfo(t *testing.T) {
	ts := newTestServer(t)
	id := ts.register(t, "ada@example.com", "pw")
	token := ts.login(t, "ada@example.com", "pw")

	w, body := ts.do(t, http.MethodGet, "/organizer/info", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	result := body["result"].(map[string]any)
	assert.Equal(t, float64(id), result["id"])

	w, _ = ts.do(t, http.MethodGet, "/organizer/info", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = ts.do(t, http.MethodGet, "/organizer/info", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOrganizerUpdate(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "ada@example.com", "pw")
	token := ts.login(t, "ada@example.com", "pw")

	w, body := ts.do(t, http.MethodPut, "/organizer/info/update", token, map[string]string{"password": "", "lastname": "King"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Organizer updated successfully", body["message"])
	assert.Equal(t, "King", body["data"].(map[string]any)["lastname"])
	ts.login(t, "ada@example.com", "pw")

	w, _ = ts.do(t, http.MethodPut, "/organizer/info/update", token, map[string]string{"password": "new-pw"})
	require.Equal(t, http.StatusCreated, w.Code)
	ts.login(t, "ada@example.com", "new-pw")
	w, _ = ts.do(t, http.MethodPost, "/organizer/login", "", map[string]string{"email": "ada@example.com", "password": "pw"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOrganizerList(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()
	for i := 0; i < 20; i++ {
		require.NoError(t, ts.orgRepo.Create(ctx, &models.Organizer{Email: fmt.Sprintf("o%d@example.com", i), Password: "x"}))
	}

	w, body := ts.do(t, http.MethodGet, "/organizer/list?page=1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["has_next"])
	assert.Len(t, body["organizers"], 15)

	_, body = ts.do(t, http.MethodGet, "/organizer/list?page=2", "", nil)
	assert.Equal(t, false, body["has_next"])
	assert.Len(t, body["organizers"], 5)

	_, body = ts.do(t, http.MethodGet, "/organizer/list", "", nil)
	assert.Equal(t, false, body["has_next"])
	assert.Len(t, body["organizers"], 15)

	w, _ = ts.do(t, http.MethodGet, "/organizer/list?page=zero", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrganizerGetByID(t *testing.T) {
	ts := newTestServer(t)
	id := ts.register(t, "ada@example.com", "pw")

	w, body := ts.do(t, http.MethodGet, fmt.Sprintf("/organizer/list/%d", id), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ada@example.com", body["email"])

	w, body = ts.do(t, http.MethodGet, "/organizer/list/9999", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Organizer not found.", body["error_message"])

	w, _ = ts.do(t, http.MethodGet, "/organizer/list/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLocationCreate(t *testing.T) {
	ts := newTestServer(t)
	id := ts.register(t, "ada@example.com", "pw")
	token := ts.login(t, "ada@example.com", "pw")

	w, body := ts.do(t, http.MethodPost, "/location/new", token, map[string]any{
		"name": "Main Hall", "address": "1 Market St", "capacity": 0,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Location created successfully", body["message"])
	assert.Equal(t, float64(id), body["data"].(map[string]any)["owner_id"])

	w, _ = ts.do(t, http.MethodPost, "/location/new", "", map[string]any{
		"name": "Main Hall", "address": "2 Market St", "capacity": 1,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, body = ts.do(t, http.MethodPost, "/location/new", token, map[string]any{"name": "Main Hall"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["errors"], "capacity")
}

func TestLocationCapacityOutOfRange(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "ada@example.com", "pw")
	token := ts.login(t, "ada@example.com", "pw")

	w, body := ts.do(t, http.MethodPost, "/location/new", token, map[string]any{
		"name": "Main Hall", "address": "1 Market St", "capacity": 3000000000,
	})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Equal(t, "Validation failed", body["error_message"])
	assert.Equal(t, "must be at most 2147483647", body["errors"].(map[string]any)["capacity"])

	locID := ts.createLocation(t, token, "2 Market St")
	w, body = ts.do(t, http.MethodPut, fmt.Sprintf("/location/update/%d", locID), token, map[string]any{"capacity": 3000000000})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, body["errors"], "capacity")
}

func TestLocationCreate_NonOrganizerToken(t *testing.T) {
	ts := newTestServer(t)
	id := ts.register(t, "ada@example.com", "pw")
	attendee, err := ts.tokens.Generate(id, "Attendee")
	require.NoError(t, err)

	w, body := ts.do(t, http.MethodPost, "/location/new", attendee, map[string]any{
		"name": "Main Hall", "address": "1 Market St", "capacity": 10,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", body["error_message"])
}

func TestLocationCreate_DuplicateAddress(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "ada@example.com", "pw")
	ts.register(t, "grace@example.com", "pw")
	ada := ts.login(t, "ada@example.com", "pw")
	grace := ts.login(t, "grace@example.com", "pw")
	ts.createLocation(t, ada, "1 Market St")

	w, body := ts.do(t, http.MethodPost, "/location/new", grace, map[string]any{
		"name": "Other", "address": "1 Market St", "capacity": 5,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Duplicated location", body["error_message"])
}

func TestLocationUpdateAndDelete_Ownership(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "ada@example.com", "pw")
	ts.register(t, "grace@example.com", "pw")
	ada := ts.login(t, "ada@example.com", "pw")
	grace := ts.login(t, "grace@example.com", "pw")
	locID := ts.createLocation(t, ada, "1 Market St")

	w, body := ts.do(t, http.MethodPut, fmt.Sprintf("/location/update/%d", locID), grace, map[string]any{"capacity": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Location not found", body["error_message"])

	w, body = ts.do(t, http.MethodDelete, fmt.Sprintf("/location/delete/%d", locID), grace, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Location not found", body["error_message"])

	w, body = ts.do(t, http.MethodPut, fmt.Sprintf("/location/update/%d", locID), ada, map[string]any{"capacity": 1})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Location updated successfully", body["message"])
	assert.Equal(t, float64(1), body["data"].(map[string]any)["capacity"])

	w, body = ts.do(t, http.MethodDelete, fmt.Sprintf("/location/delete/%d", locID), ada, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, map[string]any{"message": "Location deleted successfully"}, body)

	w, _ = ts.do(t, http.MethodGet, fmt.Sprintf("/location/info/%d", locID), "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLocationInfo(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "ada@example.com", "pw")
	ada := ts.login(t, "ada@example.com", "pw")
	locID := ts.createLocation(t, ada, "1 Market St")

	w, body := ts.do(t, http.MethodGet, fmt.Sprintf("/location/info/%d", locID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1 Market St", body["result"].(map[string]any)["address"])

	w, body = ts.do(t, http.MethodGet, "/location/info/777", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Location not found", body["error_message"])
}

func TestLocationLists(t *testing.T) {
	ts := newTestServer(t)
	adaID := ts.register(t, "ada@example.com", "pw")
	graceID := ts.register(t, "grace@example.com", "pw")
	ada := ts.login(t, "ada@example.com", "pw")
	for i := 0; i < 16; i++ {
		ts.createLocation(t, ada, fmt.Sprintf("%d Market St", i))
	}

	w, body := ts.do(t, http.MethodGet, "/location/list?page=1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["has_next"])
	assert.Len(t, body["locations"], 15)

	_, body = ts.do(t, http.MethodGet, "/location/list", "", nil)
	assert.Equal(t, false, body["has_next"])

	w, body = ts.do(t, http.MethodGet, fmt.Sprintf("/location/list/%d?page=2", adaID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(adaID), body["owner_id"])
	assert.Equal(t, false, body["has_next"])
	assert.Len(t, body["locations"], 1)

	w, body = ts.do(t, http.MethodGet, fmt.Sprintf("/location/list/%d", graceID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{}, body["locations"])

	w, body = ts.do(t, http.MethodGet, "/location/list/4040", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Owner not found", body["error_message"])
}

func TestInternalErrorsAreMasked(t *testing.T) {
	ts := newTestServer(t)
	ts.locRepo.Err = errors.New("pq: connection reset by peer")

	w, body := ts.do(t, http.MethodGet, "/location/list", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", body["error_message"])
}
