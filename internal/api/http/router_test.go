package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/complainthub/complaint-service/internal/api/http/handlers"
	"github.com/complainthub/complaint-service/internal/auth"
	"github.com/complainthub/complaint-service/internal/config"
	"github.com/complainthub/complaint-service/internal/domain"
	"github.com/complainthub/complaint-service/internal/observability"
	"github.com/complainthub/complaint-service/internal/repository"
	"github.com/complainthub/complaint-service/internal/service"
)

// memComplaintRepo backs the HTTP tests without a database.
type memComplaintRepo struct {
	mu    sync.Mutex
	items []domain.Complaint
}

func (m *memComplaintRepo) Create(_ context.Context, c *domain.Complaint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	m.items = append(m.items, *c)
	return nil
}

func (m *memComplaintRepo) GetByID(_ context.Context, id string) (*domain.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			copied := m.items[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memComplaintRepo) Update(_ context.Context, c *domain.Complaint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == c.ID {
			c.UpdatedAt = time.Now()
			m.items[i] = *c
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *memComplaintRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *memComplaintRepo) List(_ context.Context, filter repository.ComplaintFilter) ([]domain.Complaint, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matches []domain.Complaint
	for _, c := range m.items {
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		if filter.Category != nil && c.Category != *filter.Category {
			continue
		}
		if filter.Priority != nil && c.Priority != *filter.Priority {
			continue
		}
		if filter.Search != nil {
			term := strings.ToLower(*filter.Search)
			if !strings.Contains(strings.ToLower(c.Title+" "+c.Description), term) {
				continue
			}
		}
		matches = append(matches, c)
	}
	total := len(matches)
	start := filter.Offset
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}
	return matches[start:end], total, nil
}

func (m *memComplaintRepo) CountByStatus(_ context.Context) (map[domain.ComplaintStatus]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[domain.ComplaintStatus]int)
	for _, c := range m.items {
		counts[c.Status]++
	}
	return counts, nil
}

func (m *memComplaintRepo) CountByPriority(_ context.Context) (map[domain.ComplaintPriority]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[domain.ComplaintPriority]int)
	for _, c := range m.items {
		counts[c.Priority]++
	}
	return counts, nil
}

type memAdminRepo struct {
	mu      sync.Mutex
	byEmail map[string]domain.Admin
}

func (m *memAdminRepo) Create(_ context.Context, admin *domain.Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	admin.CreatedAt = time.Now()
	m.byEmail[admin.Email] = *admin
	return nil
}

func (m *memAdminRepo) GetByEmail(_ context.Context, email string) (*domain.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if admin, ok := m.byEmail[email]; ok {
		copied := admin
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memAdminRepo) GetByID(_ context.Context, id string) (*domain.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, admin := range m.byEmail {
		if admin.ID == id {
			copied := admin
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	complaintRepo := &memComplaintRepo{}
	adminRepo := &memAdminRepo{byEmail: map[string]domain.Admin{}}

	complaintService := service.NewComplaintService(service.ComplaintDependencies{ComplaintRepo: complaintRepo})
	authService := service.NewAuthService(config.AuthConfig{JWTSecret: "test-secret", BcryptCost: 4}, adminRepo)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), adminRepo)

	logger := zap.NewNop()
	app := fiber.New()
	RegisterMiddlewares(app, logger, observability.NewMetrics(), 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("complaint-service", "test", nil, nil),
		Complaints:     handlers.NewComplaintsHandler(complaintService),
		Admin:          handlers.NewAdminHandler(authService),
		AuthMiddleware: authMiddleware,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	envelope := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &envelope), string(raw))
	}
	return resp.StatusCode, envelope
}

func adminToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	status, _ := doJSON(t, app, http.MethodPost, "/admin/signup", "", fiber.Map{
		"email":    "admin@example.com",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusOK, status)

	status, envelope := doJSON(t, app, http.MethodPost, "/admin/login", "", fiber.Map{
		"email":    "admin@example.com",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusOK, status)
	data := envelope["data"].(map[string]any)
	session := data["session"].(map[string]any)
	token, _ := session["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func submitComplaint(t *testing.T, app *fiber.App) string {
	t.Helper()
	status, envelope := doJSON(t, app, http.MethodPost, "/complaints", "", fiber.Map{
		"title":         "Login broken",
		"description":   "Cannot log in since yesterday",
		"category":      "Technical",
		"priority":      "High",
		"customerName":  "A. User",
		"customerEmail": "a@x.com",
	})
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, true, envelope["success"])
	data := envelope["data"].(map[string]any)
	id, _ := data["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestCreateComplaint_Public(t *testing.T) {
	app := newTestApp(t)

	status, envelope := doJSON(t, app, http.MethodPost, "/complaints", "", fiber.Map{
		"title":         "Slow checkout",
		"description":   "Checkout takes a minute",
		"customerName":  "B. User",
		"customerEmail": "B@x.com",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Complaint created successfully", envelope["message"])

	data := envelope["data"].(map[string]any)
	assert.Equal(t, "Open", data["status"])
	assert.Equal(t, "Other", data["category"])
	assert.Equal(t, "Medium", data["priority"])
	assert.Equal(t, "b@x.com", data["customerEmail"])
	assert.Equal(t, []any{}, data["notes"])
}

func TestCreateComplaint_ValidationErrorEnvelope(t *testing.T) {
	app := newTestApp(t)

	status, envelope := doJSON(t, app, http.MethodPost, "/complaints", "", fiber.Map{
		"description":   "no title given",
		"customerName":  "A. User",
		"customerEmail": "bad-email",
	})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, envelope["success"])

	details := envelope["details"].(map[string]any)
	assert.Equal(t, "Title is required", details["title"])
	assert.Equal(t, "Please enter a valid email", details["customerEmail"])
}

func TestManagementRoutesRequireAuth(t *testing.T) {
	app := newTestApp(t)
	id := submitComplaint(t, app)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/complaints"},
		{http.MethodGet, "/complaints/analytics"},
		{http.MethodGet, "/complaints/" + id},
		{http.MethodPut, "/complaints/" + id},
		{http.MethodDelete, "/complaints/" + id},
		{http.MethodPost, "/complaints/" + id + "/notes"},
		{http.MethodGet, "/admin/me"},
	} {
		status, envelope := doJSON(t, app, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, "%s %s", tc.method, tc.path)
		assert.Equal(t, false, envelope["success"])
	}

	// a forged token is rejected too
	forged := auth.NewTokenManager("other-secret", time.Hour)
	token, _, err := forged.GenerateToken("admin-1", "admin@example.com")
	require.NoError(t, err)
	status, _ := doJSON(t, app, http.MethodGet, "/complaints", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestComplaintLifecycleOverHTTP(t *testing.T) {
	app := newTestApp(t)
	token := adminToken(t, app)
	id := submitComplaint(t, app)

	// list
	status, envelope := doJSON(t, app, http.MethodGet, "/complaints?status=Open&limit=10", token, nil)
	require.Equal(t, http.StatusOK, status)
	data := envelope["data"].(map[string]any)
	complaints := data["complaints"].([]any)
	require.Len(t, complaints, 1)
	pagination := data["pagination"].(map[string]any)
	assert.EqualValues(t, 1, pagination["total"])
	assert.EqualValues(t, 1, pagination["pages"])

	// resolve
	status, envelope = doJSON(t, app, http.MethodPut, "/complaints/"+id, token, fiber.Map{
		"status": "Resolved",
	})
	require.Equal(t, http.StatusOK, status)
	data = envelope["data"].(map[string]any)
	assert.Equal(t, "Resolved", data["status"])
	assert.NotEmpty(t, data["resolvedAt"])

	// note
	status, envelope = doJSON(t, app, http.MethodPost, "/complaints/"+id+"/notes", token, fiber.Map{
		"note": "refund issued",
	})
	require.Equal(t, http.StatusOK, status)
	data = envelope["data"].(map[string]any)
	assert.Equal(t, []any{"refund issued"}, data["notes"])

	// delete, then the record is gone
	status, envelope = doJSON(t, app, http.MethodDelete, "/complaints/"+id, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Complaint deleted successfully", envelope["message"])

	status, envelope = doJSON(t, app, http.MethodGet, "/complaints/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, envelope["success"])
}

func TestAnalyticsEndpoint(t *testing.T) {
	app := newTestApp(t)
	token := adminToken(t, app)

	for i := 0; i < 3; i++ {
		submitComplaint(t, app)
	}

	status, envelope := doJSON(t, app, http.MethodGet, "/complaints/analytics", token, nil)
	require.Equal(t, http.StatusOK, status)
	data := envelope["data"].(map[string]any)
	assert.EqualValues(t, 3, data["total"])
	assert.EqualValues(t, 3, data["open"])
	assert.EqualValues(t, 3, data["high"])
	assert.EqualValues(t, 0, data["resolved"])
}

func TestSignupConflict(t *testing.T) {
	app := newTestApp(t)

	creds := fiber.Map{"email": "admin@example.com", "password": "s3cret"}
	status, _ := doJSON(t, app, http.MethodPost, "/admin/signup", "", creds)
	require.Equal(t, http.StatusOK, status)

	status, envelope := doJSON(t, app, http.MethodPost, "/admin/signup", "", creds)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, false, envelope["success"])
	assert.Equal(t, "Email already registered.", envelope["error"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app := newTestApp(t)
	_ = adminToken(t, app)

	status, envelope := doJSON(t, app, http.MethodPost, "/admin/login", "", fiber.Map{
		"email":    "admin@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, envelope["success"])
}

func TestAdminMe(t *testing.T) {
	app := newTestApp(t)
	token := adminToken(t, app)

	status, envelope := doJSON(t, app, http.MethodGet, "/admin/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	data := envelope["data"].(map[string]any)
	assert.Equal(t, "admin@example.com", data["email"])
}

func TestHealthLive(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"status":"alive"`)
}

func TestUnknownComplaintIs404(t *testing.T) {
	app := newTestApp(t)
	token := adminToken(t, app)

	status, envelope := doJSON(t, app, http.MethodGet, fmt.Sprintf("/complaints/%s", "00000000-0000-0000-0000-000000000000"), token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, envelope["success"])
}
