package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/terraincognita07/baseapp/internal/db"
	"github.com/terraincognita07/baseapp/internal/logging"
	"gorm.io/gorm"
)

const (
	testSecretKey  = "test-secret-key-0123456789abcdef"
	testInviteCode = "launch-2024"
	testPassword   = "StrongPass1"
)

type testApp struct {
	app       *fiber.App
	database  *gorm.DB
	presigner *fakePresigner
	mailer    *recordingMailer
}

type fakePresigner struct {
	mu   sync.Mutex
	keys []string
}

func (presigner *fakePresigner) PresignGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	presigner.mu.Lock()
	defer presigner.mu.Unlock()
	presigner.keys = append(presigner.keys, key)
	return "https://files.example.test/" + key + "?ttl=" + ttl.String(), nil
}

type recordingMailer struct {
	mu     sync.Mutex
	tokens map[string]string
}

func (mailer *recordingMailer) SendPasswordReset(_ context.Context, email string, rawToken string) error {
	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	if mailer.tokens == nil {
		mailer.tokens = map[string]string{}
	}
	mailer.tokens[email] = rawToken
	return nil
}

func (mailer *recordingMailer) token(email string) string {
	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	return mailer.tokens[email]
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithUploadLimit(t, 11000000)
}

func newTestAppWithUploadLimit(t *testing.T, uploadLimitBytes int64) *testApp {
	t.Helper()
	return buildTestApp(t, uploadLimitBytes, false)
}

// newTestAppWithCSRF mounts the csrf middleware the way serve does.
func newTestAppWithCSRF(t *testing.T) *testApp {
	t.Helper()
	return buildTestApp(t, 11000000, true)
}

func buildTestApp(t *testing.T, uploadLimitBytes int64, withCSRF bool) *testApp {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "baseapp-api-test.db")
	database, err := db.OpenSQLite(databasePath, logging.Discard())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	presigner := &fakePresigner{}
	mailer := &recordingMailer{}
	handler, err := NewHandler(database, HandlerConfig{
		SecretKey:            testSecretKey,
		Location:             time.UTC,
		InviteCodes:          []string{testInviteCode},
		UploadLimitBytes:     uploadLimitBytes,
		RecentProjectsWindow: 14 * 24 * time.Hour,
		ShareLinkTTL:         15 * time.Minute,
		Presigner:            presigner,
		Mailer:               mailer,
		Logger:               logging.Discard(),
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	if withCSRF {
		app.Use(csrf.New(CSRFConfig(false)))
	}
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return &testApp{app: app, database: database, presigner: presigner, mailer: mailer}
}

// do sends a JSON request. A non-empty session is sent as the auth cookie.
func (ta *testApp) do(t *testing.T, method string, path string, body any, session string) *http.Response {
	t.Helper()

	request := newJSONRequest(t, method, path, body)
	if session != "" {
		request.Header.Set("Cookie", authCookieName+"="+session)
	}

	response, err := ta.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func newJSONRequest(t *testing.T, method string, path string, body any) *http.Request {
	t.Helper()

	payload := bytes.NewReader(nil)
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		payload = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, payload)
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	return request
}

func registrationBody(email string) map[string]any {
	return map[string]any{
		"email":                 email,
		"password":              testPassword,
		"password_confirmation": testPassword,
		"first_name":            "Ada",
		"last_name":             "Lovelace",
		"invite_code":           testInviteCode,
	}
}

// registerUser signs up email and returns the session cookie value and the
// created user.
func (ta *testApp) registerUser(t *testing.T, email string) (string, userView) {
	t.Helper()

	response := ta.do(t, http.MethodPost, "/users", registrationBody(email), "")
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected register status 201, got %d (%s)", response.StatusCode, readAPIError(t, response.Body))
	}

	cookie := responseCookie(response.Cookies(), authCookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("expected auth cookie after register")
	}

	payload := struct {
		User userView `json:"user"`
	}{}
	decodeJSONBody(t, response.Body, &payload)
	return cookie.Value, payload.User
}
