package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/terraincognita07/baseapp/internal/models"
)

func TestRegisterCreatesOwnerAccountAndSession(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t)
	session, user := ta.registerUser(t, "Ada@Example.com")

	if user.Email != "ada@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if !user.AccountOwner {
		t.Fatal("expected first user of a new account to own it")
	}
	if user.Role != string(models.RoleAdmin) {
		t.Fatalf("expected default role admin, got %q", user.Role)
	}
	if !strings.HasPrefix(user.APIKey, user.ID) || len(user.APIKey) != len(user.ID)+10 {
		t.Fatalf("expected api key to be id plus a 10 character suffix, got %q", user.APIKey)
	}
	if user.SignInCount != 1 {
		t.Fatalf("expected registration to count as a sign-in, got %d", user.SignInCount)
	}

	response := ta.do(t, http.MethodGet, "/user", nil, session)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected /user status 200, got %d", response.StatusCode)
	}
	summary := map[string]any{}
	decodeJSONBody(t, response.Body, &summary)
	if summary["full_name"] != "Ada Lovelace" {
		t.Fatalf("expected full name in summary, got %v", summary["full_name"])
	}
	if summary["first_login"] != true {
		t.Fatalf("expected first login right after registration, got %v", summary["first_login"])
	}
}

func TestRegisterCollectsValidationErrors(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t)
	response := ta.do(t, http.MethodPost, "/users", map[string]any{
		"email":       "not-an-email",
		"invite_code": "wrong",
	}, "")
	if response.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", response.StatusCode)
	}

	payload := struct {
		Fields map[string][]string `json:"fields"`
	}{}
	decodeJSONBody(t, response.Body, &payload)
	for _, field := range []string{"first_name", "last_name", "email", "password", "invite_code"} {
		if len(payload.Fields[field]) == 0 {
			t.Fatalf("expected validation error for %s, got %#v", field, payload.Fields)
		}
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t)
	ta.registerUser(t, "dup@example.com")

	response := ta.do(t, http.MethodPost, "/users", registrationBody("DUP@example.com"), "")
	if response.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422 for duplicate email, got %d", response.StatusCode)
	}
}

func TestRegisterRequiresAllowedInviteCode(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t)
	body := registrationBody("invite@example.com")
	body["invite_code"] = "not-on-the-list"

	response := ta.do(t, http.MethodPost, "/users", body, "")
	if response.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", response.StatusCode)
	}
	payload := struct {
		Fields map[string][]string `json:"fields"`
	}{}
	decodeJSONBody(t, response.Body, &payload)
	if len(payload.Fields) != 1 || len(payload.Fields["invite_code"]) == 0 {
		t.Fatalf("expected only an invite_code error, got %#v", payload.Fields)
	}
}

func TestLoginSetsSealedCookieAndTracksSignIns(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t)
	ta.registerUser(t, "login@example.com")

	response := ta.do(t, http.MethodPost, "/users/login", map[string]any{
		"email":       "login@example.com",
		"password":    testPassword,
		"remember_me": true,
	}, "")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected login status 200, got %d", response.StatusCode)
	}

	cookie := responseCookie(response.Cookies(), authCookieName)
	if cookie == nil {
		t.Fatal("expected auth cookie on valid login")
	}
	if !cookie.HttpOnly {
		t.Fatal("expected auth cookie HttpOnly=true")
	}
	if cookie.Secure {
		t.Fatal("expected auth cookie Secure=false by default")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("expected auth cookie SameSite=Lax, got %v", cookie.SameSite)
	}
	if !strings.HasPrefix(cookie.Value, secureCookieVersion+".") {
		t.Fatalf("expected sealed cookie value, got %q", cookie.Value)
	}
	if cookie.Expires.IsZero() {
		t.Fatal("expected remember-me cookie to carry an expiry")
	}

	var stored models.User
	if err := ta.database.Where("email = ?", "login@example.com").First(&stored).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if stored.SignInCount != 2 {
		t.Fatalf("expected sign in count 2, got %d", stored.SignInCount)
	}
	if stored.RememberCreatedAt == nil {
		t.Fatal("expected remember_created_at to be set")
	}
	if stored.LastSignInAt == nil || stored.CurrentSignInAt == nil {
		t.Fatal("expected trackable timestamps to be set")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t)
	ta.registerUser(t, "wrong@example.com")

	response := ta.do(t, http.MethodPost, "/users/login", map[string]any{
		"email":    "wrong@example.com",
		"password": "WrongPass1",
	}, "")
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", response.StatusCode)
	}
	if got := readAPIError(t, response.Body); got != "invalid credentials" {
		t.Fatalf("expected invalid credentials error, got %q", got)
	}
	if cookie := responseCookie(response.Cookies(), authCookieName); cookie != nil && cookie.Value != "" {
		t.Fatal("did not expect an auth cookie after a failed login")
	}
}

func TestAPIKeyHeaderAuthenticates(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t)
	_, user := ta.registerUser(t, "key@example.com")

	request := newJSONRequest(t, http.MethodGet, "/dashboard", nil)
	request.Header.Set(apiKeyHeader, user.APIKey)
	response, err := ta.app.Test(request, -1)
	if err != nil {
		t.Fatalf("dashboard request failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200 with api key, got %d", response.StatusCode)
	}

	request = newJSONRequest(t, http.MethodGet, "/dashboard", nil)
	request.Header.Set(apiKeyHeader, user.APIKey+"x")
	response, err = ta.app.Test(request, -1)
	if err != nil {
		t.Fatalf("dashboard request failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401 with unknown api key, got %d", response.StatusCode)
	}
}

func TestProtectedRoutesRequireAuthentication(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t)
	for _, path := range []string{"/dashboard", "/user", "/account", "/projects", "/invoices/month/2024-03"} {
		response := ta.do(t, http.MethodGet, path, nil, "")
		if response.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected %s to return 401, got %d", path, response.StatusCode)
		}
	}

	response := ta.do(t, http.MethodGet, "/projects", nil, "v1.tampered")
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected tampered cookie to return 401, got %d", response.StatusCode)
	}
}

func TestLogoutClearsCookieAndRememberStamp(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t)
	ta.registerUser(t, "logout@example.com")
	login := ta.do(t, http.MethodPost, "/users/login", map[string]any{
		"email":       "logout@example.com",
		"password":    testPassword,
		"remember_me": true,
	}, "")
	session := responseCookie(login.Cookies(), authCookieName).Value

	response := ta.do(t, http.MethodDelete, "/users/logout", nil, session)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected logout status 200, got %d", response.StatusCode)
	}
	cleared := responseCookie(response.Cookies(), authCookieName)
	if cleared == nil || cleared.Value != "" {
		t.Fatal("expected logout to clear the auth cookie")
	}

	var stored models.User
	if err := ta.database.Where("email = ?", "logout@example.com").First(&stored).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if stored.RememberCreatedAt != nil {
		t.Fatal("expected remember_created_at to be cleared on logout")
	}
}

func TestPasswordResetFlow(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t)
	ta.registerUser(t, "reset@example.com")

	response := ta.do(t, http.MethodPost, "/users/password", map[string]any{"email": "reset@example.com"}, "")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected forgot password status 200, got %d", response.StatusCode)
	}
	unknown := ta.do(t, http.MethodPost, "/users/password", map[string]any{"email": "nobody@example.com"}, "")
	if unknown.StatusCode != http.StatusOK {
		t.Fatalf("expected unknown email to get the same status 200, got %d", unknown.StatusCode)
	}

	rawToken := ta.mailer.token("reset@example.com")
	if rawToken == "" {
		t.Fatal("expected a reset token to be mailed")
	}
	var stored models.User
	if err := ta.database.Where("email = ?", "reset@example.com").First(&stored).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if stored.ResetPasswordToken == "" || stored.ResetPasswordToken == rawToken {
		t.Fatal("expected only a digest of the reset token to be stored")
	}

	invalid := ta.do(t, http.MethodPut, "/users/password", map[string]any{
		"reset_password_token":  "not-the-token",
		"password":              "NewStrong2",
		"password_confirmation": "NewStrong2",
	}, "")
	if invalid.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected invalid token status 422, got %d", invalid.StatusCode)
	}

	reset := ta.do(t, http.MethodPut, "/users/password", map[string]any{
		"reset_password_token":  rawToken,
		"password":              "NewStrong2",
		"password_confirmation": "NewStrong2",
	}, "")
	if reset.StatusCode != http.StatusOK {
		t.Fatalf("expected reset status 200, got %d (%s)", reset.StatusCode, readAPIError(t, reset.Body))
	}

	reused := ta.do(t, http.MethodPut, "/users/password", map[string]any{
		"reset_password_token":  rawToken,
		"password":              "Another3x",
		"password_confirmation": "Another3x",
	}, "")
	if reused.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected reused token status 422, got %d", reused.StatusCode)
	}

	login := ta.do(t, http.MethodPost, "/users/login", map[string]any{
		"email":    "reset@example.com",
		"password": "NewStrong2",
	}, "")
	if login.StatusCode != http.StatusOK {
		t.Fatalf("expected login with new password to succeed, got %d", login.StatusCode)
	}
}
