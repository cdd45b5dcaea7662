package controllers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/models"
	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerBody(email, code, username string) map[string]any {
	return map[string]any{
		"email":    email,
		"password": "password123",
		"otp":      code,
		"fullName": "Alice Adams",
		"username": username,
	}
}

// Scenario: request OTP, register as photographer, log in, and end up with a
// photographer session token.
func TestRegistrationAndLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/send-otp", "", map[string]any{"email": "a@x.com"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, env.mailer.sent, 1)
	assert.Equal(t, "a@x.com", env.mailer.sent[0].To)

	code := env.pendingCode(t, "a@x.com")
	assert.Len(t, code, 6)
	// The code travels by mail, never in the HTTP response.
	assert.NotContains(t, rec.Body.String(), code)
	assert.Contains(t, env.mailer.sent[0].Body, code)

	rec = env.do(t, http.MethodPost, "/api/auth/register/photographer", "", registerBody("a@x.com", code, "alice1"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	token := decodeBody(t, rec)["token"].(string)
	require.NotEmpty(t, token)

	claims, err := utils.ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, models.RolePhotographer, claims.Role)

	rec = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "a@x.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	claims, err = utils.ParseToken(testSecret, decodeBody(t, rec)["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, models.RolePhotographer, claims.Role)
	assert.Equal(t, "Alice Adams", claims.Name)
}

func TestGuestRegistrationRole(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/auth/send-otp", "", map[string]any{"email": "g@x.com"})
	code := env.pendingCode(t, "g@x.com")

	rec := env.do(t, http.MethodPost, "/api/auth/register/guest", "", map[string]any{
		"email":            "g@x.com",
		"password":         "password123",
		"otp":              code,
		"fullName":         "Gus Guest",
		"designation":      "Student",
		"institution":      "Other",
		"otherInstitution": "Some College",
		"enrollmentNumber": "123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Role comes from the registration path, never from the request.
	claims, err := utils.ParseToken(testSecret, decodeBody(t, rec)["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, models.RoleGuest, claims.Role)

	user, err := env.store.GetUserByEmail(context.Background(), "g@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Some College", user.Institution)
}

func TestSendOtp_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.newUser(t, models.RolePhotographer, "taken@x.com", "taken")

	rec := env.do(t, http.MethodPost, "/api/auth/send-otp", "", map[string]any{"email": "taken@x.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "duplicate_email", decodeBody(t, rec)["error"])
}

func TestSendOtp_OverwritesPreviousCode(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/auth/send-otp", "", map[string]any{"email": "a@x.com"})
	first := env.pendingCode(t, "a@x.com")

	env.do(t, http.MethodPost, "/api/auth/send-otp", "", map[string]any{"email": "a@x.com"})
	second := env.pendingCode(t, "a@x.com")

	// The earlier code is gone even when it happens to differ.
	rec := env.do(t, http.MethodPost, "/api/auth/register/photographer", "", registerBody("a@x.com", second, "alice1"))
	assert.Equal(t, http.StatusCreated, rec.Code)
	_ = first
}

func TestRegister_OtpSingleUse(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/auth/send-otp", "", map[string]any{"email": "a@x.com"})
	code := env.pendingCode(t, "a@x.com")

	rec := env.do(t, http.MethodPost, "/api/auth/register/photographer", "", registerBody("a@x.com", code, "alice1"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/auth/register/photographer", "", registerBody("a@x.com", code, "alice2"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "otp_not_found", decodeBody(t, rec)["error"])
}

func TestRegister_OtpExpired(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/auth/send-otp", "", map[string]any{"email": "a@x.com"})
	code := env.pendingCode(t, "a@x.com")

	env.clock = env.clock.Add(10*time.Minute + time.Second)

	rec := env.do(t, http.MethodPost, "/api/auth/register/photographer", "", registerBody("a@x.com", code, "alice1"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "otp_expired", decodeBody(t, rec)["error"])

	// The stale entry was consumed; a retry now reports it missing.
	rec = env.do(t, http.MethodPost, "/api/auth/register/photographer", "", registerBody("a@x.com", code, "alice1"))
	assert.Equal(t, "otp_not_found", decodeBody(t, rec)["error"])
}

func TestRegister_OtpMismatch(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/auth/send-otp", "", map[string]any{"email": "a@x.com"})
	code := env.pendingCode(t, "a@x.com")

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	rec := env.do(t, http.MethodPost, "/api/auth/register/photographer", "", registerBody("a@x.com", wrong, "alice1"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "otp_mismatch", decodeBody(t, rec)["error"])

	// A mismatch does not burn the pending code.
	rec = env.do(t, http.MethodPost, "/api/auth/register/photographer", "", registerBody("a@x.com", code, "alice1"))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	env.newUser(t, models.RolePhotographer, "existing@x.com", "deepanr")

	env.do(t, http.MethodPost, "/api/auth/send-otp", "", map[string]any{"email": "new@x.com"})
	code := env.pendingCode(t, "new@x.com")

	// Same letters, different case: still taken.
	rec := env.do(t, http.MethodPost, "/api/auth/register/photographer", "", registerBody("new@x.com", code, "DeepanR"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "duplicate_identity", decodeBody(t, rec)["error"])
}

func TestCheckUsername_CaseInsensitive(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/auth/check-username?username=DeepanR", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["available"])

	env.newUser(t, models.RolePhotographer, "d@x.com", "deepanr")

	rec = env.do(t, http.MethodGet, "/api/auth/check-username?username=DeepanR", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["available"])
}

func TestLogin_GenericFailureMessage(t *testing.T) {
	env := newTestEnv(t)
	env.newUser(t, models.RolePhotographer, "known@x.com", "known")

	noUser := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "nobody@x.com", "password": "password123",
	})
	badPass := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "known@x.com", "password": "wrong-password",
	})

	assert.Equal(t, http.StatusBadRequest, noUser.Code)
	assert.Equal(t, http.StatusBadRequest, badPass.Code)
	// Identical bodies: the endpoint must not reveal which part failed.
	assert.Equal(t, noUser.Body.String(), badPass.Body.String())
}
