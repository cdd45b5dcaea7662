package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/models"
	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/otp"
	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/store/memstore"
	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "controller-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

// recorderMailer captures outgoing mail instead of sending it.
type recorderMailer struct {
	sent []struct{ To, Subject, Body string }
}

func (m *recorderMailer) Send(to, subject, body string) error {
	m.sent = append(m.sent, struct{ To, Subject, Body string }{to, subject, body})
	return nil
}

// testEnv bundles one isolated API instance with direct handles on its
// fakes, so tests can look behind the HTTP surface.
type testEnv struct {
	api    *API
	store  *memstore.Store
	otp    *otp.MemoryStore
	mailer *recorderMailer
	router *gin.Engine
	// clock drives OTP expiry; advance it to simulate waiting.
	clock time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		store:  memstore.New(),
		otp:    otp.NewMemoryStore(),
		mailer: &recorderMailer{},
		clock:  time.Now(),
	}
	env.api = &API{
		Store:  env.store,
		OTP:    env.otp,
		Mailer: env.mailer,
		Log:    zap.NewNop(),
		Secret: testSecret,
		Now:    func() time.Time { return env.clock },
	}
	env.router = env.api.Router()
	return env
}

// do runs one request through the full router (middleware included).
func (env *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
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

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

// newUser persists a user directly and returns it with a session token.
func (env *testEnv) newUser(t *testing.T, role models.Role, email, username string) (*models.User, string) {
	t.Helper()

	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)

	u := &models.User{
		FullName: "Test " + string(role),
		Email:    email,
		Password: hash,
		Role:     role,
		Username: username,
	}
	require.NoError(t, env.store.CreateUser(context.Background(), u))

	token, err := utils.GenerateToken(testSecret, u.ID.Hex(), u.Role, u.FullName)
	require.NoError(t, err)
	return u, token
}

// pendingCode reads the stored OTP for an email, the way only the server
// itself normally can.
func (env *testEnv) pendingCode(t *testing.T, email string) string {
	t.Helper()
	entry, err := env.otp.Get(context.Background(), email)
	require.NoError(t, err)
	return entry.Code
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}
