// Package controllers contains the HTTP handlers.
//
// All handlers hang off API so tests can build an instance on the in-memory
// store with no global state shared between tests. Business failures travel
// as *apiError values carrying the HTTP status and a machine-readable code;
// anything else is an internal error and is logged, reported and masked.
package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/mail"
	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/middleware"
	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/models"
	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/observability"
	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/otp"
	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// API holds the shared dependencies of every handler.
type API struct {
	Store  store.Store
	OTP    otp.Store
	Mailer mail.Mailer
	Log    *zap.Logger
	Secret string
	// Now is the clock used for OTP expiry checks; tests override it.
	Now func() time.Time
}

func (a *API) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// apiError is a business failure with a fixed HTTP mapping.
type apiError struct {
	status  int
	code    string
	message string
}

func (e *apiError) Error() string { return e.message }

func errBadRequest(code, msg string) *apiError {
	return &apiError{status: http.StatusBadRequest, code: code, message: msg}
}

func errForbidden(code, msg string) *apiError {
	return &apiError{status: http.StatusForbidden, code: code, message: msg}
}

func errNotFound(msg string) *apiError {
	return &apiError{status: http.StatusNotFound, code: "not_found", message: msg}
}

func errConflict(code, msg string) *apiError {
	return &apiError{status: http.StatusConflict, code: code, message: msg}
}

func errUnavailable(msg string) *apiError {
	return &apiError{status: http.StatusServiceUnavailable, code: "service_unavailable", message: msg}
}

// fail writes the error envelope {"error": code, "message": text}.
func fail(c *gin.Context, status int, code, msg string) {
	c.JSON(status, gin.H{"error": code, "message": msg})
}

// respondErr maps an error to its HTTP response. Unknown errors are logged
// and reported without leaking internals to the client.
func (a *API) respondErr(c *gin.Context, err error) {
	var apiErr *apiError
	switch {
	case errors.As(err, &apiErr):
		fail(c, apiErr.status, apiErr.code, apiErr.message)
	case errors.Is(err, store.ErrNotFound):
		fail(c, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, store.ErrDuplicate):
		fail(c, http.StatusConflict, "conflict", "resource already exists")
	default:
		a.Log.Error("internal error", zap.String("path", c.FullPath()), zap.Error(err))
		observability.CaptureErr(err)
		fail(c, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}

// session returns the authenticated caller's id and role, set by the Auth
// middleware.
func session(c *gin.Context) (primitive.ObjectID, models.Role, error) {
	idHex := c.GetString(middleware.CtxUserID)
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return primitive.NilObjectID, "", errBadRequest("validation_error", "invalid user id in token")
	}
	role, _ := c.Get(middleware.CtxRole)
	r, _ := role.(models.Role)
	return id, r, nil
}

// updateRetries bounds how often a lost optimistic-concurrency race is
// replayed before giving up.
const updateRetries = 3

// mutateEvent runs a load / mutate / version-checked-write cycle, retrying
// when a concurrent editor won the race. The mutation is re-applied to the
// freshly loaded document on every attempt, so no intermediate state leaks
// between tries and no partial change is ever persisted.
func (a *API) mutateEvent(ctx context.Context, id primitive.ObjectID, mutate func(*models.Event) error) (*models.Event, error) {
	var lastErr error
	for attempt := 0; attempt < updateRetries; attempt++ {
		event, err := a.Store.GetEvent(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := mutate(event); err != nil {
			return nil, err
		}
		err = a.Store.UpdateEvent(ctx, event)
		if err == nil {
			return event, nil
		}
		if !errors.Is(err, store.ErrConflict) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}
