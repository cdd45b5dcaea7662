package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSocials_UpsertReplacesURL(t *testing.T) {
	env := newTestEnv(t)
	_, lead := env.newUser(t, models.RoleLead, "l@x.com", "")

	rec := env.do(t, http.MethodPut, "/api/socials", lead,
		map[string]any{"platform": "instagram", "url": "https://instagram.com/old"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPut, "/api/socials", lead,
		map[string]any{"platform": "instagram", "url": "https://instagram.com/new"})
	require.Equal(t, http.StatusOK, rec.Code)

	// Listing is public, no token needed.
	rec = env.do(t, http.MethodGet, "/api/socials", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var links []models.SocialLink
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&links))
	require.Len(t, links, 1)
	assert.Equal(t, "https://instagram.com/new", links[0].URL)
}

func TestSocials_URLValidation(t *testing.T) {
	env := newTestEnv(t)
	_, lead := env.newUser(t, models.RoleLead, "l@x.com", "")

	rec := env.do(t, http.MethodPut, "/api/socials", lead,
		map[string]any{"platform": "instagram", "url": "not-a-url"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSocials_DeleteAndWriteGates(t *testing.T) {
	env := newTestEnv(t)
	_, lead := env.newUser(t, models.RoleLead, "l@x.com", "")
	_, photographer := env.newUser(t, models.RolePhotographer, "p@x.com", "phot")

	rec := env.do(t, http.MethodPut, "/api/socials", photographer,
		map[string]any{"platform": "youtube", "url": "https://youtube.com/c"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPut, "/api/socials", lead,
		map[string]any{"platform": "youtube", "url": "https://youtube.com/c"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/socials/youtube", lead, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/socials/youtube", lead, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
