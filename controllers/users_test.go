package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestListUsers_MembersOnly(t *testing.T) {
	env := newTestEnv(t)
	_, lead := env.newUser(t, models.RoleLead, "l@x.com", "")
	env.newUser(t, models.RolePhotographer, "p@x.com", "phot")
	env.newUser(t, models.RoleGuest, "g@x.com", "")
	env.newUser(t, models.RoleAdmin, "a@x.com", "")

	rec := env.do(t, http.MethodGet, "/api/users", lead, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var users []models.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&users))
	require.Len(t, users, 2)
	for _, u := range users {
		assert.True(t, u.Role == models.RolePhotographer || u.Role == models.RoleLead,
			"roster must contain members only, got %s", u.Role)
	}
}

func TestListUsers_NeverLeaksPasswordHash(t *testing.T) {
	env := newTestEnv(t)
	_, lead := env.newUser(t, models.RoleLead, "l@x.com", "")
	env.newUser(t, models.RolePhotographer, "p@x.com", "phot")

	rec := env.do(t, http.MethodGet, "/api/users", lead, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "$2a$")
}

func TestBanUser_Toggles(t *testing.T) {
	env := newTestEnv(t)
	_, lead := env.newUser(t, models.RoleLead, "l@x.com", "")
	phot, _ := env.newUser(t, models.RolePhotographer, "p@x.com", "phot")

	path := "/api/users/" + phot.ID.Hex() + "/ban"

	rec := env.do(t, http.MethodPut, path, lead, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, decodeBody(t, rec)["isBanned"])

	rec = env.do(t, http.MethodPut, path, lead, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["isBanned"])
}

func TestDeleteUser(t *testing.T) {
	env := newTestEnv(t)
	_, lead := env.newUser(t, models.RoleLead, "l@x.com", "")
	phot, _ := env.newUser(t, models.RolePhotographer, "p@x.com", "phot")

	rec := env.do(t, http.MethodDelete, "/api/users/"+phot.ID.Hex(), lead, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/users/"+phot.ID.Hex(), lead, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportUsers_Workbook(t *testing.T) {
	env := newTestEnv(t)
	_, lead := env.newUser(t, models.RoleLead, "l@x.com", "")
	env.newUser(t, models.RolePhotographer, "p@x.com", "phot")

	rec := env.do(t, http.MethodGet, "/api/users/export", lead, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "members.xlsx")

	// The payload must open as a real workbook with one row per member.
	wb, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows("Members")
	require.NoError(t, err)
	assert.Len(t, rows, 3, "header plus two members")
}

func TestUserAdmin_RequiresLead(t *testing.T) {
	env := newTestEnv(t)
	phot, photographer := env.newUser(t, models.RolePhotographer, "p@x.com", "phot")

	for _, req := range []struct{ method, path string }{
		{http.MethodGet, "/api/users"},
		{http.MethodGet, "/api/users/export"},
		{http.MethodPut, "/api/users/" + phot.ID.Hex() + "/ban"},
		{http.MethodDelete, "/api/users/" + phot.ID.Hex()},
	} {
		rec := env.do(t, req.method, req.path, photographer, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code, "%s %s", req.method, req.path)
	}
}
