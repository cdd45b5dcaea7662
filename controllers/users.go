package controllers

import (
	"bytes"
	"net/http"

	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/export"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// All roster handlers are reached through RequireLead.

// ListUsers returns the club members (photographers and leads).
func (a *API) ListUsers(c *gin.Context) {
	users, err := a.Store.ListMembers(c.Request.Context())
	if err != nil {
		a.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// BanUser toggles the banned flag and returns the updated record.
func (a *API) BanUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "validation_error", "invalid user id")
		return
	}

	user, err := a.Store.GetUserByID(c.Request.Context(), id)
	if err != nil {
		a.respondErr(c, err)
		return
	}
	user.IsBanned = !user.IsBanned
	if err := a.Store.UpdateUser(c.Request.Context(), user); err != nil {
		a.respondErr(c, err)
		return
	}

	a.Log.Info("user ban toggled",
		zap.String("user", id.Hex()), zap.Bool("banned", user.IsBanned))
	c.JSON(http.StatusOK, user)
}

// DeleteUser removes an account entirely.
func (a *API) DeleteUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "validation_error", "invalid user id")
		return
	}
	if err := a.Store.DeleteUser(c.Request.Context(), id); err != nil {
		a.respondErr(c, err)
		return
	}
	a.Log.Info("user deleted", zap.String("user", id.Hex()))
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// ExportUsers streams the member roster as an .xlsx download.
func (a *API) ExportUsers(c *gin.Context) {
	users, err := a.Store.ListMembers(c.Request.Context())
	if err != nil {
		a.respondErr(c, err)
		return
	}

	workbook, err := export.RosterWorkbook(users)
	if err != nil {
		a.respondErr(c, err)
		return
	}
	var buf bytes.Buffer
	if _, err := workbook.WriteTo(&buf); err != nil {
		a.respondErr(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="members.xlsx"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
