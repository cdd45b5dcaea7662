package controllers

import (
	"net/http"

	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AttendanceConfigInput replaces the attendance switches; existing records
// are kept.
type AttendanceConfigInput struct {
	Enabled     bool              `json:"enabled"`
	SelfMarking bool              `json:"selfMarking"`
	Geofencing  models.Geofencing `json:"geofencing"`
}

// AttendanceStatusInput sets one participant's status.
type AttendanceStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// UpdateAttendanceConfig configures the attendance feature of an event.
// Reached through RequireLead.
func (a *API) UpdateAttendanceConfig(c *gin.Context) {
	id, err := eventID(c)
	if err != nil {
		a.respondErr(c, err)
		return
	}
	var input AttendanceConfigInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	event, err := a.mutateEvent(c.Request.Context(), id, func(e *models.Event) error {
		e.Attendance.Enabled = input.Enabled
		e.Attendance.SelfMarking = input.SelfMarking
		e.Attendance.Geofencing = input.Geofencing
		return nil
	})
	if err != nil {
		a.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// SetAttendanceStatus upserts the single per-user attendance record of an
// event. Participants may mark themselves only when self-marking is on;
// marking anyone else requires lead or admin.
func (a *API) SetAttendanceStatus(c *gin.Context) {
	id, err := eventID(c)
	if err != nil {
		a.respondErr(c, err)
		return
	}
	targetID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		fail(c, http.StatusBadRequest, "validation_error", "invalid user id")
		return
	}
	var input AttendanceStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if input.Status != models.AttendancePresent && input.Status != models.AttendanceAbsent {
		fail(c, http.StatusBadRequest, "validation_error", "status must be 'Present' or 'Absent'")
		return
	}

	actorID, actorRole, err := session(c)
	if err != nil {
		a.respondErr(c, err)
		return
	}

	event, err := a.mutateEvent(c.Request.Context(), id, func(e *models.Event) error {
		if !e.Attendance.Enabled {
			return errConflict("attendance_disabled", "attendance is not enabled for this event")
		}
		if e.Participant(targetID) == nil {
			return errConflict("not_participant", "user is not a participant of this event")
		}
		if actorID == targetID {
			if !e.Attendance.SelfMarking && !actorRole.IsStaff() {
				return errForbidden("forbidden", "self-marking is not enabled for this event")
			}
		} else if !actorRole.IsStaff() {
			return errForbidden("forbidden", "only leads can mark attendance for others")
		}
		e.SetAttendanceStatus(targetID, input.Status)
		return nil
	})
	if err != nil {
		a.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}
