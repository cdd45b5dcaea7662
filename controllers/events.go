package controllers

import (
	"errors"
	"net/http"

	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/models"
	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventInput is the body for creating an event. Accessibility and visibility
// default to the original schema defaults when omitted.
type EventInput struct {
	EventName     string                `json:"eventName" binding:"required"`
	Banner        string                `json:"banner,omitempty"`
	Date          models.EventDate      `json:"date"`
	Description   string                `json:"description,omitempty"`
	Location      models.Location       `json:"location,omitempty"`
	ExternalLinks []models.ExternalLink `json:"externalLinks,omitempty"`
	Accessibility string                `json:"accessibility,omitempty"`
	Visibility    string                `json:"visibility,omitempty"`
}

// EventUpdateInput allows partial settings updates; nil fields are left
// untouched. Changing accessibility never removes existing participants.
type EventUpdateInput struct {
	EventName     *string                `json:"eventName,omitempty"`
	Banner        *string                `json:"banner,omitempty"`
	Date          *models.EventDate      `json:"date,omitempty"`
	Description   *string                `json:"description,omitempty"`
	Location      *models.Location       `json:"location,omitempty"`
	ExternalLinks *[]models.ExternalLink `json:"externalLinks,omitempty"`
	Accessibility *string                `json:"accessibility,omitempty"`
	Visibility    *string                `json:"visibility,omitempty"`
}

// ParticipantInput adds a user to the roster, optionally with a role label.
type ParticipantInput struct {
	UserID string `json:"userId" binding:"required"`
	Role   string `json:"role,omitempty"`
}

func validAccessibility(v string) bool {
	return v == models.AccessOpen || v == models.AccessInviteOnly || v == models.AccessHybrid
}

func validVisibility(v string) bool {
	switch v {
	case models.VisibilityPublic, models.VisibilityMembersOnly,
		models.VisibilityParticipantsOnly, models.VisibilityPrivate:
		return true
	}
	return false
}

func eventID(c *gin.Context) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return primitive.NilObjectID, errBadRequest("validation_error", "invalid event id")
	}
	return id, nil
}

// CreateEvent creates a new event. Reached through RequireLead.
func (a *API) CreateEvent(c *gin.Context) {
	var input EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if err := input.Date.Validate(); err != nil {
		fail(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if input.Accessibility == "" {
		input.Accessibility = models.AccessOpen
	}
	if input.Visibility == "" {
		input.Visibility = models.VisibilityMembersOnly
	}
	if !validAccessibility(input.Accessibility) {
		fail(c, http.StatusBadRequest, "validation_error", "accessibility must be 'Open', 'Invite-Only' or 'Hybrid'")
		return
	}
	if !validVisibility(input.Visibility) {
		fail(c, http.StatusBadRequest, "validation_error", "unknown visibility mode")
		return
	}

	creatorID, _, err := session(c)
	if err != nil {
		a.respondErr(c, err)
		return
	}

	event := &models.Event{
		EventName:     input.EventName,
		Banner:        input.Banner,
		Date:          input.Date,
		Description:   input.Description,
		Location:      input.Location,
		ExternalLinks: input.ExternalLinks,
		Accessibility: input.Accessibility,
		Visibility:    input.Visibility,
		Participants:  []models.Participant{},
		SubEvents:     []models.SubEvent{},
		CreatedBy:     creatorID,
	}
	if err := a.Store.CreateEvent(c.Request.Context(), event); err != nil {
		a.respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

// ListEvents returns all events the caller may see, newest first.
func (a *API) ListEvents(c *gin.Context) {
	userID, role, err := session(c)
	if err != nil {
		a.respondErr(c, err)
		return
	}

	all, err := a.Store.ListEvents(c.Request.Context())
	if err != nil {
		a.respondErr(c, err)
		return
	}

	visible := make([]*models.Event, 0, len(all))
	for _, e := range all {
		if e.VisibleTo(role, userID) {
			visible = append(visible, e)
		}
	}
	c.JSON(http.StatusOK, visible)
}

// GetEvent fetches one event. An event the caller must not see answers 404,
// not 403, so its existence is not revealed.
func (a *API) GetEvent(c *gin.Context) {
	id, err := eventID(c)
	if err != nil {
		a.respondErr(c, err)
		return
	}
	userID, role, err := session(c)
	if err != nil {
		a.respondErr(c, err)
		return
	}

	event, err := a.Store.GetEvent(c.Request.Context(), id)
	if err != nil {
		a.respondErr(c, err)
		return
	}
	if !event.VisibleTo(role, userID) {
		fail(c, http.StatusNotFound, "not_found", "event not found")
		return
	}
	c.JSON(http.StatusOK, event)
}

// UpdateEvent applies a partial settings update. Reached through
// RequireLead. Any visibility/accessibility transition is legal.
func (a *API) UpdateEvent(c *gin.Context) {
	id, err := eventID(c)
	if err != nil {
		a.respondErr(c, err)
		return
	}
	var input EventUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if input.Date != nil {
		if err := input.Date.Validate(); err != nil {
			fail(c, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
	}
	if input.Accessibility != nil && !validAccessibility(*input.Accessibility) {
		fail(c, http.StatusBadRequest, "validation_error", "accessibility must be 'Open', 'Invite-Only' or 'Hybrid'")
		return
	}
	if input.Visibility != nil && !validVisibility(*input.Visibility) {
		fail(c, http.StatusBadRequest, "validation_error", "unknown visibility mode")
		return
	}

	event, err := a.mutateEvent(c.Request.Context(), id, func(e *models.Event) error {
		if input.EventName != nil {
			e.EventName = *input.EventName
		}
		if input.Banner != nil {
			e.Banner = *input.Banner
		}
		if input.Date != nil {
			e.Date = *input.Date
		}
		if input.Description != nil {
			e.Description = *input.Description
		}
		if input.Location != nil {
			e.Location = *input.Location
		}
		if input.ExternalLinks != nil {
			e.ExternalLinks = *input.ExternalLinks
		}
		if input.Accessibility != nil {
			e.Accessibility = *input.Accessibility
		}
		if input.Visibility != nil {
			e.Visibility = *input.Visibility
		}
		return nil
	})
	if err != nil {
		a.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// DeleteEvent removes an event entirely. Reached through RequireLead.
func (a *API) DeleteEvent(c *gin.Context) {
	id, err := eventID(c)
	if err != nil {
		a.respondErr(c, err)
		return
	}
	if err := a.Store.DeleteEvent(c.Request.Context(), id); err != nil {
		a.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}

// RegisterSelf signs the caller up as a participant. Invite-Only events
// refuse self-registration; leads use AddParticipant instead.
func (a *API) RegisterSelf(c *gin.Context) {
	id, err := eventID(c)
	if err != nil {
		a.respondErr(c, err)
		return
	}
	userID, role, err := session(c)
	if err != nil {
		a.respondErr(c, err)
		return
	}

	event, err := a.mutateEvent(c.Request.Context(), id, func(e *models.Event) error {
		if e.Accessibility == models.AccessInviteOnly && !role.IsStaff() {
			return errForbidden("access_closed", "this event is invite-only")
		}
		if e.Participant(userID) != nil {
			return errConflict("already_registered", "already registered for this event")
		}
		e.Participants = append(e.Participants, models.Participant{
			User: userID,
			Role: models.ParticipantRolePhotographer,
		})
		return nil
	})
	if err != nil {
		a.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// DeregisterSelf removes the caller from the roster. A non-floating room
// assignment locks the exit until a lead clears it; floating assignments
// and the attendance record go away with the registration.
func (a *API) DeregisterSelf(c *gin.Context) {
	id, err := eventID(c)
	if err != nil {
		a.respondErr(c, err)
		return
	}
	userID, _, err := session(c)
	if err != nil {
		a.respondErr(c, err)
		return
	}

	event, err := a.mutateEvent(c.Request.Context(), id, func(e *models.Event) error {
		if e.Participant(userID) == nil {
			return errConflict("not_registered", "not registered for this event")
		}
		if e.HasBlockingAssignment(userID) {
			return errConflict("assignment_lock", "you have an assigned task; ask a lead to remove it first")
		}
		e.RemoveParticipant(userID)
		e.RemoveAssignments(userID, true)
		e.RemoveAttendanceRecord(userID)
		return nil
	})
	if err != nil {
		a.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// AddParticipant lets a lead put any existing user on the roster, bypassing
// the accessibility mode, optionally with a custom role label.
func (a *API) AddParticipant(c *gin.Context) {
	id, err := eventID(c)
	if err != nil {
		a.respondErr(c, err)
		return
	}
	var input ParticipantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	userID, err := primitive.ObjectIDFromHex(input.UserID)
	if err != nil {
		fail(c, http.StatusBadRequest, "validation_error", "invalid user id")
		return
	}

	if _, err := a.Store.GetUserByID(c.Request.Context(), userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(c, http.StatusNotFound, "not_found", "user not found")
			return
		}
		a.respondErr(c, err)
		return
	}

	role := input.Role
	if role == "" {
		role = models.ParticipantRolePhotographer
	}

	event, err := a.mutateEvent(c.Request.Context(), id, func(e *models.Event) error {
		if e.Participant(userID) != nil {
			return errConflict("already_registered", "user is already a participant")
		}
		e.Participants = append(e.Participants, models.Participant{User: userID, Role: role})
		return nil
	})
	if err != nil {
		a.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// RemoveParticipant takes a user off the roster and clears every trace of
// them from the schedule and attendance. Reached through RequireLead.
func (a *API) RemoveParticipant(c *gin.Context) {
	id, err := eventID(c)
	if err != nil {
		a.respondErr(c, err)
		return
	}
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		fail(c, http.StatusBadRequest, "validation_error", "invalid user id")
		return
	}

	event, err := a.mutateEvent(c.Request.Context(), id, func(e *models.Event) error {
		if !e.RemoveParticipant(userID) {
			return errConflict("not_registered", "user is not a participant")
		}
		e.RemoveAssignments(userID, false)
		e.RemoveAttendanceRecord(userID)
		return nil
	})
	if err != nil {
		a.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}
