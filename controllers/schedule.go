package controllers

import (
	"net/http"
	"time"

	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// All schedule handlers are reached through RequireLead.

// SubEventInput creates a time-boxed segment inside an event.
type SubEventInput struct {
	Name string    `json:"name" binding:"required"`
	Date time.Time `json:"date,omitempty"`
}

// RoomInput creates a task unit inside a sub-event.
type RoomInput struct {
	Name string `json:"name" binding:"required"`
}

// AssignmentInput places a participant in a room.
type AssignmentInput struct {
	UserID     string `json:"userId" binding:"required"`
	IsFloating bool   `json:"isFloating"`
}

func subEventID(c *gin.Context) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param("subEventId"))
	if err != nil {
		return primitive.NilObjectID, errBadRequest("validation_error", "invalid sub-event id")
	}
	return id, nil
}

func roomID(c *gin.Context) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param("roomId"))
	if err != nil {
		return primitive.NilObjectID, errBadRequest("validation_error", "invalid room id")
	}
	return id, nil
}

// AddSubEvent appends a sub-event to the schedule.
func (a *API) AddSubEvent(c *gin.Context) {
	id, err := eventID(c)
	if err != nil {
		a.respondErr(c, err)
		return
	}
	var input SubEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	event, err := a.mutateEvent(c.Request.Context(), id, func(e *models.Event) error {
		e.SubEvents = append(e.SubEvents, models.SubEvent{
			ID:    primitive.NewObjectID(),
			Name:  input.Name,
			Date:  input.Date,
			Rooms: []models.Room{},
		})
		return nil
	})
	if err != nil {
		a.respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

// AddRoom appends a room to a sub-event.
func (a *API) AddRoom(c *gin.Context) {
	id, err := eventID(c)
	if err != nil {
		a.respondErr(c, err)
		return
	}
	subID, err := subEventID(c)
	if err != nil {
		a.respondErr(c, err)
		return
	}
	var input RoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	event, err := a.mutateEvent(c.Request.Context(), id, func(e *models.Event) error {
		sub := e.SubEvent(subID)
		if sub == nil {
			return errNotFound("sub-event not found")
		}
		sub.Rooms = append(sub.Rooms, models.Room{
			ID:          primitive.NewObjectID(),
			Name:        input.Name,
			Assignments: []models.Assignment{},
		})
		return nil
	})
	if err != nil {
		a.respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

// AssignToRoom gives a participant a task in a room. Assigning someone who
// already holds an assignment in that room is a no-op, not an error, so a
// double-submitted form does not fail.
func (a *API) AssignToRoom(c *gin.Context) {
	id, err := eventID(c)
	if err != nil {
		a.respondErr(c, err)
		return
	}
	subID, err := subEventID(c)
	if err != nil {
		a.respondErr(c, err)
		return
	}
	rID, err := roomID(c)
	if err != nil {
		a.respondErr(c, err)
		return
	}
	var input AssignmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	userID, err := primitive.ObjectIDFromHex(input.UserID)
	if err != nil {
		fail(c, http.StatusBadRequest, "validation_error", "invalid user id")
		return
	}

	event, err := a.mutateEvent(c.Request.Context(), id, func(e *models.Event) error {
		if e.Participant(userID) == nil {
			return errConflict("not_participant", "user is not a participant of this event")
		}
		sub := e.SubEvent(subID)
		if sub == nil {
			return errNotFound("sub-event not found")
		}
		room := sub.Room(rID)
		if room == nil {
			return errNotFound("room not found")
		}
		for _, assignment := range room.Assignments {
			if assignment.User == userID {
				return nil // already assigned here
			}
		}
		room.Assignments = append(room.Assignments, models.Assignment{
			User:       userID,
			IsFloating: input.IsFloating,
		})
		return nil
	})
	if err != nil {
		a.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// RemoveAssignment drops a user's assignment from one room. This is how a
// lead unlocks self-deregistration for an assigned participant.
func (a *API) RemoveAssignment(c *gin.Context) {
	id, err := eventID(c)
	if err != nil {
		a.respondErr(c, err)
		return
	}
	subID, err := subEventID(c)
	if err != nil {
		a.respondErr(c, err)
		return
	}
	rID, err := roomID(c)
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
		sub := e.SubEvent(subID)
		if sub == nil {
			return errNotFound("sub-event not found")
		}
		room := sub.Room(rID)
		if room == nil {
			return errNotFound("room not found")
		}
		for i, assignment := range room.Assignments {
			if assignment.User == userID {
				room.Assignments = append(room.Assignments[:i], room.Assignments[i+1:]...)
				return nil
			}
		}
		return errNotFound("assignment not found")
	})
	if err != nil {
		a.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}
