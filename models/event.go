package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Date descriptor types.
const (
	DateSingleDay = "Single Day"
	DateRange     = "Date Range"
)

// Accessibility controls who may join an event on their own.
const (
	AccessOpen       = "Open"
	AccessInviteOnly = "Invite-Only"
	AccessHybrid     = "Hybrid"
)

// Visibility controls who sees an event in listings.
const (
	VisibilityPublic           = "Public"
	VisibilityMembersOnly      = "Members Only"
	VisibilityParticipantsOnly = "Participants Only"
	VisibilityPrivate          = "Private"
)

// Attendance statuses.
const (
	AttendancePresent = "Present"
	AttendanceAbsent  = "Absent"
)

// ParticipantRolePhotographer is the default role label for self-registered
// participants. Leads may override it (e.g. "Event Lead") when adding people.
const ParticipantRolePhotographer = "Photographer"

// EventDate describes when an event happens: a single day or a range.
type EventDate struct {
	Type      string    `bson:"type" json:"type"`
	StartDate time.Time `bson:"start_date" json:"startDate"`
	EndDate   time.Time `bson:"end_date,omitempty" json:"endDate,omitempty"`
}

// Validate checks the descriptor's internal consistency.
func (d EventDate) Validate() error {
	switch d.Type {
	case DateSingleDay:
		if d.StartDate.IsZero() {
			return errors.New("startDate is required")
		}
	case DateRange:
		if d.StartDate.IsZero() || d.EndDate.IsZero() {
			return errors.New("date range requires startDate and endDate")
		}
		if d.EndDate.Before(d.StartDate) {
			return errors.New("endDate must not be before startDate")
		}
	default:
		return errors.New("date type must be 'Single Day' or 'Date Range'")
	}
	return nil
}

// Location of an event, with an optional maps link.
type Location struct {
	Address        string `bson:"address,omitempty" json:"address,omitempty"`
	GoogleMapsLink string `bson:"google_maps_link,omitempty" json:"googleMapsLink,omitempty"`
}

// ExternalLink is a label+URL pair shown on the event page.
type ExternalLink struct {
	Label string `bson:"label" json:"label"`
	URL   string `bson:"url" json:"url"`
}

// Participant ties a user to an event with a role label.
type Participant struct {
	User primitive.ObjectID `bson:"user" json:"user"`
	Role string             `bson:"role" json:"role"`
}

// Assignment places a participant in a room. Floating assignments cover
// roaming duties and do not block self-deregistration.
type Assignment struct {
	User       primitive.ObjectID `bson:"user" json:"user"`
	IsFloating bool               `bson:"is_floating" json:"isFloating"`
}

// Room is a task unit inside a sub-event.
type Room struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Assignments []Assignment       `bson:"assignments" json:"assignments"`
}

// SubEvent is a time-boxed segment of an event (e.g. one day).
type SubEvent struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Date  time.Time          `bson:"date,omitempty" json:"date,omitempty"`
	Rooms []Room             `bson:"rooms" json:"rooms"`
}

// Geofencing config for attendance marking.
type Geofencing struct {
	Enabled bool    `bson:"enabled" json:"enabled"`
	Radius  float64 `bson:"radius,omitempty" json:"radius,omitempty"` // meters
}

// AttendanceRecord is the single per-user attendance entry of an event.
type AttendanceRecord struct {
	User   primitive.ObjectID `bson:"user" json:"user"`
	Status string             `bson:"status" json:"status"`
}

// AttendanceConfig holds the attendance feature switches and records.
type AttendanceConfig struct {
	Enabled     bool               `bson:"enabled" json:"enabled"`
	SelfMarking bool               `bson:"self_marking" json:"selfMarking"`
	Geofencing  Geofencing         `bson:"geofencing" json:"geofencing"`
	Records     []AttendanceRecord `bson:"records" json:"records"`
}

// Event is the aggregate root. Its nested arrays (participants, sub-events,
// rooms, assignments, attendance records) are only ever mutated through a
// version-checked full-document update so concurrent edits cannot lose
// writes.
type Event struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventName     string             `bson:"event_name" json:"eventName"`
	Banner        string             `bson:"banner,omitempty" json:"banner,omitempty"`
	Date          EventDate          `bson:"date" json:"date"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Location      Location           `bson:"location,omitempty" json:"location,omitempty"`
	ExternalLinks []ExternalLink     `bson:"external_links" json:"externalLinks"`
	Accessibility string             `bson:"accessibility" json:"accessibility"`
	Visibility    string             `bson:"visibility" json:"visibility"`
	Participants  []Participant      `bson:"participants" json:"participants"`
	SubEvents     []SubEvent         `bson:"sub_events" json:"subEvents"`
	Attendance    AttendanceConfig   `bson:"attendance" json:"attendance"`
	// CreatedBy is recorded once at creation and never used for
	// authorization decisions.
	CreatedBy primitive.ObjectID `bson:"created_by" json:"createdBy"`
	// Version backs optimistic concurrency in the store.
	Version   int64     `bson:"version" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// VisibleTo decides whether a user sees this event, per the visibility mode:
// Public — everyone; Members Only — photographers and staff; Participants
// Only / Private — staff plus listed participants.
func (e *Event) VisibleTo(role Role, userID primitive.ObjectID) bool {
	if role.IsStaff() {
		return true
	}
	switch e.Visibility {
	case VisibilityPublic:
		return true
	case VisibilityMembersOnly:
		return role.IsMember()
	case VisibilityParticipantsOnly, VisibilityPrivate:
		return e.Participant(userID) != nil
	default:
		// Unknown modes stay hidden from non-staff.
		return false
	}
}

// Participant returns the participant entry for userID, or nil.
func (e *Event) Participant(userID primitive.ObjectID) *Participant {
	for i := range e.Participants {
		if e.Participants[i].User == userID {
			return &e.Participants[i]
		}
	}
	return nil
}

// RemoveParticipant deletes the participant entry for userID and reports
// whether one existed. Assignments and attendance are not touched here.
func (e *Event) RemoveParticipant(userID primitive.ObjectID) bool {
	for i := range e.Participants {
		if e.Participants[i].User == userID {
			e.Participants = append(e.Participants[:i], e.Participants[i+1:]...)
			return true
		}
	}
	return false
}

// SubEvent returns the sub-event with the given id, or nil.
func (e *Event) SubEvent(id primitive.ObjectID) *SubEvent {
	for i := range e.SubEvents {
		if e.SubEvents[i].ID == id {
			return &e.SubEvents[i]
		}
	}
	return nil
}

// Room returns the room with the given id inside this sub-event, or nil.
func (s *SubEvent) Room(id primitive.ObjectID) *Room {
	for i := range s.Rooms {
		if s.Rooms[i].ID == id {
			return &s.Rooms[i]
		}
	}
	return nil
}

// HasBlockingAssignment reports whether userID holds at least one
// non-floating assignment anywhere in the schedule tree. Such an assignment
// locks self-deregistration until a lead removes it.
func (e *Event) HasBlockingAssignment(userID primitive.ObjectID) bool {
	for i := range e.SubEvents {
		for j := range e.SubEvents[i].Rooms {
			for _, a := range e.SubEvents[i].Rooms[j].Assignments {
				if a.User == userID && !a.IsFloating {
					return true
				}
			}
		}
	}
	return false
}

// RemoveAssignments drops every assignment of userID from every room. When
// floatingOnly is set, non-floating assignments are kept.
func (e *Event) RemoveAssignments(userID primitive.ObjectID, floatingOnly bool) {
	for i := range e.SubEvents {
		for j := range e.SubEvents[i].Rooms {
			room := &e.SubEvents[i].Rooms[j]
			kept := room.Assignments[:0]
			for _, a := range room.Assignments {
				if a.User == userID && (!floatingOnly || a.IsFloating) {
					continue
				}
				kept = append(kept, a)
			}
			room.Assignments = kept
		}
	}
}

// RemoveAttendanceRecord drops the attendance record for userID, if any.
func (e *Event) RemoveAttendanceRecord(userID primitive.ObjectID) {
	records := e.Attendance.Records[:0]
	for _, r := range e.Attendance.Records {
		if r.User != userID {
			records = append(records, r)
		}
	}
	e.Attendance.Records = records
}

// SetAttendanceStatus upserts the single per-user attendance record.
func (e *Event) SetAttendanceStatus(userID primitive.ObjectID, status string) {
	for i := range e.Attendance.Records {
		if e.Attendance.Records[i].User == userID {
			e.Attendance.Records[i].Status = status
			return
		}
	}
	e.Attendance.Records = append(e.Attendance.Records, AttendanceRecord{User: userID, Status: status})
}
