// Package memstore is an in-memory store.Store used by the handler tests and
// for running the server without a database during development. It mirrors
// the mongostore semantics, including unique keys and version-checked event
// updates.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/models"
	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store keeps everything in maps guarded by one mutex. Values handed out are
// deep copies so callers can mutate them freely before writing back.
type Store struct {
	mu            sync.Mutex
	users         map[primitive.ObjectID]*models.User
	events        map[primitive.ObjectID]*models.Event
	announcements []*models.Announcement
	socials       map[string]*models.SocialLink
}

var _ store.Store = (*Store)(nil)

// New returns an empty in-memory store.
func New() *Store {
	return &Store{
		users:   make(map[primitive.ObjectID]*models.User),
		events:  make(map[primitive.ObjectID]*models.Event),
		socials: make(map[string]*models.SocialLink),
	}
}

// ---- users ----

func (s *Store) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return store.ErrDuplicate
		}
		if u.Username != "" && strings.EqualFold(existing.Username, u.Username) {
			return store.ErrDuplicate
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.Username != "" {
		u.UsernameLower = strings.ToLower(u.Username)
	}
	u.CreatedAt = time.Now().UTC()
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *Store) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username != "" && strings.EqualFold(u.Username, username) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) ListMembers(_ context.Context) ([]*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var members []*models.User
	for _, u := range s.users {
		if u.Role == models.RolePhotographer || u.Role == models.RoleLead {
			cp := *u
			members = append(members, &cp)
		}
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].CreatedAt.After(members[j].CreatedAt)
	})
	return members, nil
}

func (s *Store) UpdateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return store.ErrNotFound
	}
	u.UpdatedAt = time.Now().UTC()
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *Store) DeleteUser(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

// ---- events ----

func (s *Store) CreateEvent(_ context.Context, e *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	e.Version = 1
	e.CreatedAt = time.Now().UTC()
	s.events[e.ID] = cloneEvent(e)
	return nil
}

func (s *Store) GetEvent(_ context.Context, id primitive.ObjectID) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return cloneEvent(e), nil
}

func (s *Store) ListEvents(_ context.Context) ([]*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := make([]*models.Event, 0, len(s.events))
	for _, e := range s.events {
		events = append(events, cloneEvent(e))
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].CreatedAt.Equal(events[j].CreatedAt) {
			// Stable tiebreak so repeated listings return identical order.
			return events[i].ID.Hex() > events[j].ID.Hex()
		}
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	return events, nil
}

func (s *Store) UpdateEvent(_ context.Context, e *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.events[e.ID]
	if !ok {
		return store.ErrNotFound
	}
	if current.Version != e.Version {
		return store.ErrConflict
	}
	e.Version++
	e.UpdatedAt = time.Now().UTC()
	s.events[e.ID] = cloneEvent(e)
	return nil
}

func (s *Store) DeleteEvent(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.events, id)
	return nil
}

// ---- announcements ----

func (s *Store) CreateAnnouncement(_ context.Context, a *models.Announcement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	a.CreatedAt = time.Now().UTC()
	cp := *a
	s.announcements = append(s.announcements, &cp)
	return nil
}

func (s *Store) ListAnnouncements(_ context.Context) ([]*models.Announcement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]*models.Announcement, 0, len(s.announcements))
	for i := len(s.announcements) - 1; i >= 0; i-- {
		cp := *s.announcements[i]
		list = append(list, &cp)
	}
	return list, nil
}

// ---- social links ----

func (s *Store) UpsertSocialLink(_ context.Context, l *models.SocialLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.socials[l.Platform]; ok {
		existing.URL = l.URL
		return nil
	}
	if l.ID.IsZero() {
		l.ID = primitive.NewObjectID()
	}
	cp := *l
	s.socials[l.Platform] = &cp
	return nil
}

func (s *Store) ListSocialLinks(_ context.Context) ([]*models.SocialLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	links := make([]*models.SocialLink, 0, len(s.socials))
	for _, l := range s.socials {
		cp := *l
		links = append(links, &cp)
	}
	sort.Slice(links, func(i, j int) bool { return links[i].Platform < links[j].Platform })
	return links, nil
}

func (s *Store) DeleteSocialLink(_ context.Context, platform string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.socials[platform]; !ok {
		return store.ErrNotFound
	}
	delete(s.socials, platform)
	return nil
}

// cloneEvent deep-copies the aggregate so stored state and handed-out values
// never share nested slices.
func cloneEvent(e *models.Event) *models.Event {
	cp := *e
	cp.ExternalLinks = append([]models.ExternalLink(nil), e.ExternalLinks...)
	cp.Participants = append([]models.Participant(nil), e.Participants...)
	cp.SubEvents = make([]models.SubEvent, len(e.SubEvents))
	for i, se := range e.SubEvents {
		sub := se
		sub.Rooms = make([]models.Room, len(se.Rooms))
		for j, room := range se.Rooms {
			r := room
			r.Assignments = append([]models.Assignment(nil), room.Assignments...)
			sub.Rooms[j] = r
		}
		cp.SubEvents[i] = sub
	}
	cp.Attendance.Records = append([]models.AttendanceRecord(nil), e.Attendance.Records...)
	return &cp
}
