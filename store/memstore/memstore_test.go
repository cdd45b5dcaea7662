package memstore

import (
	"context"
	"testing"

	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/models"
	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser_UniqueKeys(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.CreateUser(ctx, &models.User{Email: "a@x.com", Username: "alice"}))

	err := s.CreateUser(ctx, &models.User{Email: "a@x.com", Username: "bob"})
	assert.ErrorIs(t, err, store.ErrDuplicate, "email collision")

	err = s.CreateUser(ctx, &models.User{Email: "b@x.com", Username: "ALICE"})
	assert.ErrorIs(t, err, store.ErrDuplicate, "username collision is case-insensitive")

	// Accounts without a username never collide on it.
	require.NoError(t, s.CreateUser(ctx, &models.User{Email: "c@x.com"}))
	require.NoError(t, s.CreateUser(ctx, &models.User{Email: "d@x.com"}))
}

func TestGetUserByUsername_CaseInsensitive(t *testing.T) {
	ctx := context.Background()
	s := New()

	u := &models.User{Email: "a@x.com", Username: "Alice"}
	require.NoError(t, s.CreateUser(ctx, u))

	got, err := s.GetUserByUsername(ctx, "aLiCe")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateEvent_VersionConflict(t *testing.T) {
	ctx := context.Background()
	s := New()

	e := &models.Event{EventName: "Fest"}
	require.NoError(t, s.CreateEvent(ctx, e))
	require.EqualValues(t, 1, e.Version)

	first, err := s.GetEvent(ctx, e.ID)
	require.NoError(t, err)
	second, err := s.GetEvent(ctx, e.ID)
	require.NoError(t, err)

	first.EventName = "Fest 2026"
	require.NoError(t, s.UpdateEvent(ctx, first))

	// The second copy still carries the old version and must lose.
	second.Description = "stale edit"
	assert.ErrorIs(t, s.UpdateEvent(ctx, second), store.ErrConflict)

	got, err := s.GetEvent(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fest 2026", got.EventName)
	assert.Empty(t, got.Description)
	assert.EqualValues(t, 2, got.Version)
}

func TestGetEvent_ReturnsIsolatedCopy(t *testing.T) {
	ctx := context.Background()
	s := New()

	e := &models.Event{
		EventName: "Fest",
		SubEvents: []models.SubEvent{{Name: "Day 1", Rooms: []models.Room{{Name: "Hall"}}}},
	}
	require.NoError(t, s.CreateEvent(ctx, e))

	got, err := s.GetEvent(ctx, e.ID)
	require.NoError(t, err)
	got.SubEvents[0].Rooms[0].Name = "mutated"

	fresh, err := s.GetEvent(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hall", fresh.SubEvents[0].Rooms[0].Name)
}

func TestListEvents_StableOrder(t *testing.T) {
	ctx := context.Background()
	s := New()

	for i := 0; i < 10; i++ {
		require.NoError(t, s.CreateEvent(ctx, &models.Event{EventName: "E"}))
	}

	first, err := s.ListEvents(ctx)
	require.NoError(t, err)
	second, err := s.ListEvents(ctx)
	require.NoError(t, err)

	require.Len(t, first, 10)
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestListAnnouncements_NewestFirst(t *testing.T) {
	ctx := context.Background()
	s := New()

	a1 := &models.Announcement{Content: "first"}
	a2 := &models.Announcement{Content: "second"}
	require.NoError(t, s.CreateAnnouncement(ctx, a1))
	require.NoError(t, s.CreateAnnouncement(ctx, a2))

	list, err := s.ListAnnouncements(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Content)
	assert.Equal(t, "first", list[1].Content)
}

func TestSocialLinks(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.UpsertSocialLink(ctx, &models.SocialLink{Platform: "instagram", URL: "https://ig/old"}))
	require.NoError(t, s.UpsertSocialLink(ctx, &models.SocialLink{Platform: "instagram", URL: "https://ig/new"}))
	require.NoError(t, s.UpsertSocialLink(ctx, &models.SocialLink{Platform: "youtube", URL: "https://yt/c"}))

	links, err := s.ListSocialLinks(ctx)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "instagram", links[0].Platform)
	assert.Equal(t, "https://ig/new", links[0].URL)

	require.NoError(t, s.DeleteSocialLink(ctx, "youtube"))
	assert.ErrorIs(t, s.DeleteSocialLink(ctx, "youtube"), store.ErrNotFound)
}
