// Package store defines the persistence interface the handlers depend on.
//
// Concrete implementations live in subpackages (mongostore, memstore) and
// translate engine errors into the domain errors declared here, so handler
// code never inspects driver error types.
package store

import (
	"context"
	"errors"

	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound — the referenced entity does not exist.
	ErrNotFound = errors.New("entity not found")
	// ErrDuplicate — a unique constraint (email, username, platform) was hit.
	ErrDuplicate = errors.New("entity already exists")
	// ErrConflict — a version-checked update lost a concurrent race; reload
	// and retry.
	ErrConflict = errors.New("concurrent modification detected")
)

// Store is the persistence surface of the application.
type Store interface {
	// Users. CreateUser fails with ErrDuplicate when the email or the
	// (case-insensitive) username is taken. GetUserByUsername matches
	// case-insensitively.
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// ListMembers returns photographer and lead accounts, newest first.
	ListMembers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id primitive.ObjectID) error

	// Events. UpdateEvent performs a version-checked write and fails with
	// ErrConflict when the stored document moved on since the read.
	CreateEvent(ctx context.Context, e *models.Event) error
	GetEvent(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
	// ListEvents returns all events newest-created-first; visibility
	// filtering happens in the caller.
	ListEvents(ctx context.Context) ([]*models.Event, error)
	UpdateEvent(ctx context.Context, e *models.Event) error
	DeleteEvent(ctx context.Context, id primitive.ObjectID) error

	// Announcements, newest first.
	CreateAnnouncement(ctx context.Context, a *models.Announcement) error
	ListAnnouncements(ctx context.Context) ([]*models.Announcement, error)

	// Social links, unique per platform.
	UpsertSocialLink(ctx context.Context, l *models.SocialLink) error
	ListSocialLinks(ctx context.Context) ([]*models.SocialLink, error)
	DeleteSocialLink(ctx context.Context, platform string) error
}
