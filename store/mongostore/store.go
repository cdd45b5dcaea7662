// Package mongostore implements store.Store on MongoDB.
//
// Collection names and indexes are managed in one place (ensureIndexes).
// Nested event arrays are written back as whole documents guarded by a
// version filter, so two leads editing the same event cannot lose updates.
package mongostore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/models"
	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	colUsers         = "users"
	colEvents        = "events"
	colAnnouncements = "announcements"
	colSocials       = "social_media"
)

// Store implements store.Store on a Mongo database.
type Store struct {
	db *mongo.Database
}

var _ store.Store = (*Store)(nil)

// New wraps an already-connected database and creates the unique indexes.
func New(ctx context.Context, db *mongo.Database) (*Store, error) {
	s := &Store{db: db}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) col(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	sparseUnique := options.Index().SetUnique(true).SetSparse(true)

	_, err := s.col(colUsers).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "username_lower", Value: 1}}, Options: sparseUnique},
	})
	if err != nil {
		return err
	}
	_, err = s.col(colSocials).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "platform", Value: 1}}, Options: unique,
	})
	return err
}

// mapErr converts driver errors to the store's domain errors.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return store.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return store.ErrDuplicate
	default:
		return err
	}
}

// ---- users ----

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.Username != "" {
		u.UsernameLower = strings.ToLower(u.Username)
	}
	u.CreatedAt = time.Now().UTC()
	_, err := s.col(colUsers).InsertOne(ctx, u)
	return mapErr(err)
}

func (s *Store) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findUser(ctx, bson.M{"_id": id})
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"email": email})
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"username_lower": strings.ToLower(username)})
}

func (s *Store) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	if err := s.col(colUsers).FindOne(ctx, filter).Decode(&u); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (s *Store) ListMembers(ctx context.Context) ([]*models.User, error) {
	filter := bson.M{"role": bson.M{"$in": []models.Role{models.RolePhotographer, models.RoleLead}}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.col(colUsers).Find(ctx, filter, opts)
	if err != nil {
		return nil, mapErr(err)
	}
	defer cursor.Close(ctx)

	var users []*models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	u.UpdatedAt = time.Now().UTC()
	res, err := s.col(colUsers).ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col(colUsers).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapErr(err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ---- events ----

func (s *Store) CreateEvent(ctx context.Context, e *models.Event) error {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	e.Version = 1
	e.CreatedAt = time.Now().UTC()
	_, err := s.col(colEvents).InsertOne(ctx, e)
	return mapErr(err)
}

func (s *Store) GetEvent(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var e models.Event
	if err := s.col(colEvents).FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return nil, mapErr(err)
	}
	return &e, nil
}

func (s *Store) ListEvents(ctx context.Context) ([]*models.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.col(colEvents).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, mapErr(err)
	}
	defer cursor.Close(ctx)

	var events []*models.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// UpdateEvent replaces the document only if nobody bumped the version since
// it was read. On a lost race the caller reloads and reapplies its change.
func (s *Store) UpdateEvent(ctx context.Context, e *models.Event) error {
	readVersion := e.Version
	e.Version++
	e.UpdatedAt = time.Now().UTC()

	res, err := s.col(colEvents).ReplaceOne(ctx,
		bson.M{"_id": e.ID, "version": readVersion}, e)
	if err != nil {
		e.Version = readVersion
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		e.Version = readVersion
		// Distinguish a missing event from a version race.
		n, cerr := s.col(colEvents).CountDocuments(ctx, bson.M{"_id": e.ID})
		if cerr == nil && n == 0 {
			return store.ErrNotFound
		}
		return store.ErrConflict
	}
	return nil
}

func (s *Store) DeleteEvent(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col(colEvents).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapErr(err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ---- announcements ----

func (s *Store) CreateAnnouncement(ctx context.Context, a *models.Announcement) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	a.CreatedAt = time.Now().UTC()
	_, err := s.col(colAnnouncements).InsertOne(ctx, a)
	return mapErr(err)
}

func (s *Store) ListAnnouncements(ctx context.Context) ([]*models.Announcement, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.col(colAnnouncements).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, mapErr(err)
	}
	defer cursor.Close(ctx)

	var list []*models.Announcement
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ---- social links ----

func (s *Store) UpsertSocialLink(ctx context.Context, l *models.SocialLink) error {
	update := bson.M{"$set": bson.M{"url": l.URL}}
	opts := options.Update().SetUpsert(true)
	_, err := s.col(colSocials).UpdateOne(ctx, bson.M{"platform": l.Platform}, update, opts)
	return mapErr(err)
}

func (s *Store) ListSocialLinks(ctx context.Context) ([]*models.SocialLink, error) {
	cursor, err := s.col(colSocials).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "platform", Value: 1}}))
	if err != nil {
		return nil, mapErr(err)
	}
	defer cursor.Close(ctx)

	var links []*models.SocialLink
	if err := cursor.All(ctx, &links); err != nil {
		return nil, err
	}
	return links, nil
}

func (s *Store) DeleteSocialLink(ctx context.Context, platform string) error {
	res, err := s.col(colSocials).DeleteOne(ctx, bson.M{"platform": platform})
	if err != nil {
		return mapErr(err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
