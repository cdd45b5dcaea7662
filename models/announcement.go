package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Announcement is an append-only feed entry posted by a lead or admin.
type Announcement struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Author  primitive.ObjectID `bson:"author" json:"author"`
	Content string             `bson:"content" json:"content"`
	Image   string             `bson:"image,omitempty" json:"image,omitempty"`
	// AuthorName and AuthorPicture are resolved from the User record at read
	// time and never persisted, so renames and new photos are always
	// reflected.
	AuthorName    string    `bson:"-" json:"authorName,omitempty"`
	AuthorPicture string    `bson:"-" json:"authorPicture,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
}

// SocialLink is one of the club's social media profiles, unique per platform.
type SocialLink struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Platform string             `bson:"platform" json:"platform"`
	URL      string             `bson:"url" json:"url"`
}
