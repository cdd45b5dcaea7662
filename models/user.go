package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the club-wide role carried in every session token.
type Role string

const (
	RoleGuest        Role = "guest"
	RolePhotographer Role = "photographer"
	RoleLead         Role = "lead"
	RoleAdmin        Role = "admin"
)

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RolePhotographer, RoleLead, RoleAdmin:
		return true
	}
	return false
}

// IsStaff reports whether r carries management rights over events,
// announcements and the member roster.
func (r Role) IsStaff() bool {
	return r == RoleLead || r == RoleAdmin
}

// IsMember reports whether r counts as a club member for "Members Only"
// event visibility.
func (r Role) IsMember() bool {
	return r == RolePhotographer || r == RoleLead || r == RoleAdmin
}

// User is a club account. Email is globally unique; username is unique
// (case-insensitive) among the accounts that have one — only photographers
// are required to pick a username.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName string             `bson:"full_name" json:"fullName"`
	Email    string             `bson:"email" json:"email"`
	// Password holds the bcrypt hash; never serialized to JSON.
	Password string `bson:"password_hash" json:"-"`
	Role     Role   `bson:"role" json:"role"`
	Username string `bson:"username,omitempty" json:"username,omitempty"`
	// UsernameLower backs the case-insensitive unique index. Maintained by
	// the store, never set by callers.
	UsernameLower string `bson:"username_lower,omitempty" json:"-"`
	IsBanned       bool   `bson:"is_banned" json:"isBanned"`
	ProfilePicture string `bson:"profile_picture,omitempty" json:"profilePicture,omitempty"`

	// Photographer / student details.
	EnrollmentNumber string `bson:"enrollment_number,omitempty" json:"enrollmentNumber,omitempty"`
	RollNumber       string `bson:"roll_number,omitempty" json:"rollNumber,omitempty"`
	Year             int    `bson:"year,omitempty" json:"year,omitempty"`
	Department       string `bson:"department,omitempty" json:"department,omitempty"`
	Device           string `bson:"device,omitempty" json:"device,omitempty"`
	Lenses           string `bson:"lenses,omitempty" json:"lenses,omitempty"`

	// Contact & personal info.
	Phone    string `bson:"phone,omitempty" json:"phone,omitempty"`
	Whatsapp string `bson:"whatsapp,omitempty" json:"whatsapp,omitempty"`
	Gender   string `bson:"gender,omitempty" json:"gender,omitempty"`
	City     string `bson:"city,omitempty" json:"city,omitempty"`

	// Guest specific.
	Designation string `bson:"designation,omitempty" json:"designation,omitempty"`
	Institution string `bson:"institution,omitempty" json:"institution,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}
