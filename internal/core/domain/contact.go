package domain

import (
	"errors"
	"time"
)

// ContactStatus is the admin-controlled moderation state of a contact message.
type ContactStatus string

const (
	ContactUnread  ContactStatus = "unread"
	ContactRead    ContactStatus = "read"
	ContactReplied ContactStatus = "replied"
)

// Valid reports whether s is one of the three recognised statuses.
// Any valid status may replace any other; only values outside the set are rejected.
func (s ContactStatus) Valid() bool {
	switch s {
	case ContactUnread, ContactRead, ContactReplied:
		return true
	}
	return false
}

// ContactPurposes is the fixed allow-list for the contact form purpose field.
var ContactPurposes = []string{
	"web-development",
	"mobile-app-development",
	"backend-development",
	"cloud-deployment",
	"ai-integration",
	"database-design",
	"full-stack-project",
	"consultation",
	"code-review",
	"maintenance",
	"other",
}

var ErrContactNotFound = errors.New("contact not found")
var ErrInvalidStatus = errors.New("invalid contact status")

// Contact is a message submitted through the public contact form.
// It is created only by the intake pipeline and mutated only by moderation.
type Contact struct {
	ID        int64         `json:"id" bson:"_id"`
	FirstName string        `json:"firstName" bson:"first_name"`
	LastName  string        `json:"lastName" bson:"last_name"`
	Email     string        `json:"email" bson:"email"`
	Purpose   string        `json:"purpose" bson:"purpose"`
	Message   string        `json:"message" bson:"message"`
	Status    ContactStatus `json:"status" bson:"status"`
	CreatedAt time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updated_at"`
}

// ContactSummary is the admin dashboard aggregate for contact messages.
type ContactSummary struct {
	Total   int64      `json:"total"`
	Unread  int64      `json:"unread"`
	Read    int64      `json:"read"`
	Replied int64      `json:"replied"`
	Recent  []*Contact `json:"recent"`
}
