package domain

import (
	"errors"
	"time"
)

// TestimonialProjectTypes is the fixed allow-list for the testimonial project type.
var TestimonialProjectTypes = []string{
	"web-development",
	"mobile-app",
	"backend-api",
	"cloud-deployment",
	"ai-integration",
	"full-stack",
	"consultation",
	"other",
}

var ErrTestimonialNotFound = errors.New("testimonial not found")

// Testimonial is a client review submitted through the public form.
// Approved and Featured are independent admin-controlled flags; a testimonial
// is invisible to the public listing while Approved is false, regardless of
// Featured.
type Testimonial struct {
	ID          int64     `json:"id" bson:"_id"`
	ClientName  string    `json:"clientName" bson:"client_name"`
	Company     string    `json:"company,omitempty" bson:"company,omitempty"`
	Role        string    `json:"role" bson:"role"`
	ProjectType string    `json:"projectType" bson:"project_type"`
	Rating      int       `json:"rating" bson:"rating"`
	Testimonial string    `json:"testimonial" bson:"testimonial"`
	Approved    bool      `json:"approved" bson:"approved"`
	Featured    bool      `json:"featured" bson:"featured"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}

// TestimonialSummary is the admin dashboard aggregate for testimonials.
// AverageRating covers approved testimonials only.
type TestimonialSummary struct {
	Total         int64          `json:"total"`
	Approved      int64          `json:"approved"`
	Pending       int64          `json:"pending"`
	Featured      int64          `json:"featured"`
	AverageRating float64        `json:"averageRating"`
	Recent        []*Testimonial `json:"recent"`
}
