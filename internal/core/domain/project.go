package domain

import (
	"errors"
	"time"
)

var ErrProjectNotFound = errors.New("project not found")

// Project is a portfolio entry managed by the admin and listed publicly while
// Visible is true. Features, TechStack and Technologies are stored as native
// structured fields, not serialized text.
type Project struct {
	ID           int64               `json:"id" bson:"_id"`
	Title        string              `json:"title" bson:"title"`
	Subtitle     string              `json:"subtitle" bson:"subtitle"`
	Description  string              `json:"description" bson:"description"`
	Features     []string            `json:"features" bson:"features"`
	TechStack    map[string][]string `json:"techStack" bson:"tech_stack"`
	Technologies []string            `json:"technologies" bson:"technologies"`
	ImageURL     string              `json:"imageUrl,omitempty" bson:"image_url,omitempty"`
	LiveURL      string              `json:"liveUrl,omitempty" bson:"live_url,omitempty"`
	GitHubURL    string              `json:"githubUrl,omitempty" bson:"github_url,omitempty"`
	Visible      bool                `json:"visible" bson:"visible"`
	Featured     bool                `json:"featured" bson:"featured"`
	Order        int                 `json:"order" bson:"order"`
	CreatedAt    time.Time           `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time           `json:"updatedAt" bson:"updated_at"`
}

// ProjectSummary is the admin dashboard aggregate for projects.
type ProjectSummary struct {
	Total    int64      `json:"total"`
	Visible  int64      `json:"visible"`
	Featured int64      `json:"featured"`
	Hidden   int64      `json:"hidden"`
	Recent   []*Project `json:"recent"`
}
