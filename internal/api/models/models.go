package models

import (
	"time"

	"github.com/workdeskapp/workdesk/internal/database"
)

// User is the session-derived identity attached to authenticated requests.
type User struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// Project is the wire representation of a project record.
type Project struct {
	ID          uint               `json:"id"`
	UserID      uint               `json:"user_id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Data        database.JSONValue `json:"data"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// Preference is the wire representation of the preference row.
type Preference struct {
	Theme         database.JSONValue `json:"theme"`
	LastProjectID database.JSONValue `json:"last_project_id"`
	WindowBounds  database.JSONValue `json:"window_bounds"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// CreateProjectRequest is the JSON body of a project creation.
type CreateProjectRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Data        database.JSONValue `json:"data"`
}

// UpdateProjectRequest is the JSON body of a partial project update.
// Absent keys keep their stored value.
type UpdateProjectRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Data        database.JSONValue `json:"data"`
}

// UpdatePreferencesRequest is the JSON body of a partial preference update.
// Keys outside the three mutable ones are dropped by the decoder.
type UpdatePreferencesRequest struct {
	Theme         database.JSONValue `json:"theme"`
	LastProjectID database.JSONValue `json:"last_project_id"`
	WindowBounds  database.JSONValue `json:"window_bounds"`
}
