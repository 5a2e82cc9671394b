package models

import (
	"github.com/samber/lo"
	"github.com/workdeskapp/workdesk/internal/database"
)

// ToProject converts a stored project to its wire representation.
func ToProject(p *database.Project) Project {
	return Project{
		ID:          p.ID,
		UserID:      p.UserID,
		Title:       p.Title,
		Description: p.Description,
		Data:        p.Data,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProjects converts a stored project slice to its wire representation.
func ToProjects(projects []database.Project) []Project {
	return lo.Map(projects, func(p database.Project, _ int) Project {
		return ToProject(&p)
	})
}

// ToPreference converts the stored preference row to its wire representation.
func ToPreference(p *database.Preference) Preference {
	return Preference{
		Theme:         p.Theme,
		LastProjectID: p.LastProjectID,
		WindowBounds:  p.WindowBounds,
		UpdatedAt:     p.UpdatedAt,
	}
}
