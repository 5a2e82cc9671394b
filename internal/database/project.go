package database

import (
	"context"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// ProjectPatch carries the mutable project fields present in an update.
// A nil field means the key was absent from the request and keeps its value.
// Updates deliberately don't re-validate the title; only creation does.
type ProjectPatch struct {
	Title       *string
	Description *string
	Data        JSONValue
}

// ListProjects returns all projects owned by the user, most recently
// touched first. The id tiebreak keeps rows written within clock
// resolution in a stable newest-first order.
func (d *DB) ListProjects(ctx context.Context, userID uint) ([]Project, error) {
	var projects []Project
	if err := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC, id DESC").
		Find(&projects).Error; err != nil {
		log.Error("failed to list projects", "error", err)
		return nil, err
	}
	return projects, nil
}

// CreateProject creates a project for the user. The caller is responsible
// for the non-empty title rule; description and data default to empty.
func (d *DB) CreateProject(ctx context.Context, userID uint, title, description string, data JSONValue) (*Project, error) {
	if data == nil {
		data = JSONValue(`{}`)
	}
	project := Project{
		UserID:      userID,
		Title:       title,
		Description: description,
		Data:        data,
	}
	if err := d.db.WithContext(ctx).Create(&project).Error; err != nil {
		log.Error("failed to create project", "error", err)
		return nil, err
	}
	return &project, nil
}

// GetProject returns the project only if it is owned by the user.
// A wrong owner is indistinguishable from a nonexistent id.
func (d *DB) GetProject(ctx context.Context, userID, id uint) (*Project, error) {
	var project Project
	if err := d.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&project).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get project", "error", err)
		}
		return nil, err
	}
	return &project, nil
}

// UpdateProject overwrites the fields present in the patch and refreshes
// updated_at, subject to the same ownership scoping as GetProject.
func (d *DB) UpdateProject(ctx context.Context, userID, id uint, patch ProjectPatch) (*Project, error) {
	project, err := d.GetProject(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		project.Title = *patch.Title
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}
	if patch.Data != nil {
		project.Data = patch.Data
	}

	if err := d.db.WithContext(ctx).Save(project).Error; err != nil {
		log.Error("failed to update project", "error", err)
		return nil, err
	}
	return project, nil
}

// DeleteProject permanently removes the project, subject to ownership
// scoping. Deleting a missing or foreign project reports not found.
func (d *DB) DeleteProject(ctx context.Context, userID, id uint) error {
	res := d.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Project{})
	if res.Error != nil {
		log.Error("failed to delete project", "error", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
