package database

import (
	"context"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// PreferencePatch carries the mutable preference keys present in an update.
// A nil field means the key was absent from the request and keeps its value.
type PreferencePatch struct {
	Theme         JSONValue
	LastProjectID JSONValue
	WindowBounds  JSONValue
}

// GetOrCreatePreference returns the preference row for the user, creating it
// with defaults on first access. There is no separate create operation.
func (d *DB) GetOrCreatePreference(ctx context.Context, userID uint) (*Preference, error) {
	var pref Preference
	err := d.db.WithContext(ctx).Where("user_id = ?", userID).First(&pref).Error
	if err == nil {
		return &pref, nil
	}
	if err != gorm.ErrRecordNotFound {
		log.Error("failed to get preference", "error", err)
		return nil, err
	}

	pref = Preference{
		UserID:        userID,
		Theme:         JSONValue(`"light"`),
		LastProjectID: JSONValue(`null`),
		WindowBounds:  JSONValue(`{}`),
	}
	if err := d.db.WithContext(ctx).Create(&pref).Error; err != nil {
		log.Error("failed to create preference", "error", err)
		return nil, err
	}
	return &pref, nil
}

// UpdatePreference overwrites the keys present in the patch and refreshes
// updated_at. An empty patch still counts as a write.
func (d *DB) UpdatePreference(ctx context.Context, userID uint, patch PreferencePatch) (*Preference, error) {
	pref, err := d.GetOrCreatePreference(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.Theme != nil {
		pref.Theme = patch.Theme
	}
	if patch.LastProjectID != nil {
		pref.LastProjectID = patch.LastProjectID
	}
	if patch.WindowBounds != nil {
		pref.WindowBounds = patch.WindowBounds
	}

	if err := d.db.WithContext(ctx).Save(pref).Error; err != nil {
		log.Error("failed to update preference", "error", err)
		return nil, err
	}
	return pref, nil
}
