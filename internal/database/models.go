package database

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// JSONValue stores a raw JSON document in a TEXT column. Documents are
// persisted and returned exactly as the client sent them; the store never
// inspects or validates their shape.
type JSONValue []byte

// Value implements driver.Valuer.
func (j JSONValue) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

// Scan implements sql.Scanner.
func (j *JSONValue) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*j = nil
	case string:
		*j = JSONValue(v)
	case []byte:
		*j = JSONValue(append([]byte(nil), v...))
	default:
		return fmt.Errorf("unsupported type %T for JSONValue", src)
	}
	return nil
}

// MarshalJSON writes the stored document verbatim.
func (j JSONValue) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON captures the raw document without decoding it.
func (j *JSONValue) UnmarshalJSON(b []byte) error {
	*j = append((*j)[0:0], b...)
	return nil
}

// User represents a local account in the database.
// The password is only ever stored as a bcrypt hash.
type User struct {
	ID           uint   `gorm:"primarykey"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Preference   *Preference `gorm:"constraint:OnDelete:CASCADE;"`
	Projects     []Project   `gorm:"constraint:OnDelete:CASCADE;"`
}

// SetPassword hashes the plaintext password and stores the hash on the user.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the plaintext password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Preference holds the UI state for a user. At most one row exists per user;
// it is created lazily on first access. The three client-owned values are
// kept as raw JSON so they round-trip untouched.
type Preference struct {
	ID            uint      `gorm:"primarykey"`
	UserID        uint      `gorm:"uniqueIndex;not null"`
	Theme         JSONValue `gorm:"type:text"`
	LastProjectID JSONValue `gorm:"type:text"`
	WindowBounds  JSONValue `gorm:"type:text"`
	UpdatedAt     time.Time
}

// ThemeString decodes the stored theme for page rendering, falling back to
// "light" when the client stored something that isn't a string.
func (p *Preference) ThemeString() string {
	var s string
	if err := json.Unmarshal(p.Theme, &s); err == nil && s != "" {
		return s
	}
	return "light"
}

// Project is a user-owned record with an opaque JSON payload.
// Every read and mutation is scoped to the owning user.
type Project struct {
	ID          uint   `gorm:"primarykey"`
	UserID      uint   `gorm:"index;not null"`
	Title       string `gorm:"not null"`
	Description string
	Data        JSONValue `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
