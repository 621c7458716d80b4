package models

import (
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Login providers known to the auth-service.
const (
	ProviderGoogle = "google"
	ProviderGitHub = "github"
)

// User is the canonical account record. At most one row exists per
// (email, provider) pair.
type User struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"not null" json:"name"`
	Email      string `gorm:"not null;uniqueIndex:idx_email_provider,priority:1" json:"email"`
	Nickname   string `json:"nickname"`
	Provider   string `gorm:"not null;uniqueIndex:idx_email_provider,priority:2" json:"provider"`
	ProviderID string `gorm:"index" json:"providerId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeSave fills the nickname from the name when it was left blank.
func (u *User) BeforeSave(*gorm.DB) error {
	u.ApplyDefaults()
	return nil
}

// ApplyDefaults normalizes the record before it is persisted or compared.
func (u *User) ApplyDefaults() {
	u.Email = strings.TrimSpace(u.Email)
	u.Provider = strings.TrimSpace(u.Provider)
	if strings.TrimSpace(u.Nickname) == "" {
		u.Nickname = u.Name
	}
}

// SubjectID is the string form of the ID used as the JWT subject and the
// token store key.
func (u *User) SubjectID() string {
	return strconv.FormatUint(uint64(u.ID), 10)
}
