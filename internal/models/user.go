package models

import (
	"time"
)

// User is an identity record. Contacts are users with IsContact set and no
// credentials.
type User struct {
	BaseModel
	Email                 *string    `gorm:"uniqueIndex" json:"email"`
	PasswordHash          string     `json:"-"`
	Fullname              string     `json:"fullname"`
	BornOn                *time.Time `gorm:"type:date" json:"born_on"`
	AvatarURL             string     `json:"avatar_url"`
	Company               string     `json:"company"`
	Designation           string     `json:"designation"`
	Phone                 *string    `gorm:"index" json:"phone"`
	PhoneVerified         bool       `json:"phone_verified"`
	PhoneVerificationCode *string    `json:"-"`
	StartupID             *uint      `gorm:"index" json:"startup_id"`
	PendingStartupID      *uint      `gorm:"index" json:"pending_startup_id"`
	IsContact             bool       `json:"is_contact"`
	AuthToken             *string    `gorm:"uniqueIndex" json:"-"`
	InvitationToken       *string    `gorm:"uniqueIndex" json:"-"`
}

// HasPassword reports whether the user can log in with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// StringPtr returns a pointer to s, or nil for the empty string.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue dereferences p, returning "" for nil.
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
