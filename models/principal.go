package models

import (
	"errors"
	"net/mail"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Principal holds the identity, credential and permission flags of an account.
// It is embedded by entities that can sign in.
type Principal struct {
	Username     string     `gorm:"type:varchar(150);not null;uniqueIndex"`
	PasswordHash string     `gorm:"column:password;type:varchar(128);not null" json:"-"`
	FirstName    string     `gorm:"type:varchar(150);not null"`
	LastName     string     `gorm:"type:varchar(150);not null"`
	Email        string     `gorm:"type:varchar(254);not null"`
	IsActive     bool       `gorm:"not null"`
	IsStaff      bool       `gorm:"not null"`
	IsSuperuser  bool       `gorm:"not null"`
	DateJoined   time.Time  `gorm:"autoCreateTime;not null"`
	LastLogin    *time.Time
}

// SetPassword stores a bcrypt hash of raw.
func (p *Principal) SetPassword(raw string) error {
	if raw == "" {
		return &ValidationError{Field: "password", Message: "is required"}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return &ValidationError{Field: "password", Message: "must be at most 72 bytes"}
		}
		return err
	}
	p.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether raw matches the stored hash.
func (p *Principal) CheckPassword(raw string) bool {
	if p.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(raw)) == nil
}

func (p *Principal) validate() error {
	if err := requireText("username", p.Username, UsernameLength); err != nil {
		return err
	}
	if p.PasswordHash == "" {
		return &ValidationError{Field: "password", Message: "is required"}
	}
	if err := firstError(
		checkLength("password", p.PasswordHash, PasswordHashLength),
		checkLength("first_name", p.FirstName, FirstNameLength),
		checkLength("last_name", p.LastName, LastNameLength),
		checkLength("email", p.Email, EmailLength),
	); err != nil {
		return err
	}
	if p.Email != "" {
		addr, err := mail.ParseAddress(p.Email)
		if err != nil || addr.Address != p.Email {
			return &ValidationError{Field: "email", Message: "is not a valid address"}
		}
	}
	return nil
}
