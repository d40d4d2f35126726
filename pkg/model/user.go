package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is an account that owns resumes, job postings and coaching sessions.
type User struct {
	ID             string    `gorm:"column:id;primaryKey" json:"id"`
	Email          string    `gorm:"column:email;unique;not null" json:"email"`
	PasswordDigest []byte    `gorm:"column:password_digest;not null" json:"-"`
	FullName       string    `gorm:"column:full_name" json:"full_name"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// SetPassword hashes the plaintext password into PasswordDigest.
func (u *User) SetPassword(plaintext string) error {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordDigest = digest
	return nil
}

// CheckPassword reports whether plaintext matches the stored digest.
func (u *User) CheckPassword(plaintext string) bool {
	return bcrypt.CompareHashAndPassword(u.PasswordDigest, []byte(plaintext)) == nil
}
