package models

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	// MaxAboutMeLength is the maximum number of characters in a user's bio.
	MaxAboutMeLength = 140

	gravatarBaseURL    = "http://www.gravatar.com/avatar/"
	gravatarDefaultURL = "http://en.gravatar.com/avatar/"
)

// User is an account created at first login through the identity provider.
// Recipes and PantryItems reference it through their user_id column.
type User struct {
	ID       uint       `json:"id" gorm:"primaryKey"`
	Nickname string     `json:"nickname" gorm:"size:64;uniqueIndex;not null"`
	Email    string     `json:"email" gorm:"size:64;uniqueIndex;not null"`
	AboutMe  string     `json:"about_me" gorm:"size:140"`
	LastSeen *time.Time `json:"last_seen"`
}

// TableName keeps the original "user" table name.
func (User) TableName() string {
	return "user"
}

// Avatar returns the gravatar URL for the user's email at the given size.
func (u *User) Avatar(size int) string {
	sum := md5.Sum([]byte(strings.ToLower(u.Email)))
	params := url.Values{}
	params.Set("d", gravatarDefaultURL)
	params.Set("s", strconv.Itoa(size))
	return gravatarBaseURL + hex.EncodeToString(sum[:]) + "?" + params.Encode()
}

// UserCompact is the public view of a user embedded in other responses.
type UserCompact struct {
	ID       uint   `json:"id"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}

// ToCompact converts a User to its compact representation.
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:       u.ID,
		Nickname: u.Nickname,
		Avatar:   u.Avatar(48),
	}
}

// LoginRequest carries the identity provider's ID token.
type LoginRequest struct {
	IDToken    string `json:"id_token" validate:"required"`
	RememberMe bool   `json:"remember_me"`
}

// EditProfileRequest defines the request body for updating the own profile.
type EditProfileRequest struct {
	Nickname string `json:"nickname" validate:"required,min=1,max=64"`
	AboutMe  string `json:"about_me" validate:"max=140"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Nickname string `json:"nickname"`
	jwt.RegisteredClaims
}
