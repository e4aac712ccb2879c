package models

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type Role string

const (
	RoleWorshiper Role = "worshiper"
	RoleLeader    Role = "leader"
)

func (r Role) Valid() bool {
	return r == RoleWorshiper || r == RoleLeader
}

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Password     string    `json:"-" gorm:"not null"` // bcrypt hash
	Name         string    `json:"name" gorm:"size:100;not null"`
	Role         Role      `json:"role" gorm:"size:20;index;not null"`
	Faith        *string   `json:"faith" gorm:"size:100"`
	Bio          *string   `json:"bio" gorm:"type:text"`
	ProfilePhoto *string   `json:"profile_photo" gorm:"size:500"`
	FirebaseUID  *string   `json:"-" gorm:"size:128;uniqueIndex"`
	IsActive     bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserCompact is the public slice of a user embedded in other payloads.
type UserCompact struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	ProfilePhoto *string `json:"profile_photo"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Name: u.Name, ProfilePhoto: u.ProfilePhoto}
}

func (u *User) IsLeader() bool    { return u.Role == RoleLeader }
func (u *User) IsWorshiper() bool { return u.Role == RoleWorshiper }

type SignupRequest struct {
	Email        string  `json:"email" validate:"required,email,max=255"`
	Password     string  `json:"password" validate:"required,min=8,max=128"`
	Name         string  `json:"name" validate:"required,min=1,max=100"`
	Role         Role    `json:"role" validate:"required,oneof=worshiper leader"`
	Faith        *string `json:"faith" validate:"omitempty,max=100"`
	Bio          *string `json:"bio" validate:"omitempty,max=500"`
	ProfilePhoto *string `json:"profile_photo" validate:"omitempty,max=500"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest only carries the editable profile fields; email,
// name and role are fixed after signup.
type UpdateProfileRequest struct {
	Faith        *string `json:"faith" validate:"omitempty,max=100"`
	Bio          *string `json:"bio" validate:"omitempty,max=500"`
	ProfilePhoto *string `json:"profile_photo" validate:"omitempty,max=500"`
}

type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      uint   `json:"user_id"`
	Role        Role   `json:"role"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims.
// The subject holds the user id.
type JwtCustomClaims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

func (c *JwtCustomClaims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// LeaderProfile is a leader as seen by a worshiper browsing the directory.
type LeaderProfile struct {
	LeaderID       uint    `json:"leader_id"`
	Name           string  `json:"name"`
	Faith          *string `json:"faith"`
	ProfilePhoto   *string `json:"profile_photo"`
	Bio            *string `json:"bio"`
	IsFollowing    bool    `json:"is_following"`
	FollowersCount int64   `json:"followers_count"`
	PostsCount     int64   `json:"posts_count"`
}
