package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User is a platform account. Dashboard operators are users with role
// super_admin and a password hash; the rest are employees of a business.
type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `gorm:"index" json:"email"`
	Phone        string    `json:"phone"`
	Role         string    `gorm:"default:'user'" json:"role"`
	BusinessID   string    `gorm:"index" json:"business_id"`
	BranchID     string    `gorm:"index" json:"branch_id"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	District     string    `json:"district"`
	Sector       string    `json:"sector"`
	Cell         string    `json:"cell"`
	Village      string    `json:"village"`
	ProfileImage string    `json:"profile_image"`
	Password     string    `json:"-"`
	TokenVersion int       `gorm:"default:1" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	assignID(&u.ID)
	return nil
}

// FullName joins the name parts; empty when both are missing.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type UpdateUserInput struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Phone     *string `json:"phone" validate:"omitempty,max=20"`
	Role      *string `json:"role" validate:"omitempty,oneof=admin staff user"`
	District  *string `json:"district" validate:"omitempty,max=100"`
	Sector    *string `json:"sector" validate:"omitempty,max=100"`
	Cell      *string `json:"cell" validate:"omitempty,max=100"`
	Village   *string `json:"village" validate:"omitempty,max=100"`
}

type UpdateProfileInput struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Phone     *string `json:"phone" validate:"omitempty,max=20"`
}

type ChangePasswordInput struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}
