package models

import "time"

// Guest represents a customer of the hotel-booking business.
type Guest struct {
	ID             int64     `json:"id" db:"id"`
	FullName       string    `json:"full_name" db:"full_name" binding:"required"`
	PhoneNumber    *string   `json:"phone_number,omitempty" db:"phone_number"`
	Email          *string   `json:"email,omitempty" db:"email"`
	Nationality    *string   `json:"nationality,omitempty" db:"nationality"`
	PassportNumber *string   `json:"passport_number,omitempty" db:"passport_number"`
	Notes          *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
