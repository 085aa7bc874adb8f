package models

import (
	"time"
)

// AccountType defines allowed account types in the system
type AccountType string

const (
	TypeCustomer   AccountType = "customer"
	TypeRestaurant AccountType = "restaurant"
	TypeAdmin      AccountType = "admin"
)

// AccountStatus gates login and public visibility of a user's recipes
type AccountStatus string

const (
	StatusActive    AccountStatus = "active"
	StatusSuspended AccountStatus = "suspended"
)

type User struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	Username      string        `json:"username" gorm:"uniqueIndex;not null"`
	Email         string        `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash  string        `json:"-" gorm:"not null"`
	AccountType   AccountType   `json:"account_type" gorm:"not null;default:'customer'"`
	AccountStatus AccountStatus `json:"account_status" gorm:"not null;default:'active'"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
