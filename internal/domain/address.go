package domain

import (
	"regexp"
	"time"
)

// indianMobilePattern matches ten digits starting with 6-9.
var indianMobilePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

// emailPattern is a deliberately loose shape check: something@something.tld.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// IsValidIndianMobile reports whether s is a valid Indian mobile number.
func IsValidIndianMobile(s string) bool {
	return indianMobilePattern.MatchString(s)
}

// IsPlausibleEmail reports whether s looks like an email address.
func IsPlausibleEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Address represents a shipping address in the user's address book.
type Address struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Street    string    `json:"street"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	ZipCode   string    `json:"zip_code"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"created_at"`
}
