package model

import "strings"

// Address is the minimal billing/shipping address projection the orchestration
// core needs. Full address management lives outside this service.
type Address struct {
	FirstName   string
	LastName    string
	Line1       string
	Line2       string
	City        string
	State       string
	PostalCode  string
	CountryCode string // ISO 3166-1 alpha-2
	Phone       string
}

// HasCountry returns true if the address carries a usable country code.
func (a *Address) HasCountry() bool {
	return a != nil && strings.TrimSpace(a.CountryCode) != ""
}

// FullName joins first and last name, skipping empty parts.
func (a *Address) FullName() string {
	if a == nil {
		return ""
	}
	parts := make([]string, 0, 2)
	if a.FirstName != "" {
		parts = append(parts, a.FirstName)
	}
	if a.LastName != "" {
		parts = append(parts, a.LastName)
	}
	return strings.Join(parts, " ")
}

// Customer identifies the paying customer as far as the gateway needs to know.
type Customer struct {
	Email string
	Name  string
}
