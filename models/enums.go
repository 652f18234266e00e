package models

import "strings"

// Role is the closed set of permission levels. ADMIN and SUPER_ADMIN are
// never assignable through the role-update endpoint.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleCSR        Role = "CSR"
	RoleInstructor Role = "INSTRUCTOR"
	RoleStudent    Role = "STUDENT"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleCSR, RoleInstructor, RoleStudent:
		return true
	}
	return false
}

// Assignable reports whether the role may be set via the role-update endpoint.
func (r Role) Assignable() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleCSR:
		return true
	}
	return false
}

// RoleFilter extends Role with the two listing sentinels.
type RoleFilter string

const (
	RoleFilterAll        RoleFilter = "ALL"
	RoleFilterNotStudent RoleFilter = "NOT_STUDENT"
)

func (r RoleFilter) Valid() bool {
	if r == RoleFilterAll || r == RoleFilterNotStudent {
		return true
	}
	return Role(r).Valid()
}

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDING"
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusOnGoing   AppointmentStatus = "ON_GOING"
	StatusCompleted AppointmentStatus = "COMPLETED"
	StatusCancelled AppointmentStatus = "CANCELLED"
	// StatusUpcoming is display-only. It is derived from the appointment date
	// at serialization time and never written to the database.
	StatusUpcoming AppointmentStatus = "UPCOMING"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusOnGoing, StatusCompleted, StatusCancelled, StatusUpcoming:
		return true
	}
	return false
}

type TransactionMethod string

const (
	MethodCash       TransactionMethod = "CASH"
	MethodCreditCard TransactionMethod = "CREDIT_CARD"
	MethodDebitCard  TransactionMethod = "DEBIT_CARD"
	MethodDigital    TransactionMethod = "DIGITAL"
)

func (m TransactionMethod) Valid() bool {
	switch m {
	case MethodCash, MethodCreditCard, MethodDebitCard, MethodDigital:
		return true
	}
	return false
}

// ParseRoleFilter normalizes a query-string role value. Empty means absent.
func ParseRoleFilter(s string) (RoleFilter, bool) {
	if s == "" {
		return "", false
	}
	r := RoleFilter(strings.ToUpper(s))
	return r, r.Valid()
}
