package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Role represents a staff account role
type Role string

const (
	RoleAdmin Role = "admin"
	RoleTata  Role = "tata"
)

// Roles lists every valid role
var Roles = []Role{RoleAdmin, RoleTata}

// Class is the group a child is enrolled in
type Class string

const (
	ClassTousPetits Class = "Tous-Petits"
	ClassGarderie   Class = "Garderie"
	ClassCreche     Class = "Crèche"
	ClassMaternelle Class = "Maternelle"
)

// Classes lists every valid class
var Classes = []Class{ClassTousPetits, ClassGarderie, ClassCreche, ClassMaternelle}

// PaymentMode is the billing cadence of a child, mirrored by Payment.Type
type PaymentMode string

const (
	PaymentModeDaily     PaymentMode = "Journalier"
	PaymentModeMonthly   PaymentMode = "Mensuel"
	PaymentModeQuarterly PaymentMode = "Trimestriel"
)

// PaymentModes lists every valid payment mode
var PaymentModes = []PaymentMode{PaymentModeDaily, PaymentModeMonthly, PaymentModeQuarterly}

// RequiresPeriod reports whether payments of this mode must carry a period label
func (m PaymentMode) RequiresPeriod() bool {
	return m != PaymentModeDaily
}

// PaymentMethod is how a payment was settled
type PaymentMethod string

const (
	PaymentMethodCash        PaymentMethod = "Espèce"
	PaymentMethodTransfer    PaymentMethod = "Virement"
	PaymentMethodMobileMoney PaymentMethod = "Mobile Money"
)

// PaymentMethods lists every valid payment method
var PaymentMethods = []PaymentMethod{PaymentMethodCash, PaymentMethodTransfer, PaymentMethodMobileMoney}

// PaymentStatus is the settlement state of a payment
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "Payé"
	PaymentStatusPending PaymentStatus = "En attente"
	PaymentStatusLate    PaymentStatus = "En retard"
)

// PaymentStatuses lists every valid payment status
var PaymentStatuses = []PaymentStatus{PaymentStatusPaid, PaymentStatusPending, PaymentStatusLate}

// AttendanceStatus is the presence state of an attendance record
type AttendanceStatus string

const (
	AttendanceStatusPresent    AttendanceStatus = "Présent"
	AttendanceStatusCheckedOut AttendanceStatus = "Parti"
)

// IsValidRole checks a role value
func IsValidRole(v string) bool {
	for _, r := range Roles {
		if string(r) == v {
			return true
		}
	}
	return false
}

// IsValidClass checks a class value
func IsValidClass(v string) bool {
	for _, c := range Classes {
		if string(c) == v {
			return true
		}
	}
	return false
}

// IsValidPaymentMode checks a payment mode value
func IsValidPaymentMode(v string) bool {
	for _, m := range PaymentModes {
		if string(m) == v {
			return true
		}
	}
	return false
}

// IsValidPaymentMethod checks a payment method value
func IsValidPaymentMethod(v string) bool {
	for _, m := range PaymentMethods {
		if string(m) == v {
			return true
		}
	}
	return false
}

// IsValidPaymentStatus checks a payment status value
func IsValidPaymentStatus(v string) bool {
	for _, s := range PaymentStatuses {
		if string(s) == v {
			return true
		}
	}
	return false
}

// ParsePeriod parses a billing period label.
// Accepted forms are "2024-05" (month) and "2024-Q2" (quarter); the returned
// time is the first day of the period in loc.
func ParsePeriod(label string, loc *time.Location) (time.Time, error) {
	label = strings.TrimSpace(label)
	if year, quarter, ok := strings.Cut(label, "-Q"); ok {
		y, err := strconv.Atoi(year)
		if err != nil || len(year) != 4 {
			return time.Time{}, fmt.Errorf("invalid period %q", label)
		}
		q, err := strconv.Atoi(quarter)
		if err != nil || q < 1 || q > 4 {
			return time.Time{}, fmt.Errorf("invalid period %q", label)
		}
		return time.Date(y, time.Month((q-1)*3+1), 1, 0, 0, 0, 0, loc), nil
	}

	t, err := time.ParseInLocation("2006-01", label, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid period %q", label)
	}
	return t, nil
}
