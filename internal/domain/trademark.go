// Package domain contains the core data types for the trademark registry.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (parser, repo, service, handler, loader).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trademark is the unit of record: a registered word mark with its
// provenance fields from the source application.
//
// Instances are value objects. They are created once (by the register
// workflow or the bulk loader), never mutated afterwards, and safe to pass
// between goroutines by copy.
type Trademark struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"` // never empty; the de-facto natural key

	// Provenance fields from the source application. All optional: records
	// loaded from application XML may lack any of them except the
	// registration date, which the loader requires before inserting.
	Description       *string    `json:"description,omitempty"`
	ApplicationNumber *string    `json:"application_number,omitempty"`
	ApplicationDate   *time.Time `json:"application_date,omitempty"`
	RegistrationDate  *time.Time `json:"registration_date,omitempty"`
	ExpiryDate        *time.Time `json:"expiry_date,omitempty"`
}

// NewTrademark builds a Trademark with a freshly generated ID.
// The ID is assigned here, at creation time, and is immutable thereafter.
func NewTrademark(
	title string,
	description *string,
	applicationNumber *string,
	applicationDate *time.Time,
	registrationDate *time.Time,
	expiryDate *time.Time,
) Trademark {
	return Trademark{
		ID:                uuid.New(),
		Title:             title,
		Description:       description,
		ApplicationNumber: applicationNumber,
		ApplicationDate:   applicationDate,
		RegistrationDate:  registrationDate,
		ExpiryDate:        expiryDate,
	}
}
