package models

import "time"

// Status is the lifecycle state shared by local and international licenses.
type Status string

const (
	StatusActive   Status = "active"
	StatusDetained Status = "detained"
	StatusExpired  Status = "expired"
	StatusInactive Status = "inactive"
)

// Kind tags the license variant.
type Kind string

const (
	KindLocal         Kind = "local"
	KindInternational Kind = "international"
)

// Variant is the closed set of license kinds. Both variants report a Status
// so eligibility checks treat them symmetrically.
type Variant interface {
	Kind() Kind
	Status(now time.Time) Status
	variant()
}

func (l *License) variant() {}

// MarkVariant lets a license type from another package join the closed set.
// Only the international package embeds it.
type MarkVariant struct{}

func (MarkVariant) variant() {}
