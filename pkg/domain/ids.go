// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"github.com/google/uuid"

	dErrors "lingo/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing a LanguageID where a RegionID is expected.
type (
	InterpreterID     uuid.UUID
	SessionID         uuid.UUID
	LanguageID        uuid.UUID
	ServiceTypeID     uuid.UUID
	CertificateTypeID uuid.UUID
	CertificateID     uuid.UUID
	RegionID          uuid.UUID
)

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParseInterpreterID(s string) (InterpreterID, error) {
	id, err := parseUUID(s, "interpreter ID")
	return InterpreterID(id), err
}

func ParseSessionID(s string) (SessionID, error) {
	id, err := parseUUID(s, "session ID")
	return SessionID(id), err
}

func ParseLanguageID(s string) (LanguageID, error) {
	id, err := parseUUID(s, "language ID")
	return LanguageID(id), err
}

func ParseServiceTypeID(s string) (ServiceTypeID, error) {
	id, err := parseUUID(s, "service type ID")
	return ServiceTypeID(id), err
}

func ParseCertificateTypeID(s string) (CertificateTypeID, error) {
	id, err := parseUUID(s, "certificate type ID")
	return CertificateTypeID(id), err
}

func ParseCertificateID(s string) (CertificateID, error) {
	id, err := parseUUID(s, "certificate ID")
	return CertificateID(id), err
}

func ParseRegionID(s string) (RegionID, error) {
	id, err := parseUUID(s, "region ID")
	return RegionID(id), err
}

// String methods - for logging and debugging.

func (id InterpreterID) String() string     { return uuid.UUID(id).String() }
func (id SessionID) String() string         { return uuid.UUID(id).String() }
func (id LanguageID) String() string        { return uuid.UUID(id).String() }
func (id ServiceTypeID) String() string     { return uuid.UUID(id).String() }
func (id CertificateTypeID) String() string { return uuid.UUID(id).String() }
func (id CertificateID) String() string     { return uuid.UUID(id).String() }
func (id RegionID) String() string          { return uuid.UUID(id).String() }

// IsNil checks - used for service-layer validation.

func (id InterpreterID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id SessionID) IsNil() bool         { return uuid.UUID(id) == uuid.Nil }
func (id LanguageID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id ServiceTypeID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id CertificateTypeID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id CertificateID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id RegionID) IsNil() bool          { return uuid.UUID(id) == uuid.Nil }

// Text marshaling - typed IDs cross JSON boundaries in reference data,
// step payloads, and language override map keys.

func (id InterpreterID) MarshalText() ([]byte, error)     { return uuid.UUID(id).MarshalText() }
func (id SessionID) MarshalText() ([]byte, error)         { return uuid.UUID(id).MarshalText() }
func (id LanguageID) MarshalText() ([]byte, error)        { return uuid.UUID(id).MarshalText() }
func (id ServiceTypeID) MarshalText() ([]byte, error)     { return uuid.UUID(id).MarshalText() }
func (id CertificateTypeID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id CertificateID) MarshalText() ([]byte, error)     { return uuid.UUID(id).MarshalText() }
func (id RegionID) MarshalText() ([]byte, error)          { return uuid.UUID(id).MarshalText() }

func (id *InterpreterID) UnmarshalText(b []byte) error { return unmarshalUUID((*uuid.UUID)(id), b) }
func (id *SessionID) UnmarshalText(b []byte) error     { return unmarshalUUID((*uuid.UUID)(id), b) }
func (id *LanguageID) UnmarshalText(b []byte) error    { return unmarshalUUID((*uuid.UUID)(id), b) }
func (id *ServiceTypeID) UnmarshalText(b []byte) error { return unmarshalUUID((*uuid.UUID)(id), b) }
func (id *CertificateTypeID) UnmarshalText(b []byte) error {
	return unmarshalUUID((*uuid.UUID)(id), b)
}
func (id *CertificateID) UnmarshalText(b []byte) error { return unmarshalUUID((*uuid.UUID)(id), b) }
func (id *RegionID) UnmarshalText(b []byte) error      { return unmarshalUUID((*uuid.UUID)(id), b) }

func unmarshalUUID(target *uuid.UUID, b []byte) error {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return err
	}
	*target = u
	return nil
}

func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	return id, nil
}
