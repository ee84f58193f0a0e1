package profile

import (
	"time"

	id "lingo/pkg/domain"
	dErrors "lingo/pkg/domain-errors"
)

// Certificate is one certification row on the draft. Rows are added by the
// certificates step and may be abandoned half-filled; the assembler drops
// incomplete rows rather than rejecting the submission.
type Certificate struct {
	ID                id.CertificateID     `json:"id"`
	CertificateTypeID id.CertificateTypeID `json:"certificate_type_id"`
	Number            string               `json:"number"`
	IssuingOrg        string               `json:"issuing_org"`
	IssueDate         *time.Time           `json:"issue_date,omitempty"`
	ExpiryDate        *time.Time           `json:"expiry_date"`
	IssuingRegionID   *id.RegionID         `json:"issuing_region_id,omitempty"`

	// FileName references the uploaded certificate document, when provided.
	FileName string `json:"file_name,omitempty"`
}

// Complete reports whether all four required fields are present. Incomplete
// rows represent abandoned "add certificate" clicks and are silently dropped
// at assembly.
func (c Certificate) Complete() bool {
	return !c.CertificateTypeID.IsNil() &&
		c.Number != "" &&
		c.IssuingOrg != "" &&
		c.ExpiryDate != nil
}

// Validate enforces the certificate date and region invariants. typeCode is
// the resolved code of the certificate's type; now anchors the expiry check.
func (c Certificate) Validate(typeCode id.CertificateCode, now time.Time) error {
	if c.ExpiryDate != nil {
		if c.IssueDate != nil && !c.ExpiryDate.After(*c.IssueDate) {
			return dErrors.New(dErrors.CodeValidation, "expiry date must be after issue date")
		}
		if c.ExpiryDate.Before(now) {
			return dErrors.New(dErrors.CodeValidation, "certificate is expired")
		}
	}
	if id.CourtCertifiedFamily[typeCode] && (c.IssuingRegionID == nil || c.IssuingRegionID.IsNil()) {
		return dErrors.New(dErrors.CodeValidation, "issuing region is required for court certifications")
	}
	return nil
}
