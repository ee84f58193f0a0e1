// Package profile defines the draft aggregate accumulated by the wizard.
// The draft is owned exclusively by the active session: created at session
// start, mutated by one step at a time, discarded on submit or abandonment.
package profile

import (
	"fmt"

	id "lingo/pkg/domain"
	dErrors "lingo/pkg/domain-errors"
	"lingo/internal/rates"
)

type PersonalInfo struct {
	FirstName string `json:"first_name" validate:"required,notblank,max=100"`
	LastName  string `json:"last_name" validate:"required,notblank,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,notblank,max=30"`
}

// Address carries the validated street address plus the geocode fields
// returned by the external resolution capability.
type Address struct {
	Line1      string `json:"line1" validate:"required,notblank"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city" validate:"required,notblank"`
	RegionCode string `json:"region_code" validate:"required,notblank"`
	PostalCode string `json:"postal_code" validate:"required,uszip"`

	Formatted string  `json:"formatted,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// W9EntryMethod distinguishes an uploaded W-9 form from manually keyed data.
type W9EntryMethod string

const (
	W9Upload W9EntryMethod = "upload"
	W9Manual W9EntryMethod = "manual"
)

// W9Data holds manually entered tax form fields. SSN and EIN are mutually
// optional but at least one must be present for a manual entry.
type W9Data struct {
	LegalName      string `json:"legal_name" validate:"required,notblank"`
	BusinessName   string `json:"business_name,omitempty"`
	Classification string `json:"classification" validate:"required,notblank"`
	SSN            string `json:"ssn,omitempty" validate:"omitempty,ssn"`
	EIN            string `json:"ein,omitempty" validate:"omitempty,ein"`
	Street         string `json:"street" validate:"required,notblank"`
	City           string `json:"city" validate:"required,notblank"`
	State          string `json:"state" validate:"required,notblank"`
	Zip            string `json:"zip" validate:"required,uszip"`
}

type TaxForm struct {
	EntryMethod W9EntryMethod `json:"entry_method"`
	Data        *W9Data       `json:"data,omitempty"`
	FileName    string        `json:"file_name,omitempty"`
}

// ServiceSelection pairs a selected service type with its resolved rate and
// any per-language overrides.
type ServiceSelection struct {
	ServiceTypeID     id.ServiceTypeID                     `json:"service_type_id"`
	RateType          id.RateType                          `json:"rate_type"`
	Rate              rates.RateSpec                       `json:"rate"`
	LanguageOverrides map[id.LanguageID]rates.LanguageRate `json:"language_overrides,omitempty"`
}

// Draft is the full mutable profile being assembled by the wizard.
type Draft struct {
	Personal  PersonalInfo
	Address   Address
	Languages []id.LanguageID

	IsCertified  *bool
	Certificates []Certificate

	ServiceSelections map[id.ServiceTypeID]*ServiceSelection

	TaxForm TaxForm

	AgreementAccepted bool
	PrivacyAccepted   bool
}

func NewDraft() *Draft {
	return &Draft{
		ServiceSelections: make(map[id.ServiceTypeID]*ServiceSelection),
	}
}

// HasLanguage reports whether the language is on the draft's list.
func (d *Draft) HasLanguage(lid id.LanguageID) bool {
	for _, l := range d.Languages {
		if l == lid {
			return true
		}
	}
	return false
}

// SetLanguages replaces the language list. Overrides scoped to removed
// languages are pruned so the selection invariant holds.
func (d *Draft) SetLanguages(langs []id.LanguageID) {
	d.Languages = langs
	for _, sel := range d.ServiceSelections {
		for lid := range sel.LanguageOverrides {
			if !d.HasLanguage(lid) {
				delete(sel.LanguageOverrides, lid)
			}
		}
	}
}

// PutSelection stores a selection, replacing any prior one for the same
// service type. Re-applying an identical selection is a no-op, not an
// accumulation.
func (d *Draft) PutSelection(sel *ServiceSelection) {
	if d.ServiceSelections == nil {
		d.ServiceSelections = make(map[id.ServiceTypeID]*ServiceSelection)
	}
	d.ServiceSelections[sel.ServiceTypeID] = sel
}

// RemoveSelection drops a service type from the draft.
func (d *Draft) RemoveSelection(sid id.ServiceTypeID) {
	delete(d.ServiceSelections, sid)
}

// SetLanguageOverride stores a per-language rate refinement on an existing
// selection. The language must be on the draft and the override must pass
// bounds validation; neither check mutates the draft on failure.
func (d *Draft) SetLanguageOverride(sid id.ServiceTypeID, lid id.LanguageID, lr rates.LanguageRate) error {
	sel, ok := d.ServiceSelections[sid]
	if !ok {
		return dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("service type %s is not selected", sid))
	}
	if !d.HasLanguage(lid) {
		return dErrors.New(dErrors.CodeInvariantViolation, "language override must reference a draft language")
	}
	if err := rates.ValidateLanguageRate(lr); err != nil {
		return err
	}
	if sel.LanguageOverrides == nil {
		sel.LanguageOverrides = make(map[id.LanguageID]rates.LanguageRate)
	}
	sel.LanguageOverrides[lid] = lr
	return nil
}

// SelectedServiceTypes returns the selected service type IDs. Order is not
// specified; the assembler sorts for a stable wire payload.
func (d *Draft) SelectedServiceTypes() []id.ServiceTypeID {
	out := make([]id.ServiceTypeID, 0, len(d.ServiceSelections))
	for sid := range d.ServiceSelections {
		out = append(out, sid)
	}
	return out
}
