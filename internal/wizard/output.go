package wizard

import (
	"time"

	id "lingo/pkg/domain"
	dErrors "lingo/pkg/domain-errors"
	"lingo/internal/profile"
	"lingo/internal/refdata"
	"lingo/pkg/validation"
)

// StepOutput is what one wizard screen hands back on advance. Only the
// fields for the submitting step are set; merge applies whatever is present.
type StepOutput struct {
	Personal *profile.PersonalInfo `json:"personal,omitempty"`
	Address  *profile.Address      `json:"address,omitempty"`

	Languages []id.LanguageID `json:"languages,omitempty"`

	IsCertified  *bool                 `json:"is_certified,omitempty"`
	Certificates []profile.Certificate `json:"certificates,omitempty"`

	TaxForm *profile.TaxForm `json:"tax_form,omitempty"`

	AgreementAccepted *bool `json:"agreement_accepted,omitempty"`
	PrivacyAccepted   *bool `json:"privacy_accepted,omitempty"`
}

// merge validates and applies a step's output to the draft. Validation
// failures leave the draft untouched so the step can be corrected and
// resubmitted.
func merge(d *profile.Draft, out StepOutput, ref *refdata.ReferenceData, now time.Time) error {
	if out.Personal != nil {
		if err := validation.Validate(out.Personal); err != nil {
			return err
		}
	}
	if out.Address != nil {
		if err := validation.Validate(out.Address); err != nil {
			return err
		}
	}
	if out.Languages != nil {
		for _, lid := range out.Languages {
			if _, ok := ref.LanguageByID(lid); !ok {
				return dErrors.New(dErrors.CodeValidation, "unknown language selected")
			}
		}
	}
	if out.Certificates != nil {
		for _, c := range out.Certificates {
			if !c.Complete() {
				continue // abandoned rows are allowed to ride along
			}
			ct, ok := ref.CertificateTypeByID(c.CertificateTypeID)
			if !ok {
				return dErrors.New(dErrors.CodeValidation, "unknown certificate type")
			}
			if err := c.Validate(ct.Code, now); err != nil {
				return err
			}
		}
	}
	if out.TaxForm != nil {
		if err := validateTaxForm(out.TaxForm); err != nil {
			return err
		}
	}

	// All sections validated; apply.
	if out.Personal != nil {
		d.Personal = *out.Personal
	}
	if out.Address != nil {
		d.Address = *out.Address
	}
	if out.Languages != nil {
		d.SetLanguages(out.Languages)
	}
	if out.IsCertified != nil {
		d.IsCertified = out.IsCertified
	}
	if out.Certificates != nil {
		d.Certificates = out.Certificates
	}
	if out.TaxForm != nil {
		d.TaxForm = *out.TaxForm
	}
	if out.AgreementAccepted != nil {
		d.AgreementAccepted = *out.AgreementAccepted
	}
	if out.PrivacyAccepted != nil {
		d.PrivacyAccepted = *out.PrivacyAccepted
	}
	return nil
}

func validateTaxForm(tf *profile.TaxForm) error {
	switch tf.EntryMethod {
	case profile.W9Upload:
		if tf.FileName == "" {
			return dErrors.New(dErrors.CodeValidation, "w9 file is required for upload entry")
		}
		return nil
	case profile.W9Manual:
		if tf.Data == nil {
			return dErrors.New(dErrors.CodeValidation, "w9 data is required for manual entry")
		}
		if err := validation.Validate(tf.Data); err != nil {
			return err
		}
		if tf.Data.SSN == "" && tf.Data.EIN == "" {
			return dErrors.New(dErrors.CodeValidation, "either ssn or ein is required")
		}
		return nil
	default:
		return dErrors.New(dErrors.CodeValidation, "w9 entry method must be upload or manual")
	}
}
