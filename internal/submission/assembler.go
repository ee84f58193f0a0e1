package submission

import (
	"sort"
	"time"

	id "lingo/pkg/domain"
	dErrors "lingo/pkg/domain-errors"
	"lingo/internal/profile"
	"lingo/internal/refdata"
)

const dateLayout = "2006-01-02"

// Assembler flattens a draft into the wire payload. It applies two filtering
// policies rather than erroring: certificate rows missing any required field
// are dropped (abandoned "add certificate" clicks), and language-rate
// overrides without a positive amount are omitted (overrides are opt-in per
// language).
type Assembler struct{}

func NewAssembler() *Assembler {
	return &Assembler{}
}

// Assemble builds the payload shared by profile creation and profile update.
// ID lookups against reference data happen earlier, at selection and merge
// time; assembly only flattens what the draft already holds.
func (a *Assembler) Assemble(d *profile.Draft) (*Payload, error) {
	if d == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "draft is required")
	}
	if !d.AgreementAccepted || !d.PrivacyAccepted {
		return nil, dErrors.New(dErrors.CodeValidation, "agreement and privacy policy must be accepted")
	}

	p := &Payload{
		FirstName: d.Personal.FirstName,
		LastName:  d.Personal.LastName,
		Email:     d.Personal.Email,
		Phone:     d.Personal.Phone,

		AddressLine1: d.Address.Line1,
		AddressLine2: d.Address.Line2,
		City:         d.Address.City,
		RegionCode:   d.Address.RegionCode,
		PostalCode:   d.Address.PostalCode,
		Formatted:    d.Address.Formatted,
		Latitude:     d.Address.Latitude,
		Longitude:    d.Address.Longitude,

		AgreementAccepted: d.AgreementAccepted,
		PrivacyAccepted:   d.PrivacyAccepted,
	}

	for _, lid := range d.Languages {
		p.Languages = append(p.Languages, LanguageEntry{LanguageID: lid.String()})
	}

	p.CertificatesMetadata = assembleCertificates(d.Certificates)
	p.ServiceTypeIDs, p.ServiceRates = assembleSelections(d)

	p.W9EntryMethod = string(d.TaxForm.EntryMethod)
	p.W9FileName = d.TaxForm.FileName
	if d.TaxForm.Data != nil {
		p.W9Data = &W9Entry{
			LegalName:      d.TaxForm.Data.LegalName,
			BusinessName:   d.TaxForm.Data.BusinessName,
			Classification: d.TaxForm.Data.Classification,
			SSN:            d.TaxForm.Data.SSN,
			EIN:            d.TaxForm.Data.EIN,
			Street:         d.TaxForm.Data.Street,
			City:           d.TaxForm.Data.City,
			State:          d.TaxForm.Data.State,
			Zip:            d.TaxForm.Data.Zip,
		}
	}

	return p, nil
}

// assembleCertificates keeps only complete rows. Partially filled rows are
// dropped silently, not rejected.
func assembleCertificates(certs []profile.Certificate) []CertificateEntry {
	var out []CertificateEntry
	for _, c := range certs {
		if !c.Complete() {
			continue
		}
		entry := CertificateEntry{
			CertificateTypeID: c.CertificateTypeID.String(),
			Number:            c.Number,
			IssuingOrg:        c.IssuingOrg,
			ExpiryDate:        c.ExpiryDate.Format(dateLayout),
			FileName:          c.FileName,
		}
		if c.IssueDate != nil {
			entry.IssueDate = c.IssueDate.Format(dateLayout)
		}
		if c.IssuingRegionID != nil && !c.IssuingRegionID.IsNil() {
			entry.IssuingRegionID = c.IssuingRegionID.String()
		}
		out = append(out, entry)
	}
	return out
}

// assembleSelections flattens the selection map, sorted by service type ID so
// the payload is stable across runs.
func assembleSelections(d *profile.Draft) ([]string, []ServiceRateEntry) {
	sids := d.SelectedServiceTypes()
	sort.Slice(sids, func(i, j int) bool { return sids[i].String() < sids[j].String() })

	ids := make([]string, 0, len(sids))
	entries := make([]ServiceRateEntry, 0, len(sids))
	for _, sid := range sids {
		sel := d.ServiceSelections[sid]
		ids = append(ids, sid.String())

		entry := ServiceRateEntry{
			ServiceTypeID:        sid.String(),
			RateType:             string(sel.RateType),
			Amount:               sel.Rate.Amount,
			Unit:                 string(sel.Rate.Unit),
			MinimumHours:         sel.Rate.MinimumHours,
			IntervalMinutes:      sel.Rate.IntervalMinutes,
			SecondIntervalAmount: sel.Rate.SecondIntervalAmount,
		}
		if sel.Rate.SecondIntervalUnit != nil {
			u := string(*sel.Rate.SecondIntervalUnit)
			entry.SecondIntervalUnit = &u
		}
		entry.LanguageRates = assembleLanguageRates(sel)
		entries = append(entries, entry)
	}
	return ids, entries
}

// assembleLanguageRates omits overrides without a positive amount. Blank or
// non-numeric form input parses to zero upstream; zero here means opted out.
func assembleLanguageRates(sel *profile.ServiceSelection) []LanguageRateEntry {
	if len(sel.LanguageOverrides) == 0 {
		return nil
	}
	lids := make([]id.LanguageID, 0, len(sel.LanguageOverrides))
	for lid := range sel.LanguageOverrides {
		lids = append(lids, lid)
	}
	sort.Slice(lids, func(i, j int) bool { return lids[i].String() < lids[j].String() })

	var out []LanguageRateEntry
	for _, lid := range lids {
		lr := sel.LanguageOverrides[lid]
		if lr.Amount <= 0 {
			continue
		}
		out = append(out, LanguageRateEntry{
			LanguageID: lid.String(),
			Amount:     lr.Amount,
			Unit:       string(lr.Unit),
		})
	}
	return out
}

// ValidateForSubmission runs the submission-time certificate checks that the
// assembler's silent-drop policy does not cover: complete rows must still
// carry valid dates and regions.
func ValidateForSubmission(d *profile.Draft, ref *refdata.ReferenceData, now time.Time) error {
	for _, c := range d.Certificates {
		if !c.Complete() {
			continue
		}
		ct, ok := ref.CertificateTypeByID(c.CertificateTypeID)
		if !ok {
			return dErrors.New(dErrors.CodeValidation, "certificate references an unknown certificate type")
		}
		if err := c.Validate(ct.Code, now); err != nil {
			return err
		}
	}
	return nil
}
