package submission

import (
	"strconv"
	"time"

	id "lingo/pkg/domain"
	"lingo/internal/profile"
	"lingo/internal/rates"
)

// DraftFromRecord rebuilds a draft from a stored profile so edit and
// resubmission sessions start from the prior data instead of blank forms.
// Malformed entries are skipped rather than failing the whole prefill: the
// user is about to re-review everything anyway.
func DraftFromRecord(rec *ProfileRecord) *profile.Draft {
	d := profile.NewDraft()
	d.Personal = profile.PersonalInfo{
		FirstName: rec.FirstName,
		LastName:  rec.LastName,
		Email:     rec.Email,
		Phone:     rec.Phone,
	}
	d.Address = profile.Address{
		Line1:      rec.AddressLine1,
		Line2:      rec.AddressLine2,
		City:       rec.City,
		RegionCode: rec.RegionCode,
		PostalCode: rec.PostalCode,
		Formatted:  rec.Formatted,
		Latitude:   rec.Latitude,
		Longitude:  rec.Longitude,
	}

	var langs []id.LanguageID
	for _, entry := range rec.Languages {
		if lid, err := id.ParseLanguageID(entry.LanguageID); err == nil {
			langs = append(langs, lid)
		}
	}
	d.SetLanguages(langs)

	d.Certificates = certificatesFromRecord(rec.Certificates)
	if len(d.Certificates) > 0 {
		certified := true
		d.IsCertified = &certified
	}

	for _, sr := range rec.ServiceRates {
		sel := selectionFromRecord(sr, d)
		if sel != nil {
			d.PutSelection(sel)
		}
	}

	d.TaxForm = profile.TaxForm{EntryMethod: profile.W9EntryMethod(rec.W9EntryMethod)}
	if rec.W9Data != nil {
		d.TaxForm.Data = &profile.W9Data{
			LegalName:      rec.W9Data.LegalName,
			BusinessName:   rec.W9Data.BusinessName,
			Classification: rec.W9Data.Classification,
			SSN:            rec.W9Data.SSN,
			EIN:            rec.W9Data.EIN,
			Street:         rec.W9Data.Street,
			City:           rec.W9Data.City,
			State:          rec.W9Data.State,
			Zip:            rec.W9Data.Zip,
		}
	}

	// The stored profile was already accepted once.
	d.AgreementAccepted = true
	d.PrivacyAccepted = true
	return d
}

func certificatesFromRecord(entries []CertificateEntry) []profile.Certificate {
	var out []profile.Certificate
	for _, e := range entries {
		c := profile.Certificate{
			Number:     e.Number,
			IssuingOrg: e.IssuingOrg,
			FileName:   e.FileName,
		}
		if ctid, err := id.ParseCertificateTypeID(e.CertificateTypeID); err == nil {
			c.CertificateTypeID = ctid
		}
		if t, err := time.Parse(dateLayout, e.IssueDate); err == nil {
			c.IssueDate = &t
		}
		if t, err := time.Parse(dateLayout, e.ExpiryDate); err == nil {
			c.ExpiryDate = &t
		}
		if rid, err := id.ParseRegionID(e.IssuingRegionID); err == nil {
			c.IssuingRegionID = &rid
		}
		out = append(out, c)
	}
	return out
}

func selectionFromRecord(sr StoredServiceRate, d *profile.Draft) *profile.ServiceSelection {
	sid, err := id.ParseServiceTypeID(sr.ServiceTypeID)
	if err != nil {
		return nil
	}

	spec := rates.RateSpec{
		Amount:          parseAmount(sr.Amount),
		Unit:            rates.RateUnit(sr.Unit),
		MinimumHours:    parseAmount(sr.MinimumHours),
		IntervalMinutes: sr.IntervalMinutes,
	}
	if a := parseAmount(sr.SecondIntervalAmount); a > 0 {
		spec.SecondIntervalAmount = &a
		if sr.SecondIntervalUnit != "" {
			u := rates.RateUnit(sr.SecondIntervalUnit)
			spec.SecondIntervalUnit = &u
		}
	}

	sel := &profile.ServiceSelection{
		ServiceTypeID: sid,
		RateType:      id.RateType(sr.RateType),
		Rate:          spec,
	}

	for _, lr := range sr.LanguageRates {
		lid, err := id.ParseLanguageID(lr.LanguageID)
		if err != nil || !d.HasLanguage(lid) {
			continue
		}
		if sel.LanguageOverrides == nil {
			sel.LanguageOverrides = make(map[id.LanguageID]rates.LanguageRate)
		}
		// Blank or non-numeric amounts parse to zero and are dropped again
		// at assembly; keeping them here preserves the user's row.
		sel.LanguageOverrides[lid] = rates.LanguageRate{
			Amount: parseAmount(lr.Amount),
			Unit:   rates.RateUnit(lr.Unit),
		}
	}
	return sel
}

func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
