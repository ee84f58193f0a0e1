// Package testutil provides shared fixtures for wizard and assembler tests.
package testutil

import (
	"time"

	"github.com/google/uuid"

	id "lingo/pkg/domain"
	"lingo/internal/profile"
	"lingo/internal/rates"
	"lingo/internal/refdata"
)

// Stable fixture IDs so tests can reference entities without plumbing.
var (
	LangSpanish = id.LanguageID(uuid.MustParse("7f6c2f52-0001-4c7a-9a60-3f0fb1c2a101"))
	LangGerman  = id.LanguageID(uuid.MustParse("7f6c2f52-0002-4c7a-9a60-3f0fb1c2a102"))
	LangTagalog = id.LanguageID(uuid.MustParse("7f6c2f52-0003-4c7a-9a60-3f0fb1c2a103"))

	SvcOnSite   = id.ServiceTypeID(uuid.MustParse("9b1d4e10-0001-4f2b-8c33-55aa0c9d2201"))
	SvcPhone    = id.ServiceTypeID(uuid.MustParse("9b1d4e10-0002-4f2b-8c33-55aa0c9d2202"))
	SvcVideo    = id.ServiceTypeID(uuid.MustParse("9b1d4e10-0003-4f2b-8c33-55aa0c9d2203"))
	SvcLegal    = id.ServiceTypeID(uuid.MustParse("9b1d4e10-0004-4f2b-8c33-55aa0c9d2204"))
	SvcMedical  = id.ServiceTypeID(uuid.MustParse("9b1d4e10-0005-4f2b-8c33-55aa0c9d2205"))
	SvcDocument = id.ServiceTypeID(uuid.MustParse("9b1d4e10-0006-4f2b-8c33-55aa0c9d2206"))

	CertTypeCourt   = id.CertificateTypeID(uuid.MustParse("c3a8e771-0001-45d2-b1f0-77cc19e03301"))
	CertTypeFederal = id.CertificateTypeID(uuid.MustParse("c3a8e771-0002-45d2-b1f0-77cc19e03302"))
	CertTypeATA     = id.CertificateTypeID(uuid.MustParse("c3a8e771-0003-45d2-b1f0-77cc19e03303"))
	CertTypeMedical = id.CertificateTypeID(uuid.MustParse("c3a8e771-0004-45d2-b1f0-77cc19e03304"))

	RegionIL = id.RegionID(uuid.MustParse("d4b9f882-0001-46e3-a2c1-88dd2af04401"))
	RegionNY = id.RegionID(uuid.MustParse("d4b9f882-0002-46e3-a2c1-88dd2af04402"))
)

// ReferenceData builds the parametric snapshot used across suites.
func ReferenceData() *refdata.ReferenceData {
	secondTier := 30.0
	return &refdata.ReferenceData{
		Languages: []refdata.Language{
			{ID: LangSpanish, Name: "Spanish"},
			{ID: LangGerman, Name: "German"},
			{ID: LangTagalog, Name: "Tagalog"},
		},
		ServiceTypes: []refdata.ServiceType{
			{ID: SvcOnSite, Code: id.ServiceOnSite, Name: "On-Site Interpreting", PlatformRate: rates.RateSpec{
				Amount: 45, Unit: rates.UnitHour, MinimumHours: 2, IntervalMinutes: 30,
				SecondIntervalAmount: &secondTier,
			}},
			{ID: SvcPhone, Code: id.ServicePhone, Name: "Over-the-Phone Interpreting", PlatformRate: rates.RateSpec{
				Amount: 0.85, Unit: rates.UnitMinute, MinimumHours: 0, IntervalMinutes: 1,
			}},
			{ID: SvcVideo, Code: id.ServiceVideo, Name: "Video Remote Interpreting", PlatformRate: rates.RateSpec{
				Amount: 250, Unit: rates.UnitPer3Hours,
			}},
			{ID: SvcLegal, Code: id.ServiceLegal, Name: "Legal Interpreting", PlatformRate: rates.RateSpec{
				Amount: 300, Unit: rates.UnitPer3Hours,
			}},
			{ID: SvcMedical, Code: id.ServiceMedical, Name: "Medical Interpreting", PlatformRate: rates.RateSpec{
				Amount: 55, Unit: rates.UnitHour, MinimumHours: 2, IntervalMinutes: 30,
			}},
			{ID: SvcDocument, Code: id.ServiceDocument, Name: "Document Translation", PlatformRate: rates.RateSpec{
				Amount: 0.14, Unit: rates.UnitWord,
			}},
		},
		CertificateTypes: []refdata.CertificateType{
			{ID: CertTypeCourt, Code: id.CertCourt, Name: "State Court Certified"},
			{ID: CertTypeFederal, Code: id.CertFederal, Name: "Federally Certified"},
			{ID: CertTypeATA, Code: id.CertATA, Name: "ATA Certified"},
			{ID: CertTypeMedical, Code: id.CertMedical, Name: "Certified Medical Interpreter"},
		},
		Regions: []refdata.Region{
			{ID: RegionIL, Code: "IL", Name: "Illinois"},
			{ID: RegionNY, Code: "NY", Name: "New York"},
		},
	}
}

// CourtCertificate returns a complete, unexpired court certificate row.
func CourtCertificate(now time.Time) profile.Certificate {
	issue := now.AddDate(-2, 0, 0)
	expiry := now.AddDate(1, 6, 0)
	region := RegionIL
	return profile.Certificate{
		ID:                id.CertificateID(uuid.New()),
		CertificateTypeID: CertTypeCourt,
		Number:            "IL-CC-2214",
		IssuingOrg:        "Illinois Supreme Court",
		IssueDate:         &issue,
		ExpiryDate:        &expiry,
		IssuingRegionID:   &region,
	}
}

// CompleteDraft builds a draft that passes review: Spanish speaker with a
// court certificate, phone and legal selections on platform rates.
func CompleteDraft(now time.Time) *profile.Draft {
	d := profile.NewDraft()
	d.Personal = profile.PersonalInfo{
		FirstName: "Ana",
		LastName:  "Reyes",
		Email:     "ana.reyes@example.com",
		Phone:     "+1-312-555-0148",
	}
	d.Address = profile.Address{
		Line1:      "233 S Wacker Dr",
		City:       "Chicago",
		RegionCode: "IL",
		PostalCode: "60606",
		Formatted:  "233 S Wacker Dr, Chicago, IL 60606",
		Latitude:   41.8789,
		Longitude:  -87.6359,
	}
	d.SetLanguages([]id.LanguageID{LangSpanish})

	certified := true
	d.IsCertified = &certified
	d.Certificates = []profile.Certificate{CourtCertificate(now)}

	d.PutSelection(&profile.ServiceSelection{
		ServiceTypeID: SvcPhone,
		RateType:      id.RatePlatform,
		Rate:          rates.RateSpec{Amount: 0.75, Unit: rates.UnitMinute, IntervalMinutes: 1},
	})
	d.PutSelection(&profile.ServiceSelection{
		ServiceTypeID: SvcLegal,
		RateType:      id.RatePlatform,
		Rate:          rates.RateSpec{Amount: 300, Unit: rates.UnitPer3Hours},
	})

	d.TaxForm = profile.TaxForm{
		EntryMethod: profile.W9Manual,
		Data: &profile.W9Data{
			LegalName:      "Ana Reyes",
			Classification: "individual",
			SSN:            "123-45-6789",
			Street:         "233 S Wacker Dr",
			City:           "Chicago",
			State:          "IL",
			Zip:            "60606",
		},
	}
	d.AgreementAccepted = true
	d.PrivacyAccepted = true
	return d
}
