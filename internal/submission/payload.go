// Package submission transforms a finished draft into the profile backend's
// wire payload and posts it.
package submission

// LanguageEntry is the wire form of one draft language.
type LanguageEntry struct {
	LanguageID string `json:"language_id"`
}

// LanguageRateEntry is one per-language rate override on a service rate.
type LanguageRateEntry struct {
	LanguageID string  `json:"language_id"`
	Amount     float64 `json:"amount"`
	Unit       string  `json:"unit"`
}

// ServiceRateEntry is the wire form of one service selection.
type ServiceRateEntry struct {
	ServiceTypeID        string              `json:"service_type_id"`
	RateType             string              `json:"rate_type"`
	Amount               float64             `json:"amount"`
	Unit                 string              `json:"unit"`
	MinimumHours         float64             `json:"minimum_hours,omitempty"`
	IntervalMinutes      int                 `json:"interval_minutes,omitempty"`
	SecondIntervalAmount *float64            `json:"second_interval_amount,omitempty"`
	SecondIntervalUnit   *string             `json:"second_interval_unit,omitempty"`
	LanguageRates        []LanguageRateEntry `json:"language_rates,omitempty"`
}

// CertificateEntry is the wire form of one complete certificate row.
type CertificateEntry struct {
	CertificateTypeID string `json:"certificate_type_id"`
	Number            string `json:"number"`
	IssuingOrg        string `json:"issuing_org"`
	IssueDate         string `json:"issue_date,omitempty"`
	ExpiryDate        string `json:"expiry_date"`
	IssuingRegionID   string `json:"issuing_region_id,omitempty"`
	FileName          string `json:"file_name,omitempty"`
}

// W9Entry is the wire form of manually keyed W-9 data.
type W9Entry struct {
	LegalName      string `json:"legal_name"`
	BusinessName   string `json:"business_name,omitempty"`
	Classification string `json:"classification"`
	SSN            string `json:"ssn,omitempty"`
	EIN            string `json:"ein,omitempty"`
	Street         string `json:"street"`
	City           string `json:"city"`
	State          string `json:"state"`
	Zip            string `json:"zip"`
}

// Payload is the assembled multipart body for profile creation and for a
// queued profile update. Both shapes share the same assembly; only the
// endpoint differs.
type Payload struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string

	AddressLine1 string
	AddressLine2 string
	City         string
	RegionCode   string
	PostalCode   string
	Formatted    string
	Latitude     float64
	Longitude    float64

	Languages            []LanguageEntry
	ServiceTypeIDs       []string
	ServiceRates         []ServiceRateEntry
	CertificatesMetadata []CertificateEntry

	W9EntryMethod string
	W9Data        *W9Entry
	W9FileName    string

	AgreementAccepted bool
	PrivacyAccepted   bool
}
