// Package refdata holds the parametric reference data the wizard consults:
// languages, service types with their platform rates, certificate types, and
// regions. The snapshot is loaded once per session and is read-only afterwards,
// so it is safe for unsynchronized concurrent reads.
package refdata

import (
	"strings"

	id "lingo/pkg/domain"
	"lingo/internal/rates"
)

type Language struct {
	ID   id.LanguageID `json:"id"`
	Name string        `json:"name"`
}

type ServiceType struct {
	ID           id.ServiceTypeID `json:"id"`
	Code         id.ServiceCode   `json:"code"`
	Name         string           `json:"name"`
	PlatformRate rates.RateSpec   `json:"platform_rate"`
}

type CertificateType struct {
	ID   id.CertificateTypeID `json:"id"`
	Code id.CertificateCode   `json:"code"`
	Name string               `json:"name"`
}

type Region struct {
	ID   id.RegionID `json:"id"`
	Code string      `json:"code"`
	Name string      `json:"name"`
}

// ReferenceData is the immutable parametric snapshot for one wizard session.
type ReferenceData struct {
	Languages        []Language        `json:"languages"`
	ServiceTypes     []ServiceType     `json:"service_types"`
	CertificateTypes []CertificateType `json:"certificate_types"`
	Regions          []Region          `json:"regions"`
}

func (rd *ReferenceData) LanguageByID(lid id.LanguageID) (Language, bool) {
	for _, l := range rd.Languages {
		if l.ID == lid {
			return l, true
		}
	}
	return Language{}, false
}

func (rd *ReferenceData) ServiceTypeByID(sid id.ServiceTypeID) (ServiceType, bool) {
	for _, st := range rd.ServiceTypes {
		if st.ID == sid {
			return st, true
		}
	}
	return ServiceType{}, false
}

func (rd *ReferenceData) CertificateTypeByID(cid id.CertificateTypeID) (CertificateType, bool) {
	for _, ct := range rd.CertificateTypes {
		if ct.ID == cid {
			return ct, true
		}
	}
	return CertificateType{}, false
}

func (rd *ReferenceData) RegionByID(rid id.RegionID) (Region, bool) {
	for _, r := range rd.Regions {
		if r.ID == rid {
			return r, true
		}
	}
	return Region{}, false
}

// HasLanguageNamed reports whether any of the given language IDs resolves to
// the named language. Name comparison is case-insensitive because the
// parametric list is operator-maintained.
func (rd *ReferenceData) HasLanguageNamed(name string, ids []id.LanguageID) bool {
	for _, lid := range ids {
		l, ok := rd.LanguageByID(lid)
		if ok && strings.EqualFold(l.Name, name) {
			return true
		}
	}
	return false
}

// CertificateCodes resolves certificate type IDs to their stable codes,
// skipping IDs absent from the snapshot.
func (rd *ReferenceData) CertificateCodes(ids []id.CertificateTypeID) []id.CertificateCode {
	codes := make([]id.CertificateCode, 0, len(ids))
	for _, cid := range ids {
		if ct, ok := rd.CertificateTypeByID(cid); ok {
			codes = append(codes, ct.Code)
		}
	}
	return codes
}
