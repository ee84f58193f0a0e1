package rates

import id "lingo/pkg/domain"

// courtGate lists the certificate codes that unlock legal and video
// interpreting. Reviewed as data: changes here are policy changes.
var courtGate = map[id.CertificateCode]bool{
	id.CertCourt:               true,
	id.CertFederal:             true,
	id.CertATA:                 true,
	id.CertAdministrativeCourt: true,
}

// medicalGate is the court gate plus the medical certification.
var medicalGate = map[id.CertificateCode]bool{
	id.CertCourt:               true,
	id.CertFederal:             true,
	id.CertATA:                 true,
	id.CertAdministrativeCourt: true,
	id.CertMedical:             true,
}

// gatedServices maps each gated service code to its qualifying certificate
// set. Service codes absent from this table are always selectable.
var gatedServices = map[id.ServiceCode]map[id.CertificateCode]bool{
	id.ServiceLegal:   courtGate,
	id.ServiceVideo:   courtGate,
	id.ServiceMedical: medicalGate,
}

// IsServiceSelectable reports whether a candidate holding the given
// certificate codes may select the service. Any single qualifying
// certificate suffices; eligibility is a plain disjunction.
func IsServiceSelectable(code id.ServiceCode, held []id.CertificateCode) bool {
	gate, gated := gatedServices[code]
	if !gated {
		return true
	}
	for _, c := range held {
		if gate[c] {
			return true
		}
	}
	return false
}

// IsGated reports whether the service code requires certification at all.
func IsGated(code id.ServiceCode) bool {
	_, ok := gatedServices[code]
	return ok
}
