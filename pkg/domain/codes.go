package domain

// ServiceCode identifies a service offering independent of its database ID.
// Codes are stable across environments; IDs are not.
type ServiceCode string

const (
	ServiceOnSite   ServiceCode = "on-site"
	ServicePhone    ServiceCode = "phone"
	ServiceVideo    ServiceCode = "video"
	ServiceLegal    ServiceCode = "legal"
	ServiceMedical  ServiceCode = "medical"
	ServiceDocument ServiceCode = "document"
)

// CertificateCode identifies a certification type by its stable code.
type CertificateCode string

const (
	CertCourt               CertificateCode = "court-certified"
	CertFederal             CertificateCode = "federal-certified"
	CertATA                 CertificateCode = "ata-certified"
	CertAdministrativeCourt CertificateCode = "administrative-court-certified"
	CertMedical             CertificateCode = "medical-certified"
)

// CourtCertifiedFamily lists the certificate codes that require an issuing
// region on the certificate record.
var CourtCertifiedFamily = map[CertificateCode]bool{
	CertCourt:               true,
	CertAdministrativeCourt: true,
}

// RateType distinguishes the business default rate from an interpreter-set one.
// Accepting the platform rate flags the interpreter as a preferred provider.
type RateType string

const (
	RatePlatform RateType = "platform"
	RateCustom   RateType = "custom"
)
