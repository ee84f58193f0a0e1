package profile

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	id "lingo/pkg/domain"
	dErrors "lingo/pkg/domain-errors"
	"lingo/internal/rates"
)

type DraftSuite struct {
	suite.Suite
	draft   *Draft
	spanish id.LanguageID
	german  id.LanguageID
	phone   id.ServiceTypeID
}

func TestDraftSuite(t *testing.T) {
	suite.Run(t, new(DraftSuite))
}

func (s *DraftSuite) SetupTest() {
	s.draft = NewDraft()
	s.spanish = id.LanguageID(uuid.New())
	s.german = id.LanguageID(uuid.New())
	s.phone = id.ServiceTypeID(uuid.New())

	s.draft.SetLanguages([]id.LanguageID{s.spanish, s.german})
	s.draft.PutSelection(&ServiceSelection{
		ServiceTypeID: s.phone,
		RateType:      id.RatePlatform,
		Rate:          rates.RateSpec{Amount: 0.85, Unit: rates.UnitMinute},
	})
}

func (s *DraftSuite) TestLanguageOverrideRequiresDraftLanguage() {
	other := id.LanguageID(uuid.New())
	err := s.draft.SetLanguageOverride(s.phone, other, rates.LanguageRate{Amount: 1, Unit: rates.UnitMinute})
	s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}

func (s *DraftSuite) TestLanguageOverrideRequiresSelection() {
	err := s.draft.SetLanguageOverride(id.ServiceTypeID(uuid.New()), s.spanish, rates.LanguageRate{Amount: 1, Unit: rates.UnitMinute})
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *DraftSuite) TestLanguageOverrideIdempotent() {
	lr := rates.LanguageRate{Amount: 1.25, Unit: rates.UnitMinute}
	s.Require().NoError(s.draft.SetLanguageOverride(s.phone, s.spanish, lr))
	s.Require().NoError(s.draft.SetLanguageOverride(s.phone, s.spanish, lr))

	sel := s.draft.ServiceSelections[s.phone]
	s.Len(sel.LanguageOverrides, 1)
	s.Equal(lr, sel.LanguageOverrides[s.spanish])
}

func (s *DraftSuite) TestInvalidOverrideDoesNotMutate() {
	err := s.draft.SetLanguageOverride(s.phone, s.spanish, rates.LanguageRate{Amount: 0, Unit: rates.UnitMinute})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.Empty(s.draft.ServiceSelections[s.phone].LanguageOverrides)
}

func (s *DraftSuite) TestRemovingLanguagePrunesOverrides() {
	s.Require().NoError(s.draft.SetLanguageOverride(s.phone, s.german, rates.LanguageRate{Amount: 1, Unit: rates.UnitMinute}))

	s.draft.SetLanguages([]id.LanguageID{s.spanish})

	s.Empty(s.draft.ServiceSelections[s.phone].LanguageOverrides)
}

type CertificateSuite struct {
	suite.Suite
	now time.Time
}

func TestCertificateSuite(t *testing.T) {
	suite.Run(t, new(CertificateSuite))
}

func (s *CertificateSuite) SetupTest() {
	s.now = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
}

func (s *CertificateSuite) cert(mutate func(*Certificate)) Certificate {
	issue := s.now.AddDate(-2, 0, 0)
	expiry := s.now.AddDate(1, 0, 0)
	region := id.RegionID(uuid.New())
	c := Certificate{
		ID:                id.CertificateID(uuid.New()),
		CertificateTypeID: id.CertificateTypeID(uuid.New()),
		Number:            "CRT-1042",
		IssuingOrg:        "State Judicial Council",
		IssueDate:         &issue,
		ExpiryDate:        &expiry,
		IssuingRegionID:   &region,
	}
	if mutate != nil {
		mutate(&c)
	}
	return c
}

func (s *CertificateSuite) TestValidCertificate() {
	s.NoError(s.cert(nil).Validate(id.CertCourt, s.now))
}

func (s *CertificateSuite) TestExpiryBeforeIssueRejected() {
	c := s.cert(func(c *Certificate) {
		bad := c.IssueDate.AddDate(-1, 0, 0)
		c.ExpiryDate = &bad
	})
	err := c.Validate(id.CertCourt, s.now)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *CertificateSuite) TestExpiredCertificateRejected() {
	c := s.cert(func(c *Certificate) {
		past := s.now.AddDate(0, -1, 0)
		c.ExpiryDate = &past
	})
	err := c.Validate(id.CertATA, s.now)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *CertificateSuite) TestCourtFamilyRequiresRegion() {
	c := s.cert(func(c *Certificate) { c.IssuingRegionID = nil })

	s.Error(c.Validate(id.CertCourt, s.now))
	s.Error(c.Validate(id.CertAdministrativeCourt, s.now))
	// Non-court types do not need a region.
	s.NoError(c.Validate(id.CertATA, s.now))
}

func (s *CertificateSuite) TestComplete() {
	s.True(s.cert(nil).Complete())
	s.False(s.cert(func(c *Certificate) { c.ExpiryDate = nil }).Complete())
	s.False(s.cert(func(c *Certificate) { c.Number = "" }).Complete())
	s.False(s.cert(func(c *Certificate) { c.IssuingOrg = "" }).Complete())
	s.False(s.cert(func(c *Certificate) { c.CertificateTypeID = id.CertificateTypeID{} }).Complete())

	// Issue date and region are not part of the completeness rule.
	s.True(s.cert(func(c *Certificate) { c.IssueDate = nil; c.IssuingRegionID = nil }).Complete())
}
