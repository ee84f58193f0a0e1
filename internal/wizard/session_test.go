package wizard

import (
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "lingo/pkg/domain-errors"
)

type SequencerSuite struct {
	suite.Suite
}

func TestSequencerSuite(t *testing.T) {
	suite.Run(t, new(SequencerSuite))
}

func (s *SequencerSuite) TestFreshSeeding() {
	sess := NewSession(ModeFresh)
	s.Equal(StepPersonal, sess.Current)
	s.Equal(map[Step]bool{StepPersonal: true}, sess.Visited)
	s.False(sess.EditingFromReview)
}

func (s *SequencerSuite) TestEditProfileSeedsAllSteps() {
	for _, mode := range []Mode{ModeEditProfile, ModeResubmission} {
		sess := NewSession(mode)
		for step := StepPersonal; step <= StepReview; step++ {
			s.True(sess.Visited[step], "%s should pre-visit %s", mode, step)
		}
	}
}

func (s *SequencerSuite) TestLinearWalk() {
	sess := NewSession(ModeFresh)

	for expected := StepAddress; expected <= StepReview; expected++ {
		sess.Advance()
		s.Equal(expected, sess.Current)
		s.True(sess.Visited[expected])
	}

	// Advance clamps at the last step.
	sess.Advance()
	s.Equal(StepReview, sess.Current)
}

func (s *SequencerSuite) TestRetreatClampsAtFirstStep() {
	sess := NewSession(ModeFresh)
	sess.Retreat()
	s.Equal(StepPersonal, sess.Current)

	sess.Advance()
	sess.Retreat()
	s.Equal(StepPersonal, sess.Current)
}

func (s *SequencerSuite) TestDetourInvariant() {
	// For any step s, editFrom(s) then advance lands on review with the
	// flag cleared.
	for target := StepPersonal; target < StepReview; target++ {
		sess := NewSession(ModeFresh)
		for sess.Current != StepReview {
			sess.Advance()
		}

		s.Require().NoError(sess.EditFrom(target))
		s.Equal(target, sess.Current)
		s.True(sess.EditingFromReview)

		sess.Advance()
		s.Equal(StepReview, sess.Current, "editFrom(%s) must funnel back to review", target)
		s.False(sess.EditingFromReview)
	}
}

func (s *SequencerSuite) TestDetourRetreatAlsoReturnsToReview() {
	sess := NewSession(ModeFresh)
	for sess.Current != StepReview {
		sess.Advance()
	}

	s.Require().NoError(sess.EditFrom(StepAddress))
	sess.Retreat()
	s.Equal(StepReview, sess.Current)
	s.False(sess.EditingFromReview)
}

func (s *SequencerSuite) TestEditFromRequiresReviewStep() {
	sess := NewSession(ModeFresh)
	err := sess.EditFrom(StepPersonal)
	s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}

func (s *SequencerSuite) TestJumpRestrictionFreshMode() {
	sess := NewSession(ModeFresh)
	sess.Advance() // address
	sess.Advance() // languages

	s.Run("backward jump allowed", func() {
		s.NoError(sess.JumpTo(StepPersonal))
		s.Equal(StepPersonal, sess.Current)
	})

	s.Run("visited forward step allowed", func() {
		s.NoError(sess.JumpTo(StepLanguages))
		s.Equal(StepLanguages, sess.Current)
	})

	s.Run("unvisited forward step rejected without state change", func() {
		err := sess.JumpTo(StepTaxForm)
		s.True(dErrors.HasCode(err, dErrors.CodeStepNotNavigable))
		s.Equal(StepLanguages, sess.Current)
	})
}

func (s *SequencerSuite) TestJumpAlwaysAllowedWhenEditingProfile() {
	sess := NewSession(ModeEditProfile)
	for step := StepPersonal; step <= StepReview; step++ {
		s.NoError(sess.JumpTo(step))
		s.Equal(step, sess.Current)
	}
}

func (s *SequencerSuite) TestParseStep() {
	step, err := ParseStep(3)
	s.NoError(err)
	s.Equal(StepLanguages, step)

	_, err = ParseStep(0)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	_, err = ParseStep(8)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}
