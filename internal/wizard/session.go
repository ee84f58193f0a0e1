package wizard

import (
	"fmt"

	dErrors "lingo/pkg/domain-errors"
)

// Session is the sequencer state for one wizard run. All navigation goes
// through the single transition function so the step order, jump rules, and
// the edit-from-review detour live in one testable place instead of being
// scattered across screen handlers.
type Session struct {
	Mode              Mode
	Current           Step
	Visited           map[Step]bool
	EditingFromReview bool
}

// NewSession seeds the visited set per mode: {1} for a fresh application,
// all steps when editing an approved profile or resuming a resubmission.
func NewSession(mode Mode) *Session {
	s := &Session{
		Mode:    mode,
		Current: firstStep,
		Visited: map[Step]bool{firstStep: true},
	}
	if mode == ModeEditProfile || mode == ModeResubmission {
		for step := firstStep; step <= lastStep; step++ {
			s.Visited[step] = true
		}
	}
	return s
}

// event is a sequencer input. Using a closed set of event types keeps
// transition exhaustive.
type event interface{ isEvent() }

type advanceEvent struct{}
type retreatEvent struct{}
type jumpEvent struct{ to Step }
type editFromEvent struct{ to Step }

func (advanceEvent) isEvent()  {}
func (retreatEvent) isEvent()  {}
func (jumpEvent) isEvent()     {}
func (editFromEvent) isEvent() {}

// transition computes the next sequencer state. It never mutates s; callers
// assign the result. Returning an error leaves the session unchanged.
func transition(s Session, ev event) (Session, error) {
	switch ev := ev.(type) {
	case advanceEvent:
		if s.EditingFromReview {
			// The detour always funnels back to review; continuing the
			// linear walk from the edited step would re-run later steps.
			s.EditingFromReview = false
			s.Current = StepReview
			return s, nil
		}
		if s.Current < lastStep {
			s.Current++
		}
		s.Visited[s.Current] = true
		return s, nil

	case retreatEvent:
		if s.EditingFromReview {
			s.EditingFromReview = false
			s.Current = StepReview
			return s, nil
		}
		if s.Current > firstStep {
			s.Current--
		}
		return s, nil

	case jumpEvent:
		if !s.canJumpTo(ev.to) {
			return s, dErrors.New(dErrors.CodeStepNotNavigable,
				fmt.Sprintf("step %s has not been reached", ev.to))
		}
		s.Current = ev.to
		return s, nil

	case editFromEvent:
		if s.Current != StepReview {
			return s, dErrors.New(dErrors.CodeInvariantViolation, "edit-from-review is only available on the review step")
		}
		s.EditingFromReview = true
		s.Current = ev.to
		return s, nil

	default:
		return s, dErrors.New(dErrors.CodeInternal, "unknown sequencer event")
	}
}

// canJumpTo implements the jump restriction: completed (≤ current) or already
// visited steps only, with free jumping when editing an approved profile.
func (s Session) canJumpTo(to Step) bool {
	if s.Mode == ModeEditProfile {
		return true
	}
	return to <= s.Current || s.Visited[to]
}

// Advance moves to the next step, or back to review when in the detour.
func (s *Session) Advance() {
	next, _ := transition(*s, advanceEvent{})
	*s = next
}

// Retreat moves to the previous step, or back to review when in the detour.
func (s *Session) Retreat() {
	next, _ := transition(*s, retreatEvent{})
	*s = next
}

// JumpTo navigates directly to a step, subject to the visited-set rules.
func (s *Session) JumpTo(to Step) error {
	next, err := transition(*s, jumpEvent{to: to})
	if err != nil {
		return err
	}
	*s = next
	return nil
}

// EditFrom enters the edit-from-review detour for the given step.
func (s *Session) EditFrom(to Step) error {
	next, err := transition(*s, editFromEvent{to: to})
	if err != nil {
		return err
	}
	*s = next
	return nil
}
