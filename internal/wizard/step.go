// Package wizard implements the onboarding step sequencer and the session
// service that drives a draft profile through it.
package wizard

import (
	"fmt"

	dErrors "lingo/pkg/domain-errors"
)

// Step is one wizard screen. Values are 1-based to match the step indices
// shown to users and recorded in visited sets.
type Step int

const (
	StepPersonal Step = iota + 1
	StepAddress
	StepLanguages
	StepCertificates
	StepServiceTypes
	StepTaxForm
	StepReview

	firstStep = StepPersonal
	lastStep  = StepReview
)

var stepNames = map[Step]string{
	StepPersonal:     "personal",
	StepAddress:      "address",
	StepLanguages:    "languages",
	StepCertificates: "certificates",
	StepServiceTypes: "service_types",
	StepTaxForm:      "tax_form",
	StepReview:       "review",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// StepByName resolves a step from its wire name.
func StepByName(name string) (Step, bool) {
	for step, n := range stepNames {
		if n == name {
			return step, true
		}
	}
	return 0, false
}

// ParseStep validates a step index from external input.
func ParseStep(n int) (Step, error) {
	s := Step(n)
	if s < firstStep || s > lastStep {
		return 0, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("step %d out of range", n))
	}
	return s, nil
}

// Mode describes why the session exists; it controls visited-set seeding and
// jump permissions.
type Mode string

const (
	// ModeFresh is a first application: strictly linear walk from step 1.
	ModeFresh Mode = "fresh"
	// ModeEditProfile amends an approved profile: every step is pre-visited
	// and free jumping is allowed.
	ModeEditProfile Mode = "edit_profile"
	// ModeResubmission resumes after an admin rejection: every step is
	// pre-visited and the draft is prefilled from the prior submission.
	ModeResubmission Mode = "resubmission"
)
