package refdata

import (
	"context"

	dErrors "lingo/pkg/domain-errors"
)

// StaticLoader serves a fixed snapshot. Used in tests and local development.
type StaticLoader struct {
	Data *ReferenceData
	Err  error
}

var _ Loader = (*StaticLoader)(nil)

func (l *StaticLoader) Load(ctx context.Context) (*ReferenceData, error) {
	if l.Err != nil {
		return nil, l.Err
	}
	if l.Data == nil {
		return nil, dErrors.New(dErrors.CodeReferenceUnavailable, "no static reference data configured")
	}
	return l.Data, nil
}
