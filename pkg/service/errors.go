package service

import (
	"errors"

	"github.com/aretw0/ostia/pkg/domain"
)

// isUndefined reports errors that mean "no output" rather than a failure:
// the transducer has no path for the input, or the input uses a token the
// transducer never saw.
func isUndefined(err error) bool {
	return errors.Is(err, domain.ErrUndefinedTransduction) || errors.Is(err, domain.ErrUnknownToken)
}
