package commands

import (
	"freight-core/internal/infra"
	"freight-core/internal/pkg/errs"
)

var (
	ErrBookingNotFound        = errs.New("booking not found")
	ErrPoolNotFound           = errs.New("shared load pool not found")
	ErrConcurrentUpdate       = errs.New("booking was modified concurrently")
	ErrBookingNumberExhausted = errs.New("could not allocate a unique booking number")
	ErrFareUnavailable        = errs.New("fare quote unavailable")
)

// translate turns repository kinds into command-level errors while keeping
// the original chain for logging.
func translate(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, notFound)
	case infra.IsKind(err, infra.KindConflict):
		return errs.Mark(err, ErrConcurrentUpdate)
	default:
		return err
	}
}
