package domain

import (
	"errors"
	"fmt"
)

var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrAlreadyRunning   = errors.New("tournament already running")
	ErrNotRunning       = errors.New("no tournament running")
	ErrInvalidPartition = errors.New("invalid partition")
	ErrInvalidRequest   = errors.New("invalid request")
	ErrNotInVoice       = errors.New("caller is not in a voice channel")
	ErrBracketAPI       = errors.New("bracket api failure")
	ErrProvisioning     = errors.New("channel provisioning failed")
	ErrShuttingDown     = errors.New("shutting down")
)

// ResourceCleanupError describe un paso de limpieza que falló. Nunca llega al usuario.
type ResourceCleanupError struct {
	Step      string
	ChannelID string
	Err       error
}

func (e *ResourceCleanupError) Error() string {
	return fmt.Sprintf("cleanup %s (channel %s): %v", e.Step, e.ChannelID, e.Err)
}

func (e *ResourceCleanupError) Unwrap() error { return e.Err }

// CleanupReport junta los fallos de un teardown best-effort: cada paso se intenta
// siempre y ninguno se reintenta.
type CleanupReport struct {
	Attempted int
	Failures  []*ResourceCleanupError
}

func (r *CleanupReport) Attempt(step, channelID string, fn func() error) {
	r.Attempted++
	if err := fn(); err != nil {
		r.Failures = append(r.Failures, &ResourceCleanupError{Step: step, ChannelID: channelID, Err: err})
	}
}

func (r *CleanupReport) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, f)
	}
	return errors.Join(errs...)
}
