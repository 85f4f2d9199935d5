package core

import "errors"

var (
	// ErrSourceUnavailable is returned when the capture device cannot be
	// opened or the static image cannot be decoded.
	ErrSourceUnavailable = errors.New("frame source unavailable")

	// ErrFrameRead is returned when a live source stops producing frames.
	ErrFrameRead = errors.New("failed to read frame")

	ErrUnknownMode = errors.New("unknown mode")
)

// ExitCode maps the result of Pipeline.Run to a process exit status
func ExitCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}
