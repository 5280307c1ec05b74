// internal/capture/errors.go
package capture

import "errors"

var (
	ErrDevice     = errors.New("capture device could not be opened")
	ErrUnreadable = errors.New("device unreadable")
	ErrWrite      = errors.New("image write failed")
)

// Process exit codes.
const (
	ExitOK         = 0
	ExitDevice     = 1
	ExitWrite      = 2
	ExitUnreadable = 3
	ExitUsage      = 255
)

// ExitCode maps a run error onto the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrDevice):
		return ExitDevice
	case errors.Is(err, ErrWrite):
		return ExitWrite
	case errors.Is(err, ErrUnreadable):
		return ExitUnreadable
	default:
		// anything unclassified is treated like a device failure
		return ExitDevice
	}
}
