package view

import "github.com/bnema/viewkit/native"

// Status is the outcome of a view operation
type Status int

const (
	// Success means the operation completed
	Success Status = iota
	// Failure is a non-fatal failure
	Failure
	// UnknownError is an unknown system error
	UnknownError
	// BadBackend means the backend is invalid or missing
	BadBackend
	// BadParameter means a parameter was rejected
	BadParameter
	// BadConfiguration means the view configuration is invalid
	BadConfiguration
	// BackendFailed means backend initialisation failed
	BackendFailed
	// RegistrationFailed means window class registration failed
	RegistrationFailed
	// RealizeFailed means the system view could not be realized
	RealizeFailed
	// SetFormatFailed means the pixel format could not be set
	SetFormatFailed
	// CreateContextFailed means the drawing context could not be created
	CreateContextFailed
	// UnsupportedType covers unsupported data and unknown native codes
	UnsupportedType
)

var statusNames = map[Status]string{
	Success:             "success",
	Failure:             "failure",
	UnknownError:        "unknown error",
	BadBackend:          "bad backend",
	BadParameter:        "bad parameter",
	BadConfiguration:    "bad configuration",
	BackendFailed:       "backend failed",
	RegistrationFailed:  "registration failed",
	RealizeFailed:       "realize failed",
	SetFormatFailed:     "set format failed",
	CreateContextFailed: "create context failed",
	UnsupportedType:     "unsupported type",
}

var fromNativeStatus = map[native.Status]Status{
	native.StatusSuccess:             Success,
	native.StatusFailure:             Failure,
	native.StatusUnknownError:        UnknownError,
	native.StatusBadBackend:          BadBackend,
	native.StatusBadParameter:        BadParameter,
	native.StatusBadConfiguration:    BadConfiguration,
	native.StatusBackendFailed:       BackendFailed,
	native.StatusRegistrationFailed:  RegistrationFailed,
	native.StatusRealizeFailed:       RealizeFailed,
	native.StatusSetFormatFailed:     SetFormatFailed,
	native.StatusCreateContextFailed: CreateContextFailed,
	native.StatusUnsupportedType:     UnsupportedType,
}

// StatusFromNative maps a toolkit status. Codes this package does not know
// become UnsupportedType, never Success.
func StatusFromNative(s native.Status) Status {
	if st, ok := fromNativeStatus[s]; ok {
		return st
	}
	return UnsupportedType
}

// Native returns the toolkit status for s
func (s Status) Native() native.Status {
	for n, st := range fromNativeStatus {
		if st == s {
			return n
		}
	}
	return native.StatusUnsupportedType
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "invalid status"
}

// Error makes a non-success Status usable as an error value
func (s Status) Error() string {
	return "view: " + s.String()
}

// Err returns nil for Success and the status itself otherwise, so callers can
// use errors.Is(err, view.BadConfiguration).
func (s Status) Err() error {
	if s == Success {
		return nil
	}
	return s
}
