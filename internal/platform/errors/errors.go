// Package errors provides a structured error type with wrapping and metadata
package errors

// Always import the project errors package as perr (platform/errors)

import (
	stderrs "errors"
	"fmt"
)

// ErrorCode defines supported error codes used across the installer
// Values are stable for log/script compatibility; add sparingly
type ErrorCode uint16

const (
	// ErrorCodeUnknown is for unclassified errors
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodePanic is for recovered panics
	ErrorCodePanic

	// ErrorCodePermission is for missing super-user privileges
	ErrorCodePermission

	// ErrorCodeModuleLoad is for kernel module load failures
	ErrorCodeModuleLoad

	// ErrorCodeNoInterface is for an empty i2c candidate set
	ErrorCodeNoInterface

	// ErrorCodeDeviceNotFound is for probe loops that exhaust all candidates
	ErrorCodeDeviceNotFound

	// ErrorCodeInvalidOption is for menu selections outside the valid range
	ErrorCodeInvalidOption

	// ErrorCodeInvalidDuration is for unparsable or negative delay inputs
	ErrorCodeInvalidDuration

	// ErrorCodeServiceEnable is for service enable failures
	ErrorCodeServiceEnable

	// ErrorCodeServiceStart is for service start/restart failures
	ErrorCodeServiceStart

	// ErrorCodeExec is for external command failures (modprobe, systemctl, package managers)
	ErrorCodeExec

	// ErrorCodeIO is for filesystem and device I/O failures
	ErrorCodeIO

	// ErrorCodeValidation is for validation failures (input data)
	ErrorCodeValidation
)

// String returns the stable name of the code for logs and scripts
func (c ErrorCode) String() string {
	switch c {
	case ErrorCodePanic:
		return "panic"
	case ErrorCodePermission:
		return "permission"
	case ErrorCodeModuleLoad:
		return "module_load"
	case ErrorCodeNoInterface:
		return "no_interface"
	case ErrorCodeDeviceNotFound:
		return "device_not_found"
	case ErrorCodeInvalidOption:
		return "invalid_option"
	case ErrorCodeInvalidDuration:
		return "invalid_duration"
	case ErrorCodeServiceEnable:
		return "service_enable"
	case ErrorCodeServiceStart:
		return "service_start"
	case ErrorCodeExec:
		return "exec"
	case ErrorCodeIO:
		return "io"
	case ErrorCodeValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// ExitStatus maps any error to the process exit status.
// Every failure category exits 1; nil exits 0
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// Error is the structured error type with wrapping and metadata
// msg is human/developer facing; code is machine facing
// field is optional (for validation); op is optional operation tag
// orig is the wrapped cause
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
	op    string
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

// Unwrap returns the wrapped error, if any
func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Field returns the offending field, if any
func (e *Error) Field() string { return e.field }

// Op returns the operation label, if set
func (e *Error) Op() string { return e.op }

// Root returns the deepest wrapped cause
func Root(err error) error {
	for err != nil {
		u := stderrs.Unwrap(err)
		if u == nil {
			return err
		}
		err = u
	}
	return nil
}

// CodeOf extracts an ErrorCode from any error, defaulting to Unknown
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err has the given code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// As unwraps and returns (*Error, true) if err is one of ours
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Mutators (copy-on-write)

// WithField attaches a field to an *Error (copy-on-write). If err isn't *Error, returns err unchanged
func WithField(err error, field string) error {
	if e, ok := As(err); ok {
		c := *e
		c.field = field
		return &c
	}
	return err
}

// WithOp attaches an operation label to an *Error (copy-on-write). If err isn't *Error, returns err unchanged
func WithOp(err error, op string) error {
	if e, ok := As(err); ok {
		c := *e
		c.op = op
		return &c
	}
	return err
}

// Constructors

// New returns a new *Error with the given code and message
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf returns a new *Error with code and formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap returns a new *Error that wraps orig with code and message
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf returns a new *Error that wraps orig with code and formatted message
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// WrapIf wraps only when err != nil (helper for 1-liners)
func WrapIf(err error, code ErrorCode, msg string) error {
	if err == nil {
		return nil
	}
	return Wrap(err, code, msg)
}

// Sugar

// Permissionf returns a permission error
func Permissionf(format string, a ...any) error { return Newf(ErrorCodePermission, format, a...) }

// ModuleLoadf returns a kernel module load error
func ModuleLoadf(format string, a ...any) error { return Newf(ErrorCodeModuleLoad, format, a...) }

// NoInterfacef returns a no-interface error
func NoInterfacef(format string, a ...any) error { return Newf(ErrorCodeNoInterface, format, a...) }

// DeviceNotFoundf returns a device-not-found error
func DeviceNotFoundf(format string, a ...any) error {
	return Newf(ErrorCodeDeviceNotFound, format, a...)
}

// InvalidOptionf returns an invalid menu option error
func InvalidOptionf(format string, a ...any) error { return Newf(ErrorCodeInvalidOption, format, a...) }

// InvalidDurationf returns an invalid duration error
func InvalidDurationf(format string, a ...any) error {
	return Newf(ErrorCodeInvalidDuration, format, a...)
}

// ServiceEnablef returns a service enable error
func ServiceEnablef(format string, a ...any) error { return Newf(ErrorCodeServiceEnable, format, a...) }

// ServiceStartf returns a service start error
func ServiceStartf(format string, a ...any) error { return Newf(ErrorCodeServiceStart, format, a...) }

// Execf returns an external command error
func Execf(format string, a ...any) error { return Newf(ErrorCodeExec, format, a...) }

// IOf returns an I/O error
func IOf(format string, a ...any) error { return Newf(ErrorCodeIO, format, a...) }

// Validationf returns a validation error
func Validationf(format string, a ...any) error { return Newf(ErrorCodeValidation, format, a...) }

// PanicErrf returns a panic error
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

// Internalf returns a generic internal error
func Internalf(format string, a ...any) error { return Newf(ErrorCodeUnknown, format, a...) }
