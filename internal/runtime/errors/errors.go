package errors

import (
	sterrors "errors"
	"fmt"

	"github.com/drblury/ddsc/internal/runtime/native"
)

var (
	ErrAPIRequired         = sterrors.New("ddsc: native api is required")
	ErrParticipantRequired = sterrors.New("ddsc: participant is required")
	ErrDescriptorRequired  = sterrors.New("ddsc: topic descriptor is required")
	ErrNameRequired        = sterrors.New("ddsc: topic name is required")
	ErrPolicyNotSet        = sterrors.New("ddsc: policy is not set")
	ErrClosed              = sterrors.New("ddsc: resource is closed")
	ErrConfigRequired      = sterrors.New("ddsc: configuration is required")
	ErrProfileNotFound     = sterrors.New("ddsc: qos profile not found")
	ErrPublisherRequired   = sterrors.New("ddsc: publisher is required")
)

// Per-code sentinels. errors.Is(err, ErrBadParameter) matches any Error
// carrying RetcodeBadParameter.
var (
	ErrAlreadyDeleted       = Error{code: native.RetcodeAlreadyDeleted}
	ErrBadParameter         = Error{code: native.RetcodeBadParameter}
	ErrGeneric              = Error{code: native.RetcodeError}
	ErrIllegalOperation     = Error{code: native.RetcodeIllegalOperation}
	ErrImmutablePolicy      = Error{code: native.RetcodeImmutablePolicy}
	ErrInconsistentPolicy   = Error{code: native.RetcodeInconsistentPolicy}
	ErrNotAllowedBySecurity = Error{code: native.RetcodeNotAllowedBySecurity}
	ErrNotEnabled           = Error{code: native.RetcodeNotEnabled}
	ErrNoData               = Error{code: native.RetcodeNoData}
	ErrOutOfResources       = Error{code: native.RetcodeOutOfResources}
	ErrPreconditionNotMet   = Error{code: native.RetcodePreconditionNotMet}
	ErrTimeout              = Error{code: native.RetcodeTimeout}
	ErrUnsupported          = Error{code: native.RetcodeUnsupported}
)

// failureCodes is the closed set of native return codes that mean failure.
// Every other value, handles included, is a success.
var failureCodes = map[native.ReturnCode]string{
	native.RetcodeAlreadyDeleted:       "ALREADY_DELETED",
	native.RetcodeBadParameter:         "BAD_PARAMETER",
	native.RetcodeError:                "ERROR",
	native.RetcodeIllegalOperation:     "ILLEGAL_OPERATION",
	native.RetcodeImmutablePolicy:      "IMMUTABLE_POLICY",
	native.RetcodeInconsistentPolicy:   "INCONSISTENT_POLICY",
	native.RetcodeNotAllowedBySecurity: "NOT_ALLOWED_BY_SECURITY",
	native.RetcodeNotEnabled:           "NOT_ENABLED",
	native.RetcodeNoData:               "NO_DATA",
	native.RetcodeOutOfResources:       "OUT_OF_RESOURCES",
	native.RetcodePreconditionNotMet:   "PRECONDITION_NOT_MET",
	native.RetcodeTimeout:              "TIMEOUT",
	native.RetcodeUnsupported:          "UNSUPPORTED",
}

// Error is a failed native call. It is a comparable value type.
type Error struct {
	code native.ReturnCode
}

// Code returns the native return code.
func (e Error) Code() native.ReturnCode { return e.code }

// Name returns the symbolic name of the code, e.g. "BAD_PARAMETER".
func (e Error) Name() string {
	if name, ok := failureCodes[e.code]; ok {
		return name
	}
	return "UNKNOWN"
}

func (e Error) Error() string {
	return fmt.Sprintf("ddsc: native error: code=%d (%s)", e.code, e.Name())
}

// Is matches another Error with the same code.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	return ok && t.code == e.code
}

// Classify maps a native return value to itself on success or to an Error.
func Classify(code int32) (int32, error) {
	if IsFailure(code) {
		return code, Error{code: native.ReturnCode(code)}
	}
	return code, nil
}

// CodeOf returns the native code carried by err, or zero when err does not
// wrap an Error.
func CodeOf(err error) int32 {
	var nerr Error
	if sterrors.As(err, &nerr) {
		return int32(nerr.code)
	}
	return 0
}

// CodeName returns the symbolic name of a failure code, e.g. "TIMEOUT", and
// "" for any value outside the failure set.
func CodeName(code int32) string {
	return failureCodes[native.ReturnCode(code)]
}

// IsFailure reports whether code is one of the native failure codes.
func IsFailure(code int32) bool {
	_, ok := failureCodes[native.ReturnCode(code)]
	return ok
}

// FailureCodes returns the failure set in ascending numeric order.
func FailureCodes() []native.ReturnCode {
	codes := make([]native.ReturnCode, 0, len(failureCodes))
	for code := native.RetcodeNotAllowedBySecurity; code <= native.RetcodeError; code++ {
		if _, ok := failureCodes[code]; ok {
			codes = append(codes, code)
		}
	}
	return codes
}

// DecodeError reports a native (kind, parameter) pair that has no logical
// representative.
type DecodeError struct {
	Policy       string
	Kind         uint32
	HasParameter bool
}

func (e *DecodeError) Error() string {
	presence := "without"
	if e.HasParameter {
		presence = "with"
	}
	return fmt.Sprintf("ddsc: invalid %s policy: kind %d %s parameter", e.Policy, e.Kind, presence)
}

// ConfigValidationError wraps configuration validation failures.
type ConfigValidationError struct {
	Err error
}

func (e ConfigValidationError) Error() string {
	return "ddsc: invalid configuration: " + e.Err.Error()
}

func (e ConfigValidationError) Unwrap() error {
	return e.Err
}

// NewConfigValidationError wraps err, returning nil for a nil err.
func NewConfigValidationError(err error) error {
	if err == nil {
		return nil
	}
	return ConfigValidationError{Err: err}
}
