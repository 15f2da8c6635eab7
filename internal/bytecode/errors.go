package bytecode

import (
	"errors"
	"fmt"
)

// DecodeErrorCode categorizes decode failures.
type DecodeErrorCode string

const (
	// ErrCodeUnknownKind indicates a record's kind tag matches no known
	// attribute encoding. Unknown tags are errors, never skipped.
	ErrCodeUnknownKind DecodeErrorCode = "UNKNOWN_KIND"

	// ErrCodeTruncated indicates the stream ended inside a varint or a
	// length-prefixed field.
	ErrCodeTruncated DecodeErrorCode = "TRUNCATED"

	// ErrCodeUnsupportedVersion indicates the stream was produced by a
	// version newer than this build understands.
	ErrCodeUnsupportedVersion DecodeErrorCode = "UNSUPPORTED_VERSION"

	// ErrCodeUnsupportedAttr indicates an attribute kind this codec has
	// no encoding for.
	ErrCodeUnsupportedAttr DecodeErrorCode = "UNSUPPORTED_ATTR"

	// ErrCodeBadSection indicates the section header did not carry this
	// dialect's identity.
	ErrCodeBadSection DecodeErrorCode = "BAD_SECTION"
)

// DecodeError represents a failure to decode wire bytes. Failures are
// local and synchronous: the caller must abort loading the construct,
// there is no partial-success path.
type DecodeError struct {
	// Code identifies the failure category.
	Code DecodeErrorCode

	// Message is a human-readable description.
	Message string

	// Offset is the stream position at which decoding failed, when known.
	Offset int
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("%s: %s (offset=%d)", e.Code, e.Message, e.Offset)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUnsupportedVersion returns true if the error is a version rejection.
// Uses errors.As to handle wrapped errors.
func IsUnsupportedVersion(err error) bool {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Code == ErrCodeUnsupportedVersion
	}
	var ue *UpgradeError
	return errors.As(err, &ue)
}

// IsUnknownKind returns true if the error is an unknown kind tag.
func IsUnknownKind(err error) bool {
	var de *DecodeError
	return errors.As(err, &de) && de.Code == ErrCodeUnknownKind
}

// IsTruncated returns true if the error is a truncated stream.
func IsTruncated(err error) bool {
	var de *DecodeError
	return errors.As(err, &de) && de.Code == ErrCodeTruncated
}

// UpgradeError reports an attempt to upgrade a module written by a
// version newer than this build. The caller must not proceed with a
// module it cannot fully understand.
type UpgradeError struct {
	From    Version
	Current Version
}

// Error implements the error interface, naming both versions.
func (e *UpgradeError) Error() string {
	return fmt.Sprintf("current probe dialect version is %s, can't upgrade from version %s",
		e.Current, e.From)
}
