// Package frosterr defines the sentinel error kinds shared by the signer,
// coordinator, transport, and HTTP API packages. Every error a caller needs
// to branch on is one of the values below, wrapped with context via
// fmt.Errorf's %w (or github.com/pkg/errors.Wrap, where a stack trace earns
// its keep) and compared with errors.Is.
package frosterr

import "github.com/pkg/errors"

// Kind is a sentinel error value identifying one failure category. A Kind
// is normally wrapped with the specific detail that triggered it; the
// CLI's verify and aggregate commands return ErrVerificationFailed bare.
type Kind = error

var (
	// ErrSessionNotFound is returned when a session identifier does not
	// name a live session, either because it was never created or because
	// it already completed, was cancelled, or swept for inactivity.
	ErrSessionNotFound Kind = errors.New("session not found")

	// ErrSessionMismatch is returned when a commitment or signature share
	// names a session identifier different from the one the caller
	// addressed, or references a signing package from a different round.
	ErrSessionMismatch Kind = errors.New("session mismatch")

	// ErrDuplicateCommitment is returned when a signer submits a second
	// commitment for a session in which it has already committed.
	ErrDuplicateCommitment Kind = errors.New("duplicate commitment")

	// ErrInsufficientCommitments is returned when round two is attempted
	// before the session's threshold number of commitments has arrived.
	ErrInsufficientCommitments Kind = errors.New("insufficient commitments")

	// ErrInsufficientShares is returned when aggregation is attempted
	// before the session's threshold number of signature shares has
	// arrived.
	ErrInsufficientShares Kind = errors.New("insufficient signature shares")

	// ErrInvalidCommitment is returned when a signing commitment fails
	// structural validation: an off-curve point, an unknown signer
	// identifier, or a malformed wire encoding.
	ErrInvalidCommitment Kind = errors.New("invalid commitment")

	// ErrInvalidSigningPackage is returned when a signing package fails
	// structural validation before round two begins.
	ErrInvalidSigningPackage Kind = errors.New("invalid signing package")

	// ErrInvalidShare is returned when a signature share fails structural
	// validation, or is rejected by the coordinator's own share
	// verification described in [ROAST] section 4.
	ErrInvalidShare Kind = errors.New("invalid signature share")

	// ErrAggregationFailed is returned when Aggregate cannot combine the
	// collected signature shares into a candidate signature.
	ErrAggregationFailed Kind = errors.New("signature aggregation failed")

	// ErrVerificationFailed is returned when a candidate group signature
	// does not verify against the group public key and message.
	ErrVerificationFailed Kind = errors.New("signature verification failed")

	// ErrPrimitiveFailure wraps any error surfaced directly by the
	// internal/frost cryptographic primitives that does not already fall
	// into one of the kinds above — a random-source failure during
	// KeyGen or Commit, for instance.
	ErrPrimitiveFailure Kind = errors.New("cryptographic primitive failure")

	// ErrTransportExhausted names a payload fragment that was lost on every
	// attempt of its retry budget. SimulatedLink.Send does not return it:
	// it logs the abandoned fragment and goes on with the next one.
	ErrTransportExhausted Kind = errors.New("transport retries exhausted")

	// ErrUnsafeOperationDisabled is returned when a caller attempts to use
	// the demo-only nonce persistence file without explicitly enabling it.
	ErrUnsafeOperationDisabled Kind = errors.New("unsafe operation not enabled")
)

// Wrap annotates err with a message while preserving errors.Is/As matching
// against the sentinel kinds above.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf is Wrap with fmt.Sprintf-style formatting.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}
