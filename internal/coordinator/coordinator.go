// Package coordinator implements the session-orchestration half of the
// protocol: opening sessions, collecting commitments and signature shares
// up to the group's threshold, and driving aggregation and verification.
// It generalizes a single in-process execution value keyed by a
// commitment-list hash into a concurrent session map keyed by SessionID,
// so an arbitrary number of signing rounds can run side by side.
package coordinator

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/frostlink/frost/internal/frost"
	"github.com/frostlink/frost/internal/frosterr"
	"github.com/frostlink/frost/internal/logging"
)

// Coordinator orchestrates one or many concurrent signing sessions for a
// fixed (t, n) group. It holds only public material: the PublicKeyPackage
// and the threshold. It never holds a signer's secret key share.
type Coordinator struct {
	pub       *frost.PublicKeyPackage
	threshold int

	sessions *sessionMap

	sweepInterval time.Duration
	sessionTTL    time.Duration
	stopSweep     chan struct{}
}

// Option configures a Coordinator at construction time.
type Option func(*Coordinator)

// WithSweepInterval overrides the default background-sweeper poll interval.
func WithSweepInterval(d time.Duration) Option {
	return func(c *Coordinator) { c.sweepInterval = d }
}

// WithSessionTTL overrides the default session age deadline, measured from
// the session's creation.
func WithSessionTTL(d time.Duration) Option {
	return func(c *Coordinator) { c.sessionTTL = d }
}

// defaultSweepInterval and defaultSessionTTL give the background sweeper
// a recommended 60-second deadline on a session's age since creation; the
// sweeper itself polls well inside that window.
const (
	defaultSweepInterval = 10 * time.Second
	defaultSessionTTL    = 60 * time.Second
)

// New creates a Coordinator for the given public key package and starts its
// background session sweeper. Callers must call Close when done to stop the
// sweeper goroutine.
func New(pub *frost.PublicKeyPackage, opts ...Option) *Coordinator {
	c := &Coordinator{
		pub:           pub,
		threshold:     pub.Threshold,
		sessions:      newSessionMap(),
		sweepInterval: defaultSweepInterval,
		sessionTTL:    defaultSessionTTL,
		stopSweep:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	go c.sweepLoop()
	return c
}

// Close stops the background sweeper. It does not touch any in-flight
// session.
func (c *Coordinator) Close() {
	close(c.stopSweep)
}

// Threshold returns the group's signing threshold t.
func (c *Coordinator) Threshold() int {
	return c.threshold
}

// PublicKeyPackage returns the group's public key material.
func (c *Coordinator) PublicKeyPackage() *frost.PublicKeyPackage {
	return c.pub
}

// CreateSession allocates a fresh SessionID for signing message and records
// its initial, empty commitment state.
func (c *Coordinator) CreateSession(message []byte) SessionID {
	id := uuid.New()
	c.sessions.store(id, newSession(id, message, time.Now()))
	logging.CoordinatorLog.Debugf("session %s created for %d-byte message", id, len(message))
	return id
}

// AddCommitment appends a signer's round-one commitment to session, after
// validating it against the session's state. The first commitment from a
// given SignerId wins; later ones are rejected with ErrDuplicateCommitment.
func (c *Coordinator) AddCommitment(session SessionID, commitment *frost.SigningCommitment) error {
	state, ok := c.sessions.load(session)
	if !ok {
		return frosterr.Wrapf(frosterr.ErrSessionNotFound, "session %s", session)
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	if state.sealed != nil {
		return frosterr.Wrapf(frosterr.ErrSessionMismatch, "session %s: signing package already issued", session)
	}
	if _, dup := state.seen[commitment.SignerID]; dup {
		return frosterr.Wrapf(frosterr.ErrDuplicateCommitment, "signer %d already committed to session %s", commitment.SignerID, session)
	}

	state.seen[commitment.SignerID] = struct{}{}
	state.commitments = append(state.commitments, commitment)
	return nil
}

// SigningPackage builds the canonical round-two input for session from the
// first t commitments received, in arrival order, sorted into the
// canonical SignerId-ascending order required by the Fiat-Shamir transcript.
// It fails with ErrInsufficientCommitments if fewer than t have arrived.
// Calling it a second time for the same session returns the same sealed
// subset, so late-arriving commitments never change an issued package.
func (c *Coordinator) SigningPackage(session SessionID) (*frost.SigningPackage, error) {
	state, ok := c.sessions.load(session)
	if !ok {
		return nil, frosterr.Wrapf(frosterr.ErrSessionNotFound, "session %s", session)
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	if state.sealed == nil {
		if len(state.commitments) < c.threshold {
			return nil, frosterr.Wrapf(
				frosterr.ErrInsufficientCommitments,
				"session %s: have %d, need %d", session, len(state.commitments), c.threshold,
			)
		}
		sealed := make([]*frost.SigningCommitment, c.threshold)
		copy(sealed, state.commitments[:c.threshold])
		state.sealed = sealed
	}

	return frost.ComputeSigningPackage(state.Message, state.sealed)
}

// Aggregate combines signature shares for session's signing package into a
// candidate group signature, after verifying each share individually so a
// single bad share cannot be blamed on the whole set. It fails with
// ErrInsufficientShares if fewer than t shares are supplied, or
// ErrInvalidShare naming the offending signer if any share fails
// per-signer verification.
func (c *Coordinator) Aggregate(pkg *frost.SigningPackage, shares []*frost.SignatureShare) (*frost.GroupSignature, error) {
	if len(shares) < c.threshold {
		return nil, frosterr.Wrapf(frosterr.ErrInsufficientShares, "have %d, need %d", len(shares), c.threshold)
	}

	for _, share := range shares {
		ok, err := frost.VerifyShare(c.pub, pkg, share)
		if err != nil {
			return nil, frosterr.Wrapf(frosterr.ErrInvalidShare, "signer %d: %v", share.SignerID, err)
		}
		if !ok {
			return nil, frosterr.Wrapf(frosterr.ErrInvalidShare, "signer %d submitted an invalid signature share", share.SignerID)
		}
	}

	sig, err := frost.Aggregate(c.pub, pkg, shares)
	if err != nil {
		return nil, frosterr.Wrapf(frosterr.ErrAggregationFailed, "%v", err)
	}

	return sig, nil
}

// Verify checks a candidate signature against the group's public key.
func (c *Coordinator) Verify(message []byte, sig *frost.GroupSignature) bool {
	return frost.Verify(c.pub, message, sig)
}

// Cancel removes session from the coordinator's map. Returns false if the
// session was already gone.
func (c *Coordinator) Cancel(session SessionID) bool {
	return c.sessions.delete(session)
}

// Remove deletes session from the map after a terminal outcome (success,
// aggregation failure, verification failure). It is equivalent to Cancel
// but named separately at call sites for clarity about why the session is
// being dropped.
func (c *Coordinator) Remove(session SessionID) {
	c.sessions.delete(session)
}

// ActiveSessions reports the number of sessions currently tracked, for the
// /health endpoint.
func (c *Coordinator) ActiveSessions() int {
	return c.sessions.len()
}

func (c *Coordinator) sweepLoop() {
	ticker := time.NewTicker(c.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopSweep:
			return
		case now := <-ticker.C:
			c.sweepExpired(now)
		}
	}
}

func (c *Coordinator) sweepExpired(now time.Time) {
	expired := c.sessions.expiredSince(now, c.sessionTTL)
	for _, id := range expired {
		if c.sessions.delete(id) {
			logging.CoordinatorLog.Warnf("session %s swept after exceeding %s age deadline", id, c.sessionTTL)
		}
	}
}

func (c *Coordinator) String() string {
	return fmt.Sprintf("coordinator(t=%d, active=%d)", c.threshold, c.ActiveSessions())
}
