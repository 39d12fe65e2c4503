// Package signer implements the per-signer actor of the threshold-signing
// protocol: it holds one key share, generates and stores round-one
// nonces, and consumes them exactly once in round two. It is written as
// a long-lived actor with a session-keyed nonce store rather than a
// single in-process struct of round functions, so one process can drive
// many concurrent signing sessions safely.
package signer

import (
	"crypto/rand"
	"fmt"

	"github.com/google/uuid"

	"github.com/frostlink/frost/internal/frost"
	"github.com/frostlink/frost/internal/frosterr"
	"github.com/frostlink/frost/internal/logging"
)

// nonceShardCount is the number of independent locks backing the nonce
// store. A sharded concurrent map fits well here: the hot path is one
// remove-return per signing operation with no cross-session contention,
// so a small fixed shard count is enough.
const nonceShardCount = 16

// Signer holds one participant's key share and the nonces it has generated
// for in-flight sessions. A Signer is safe for concurrent use by multiple
// goroutines: the id and key share are immutable, and all mutable state
// lives in the sharded nonce store.
type Signer struct {
	ID       frost.SignerID
	keyShare *frost.KeyShare
	nonces   *nonceStore
}

// New creates a Signer bound to the given key share. The share's ID becomes
// the signer's identity for the lifetime of the process.
func New(keyShare *frost.KeyShare) *Signer {
	return &Signer{
		ID:       keyShare.ID,
		keyShare: keyShare,
		nonces:   newNonceStore(nonceShardCount),
	}
}

// Commit implements the signer state machine's ∅ --commit--> Committed
// transition: it generates a fresh nonce pair and its public commitment,
// then stores the nonce under session. If a nonce already exists for this
// session — an anomaly, since commit should be called at most once per
// session — the old nonce is overwritten and a warning is logged:
// silently discarding it would hide the fact that a stale nonce can
// never be signed with again.
func (s *Signer) Commit(session uuid.UUID) (*frost.SigningCommitment, error) {
	nonces, commitment, err := frost.Commit(rand.Reader, s.keyShare)
	if err != nil {
		return nil, frosterr.Wrapf(frosterr.ErrPrimitiveFailure, "signer %d: commit: %v", s.ID, err)
	}

	if replaced := s.nonces.insert(session, nonces); replaced {
		logging.SignerLog.Warnf(
			"signer %d: overwriting existing nonce for session %s; the prior "+
				"nonce can never be used to sign",
			s.ID, session,
		)
	}

	return commitment, nil
}

// Sign implements the signer state machine's Committed --sign--> ∅
// transition: it atomically removes the nonce stored for session — the
// single linearization point that makes nonce reuse structurally
// impossible — and uses it exactly once to produce a signature share.
//
// If no nonce is on file for session, Sign fails with ErrSessionNotFound:
// either commit was never called, or a prior Sign (or Clear) already
// consumed it. There is no retry path; a failed Sign that has already
// removed the nonce leaves the session dead.
func (s *Signer) Sign(session uuid.UUID, pkg *frost.SigningPackage) (*frost.SignatureShare, error) {
	nonces, ok := s.nonces.removeReturning(session)
	if !ok {
		return nil, frosterr.Wrapf(frosterr.ErrSessionNotFound, "signer %d: no nonce for session %s", s.ID, session)
	}
	defer nonces.Zeroize()

	share, err := frost.SignShare(s.keyShare, nonces, pkg)
	if err != nil {
		return nil, frosterr.Wrapf(frosterr.ErrInvalidSigningPackage, "signer %d: %v", s.ID, err)
	}

	return share, nil
}

// Clear implements the signer state machine's Committed --clear--> ∅
// transition: it discards any nonce stored for session without using it,
// for coordinator-driven cancellation. Clearing a session with no stored
// nonce is a no-op.
func (s *Signer) Clear(session uuid.UUID) {
	if nonces, ok := s.nonces.removeReturning(session); ok {
		nonces.Zeroize()
	}
}

// VerificationShare returns the public commitment other parties use to
// verify this signer's signature shares, as published in the
// PublicKeyPackage produced by KeyGen.
func (s *Signer) VerificationShare() *frost.Point {
	return s.keyShare.VerificationShare
}

func (s *Signer) String() string {
	return fmt.Sprintf("signer(%d)", s.ID)
}
