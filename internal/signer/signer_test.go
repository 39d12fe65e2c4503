package signer

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/frostlink/frost/internal/frost"
	"github.com/frostlink/frost/internal/frosterr"
)

func newTestSigner(t *testing.T) (*Signer, *frost.PublicKeyPackage) {
	t.Helper()
	shares, pub, err := frost.KeyGen(3, 2)
	require.NoError(t, err)
	return New(shares[0]), pub
}

func TestCommitThenSignConsumesNonceExactlyOnce(t *testing.T) {
	shares, pub, err := frost.KeyGen(3, 2)
	require.NoError(t, err)

	a, b := New(shares[0]), New(shares[1])
	session := uuid.New()
	message := []byte("hello frost")

	commitA, err := a.Commit(session)
	require.NoError(t, err)
	commitB, err := b.Commit(session)
	require.NoError(t, err)

	pkg, err := frost.ComputeSigningPackage(message, []*frost.SigningCommitment{commitA, commitB})
	require.NoError(t, err)

	shareA, err := a.Sign(session, pkg)
	require.NoError(t, err)
	shareB, err := b.Sign(session, pkg)
	require.NoError(t, err)

	sig, err := frost.Aggregate(pub, pkg, []*frost.SignatureShare{shareA, shareB})
	require.NoError(t, err)
	require.True(t, frost.Verify(pub, message, sig))

	// The nonce was consumed by the first Sign; a second Sign for the same
	// session must fail with SessionNotFound, never reuse the nonce.
	_, err = a.Sign(session, pkg)
	require.Error(t, err)
	require.True(t, errors.Is(err, frosterr.ErrSessionNotFound))
}

func TestSignWithoutCommitFails(t *testing.T) {
	s, _ := newTestSigner(t)
	_, err := s.Sign(uuid.New(), &frost.SigningPackage{})
	require.ErrorIs(t, err, frosterr.ErrSessionNotFound)
}

func TestClearDiscardsNonceWithoutSigning(t *testing.T) {
	s, _ := newTestSigner(t)
	session := uuid.New()

	_, err := s.Commit(session)
	require.NoError(t, err)

	s.Clear(session)

	_, err = s.Sign(session, &frost.SigningPackage{})
	require.ErrorIs(t, err, frosterr.ErrSessionNotFound)
}

func TestClearOnUnknownSessionIsNoop(t *testing.T) {
	s, _ := newTestSigner(t)
	s.Clear(uuid.New())
}

func TestCommitTwiceOverwritesWithWarning(t *testing.T) {
	s, _ := newTestSigner(t)
	session := uuid.New()

	first, err := s.Commit(session)
	require.NoError(t, err)
	second, err := s.Commit(session)
	require.NoError(t, err)

	// The two commitments must differ (fresh randomness each call); only
	// the second nonce is retrievable afterward.
	require.NotEqual(t, first.Hiding.X, second.Hiding.X)

	pkg, err := frost.ComputeSigningPackage([]byte("m"), []*frost.SigningCommitment{second})
	require.NoError(t, err)
	_, err = s.Sign(session, pkg)
	require.NoError(t, err)
}

func TestNonceStoreShardingIsConsistentPerSession(t *testing.T) {
	store := newNonceStore(nonceShardCount)
	session := uuid.New()

	shardA := store.shardFor(session)
	shardB := store.shardFor(session)
	require.Same(t, shardA, shardB)
}
