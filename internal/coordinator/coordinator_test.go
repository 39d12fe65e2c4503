package coordinator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/frostlink/frost/internal/frost"
	"github.com/frostlink/frost/internal/frosterr"
	"github.com/frostlink/frost/internal/signer"
)

func newGroup(t *testing.T, n, threshold int) (*Coordinator, map[frost.SignerID]*signer.Signer) {
	t.Helper()
	shares, pub, err := frost.KeyGen(n, threshold)
	require.NoError(t, err)

	signers := make(map[frost.SignerID]*signer.Signer, n)
	for _, share := range shares {
		signers[share.ID] = signer.New(share)
	}

	c := New(pub)
	t.Cleanup(c.Close)
	return c, signers
}

func subset(all map[frost.SignerID]*signer.Signer, ids ...frost.SignerID) map[frost.SignerID]*signer.Signer {
	out := make(map[frost.SignerID]*signer.Signer, len(ids))
	for _, id := range ids {
		out[id] = all[id]
	}
	return out
}

func TestOrchestrateHappyPathAtThreshold(t *testing.T) {
	c, signers := newGroup(t, 5, 3)
	message := []byte("Hello, FROST!")

	session, sig, err := c.Orchestrate(context.Background(), subset(signers, 1, 2, 3), message)
	require.NoError(t, err)
	require.True(t, c.Verify(message, sig))
	require.Equal(t, 0, c.ActiveSessions())
	_ = session
}

func TestOrchestrateClearsNoncesForSignersOutsideSealedPackage(t *testing.T) {
	c, signers := newGroup(t, 5, 3)
	message := []byte("Hello, FROST!")

	// All 5 signers commit, but SigningPackage only ever seals the first
	// threshold (3) of arrived commitments; the remaining 2 committed
	// signers must not be left holding an unused nonce afterward.
	session, sig, err := c.Orchestrate(context.Background(), signers, message)
	require.NoError(t, err)
	require.True(t, c.Verify(message, sig))

	for id, s := range signers {
		_, err := s.Sign(session, &frost.SigningPackage{Message: message})
		require.ErrorIsf(t, err, frosterr.ErrSessionNotFound, "signer %d still holds a nonce for a completed session", id)
	}
}

func TestOrchestrateSubThresholdFails(t *testing.T) {
	c, signers := newGroup(t, 5, 3)
	message := []byte("Hello, FROST!")

	_, _, err := c.Orchestrate(context.Background(), subset(signers, 1, 2), message)
	require.Error(t, err)
	require.ErrorIs(t, err, frosterr.ErrInsufficientCommitments)
	require.Equal(t, 0, c.ActiveSessions())
}

func TestDuplicateCommitmentRejected(t *testing.T) {
	c, signers := newGroup(t, 3, 2)
	session := c.CreateSession([]byte("m"))

	commitment, err := signers[1].Commit(session)
	require.NoError(t, err)

	require.NoError(t, c.AddCommitment(session, commitment))

	second, err := signers[1].Commit(session)
	require.NoError(t, err)
	err = c.AddCommitment(session, second)
	require.ErrorIs(t, err, frosterr.ErrDuplicateCommitment)
}

func TestSigningPackageInsufficientCommitments(t *testing.T) {
	c, signers := newGroup(t, 3, 2)
	session := c.CreateSession([]byte("m"))

	commitment, err := signers[1].Commit(session)
	require.NoError(t, err)
	require.NoError(t, c.AddCommitment(session, commitment))

	_, err = c.SigningPackage(session)
	require.ErrorIs(t, err, frosterr.ErrInsufficientCommitments)
}

func TestAggregateInsufficientShares(t *testing.T) {
	c, signers := newGroup(t, 3, 2)
	session := c.CreateSession([]byte("m"))

	c1, err := signers[1].Commit(session)
	require.NoError(t, err)
	c2, err := signers[2].Commit(session)
	require.NoError(t, err)
	require.NoError(t, c.AddCommitment(session, c1))
	require.NoError(t, c.AddCommitment(session, c2))

	pkg, err := c.SigningPackage(session)
	require.NoError(t, err)

	share1, err := signers[1].Sign(session, pkg)
	require.NoError(t, err)

	_, err = c.Aggregate(pkg, []*frost.SignatureShare{share1})
	require.ErrorIs(t, err, frosterr.ErrInsufficientShares)
}

func TestSessionNotFoundOnUnknownSession(t *testing.T) {
	c, _ := newGroup(t, 3, 2)
	_, err := c.SigningPackage(SessionID{})
	require.ErrorIs(t, err, frosterr.ErrSessionNotFound)
}

func TestCancelClearsSession(t *testing.T) {
	c, signers := newGroup(t, 3, 2)
	session := c.CreateSession([]byte("m"))
	commitment, err := signers[1].Commit(session)
	require.NoError(t, err)
	require.NoError(t, c.AddCommitment(session, commitment))

	require.True(t, c.Cancel(session))
	require.False(t, c.Cancel(session))

	_, err = c.SigningPackage(session)
	require.ErrorIs(t, err, frosterr.ErrSessionNotFound)
}

func TestSweeperExpiresStaleSessions(t *testing.T) {
	c, _ := newGroup(t, 3, 2)
	c.Close() // stop the background loop; we'll drive sweepExpired manually

	session := c.CreateSession([]byte("m"))
	require.Equal(t, 1, c.ActiveSessions())

	c.sweepExpired(time.Now().Add(2 * defaultSessionTTL))
	require.Equal(t, 0, c.ActiveSessions())
	_ = session
}

func TestWrongMessageInRoundTwoFailsVerification(t *testing.T) {
	c, signers := newGroup(t, 3, 2)
	session := c.CreateSession([]byte("m1"))

	c1, err := signers[1].Commit(session)
	require.NoError(t, err)
	c2, err := signers[2].Commit(session)
	require.NoError(t, err)
	require.NoError(t, c.AddCommitment(session, c1))
	require.NoError(t, c.AddCommitment(session, c2))

	pkg, err := c.SigningPackage(session)
	require.NoError(t, err)

	// A round-two participant is handed a package over the same sealed
	// commitments but for a different message than the session was opened
	// with — a forged or mismatched client request rather than the one
	// SigningPackage sealed.
	forged, err := frost.ComputeSigningPackage([]byte("m2"), pkg.Commitments)
	require.NoError(t, err)

	share1, err := signers[1].Sign(session, forged)
	require.NoError(t, err)
	share2, err := signers[2].Sign(session, forged)
	require.NoError(t, err)

	sig, err := c.Aggregate(forged, []*frost.SignatureShare{share1, share2})
	require.NoError(t, err)

	require.False(t, c.Verify([]byte("m1"), sig), "signature for the forged message must not verify against the session's original message")
}

func TestSweepIntervalAndTTLOptions(t *testing.T) {
	shares, pub, err := frost.KeyGen(3, 2)
	require.NoError(t, err)
	_ = shares

	c := New(pub, WithSweepInterval(5*time.Millisecond), WithSessionTTL(10*time.Millisecond))
	defer c.Close()

	session := c.CreateSession([]byte("m"))
	require.Eventually(t, func() bool {
		_, ok := c.sessions.load(session)
		return !ok
	}, time.Second, 5*time.Millisecond)
}
