package store

import (
	"crypto/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/frostlink/frost/internal/frost"
	"github.com/frostlink/frost/internal/frosterr"
)

func TestShareAndPubkeyRoundTrip(t *testing.T) {
	shares, pub, err := frost.KeyGen(3, 2)
	require.NoError(t, err)

	s, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.WritePubkey(pub))
	loadedPub, err := s.ReadPubkey()
	require.NoError(t, err)
	require.Equal(t, pub.Threshold, loadedPub.Threshold)
	require.Equal(t, pub.GroupPublicKey.X, loadedPub.GroupPublicKey.X)

	for _, share := range shares {
		require.NoError(t, s.WriteShare(share))
	}
	loaded, err := s.ReadShare(shares[0].ID)
	require.NoError(t, err)
	require.Equal(t, shares[0].Secret, loaded.Secret)
	require.Equal(t, shares[0].ID, loaded.ID)
}

func TestCommitmentSigningPackageAndShareRoundTrip(t *testing.T) {
	shares, _, err := frost.KeyGen(3, 2)
	require.NoError(t, err)

	s, err := New(t.TempDir())
	require.NoError(t, err)

	session := "11111111-1111-1111-1111-111111111111"
	message := []byte("round trip message")

	var commitments []*frost.SigningCommitment
	for _, share := range shares[:2] {
		_, commitment, err := frost.Commit(rand.Reader, share)
		require.NoError(t, err)
		require.NoError(t, s.WriteCommitment(session, message, commitment))
		commitments = append(commitments, commitment)
	}

	loadedC, err := s.ReadCommitment(commitments[0].SignerID)
	require.NoError(t, err)
	require.Equal(t, commitments[0].SignerID, loadedC.SignerID)

	pkg, err := frost.ComputeSigningPackage(message, commitments)
	require.NoError(t, err)
	require.NoError(t, s.WriteSigningPackage(session, pkg))

	loadedSession, loadedPkg, err := s.ReadSigningPackage()
	require.NoError(t, err)
	require.Equal(t, session, loadedSession)
	require.Len(t, loadedPkg.Commitments, len(pkg.Commitments))
}

func TestUnsafeNonceFileGate(t *testing.T) {
	shares, _, err := frost.KeyGen(2, 2)
	require.NoError(t, err)

	s, err := New(t.TempDir())
	require.NoError(t, err)

	session := uuid.New()
	nonces, _, err := frost.Commit(rand.Reader, shares[0])
	require.NoError(t, err)

	err = s.WriteUnsafeNonceFile(false, session, shares[0].ID, nonces)
	require.ErrorIs(t, err, frosterr.ErrUnsafeOperationDisabled)

	require.NoError(t, s.WriteUnsafeNonceFile(true, session, shares[0].ID, nonces))

	loaded, err := s.ReadUnsafeNonceFile(session, shares[0].ID)
	require.NoError(t, err)
	require.Equal(t, nonces.Hiding, loaded.Hiding)
	require.Equal(t, nonces.Binding, loaded.Binding)

	require.NoError(t, s.RemoveUnsafeNonceFile(session, shares[0].ID))
	require.NoError(t, s.RemoveUnsafeNonceFile(session, shares[0].ID)) // absence is not an error
}
