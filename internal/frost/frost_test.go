package frost

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/frostlink/frost/internal/testutils"
)

// TestShamirSplitReconstructsUnderLagrangeInterpolation cross-checks
// testutils' independent Shamir split against this package's own
// Lagrange interpolation (deriveInterpolatingValue, the same code
// SignShare and VerifyShare use to weight shares): splitting a known
// secret and reconstructing it from an arbitrary threshold-sized subset
// of the resulting shares must recover the original secret exactly.
func TestShamirSplitReconstructsUnderLagrangeInterpolation(t *testing.T) {
	const n, threshold = 7, 4
	order := ciphersuite.Curve().Order()

	secret, err := rand.Int(rand.Reader, order)
	if err != nil {
		t.Fatalf("sampling secret failed: %v", err)
	}

	shares := testutils.ShamirSplit(secret, n, threshold, order)

	participants := make([]SignerID, threshold)
	for i := 0; i < threshold; i++ {
		participants[i] = SignerID(i + 1)
	}

	reconstructed := new(big.Int)
	for _, id := range participants {
		lambda, err := deriveInterpolatingValue(order, id, participants)
		if err != nil {
			t.Fatalf("deriveInterpolatingValue failed for signer %d: %v", id, err)
		}
		term := new(big.Int).Mul(shares[int(id)-1], lambda)
		reconstructed.Add(reconstructed, term)
	}
	reconstructed.Mod(reconstructed, order)

	testutils.AssertBigIntsEqual(t, "secret reconstructed from a threshold subset", secret, reconstructed)
}

func TestKeyGenRejectsInvalidThreshold(t *testing.T) {
	if _, _, err := KeyGen(3, 0); err == nil {
		t.Fatalf("expected error for threshold 0")
	}
	if _, _, err := KeyGen(3, 4); err == nil {
		t.Fatalf("expected error for threshold exceeding group size")
	}
}

func TestKeyGenProducesEvenYGroupKey(t *testing.T) {
	_, pub, err := KeyGen(5, 3)
	if err != nil {
		t.Fatalf("KeyGen failed: %v", err)
	}
	if pub.GroupPublicKey.Y.Bit(0) != 0 {
		t.Fatalf("group public key must have an even Y coordinate for BIP-340 compatibility")
	}
}

// signWithSubset runs commit/sign/aggregate for exactly the given subset of
// shares and returns the resulting group signature.
func signWithSubset(t *testing.T, pub *PublicKeyPackage, signing []*KeyShare, message []byte) *GroupSignature {
	t.Helper()

	nonces := make(map[SignerID]*SigningNonces, len(signing))
	commitments := make([]*SigningCommitment, 0, len(signing))
	for _, s := range signing {
		n, c, err := Commit(rand.Reader, s)
		if err != nil {
			t.Fatalf("Commit failed for signer %d: %v", s.ID, err)
		}
		nonces[s.ID] = n
		commitments = append(commitments, c)
	}

	pkg, err := ComputeSigningPackage(message, commitments)
	if err != nil {
		t.Fatalf("ComputeSigningPackage failed: %v", err)
	}

	sigShares := make([]*SignatureShare, 0, len(signing))
	for _, s := range signing {
		share, err := SignShare(s, nonces[s.ID], pkg)
		if err != nil {
			t.Fatalf("SignShare failed for signer %d: %v", s.ID, err)
		}
		sigShares = append(sigShares, share)
	}

	sig, err := Aggregate(pub, pkg, sigShares)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	return sig
}

func TestSignRoundTripAtThreshold(t *testing.T) {
	for _, tc := range []struct{ n, threshold int }{
		{3, 2},
		{5, 3},
		{5, 5},
		{8, 5},
		{12, 7},
		{16, 9},
		{16, 16},
	} {
		tc := tc
		t.Run("", func(t *testing.T) {
			shares, pub, err := KeyGen(tc.n, tc.threshold)
			if err != nil {
				t.Fatalf("KeyGen failed: %v", err)
			}

			message := []byte("roast coordinator: round trip message")

			sig := signWithSubset(t, pub, shares[:tc.threshold], message)

			if !Verify(pub, message, sig) {
				t.Fatalf("signature failed to verify for n=%d t=%d", tc.n, tc.threshold)
			}

			if Verify(pub, []byte("a different message"), sig) {
				t.Fatalf("signature verified against the wrong message")
			}
		})
	}
}

// TestSignRoundTripSubsetIndistinguishable checks that two different
// size-threshold subsets of the same (n, t) group both produce signatures
// that verify under the one group public key: a verifier has no way to
// tell which subset signed.
func TestSignRoundTripSubsetIndistinguishable(t *testing.T) {
	const n, threshold = 8, 5
	shares, pub, err := KeyGen(n, threshold)
	if err != nil {
		t.Fatalf("KeyGen failed: %v", err)
	}

	message := []byte("either subset should be able to produce this signature")

	firstSubset := shares[:threshold]
	lastSubset := shares[len(shares)-threshold:]

	sigFromFirst := signWithSubset(t, pub, firstSubset, message)
	sigFromLast := signWithSubset(t, pub, lastSubset, message)

	if !Verify(pub, message, sigFromFirst) {
		t.Fatalf("signature from the first subset failed to verify")
	}
	if !Verify(pub, message, sigFromLast) {
		t.Fatalf("signature from the last subset failed to verify")
	}
}

func TestVerifyShareDetectsGoodAndBadShares(t *testing.T) {
	shares, pub, err := KeyGen(4, 3)
	if err != nil {
		t.Fatalf("KeyGen failed: %v", err)
	}

	message := []byte("verify each share before aggregating")
	signing := shares[:3]

	nonces := make(map[SignerID]*SigningNonces, len(signing))
	var commitments []*SigningCommitment
	for _, s := range signing {
		n, c, err := Commit(rand.Reader, s)
		if err != nil {
			t.Fatalf("Commit failed: %v", err)
		}
		nonces[s.ID] = n
		commitments = append(commitments, c)
	}

	pkg, err := ComputeSigningPackage(message, commitments)
	if err != nil {
		t.Fatalf("ComputeSigningPackage failed: %v", err)
	}

	for _, s := range signing {
		share, err := SignShare(s, nonces[s.ID], pkg)
		if err != nil {
			t.Fatalf("SignShare failed: %v", err)
		}
		ok, err := VerifyShare(pub, pkg, share)
		if err != nil {
			t.Fatalf("VerifyShare errored for an honest share: %v", err)
		}
		if !ok {
			t.Fatalf("VerifyShare rejected an honest share from signer %d", s.ID)
		}
	}

	forged := &SignatureShare{SignerID: signing[0].ID, Share: big.NewInt(1)}
	ok, err := VerifyShare(pub, pkg, forged)
	if err != nil {
		t.Fatalf("VerifyShare errored for a forged share: %v", err)
	}
	if ok {
		t.Fatalf("VerifyShare accepted a forged share")
	}
}

func TestSignShareRejectsForeignCommitment(t *testing.T) {
	shares, _, err := KeyGen(3, 2)
	if err != nil {
		t.Fatalf("KeyGen failed: %v", err)
	}

	message := []byte("m")
	_, commitA, err := Commit(rand.Reader, shares[0])
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	_, commitB, err := Commit(rand.Reader, shares[1])
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	pkg, err := ComputeSigningPackage(message, []*SigningCommitment{commitA, commitB})
	if err != nil {
		t.Fatalf("ComputeSigningPackage failed: %v", err)
	}

	// shares[2] never contributed a commitment to this package.
	nonces, _, err := Commit(rand.Reader, shares[2])
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if _, err := SignShare(shares[2], nonces, pkg); err == nil {
		t.Fatalf("expected SignShare to reject a signer absent from the signing package")
	}
}

func TestGroupSignatureMarshalRoundTrip(t *testing.T) {
	shares, pub, err := KeyGen(3, 2)
	if err != nil {
		t.Fatalf("KeyGen failed: %v", err)
	}

	message := []byte("serialize me")
	var commitments []*SigningCommitment
	nonces := make(map[SignerID]*SigningNonces)
	for _, s := range shares[:2] {
		n, c, err := Commit(rand.Reader, s)
		if err != nil {
			t.Fatalf("Commit failed: %v", err)
		}
		nonces[s.ID] = n
		commitments = append(commitments, c)
	}

	pkg, err := ComputeSigningPackage(message, commitments)
	if err != nil {
		t.Fatalf("ComputeSigningPackage failed: %v", err)
	}

	var sigShares []*SignatureShare
	for _, s := range shares[:2] {
		share, err := SignShare(s, nonces[s.ID], pkg)
		if err != nil {
			t.Fatalf("SignShare failed: %v", err)
		}
		sigShares = append(sigShares, share)
	}

	sig, err := Aggregate(pub, pkg, sigShares)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	encoded, err := sig.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}

	decoded := &GroupSignature{}
	if err := decoded.UnmarshalBinary(encoded); err != nil {
		t.Fatalf("UnmarshalBinary failed: %v", err)
	}

	testutils.AssertBigIntsEqual(t, "decoded R.X", sig.R.X, decoded.R.X)
	testutils.AssertBigIntsEqual(t, "decoded R.Y", sig.R.Y, decoded.R.Y)
	testutils.AssertBigIntsEqual(t, "decoded Z", sig.Z, decoded.Z)

	if !Verify(pub, message, decoded) {
		t.Fatalf("decoded signature failed to verify")
	}
}
