package frost

import (
	"encoding/binary"
	"fmt"
	"math/big"
)

// SignerID is the small integer identifier FROST calls a NonZeroScalar
// identifier. Valid range is [1, n] for an (t, n) threshold policy.
type SignerID uint32

// KeyShare is the secret share held by a single signer, plus enough
// auxiliary data to build a signing key package. It is produced once by
// KeyGen and is immutable over the signer's lifetime.
type KeyShare struct {
	ID                 SignerID
	Secret             *big.Int
	GroupPublicKey     *Point
	VerificationShare  *Point
	Threshold          int
	MaxSigners         int
}

// PublicKeyPackage is the group verifying key plus per-signer public
// commitments. It is immutable and may be published freely.
type PublicKeyPackage struct {
	GroupPublicKey     *Point
	VerificationShares map[SignerID]*Point
	Threshold          int
	MaxSigners         int
}

// SigningNonces are the secret counterpart to a SigningCommitment: two
// random scalars produced by Commit. They must never cross a process
// boundary in production and must be consumed exactly once by SignShare.
type SigningNonces struct {
	Hiding  *big.Int
	Binding *big.Int
}

// Zeroize overwrites the nonce scalars in place. Go's garbage collector
// offers no hard guarantee the old backing array is unreachable, but this
// at least ensures the *SigningNonces value itself cannot be used again to
// derive the same nonce.
func (n *SigningNonces) Zeroize() {
	if n == nil {
		return
	}
	if n.Hiding != nil {
		n.Hiding.SetInt64(0)
	}
	if n.Binding != nil {
		n.Binding.SetInt64(0)
	}
}

// SigningCommitment is the public output of round one for one signer: a
// pair of elliptic curve points (hiding and binding commitments). It is
// freely transmissible.
type SigningCommitment struct {
	SignerID SignerID
	Hiding   *Point
	Binding  *Point
}

// SigningPackage is the canonical round-two input: an ordered set of
// participating signers' commitments, plus the message being signed. It is
// built deterministically from the received commitments and is identical
// across all signers of one session.
type SigningPackage struct {
	Message     []byte
	Commitments []*SigningCommitment
}

// SignerIDs returns the signer identifiers present in the package, in the
// order of its commitments (ascending for a package built by
// ComputeSigningPackage).
func (p *SigningPackage) SignerIDs() []SignerID {
	ids := make([]SignerID, len(p.Commitments))
	for i, c := range p.Commitments {
		ids[i] = c.SignerID
	}
	return ids
}

// SignatureShare is a single signer's scalar contribution to the group
// signature.
type SignatureShare struct {
	SignerID SignerID
	Share    *big.Int
}

// GroupSignature is a BIP-340 Schnorr signature (R, z), verifiable under the
// group verifying key.
type GroupSignature struct {
	R *Point
	Z *big.Int
}

// MarshalBinary encodes the signature as R.X || R.Y || Z, each a 32-byte
// big-endian integer, so it can be hex-encoded by the CLI file store and the
// HTTP API.
func (s *GroupSignature) MarshalBinary() ([]byte, error) {
	if s == nil || s.R == nil || s.Z == nil {
		return nil, fmt.Errorf("frost: cannot marshal incomplete signature")
	}
	buf := make([]byte, 96)
	s.R.X.FillBytes(buf[0:32])
	s.R.Y.FillBytes(buf[32:64])
	s.Z.FillBytes(buf[64:96])
	return buf, nil
}

// UnmarshalBinary decodes a signature produced by MarshalBinary.
func (s *GroupSignature) UnmarshalBinary(b []byte) error {
	if len(b) != 96 {
		return fmt.Errorf("frost: signature must be 96 bytes, got %d", len(b))
	}
	s.R = &Point{
		X: new(big.Int).SetBytes(b[0:32]),
		Y: new(big.Int).SetBytes(b[32:64]),
	}
	s.Z = new(big.Int).SetBytes(b[64:96])
	return nil
}

func signerIDBytes(id SignerID) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}
