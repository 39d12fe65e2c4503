// Package frost implements the cryptographic core of the [FROST] threshold
// signing protocol, specialized to the [BIP-340] ciphersuite over secp256k1.
//
// Everything above this package — the signer actor, the coordinator, the
// HTTP and CLI surfaces — treats the six entry points (KeyGen, Commit,
// ComputeSigningPackage, SignShare, Aggregate, Verify) as an opaque
// cryptographic primitive boundary and never reaches past it into curve
// arithmetic.
//
// [FROST]
//
//	Connolly, D., Komlo, C., Goldberg, I., and C. A. Wood, "Two-Round
//	Threshold Schnorr Signatures with FROST", Work in Progress, Internet-Draft,
//	draft-irtf-cfrg-frost-15, 5 December 2023,
//	<https://datatracker.ietf.org/doc/draft-irtf-cfrg-frost/15/>.
//
// [BIP-340]
//
//	Wuille, P., Nick, J., and Ruffing, T, "Schnorr Signatures for secp256k1",
//	19 January 2020,
//	<https://github.com/bitcoin/bips/blob/master/bip-0340.mediawiki>.
package frost

import "math/big"

// Ciphersuite abstracts out the particular ciphersuite implementation used
// for the [FROST] protocol execution. A [FROST] ciphersuite must specify the
// underlying prime-order group details and cryptographic hash functions.
type Ciphersuite interface {
	Hashing
	Curve() Curve
}

// Hashing abstracts out the hash functions specific to the ciphersuite used.
//
// [FROST] requires the use of a cryptographically secure hash function,
// generically written as H. Using H, [FROST] introduces distinct
// domain-separated hashes, H1, H2, H3, H4, and H5.
type Hashing interface {
	H1(m []byte) *big.Int
	H2(m []byte, ms ...[]byte) *big.Int
	H3(m []byte, ms ...[]byte) *big.Int
	H4(m []byte) []byte
	H5(m []byte) []byte
}

// Curve abstracts out the elliptic curve operations a [FROST] ciphersuite
// needs. The concrete implementation used throughout this package,
// Bip340Curve, is backed by github.com/decred/dcrd/dcrec/secp256k1/v4 via
// github.com/btcsuite/btcd/btcec/v2.
type Curve interface {
	EcBaseMul(k *big.Int) *Point
	EcMul(p *Point, k *big.Int) *Point
	EcAdd(a, b *Point) *Point
	EcSub(a, b *Point) *Point
	Identity() *Point
	Order() *big.Int
	IsPointOnCurve(p *Point) bool
	SerializedPointLength() int
	SerializePoint(p *Point) []byte
	DeserializePoint(b []byte) *Point
}

// Point represents a valid point on the Curve.
type Point struct {
	X *big.Int
	Y *big.Int
}

// String renders the point as a short hex summary, useful in error messages.
func (p *Point) String() string {
	if p == nil {
		return "<nil point>"
	}
	return "(" + p.X.Text(16) + ", " + p.Y.Text(16) + ")"
}
