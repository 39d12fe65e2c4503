package frost

import (
	"fmt"
	"math/big"
)

// Signature is a raw [BIP-340] Schnorr signature, (R, z).
type Signature struct {
	R *Point
	Z *big.Int
}

// Bip340Ciphersuite is the [BIP-340] implementation of the [FROST]
// ciphersuite: secp256k1 as the prime-order group, and the BIP-340 tagged
// hash construction for H1..H5.
type Bip340Ciphersuite struct {
	Bip340Hash
}

// NewBip340Ciphersuite creates a Bip340Ciphersuite ready to be used for the
// [FROST] protocol execution.
func NewBip340Ciphersuite() *Bip340Ciphersuite {
	return &Bip340Ciphersuite{Bip340Hash{curve: newBip340Curve()}}
}

// Curve returns the secp256k1 curve implementation used by this ciphersuite.
func (b *Bip340Ciphersuite) Curve() Curve {
	return b.curve
}

// EncodePoint encodes the given point to a byte slice the way [BIP-340]
// needs for challenge computation: only the X coordinate, since [BIP-340]
// treats public keys and nonces as X-only values with an implicit even Y.
//
// This differs from Curve.SerializePoint, which serializes both coordinates
// so that points can be exchanged between parties without recomputing Y.
func (b *Bip340Ciphersuite) EncodePoint(point *Point) []byte {
	xMod := new(big.Int).Mod(point.X, b.curve.FieldPrime())
	xbs := make([]byte, 32)
	xMod.FillBytes(xbs)
	return xbs
}

// VerifySignature verifies the provided [BIP-340] signature for the message
// against the group public key. It implements Verify(pk, m, sig) from
// [BIP-340], accepting the public key as a curve point and the signature as
// the structure produced by the aggregate function rather than a 64-byte
// wire encoding, since no party in this package ever needs the wire form.
func (b *Bip340Ciphersuite) VerifySignature(
	signature *Signature,
	publicKey *Point,
	message []byte,
) (bool, error) {
	P := publicKey

	// "Note that the correctness of verification relies on the fact that
	// lift_x always returns a point with an even Y coordinate... We avoid
	// these problems by treating just the X coordinate as public key." As
	// elsewhere in this package, the Y coordinate is carried alongside X to
	// save a lift_x call; it is still re-derived below to match [BIP-340]
	// exactly.
	if !b.curve.IsPointOnCurve(P) {
		return false, fmt.Errorf("public key is not a valid curve point")
	}

	liftedP, err := b.liftX(new(big.Int).SetBytes(b.EncodePoint(P)))
	if err != nil {
		return false, fmt.Errorf("liftX(publicKey) failed: %w", err)
	}

	r := signature.R.X
	if r.Cmp(b.curve.FieldPrime()) != -1 {
		return false, fmt.Errorf("r >= field prime")
	}

	s := signature.Z
	if s.Cmp(b.curve.Order()) != -1 {
		return false, fmt.Errorf("s >= curve order")
	}

	// e = int(hash_BIP0340/challenge(bytes(r) || bytes(P) || m)) mod n
	eHash := b.H2(b.EncodePoint(signature.R), b.EncodePoint(liftedP), message)
	e := new(big.Int).Mod(eHash, b.curve.Order())

	// R = s*G - e*P
	R := b.curve.EcSub(
		b.curve.EcBaseMul(s),
		b.curve.EcMul(liftedP, e),
	)

	if !b.curve.IsPointOnCurve(R) {
		return false, fmt.Errorf("computed R is not a valid curve point")
	}
	if R.Y.Bit(0) != 0 {
		return false, fmt.Errorf("computed R.y is odd")
	}
	if R.X.Cmp(r) != 0 {
		return false, fmt.Errorf("computed R.x does not match signature r")
	}

	return true, nil
}

// liftX implements lift_x(x) from [BIP-340]: given a 256-bit integer x,
// returns the point P for which x(P) = x and P has an even Y coordinate, or
// fails if x >= field prime or no such point exists.
func (b *Bip340Ciphersuite) liftX(x *big.Int) (*Point, error) {
	p := b.curve.FieldPrime()
	if x.Cmp(p) != -1 {
		return nil, fmt.Errorf("x exceeds field size")
	}

	// c = x^3 + 7 mod p
	c := new(big.Int).Exp(x, big.NewInt(3), p)
	c.Add(c, big.NewInt(7))
	c.Mod(c, p)

	// y = c^((p+1)/4) mod p
	e := new(big.Int).Add(p, big.NewInt(1))
	e.Div(e, big.NewInt(4))
	y := new(big.Int).Exp(c, e, p)

	y2 := new(big.Int).Exp(y, big.NewInt(2), p)
	if c.Cmp(y2) != 0 {
		return nil, fmt.Errorf("no curve point for given x")
	}

	if y.Bit(0) != 0 {
		y.Sub(p, y)
	}
	return &Point{x, y}, nil
}
