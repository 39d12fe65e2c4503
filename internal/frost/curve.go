package frost

import (
	"crypto/elliptic"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Bip340Curve is the secp256k1 Curve implementation used by
// Bip340Ciphersuite. It is a thin adapter over
// github.com/btcsuite/btcd/btcec/v2's KoblitzCurve, which implements the
// standard library's crypto/elliptic.Curve interface, for point addition
// and multiplication, paired with github.com/decred/dcrd/dcrec/secp256k1/v4's
// ModNScalar for reducing scalars modulo the group order before every
// scalar multiplication.
type Bip340Curve struct {
	curve  elliptic.Curve
	params *elliptic.CurveParams
}

func newBip340Curve() *Bip340Curve {
	curve := btcec.S256()
	return &Bip340Curve{
		curve:  curve,
		params: curve.Params(),
	}
}

// reduceModN reduces k modulo the curve order with big.Int's own modular
// arithmetic first, since ModNScalar.SetByteSlice truncates rather than
// reduces an over-long input, and k routinely arrives wider than 32 bytes
// (a product of two already-reduced scalars, for instance). The already-
// reduced value is then round-tripped through ModNScalar, the canonical
// scalar representation the wider secp256k1 ecosystem shares, before its
// bytes are handed to the curve.
func (bc *Bip340Curve) reduceModN(k *big.Int) []byte {
	reduced := new(big.Int).Mod(k, bc.params.N)

	buf := make([]byte, 32)
	reduced.FillBytes(buf)

	var scalar secp256k1.ModNScalar
	scalar.SetByteSlice(buf)
	out := scalar.Bytes()
	return out[:]
}

// EcBaseMul returns k*G, where G is the base point of the group.
func (bc *Bip340Curve) EcBaseMul(k *big.Int) *Point {
	x, y := bc.curve.ScalarBaseMult(bc.reduceModN(k))
	return &Point{x, y}
}

// EcMul returns k*P where P is the point provided as a parameter and k is an
// integer.
func (bc *Bip340Curve) EcMul(p *Point, k *big.Int) *Point {
	x, y := bc.curve.ScalarMult(p.X, p.Y, bc.reduceModN(k))
	return &Point{x, y}
}

// EcAdd returns the sum of two elliptic curve points.
func (bc *Bip340Curve) EcAdd(a, b *Point) *Point {
	x, y := bc.curve.Add(a.X, a.Y, b.X, b.Y)
	return &Point{x, y}
}

// EcSub returns the subtraction of two elliptic curve points.
func (bc *Bip340Curve) EcSub(a, b *Point) *Point {
	bNeg := &Point{b.X, new(big.Int).Sub(bc.params.P, b.Y)}
	return bc.EcAdd(a, bNeg)
}

// Identity returns the elliptic curve identity element.
func (bc *Bip340Curve) Identity() *Point {
	// For secp256k1 we pick a conventional representation as (0,0) in
	// cartesian coordinates. This is fine because (0,0) does not lie on the
	// secp256k1 curve.
	return &Point{big.NewInt(0), big.NewInt(0)}
}

// Order returns the order of the group produced by the curve generator.
func (bc *Bip340Curve) Order() *big.Int {
	return new(big.Int).Set(bc.params.N)
}

// FieldPrime returns the prime modulus of the curve's underlying field.
func (bc *Bip340Curve) FieldPrime() *big.Int {
	return new(big.Int).Set(bc.params.P)
}

// IsPointOnCurve validates that the point lies on the curve.
func (bc *Bip340Curve) IsPointOnCurve(p *Point) bool {
	return bc.curve.IsOnCurve(p.X, p.Y)
}

// SerializedPointLength returns the byte length of a serialized curve point
// in uncompressed form.
func (bc *Bip340Curve) SerializedPointLength() int {
	return 65
}

// SerializePoint serializes the provided elliptic curve point to bytes.
func (bc *Bip340Curve) SerializePoint(p *Point) []byte {
	return elliptic.Marshal(bc.curve, p.X, p.Y)
}

// DeserializePoint deserializes a byte slice into an elliptic curve point.
// The deserialized point must be a valid, non-identity point lying on the
// curve. Otherwise the function returns nil.
func (bc *Bip340Curve) DeserializePoint(b []byte) *Point {
	x, y := elliptic.Unmarshal(bc.curve, b)
	if x == nil || y == nil {
		return nil
	}

	point := &Point{x, y}
	if !bc.IsPointOnCurve(point) {
		return nil
	}

	return point
}
