package frost

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// ciphersuite is the single, package-wide BIP-340-over-secp256k1 ciphersuite
// used by every function below. Every caller above this package treats
// KeyGen/Commit/ComputeSigningPackage/SignShare/Aggregate/Verify as the
// opaque cryptographic primitive boundary; none of them ever see a
// Ciphersuite, Curve, or Point value.
var ciphersuite = NewBip340Ciphersuite()

// KeyGen performs a trusted-dealer Shamir secret split producing n key
// shares for an (t, n) threshold policy. Key generation is the one piece
// of the protocol that stays out of the interactive flow: the system
// assumes a trusted dealer has produced the key shares ahead of time.
//
// Generalized from a hardcoded big.Int curve implementation to the Curve
// abstraction used throughout this package.
func KeyGen(n, t int) ([]*KeyShare, *PublicKeyPackage, error) {
	if t < 1 || t > n {
		return nil, nil, fmt.Errorf("frost: invalid threshold policy (t=%d, n=%d)", t, n)
	}
	if n < 1 {
		return nil, nil, fmt.Errorf("frost: max signers must be positive, got %d", n)
	}

	curve := ciphersuite.Curve()
	order := curve.Order()

	secret, err := rand.Int(rand.Reader, order)
	if err != nil {
		return nil, nil, fmt.Errorf("frost: sampling group secret: %w", err)
	}

	coefficients, err := generatePolynomial(secret, t, order)
	if err != nil {
		return nil, nil, err
	}

	groupPublicKey := curve.EcBaseMul(coefficients[0])

	// [BIP-340] x-only public keys assume an even Y coordinate. Negating
	// the whole polynomial (every coefficient, including the constant term)
	// yields an equally valid secret sharing whose constant term is the
	// negated secret, and every downstream share negates symmetrically, so
	// this is transparent to participants: it must simply happen before any
	// shares are derived.
	if groupPublicKey.Y.Bit(0) != 0 {
		for _, c := range coefficients {
			c.Sub(order, c)
			c.Mod(c, order)
		}
		groupPublicKey = curve.EcBaseMul(coefficients[0])
	}

	shares := make([]*KeyShare, n)
	verificationShares := make(map[SignerID]*Point, n)

	for i := 0; i < n; i++ {
		id := SignerID(i + 1)
		secretShare := evaluatePolynomial(coefficients, int64(id), order)
		publicShare := curve.EcBaseMul(secretShare)

		shares[i] = &KeyShare{
			ID:                id,
			Secret:            secretShare,
			GroupPublicKey:    groupPublicKey,
			VerificationShare: publicShare,
			Threshold:         t,
			MaxSigners:        n,
		}
		verificationShares[id] = publicShare
	}

	pub := &PublicKeyPackage{
		GroupPublicKey:     groupPublicKey,
		VerificationShares: verificationShares,
		Threshold:          t,
		MaxSigners:         n,
	}

	return shares, pub, nil
}

func generatePolynomial(secret *big.Int, threshold int, order *big.Int) ([]*big.Int, error) {
	coefficients := make([]*big.Int, threshold)
	coefficients[0] = secret
	for i := 1; i < threshold; i++ {
		c, err := rand.Int(rand.Reader, order)
		if err != nil {
			return nil, fmt.Errorf("frost: sampling polynomial coefficient: %w", err)
		}
		coefficients[i] = c
	}
	return coefficients, nil
}

func evaluatePolynomial(coefficients []*big.Int, x int64, order *big.Int) *big.Int {
	result := new(big.Int)
	bigX := big.NewInt(x)

	for i, c := range coefficients {
		term := new(big.Int).Exp(bigX, big.NewInt(int64(i)), order)
		term.Mul(term, c)
		result.Add(result, term)
	}

	return result.Mod(result, order)
}

// Commit implements Round One - Commitment from [FROST] section 5.1: it
// generates a fresh pair of nonces and their public commitments for one
// signer.
func Commit(rng io.Reader, share *KeyShare) (*SigningNonces, *SigningCommitment, error) {
	if rng == nil {
		rng = rand.Reader
	}

	hidingNonce, err := generateNonce(rng, share.Secret)
	if err != nil {
		return nil, nil, fmt.Errorf("frost: hiding nonce generation failed: %w", err)
	}
	bindingNonce, err := generateNonce(rng, share.Secret)
	if err != nil {
		return nil, nil, fmt.Errorf("frost: binding nonce generation failed: %w", err)
	}

	curve := ciphersuite.Curve()
	hidingCommitment := curve.EcBaseMul(hidingNonce)
	bindingCommitment := curve.EcBaseMul(bindingNonce)

	nonces := &SigningNonces{Hiding: hidingNonce, Binding: bindingNonce}
	commitment := &SigningCommitment{
		SignerID: share.ID,
		Hiding:   hidingCommitment,
		Binding:  bindingCommitment,
	}

	return nonces, commitment, nil
}

func generateNonce(rng io.Reader, secret *big.Int) (*big.Int, error) {
	b := make([]byte, 32)
	if _, err := io.ReadFull(rng, b); err != nil {
		return nil, err
	}
	// nonce = H3(random_bytes || secret_enc), salting randomness with the
	// secret share as [FROST] section 5.1 requires.
	return ciphersuite.H3(b, secret.Bytes()), nil
}

// ComputeSigningPackage builds the canonical round-two input from a set of
// received commitments, sorted ascending by SignerID as [FROST] requires.
// It validates the commitment list structurally but performs no
// session/threshold bookkeeping — that belongs to the coordinator package.
func ComputeSigningPackage(message []byte, commitments []*SigningCommitment) (*SigningPackage, error) {
	if _, err := validateCommitments(ciphersuite.Curve(), commitments, 0); err != nil {
		return nil, fmt.Errorf("frost: invalid commitment set: %w", err)
	}

	return &SigningPackage{
		Message:     message,
		Commitments: sortedCommitments(commitments),
	}, nil
}

// SignShare implements Round Two - Signature Share Generation from [FROST]
// section 5.2 for one signer, adapted to recompute the BIP-340 x-only
// challenge (see the note on computeChallengeBip340) so that signature
// shares aggregate into a signature verifiable by VerifySignature.
func SignShare(share *KeyShare, nonces *SigningNonces, pkg *SigningPackage) (*SignatureShare, error) {
	curve := ciphersuite.Curve()

	participants, err := validateCommitments(curve, pkg.Commitments, share.ID)
	if err != nil {
		return nil, fmt.Errorf("frost: invalid signing package: %w", err)
	}

	factors := computeBindingFactors(ciphersuite, share.GroupPublicKey, pkg.Message, pkg.Commitments)
	bindingFactor := factors[share.ID]

	groupCommitment := computeGroupCommitment(curve, pkg.Commitments, factors)

	lambda, err := deriveInterpolatingValue(curve.Order(), share.ID, participants)
	if err != nil {
		return nil, fmt.Errorf("frost: computing interpolating value: %w", err)
	}

	challenge, negateNonce := computeChallengeBip340(curve, pkg.Message, groupCommitment, share.GroupPublicKey)

	hidingNonce := nonces.Hiding
	bindingNonce := nonces.Binding
	if negateNonce {
		order := curve.Order()
		hidingNonce = new(big.Int).Sub(order, hidingNonce)
		hidingNonce.Mod(hidingNonce, order)
		bindingNonce = new(big.Int).Sub(order, bindingNonce)
		bindingNonce.Mod(bindingNonce, order)
	}

	order := curve.Order()
	bnbf := new(big.Int).Mul(bindingNonce, bindingFactor)
	lski := new(big.Int).Mul(lambda, share.Secret)
	lskic := new(big.Int).Mul(lski, challenge)

	sigShare := new(big.Int).Add(hidingNonce, bnbf)
	sigShare.Add(sigShare, lskic)
	sigShare.Mod(sigShare, order)

	return &SignatureShare{SignerID: share.ID, Share: sigShare}, nil
}

// computeChallengeBip340 computes the Fiat-Shamir challenge exactly the way
// VerifySignature will recompute it: from the X-only encoding of the group
// commitment and group public key, tagged "BIP0340/challenge". It also
// reports whether the group commitment's Y coordinate is odd, in which case
// every signer must negate their nonce contribution so the *published*
// signature's R (with Y forced even by Aggregate) still satisfies
// z*G = R + e*P.
//
// Computing this challenge with the generic Curve.SerializePoint (both
// coordinates) would not match what VerifySignature recomputes (X-only,
// BIP-340 tagged) — signatures produced that way would never verify.
// This function keeps signing and verification hashing identical bytes.
func computeChallengeBip340(curve Curve, message []byte, groupCommitment, groupPublicKey *Point) (*big.Int, bool) {
	negate := groupCommitment.Y.Bit(0) != 0

	encode := func(p *Point) []byte {
		xMod := new(big.Int).Mod(p.X, ciphersuite.curve.FieldPrime())
		xb := make([]byte, 32)
		xMod.FillBytes(xb)
		return xb
	}

	e := ciphersuite.H2(encode(groupCommitment), encode(groupPublicKey), message)
	return e.Mod(e, curve.Order()), negate
}

// Aggregate implements Signature Share Aggregation from [FROST] section 5.3.
// As [FROST] notes, the signature produced here may not be valid if
// malicious signers contributed bad shares; callers must still run Verify.
func Aggregate(pub *PublicKeyPackage, pkg *SigningPackage, shares []*SignatureShare) (*GroupSignature, error) {
	curve := ciphersuite.Curve()

	if _, err := validateCommitments(curve, pkg.Commitments, 0); err != nil {
		return nil, fmt.Errorf("frost: invalid signing package: %w", err)
	}
	if len(shares) != len(pkg.Commitments) {
		return nil, fmt.Errorf("frost: number of shares (%d) must match number of commitments (%d)", len(shares), len(pkg.Commitments))
	}

	factors := computeBindingFactors(ciphersuite, pub.GroupPublicKey, pkg.Message, pkg.Commitments)
	groupCommitment := computeGroupCommitment(curve, pkg.Commitments, factors)

	order := curve.Order()
	z := new(big.Int)
	for _, s := range shares {
		if s == nil || s.Share == nil {
			return nil, fmt.Errorf("frost: nil signature share")
		}
		z.Add(z, s.Share)
		z.Mod(z, order)
	}

	R := groupCommitment
	if R.Y.Bit(0) != 0 {
		R = curve.EcSub(curve.Identity(), R)
	}

	return &GroupSignature{R: R, Z: z}, nil
}

// VerifyShare checks a single signature share against the sender's
// verification share, without requiring any other signer's share. A
// coordinator calls this before folding a share into Aggregate so that one
// bad share cannot spoil the whole session; the offending signer can be
// identified and excluded instead.
func VerifyShare(pub *PublicKeyPackage, pkg *SigningPackage, share *SignatureShare) (bool, error) {
	curve := ciphersuite.Curve()

	participants, err := validateCommitments(curve, pkg.Commitments, share.SignerID)
	if err != nil {
		return false, fmt.Errorf("frost: invalid signing package: %w", err)
	}

	verificationShare, ok := pub.VerificationShares[share.SignerID]
	if !ok {
		return false, fmt.Errorf("frost: no verification share on file for signer %d", share.SignerID)
	}

	var commitment *SigningCommitment
	for _, c := range pkg.Commitments {
		if c.SignerID == share.SignerID {
			commitment = c
			break
		}
	}
	if commitment == nil {
		return false, fmt.Errorf("frost: signer %d has no commitment in the signing package", share.SignerID)
	}

	factors := computeBindingFactors(ciphersuite, pub.GroupPublicKey, pkg.Message, pkg.Commitments)
	bindingFactor := factors[share.SignerID]
	groupCommitment := computeGroupCommitment(curve, pkg.Commitments, factors)

	lambda, err := deriveInterpolatingValue(curve.Order(), share.SignerID, participants)
	if err != nil {
		return false, fmt.Errorf("frost: computing interpolating value: %w", err)
	}

	challenge, negateNonce := computeChallengeBip340(curve, pkg.Message, groupCommitment, pub.GroupPublicKey)

	// commitment_share = hiding_nonce_commitment + binding_factor*binding_nonce_commitment
	commitmentShare := curve.EcAdd(commitment.Hiding, curve.EcMul(commitment.Binding, bindingFactor))
	if negateNonce {
		commitmentShare = curve.EcSub(curve.Identity(), commitmentShare)
	}

	cli := new(big.Int).Mul(challenge, lambda)

	// l = share_i * G
	l := curve.EcBaseMul(share.Share)
	// r = commitment_share + (challenge * lambda_i) * verification_share_i
	r := curve.EcAdd(commitmentShare, curve.EcMul(verificationShare, cli))

	return l.X.Cmp(r.X) == 0 && l.Y.Cmp(r.Y) == 0, nil
}

// Verify checks whether sig is a valid BIP-340 Schnorr signature for message
// under pub's group verifying key.
func Verify(pub *PublicKeyPackage, message []byte, sig *GroupSignature) bool {
	if pub == nil || sig == nil {
		return false
	}

	valid, _ := ciphersuite.VerifySignature(
		&Signature{R: sig.R, Z: sig.Z},
		pub.GroupPublicKey,
		message,
	)
	return valid
}
