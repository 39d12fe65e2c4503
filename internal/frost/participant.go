package frost

import (
	"fmt"
	"math/big"
	"sort"
)

// bindingFactors is produced by computeBindingFactors and consumed by
// computeGroupCommitment and the signature-share functions.
type bindingFactors map[SignerID]*big.Int

// sortedCommitments returns a copy of commitments sorted in ascending order
// by SignerID. [FROST] requires commitment lists to be processed in this
// canonical order so every party's Fiat-Shamir transcript matches; the
// coordinator and signer packages above this one must never iterate a map
// of commitments directly.
func sortedCommitments(commitments []*SigningCommitment) []*SigningCommitment {
	sorted := make([]*SigningCommitment, len(commitments))
	copy(sorted, commitments)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].SignerID < sorted[j].SignerID
	})
	return sorted
}

// validateCommitments checks that commitments are well-formed: none nil,
// none off-curve, no duplicate signer identifiers, and — when selfID is
// nonzero — that selfID appears in the list. It returns the sorted
// participant identifier list on success, matching [FROST] section 4.3's
// participants_from_commitment_list.
func validateCommitments(
	curve Curve,
	commitments []*SigningCommitment,
	selfID SignerID,
) ([]SignerID, error) {
	if len(commitments) == 0 {
		return nil, fmt.Errorf("no commitments provided")
	}
	for i, c := range commitments {
		if c == nil {
			return nil, fmt.Errorf("commitment at position %d is nil", i)
		}
	}

	sorted := sortedCommitments(commitments)
	participants := make([]SignerID, len(sorted))
	found := selfID == 0

	var lastID SignerID
	for i, c := range sorted {
		if i > 0 && c.SignerID == lastID {
			return nil, fmt.Errorf("duplicate commitment for signer %d", c.SignerID)
		}
		lastID = c.SignerID
		participants[i] = c.SignerID

		if c.SignerID == selfID {
			found = true
		}
		if !curve.IsPointOnCurve(c.Hiding) {
			return nil, fmt.Errorf("hiding commitment from signer %d is not a valid curve point", c.SignerID)
		}
		if !curve.IsPointOnCurve(c.Binding) {
			return nil, fmt.Errorf("binding commitment from signer %d is not a valid curve point", c.SignerID)
		}
	}

	if !found {
		return nil, fmt.Errorf("own commitment (signer %d) not found in commitment list", selfID)
	}

	return participants, nil
}

// encodeGroupCommitment implements encode_group_commitment_list from
// [FROST] section 4.3: a canonical byte encoding of the sorted commitment
// list, used as an input to H5.
func encodeGroupCommitment(commitments []*SigningCommitment, curve Curve) []byte {
	pointLen := curve.SerializedPointLength()
	b := make([]byte, 0, (8+2*pointLen)*len(commitments))

	for _, c := range sortedCommitments(commitments) {
		b = append(b, signerIDBytes(c.SignerID)...)
		b = append(b, curve.SerializePoint(c.Hiding)...)
		b = append(b, curve.SerializePoint(c.Binding)...)
	}

	return b
}

// computeBindingFactors implements compute_binding_factors from [FROST]
// section 4.4.
func computeBindingFactors(
	cs Ciphersuite,
	groupPublicKey *Point,
	message []byte,
	commitments []*SigningCommitment,
) bindingFactors {
	curve := cs.Curve()
	groupPublicKeyEncoded := curve.SerializePoint(groupPublicKey)
	msgHash := cs.H4(message)
	groupCommitmentEncoded := encodeGroupCommitment(commitments, curve)
	encodedCommitHash := cs.H5(groupCommitmentEncoded)

	rhoInputPrefix := concat(groupPublicKeyEncoded, msgHash, encodedCommitHash)

	factors := make(bindingFactors, len(commitments))
	for _, c := range sortedCommitments(commitments) {
		rhoInput := concat(rhoInputPrefix, signerIDBytes(c.SignerID))
		factors[c.SignerID] = cs.H1(rhoInput)
	}

	return factors
}

// computeGroupCommitment implements compute_group_commitment from [FROST]
// section 4.5.
func computeGroupCommitment(
	curve Curve,
	commitments []*SigningCommitment,
	factors bindingFactors,
) *Point {
	groupCommitment := curve.Identity()

	for _, c := range sortedCommitments(commitments) {
		bindingFactor := factors[c.SignerID]
		bindingNonce := curve.EcMul(c.Binding, bindingFactor)
		groupCommitment = curve.EcAdd(
			groupCommitment,
			curve.EcAdd(c.Hiding, bindingNonce),
		)
	}

	return groupCommitment
}

// deriveInterpolatingValue implements derive_interpolating_value from
// [FROST] section 4.2: the Lagrange coefficient lambda_i for participant xi
// within participant set L.
func deriveInterpolatingValue(order *big.Int, xi SignerID, participants []SignerID) (*big.Int, error) {
	found := false
	num := big.NewInt(1)
	den := big.NewInt(1)

	for _, xj := range participants {
		if xj == xi {
			if found {
				return nil, fmt.Errorf("signer %d listed more than once among participants", xi)
			}
			found = true
			continue
		}
		num.Mul(num, big.NewInt(int64(xj)))
		num.Mod(num, order)

		den.Mul(den, big.NewInt(int64(xj)-int64(xi)))
		den.Mod(den, order)
	}

	if !found {
		return nil, fmt.Errorf("signer %d not present among participants", xi)
	}

	denInv := new(big.Int).ModInverse(den, order)
	if denInv == nil {
		return nil, fmt.Errorf("participant set is degenerate: no modular inverse")
	}

	res := new(big.Int).Mul(num, denInv)
	res.Mod(res, order)

	return res, nil
}
