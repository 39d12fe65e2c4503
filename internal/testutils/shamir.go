// Package testutils hosts a second, independent Shamir secret-sharing
// implementation used only by internal/frost's tests to cross-check that
// package's Lagrange interpolation (deriveInterpolatingValue): a secret
// split here and reconstructed there must come back unchanged. KeyGen's
// own split is not compared against it.
package testutils

import (
	"crypto/rand"
	"math/big"
)

// ShamirSplit splits secret into groupSize shares under a degree-(threshold-1)
// polynomial modulo order, i.e. a standalone (t, n) Shamir secret split
// independent of internal/frost's own KeyGen polynomial code.
func ShamirSplit(secret *big.Int, groupSize, threshold int, order *big.Int) []*big.Int {
	coefficients := shamirPolynomial(secret, threshold, order)

	shares := make([]*big.Int, groupSize)
	for i := 0; i < groupSize; i++ {
		signerID := i + 1
		shares[i] = shamirEvaluate(coefficients, signerID, order)
	}

	return shares
}

// shamirPolynomial samples a degree-(threshold-1) polynomial over Z_order
// whose constant term is secret.
func shamirPolynomial(secret *big.Int, threshold int, order *big.Int) []*big.Int {
	coefficients := make([]*big.Int, threshold)
	coefficients[0] = secret
	for i := 1; i < threshold; i++ {
		coefficient, err := rand.Int(rand.Reader, order)
		if err != nil {
			panic(err)
		}
		coefficients[i] = coefficient
	}

	return coefficients
}

// shamirEvaluate evaluates the polynomial given by coefficients at x,
// modulo order.
func shamirEvaluate(coefficients []*big.Int, x int, order *big.Int) *big.Int {
	result := new(big.Int)
	bigX := big.NewInt(int64(x))

	for degree, coefficient := range coefficients {
		term := new(big.Int).Exp(bigX, big.NewInt(int64(degree)), order)
		term.Mul(term, coefficient)
		result.Add(result, term)
	}

	return result.Mod(result, order)
}
