package testutils

import (
	"math/big"
	"testing"
)

// AssertBigIntsEqual reports a test failure if expected and actual are not
// equal. It is the one assertion helper internal/frost's tests reach for
// rather than a plain big.Int.Cmp check, since big.Int has no natural
// %v/== comparison a test failure message can print directly.
func AssertBigIntsEqual(t *testing.T, description string, expected, actual *big.Int) {
	t.Helper()
	if expected.Cmp(actual) != 0 {
		t.Errorf(
			"unexpected %s\nexpected: %v\nactual:   %v\n",
			description,
			expected,
			actual,
		)
	}
}
