package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte("s3cret")
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

func TestTokenErrorsUnwrapToUnauthorized(t *testing.T) {
	for _, cause := range []error{ErrInvalidToken, ErrTokenExpired, ErrMissingClaim} {
		err := fmt.Errorf("%w: %w", ErrorUnauthorized, cause)
		if !errors.Is(err, ErrorUnauthorized) {
			t.Fatalf("%v must match ErrorUnauthorized", err)
		}
		if !errors.Is(err, cause) {
			t.Fatalf("%v must keep its cause", err)
		}
	}
}
