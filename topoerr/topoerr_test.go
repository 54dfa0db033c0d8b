package topoerr

import (
	"errors"
	"strconv"
	"testing"
)

func TestInputParseErrorUnwraps(t *testing.T) {
	cause := &strconv.NumError{Func: "ParseInt", Num: "abc", Err: strconv.ErrSyntax}
	err := &InputParseError{File: "dem.txt", Context: "reading width", Err: cause}

	if !errors.Is(err, strconv.ErrSyntax) {
		t.Errorf("errors.Is should see through InputParseError to the underlying cause")
	}

	var target *strconv.NumError
	if !errors.As(err, &target) {
		t.Errorf("errors.As should recover the underlying *strconv.NumError")
	}
}

func TestErrorMessagesMentionContext(t *testing.T) {
	err := &ConsistencyError{Msg: "boundary does not enclose a simply-connected interior"}
	if got := err.Error(); got == "" {
		t.Errorf("ConsistencyError.Error() should not be empty")
	}

	unsupported := &UnsupportedOperation{Msg: "ipe export"}
	if got := unsupported.Error(); got == "" {
		t.Errorf("UnsupportedOperation.Error() should not be empty")
	}
}
