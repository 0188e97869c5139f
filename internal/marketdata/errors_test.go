package marketdata

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		fromOracle bool
		want       ErrorKind
		sentinel   error
	}{
		{"plain source error", errors.New("connection refused"), false, KindTransport, ErrTransport},
		{"wrapped decode", fmt.Errorf("row 3: %w", ErrDecode), false, KindDecode, ErrDecode},
		{"missing data", fmt.Errorf("%w: no file", ErrMissingData), false, KindMissingData, ErrMissingData},
		{"oracle failure", errors.New("nan output"), true, KindInference, ErrInference},
		{"insufficient history", ErrInsufficientHistory, false, KindInference, ErrInference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ce := Classify("VAS", tt.err, tt.fromOracle)
			assert.Equal(t, tt.want, ce.Kind)
			assert.Equal(t, "VAS", ce.Symbol)
			assert.ErrorIs(t, ce, tt.sentinel)
			assert.ErrorIs(t, ce, tt.err, "the cause stays reachable")
		})
	}
}

func TestClassify_KeepsExistingCollaboratorError(t *testing.T) {
	orig := &CollaboratorError{Kind: KindDecode, Symbol: "VGS", Err: ErrDecode}
	got := Classify("OTHER", fmt.Errorf("context: %w", orig), true)
	assert.Same(t, orig, got)
}

func TestCollaboratorError_Message(t *testing.T) {
	assert.Equal(t, "VAS: transport", (&CollaboratorError{Kind: KindTransport, Symbol: "VAS"}).Error())
	assert.Equal(t, "VAS: decode: bad row", (&CollaboratorError{Kind: KindDecode, Symbol: "VAS", Err: errors.New("bad row")}).Error())
	assert.NotErrorIs(t, &CollaboratorError{Kind: KindDecode}, ErrTransport)
}
