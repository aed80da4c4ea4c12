package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		maxLen  int
		want    string
		wantErr error
	}{
		{name: "plain", in: "mixer", maxLen: 10, want: "mixer"},
		{name: "trimmed", in: "  stage left ", maxLen: 10, want: "stage left"},
		{name: "empty", in: "   ", maxLen: 10, wantErr: ErrNameEmpty},
		{name: "too long", in: "abcdefghijk", maxLen: 10, wantErr: ErrNameTooLong},
		{name: "runes not bytes", in: "ääääää", maxLen: 6, want: "ääääää"},
		{name: "default limit", in: strings.Repeat("x", DefaultMaxNameLen+1), wantErr: ErrNameTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeName(tt.in, tt.maxLen)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoutePeer(t *testing.T) {
	r := Route{Transmitter: "a", Receiver: "b"}
	assert.Equal(t, ConnID("b"), r.Peer("a"))
	assert.Equal(t, ConnID("a"), r.Peer("b"))
	assert.True(t, r.Touches("a"))
	assert.False(t, r.Touches("c"))
}
