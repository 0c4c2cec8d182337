package fault

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorUnwrapsKindAndCause(t *testing.T) {
	err := LocalIO("read original.bin", io.ErrUnexpectedEOF)

	assert.ErrorIs(t, err, ErrLocalIO)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.NotErrorIs(t, err, ErrRemoteFetch)
	assert.Equal(t, "read original.bin: unexpected EOF", err.Error())
}

func TestConfigFormatsMessage(t *testing.T) {
	err := Config("precision must be a power of 2: %d", 3)

	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Equal(t, "precision must be a power of 2: 3", err.Error())
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"config", Config("bad"), ErrConfiguration},
		{"capability", Capability("ping", errors.New("no ranges")), ErrRemoteCapability},
		{"fetch", Fetch("fetch", errors.New("500")), ErrRemoteFetch},
		{"local", LocalIO("open", errors.New("denied")), ErrLocalIO},
		{"transform", Transform("fft", errors.New("size")), ErrTransform},
		{"unclassified", errors.New("plain"), nil},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestKindSurvivesFurtherWrapping(t *testing.T) {
	inner := Fetch("fetch https://example.com/a.bin", errors.New("status 503"))
	outer := errors.Join(errors.New("diff phase"), inner)

	assert.ErrorIs(t, outer, ErrRemoteFetch)
	assert.Equal(t, ErrRemoteFetch, KindOf(outer))
}
