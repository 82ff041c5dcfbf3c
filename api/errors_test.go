package api_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/momentics/hioload-ring/api"
)

func TestErrorMatchesSentinel(t *testing.T) {
	err := api.InvalidArgument("bad capacity").WithContext("capacity", 6)
	assert.True(t, errors.Is(err, api.ErrInvalidArgument))
	assert.False(t, errors.Is(err, api.ErrNotSupported))

	wrapped := fmt.Errorf("open ring: %w", err)
	assert.ErrorIs(t, wrapped, api.ErrInvalidArgument)

	ns := api.NewError(api.ErrCodeNotSupported, "no mmap")
	assert.ErrorIs(t, ns, api.ErrNotSupported)
}

func TestZeroCodeMatchesNothing(t *testing.T) {
	var err error = &api.Error{Message: "unset"}
	assert.False(t, errors.Is(err, api.ErrInvalidArgument))
	assert.False(t, errors.Is(err, api.ErrNotSupported))
	assert.Equal(t, "unset", err.Error())
}

func TestErrorContextFormatting(t *testing.T) {
	err := api.InvalidArgument("capacity exceeds storage").WithContext("storage", 8)
	assert.Equal(t, "capacity exceeds storage (context: map[storage:8])", err.Error())

	bare := &api.Error{Code: api.ErrCodeInvalidArgument, Message: "x"}
	bare.WithContext("k", "v")
	assert.Equal(t, "v", bare.Context["k"])
}
