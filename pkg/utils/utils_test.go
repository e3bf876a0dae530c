package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLocation(t *testing.T) {
	loc, err := LoadLocation("")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	loc, err = LoadLocation("America/New_York")
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())

	_, err = LoadLocation("Mars/Olympus_Mons")
	assert.Error(t, err)
}

func TestDateIn(t *testing.T) {
	loc, err := LoadLocation("America/New_York")
	require.NoError(t, err)

	// 02:00 UTC is still the previous evening in New York.
	ts := time.Date(2026, 10, 20, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-10-19", DateIn(ts, loc))
	assert.Equal(t, "2026-10-20", DateIn(ts, time.UTC))
}

func TestRecoverToError(t *testing.T) {
	errBoom := errors.New("boom")

	assert.NoError(t, RecoverToError(func() error { return nil }))
	assert.ErrorIs(t, RecoverToError(func() error { return errBoom }), errBoom)

	err := RecoverToError(func() error { panic("index out of range") })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic: index out of range")
}
