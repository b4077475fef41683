package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrComputeMiss(t *testing.T) {
	c := New()

	calls := 0
	entry, hit, err := c.GetOrCompute("k", time.Minute, func() ([]byte, error) {
		calls++
		return []byte(`{"ok":true}`), nil
	})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 1, calls)
	assert.Equal(t, []byte(`{"ok":true}`), entry.Payload)
	assert.Len(t, entry.Validator, 64, "validator is a hex sha256 digest")
}

func TestGetOrComputeHit(t *testing.T) {
	c := New()

	calls := 0
	compute := func() ([]byte, error) {
		calls++
		return []byte("payload"), nil
	}

	first, _, err := c.GetOrCompute("k", time.Minute, compute)
	require.NoError(t, err)
	second, hit, err := c.GetOrCompute("k", time.Minute, compute)
	require.NoError(t, err)

	assert.True(t, hit)
	assert.Equal(t, 1, calls, "a fresh entry must not recompute")
	assert.Same(t, first, second)
	assert.Equal(t, first.Validator, second.Validator,
		"the validator is stable for the lifetime of the entry")
}

func TestGetOrComputeExpiry(t *testing.T) {
	c := New()

	calls := 0
	compute := func() ([]byte, error) {
		calls++
		return []byte("payload"), nil
	}

	_, _, err := c.GetOrCompute("k", -time.Second, compute)
	require.NoError(t, err)
	_, hit, err := c.GetOrCompute("k", time.Minute, compute)
	require.NoError(t, err)

	assert.False(t, hit, "an expired entry recomputes")
	assert.Equal(t, 2, calls)
}

func TestGetOrComputeError(t *testing.T) {
	c := New()

	boom := errors.New("boom")
	_, _, err := c.GetOrCompute("k", time.Minute, func() ([]byte, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len(), "failed computations are not cached")
}

func TestValidatorTracksContent(t *testing.T) {
	c := New()

	a, _, err := c.GetOrCompute("a", time.Minute, func() ([]byte, error) {
		return []byte("content-one"), nil
	})
	require.NoError(t, err)
	b, _, err := c.GetOrCompute("b", time.Minute, func() ([]byte, error) {
		return []byte("content-two"), nil
	})
	require.NoError(t, err)
	same, _, err := c.GetOrCompute("c", time.Minute, func() ([]byte, error) {
		return []byte("content-one"), nil
	})
	require.NoError(t, err)

	assert.NotEqual(t, a.Validator, b.Validator)
	assert.Equal(t, a.Validator, same.Validator, "identical payloads share a validator")
}

func TestEntryMaxAge(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	e := &Entry{ExpiresAt: now.Add(45 * time.Second)}

	assert.Equal(t, 45, e.MaxAge(now))
	assert.Equal(t, 0, e.MaxAge(now.Add(time.Hour)), "never negative")
}

func TestKeyCanonicalOrder(t *testing.T) {
	a := Key("crimes", 3, map[string]string{"bbox": "1,2,3,4", "crime_type": "assault"})
	b := Key("crimes", 3, map[string]string{"crime_type": "assault", "bbox": "1,2,3,4"})
	assert.Equal(t, a, b, "parameter order must not change the key")
	assert.Equal(t, "crimes|gen=3|bbox=1,2,3,4|crime_type=assault", a)
}

func TestKeyGenerationSeparatesSnapshots(t *testing.T) {
	params := map[string]string{"bbox": "1,2,3,4"}
	assert.NotEqual(t, Key("crimes", 1, params), Key("crimes", 2, params),
		"a reload must make previous entries unreachable")
	assert.NotEqual(t, Key("crimes", 1, params), Key("clusters", 1, params))
}
