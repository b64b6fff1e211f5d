package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Align int
	Name  string
}

var errBadAlign = errors.New("bad alignment")

func withAlign(n int) Option[*testConfig] {
	return New(func(c *testConfig) error {
		if n != 4 && n != 8 {
			return errBadAlign
		}
		c.Align = n

		return nil
	})
}

func withName(name string) Option[*testConfig] {
	return NoError(func(c *testConfig) { c.Name = name })
}

func TestApply(t *testing.T) {
	t.Run("applies in order", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply(cfg, withAlign(4), withName("a"), withAlign(8), withName("b"))
		require.NoError(t, err)
		require.Equal(t, 8, cfg.Align)
		require.Equal(t, "b", cfg.Name)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply(cfg, withName("a"), withAlign(3), withName("b"))
		require.ErrorIs(t, err, errBadAlign)
		require.Equal(t, "a", cfg.Name)
	})

	t.Run("skips nil options", func(t *testing.T) {
		cfg := &testConfig{}
		require.NoError(t, Apply(cfg, nil, withName("x")))
		require.Equal(t, "x", cfg.Name)
	})

	t.Run("no options", func(t *testing.T) {
		cfg := &testConfig{Align: 4}
		require.NoError(t, Apply(cfg))
		require.Equal(t, 4, cfg.Align)
	})
}
