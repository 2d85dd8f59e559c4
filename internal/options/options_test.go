package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Level   int
	Name    string
	Applied []string
}

func withLevel(level int) Option[*testConfig] {
	return New(func(c *testConfig) error {
		if level < 0 {
			return errors.New("level cannot be negative")
		}
		c.Level = level
		c.Applied = append(c.Applied, "level")

		return nil
	})
}

func withName(name string) Option[*testConfig] {
	return NoError(func(c *testConfig) {
		c.Name = name
		c.Applied = append(c.Applied, "name")
	})
}

func TestApply_InOrder(t *testing.T) {
	cfg := &testConfig{}

	err := Apply(cfg, withName("a"), withLevel(3), withName("b"))
	require.NoError(t, err)
	require.Equal(t, 3, cfg.Level)
	require.Equal(t, "b", cfg.Name)
	require.Equal(t, []string{"name", "level", "name"}, cfg.Applied)
}

func TestApply_StopsAtFirstError(t *testing.T) {
	cfg := &testConfig{}

	err := Apply(cfg, withName("a"), withLevel(-1), withName("b"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "option 1")
	require.Contains(t, err.Error(), "level cannot be negative")
	require.Equal(t, "a", cfg.Name, "options after the failing one must not run")
}

func TestApply_WrapsOptionError(t *testing.T) {
	sentinel := errors.New("sentinel")
	cfg := &testConfig{}

	err := Apply(cfg, Option[*testConfig](New(func(*testConfig) error { return sentinel })))
	require.ErrorIs(t, err, sentinel)
}

func TestApply_SkipsNil(t *testing.T) {
	cfg := &testConfig{}

	require.NoError(t, Apply(cfg, nil, withLevel(7)))
	require.Equal(t, 7, cfg.Level)
}

func TestApply_NoOptions(t *testing.T) {
	cfg := &testConfig{Level: 1}

	require.NoError(t, Apply(cfg))
	require.Equal(t, 1, cfg.Level)
}
