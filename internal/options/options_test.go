package options

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type TestConfig struct {
	Value    int
	Name     string
	Enabled  bool
	LastCall string
}

func (tc *TestConfig) SetName(name string) {
	tc.Name = name
	tc.LastCall = "SetName"
}

func (tc *TestConfig) SetEnabled(enabled bool) {
	tc.Enabled = enabled
	tc.LastCall = "SetEnabled"
}

func TestNoError(t *testing.T) {
	config := &TestConfig{}

	opt := NoError(func(c *TestConfig) {
		c.SetName("test")
	})

	err := opt.apply(config)
	require.NoError(t, err)
	require.Equal(t, "test", config.Name)
	require.Equal(t, "SetName", config.LastCall)
}

func TestApplyAppliesInOrder(t *testing.T) {
	config := &TestConfig{}

	opts := []Option[*TestConfig]{
		NoError(func(c *TestConfig) { c.SetName("first") }),
		NoError(func(c *TestConfig) { c.SetEnabled(true) }),
	}

	err := Apply(config, opts...)
	require.NoError(t, err)
	require.Equal(t, "first", config.Name)
	require.True(t, config.Enabled)
	require.Equal(t, "SetEnabled", config.LastCall)
}

func TestApplyEmptyOptionsSlice(t *testing.T) {
	config := &TestConfig{}
	err := Apply(config)
	require.NoError(t, err)
	require.Equal(t, "", config.Name)
	require.False(t, config.Enabled)
}

func TestApplyWithHelperConstructors(t *testing.T) {
	config := &TestConfig{}

	withName := func(name string) Option[*TestConfig] {
		return NoError(func(c *TestConfig) { c.SetName(name) })
	}
	withEnabled := func(enabled bool) Option[*TestConfig] {
		return NoError(func(c *TestConfig) { c.SetEnabled(enabled) })
	}

	err := Apply(config, withName("integration test"), withEnabled(true))
	require.NoError(t, err)
	require.Equal(t, "integration test", config.Name)
	require.True(t, config.Enabled)
}
