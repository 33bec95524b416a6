package app

import (
	"path/filepath"
	"testing"

	"github.com/alexflint/go-arg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseArgs(t *testing.T, cmdline ...string) *Config {
	var c Config
	p, err := arg.NewParser(arg.Config{}, &c)
	require.NoError(t, err)
	require.NoError(t, p.Parse(cmdline))
	return &c
}

func TestSavedConfigWinsOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	saved := parseArgs(t, "--listen", "127.0.0.1:9999", "--name", "mine",
		"--maxmessage", "4096", "--maxprocs", "4", "--wrap")
	saved.ApplyDefaults()
	require.NoError(t, saved.Save(path))

	c := parseArgs(t)
	var file Config
	require.NoError(t, file.Load(path))
	c.Merge(&file)
	c.ApplyDefaults()
	assert.Equal(t, "127.0.0.1:9999", c.Listen)
	assert.Equal(t, "mine", c.Name)
	assert.Equal(t, int64(4096), c.MaxMessageSize)
	assert.Equal(t, 4, c.MaxProcs)
	assert.True(t, c.WrapDeliveries)
}

func TestCommandLineWinsOverSavedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	saved := parseArgs(t, "--listen", "127.0.0.1:9999", "--name", "mine")
	require.NoError(t, saved.Save(path))

	c := parseArgs(t, "--listen", "127.0.0.1:7777")
	var file Config
	require.NoError(t, file.Load(path))
	c.Merge(&file)
	c.ApplyDefaults()
	assert.Equal(t, "127.0.0.1:7777", c.Listen)
	assert.Equal(t, "mine", c.Name)
}

func TestDefaultsWithoutConfig(t *testing.T) {
	c := parseArgs(t)
	c.ApplyDefaults()
	assert.Equal(t, DefaultListen, c.Listen)
	assert.Equal(t, DefaultName, c.Name)
	assert.Equal(t, int64(MaxMessageSize), c.MaxMessageSize)
	assert.Equal(t, DefaultMaxProcs, c.MaxProcs)
	assert.Equal(t, "fanoutr", c.Profile)
	assert.Equal(t, "info", c.LogLevel)
}
