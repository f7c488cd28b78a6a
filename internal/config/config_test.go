package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/schnorr-adaptor/pkg/schnorr"
	"github.com/mahdiidarabi/schnorr-adaptor/pkg/secp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())

	s, err := cfg.Schnorr()
	require.NoError(t, err)
	assert.Equal(t, secp.SquareY, s.NonceY())

	d, err := cfg.Derivation()
	require.NoError(t, err)
	assert.Equal(t, schnorr.Deterministic, d)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
[Scheme]
    Tag = "BIP0340"
    Hash = "sha256"
    NonceY = "even"
    Derivation = "randomized"

[Scan]
    NumWorkers = 4
    MaxSignatures = 1000

[Log]
    Level = "*:DEBUG"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "BIP0340", cfg.Scheme.Tag)
	assert.Equal(t, 4, cfg.ScanConfig().NumWorkers)
	assert.Equal(t, 1000, cfg.ScanConfig().MaxSignatures)
	assert.Equal(t, "*:DEBUG", cfg.Log.Level)

	d, err := cfg.Derivation()
	require.NoError(t, err)
	assert.Equal(t, schnorr.Randomized, d)

	// The configured instance signs exactly like the BIP-340 one.
	s, err := cfg.Schnorr()
	require.NoError(t, err)
	kp, err := schnorr.NewKeyPair(secp.ScalarFromUint32(3))
	require.NoError(t, err)
	sig, err := s.Sign(kp, []byte("config"), schnorr.Deterministic)
	require.NoError(t, err)
	assert.True(t, schnorr.NewBIP340().Verify(kp.VerificationKey(), []byte("config"), sig))
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[Scheme]\nHash = \"blake2b\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "blake2b", cfg.Scheme.Hash)
	assert.Equal(t, Default().Scheme.Tag, cfg.Scheme.Tag)
	assert.Equal(t, Default().Log.Level, cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	cases := map[string]struct {
		content string
		field   string
	}{
		"hash":       {"[Scheme]\nHash = \"md5\"\n", "Scheme.Hash"},
		"nonce y":    {"[Scheme]\nNonceY = \"odd\"\n", "Scheme.NonceY"},
		"derivation": {"[Scheme]\nDerivation = \"sometimes\"\n", "Scheme.Derivation"},
		"tag":        {"[Scheme]\nTag = \"\"\n", "Scheme.Tag"},
		"workers":    {"[Scan]\nNumWorkers = -1\n", "Scan.NumWorkers"},
		"max":        {"[Scan]\nMaxSignatures = -5\n", "Scan.MaxSignatures"},
		"bad toml":   {"[Scheme\n", "failed to parse config"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.field)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
