// Package config loads the command line configuration from TOML.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml"

	"github.com/mahdiidarabi/schnorr-adaptor/internal/hashes"
	"github.com/mahdiidarabi/schnorr-adaptor/pkg/adaptor"
	"github.com/mahdiidarabi/schnorr-adaptor/pkg/schnorr"
	"github.com/mahdiidarabi/schnorr-adaptor/pkg/secp"
)

var errNegativeValue = errors.New("must not be negative")

// Config holds the configurable elements of the adaptor command
type Config struct {
	Scheme SchemeConfig
	Scan   ScanConfig
	Log    LogConfig
}

// SchemeConfig selects the Schnorr instance
type SchemeConfig struct {
	// Tag domain-separates the hashes. "BIP0340" with sha256 and even
	// nonce points gives BIP-340 signatures
	Tag string
	// Hash is one of sha256, blake2b, sha3
	Hash string
	// NonceY is "even" or "square"
	NonceY string
	// Derivation is "deterministic" or "randomized"
	Derivation string
}

// ScanConfig holds the scanning settings
type ScanConfig struct {
	NumWorkers    int
	MaxSignatures int
}

// LogConfig holds the logger settings
type LogConfig struct {
	// Level is a mx-chain-logger-go pattern such as "*:INFO,adaptor:DEBUG"
	Level string
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Scheme: SchemeConfig{
			Tag:        "schnorr-adaptor",
			Hash:       hashes.Default,
			NonceY:     secp.SquareY.String(),
			Derivation: schnorr.Deterministic.String(),
		},
		Log: LogConfig{
			Level: "*:INFO",
		},
	}
}

// Load reads a TOML file on top of the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err = toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field without building anything.
func (c *Config) Validate() error {
	if c.Scheme.Tag == "" {
		return errors.New("Scheme.Tag must not be empty")
	}
	if _, err := hashes.New(c.Scheme.Hash); err != nil {
		return fmt.Errorf("Scheme.Hash: %w", err)
	}
	if _, err := secp.ParseYChoice(c.Scheme.NonceY); err != nil {
		return fmt.Errorf("Scheme.NonceY: %w", err)
	}
	if _, err := schnorr.ParseDerivation(c.Scheme.Derivation); err != nil {
		return fmt.Errorf("Scheme.Derivation: %w", err)
	}
	if c.Scan.NumWorkers < 0 {
		return fmt.Errorf("Scan.NumWorkers %w", errNegativeValue)
	}
	if c.Scan.MaxSignatures < 0 {
		return fmt.Errorf("Scan.MaxSignatures %w", errNegativeValue)
	}
	return nil
}

// Schnorr builds the configured Schnorr instance.
func (c *Config) Schnorr() (*schnorr.Schnorr, error) {
	newHash, err := hashes.New(c.Scheme.Hash)
	if err != nil {
		return nil, fmt.Errorf("Scheme.Hash: %w", err)
	}
	nonceY, err := secp.ParseYChoice(c.Scheme.NonceY)
	if err != nil {
		return nil, fmt.Errorf("Scheme.NonceY: %w", err)
	}
	return schnorr.New(schnorr.Config{
		Tag:    c.Scheme.Tag,
		Hash:   newHash,
		NonceY: nonceY,
	})
}

// Derivation returns the configured nonce derivation.
func (c *Config) Derivation() (schnorr.Derivation, error) {
	return schnorr.ParseDerivation(c.Scheme.Derivation)
}

// ScanConfig returns the scanning settings for the adaptor package.
func (c *Config) ScanConfig() adaptor.ScanConfig {
	return adaptor.ScanConfig{
		NumWorkers:    c.Scan.NumWorkers,
		MaxSignatures: c.Scan.MaxSignatures,
	}
}
