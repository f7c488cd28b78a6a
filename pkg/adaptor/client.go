package adaptor

import (
	"context"
	"errors"
	"fmt"

	"github.com/mahdiidarabi/schnorr-adaptor/pkg/schnorr"
	"github.com/mahdiidarabi/schnorr-adaptor/pkg/secp"
)

var (
	// ErrNoSignatures is returned when there is nothing to scan.
	ErrNoSignatures = errors.New("no signatures to scan")
	// ErrKeyNotFound is returned when no scanned signature decrypts the ciphertext.
	ErrKeyNotFound = errors.New("no signature decrypts the ciphertext")
)

// Client provides a high-level API for recovering a decryption key from
// signatures observed in the wild, e.g. on a blockchain.
type Client struct {
	adaptor  *Adaptor
	strategy ScanStrategy
	parser   SignatureParser
}

// NewClient creates a new client for a with default settings.
func NewClient(a *Adaptor) *Client {
	return &Client{
		adaptor:  a,
		strategy: NewParallelScanStrategy(),
		parser:   &JSONParser{},
	}
}

// WithStrategy sets a custom scan strategy.
func (c *Client) WithStrategy(strategy ScanStrategy) *Client {
	c.strategy = strategy
	return c
}

// WithParser sets a custom signature parser.
func (c *Client) WithParser(parser SignatureParser) *Client {
	c.parser = parser
	return c
}

// RecoverFromFile parses signatures from source and scans them for the
// decryption of ciphertext.
func (c *Client) RecoverFromFile(ctx context.Context, source string, encryptionKey secp.Point, ciphertext EncryptedSignature) (*RecoveryResult, error) {
	signatures, err := c.parser.ParseSignatures(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signatures: %w", err)
	}
	log.Debug("parsed signatures", "source", source, "count", len(signatures))
	return c.RecoverFromSignatures(ctx, signatures, encryptionKey, ciphertext)
}

// RecoverFromSignatures scans in-memory signatures for the decryption of
// ciphertext and returns the recovered decryption key.
func (c *Client) RecoverFromSignatures(ctx context.Context, signatures []schnorr.Signature, encryptionKey secp.Point, ciphertext EncryptedSignature) (*RecoveryResult, error) {
	if len(signatures) == 0 {
		return nil, ErrNoSignatures
	}
	if encryptionKey.IsIdentity() {
		return nil, ErrInvalidEncryptionKey
	}

	result := c.strategy.Scan(ctx, &ScanRequest{
		Adaptor:       c.adaptor,
		EncryptionKey: encryptionKey,
		Ciphertext:    ciphertext,
		Signatures:    signatures,
	})
	if result == nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, ErrKeyNotFound
	}

	log.Info("recovered decryption key", "strategy", c.strategy.Name(), "index", result.SignatureIndex)
	return result, nil
}
