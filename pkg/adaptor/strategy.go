package adaptor

import (
	"context"

	"github.com/mahdiidarabi/schnorr-adaptor/pkg/schnorr"
	"github.com/mahdiidarabi/schnorr-adaptor/pkg/secp"
)

// ScanRequest describes a search for the decryption of one ciphertext among
// a set of observed signatures.
type ScanRequest struct {
	Adaptor       *Adaptor
	EncryptionKey secp.Point
	Ciphertext    EncryptedSignature
	Signatures    []schnorr.Signature
}

// RecoveryResult contains the result of a successful scan.
type RecoveryResult struct {
	DecryptionKey  secp.Scalar       // Recovered discrete log of the encryption key
	SignatureIndex int               // Index of the decrypted signature in the scanned set
	Signature      schnorr.Signature // The decrypted signature itself
}

// ScanStrategy defines the interface for searching observed signatures.
// Implement this interface to plug in a custom search.
type ScanStrategy interface {
	// Scan returns the first signature that decrypts req.Ciphertext together
	// with the recovered key, or nil if there is none or ctx is done.
	Scan(ctx context.Context, req *ScanRequest) *RecoveryResult

	// Name returns a human-readable name for this strategy.
	Name() string
}

// ScanConfig configures scanning.
type ScanConfig struct {
	// NumWorkers controls parallelization (0 = auto-detect)
	NumWorkers int

	// MaxSignatures limits how many signatures are inspected (0 = all)
	MaxSignatures int
}

// DefaultScanConfig returns a sensible default configuration.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		NumWorkers:    0, // Auto-detect
		MaxSignatures: 0,
	}
}

// limit returns how many of n signatures c allows to be inspected.
func (c ScanConfig) limit(n int) int {
	if c.MaxSignatures > 0 && c.MaxSignatures < n {
		return c.MaxSignatures
	}
	return n
}
