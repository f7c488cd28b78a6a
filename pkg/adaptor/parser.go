package adaptor

import (
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mahdiidarabi/schnorr-adaptor/pkg/schnorr"
	"github.com/mahdiidarabi/schnorr-adaptor/pkg/secp"
)

// SignatureParser defines the interface for parsing signatures from various sources.
type SignatureParser interface {
	// ParseSignatures parses signatures from a source and returns them.
	ParseSignatures(source string) ([]schnorr.Signature, error)
}

// JSONParser parses signatures from JSON files.
type JSONParser struct {
	SignatureField string // Field name for the full 64-byte signature (default: "signature")
	RField         string // Field name for R.x (default: "r")
	SField         string // Field name for s (default: "s")
}

// ParseSignatures parses signatures from a JSON file.
//
// Expected format, one of the two forms per entry:
// [
//   {"signature": "hex_string"},
//   {"r": "hex_string", "s": "hex_string"},
//   ...
// ]
func (p *JSONParser) ParseSignatures(jsonFile string) ([]schnorr.Signature, error) {
	file, err := os.Open(jsonFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer file.Close()

	var items []map[string]interface{}
	if err := json.NewDecoder(file).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	signatureField := fieldOrDefault(p.SignatureField, "signature")
	rField := fieldOrDefault(p.RField, "r")
	sField := fieldOrDefault(p.SField, "s")

	signatures := make([]schnorr.Signature, 0, len(items))
	for i, item := range items {
		if v, ok := item[signatureField]; ok {
			str, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("entry %d: %s field must be a string", i, signatureField)
			}
			sig, err := schnorr.ParseSignatureHex(str)
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			signatures = append(signatures, sig)
			continue
		}

		rVal, ok := item[rField].(string)
		if !ok {
			return nil, fmt.Errorf("entry %d: missing %s field", i, rField)
		}
		sVal, ok := item[sField].(string)
		if !ok {
			return nil, fmt.Errorf("entry %d: missing %s field", i, sField)
		}
		sig, err := parseRS(rVal, sVal)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		signatures = append(signatures, sig)
	}

	return signatures, nil
}

// CSVParser parses signatures from CSV files with a header row.
type CSVParser struct {
	RCol string // Column name for R.x (default: "r")
	SCol string // Column name for s (default: "s")
}

// ParseSignatures parses signatures from a CSV file.
func (p *CSVParser) ParseSignatures(csvFile string) ([]schnorr.Signature, error) {
	file, err := os.Open(csvFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	// Read header
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	rCol := fieldOrDefault(p.RCol, "r")
	sCol := fieldOrDefault(p.SCol, "s")

	rIdx := -1
	sIdx := -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case rCol:
			rIdx = i
		case sCol:
			sIdx = i
		}
	}
	if rIdx == -1 || sIdx == -1 {
		return nil, fmt.Errorf("missing required columns: %s or %s", rCol, sCol)
	}

	signatures := make([]schnorr.Signature, 0)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		if rIdx >= len(record) || sIdx >= len(record) {
			return nil, fmt.Errorf("line %d: too few columns", line)
		}

		sig, err := parseRS(record[rIdx], record[sIdx])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		signatures = append(signatures, sig)
	}

	return signatures, nil
}

// parseRS builds a signature from hex encoded R.x and s.
func parseRS(r, s string) (schnorr.Signature, error) {
	rBytes, err := hex.DecodeString(trimHex(r))
	if err != nil {
		return schnorr.Signature{}, fmt.Errorf("failed to parse r: %w", err)
	}
	if len(rBytes) != secp.XOnlySize {
		return schnorr.Signature{}, fmt.Errorf("r must be %d bytes, got %d", secp.XOnlySize, len(rBytes))
	}

	sBytes, err := hex.DecodeString(trimHex(s))
	if err != nil {
		return schnorr.Signature{}, fmt.Errorf("failed to parse s: %w", err)
	}
	sScalar, err := secp.NewScalar(sBytes)
	if err != nil {
		return schnorr.Signature{}, fmt.Errorf("failed to parse s: %w", err)
	}

	sig := schnorr.Signature{S: sScalar}
	copy(sig.R[:], rBytes)
	return sig, nil
}

func trimHex(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "0x")
	return strings.TrimPrefix(s, "0X")
}

func fieldOrDefault(field, def string) string {
	if field == "" {
		return def
	}
	return field
}
