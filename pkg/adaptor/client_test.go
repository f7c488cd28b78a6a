package adaptor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/schnorr-adaptor/pkg/schnorr"
	"github.com/mahdiidarabi/schnorr-adaptor/pkg/secp"
)

// scanFixture is a set of observed signatures with the decryption of one
// ciphertext hidden at index target.
type scanFixture struct {
	adaptor    *Adaptor
	y          secp.Scalar
	Y          secp.Point
	ciphertext EncryptedSignature
	signatures []schnorr.Signature
	target     int
}

func newScanFixture(t *testing.T, count, target int) *scanFixture {
	t.Helper()
	a := New(schnorr.FromTag("adaptor_test"))
	signer := newKeyPair(t)
	y, Y := newEncryptionKey(t)

	ct, err := a.EncryptedSign(signer, Y, []byte("swap"), schnorr.Deterministic)
	require.NoError(t, err)

	signatures := make([]schnorr.Signature, count)
	for i := range signatures {
		if i == target {
			signatures[i] = a.DecryptSignature(y, ct)
			continue
		}
		sig, err := a.Schnorr().Sign(newKeyPair(t), []byte(fmt.Sprintf("tx %d", i)), schnorr.Deterministic)
		require.NoError(t, err)
		signatures[i] = sig
	}

	return &scanFixture{
		adaptor:    a,
		y:          y,
		Y:          Y,
		ciphertext: ct,
		signatures: signatures,
		target:     target,
	}
}

func (f *scanFixture) request() *ScanRequest {
	return &ScanRequest{
		Adaptor:       f.adaptor,
		EncryptionKey: f.Y,
		Ciphertext:    f.ciphertext,
		Signatures:    f.signatures,
	}
}

func TestScanStrategies(t *testing.T) {
	strategies := []ScanStrategy{
		NewLinearScanStrategy(),
		NewParallelScanStrategy(),
		NewParallelScanStrategy().WithScanConfig(ScanConfig{NumWorkers: 3}),
	}

	for _, strategy := range strategies {
		t.Run(strategy.Name(), func(t *testing.T) {
			f := newScanFixture(t, 40, 27)

			result := strategy.Scan(context.Background(), f.request())
			require.NotNil(t, result)
			assert.Equal(t, f.target, result.SignatureIndex)
			assert.True(t, result.DecryptionKey.Equal(f.y))
			assert.True(t, result.Signature.Equal(f.signatures[f.target]))
		})
	}
}

func TestScanStrategies_NoMatch(t *testing.T) {
	f := newScanFixture(t, 12, -1)

	assert.Nil(t, NewLinearScanStrategy().Scan(context.Background(), f.request()))
	assert.Nil(t, NewParallelScanStrategy().Scan(context.Background(), f.request()))

	empty := f.request()
	empty.Signatures = nil
	assert.Nil(t, NewParallelScanStrategy().Scan(context.Background(), empty))
}

func TestScanStrategies_MaxSignatures(t *testing.T) {
	f := newScanFixture(t, 20, 15)
	config := ScanConfig{MaxSignatures: 10}

	linear := &LinearScanStrategy{Config: config}
	assert.Nil(t, linear.Scan(context.Background(), f.request()))

	parallel := NewParallelScanStrategy().WithScanConfig(config)
	assert.Nil(t, parallel.Scan(context.Background(), f.request()))

	config.MaxSignatures = 16
	linear.Config = config
	result := linear.Scan(context.Background(), f.request())
	require.NotNil(t, result)
	assert.Equal(t, 15, result.SignatureIndex)
}

func TestLinearScan_Cancelled(t *testing.T) {
	f := newScanFixture(t, 8, 4)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Nil(t, NewLinearScanStrategy().Scan(ctx, f.request()))
}

func TestClient_RecoverFromSignatures(t *testing.T) {
	f := newScanFixture(t, 25, 9)
	client := NewClient(f.adaptor)

	result, err := client.RecoverFromSignatures(context.Background(), f.signatures, f.Y, f.ciphertext)
	require.NoError(t, err)
	assert.Equal(t, 9, result.SignatureIndex)
	assert.True(t, result.DecryptionKey.Equal(f.y))

	_, err = client.RecoverFromSignatures(context.Background(), nil, f.Y, f.ciphertext)
	assert.ErrorIs(t, err, ErrNoSignatures)

	_, err = client.RecoverFromSignatures(context.Background(), f.signatures, secp.Point{}, f.ciphertext)
	assert.ErrorIs(t, err, ErrInvalidEncryptionKey)

	_, otherY := newEncryptionKey(t)
	_, err = client.RecoverFromSignatures(context.Background(), f.signatures, otherY, f.ciphertext)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestClient_RecoverFromSignatures_Cancelled(t *testing.T) {
	f := newScanFixture(t, 10, -1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(f.adaptor).WithStrategy(NewLinearScanStrategy())
	_, err := client.RecoverFromSignatures(ctx, f.signatures, f.Y, f.ciphertext)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_RecoverFromFile(t *testing.T) {
	f := newScanFixture(t, 6, 2)
	dir := t.TempDir()

	// JSON, mixing both entry forms.
	items := make([]map[string]string, len(f.signatures))
	for i, sig := range f.signatures {
		if i%2 == 0 {
			items[i] = map[string]string{"signature": sig.Hex()}
		} else {
			s := sig.S.Bytes()
			items[i] = map[string]string{"r": "0x" + sig.R.Hex(), "s": fmt.Sprintf("%x", s[:])}
		}
	}
	data, err := json.Marshal(items)
	require.NoError(t, err)
	jsonFile := filepath.Join(dir, "observed.json")
	require.NoError(t, os.WriteFile(jsonFile, data, 0o600))

	result, err := NewClient(f.adaptor).RecoverFromFile(context.Background(), jsonFile, f.Y, f.ciphertext)
	require.NoError(t, err)
	assert.Equal(t, 2, result.SignatureIndex)
	assert.True(t, result.DecryptionKey.Equal(f.y))

	// CSV with extra columns.
	var b strings.Builder
	b.WriteString("txid,r,s\n")
	for i, sig := range f.signatures {
		s := sig.S.Bytes()
		fmt.Fprintf(&b, "tx%d, %s, %x\n", i, sig.R.Hex(), s[:])
	}
	csvFile := filepath.Join(dir, "observed.csv")
	require.NoError(t, os.WriteFile(csvFile, []byte(b.String()), 0o600))

	result, err = NewClient(f.adaptor).
		WithParser(&CSVParser{}).
		WithStrategy(NewLinearScanStrategy()).
		RecoverFromFile(context.Background(), csvFile, f.Y, f.ciphertext)
	require.NoError(t, err)
	assert.Equal(t, 2, result.SignatureIndex)

	_, err = NewClient(f.adaptor).RecoverFromFile(context.Background(), filepath.Join(dir, "missing.json"), f.Y, f.ciphertext)
	assert.Error(t, err)
}

func TestJSONParser_Errors(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"not json":       `{`,
		"missing s":      `[{"r": "00"}]`,
		"short r":        `[{"r": "00", "s": "00"}]`,
		"bad signature":  `[{"signature": "abcd"}]`,
		"non-string sig": `[{"signature": 5}]`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			file := filepath.Join(dir, strings.ReplaceAll(name, " ", "_")+".json")
			require.NoError(t, os.WriteFile(file, []byte(content), 0o600))
			_, err := (&JSONParser{}).ParseSignatures(file)
			assert.Error(t, err)
		})
	}
}

func TestJSONParser_CustomFields(t *testing.T) {
	f := newScanFixture(t, 2, 0)
	file := filepath.Join(t.TempDir(), "custom.json")
	content := fmt.Sprintf(`[{"sig": %q}]`, f.signatures[0].Hex())
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

	signatures, err := (&JSONParser{SignatureField: "sig"}).ParseSignatures(file)
	require.NoError(t, err)
	require.Len(t, signatures, 1)
	assert.True(t, signatures[0].Equal(f.signatures[0]))
}

func TestCSVParser_Errors(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"empty":          ``,
		"missing column": "r\n00\n",
		"bad hex":        "r,s\nzz,00\n",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			file := filepath.Join(dir, strings.ReplaceAll(name, " ", "_")+".csv")
			require.NoError(t, os.WriteFile(file, []byte(content), 0o600))
			_, err := (&CSVParser{}).ParseSignatures(file)
			assert.Error(t, err)
		})
	}
}
