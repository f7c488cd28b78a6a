package ed25519adaptor

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"testing"

	"filippo.io/edwards25519"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/schnorr-adaptor/pkg/schnorr"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy source exhausted")
}

func setup(t *testing.T) (*KeyPair, *edwards25519.Scalar, *edwards25519.Point) {
	t.Helper()
	kp, err := GenerateKeyPair(rand.Reader)
	require.NoError(t, err)
	y, Y, err := GenerateDecryptionKey(rand.Reader)
	require.NoError(t, err)
	return kp, y, Y
}

func TestKeyPair_MatchesCryptoEd25519(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, SeedSize)
	kp, err := NewKeyPair(seed)
	require.NoError(t, err)

	priv := ed25519.NewKeyFromSeed(seed)
	assert.Equal(t, priv.Public().(ed25519.PublicKey), kp.PublicKey())
	assert.Equal(t, []byte(kp.PublicKey()), kp.Point().Bytes())

	_, err = NewKeyPair(seed[:31])
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	for i := 0; i < 16; i++ {
		kp, y, Y := setup(t)
		msg := []byte("give 100 coins to Bob")

		for _, derivation := range []schnorr.Derivation{schnorr.Deterministic, schnorr.Randomized} {
			ct, err := EncryptedSign(kp, Y, msg, derivation)
			require.NoError(t, err)
			require.True(t, VerifyEncryptedSignature(kp.PublicKey(), Y, msg, ct))

			sig := DecryptSignature(y, ct)
			require.True(t, ed25519.Verify(kp.PublicKey(), msg, sig))

			recovered, ok := RecoverDecryptionKey(Y, ct, sig)
			require.True(t, ok)
			assert.Equal(t, 1, recovered.Equal(y))
		}
	}
}

func TestVerifyEncryptedSignature_Rejects(t *testing.T) {
	kp, _, Y := setup(t)
	other, _, otherY := setup(t)
	msg := []byte("give 100 coins to Bob")

	ct, err := EncryptedSign(kp, Y, msg, schnorr.Deterministic)
	require.NoError(t, err)

	assert.False(t, VerifyEncryptedSignature(kp.PublicKey(), otherY, msg, ct))
	assert.False(t, VerifyEncryptedSignature(other.PublicKey(), Y, msg, ct))
	assert.False(t, VerifyEncryptedSignature(kp.PublicKey(), Y, []byte("give 100 coins to Eve"), ct))
	assert.False(t, VerifyEncryptedSignature(kp.PublicKey(), edwards25519.NewIdentityPoint(), msg, ct))
	assert.False(t, VerifyEncryptedSignature(kp.PublicKey()[:31], Y, msg, ct))

	tampered := EncryptedSignature{R: ct.R, SHat: edwards25519.NewScalar().Add(ct.SHat, mustScalar(1))}
	assert.False(t, VerifyEncryptedSignature(kp.PublicKey(), Y, msg, tampered))
}

func TestDecryptSignature_WrongKey(t *testing.T) {
	kp, _, Y := setup(t)
	y2, _, err := GenerateDecryptionKey(rand.Reader)
	require.NoError(t, err)
	msg := []byte("give 100 coins to Bob")

	ct, err := EncryptedSign(kp, Y, msg, schnorr.Deterministic)
	require.NoError(t, err)

	sig := DecryptSignature(y2, ct)
	assert.False(t, ed25519.Verify(kp.PublicKey(), msg, sig))
	_, ok := RecoverDecryptionKey(Y, ct, sig)
	assert.False(t, ok)

	plain := ed25519.Sign(ed25519.NewKeyFromSeed(bytes.Repeat([]byte{1}, SeedSize)), msg)
	_, ok = RecoverDecryptionKey(Y, ct, plain)
	assert.False(t, ok)
	_, ok = RecoverDecryptionKey(Y, ct, plain[:10])
	assert.False(t, ok)
}

func TestEncryptedSign_Errors(t *testing.T) {
	kp, _, Y := setup(t)

	_, err := EncryptedSign(kp, edwards25519.NewIdentityPoint(), []byte("m"), schnorr.Deterministic)
	assert.ErrorIs(t, err, ErrInvalidEncryptionKey)

	// A point of order 8 plus a prime-order point is not in the subgroup.
	torsion, err := new(edwards25519.Point).SetBytes(bytes.Repeat([]byte{0}, 32))
	require.NoError(t, err)
	mixed := new(edwards25519.Point).Add(Y, torsion)
	_, err = EncryptedSign(kp, mixed, []byte("m"), schnorr.Deterministic)
	assert.ErrorIs(t, err, ErrInvalidEncryptionKey)

	_, err = encryptedSign(kp, Y, []byte("m"), schnorr.Randomized, failingReader{})
	assert.Error(t, err)

	_, err = EncryptedSign(kp, Y, []byte("m"), schnorr.Derivation(9))
	assert.Error(t, err)
}

func TestEncryptedSign_NonceSeparation(t *testing.T) {
	seed := bytes.Repeat([]byte{3}, SeedSize)
	kp, err := NewKeyPair(seed)
	require.NoError(t, err)
	_, Y, err := GenerateDecryptionKey(rand.Reader)
	require.NoError(t, err)
	msg := []byte("give 100 coins to Bob")

	ct1, err := EncryptedSign(kp, Y, msg, schnorr.Deterministic)
	require.NoError(t, err)
	ct2, err := EncryptedSign(kp, Y, msg, schnorr.Deterministic)
	require.NoError(t, err)
	assert.Equal(t, ct1.Serialize(), ct2.Serialize())

	ct3, err := EncryptedSign(kp, Y, msg, schnorr.Randomized)
	require.NoError(t, err)
	assert.NotEqual(t, ct1.Serialize(), ct3.Serialize())

	// A plain signature over Y || m must not reuse the adaptor nonce.
	plainR := ed25519.Sign(ed25519.NewKeyFromSeed(seed), append(Y.Bytes(), msg...))[:32]
	rB := new(edwards25519.Point).Subtract(ct1.R, Y)
	assert.NotEqual(t, plainR, rB.Bytes())
}

func TestEncryptedSignature_Serialization(t *testing.T) {
	kp, _, Y := setup(t)
	ct, err := EncryptedSign(kp, Y, []byte("serialize"), schnorr.Deterministic)
	require.NoError(t, err)

	parsed, err := ParseEncryptedSignatureHex("0x" + ct.Hex())
	require.NoError(t, err)
	assert.Equal(t, ct.Serialize(), parsed.Serialize())
	assert.True(t, VerifyEncryptedSignature(kp.PublicKey(), Y, []byte("serialize"), parsed))

	_, err = ParseEncryptedSignature(ct.Serialize()[:63])
	assert.Error(t, err)

	bad := ct.Serialize()
	for i := 32; i < 64; i++ {
		bad[i] = 0xff
	}
	_, err = ParseEncryptedSignature(bad)
	assert.Error(t, err)

	_, err = ParsePoint(edwards25519.NewIdentityPoint().Bytes())
	assert.ErrorIs(t, err, ErrInvalidPoint)
}
