// Package schnorr implements Schnorr signatures over secp256k1 with x-only
// keys and x-only nonce points.
//
// A Schnorr instance fixes the three choices the signature equation leaves
// open:
//
//   - the challenge hash, a tagged hash H(H(tag) || H(tag) || R.x || X.x || m)
//     over any 32-byte hash function;
//   - the canonical y of the nonce point R (square y as in the original
//     Schnorr BIP draft, or even y as in BIP-340);
//   - the source of randomness for randomized nonce derivation.
//
// Verification keys are always normalized to an even y coordinate.
//
// # Quick Start
//
//	s := schnorr.FromTag("my-app")
//	kp, err := schnorr.GenerateKeyPair(rand.Reader)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sig, err := s.Sign(kp, []byte("hello"), schnorr.Deterministic)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ok := s.Verify(kp.VerificationKey(), []byte("hello"), sig)
//
// NewBIP340 returns an instance whose signatures are BIP-340 signatures, so
// they verify with any BIP-340 implementation when the message is 32 bytes.
package schnorr
