// Package adaptor implements Schnorr adaptor signatures (one-time verifiably
// encrypted signatures) over secp256k1.
//
// A signer holding x encrypts a signature on m under an encryption key Y.
// Anyone can check the resulting ciphertext against X, Y and m. Whoever knows
// y with y*G = Y can decrypt it into an ordinary Schnorr signature, and once
// that signature is published the signer learns y from it. This is the
// building block of scriptless atomic swaps and payment channel hops.
//
// The nonce point of an encrypted signature already contains Y, so its y
// coordinate is canonicalized together with Y. When that flips the point,
// the signer negates its nonce but nobody can negate Y, so the ciphertext
// carries a NeedsNegation flag that tells decryption and recovery to use -y.
//
// # Quick Start
//
//	a := adaptor.New(schnorr.FromTag("my-app"))
//	signer, _ := schnorr.GenerateKeyPair(rand.Reader)
//	y, _ := secp.RandomScalar(rand.Reader)
//	Y := secp.BaseMul(y)
//
//	ct, err := a.EncryptedSign(signer, Y, msg, schnorr.Deterministic)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !a.VerifyEncryptedSignature(signer.VerificationKey(), Y, msg, ct) {
//	    log.Fatal("bad ciphertext")
//	}
//	sig := a.DecryptSignature(y, ct)
//	recovered, ok := a.RecoverDecryptionKey(Y, ct, sig)
//
// # Scanning
//
// When the decrypted signature is published among many others, a Client
// finds it and recovers the key:
//
//	client := adaptor.NewClient(a).
//		WithStrategy(adaptor.NewParallelScanStrategy().WithScanConfig(adaptor.ScanConfig{
//			NumWorkers: 8,
//		})).
//		WithParser(&adaptor.CSVParser{})
//	result, err := client.RecoverFromFile(ctx, "observed.csv", Y, ct)
//
// See the examples/atomicswap directory for a complete swap between two parties.
package adaptor
