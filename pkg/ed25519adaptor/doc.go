// Package ed25519adaptor implements adaptor signatures over Ed25519.
//
// Decrypted signatures are ordinary RFC 8032 signatures and verify with
// crypto/ed25519.Verify under the signer's usual public key.
//
// Basic Usage:
//
//	signer, _ := ed25519adaptor.GenerateKeyPair(rand.Reader)
//	y, Y, _ := ed25519adaptor.GenerateDecryptionKey(rand.Reader)
//	ct, _ := ed25519adaptor.EncryptedSign(signer, Y, msg, schnorr.Deterministic)
//	ok := ed25519adaptor.VerifyEncryptedSignature(signer.PublicKey(), Y, msg, ct)
//	sig := ed25519adaptor.DecryptSignature(y, ct)
//	recovered, ok := ed25519adaptor.RecoverDecryptionKey(Y, ct, sig)
package ed25519adaptor
