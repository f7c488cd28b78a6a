package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli"

	"github.com/mahdiidarabi/schnorr-adaptor/internal/config"
	"github.com/mahdiidarabi/schnorr-adaptor/pkg/adaptor"
	"github.com/mahdiidarabi/schnorr-adaptor/pkg/schnorr"
	"github.com/mahdiidarabi/schnorr-adaptor/pkg/secp"
)

var (
	errInvalidEncryptedSignature = errors.New("encrypted signature is not valid")
	errInvalidSignature          = errors.New("signature is not the decryption of the encrypted signature")
)

type commands struct {
	out io.Writer
	cfg func() *config.Config
}

func (cmd *commands) list() []cli.Command {
	return []cli.Command{
		{
			Name:   "keygen",
			Usage:  "Generate a signing key pair",
			Action: cmd.keygen,
		},
		{
			Name:   "encrypt-key",
			Usage:  "Derive the encryption key Y from a decryption key y, generating y when it is not given",
			Flags:  []cli.Flag{decryptionKey},
			Action: cmd.encryptKey,
		},
		{
			Name:   "encsign",
			Usage:  "Create an encrypted signature on a message",
			Flags:  []cli.Flag{secretKey, encryptionKey, message, messageHex},
			Action: cmd.encSign,
		},
		{
			Name:   "verify",
			Usage:  "Verify an encrypted signature",
			Flags:  []cli.Flag{verificationKey, encryptionKey, message, messageHex, encryptedSignature},
			Action: cmd.verify,
		},
		{
			Name:   "decrypt",
			Usage:  "Decrypt an encrypted signature into a Schnorr signature",
			Flags:  []cli.Flag{decryptionKey, encryptedSignature},
			Action: cmd.decrypt,
		},
		{
			Name:   "recover",
			Usage:  "Recover the decryption key from an encrypted signature and its decryption",
			Flags:  []cli.Flag{encryptionKey, encryptedSignature, signature},
			Action: cmd.recoverKey,
		},
		{
			Name:   "scan",
			Usage:  "Recover the decryption key by scanning a file of observed signatures",
			Flags:  []cli.Flag{encryptionKey, encryptedSignature, signaturesFile, format},
			Action: cmd.scan,
		},
	}
}

func (cmd *commands) adaptor() (*adaptor.Adaptor, error) {
	s, err := cmd.cfg().Schnorr()
	if err != nil {
		return nil, err
	}
	return adaptor.New(s), nil
}

func (cmd *commands) keygen(_ *cli.Context) error {
	kp, err := schnorr.GenerateKeyPair(rand.Reader)
	if err != nil {
		return err
	}
	return cmd.print(map[string]interface{}{
		"secret_key":       kp.SecretKey().Hex(),
		"verification_key": kp.VerificationKey().XOnly().Hex(),
	})
}

func (cmd *commands) encryptKey(c *cli.Context) error {
	var y secp.Scalar
	var err error
	if c.IsSet(decryptionKey.Name) {
		y, err = secp.ParseScalarHex(c.String(decryptionKey.Name))
	} else {
		y, err = secp.RandomScalar(rand.Reader)
	}
	if err != nil {
		return fmt.Errorf("decryption key: %w", err)
	}
	return cmd.print(map[string]interface{}{
		"decryption_key": y.Hex(),
		"encryption_key": secp.BaseMul(y).Hex(),
	})
}

func (cmd *commands) encSign(c *cli.Context) error {
	if err := checkRequired(c, secretKey, encryptionKey); err != nil {
		return err
	}
	a, err := cmd.adaptor()
	if err != nil {
		return err
	}
	derivation, err := cmd.cfg().Derivation()
	if err != nil {
		return err
	}

	x, err := secp.ParseScalarHex(c.String(secretKey.Name))
	if err != nil {
		return fmt.Errorf("secret key: %w", err)
	}
	kp, err := schnorr.NewKeyPair(x)
	if err != nil {
		return err
	}
	Y, err := secp.ParsePointHex(c.String(encryptionKey.Name))
	if err != nil {
		return fmt.Errorf("encryption key: %w", err)
	}
	m, err := getMessage(c)
	if err != nil {
		return err
	}

	ct, err := a.EncryptedSign(kp, Y, m, derivation)
	if err != nil {
		return err
	}
	log.Debug("created encrypted signature", "derivation", derivation.String(), "needs negation", ct.NeedsNegation)

	return cmd.print(map[string]interface{}{
		"encrypted_signature": ct.Hex(),
		"verification_key":    kp.VerificationKey().XOnly().Hex(),
		"needs_negation":      ct.NeedsNegation,
	})
}

func (cmd *commands) verify(c *cli.Context) error {
	if err := checkRequired(c, verificationKey, encryptionKey, encryptedSignature); err != nil {
		return err
	}
	a, err := cmd.adaptor()
	if err != nil {
		return err
	}

	X, err := secp.ParseEvenYPointHex(c.String(verificationKey.Name))
	if err != nil {
		return fmt.Errorf("verification key: %w", err)
	}
	Y, err := secp.ParsePointHex(c.String(encryptionKey.Name))
	if err != nil {
		return fmt.Errorf("encryption key: %w", err)
	}
	m, err := getMessage(c)
	if err != nil {
		return err
	}
	ct, err := a.ParseEncryptedSignatureHex(c.String(encryptedSignature.Name))
	if err != nil {
		return err
	}

	valid := a.VerifyEncryptedSignature(X, Y, m, ct)
	if err = cmd.print(map[string]interface{}{"valid": valid}); err != nil {
		return err
	}
	if !valid {
		return errInvalidEncryptedSignature
	}
	return nil
}

func (cmd *commands) decrypt(c *cli.Context) error {
	if err := checkRequired(c, decryptionKey, encryptedSignature); err != nil {
		return err
	}
	a, err := cmd.adaptor()
	if err != nil {
		return err
	}

	y, err := secp.ParseScalarHex(c.String(decryptionKey.Name))
	if err != nil {
		return fmt.Errorf("decryption key: %w", err)
	}
	ct, err := a.ParseEncryptedSignatureHex(c.String(encryptedSignature.Name))
	if err != nil {
		return err
	}

	sig := a.DecryptSignature(y, ct)
	return cmd.print(map[string]interface{}{"signature": sig.Hex()})
}

func (cmd *commands) recoverKey(c *cli.Context) error {
	if err := checkRequired(c, encryptionKey, encryptedSignature, signature); err != nil {
		return err
	}
	a, err := cmd.adaptor()
	if err != nil {
		return err
	}

	Y, err := secp.ParsePointHex(c.String(encryptionKey.Name))
	if err != nil {
		return fmt.Errorf("encryption key: %w", err)
	}
	ct, err := a.ParseEncryptedSignatureHex(c.String(encryptedSignature.Name))
	if err != nil {
		return err
	}
	sig, err := schnorr.ParseSignatureHex(c.String(signature.Name))
	if err != nil {
		return err
	}

	y, ok := a.RecoverDecryptionKey(Y, ct, sig)
	if !ok {
		return errInvalidSignature
	}
	return cmd.print(map[string]interface{}{"decryption_key": y.Hex()})
}

func (cmd *commands) scan(c *cli.Context) error {
	if err := checkRequired(c, encryptionKey, encryptedSignature, signaturesFile); err != nil {
		return err
	}
	a, err := cmd.adaptor()
	if err != nil {
		return err
	}

	Y, err := secp.ParsePointHex(c.String(encryptionKey.Name))
	if err != nil {
		return fmt.Errorf("encryption key: %w", err)
	}
	ct, err := a.ParseEncryptedSignatureHex(c.String(encryptedSignature.Name))
	if err != nil {
		return err
	}

	var parser adaptor.SignatureParser
	switch strings.ToLower(c.String(format.Name)) {
	case "json":
		parser = &adaptor.JSONParser{}
	case "csv":
		parser = &adaptor.CSVParser{}
	default:
		return fmt.Errorf("unknown signatures format %q", c.String(format.Name))
	}

	strategy := adaptor.NewParallelScanStrategy().WithScanConfig(cmd.cfg().ScanConfig())
	client := adaptor.NewClient(a).WithStrategy(strategy).WithParser(parser)

	result, err := client.RecoverFromFile(context.Background(), c.String(signaturesFile.Name), Y, ct)
	if err != nil {
		return err
	}
	return cmd.print(map[string]interface{}{
		"decryption_key": result.DecryptionKey.Hex(),
		"index":          result.SignatureIndex,
		"signature":      result.Signature.Hex(),
	})
}

func (cmd *commands) print(v interface{}) error {
	enc := json.NewEncoder(cmd.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func checkRequired(c *cli.Context, flags ...cli.StringFlag) error {
	for _, flag := range flags {
		if c.String(flag.Name) == "" {
			return fmt.Errorf("--%s is required", flag.Name)
		}
	}
	return nil
}

func getMessage(c *cli.Context) ([]byte, error) {
	if c.IsSet(messageHex.Name) {
		m, err := hex.DecodeString(strings.TrimPrefix(c.String(messageHex.Name), "0x"))
		if err != nil {
			return nil, fmt.Errorf("message: %w", err)
		}
		return m, nil
	}
	if !c.IsSet(message.Name) {
		return nil, fmt.Errorf("one of --%s or --%s is required", message.Name, messageHex.Name)
	}
	return []byte(c.String(message.Name)), nil
}
