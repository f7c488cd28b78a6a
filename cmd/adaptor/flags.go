package main

import (
	"github.com/urfave/cli"
)

var (
	filePathPlaceholder = "[path]"
	// configurationFile defines a flag for the path to the toml configuration file
	configurationFile = cli.StringFlag{
		Name: "config",
		Usage: "The `" + filePathPlaceholder + "` for the TOML configuration file selecting the tag, hash and " +
			"nonce normalization of the scheme. Defaults are used when empty.",
		Value: "",
	}
	// logLevel defines the logger level(s) and overrides the configuration file
	logLevel = cli.StringFlag{
		Name:  "log-level",
		Usage: "This flag specifies the logger `level(s)`, e.g. *:INFO or *:INFO,adaptor:DEBUG",
		Value: "",
	}

	secretKey = cli.StringFlag{
		Name:  "secret-key",
		Usage: "The signer's secret key as 32-byte hex",
	}
	verificationKey = cli.StringFlag{
		Name:  "verification-key",
		Usage: "The signer's x-only verification key as 32-byte hex",
	}
	decryptionKey = cli.StringFlag{
		Name:  "decryption-key",
		Usage: "The decryption key y as 32-byte hex",
	}
	encryptionKey = cli.StringFlag{
		Name:  "encryption-key",
		Usage: "The encryption key Y = y*G as 33-byte compressed hex",
	}
	message = cli.StringFlag{
		Name:  "message",
		Usage: "The message to sign, as text",
	}
	messageHex = cli.StringFlag{
		Name:  "message-hex",
		Usage: "The message to sign, as hex. Takes precedence over --message",
	}
	encryptedSignature = cli.StringFlag{
		Name:  "encrypted-signature",
		Usage: "The 65-byte encrypted signature as hex",
	}
	signature = cli.StringFlag{
		Name:  "signature",
		Usage: "The decrypted 64-byte signature as hex",
	}
	signaturesFile = cli.StringFlag{
		Name:  "signatures",
		Usage: "The `" + filePathPlaceholder + "` of a JSON or CSV file of observed signatures",
	}
	format = cli.StringFlag{
		Name:  "format",
		Usage: "The signatures file format, json or csv",
		Value: "json",
	}
)

func getFlags() []cli.Flag {
	return []cli.Flag{
		configurationFile,
		logLevel,
	}
}
