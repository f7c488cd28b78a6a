package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/urfave/cli"

	"github.com/mahdiidarabi/schnorr-adaptor/internal/config"
)

const appVersion = "v1.0.0"

var log = logger.GetOrCreate("main")

func main() {
	app := newApp(os.Stdout)
	err := app.Run(os.Args)
	if err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "adaptor"
	app.Version = fmt.Sprintf("%s/%s/%s-%s", appVersion, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	app.Usage = "Create, verify, decrypt and recover Schnorr adaptor signatures over secp256k1"
	app.Flags = getFlags()
	app.Writer = out

	var cfg *config.Config
	app.Before = func(c *cli.Context) error {
		var err error
		cfg, err = config.Load(c.GlobalString(configurationFile.Name))
		if err != nil {
			return err
		}

		level := cfg.Log.Level
		if c.GlobalIsSet(logLevel.Name) {
			level = c.GlobalString(logLevel.Name)
		}
		return logger.SetLogLevel(level)
	}

	cmd := &commands{out: out, cfg: func() *config.Config { return cfg }}
	app.Commands = cmd.list()

	return app
}
