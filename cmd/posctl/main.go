// Command posctl is an offline companion to the POS server: it prints the
// demo catalog, prices ad-hoc orders and hashes employee PINs.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	app := &cli.App{
		Name:  "posctl",
		Usage: "salon POS utilities",
		Commands: []*cli.Command{
			catalogCommand(),
			quoteCommand(),
			hashPINCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("posctl failed")
	}
}
