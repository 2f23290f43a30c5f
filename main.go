package main

import (
	"os"

	"github.com/pennywise-app/backend/internal/cli"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
