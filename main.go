package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"snaptrade-core/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.WithError(err).Error("snaptrade-core failed")
		os.Exit(1)
	}
}
