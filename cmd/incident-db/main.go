package main

import (
	"os"

	"github.com/secincident/incident-db/pkg"
	"github.com/secincident/incident-db/pkg/log"
)

var (
	version = "0.0.1"
)

func main() {
	app := pkg.NewApp(version)
	if err := app.Run(os.Args); err != nil {
		log.Error("Fatal error", log.Err(err))
		os.Exit(1)
	}
}
