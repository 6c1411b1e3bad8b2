package main

import (
	"context"
	"log"
	"os"

	"github.com/fluxpad/fluxpad/internal/buildinfo"
	"github.com/fluxpad/fluxpad/internal/client/cli"
	"github.com/fluxpad/fluxpad/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
