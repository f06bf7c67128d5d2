package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/factorg/internal/buildinfo"
	"github.com/dmitrijs2005/factorg/internal/config"
	"github.com/dmitrijs2005/factorg/internal/web"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := web.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
