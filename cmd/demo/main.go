package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/sqlrecord/internal/demo"
	"github.com/dmitrijs2005/sqlrecord/internal/demo/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := demo.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}

}
