package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/noticeboard/internal/client/app"
	"github.com/dmitrijs2005/noticeboard/internal/client/config"
)

func main() {

	cfg := config.LoadConfig()
	a, err := app.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := a.Run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}

}
