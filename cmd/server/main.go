package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/userauth/internal/server"
	"github.com/dmitrijs2005/userauth/internal/server/config"
	"github.com/gin-gonic/gin"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	gin.SetMode(cfg.GinMode)

	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
