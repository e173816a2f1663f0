package main

import (
	"github.com/binarybcc/aip-tracker/config"
	"github.com/binarybcc/aip-tracker/routes"
	"github.com/binarybcc/aip-tracker/services"
)

func main() {
	config.InitDB()
	services.SeedFoodCatalog()

	hub := services.NewRealtimeHub()
	services.InitEventBus(config.DB, hub)

	r := routes.SetupRouter(hub)
	r.Run(":8080")
}
