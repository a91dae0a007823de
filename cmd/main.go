// Package main is the entry point for the fulfillment-service application.
//
// @title           Fulfillment Service API
// @version         1.0.0
// @description     API for reserving cross-order surplus stock to fulfill order items.
//
//	Surplus purchased for one order is credited to a shared stock ledger and can be
//	reserved for other orders needing the same item code. Stock is consumed in FIFO
//	order and every reservation reports which source orders it was taken from.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/fulfillment-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @tag.name        Reservations
// @tag.description Stock reservation operations
//
// @tag.name        Stock
// @tag.description Surplus stock ledger operations
//
// @tag.name        Orders
// @tag.description Order item queries
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	_ "github.com/guttosm/fulfillment-service/docs" // swagger docs

	"github.com/guttosm/fulfillment-service/config"
	"github.com/guttosm/fulfillment-service/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	router := app.InitializeApp(cfg)
	server := app.NewServer(router, cfg.Server.Port)

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
