// Command seed aplica las migraciones y carga los productos y bodegas por defecto.
package main

import (
	"context"
	"os"
	"time"

	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("conexión a PostgreSQL")
		os.Exit(1)
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Error().Err(err).Msg("migraciones")
		os.Exit(1)
	}
	log.Info().Strs("migrations", applied).Msg("migraciones aplicadas")

	res, err := usecase.Seed(ctx, postgres.NewUnitOfWorkFactory(pool, log.Component("postgres")))
	if err != nil {
		log.Error().Err(err).Msg("seed")
		os.Exit(1)
	}
	log.Info().
		Int64("products", res.Products).
		Int64("warehouses", res.Warehouses).
		Msg("seed completado")
}
