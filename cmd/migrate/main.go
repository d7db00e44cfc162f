package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/gestor-inventario/internal/infrastructure/postgres"
	"github.com/jhoicas/gestor-inventario/pkg/config"
	"github.com/jhoicas/gestor-inventario/pkg/logger"
)

// Aplica las migraciones embebidas (esquema y datos iniciales) con goose.
//
//	go run ./cmd/migrate -cmd up
//	go run ./cmd/migrate -cmd down-to -version 1
func main() {
	cmd := flag.String("cmd", "up", "comando: up|down|status|version|reset|redo|up-to|down-to")
	version := flag.String("version", "", "versión destino para up-to/down-to")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level}).Component("migrate")

	var args []string
	switch *cmd {
	case "up", "down", "status", "version", "reset", "redo":
	case "up-to", "down-to":
		if *version == "" {
			fmt.Fprintf(os.Stderr, "falta -version para %s\n", *cmd)
			os.Exit(1)
		}
		args = append(args, *version)
	default:
		fmt.Fprintln(os.Stderr, "valor de -cmd desconocido:", *cmd)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	log.Info().Str("cmd", *cmd).Msg("ejecutando migraciones")
	if err := postgres.Migrate(ctx, pool, *cmd, args...); err != nil {
		log.Error().Err(err).Str("cmd", *cmd).Msg("goose falló")
		pool.Close()
		os.Exit(1)
	}
	log.Info().Str("cmd", *cmd).Msg("migraciones completadas")
}
