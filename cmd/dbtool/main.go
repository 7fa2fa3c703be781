package main

import (
	"database/sql"
	"fmt"
	"order-ranking-service/internal/adapters/repositories"
	"order-ranking-service/internal/config"
	"order-ranking-service/internal/platform/db"
	"order-ranking-service/internal/platform/obs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// dbtool creates the schema and loads the JSON seed into Postgres.
func main() {
	envErr := godotenv.Load()
	obs.SetupLogger(config.Get("ENVIRONMENT", "development"), config.Get("LOG_LEVEL", "info"))
	if envErr != nil {
		log.Info().Msg("no .env file found, using environment variables")
	}

	databaseURL := config.Get("DATABASE_URL", "")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	database, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer database.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/menu.json")
	if err := initAndSeed(database, seedPath); err != nil {
		log.Fatal().Err(err).Msg("dbtool failed")
	}
}

func initAndSeed(database *sql.DB, seedPath string) error {
	log.Info().Msg("initializing database schema")
	if err := repositories.InitSchema(database); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Info().Msg("schema ready")

	log.Info().Str("path", seedPath).Msg("seeding database")
	if err := repositories.SeedFromJSON(database, seedPath); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Info().Msg("seeding complete")

	return nil
}
