package main

import (
	"context"
	"database/sql"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	users "github.com/goliatone/go-users"
)

func main() {
	// optional .env for local runs
	_ = godotenv.Load()

	cfg := users.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	defer db.Close()

	ctx := context.Background()
	if err := createSchema(ctx, db); err != nil {
		log.Fatalf("failed to create schema: %v", err)
	}

	repo := users.NewRepositoryManager(db)
	if err := repo.Validate(); err != nil {
		log.Fatalf("invalid repository setup: %v", err)
	}

	tokens, err := users.NewTokenService(cfg.SigningSecret, cfg.TokenExpiration, cfg.Issuer, nil)
	if err != nil {
		log.Fatalf("failed to build token service: %v", err)
	}

	provider := users.NewUserProvider(repo.Users())
	auther := users.NewAuthenticator(provider, tokens)
	accounts := users.NewAccountService(repo)

	authCtrl := users.NewAuthController(auther)
	authCtrl.Debug = cfg.Debug

	userCtrl := users.NewUserController(accounts)
	userCtrl.Debug = cfg.Debug

	app := fiber.New(fiber.Config{
		AppName: "go-users",
	})

	protect := users.Protect(tokens, repo.Users(), nil)
	users.RegisterRoutes(app, authCtrl, userCtrl, protect)

	log.Printf("listening on %s", cfg.Address)
	if err := app.Listen(cfg.Address); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func createSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*users.User)(nil),
		(*users.Address)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}

	return nil
}
