// @title        Accounts API
// @version      1.0
// @description  User registration, login and account management.
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/accounthub/accounts-api/internal/api"
	"github.com/accounthub/accounts-api/internal/core/service"
	"github.com/accounthub/accounts-api/internal/infrastructure/config"
	"github.com/accounthub/accounts-api/internal/infrastructure/store/memory"
	"github.com/accounthub/accounts-api/pkg/logger"

	_ "github.com/accounthub/accounts-api/docs"
)

func run() error {
	cfg, err := config.Load(context.Background())
	if err != nil {
		return err
	}

	logg := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	hasher := service.NewBcryptHasher(cfg.HashWorkers, cfg.HashCost)
	defer hasher.Close()

	repo := memory.NewUserRepository()
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	users := service.NewUserService(repo, hasher, tokens)

	e := api.NewRouter(users, tokens, logg)

	logg.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting accounts api")
	return e.Start(fmt.Sprintf(":%s", cfg.Port))
}

func main() {
	if err := run(); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}
