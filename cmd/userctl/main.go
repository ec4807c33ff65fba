package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/usersvc/internal/dbx"
	"github.com/dmitrijs2005/usersvc/internal/flagx"
	"github.com/dmitrijs2005/usersvc/internal/server/config"
	"github.com/dmitrijs2005/usersvc/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/usersvc/internal/server/services"
	"github.com/dmitrijs2005/usersvc/internal/userctl"
)

func main() {

	if err := run(context.Background(), os.Args[1:]); err != nil {
		log.Fatalf("%v", err)
	}

}

func run(ctx context.Context, args []string) error {
	opts, err := userctl.ParseArgs(args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(flagx.FilterArgs(args, userctl.ConfigArgs))
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	password, err := userctl.GetPassword(os.Stderr)
	if err != nil {
		return err
	}

	db, err := dbx.Open(ctx, cfg.DSN(), 1)
	if err != nil {
		return err
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("db migration error: %w", err)
	}

	us := services.NewUserService(db, rm, cfg)

	return userctl.CreateUser(ctx, us, opts, password, os.Stdout)
}
