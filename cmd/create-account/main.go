package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/oksasatya/account-registration/config"
	"github.com/oksasatya/account-registration/internal/application"
	"github.com/oksasatya/account-registration/internal/container"
	"github.com/oksasatya/account-registration/pkg/helpers"
)

// Exit codes
const (
	exitOK       = 0
	exitError    = 1
	exitUsage    = 2
	exitInvalid  = 3
	exitConflict = 4
)

func main() {
	_ = godotenv.Load() // load .env if present

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, config.Load(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("create-account", flag.ContinueOnError)
	fs.SetOutput(stderr)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	firstName := fs.String("first-name", "", "first name")
	lastName := fs.String("last-name", "", "last name")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "invalid configuration:\n%v\n", err)
		return exitError
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, stderr)

	c, err := container.Open(ctx, cfg, logger)
	if err != nil {
		helpers.LogError(logger, "failed to open backends", err, nil)
		return exitError
	}
	defer c.Close()

	res, err := c.RegistrationService(ctx).Register(ctx, map[string]any{
		"email":     *email,
		"password":  *password,
		"firstName": *firstName,
		"lastName":  *lastName,
	})
	if err != nil {
		helpers.LogError(logger, "failed to create account", err, nil)
		return exitError
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	switch res.Outcome {
	case application.OutcomeCreated:
		_ = enc.Encode(res.Account)
		return exitOK
	case application.OutcomeInvalid:
		for _, v := range res.Violations {
			fmt.Fprintf(stderr, "%s: %s\n", v.Field, v.Message)
		}
		return exitInvalid
	case application.OutcomeConflict:
		fmt.Fprintln(stderr, "Email already registered")
		return exitConflict
	default:
		return exitError
	}
}
