package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/angelmondragon/shoppingcart/internal/preview"
	"github.com/angelmondragon/shoppingcart/pkg/config"
	pkgerrors "github.com/angelmondragon/shoppingcart/pkg/errors"
	"github.com/angelmondragon/shoppingcart/pkg/logger"
	"github.com/joho/godotenv"
	"go.uber.org/multierr"
)

func main() {
	ctx := context.Background()
	// bootstrap logger early (then re-init after config load)
	logg := logger.New(logger.Options{ServiceName: "cartitems"})

	if err := godotenv.Load(); err != nil {
		logg.Debug(ctx, ".env file not found, relying on environment")
	}

	file := flag.String("file", "", "JSON document with discounts and shipping lines (default stdin)")
	asJSON := flag.Bool("json", false, "print the preview as JSON instead of a table")
	check := flag.Bool("check", false, "validate every line and list all failures without rendering")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "cartitems",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"file": *file,
	})

	input, closeInput, err := openInput(*file)
	requireResource(ctx, logg, "input", err)
	defer closeInput()

	doc, err := preview.Decode(input)
	if err != nil {
		fail(ctx, logg, "failed to decode document", err)
	}

	svc, err := preview.NewService(cfg.Format.NumberFormat(), logg)
	requireResource(ctx, logg, "preview service", err)

	if *check {
		if err := svc.Validate(ctx, doc); err != nil {
			for _, lineErr := range multierr.Errors(err) {
				fmt.Fprintln(os.Stderr, pkgerrors.As(lineErr).Message())
			}
			os.Exit(1)
		}
		fmt.Println("all lines valid")
		return
	}

	res, err := svc.Build(ctx, doc)
	if err != nil {
		fail(ctx, logg, "failed to build preview", err)
	}

	if *asJSON {
		err = preview.WriteJSON(os.Stdout, res)
	} else {
		err = preview.WriteTable(os.Stdout, res)
	}
	if err != nil {
		fail(ctx, logg, "failed to write preview", err)
	}
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, func() { _ = f.Close() }, nil
}

func fail(ctx context.Context, logg *logger.Logger, msg string, err error) {
	ctx = logg.WithField(ctx, "error_dump", pkgerrors.Dump(err))
	logg.Error(ctx, msg, err)
	if typed := pkgerrors.As(err); typed != nil {
		fmt.Fprintln(os.Stderr, typed.Message())
	}
	os.Exit(1)
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
