package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/light-bringer/saleprice-service/internal/config"
	"github.com/light-bringer/saleprice-service/internal/logger"
	"github.com/light-bringer/saleprice-service/internal/services"
)

const usage = `usage: saleprices <command> [flags]

commands:
  create       create a sale price on a price
  start        open a sale price window
  stop         close a sale price window now
  destroy      soft-delete a sale price
  put-on-sale  start a sale on every price of a product
  ordered      list sale prices: forever, past, present, future
  for-product  list the sale prices of a product
  display      show the display price of a sale price
  events       list recent outbox events
  ack          mark outbox events as processed
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cmd, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	cfg, err := config.Load(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Server.Env, cfg.Server.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	svc, err := services.NewServiceOptions(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize services", zap.Error(err))
	}
	defer svc.Close()

	if err := cmd(ctx, svc, os.Args[2:], os.Stdout); err != nil {
		log.Error("command failed", zap.String("command", os.Args[1]), zap.Error(err))
		svc.Close()
		os.Exit(1)
	}
}
