package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/light-bringer/saleprice-service/internal/app/saleprice/contracts"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/queries/display_price"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/queries/for_product"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/queries/list_events"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/queries/ordered_sale_prices"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/usecases/complete_events"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/usecases/create_sale_price"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/usecases/destroy_sale_price"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/usecases/put_on_sale"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/usecases/start_sale_price"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/usecases/stop_sale_price"
	"github.com/light-bringer/saleprice-service/internal/services"
)

type command func(ctx context.Context, svc *services.ServiceOptions, args []string, out io.Writer) error

var commands = map[string]command{
	"create":      runCreate,
	"start":       runStart,
	"stop":        runStop,
	"destroy":     runDestroy,
	"put-on-sale": runPutOnSale,
	"ordered":     runOrdered,
	"for-product": runForProduct,
	"display":     runDisplay,
	"events":      runEvents,
	"ack":         runAck,
}

var errMissingFlag = errors.New("missing required flag")

func runCreate(ctx context.Context, svc *services.ServiceOptions, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	priceID := fs.String("price", "", "price ID (required)")
	value := fs.String("value", "", "sale amount, e.g. 9.99 (required)")
	start := fs.Bool("start", false, "start the sale immediately")
	end := fs.String("end", "", "end time (RFC3339), only with -start")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required(map[string]string{"price": *priceID, "value": *value}); err != nil {
		return err
	}
	endAt, err := parseEndAt(*end)
	if err != nil {
		return err
	}

	id, err := svc.CreateSalePrice.Execute(ctx, &create_sale_price.Request{
		PriceID: *priceID,
		Value:   *value,
		Start:   *start,
		EndAt:   endAt,
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, id)
	return err
}

func runStart(ctx context.Context, svc *services.ServiceOptions, args []string, _ io.Writer) error {
	fs := flag.NewFlagSet("start", flag.ContinueOnError)
	id := fs.String("id", "", "sale price ID (required)")
	end := fs.String("end", "", "end time (RFC3339); empty means never")
	version := fs.Int64("version", -1, "expected version for optimistic locking")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required(map[string]string{"id": *id}); err != nil {
		return err
	}
	endAt, err := parseEndAt(*end)
	if err != nil {
		return err
	}

	return svc.StartSalePrice.Execute(ctx, &start_sale_price.Request{
		SalePriceID:     *id,
		EndAt:           endAt,
		ExpectedVersion: expectedVersion(*version),
	})
}

func runStop(ctx context.Context, svc *services.ServiceOptions, args []string, _ io.Writer) error {
	fs := flag.NewFlagSet("stop", flag.ContinueOnError)
	id := fs.String("id", "", "sale price ID (required)")
	version := fs.Int64("version", -1, "expected version for optimistic locking")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required(map[string]string{"id": *id}); err != nil {
		return err
	}

	return svc.StopSalePrice.Execute(ctx, &stop_sale_price.Request{
		SalePriceID:     *id,
		ExpectedVersion: expectedVersion(*version),
	})
}

func runDestroy(ctx context.Context, svc *services.ServiceOptions, args []string, _ io.Writer) error {
	fs := flag.NewFlagSet("destroy", flag.ContinueOnError)
	id := fs.String("id", "", "sale price ID (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required(map[string]string{"id": *id}); err != nil {
		return err
	}

	return svc.DestroySalePrice.Execute(ctx, &destroy_sale_price.Request{SalePriceID: *id})
}

func runPutOnSale(ctx context.Context, svc *services.ServiceOptions, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("put-on-sale", flag.ContinueOnError)
	productID := fs.String("product", "", "product ID (required)")
	value := fs.String("value", "", "sale amount (required)")
	currency := fs.String("currency", "", "only prices in this currency")
	end := fs.String("end", "", "end time (RFC3339); empty means never")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required(map[string]string{"product": *productID, "value": *value}); err != nil {
		return err
	}
	endAt, err := parseEndAt(*end)
	if err != nil {
		return err
	}

	resp, err := svc.PutOnSale.Execute(ctx, &put_on_sale.Request{
		ProductID: *productID,
		Value:     *value,
		Currency:  *currency,
		EndAt:     endAt,
	})
	if err != nil {
		return err
	}
	for _, id := range resp.SalePriceIDs {
		if _, err := fmt.Fprintln(out, id); err != nil {
			return err
		}
	}
	return nil
}

func runOrdered(ctx context.Context, svc *services.ServiceOptions, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("ordered", flag.ContinueOnError)
	withDeleted := fs.Bool("with-deleted", false, "include destroyed sale prices")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dtos, err := svc.OrderedSalePrices.Execute(ctx, &ordered_sale_prices.Request{IncludeDeleted: *withDeleted})
	if err != nil {
		return err
	}
	return writeSalePrices(out, dtos)
}

func runForProduct(ctx context.Context, svc *services.ServiceOptions, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("for-product", flag.ContinueOnError)
	productID := fs.String("product", "", "product ID (required)")
	withDeleted := fs.Bool("with-deleted", false, "include destroyed sale prices")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required(map[string]string{"product": *productID}); err != nil {
		return err
	}

	dtos, err := svc.ForProduct.Execute(ctx, &for_product.Request{ProductID: *productID, IncludeDeleted: *withDeleted})
	if err != nil {
		return err
	}
	return writeSalePrices(out, dtos)
}

func runDisplay(ctx context.Context, svc *services.ServiceOptions, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("display", flag.ContinueOnError)
	id := fs.String("id", "", "sale price ID (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required(map[string]string{"id": *id}); err != nil {
		return err
	}

	price, err := svc.DisplayPrice.Execute(ctx, &display_price.Request{SalePriceID: *id})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, formatDisplayPrice(price))
	return err
}

func runEvents(ctx context.Context, svc *services.ServiceOptions, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("events", flag.ContinueOnError)
	eventType := fs.String("type", "", "filter by event type")
	aggregateID := fs.String("aggregate", "", "filter by aggregate ID")
	limit := fs.Int("limit", 10, "max events")
	offset := fs.Int("offset", 0, "skip this many newest events")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := &list_events.Request{Limit: *limit, Offset: *offset}
	if *eventType != "" {
		req.EventType = eventType
	}
	if *aggregateID != "" {
		req.AggregateID = aggregateID
	}

	events, err := svc.ListEvents.Execute(ctx, req)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "EVENT\tTYPE\tAGGREGATE\tSTATUS\tCREATED")
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.EventID, e.EventType, e.AggregateID, e.Status, e.CreatedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}

func runAck(ctx context.Context, svc *services.ServiceOptions, args []string, _ io.Writer) error {
	fs := flag.NewFlagSet("ack", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("%w: event IDs as arguments", errMissingFlag)
	}

	return svc.CompleteEvents.Execute(ctx, &complete_events.Request{EventIDs: fs.Args()})
}

func writeSalePrices(out io.Writer, dtos []*contracts.SalePriceDTO) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPRICE\tVALUE\tSTART\tEND\tBUCKET\tENABLED")
	for _, d := range dtos {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%t\n",
			d.SalePriceID, d.PriceID, d.Value.StringFixed(2), formatTime(d.StartAt), formatTime(d.EndAt), d.Bucket, d.Enabled)
	}
	return tw.Flush()
}

func required(flags map[string]string) error {
	for name, value := range flags {
		if value == "" {
			return fmt.Errorf("%w: -%s", errMissingFlag, name)
		}
	}
	return nil
}

// parseEndAt reads an optional RFC3339 time; empty means no end.
func parseEndAt(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("invalid end time %q: %w", s, err)
	}
	t = t.UTC()
	return &t, nil
}

// expectedVersion maps the -version flag default (-1) to "no check".
func expectedVersion(v int64) *int64 {
	if v < 0 {
		return nil
	}
	return &v
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(time.RFC3339)
}
