package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/saleprice-service/internal/config"
	"github.com/light-bringer/saleprice-service/internal/logger"
	"github.com/light-bringer/saleprice-service/internal/models/m_outbox"
	"github.com/light-bringer/saleprice-service/internal/pkg/clock"
)

// Options for the outbox cleanup job.
type Options struct {
	SpannerDB              string
	CompletedRetentionDays int
	FailedRetentionDays    int
	DryRun                 bool
}

// cutoffs are the processed_at bounds below which events are purged.
type cutoffs struct {
	completed time.Time
	failed    time.Time
}

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	opts := Options{}
	flag.StringVar(&opts.SpannerDB, "database", cfg.Spanner.Database, "Spanner database (format: projects/PROJECT/instances/INSTANCE/databases/DATABASE)")
	flag.IntVar(&opts.CompletedRetentionDays, "completed-retention", cfg.Outbox.CompletedRetentionDays, "Retention days for completed events")
	flag.IntVar(&opts.FailedRetentionDays, "failed-retention", cfg.Outbox.FailedRetentionDays, "Retention days for failed events")
	flag.BoolVar(&opts.DryRun, "dry-run", false, "Show what would be deleted without actually deleting")
	flag.Parse()

	log, err := logger.New(cfg.Server.Env, cfg.Server.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := cleanupOutbox(context.Background(), opts, clock.NewRealClock(), log); err != nil {
		log.Fatal("cleanup failed", zap.Error(err))
	}

	log.Info("cleanup completed successfully")
}

func cleanupOutbox(ctx context.Context, opts Options, clk clock.Clock, log *zap.Logger) error {
	if opts.SpannerDB == "" {
		return errors.New("database is required")
	}

	client, err := spanner.NewClient(ctx, opts.SpannerDB)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	c := computeCutoffs(clk.Now(), opts)

	log.Info("starting outbox cleanup",
		zap.Time("completed_cutoff", c.completed),
		zap.Time("failed_cutoff", c.failed),
		zap.Bool("dry_run", opts.DryRun),
	)

	if opts.DryRun {
		return dryRunCleanup(ctx, client, c, log)
	}

	return performCleanup(ctx, client, c, log)
}

func computeCutoffs(now time.Time, opts Options) cutoffs {
	return cutoffs{
		completed: now.AddDate(0, 0, -opts.CompletedRetentionDays),
		failed:    now.AddDate(0, 0, -opts.FailedRetentionDays),
	}
}

// purgeFilter matches events past their retention.
func purgeFilter(c cutoffs) (string, map[string]interface{}) {
	where := fmt.Sprintf("(%[1]s = @completedStatus AND %[2]s < @completedCutoff) OR (%[1]s = @failedStatus AND %[2]s < @failedCutoff)",
		m_outbox.Status, m_outbox.ProcessedAt)
	params := map[string]interface{}{
		"completedStatus": m_outbox.StatusCompleted,
		"completedCutoff": c.completed,
		"failedStatus":    m_outbox.StatusFailed,
		"failedCutoff":    c.failed,
	}
	return where, params
}

func dryRunCleanup(ctx context.Context, client *spanner.Client, c cutoffs, log *zap.Logger) error {
	where, params := purgeFilter(c)
	stmt := spanner.Statement{
		SQL: fmt.Sprintf("SELECT %s, COUNT(*) FROM %s WHERE %s GROUP BY %s",
			m_outbox.Status, m_outbox.TableName, where, m_outbox.Status),
		Params: params,
	}

	iter := client.Single().Query(ctx, stmt)
	defer iter.Stop()

	total := int64(0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to query events: %w", err)
		}

		var status string
		var count int64
		if err := row.Columns(&status, &count); err != nil {
			return fmt.Errorf("failed to parse row: %w", err)
		}

		log.Info("would delete events", zap.String("status", status), zap.Int64("count", count))
		total += count
	}

	log.Info("dry run finished", zap.Int64("total", total))
	return nil
}

func performCleanup(ctx context.Context, client *spanner.Client, c cutoffs, log *zap.Logger) error {
	where, params := purgeFilter(c)
	stmt := spanner.Statement{
		SQL:    fmt.Sprintf("DELETE FROM %s WHERE %s", m_outbox.TableName, where),
		Params: params,
	}

	var deleted int64
	_, err := client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		rowCount, err := txn.Update(ctx, stmt)
		if err != nil {
			return fmt.Errorf("failed to delete events: %w", err)
		}
		deleted = rowCount
		return nil
	})
	if err != nil {
		return fmt.Errorf("cleanup transaction failed: %w", err)
	}

	log.Info("deleted old events", zap.Int64("count", deleted))
	return nil
}
