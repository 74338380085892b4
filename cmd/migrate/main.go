package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/saleprice-service/internal/config"
	"github.com/light-bringer/saleprice-service/internal/logger"
)

type options struct {
	projectID  string
	instanceID string
	databaseID string
	migrateDir string
}

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	opts := options{}
	flag.StringVar(&opts.projectID, "project", cfg.Spanner.ProjectID, "GCP project ID")
	flag.StringVar(&opts.instanceID, "instance", cfg.Spanner.InstanceID, "Spanner instance ID")
	flag.StringVar(&opts.databaseID, "database", cfg.Spanner.DatabaseID, "Spanner database ID")
	flag.StringVar(&opts.migrateDir, "migrations", "migrations", "Directory containing migration SQL files")
	flag.Parse()

	log, err := logger.New(cfg.Server.Env, cfg.Server.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Check if using emulator
	if emulatorHost := os.Getenv("SPANNER_EMULATOR_HOST"); emulatorHost != "" {
		log.Info("using Spanner emulator", zap.String("host", emulatorHost))
	}

	if err := run(context.Background(), opts, log); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	log.Info("migrations completed successfully")
}

func run(ctx context.Context, opts options, log *zap.Logger) error {
	if err := ensureInstance(ctx, opts, log); err != nil {
		return fmt.Errorf("failed to ensure instance: %w", err)
	}

	if err := ensureDatabase(ctx, opts, log); err != nil {
		return fmt.Errorf("failed to ensure database: %w", err)
	}

	if err := applyMigrations(ctx, opts, log); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

func ensureInstance(ctx context.Context, opts options, log *zap.Logger) error {
	log.Info("ensuring instance exists", zap.String("instance", opts.instanceID))

	instanceAdmin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer instanceAdmin.Close()

	_, err = instanceAdmin.GetInstance(ctx, &instancepb.GetInstanceRequest{
		Name: fmt.Sprintf("projects/%s/instances/%s", opts.projectID, opts.instanceID),
	})
	if err == nil {
		log.Info("instance already exists")
		return nil
	}

	if status.Code(err) != codes.NotFound {
		log.Warn("unexpected error checking instance", zap.Error(err))
		return nil
	}

	log.Info("creating instance")
	op, err := instanceAdmin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     fmt.Sprintf("projects/%s", opts.projectID),
		InstanceId: opts.instanceID,
		Instance: &instancepb.Instance{
			Config:      fmt.Sprintf("projects/%s/instanceConfigs/emulator-config", opts.projectID),
			DisplayName: "Sale Price Instance",
			NodeCount:   1,
		},
	})
	if err != nil {
		if status.Code(err) != codes.AlreadyExists {
			return fmt.Errorf("failed to create instance: %w", err)
		}
		log.Info("instance already exists")
		return nil
	}

	// The emulator may complete immediately
	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		log.Warn("instance creation did not finish cleanly", zap.Error(err))
	}

	log.Info("instance created")
	return nil
}

func ensureDatabase(ctx context.Context, opts options, log *zap.Logger) error {
	log.Info("ensuring database exists", zap.String("database", opts.databaseID))

	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	_, err = adminClient.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: databasePath(opts)})
	if err == nil {
		log.Info("database already exists")
		return nil
	}

	if status.Code(err) == codes.NotFound {
		log.Info("creating database")
		op, err := adminClient.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
			Parent:          fmt.Sprintf("projects/%s/instances/%s", opts.projectID, opts.instanceID),
			CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", opts.databaseID),
		})
		if err != nil {
			if status.Code(err) != codes.AlreadyExists {
				return fmt.Errorf("failed to create database: %w", err)
			}
			log.Info("database already exists")
			return nil
		}

		if _, err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to wait for database creation: %w", err)
		}

		log.Info("database created")
		return nil
	}

	// For other errors on emulator, just proceed - the DB might exist
	if os.Getenv("SPANNER_EMULATOR_HOST") != "" {
		log.Warn("proceeding with database in emulator mode", zap.Error(err))
		return nil
	}

	return fmt.Errorf("failed to check database: %w", err)
}

func applyMigrations(ctx context.Context, opts options, log *zap.Logger) error {
	log.Info("applying migrations", zap.String("dir", opts.migrateDir))

	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	files, err := filepath.Glob(filepath.Join(opts.migrateDir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migration files: %w", err)
	}
	sort.Strings(files)

	if len(files) == 0 {
		log.Info("no migration files found")
		return nil
	}

	for _, file := range files {
		migrationName := filepath.Base(file)

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		op, err := adminClient.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
			Database:   databasePath(opts),
			Statements: splitDDLStatements(string(content)),
		})
		if err != nil {
			return fmt.Errorf("failed to start DDL update for %s: %w", migrationName, err)
		}

		if err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to apply DDL for %s: %w", migrationName, err)
		}

		log.Info("applied migration", zap.String("file", migrationName))
	}

	return nil
}

func databasePath(opts options) string {
	return config.SpannerConfig{
		ProjectID:  opts.projectID,
		InstanceID: opts.instanceID,
		DatabaseID: opts.databaseID,
	}.DatabasePath()
}

// splitDDLStatements drops comment lines and splits on semicolons.
func splitDDLStatements(content string) []string {
	var cleaned []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	var result []string
	for _, stmt := range strings.Split(strings.Join(cleaned, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			result = append(result, stmt)
		}
	}

	return result
}
