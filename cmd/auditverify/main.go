// auditverify is the operator tool for the audit trail: it connects to the
// configured store, walks the hash chain, and exits non-zero when the chain
// does not hold. Run it from cron or a CI gate.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"compliance-audit-trail/config"
	"compliance-audit-trail/internal/adapter/bus/logbus"
	redisBus "compliance-audit-trail/internal/adapter/bus/redis"
	pgStorage "compliance-audit-trail/internal/adapter/storage/postgres"
	"compliance-audit-trail/internal/core/ports"
	"compliance-audit-trail/internal/service"
	"compliance-audit-trail/pkg/logger"
	"compliance-audit-trail/pkg/metrics"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to config file (optional)")
		pingOnly   = flag.Bool("ping", false, "check database connectivity and exit")
		startID    = flag.String("start", "", "entry id to start verification at")
		endID      = flag.String("end", "", "entry id to stop verification at")
		showStats  = flag.Bool("stats", false, "print trail statistics after verification")
		timeout    = flag.Duration("timeout", 2*time.Minute, "overall run timeout")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	if *pingOnly {
		check := pgStorage.NewHealthCheck(pool)
		if err := check.Ping(ctx); err != nil {
			log.Fatal().Err(err).Str("dependency", check.Name()).Msg("Health check failed")
		}
		fmt.Printf("%s: OK\n", check.Name())
		return
	}

	store := pgStorage.NewEntryStore(pool)

	// Notifications go to Redis when it is reachable; verification does not
	// need a bus, so a failed connection only downgrades to log output.
	var pub ports.EventPublisher
	if rdb, err := redisBus.NewClient(ctx, cfg.Redis, log); err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, notifications fall back to the log")
		pub = logbus.NewPublisher(log)
	} else {
		defer rdb.Close()
		pub = redisBus.NewPublisher(rdb, cfg.Redis.Channel)
	}

	trail, err := service.NewTrailService(ctx, store, pub, log, metrics.New(), cfg.Audit.ToTrailConfig())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize audit trail")
	}

	result, err := trail.VerifyIntegrity(ctx, *startID, *endID)
	if err != nil {
		log.Fatal().Err(err).Msg("Verification failed to run")
	}

	fmt.Printf("checked: %d\n", result.CheckedCount)
	if result.Valid {
		fmt.Println("chain: OK")
	} else {
		fmt.Println("chain: BROKEN")
		for _, id := range result.InvalidEntries {
			fmt.Printf("invalid: %s\n", id)
		}
	}

	if *showStats {
		stats, err := trail.GetStats(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to compute stats")
		}
		fmt.Printf("entries: %d (24h: %d, 7d: %d, 30d: %d), users: %d\n",
			stats.TotalEntries, stats.Last24h, stats.Last7d, stats.Last30d, stats.DistinctUsers)
	}

	if !result.Valid {
		os.Exit(1)
	}
}
