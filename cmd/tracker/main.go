// Package main runs the deck match tracker web server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/ramonehamilton/PokePoke-Tracker/internal/api"
	"github.com/ramonehamilton/PokePoke-Tracker/internal/cache"
	"github.com/ramonehamilton/PokePoke-Tracker/internal/charts"
	"github.com/ramonehamilton/PokePoke-Tracker/internal/config"
	"github.com/ramonehamilton/PokePoke-Tracker/internal/storage"
	"github.com/ramonehamilton/PokePoke-Tracker/internal/version"
)

var (
	configPath = flag.String("config", "tracker.toml", "Path to the TOML configuration file")
	host       = flag.String("host", "", "Bind address (overrides config)")
	port       = flag.Int("port", 0, "Listen port (overrides config)")
	dbPath     = flag.String("db-path", "", "Database path (overrides config)")
	backup     = flag.Bool("backup", false, "Write a database backup and exit")
	backupDir  = flag.String("backup-dir", "", "Backup directory (default: backups/ next to the database)")
	initConfig = flag.Bool("init-config", false, "Write the effective configuration to -config and exit")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		color.Red("Configuration error: %v", err)
		os.Exit(1)
	}

	if *initConfig {
		if err := cfg.Save(*configPath); err != nil {
			color.Red("Failed to write config: %v", err)
			os.Exit(1)
		}
		color.Green("Configuration written to %s", *configPath)
		return
	}

	loc, _ := cfg.Location()
	busyTimeout, _ := cfg.BusyTimeout()

	color.Cyan("PokePoke Tracker %s", version.String())
	color.Cyan("================")
	fmt.Printf("Database: %s\n", cfg.Database.Path)
	fmt.Printf("Timezone: %s\n", loc)
	fmt.Printf("Listen:   %s\n", cfg.Addr())

	// Open database
	dbConfig := storage.DefaultConfig(cfg.Database.Path)
	dbConfig.AutoMigrate = true
	dbConfig.BusyTimeout = busyTimeout
	if cfg.Database.JournalMode != "" {
		dbConfig.JournalMode = strings.ToUpper(cfg.Database.JournalMode)
	}
	db, err := storage.Open(dbConfig)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	if *backup {
		err := runBackup(db)
		if closeErr := db.Close(); closeErr != nil {
			log.Printf("Error closing database: %v", closeErr)
		}
		if err != nil {
			color.Red("Backup failed: %v", err)
			os.Exit(1)
		}
		return
	}

	if err := serve(cfg, db, waitForSignal()); err != nil {
		color.Red("%v", err)
		os.Exit(1)
	}
}

// waitForSignal returns a channel that fires on SIGINT or SIGTERM.
func waitForSignal() <-chan os.Signal {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	return sigChan
}

// serve runs the tracker on db until stop fires, then shuts down within 10s.
// It owns db and closes it on every path.
func serve(cfg *config.Config, db *storage.DB, stop <-chan os.Signal) error {
	loc, _ := cfg.Location()
	cacheTTL, _ := cfg.CacheTTL()

	serviceConfig := &storage.ServiceConfig{Location: loc}
	if cfg.Cache.RedisAddr != "" {
		serviceConfig.Cache = openCache(cfg, cacheTTL)
	}

	storageService := storage.NewServiceWithConfig(db, serviceConfig)
	defer func() {
		if err := storageService.Close(); err != nil {
			log.Printf("Error closing storage service: %v", err)
		}
	}()

	server := api.NewServer(&api.Config{
		Host:      cfg.Server.Host,
		Port:      cfg.Server.Port,
		RateLimit: cfg.Server.RateLimit,
		RateBurst: cfg.Server.RateBurst,
		Chart:     charts.DefaultChartConfig(),
	}, storageService)

	if err := server.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	fmt.Println()
	color.Green("Tracker running at http://%s", server.Addr())
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	<-stop

	fmt.Println()
	fmt.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	fmt.Println("Tracker stopped.")
	return nil
}

// loadConfig layers the TOML file, .env, TRACKER_* variables and flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}

	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "host":
			cfg.Server.Host = *host
		case "port":
			cfg.Server.Port = *port
		case "db-path":
			cfg.Database.Path = *dbPath
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openCache connects to Redis, falling back to no caching when it is
// unreachable.
func openCache(cfg *config.Config, ttl time.Duration) cache.Cache {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	redisCache, err := cache.NewRedis(ctx, cache.RedisConfig{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
		TTL:      ttl,
	})
	if err != nil {
		color.Yellow("Stats cache disabled: %v", err)
		return cache.NewNoop()
	}

	color.Green("Stats cache: redis at %s (ttl %s)", cfg.Cache.RedisAddr, ttl)
	return redisCache
}

// runBackup writes a verified backup and lists what the directory holds.
func runBackup(db *storage.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	info, err := db.Backup(ctx, &storage.BackupConfig{Dir: *backupDir, Verify: true})
	if err != nil {
		return err
	}

	color.Green("Backup written to %s", info.Path)
	fmt.Printf("  %d decks, %d matches, %d bytes, sha256 %s\n", info.Decks, info.Matches, info.Size, info.Checksum)

	dir := *backupDir
	if dir == "" {
		dir = db.BackupDir()
	}
	backups, err := storage.ListBackups(dir)
	if err != nil {
		return err
	}
	fmt.Printf("%d backup(s) in %s\n", len(backups), dir)
	return nil
}
