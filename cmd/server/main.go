package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/redis/go-redis/v9"

	"github.com/moodjournal/mood-api/internal/advice"
	"github.com/moodjournal/mood-api/internal/api"
	"github.com/moodjournal/mood-api/internal/config"
	"github.com/moodjournal/mood-api/internal/pkg/logger"
	"github.com/moodjournal/mood-api/internal/repository/postgres"
	"github.com/moodjournal/mood-api/internal/repository/rediscache"
	"github.com/moodjournal/mood-api/internal/service/entry"
	"github.com/moodjournal/mood-api/internal/service/sobriety"
	"github.com/moodjournal/mood-api/internal/service/summary"
)

// checkPortAvailable verifies that the target port is not already in use.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v", port, addr, err)
	}
	ln.Close()
	return nil
}

// extractHost returns the host part of a DSN so it can be logged without
// credentials.
func extractHost(dsn string) string {
	at := strings.Index(dsn, "@")
	if at < 0 {
		return "(unknown)"
	}
	rest := dsn[at+1:]
	if slash := strings.Index(rest, "/"); slash >= 0 {
		rest = rest[:slash]
	}
	return rest
}

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.SetLevel(logger.ParseLevel(cfg.Logging.Level))
	logger.SetRedactPII(cfg.Logging.RedactEnabled())

	host := cfg.Server.GetHost()
	if err := checkPortAvailable(host, cfg.Server.Port); err != nil {
		log.Fatalf("Pre-flight check FAILED: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	if cfg.Database.URL == "" {
		log.Fatalf("DATABASE_URL is not set")
	}
	log.Printf("[db] connecting to ...@%s/...", extractHost(cfg.Database.URL))
	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Redis (optional)
	var redisClient *redis.Client
	if cfg.Redis.Enabled && cfg.Redis.URL != "" {
		redisClient, err = rediscache.NewClient(cfg.Redis.URL)
		if err != nil {
			log.Printf("[redis] WARNING: %v; continuing without Redis", err)
		} else if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("[redis] WARNING: ping failed: %v; continuing without Redis", err)
			redisClient.Close()
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Printf("[redis] connected")
		}
	}

	// Advice cache
	var cache summary.AdviceCache = postgres.NewAdviceRepo(db)
	if cfg.Cache.Backend == "redis" {
		if redisClient != nil {
			cache = rediscache.NewAdviceCache(redisClient)
		} else {
			log.Printf("[cache] redis backend requested but Redis is unavailable; using postgres")
		}
	}

	// Advice generator
	var genOpts []advice.Option
	if cfg.Bedrock.Enabled {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Bedrock.Region))
		if err != nil {
			log.Printf("[bedrock] WARNING: failed to load AWS config: %v", err)
		} else {
			client := bedrockruntime.NewFromConfig(awsCfg)
			genOpts = append(genOpts, advice.WithBedrock(advice.NewBedrockClient(client, cfg.Bedrock.MaxTokens)))
			log.Printf("[bedrock] enabled in %s", cfg.Bedrock.Region)
		}
	}
	generator, err := advice.New(cfg.LLM, genOpts...)
	if err != nil {
		log.Fatalf("Failed to initialize advice generator: %v", err)
	}
	if cfg.LLM.APIKey == "" {
		log.Printf("[advice] WARNING: no LLM API key configured")
	}
	log.Printf("[advice] model chain: %s", strings.Join(cfg.LLM.Models, " -> "))

	// Services
	entrySvc := entry.NewService(postgres.NewEntryRepo(db))
	summarySvc := summary.NewService(entrySvc, cache, generator,
		summary.WithFreshness(cfg.Cache.Freshness()),
		summary.WithMaxSpanDays(cfg.Summary.MaxRangeDays))
	sobrietySvc := sobriety.NewService(postgres.NewSobrietyRepo(db))

	handlers := api.NewHandlers(summarySvc, generator, entrySvc, sobrietySvc, cfg.LLM.DefaultLanguage)
	server := api.NewServer(cfg.Server, handlers, api.NewHealthChecker(db, redisClient))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		addr := fmt.Sprintf("%s:%d", host, cfg.Server.Port)
		log.Printf("Starting server on %s", addr)
		if err := server.ListenAndServe(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
