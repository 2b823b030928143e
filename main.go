package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bolosign/bolosign/backend/go-services/handlers"
	"github.com/bolosign/bolosign/backend/go-services/internal/assembler"
	auditsvc "github.com/bolosign/bolosign/backend/go-services/internal/audit/service"
	"github.com/bolosign/bolosign/backend/go-services/internal/compositor"
	"github.com/bolosign/bolosign/backend/go-services/internal/config"
	"github.com/bolosign/bolosign/backend/go-services/internal/database"
	"github.com/bolosign/bolosign/backend/go-services/internal/fetch"
	"github.com/bolosign/bolosign/backend/go-services/internal/pdfio"
	"github.com/bolosign/bolosign/backend/go-services/internal/storage"
	"github.com/bolosign/bolosign/backend/go-services/pkg/logger"
	"github.com/bolosign/bolosign/backend/go-services/pkg/metrics"
	"github.com/bolosign/bolosign/backend/go-services/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging level is controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v output=%s", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.Signing.OutputDir)

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple — production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// Global middlewares: logging + recovery
	r.Use(gin.Logger(), gin.Recovery())

	ctx := context.Background()

	// Connect to Redis early so the rate-limiter can use it when configured
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Audit trail: Mongo-backed when configured, in-memory otherwise.
	audits := auditsvc.NewMemoryService()
	if cfg.MongoDB.URI != "" {
		// Retry/backoff when connecting to MongoDB to tolerate startup races
		const maxAttempts = 5
		backoff := time.Second
		var client *mongo.Client
		var errConn error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			client, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if errConn == nil {
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
		if errConn != nil {
			logger.Warnf("could not connect to MongoDB after %d attempts, audit trail is in-memory only: %v", maxAttempts, errConn)
		} else {
			defer func() { _ = client.Disconnect(ctx) }()
			col := client.Database(cfg.MongoDB.Database).Collection("audit_trails")
			audits = auditsvc.NewMongoService(col)
			logger.Infof("audit trail stored in MongoDB database %q", cfg.MongoDB.Database)
		}
	}

	// Artifact store: MinIO when configured, local directory otherwise.
	var store storage.Store
	if mcfg := storage.LoadMinIOConfig(); mcfg.Endpoint != "" {
		s, err := storage.NewMinIOStore(mcfg)
		if err != nil {
			logger.Fatalf("failed to initialize MinIO store: %v", err)
		}
		store = s
		logger.Infof("artifacts stored in MinIO bucket %q at %s", mcfg.Bucket, mcfg.Endpoint)
	} else {
		local, err := storage.NewLocalStore(cfg.Signing.OutputDir, cfg.Signing.BaseURL)
		if err != nil {
			logger.Fatalf("failed to initialize local store: %v", err)
		}
		store = local
		r.Static("/uploads", local.Dir())
		logger.Infof("artifacts stored in %s, served under /uploads", local.Dir())
	}

	// The compositing pipeline itself.
	fetcher := fetch.NewClient(cfg.Signing.DocumentRoot, cfg.Signing.FetchTimeout, int64(cfg.Signing.MaxDocumentBytes))
	comp := compositor.New(cfg.Signing.MaxImageBytes)
	signer := assembler.New(fetcher, pdfio.Open, comp, cfg.Signing.MaxFields)

	// Middleware on the signing routes: JWT auth when a secret is set, then
	// the rate limiter (Redis-backed when available).
	var mw []gin.HandlerFunc
	if cfg.JWT.Secret != "" {
		mw = append(mw, middleware.JWTAuthMiddleware(cfg.JWT.Secret))
	}
	if cfg.RateLimit.Enabled {
		if redisClient != nil {
			mw = append(mw, middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, time.Second))
		} else {
			mw = append(mw, middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	handlers.NewSignHandler(signer, store, audits).RegisterRoutes(r, mw...)
	handlers.RegisterSwagger(r)

	// Basic health endpoint
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness endpoint — return 200 only when critical dependencies are available
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		deps["storage"] = store != nil
		if !deps["storage"] {
			ready = false
		}

		// Mongo is optional; when configured it must have connected for the
		// audit trail to be durable
		if cfg.MongoDB.URI != "" {
			deps["mongo"] = audits != nil
		} else {
			deps["mongo"] = true
		}

		// Redis readiness only matters when the limiter depends on it
		if cfg.Redis.Host != "" && cfg.RateLimit.Enabled {
			deps["redis"] = redisClient != nil
			if !deps["redis"] {
				ready = false
			}
		} else {
			deps["redis"] = true
		}

		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": time.Since(startTime).String()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": time.Since(startTime).String()})
	})

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting signing service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
