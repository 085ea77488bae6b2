package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/converse-core/internal/adapters/driven/ai"
	"github.com/custodia-labs/converse-core/internal/adapters/driven/auth"
	"github.com/custodia-labs/converse-core/internal/adapters/driven/postgres"
	redisadapter "github.com/custodia-labs/converse-core/internal/adapters/driven/redis"
	httpadapter "github.com/custodia-labs/converse-core/internal/adapters/driving/http"
	"github.com/custodia-labs/converse-core/internal/core/domain"
	"github.com/custodia-labs/converse-core/internal/core/ports/driven"
	"github.com/custodia-labs/converse-core/internal/core/services"
	"github.com/custodia-labs/converse-core/internal/index"
	"github.com/custodia-labs/converse-core/internal/runtime"
)

var version = "dev"

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	log.Printf("converse-core %s starting", version)

	// Configuration from environment
	port := getEnvInt("PORT", 8080)
	defaultTenant := getEnv("DEFAULT_TENANT", domain.DefaultTenant)
	supportContact := getEnv("SUPPORT_CONTACT", "support@example.com")
	llmTimeout := time.Duration(getEnvInt("LLM_TIMEOUT", 15)) * time.Second
	databaseURL := getEnv("DATABASE_URL", "")
	jwtSecret := getEnv("JWT_SECRET", "development-secret-change-in-production")
	adminEmail := getEnv("ADMIN_EMAIL", "")
	adminPasswordHash := getEnv("ADMIN_PASSWORD_HASH", "")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	// ===== Initialize Redis =====
	redisAddr := fmt.Sprintf("%s:%s", getEnv("REDIS_HOST", "localhost"), getEnv("REDIS_PORT", "6379"))
	redisClient := redis.NewClient(&redis.Options{
		Addr: redisAddr,
		DB:   getEnvInt("REDIS_DB", 0),
	})

	var redisAvailable bool
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("Redis not available at %s: %v", redisAddr, err)
		redisClient.Close()
		redisClient = nil
	} else {
		redisAvailable = true
		defer redisClient.Close()
		log.Println("Redis connected")
	}

	// ===== Choose backing stores: Redis if available, otherwise PostgreSQL =====
	var (
		tenantStore    driven.TenantStore
		recordStore    driven.RecordStore
		knowledgeStore driven.KnowledgeStore
		storePinger    httpadapter.Pinger
		recordBackend  string
	)

	if redisAvailable {
		recordBackend = "redis"
		rts := redisadapter.NewTenantStore(redisClient)
		tenantStore = rts
		recordStore = redisadapter.NewRecordStore(redisClient)
		knowledgeStore = redisadapter.NewKnowledgeStore(redisClient)
		storePinger = rts
	} else {
		if databaseURL == "" {
			log.Fatal("Neither Redis nor DATABASE_URL is available; cannot start without a backing store")
		}
		recordBackend = "postgres"
		log.Println("Falling back to PostgreSQL...")
		db, err := postgres.Connect(ctx, postgres.DefaultConfig(databaseURL))
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := db.InitSchema(ctx); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
		log.Println("PostgreSQL connected and schema initialized")

		tenantStore = postgres.NewTenantStore(db)
		recordStore = postgres.NewRecordStore(db)
		knowledgeStore = postgres.NewKnowledgeStore(db)
		storePinger = pingerFunc(db.PingContext)
	}

	// ===== Initialize AI services =====
	runtimeConfig := domain.NewRuntimeConfig(recordBackend)
	aiServices := runtime.NewServices(runtimeConfig)
	defer aiServices.Close()

	factory := ai.NewFactory()
	configureAIServices(ctx, factory, aiServices)

	// ===== Wire core services =====
	cache := index.NewCache()
	replies := domain.DefaultReplies(supportContact)
	resolver := services.NewTenantResolver(tenantStore, defaultTenant, logger)
	generator := services.NewBoundedGenerator(aiServices, logger)

	assistantService := services.NewAssistantService(services.AssistantConfig{
		Resolver:  resolver,
		Knowledge: knowledgeStore,
		Records:   recordStore,
		Cache:     cache,
		Services:  aiServices,
		Generator: generator,
		Replies:   replies,
		Timeout:   llmTimeout,
		Logger:    logger,
	})
	adminService := services.NewAdminService(tenantStore, knowledgeStore, cache, aiServices, logger)
	authService := services.NewAuthService(adminEmail, adminPasswordHash, auth.NewAdapter(jwtSecret))

	if adminEmail == "" || adminPasswordHash == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD_HASH not set; admin API is disabled")
	}

	// ===== Start HTTP server =====
	serverConfig := httpadapter.Config{
		Host:    getEnv("HOST", "0.0.0.0"),
		Port:    port,
		Version: version,
	}
	server := httpadapter.NewServer(serverConfig, assistantService, adminService, authService, storePinger)

	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// configureAIServices builds AI services from environment settings. Missing
// settings leave the capability flags off; the assistant degrades to its
// fixed replies until an operator fixes the configuration.
func configureAIServices(ctx context.Context, factory *ai.Factory, aiServices *runtime.Services) {
	provider := domain.AIProvider(getEnv("AI_PROVIDER", string(domain.AIProviderOpenAI)))
	apiKey := getEnv("OPENAI_API_KEY", "")
	baseURL := getEnv("AI_BASE_URL", "")

	embedding, err := factory.CreateEmbeddingService(&domain.EmbeddingSettings{
		Provider: provider,
		Model:    getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		APIKey:   apiKey,
		BaseURL:  baseURL,
	})
	if err != nil {
		log.Printf("Failed to create embedding service: %v", err)
	} else if embedding != nil {
		aiServices.SetEmbeddingService(embedding)
		log.Printf("Embedding service ready (model %s)", embedding.Model())
	}

	llm, err := factory.CreateLLMService(&domain.LLMSettings{
		Provider: provider,
		Model:    getEnv("LLM_MODEL", ""),
		APIKey:   apiKey,
		BaseURL:  baseURL,
	})
	if err != nil {
		log.Printf("Failed to create LLM service: %v", err)
	} else if llm != nil {
		aiServices.SetLLMService(llm)
		log.Printf("LLM service ready (model %s)", llm.Model())
	}

	if !aiServices.Config().CanAnswer() {
		log.Println("AI services incomplete; retrieval answers disabled until configured")
	}
}

// pingerFunc adapts a context-taking ping function to the Pinger interface
type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
