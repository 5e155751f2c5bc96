package bootstrap

import (
	"log"

	"ai-finance-assistant-be/internal/config"
	"ai-finance-assistant-be/internal/controller"
	"ai-finance-assistant-be/internal/pkg/logger"
	"ai-finance-assistant-be/internal/repository/memory"
	"ai-finance-assistant-be/internal/service"
	"ai-finance-assistant-be/pkg/agents"
	"ai-finance-assistant-be/pkg/embedding"
	"ai-finance-assistant-be/pkg/knowledge"
	"ai-finance-assistant-be/pkg/llm"
	"ai-finance-assistant-be/pkg/llm/ollama"
	"ai-finance-assistant-be/pkg/market"
	"ai-finance-assistant-be/pkg/retrieval"
	"ai-finance-assistant-be/pkg/workflow"
)

type Container struct {
	// Controllers
	AdvisorController controller.IAdvisorController
	MarketController  controller.IMarketController

	// Exposed for the interactive CLI
	Manager *workflow.Manager
	Logger  logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Knowledge base. An empty corpus means every responder would
	// run ungrounded, so refuse to start.
	store := knowledge.NewStore(cfg.Knowledge.BasePath, sysLogger)
	loaded, err := store.Load()
	if err != nil {
		log.Fatalf("[FATAL] Failed to load knowledge base: %v", err)
	}
	if loaded == 0 {
		log.Fatalf("[FATAL] Knowledge base at %s contains no documents", cfg.Knowledge.BasePath)
	}
	log.Printf("[INFO] Loaded %d knowledge base documents", loaded)

	// 3. Embedding provider. "none" selects fallback retrieval outright.
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		log.Printf("[INFO] No embedding provider configured, retrieval runs in fallback mode")
	}

	retriever := retrieval.NewRetriever(store, embeddingProvider, sysLogger)

	// 4. Generation backend with model fallback and retry. Generation
	// attempts get their own log file so prompt traffic does not drown
	// the application log.
	llmLogger := logger.NewIsolatedLogger("logs/llm.log")
	candidates := append([]string{cfg.Ai.LLMModel}, cfg.Ai.LLMFallbackModels...)
	policy := llm.DefaultRetryPolicy()
	policy.MaxRetries = cfg.Ai.MaxRetries
	llmProvider := llm.NewResilientProvider(
		ollama.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.LLMModel),
		candidates,
		policy,
		llmLogger,
	)
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 5. Market data with TTL-cached quotes.
	marketProvider := market.NewHTTPProvider(cfg.Market.BaseURL, cfg.Market.CacheTTL, sysLogger)

	// 6. Conversation workflow: detector, router, one responder per
	// intent, in-memory sessions.
	detector := workflow.NewIntentDetector()
	router := workflow.NewRouter(detector, sysLogger)
	router.Register(workflow.IntentFinanceQA, agents.NewFinanceQA(retriever, llmProvider, sysLogger))
	router.Register(workflow.IntentPortfolioAnalysis, agents.NewPortfolioAnalysis(retriever, llmProvider, marketProvider, sysLogger))
	router.Register(workflow.IntentMarketAnalysis, agents.NewMarketAnalysis(retriever, llmProvider, marketProvider, sysLogger))
	router.Register(workflow.IntentGoalPlanning, agents.NewGoalPlanning(retriever, llmProvider, sysLogger))
	router.Register(workflow.IntentNewsSynthesizer, agents.NewNewsSynthesizer(retriever, llmProvider, marketProvider, sysLogger))
	router.Register(workflow.IntentTaxEducation, agents.NewTaxEducation(retriever, llmProvider, sysLogger))

	sessionRepo := memory.NewSessionRepository()
	manager := workflow.NewManager(router, sessionRepo, sysLogger)

	// 7. Services and controllers
	advisorService := service.NewAdvisorService(manager, sysLogger)
	marketService := service.NewMarketService(marketProvider)

	return &Container{
		AdvisorController: controller.NewAdvisorController(advisorService),
		MarketController:  controller.NewMarketController(marketService),
		Manager:           manager,
		Logger:            sysLogger,
	}
}
