package handler

import (
	"net/http"

	"subra-settlement/internal/adapter/http/middleware"
	"subra-settlement/internal/adapter/metrics"
	redisStore "subra-settlement/internal/adapter/storage/redis"
	"subra-settlement/internal/core/domain"
	"subra-settlement/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Custody        ports.WalletCustodyService
	UserWallets    ports.UserWalletService
	Purchases      ports.PurchaseService
	Executor       ports.PaymentExecutor
	Verifier       ports.PaymentVerifier
	Experience     ports.ExperienceService
	Agents         ports.AgentRepository
	TokenSvc       ports.TokenService
	Assets         *domain.AssetRegistry
	Activity       ports.ActivitySubscriber            // nil = no live activity stream
	RateLimitStore *redisStore.RateLimitStore          // nil = rate limiting disabled
	RateLimitRules map[string]middleware.RateLimitRule // nil = DefaultRateLimitRules
	MaxBodyBytes   int64                               // 0 = 1 MB
	HealthCheckers []ports.HealthChecker
	AuditSvc       ports.AuditService // nil = audit logging disabled
	Metrics        *metrics.Metrics   // nil = no request metrics
	MetricsHandler http.Handler       // nil = /metrics not served
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	maxBody := deps.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	r.Use(middleware.MaxBodySize(maxBody))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
	}
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	if deps.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	rules := deps.RateLimitRules
	if rules == nil {
		rules = middleware.DefaultRateLimitRules()
	}
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	walletHandler := NewWalletHandler(deps.Custody, deps.UserWallets)
	purchaseHandler := NewPurchaseHandler(deps.Purchases, deps.Executor, deps.Custody, deps.Activity, deps.Logger)
	paymentHandler := NewPaymentHandler(deps.Verifier, deps.Assets)
	skillHandler := NewSkillHandler(deps.Experience)

	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	v1 := r.Group("/api/v1", jwtAuth)

	agents := v1.Group("/agents/:agentId", middleware.AgentOwnership(deps.Agents, deps.Logger))
	{
		agents.POST("/wallet", rl("wallet"), walletHandler.CreateWallet)
		agents.GET("/wallet", rl("wallet"), walletHandler.GetWallet)
		agents.GET("/wallet/balance", rl("wallet"), walletHandler.GetBalance)
		agents.POST("/wallet/fund", rl("wallet_fund"), walletHandler.FundWallet)

		agents.POST("/tasks/purchase", rl("purchase"), purchaseHandler.ExecutePurchase)
		agents.POST("/payments/quote", rl("wallet"), purchaseHandler.Quote)
		agents.GET("/transactions", rl("wallet"), purchaseHandler.ListTransactions)
		agents.GET("/activity", rl("wallet"), purchaseHandler.ActivityHistory)
		if deps.Activity != nil {
			agents.GET("/activity/stream", purchaseHandler.StreamActivity)
		}

		agents.GET("/skills", rl("wallet"), skillHandler.ListSkills)
		agents.POST("/skills/:skill/experience", rl("wallet"), skillHandler.RecordExperience)
	}

	payments := v1.Group("/payments")
	{
		payments.POST("/verify", rl("verify"), paymentHandler.Verify)
		payments.POST("/url", rl("verify"), paymentHandler.PaymentURL)
	}

	v1.POST("/user-wallets", rl("user_wallet"), walletHandler.CreateUserWallet)

	return r
}
