// Package app assembles the settlement engine from configuration. It is shared
// by the API server and the operator CLI.
package app

import (
	"context"
	"fmt"
	"net/http"

	"subra-settlement/config"
	httpHandler "subra-settlement/internal/adapter/http/handler"
	"subra-settlement/internal/adapter/http/middleware"
	"subra-settlement/internal/adapter/ledger"
	"subra-settlement/internal/adapter/metrics"
	pgStorage "subra-settlement/internal/adapter/storage/postgres"
	redisStorage "subra-settlement/internal/adapter/storage/redis"
	"subra-settlement/internal/core/domain"
	"subra-settlement/internal/core/ports"
	"subra-settlement/internal/service"
	"subra-settlement/pkg/logger"

	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// App holds the wired services and the connections they share.
type App struct {
	Config   *config.Config
	Log      zerolog.Logger
	Pool     *pgxpool.Pool
	Redis    *goredis.Client
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
	Ledger   *ledger.RPCClient
	Assets   *domain.AssetRegistry

	Agents      *pgStorage.AgentRepo
	Activity    *redisStorage.ActivityFeed
	RateLimits  *redisStorage.RateLimitStore
	Locks       *redisStorage.LockStore
	Executor    *service.PaymentExecutorImpl
	Custody     *service.WalletCustodyServiceImpl
	UserWallets *service.UserWalletServiceImpl
	Purchases   *service.PurchaseServiceImpl
	Verifier    *service.PaymentVerifierImpl
	Experience  *service.ExperienceServiceImpl
	Reconciler  *service.ReconcilerImpl
	Tokens      *service.JWTTokenService
	Audit       ports.AuditService
}

// NewRegistry returns a registry with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// NewAssets builds the asset registry from the configured token.
func NewAssets(cfg config.SolanaConfig) (*domain.AssetRegistry, error) {
	if cfg.TokenMint == "" {
		return domain.NewAssetRegistry(), nil
	}
	mint, err := solana.PublicKeyFromBase58(cfg.TokenMint)
	if err != nil {
		return nil, fmt.Errorf("parsing token mint %q: %w", cfg.TokenMint, err)
	}
	return domain.NewAssetRegistry(domain.TokenAsset{
		Ticker:   cfg.TokenSymbol,
		Mint:     mint,
		Exponent: cfg.TokenDecimals,
	}), nil
}

// NewLedger creates the JSON-RPC ledger client.
func NewLedger(cfg config.SolanaConfig, m *metrics.Metrics, log zerolog.Logger) *ledger.RPCClient {
	return ledger.NewRPCClient(cfg.RPCURL, ledger.Config{
		Commitment:        cfg.Commitment,
		PollInterval:      cfg.PollInterval,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
		BreakerFailures:   cfg.BreakerFailures,
		BreakerTimeout:    cfg.BreakerTimeout,
	}, m, logger.Component(log, "ledger"))
}

// New connects to PostgreSQL and Redis and wires every service.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt.secret is required")
	}
	cipher, err := service.NewAESKeyCipher(cfg.Custody.AgentKey)
	if err != nil {
		return nil, fmt.Errorf("initializing key cipher: %w", err)
	}
	assets, err := NewAssets(cfg.Solana)
	if err != nil {
		return nil, err
	}
	feeBuffer, err := cfg.Solana.FeeBufferAmount()
	if err != nil {
		return nil, err
	}

	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("connecting to PostgreSQL: %w", err)
	}
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	a := &App{
		Config:   cfg,
		Log:      log,
		Pool:     pool,
		Redis:    rdb,
		Registry: NewRegistry(),
		Assets:   assets,
	}
	a.Metrics = metrics.New(a.Registry)
	a.Ledger = NewLedger(cfg.Solana, a.Metrics, log)

	// Repositories
	a.Agents = pgStorage.NewAgentRepo(pool)
	walletRepo := pgStorage.NewAgentWalletRepo(pool)
	txRepo := pgStorage.NewTransactionRepo(pool)
	skillRepo := pgStorage.NewSkillRepo(pool)
	auditRepo := pgStorage.NewAuditRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Redis stores
	a.Activity = redisStorage.NewActivityFeed(rdb)
	a.RateLimits = redisStorage.NewRateLimitStore(rdb)
	a.Locks = redisStorage.NewLockStore(rdb)
	balances := redisStorage.NewBalanceCache(rdb)
	outcomes := redisStorage.NewOutcomeCache(rdb)

	builder := service.NewPaymentBuilder(a.Ledger, cfg.Solana.CreateRecipientTokenAccount)
	a.Executor = service.NewPaymentExecutor(a.Ledger, builder, assets, service.ExecutorConfig{
		ConfirmTimeout: cfg.Solana.ConfirmTimeout,
		FeeBuffer:      feeBuffer,
	}, a.Metrics, logger.Component(log, "executor"))

	a.Experience = service.NewExperienceService(skillRepo, transactor, a.Activity, logger.Component(log, "experience"))
	a.Custody = service.NewWalletCustodyService(
		walletRepo,
		a.Agents,
		txRepo,
		cipher,
		a.Ledger,
		a.Executor,
		balances,
		a.Activity,
		cfg.Custody.BalanceCacheTTL,
		logger.Component(log, "custody"),
	)
	a.Purchases = service.NewPurchaseService(
		txRepo,
		a.Custody,
		a.Executor,
		a.Experience,
		outcomes,
		a.Locks,
		a.Activity,
		service.PurchaseConfig{
			ExperiencePoints: cfg.Purchase.ExperiencePoints,
			LockTTL:          cfg.Purchase.LockTTL,
			OutcomeTTL:       cfg.Purchase.OutcomeTTL,
		},
		logger.Component(log, "purchase"),
	)
	a.Reconciler = service.NewReconciler(txRepo, a.Ledger, a.Experience, a.Activity, service.ReconcilerConfig{
		StaleAfter:       cfg.Reconciler.StaleAfter,
		BatchSize:        cfg.Reconciler.BatchSize,
		ExperiencePoints: cfg.Purchase.ExperiencePoints,
	}, a.Metrics, logger.Component(log, "reconciler"))

	a.Verifier = service.NewPaymentVerifier(a.Ledger, assets, logger.Component(log, "verifier"))
	a.UserWallets = service.NewUserWalletService(service.NewArgon2Vault(), logger.Component(log, "user_wallet"))
	a.Tokens = service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	a.Audit = service.NewAuditService(auditRepo, logger.Component(log, "audit"))

	return a, nil
}

// Scheduler returns the cron driver of the reconciler.
func (a *App) Scheduler() *service.ReconcileScheduler {
	return service.NewReconcileScheduler(
		a.Reconciler,
		a.Locks,
		a.Config.Reconciler.Schedule,
		a.Config.Reconciler.Timeout,
		logger.Component(a.Log, "scheduler"),
	)
}

// RateLimitRules applies the configured budgets on top of the defaults.
func (a *App) RateLimitRules() map[string]middleware.RateLimitRule {
	rules := middleware.DefaultRateLimitRules()
	rl := a.Config.RateLimit
	if rl.Window <= 0 {
		return rules
	}
	if rl.Purchase > 0 {
		rules["purchase"] = middleware.RateLimitRule{Limit: int64(rl.Purchase), Window: rl.Window}
	}
	if rl.Funding > 0 {
		rules["wallet_fund"] = middleware.RateLimitRule{Limit: int64(rl.Funding), Window: rl.Window}
	}
	return rules
}

// Router builds the HTTP handler.
func (a *App) Router() *gin.Engine {
	return httpHandler.SetupRouter(httpHandler.RouterDeps{
		Custody:        a.Custody,
		UserWallets:    a.UserWallets,
		Purchases:      a.Purchases,
		Executor:       a.Executor,
		Verifier:       a.Verifier,
		Experience:     a.Experience,
		Agents:         a.Agents,
		TokenSvc:       a.Tokens,
		Assets:         a.Assets,
		Activity:       a.Activity,
		RateLimitStore: a.RateLimits,
		RateLimitRules: a.RateLimitRules(),
		MaxBodyBytes:   a.Config.Server.MaxBodyBytes,
		HealthCheckers: []ports.HealthChecker{
			pgStorage.NewHealthCheck(a.Pool),
			redisStorage.NewHealthCheck(a.Redis),
			a.Ledger,
		},
		AuditSvc:       a.Audit,
		Metrics:        a.Metrics,
		MetricsHandler: promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{Registry: a.Registry}),
		Logger:         logger.Component(a.Log, "http"),
	})
}

// MetricsHandler serves the registry without the gin stack.
func (a *App) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{Registry: a.Registry})
}

// Close releases the connections.
func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.Pool != nil {
		a.Pool.Close()
	}
}
