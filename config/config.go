package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Custody    CustodyConfig    `mapstructure:"custody"`
	Solana     SolanaConfig     `mapstructure:"solana"`
	Purchase   PurchaseConfig   `mapstructure:"purchase"`
	Reconciler ReconcilerConfig `mapstructure:"reconciler"`
	RateLimit  RateLimitConfig  `mapstructure:"ratelimit"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Mode         string `mapstructure:"mode"` // debug, release, test
	MaxBodyBytes int64  `mapstructure:"max_body_bytes"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// MigrateURL returns the connection string in the form expected by the
// golang-migrate pgx v5 driver.
func (d DatabaseConfig) MigrateURL() string {
	return "pgx5" + strings.TrimPrefix(d.DSN(), "postgres")
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

// CustodyConfig holds the process-wide secret that seals agent wallet keys.
type CustodyConfig struct {
	AgentKey        string        `mapstructure:"agent_key"` // 32-byte hex-encoded key for AES-256
	BalanceCacheTTL time.Duration `mapstructure:"balance_cache_ttl"`
}

type SolanaConfig struct {
	RPCURL                      string        `mapstructure:"rpc_url"`
	Commitment                  string        `mapstructure:"commitment"` // processed, confirmed, finalized
	TokenSymbol                 string        `mapstructure:"token_symbol"`
	TokenMint                   string        `mapstructure:"token_mint"`
	TokenDecimals               uint8         `mapstructure:"token_decimals"`
	ConfirmTimeout              time.Duration `mapstructure:"confirm_timeout"`
	PollInterval                time.Duration `mapstructure:"poll_interval"`
	FeeBuffer                   string        `mapstructure:"fee_buffer"` // native units, decimal string
	CreateRecipientTokenAccount bool          `mapstructure:"create_recipient_token_account"`
	RequestsPerSecond           float64       `mapstructure:"requests_per_second"`
	Burst                       int           `mapstructure:"burst"`
	BreakerFailures             uint32        `mapstructure:"breaker_failures"`
	BreakerTimeout              time.Duration `mapstructure:"breaker_timeout"`
}

// FeeBufferAmount parses FeeBuffer, which must be a non-negative decimal.
func (s SolanaConfig) FeeBufferAmount() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s.FeeBuffer))
	if err != nil {
		return decimal.Zero, fmt.Errorf("solana.fee_buffer %q: %w", s.FeeBuffer, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("solana.fee_buffer %q is negative", s.FeeBuffer)
	}
	return d, nil
}

type PurchaseConfig struct {
	ExperiencePoints int           `mapstructure:"experience_points"`
	LockTTL          time.Duration `mapstructure:"lock_ttl"`
	OutcomeTTL       time.Duration `mapstructure:"outcome_ttl"`
}

type ReconcilerConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	Schedule   string        `mapstructure:"schedule"`
	StaleAfter time.Duration `mapstructure:"stale_after"`
	BatchSize  int           `mapstructure:"batch_size"`
	Timeout    time.Duration `mapstructure:"timeout"` // per pass, also the lock lease
}

type RateLimitConfig struct {
	Purchase int           `mapstructure:"purchase"`
	Funding  int           `mapstructure:"funding"`
	Window   time.Duration `mapstructure:"window"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: SUBRA_.
// Nested keys use underscore: SUBRA_SOLANA_RPC_URL, SUBRA_CUSTODY_AGENT_KEY, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "subra")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "subra")
	v.SetDefault("custody.agent_key", "")
	v.SetDefault("custody.balance_cache_ttl", "5m")
	v.SetDefault("solana.rpc_url", "https://api.devnet.solana.com")
	v.SetDefault("solana.commitment", "confirmed")
	v.SetDefault("solana.token_symbol", "USDC")
	v.SetDefault("solana.token_mint", "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	v.SetDefault("solana.token_decimals", 6)
	v.SetDefault("solana.confirm_timeout", "30s")
	v.SetDefault("solana.poll_interval", "2s")
	v.SetDefault("solana.fee_buffer", "0.01")
	v.SetDefault("solana.create_recipient_token_account", true)
	v.SetDefault("solana.requests_per_second", 10)
	v.SetDefault("solana.burst", 20)
	v.SetDefault("solana.breaker_failures", 5)
	v.SetDefault("solana.breaker_timeout", "30s")
	v.SetDefault("purchase.experience_points", 25)
	v.SetDefault("purchase.lock_ttl", "2m")
	v.SetDefault("purchase.outcome_ttl", "24h")
	v.SetDefault("reconciler.enabled", true)
	v.SetDefault("reconciler.schedule", "@every 1m")
	v.SetDefault("reconciler.stale_after", "2m")
	v.SetDefault("reconciler.batch_size", 50)
	v.SetDefault("reconciler.timeout", "1m")
	v.SetDefault("ratelimit.purchase", 30)
	v.SetDefault("ratelimit.funding", 10)
	v.SetDefault("ratelimit.window", "1m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// SUBRA_SOLANA_RPC_URL -> solana.rpc_url
	v.SetEnvPrefix("SUBRA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The file is optional, env vars can suffice.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the values that would otherwise fail late or silently.
// custody.agent_key may be empty here since read-only commands do not need
// it; the server refuses to start without one.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Server.Port > 0 && c.Server.Port <= 65535, "server.port %d out of range", c.Server.Port)
	check(c.Server.MaxBodyBytes > 0, "server.max_body_bytes must be positive")

	if c.Custody.AgentKey != "" {
		key, err := hex.DecodeString(c.Custody.AgentKey)
		check(err == nil && len(key) == 32, "custody.agent_key must be 64 hex characters")
	}

	s := c.Solana
	check(s.ConfirmTimeout > 0, "solana.confirm_timeout must be positive")
	check(s.PollInterval > 0 && s.PollInterval < s.ConfirmTimeout,
		"solana.poll_interval %s must be positive and below solana.confirm_timeout %s", s.PollInterval, s.ConfirmTimeout)
	if _, err := s.FeeBufferAmount(); err != nil {
		errs = append(errs, err)
	}
	check(s.RequestsPerSecond > 0, "solana.requests_per_second must be positive")
	check(s.Burst > 0, "solana.burst must be positive")

	// The agent lock must outlive a whole attempt, and the reconciler must
	// not touch a record whose attempt may still be confirming.
	check(c.Purchase.LockTTL > s.ConfirmTimeout,
		"purchase.lock_ttl %s must exceed solana.confirm_timeout %s", c.Purchase.LockTTL, s.ConfirmTimeout)
	check(c.Reconciler.StaleAfter > s.ConfirmTimeout,
		"reconciler.stale_after %s must exceed solana.confirm_timeout %s", c.Reconciler.StaleAfter, s.ConfirmTimeout)
	check(c.Reconciler.BatchSize > 0, "reconciler.batch_size must be positive")
	check(c.Reconciler.Timeout > 0, "reconciler.timeout must be positive")

	check(c.RateLimit.Purchase >= 0 && c.RateLimit.Funding >= 0, "ratelimit budgets must not be negative")
	check(c.RateLimit.Window >= 0, "ratelimit.window must not be negative")

	return errors.Join(errs...)
}
