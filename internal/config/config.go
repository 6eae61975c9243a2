// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/spf13/viper"

	"github.com/rovshanmuradov/dumpfun-sdk/internal/logger"
	"github.com/rovshanmuradov/dumpfun-sdk/pkg/dumpfun"
)

// EnvPrefix is prepended to every environment override, e.g. DUMPFUN_RPC_LIST.
const EnvPrefix = "DUMPFUN"

type Config struct {
	RPCList          []string      `mapstructure:"rpc_list"`
	ProgramID        string        `mapstructure:"program_id"`
	Commitment       string        `mapstructure:"commitment"`
	SlippagePercent  float64       `mapstructure:"slippage_percent"`
	RPCRateLimit     float64       `mapstructure:"rpc_rate_limit"`
	RPCBurst         int           `mapstructure:"rpc_burst"`
	Retries          int           `mapstructure:"retries"`
	RequestTimeoutMs int           `mapstructure:"request_timeout_ms"`
	Logging          logger.Config `mapstructure:"logging"`
}

const (
	DefaultCommitment       = string(rpc.CommitmentConfirmed)
	DefaultRPCRateLimit     = 10
	DefaultRPCBurst         = 5
	DefaultRetries          = 3
	DefaultRequestTimeoutMs = 10000
)

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	logDefaults := logger.DefaultConfig()
	defaults := map[string]interface{}{
		"program_id":           dumpfun.ProgramID.String(),
		"commitment":           DefaultCommitment,
		"slippage_percent":     dumpfun.DefaultSlippagePercent,
		"rpc_rate_limit":       DefaultRPCRateLimit,
		"rpc_burst":            DefaultRPCBurst,
		"retries":              DefaultRetries,
		"request_timeout_ms":   DefaultRequestTimeoutMs,
		"logging.log_file":     logDefaults.LogFile,
		"logging.max_size_mb":  logDefaults.MaxSize,
		"logging.max_age_days": logDefaults.MaxAge,
		"logging.max_backups":  logDefaults.MaxBackups,
		"logging.compress":     logDefaults.Compress,
		"logging.development":  logDefaults.Development,
		"logging.pretty":       logDefaults.Pretty,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	loadRPCListFromEnv(v, &cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// RequestTimeout returns the per-attempt RPC timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMs) * time.Millisecond
}

// Program returns the parsed program id. Only valid on a loaded config.
func (c *Config) Program() solana.PublicKey {
	return solana.MustPublicKeyFromBase58(c.ProgramID)
}

// CommitmentType returns the commitment as an rpc type.
func (c *Config) CommitmentType() rpc.CommitmentType {
	return rpc.CommitmentType(c.Commitment)
}

func validateConfig(cfg *Config) error {
	if len(cfg.RPCList) == 0 {
		return errors.New("rpc_list is empty")
	}
	for _, rpcURL := range cfg.RPCList {
		if err := validateURL(rpcURL, "http"); err != nil {
			return fmt.Errorf("invalid RPC URL %q: %w", rpcURL, err)
		}
	}
	if _, err := solana.PublicKeyFromBase58(cfg.ProgramID); err != nil {
		return fmt.Errorf("invalid program_id: %w", err)
	}
	switch rpc.CommitmentType(cfg.Commitment) {
	case rpc.CommitmentProcessed, rpc.CommitmentConfirmed, rpc.CommitmentFinalized:
	default:
		return fmt.Errorf("invalid commitment %q", cfg.Commitment)
	}
	return validateNumericParams(cfg)
}

func validateNumericParams(cfg *Config) error {
	if math.IsNaN(cfg.SlippagePercent) || cfg.SlippagePercent < 0 || cfg.SlippagePercent > 100 {
		return errors.New("slippage_percent must be within [0, 100]")
	}
	if cfg.RPCRateLimit < 0 {
		return errors.New("invalid rpc_rate_limit")
	}
	if cfg.RPCBurst < 0 {
		return errors.New("invalid rpc_burst")
	}
	if cfg.Retries < 0 {
		return errors.New("invalid retries count")
	}
	if cfg.RequestTimeoutMs <= 0 {
		return errors.New("invalid request_timeout_ms")
	}
	return nil
}

func validateURL(rawURL string, protocol string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.New("invalid URL format")
	}
	if !strings.HasPrefix(parsed.Scheme, protocol) || parsed.Host == "" {
		return errors.New("invalid URL protocol")
	}
	return nil
}

// loadRPCListFromEnv accepts a comma separated DUMPFUN_RPC_LIST with
// arbitrary spacing.
func loadRPCListFromEnv(v *viper.Viper, cfg *Config) {
	envRPCList := v.GetString("RPC_LIST")
	if envRPCList == "" {
		return
	}
	var cleanRPCs []string
	for _, rpcURL := range strings.Split(envRPCList, ",") {
		if clean := strings.TrimSpace(rpcURL); clean != "" {
			cleanRPCs = append(cleanRPCs, clean)
		}
	}
	if len(cleanRPCs) > 0 {
		cfg.RPCList = cleanRPCs
	}
}
