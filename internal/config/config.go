package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/gotasapp/nft-sync-engine/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// ChainConfig holds one ledger network/contract pair
type ChainConfig struct {
	ChainID             domain.Chain `mapstructure:"chain_id"`
	RPCURL              string       `mapstructure:"rpc_url"`
	NFTContract         string       `mapstructure:"nft_contract"`
	MarketplaceContract string       `mapstructure:"marketplace_contract"`
}

// CacheConfig holds unit-cache TTL configuration
type CacheConfig struct {
	TradingTTL  time.Duration `mapstructure:"trading_ttl"`
	MetadataTTL time.Duration `mapstructure:"metadata_ttl"`
}

// URIConfig holds URI resolver configuration
type URIConfig struct {
	IPFSGateway string        `mapstructure:"ipfs_gateway"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
}

// SyncConfig holds sync orchestrator configuration
type SyncConfig struct {
	WorkerPoolSize int `mapstructure:"worker_pool_size"`
	QueueSize      int `mapstructure:"queue_size"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig   `mapstructure:"server"`
	Database   DatabaseConfig `mapstructure:"database"`
	Auth       AuthConfig     `mapstructure:"auth"`
	Cache      CacheConfig    `mapstructure:"cache"`
	URI        URIConfig      `mapstructure:"uri"`
	Sync       SyncConfig     `mapstructure:"sync"`
	Chains     []ChainConfig  `mapstructure:"chains"`
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("cache.trading_ttl", "15m")
	v.SetDefault("cache.metadata_ttl", "60m")
	v.SetDefault("uri.ipfs_gateway", domain.DEFAULT_IPFS_GATEWAY)
	v.SetDefault("uri.http_timeout", "10s")
	v.SetDefault("sync.worker_pool_size", 8)
	v.SetDefault("sync.queue_size", 1024)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg APIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Chains cannot come from flat env vars; allow a single-chain env fallback
	if len(cfg.Chains) == 0 {
		chain := ChainConfig{
			ChainID:             domain.Chain(v.GetString("chain.chain_id")),
			RPCURL:              v.GetString("chain.rpc_url"),
			NFTContract:         v.GetString("chain.nft_contract"),
			MarketplaceContract: v.GetString("chain.marketplace_contract"),
		}
		if chain.RPCURL != "" {
			cfg.Chains = append(cfg.Chains, chain)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks required fields
func (c *APIConfig) Validate() error {
	if c.Database.Host == "" {
		return errors.New("database.host is required")
	}
	if c.Database.DBName == "" {
		return errors.New("database.dbname is required")
	}
	if len(c.Chains) == 0 {
		return errors.New("at least one chain configuration is required")
	}
	for _, chain := range c.Chains {
		if !domain.IsValidChain(chain.ChainID) {
			return fmt.Errorf("unsupported chain id: %s", chain.ChainID)
		}
		if chain.RPCURL == "" {
			return fmt.Errorf("chain %s: rpc_url is required", chain.ChainID)
		}
		if chain.NFTContract == "" {
			return fmt.Errorf("chain %s: nft_contract is required", chain.ChainID)
		}
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("NFT_ENGINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables.
// Required for viper to map env vars to struct fields when no config file exists.
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Cache
		"cache.trading_ttl",
		"cache.metadata_ttl",
		// URI
		"uri.ipfs_gateway",
		"uri.http_timeout",
		// Sync
		"sync.worker_pool_size",
		"sync.queue_size",
		// Single-chain env fallback
		"chain.chain_id",
		"chain.rpc_url",
		"chain.nft_contract",
		"chain.marketplace_contract",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
