package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config is the typed view of app.yaml plus environment overrides.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Dataset    DatasetConfig    `mapstructure:"dataset"`
	Mongo      MongoConfig      `mapstructure:"mongo"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Meili      MeiliConfig      `mapstructure:"meilisearch"`
	Pagination PaginationConfig `mapstructure:"pagination"`
}

type AppConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

// DatasetConfig chooses where the catalog is loaded from: "file" or "mongo".
type DatasetConfig struct {
	Source         string `mapstructure:"source"`
	ProceduresPath string `mapstructure:"procedures_path"`
	PlansPath      string `mapstructure:"plans_path"`
}

type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	L1Size  int           `mapstructure:"l1_size"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type MeiliConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	URL       string `mapstructure:"url"`
	MasterKey string `mapstructure:"master_key"`
}

type PaginationConfig struct {
	PageSize    int `mapstructure:"page_size"`
	MaxPageSize int `mapstructure:"max_page_size"`
}

// IsProduction reports whether app.env is "production".
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("dataset.source", "file")
	v.SetDefault("dataset.procedures_path", "data/tuss.json")
	v.SetDefault("dataset.plans_path", "data/products.json")
	v.SetDefault("mongo.url", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "descobre_saude")
	v.SetDefault("redis.url", "")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.l1_size", 10000)
	v.SetDefault("cache.ttl", 24*time.Hour)
	v.SetDefault("meilisearch.enabled", false)
	v.SetDefault("meilisearch.url", "http://localhost:7700")
	v.SetDefault("meilisearch.master_key", "")
	v.SetDefault("pagination.page_size", 20)
	v.SetDefault("pagination.max_page_size", 500)
}

// Load reads config/app.yaml (or ./app.yaml) and the environment; a missing
// file is not an error. MONGO_URL overrides mongo.url and so on.
func Load(v *viper.Viper) (*Config, error) {
	v.SetConfigName("app")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	SetDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewLogger builds the zap logger for the configured environment.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.IsProduction() {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	return zc.Build()
}
