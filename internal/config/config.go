package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Matching  MatchingConfig  `mapstructure:"matching"`
	Thesaurus ThesaurusConfig `mapstructure:"thesaurus"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	WS        WSConfig        `mapstructure:"ws"`
	Log       LogConfig       `mapstructure:"log"`
}

type AppConfig struct {
	AppName     string `mapstructure:"name"`
	Environment string `mapstructure:"env"`
	HTTPPort    string `mapstructure:"http_port"`
}

type DatabaseConfig struct {
	DBHost     string `mapstructure:"host"`
	DBPort     string `mapstructure:"port"`
	DBName     string `mapstructure:"name"`
	DBUser     string `mapstructure:"user"`
	DBPassword string `mapstructure:"password"`
	DBSSLMode  string `mapstructure:"ssl_mode"`

	ConnectTimeout        time.Duration `mapstructure:"connect_timeout"`
	PoolMaxConns          int32         `mapstructure:"pool_max_conns"`
	PoolMinConns          int32         `mapstructure:"pool_min_conns"`
	PoolMaxConnLifetime   time.Duration `mapstructure:"pool_max_conn_lifetime"`
	PoolMaxConnIdleTime   time.Duration `mapstructure:"pool_max_conn_idle_time"`
	PoolHealthCheckPeriod time.Duration `mapstructure:"pool_health_check_period"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MatchingConfig struct {
	Threshold  float64       `mapstructure:"threshold"`
	Workers    int           `mapstructure:"workers"`
	LemmaFile  string        `mapstructure:"lemma_file"`
	Stopwords  []string      `mapstructure:"stopwords"`
	RunTimeout time.Duration `mapstructure:"run_timeout"`
	LockTTL    time.Duration `mapstructure:"lock_ttl"`
}

type ThesaurusConfig struct {
	BaseURL     string              `mapstructure:"base_url"`
	Timeout     time.Duration       `mapstructure:"timeout"`
	MaxResults  int                 `mapstructure:"max_results"`
	Retries     int                 `mapstructure:"retries"`
	Concurrency int                 `mapstructure:"concurrency"`
	CacheTTL    time.Duration       `mapstructure:"cache_ttl"`
	Static      bool                `mapstructure:"static"`
	Extra       map[string][]string `mapstructure:"extra"`
}

type JWTConfig struct {
	AccessSecret    string        `mapstructure:"access_secret"`
	AccessExpiresIn time.Duration `mapstructure:"access_expires_in"`
}

// WSConfig limits the run event feed. An empty origin list accepts any
// origin; MaxClients 0 means unlimited.
type WSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	MaxClients     int      `mapstructure:"max_clients"`
}

type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

var (
	ErrMissingRequired = errors.New("missing required configuration")
	ErrInvalid         = errors.New("invalid configuration")
)

var envBindings = map[string]string{
	"app.name":      "APP_NAME",
	"app.env":       "APP_ENV",
	"app.http_port": "HTTP_PORT",

	"database.host":                     "DB_HOST",
	"database.port":                     "DB_PORT",
	"database.name":                     "DB_NAME",
	"database.user":                     "DB_USER",
	"database.password":                 "DB_PASSWORD",
	"database.ssl_mode":                 "DB_SSL_MODE",
	"database.connect_timeout":          "DB_CONNECT_TIMEOUT",
	"database.pool_max_conns":           "DB_POOL_MAX_CONNS",
	"database.pool_min_conns":           "DB_POOL_MIN_CONNS",
	"database.pool_max_conn_lifetime":   "DB_POOL_MAX_CONN_LIFETIME",
	"database.pool_max_conn_idle_time":  "DB_POOL_MAX_CONN_IDLE_TIME",
	"database.pool_health_check_period": "DB_POOL_HEALTH_CHECK_PERIOD",

	"redis.enabled":  "REDIS_ENABLED",
	"redis.host":     "REDIS_HOST",
	"redis.port":     "REDIS_PORT",
	"redis.password": "REDIS_PASSWORD",
	"redis.db":       "REDIS_DB",

	"matching.threshold":   "MATCH_THRESHOLD",
	"matching.workers":     "MATCH_WORKERS",
	"matching.lemma_file":  "MATCH_LEMMA_FILE",
	"matching.stopwords":   "MATCH_STOPWORDS",
	"matching.run_timeout": "MATCH_RUN_TIMEOUT",
	"matching.lock_ttl":    "MATCH_LOCK_TTL",

	"thesaurus.base_url":    "THESAURUS_BASE_URL",
	"thesaurus.timeout":     "THESAURUS_TIMEOUT",
	"thesaurus.max_results": "THESAURUS_MAX_RESULTS",
	"thesaurus.retries":     "THESAURUS_RETRIES",
	"thesaurus.concurrency": "THESAURUS_CONCURRENCY",
	"thesaurus.cache_ttl":   "THESAURUS_CACHE_TTL",
	"thesaurus.static":      "THESAURUS_STATIC",

	"jwt.access_secret":     "JWT_ACCESS_SECRET",
	"jwt.access_expires_in": "JWT_ACCESS_EXPIRES_IN",

	"ws.allowed_origins": "WS_ALLOWED_ORIGINS",
	"ws.max_clients":     "WS_MAX_CLIENTS",

	"log.json":  "LOG_JSON",
	"log.debug": "LOG_DEBUG",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "skill-swap")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.http_port", "8080")

	v.SetDefault("database.port", "5432")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.connect_timeout", 5*time.Second)
	v.SetDefault("database.pool_max_conns", 10)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("matching.threshold", 0.7)
	v.SetDefault("matching.workers", 4)
	v.SetDefault("matching.lemma_file", "data/lemmas.json")
	v.SetDefault("matching.run_timeout", 10*time.Minute)
	v.SetDefault("matching.lock_ttl", 15*time.Minute)

	v.SetDefault("thesaurus.base_url", "https://api.datamuse.com")
	v.SetDefault("thesaurus.timeout", 5*time.Second)
	v.SetDefault("thesaurus.max_results", 20)
	v.SetDefault("thesaurus.retries", 3)
	v.SetDefault("thesaurus.concurrency", 4)
	v.SetDefault("thesaurus.cache_ttl", 24*time.Hour)
	v.SetDefault("thesaurus.static", true)

	v.SetDefault("jwt.access_expires_in", 15*time.Minute)
}

// Load reads the configuration from the environment and, when file is not
// empty, from that file. Environment variables win over the file.
func Load(file string) (Config, error) {
	return LoadWith(viper.New(), file)
}

func LoadWith(v *viper.Viper, file string) (Config, error) {
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	if strings.TrimSpace(file) != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.trim()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) trim() {
	c.App.AppName = strings.TrimSpace(c.App.AppName)
	c.App.Environment = strings.TrimSpace(c.App.Environment)
	c.App.HTTPPort = strings.TrimSpace(c.App.HTTPPort)
	c.Database.DBHost = strings.TrimSpace(c.Database.DBHost)
	c.Database.DBPort = strings.TrimSpace(c.Database.DBPort)
	c.Database.DBName = strings.TrimSpace(c.Database.DBName)
	c.Database.DBUser = strings.TrimSpace(c.Database.DBUser)
	c.Database.DBSSLMode = strings.TrimSpace(c.Database.DBSSLMode)
	c.Matching.LemmaFile = strings.TrimSpace(c.Matching.LemmaFile)
	c.Thesaurus.BaseURL = strings.TrimSpace(c.Thesaurus.BaseURL)

	stopwords := c.Matching.Stopwords[:0]
	for _, w := range c.Matching.Stopwords {
		if w = strings.TrimSpace(w); w != "" {
			stopwords = append(stopwords, w)
		}
	}
	if len(stopwords) == 0 {
		stopwords = nil
	}
	c.Matching.Stopwords = stopwords

	origins := c.WS.AllowedOrigins[:0]
	for _, o := range c.WS.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = nil
	}
	c.WS.AllowedOrigins = origins
}

func (c Config) Validate() error {
	var missing []string
	if c.Database.DBHost == "" {
		missing = append(missing, "DB_HOST")
	}
	if c.Database.DBName == "" {
		missing = append(missing, "DB_NAME")
	}
	if c.Database.DBUser == "" {
		missing = append(missing, "DB_USER")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingRequired, strings.Join(missing, ", "))
	}

	if c.Matching.Threshold <= 0 || c.Matching.Threshold > 1 {
		return fmt.Errorf("%w: matching.threshold must be in (0, 1], got %v", ErrInvalid, c.Matching.Threshold)
	}
	if c.Matching.Workers < 1 {
		return fmt.Errorf("%w: matching.workers must be >= 1, got %d", ErrInvalid, c.Matching.Workers)
	}
	if c.Thesaurus.Concurrency < 1 {
		return fmt.Errorf("%w: thesaurus.concurrency must be >= 1, got %d", ErrInvalid, c.Thesaurus.Concurrency)
	}
	if c.WS.MaxClients < 0 {
		return fmt.Errorf("%w: ws.max_clients must be >= 0, got %d", ErrInvalid, c.WS.MaxClients)
	}
	return nil
}
