package config

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const envPrefix = "FITX"

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type PostgresConfig struct {
	DSN             string
	MaxOpen         int
	MaxIdle         int
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration
	Migrate         bool
}

// Enabled reports whether a relational database is configured. Without one the
// API falls back to in-memory stores.
func (c PostgresConfig) Enabled() bool {
	return strings.TrimSpace(c.DSN) != ""
}

type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	ExerciseTTL time.Duration
}

func (c RedisConfig) Enabled() bool {
	return strings.TrimSpace(c.Addr) != ""
}

type StorageConfig struct {
	Endpoint       string
	AccessKey      string
	SecretKey      string
	BucketMedia    string
	UseSSL         bool
	Region         string
	PresignTTL     time.Duration
	MaxUploadBytes int64
}

func (c StorageConfig) Enabled() bool {
	return strings.TrimSpace(c.Endpoint) != ""
}

type SecurityConfig struct {
	JWTSecret  string
	JWTTTL     time.Duration
	BcryptCost int
}

type AppConfig struct {
	Environment      string
	HTTP             HTTPConfig
	Postgres         PostgresConfig
	Redis            RedisConfig
	Storage          StorageConfig
	Security         SecurityConfig
	AllowCORSOrigins []string
}

func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads .env, then config.yaml from the usual locations, then FITX_* environment variables.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")

	return load(v)
}

// LoadFile reads configuration from an explicit file path plus the environment.
func LoadFile(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*AppConfig, error) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	if err := bindEnv(v); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			stringToDurationHook(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *AppConfig) validate() error {
	if strings.TrimSpace(c.Security.JWTSecret) == "" {
		return errors.New("security.jwtsecret is required (FITX_SECURITY_JWTSECRET or JWT_SECRET)")
	}
	if c.Security.JWTTTL <= 0 {
		return fmt.Errorf("security.jwtttl must be positive, got %s", c.Security.JWTTTL)
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port out of range: %d", c.HTTP.Port)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 5000)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "15s")
	v.SetDefault("http.idletimeout", "60s")

	v.SetDefault("postgres.maxopen", 5)
	v.SetDefault("postgres.maxidle", 0)
	v.SetDefault("postgres.connmaxlifetime", "30m")
	v.SetDefault("postgres.connecttimeout", "30s")
	v.SetDefault("postgres.migrate", true)

	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.exercisettl", "5m")

	v.SetDefault("storage.bucketmedia", "fitx-media")
	v.SetDefault("storage.usessl", false)
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.presignttl", "15m")
	v.SetDefault("storage.maxuploadbytes", 20<<20)

	v.SetDefault("security.jwtttl", "168h") // 7 days
	v.SetDefault("security.bcryptcost", 12)

	v.SetDefault("allowcorsorigins", []string{"http://localhost:5173"})
}

// bindEnv registers keys without defaults so Unmarshal sees them, plus the
// variable names the service has historically been deployed with.
func bindEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"postgres.dsn":       {"FITX_POSTGRES_DSN", "DATABASE_URL"},
		"redis.addr":         {"FITX_REDIS_ADDR"},
		"redis.password":     {"FITX_REDIS_PASSWORD"},
		"storage.endpoint":   {"FITX_STORAGE_ENDPOINT"},
		"storage.accesskey":  {"FITX_STORAGE_ACCESSKEY"},
		"storage.secretkey":  {"FITX_STORAGE_SECRETKEY"},
		"security.jwtsecret": {"FITX_SECURITY_JWTSECRET", "JWT_SECRET"},
		"security.jwtttl":    {"FITX_SECURITY_JWTTTL", "JWT_EXPIRES_IN"},
		"http.port":          {"FITX_HTTP_PORT", "PORT"},
		"environment":        {"FITX_ENVIRONMENT", "NODE_ENV"},
	}
	for key, envs := range bindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	return nil
}

// stringToDurationHook accepts Go durations plus a whole-day suffix ("7d").
func stringToDurationHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String || to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		raw := strings.TrimSpace(data.(string))
		if days, ok := strings.CutSuffix(raw, "d"); ok {
			n, err := strconv.Atoi(days)
			if err != nil {
				return nil, fmt.Errorf("parse duration %q: %w", raw, err)
			}
			return time.Duration(n) * 24 * time.Hour, nil
		}
		return time.ParseDuration(raw)
	}
}
