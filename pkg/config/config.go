package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix scopes every environment variable the backend reads.
	EnvPrefix = "sobnin"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "SOBNIN_DB_DSN"
	EnvDBHost = "SOBNIN_DB_HOST"
	EnvDBUser = "SOBNIN_DB_USER"
	EnvDBName = "SOBNIN_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Restaurant   RestaurantConfig
	Media        MediaConfig
	OrderLimit   OrderRateLimitConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"SOBNIN_APP_ENV" required:"true"`
	Port         string   `envconfig:"SOBNIN_APP_PORT" default:"8080"`
	LogLevel     string   `envconfig:"SOBNIN_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"SOBNIN_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"SOBNIN_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SOBNIN_DB_DSN"`
	Driver string `envconfig:"SOBNIN_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SOBNIN_DB_HOST"`
	LegacyPort     int    `envconfig:"SOBNIN_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SOBNIN_DB_USER"`
	LegacyPassword string `envconfig:"SOBNIN_DB_PASSWORD"`
	LegacyName     string `envconfig:"SOBNIN_DB_NAME"`
	LegacySSLMode  string `envconfig:"SOBNIN_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SOBNIN_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"SOBNIN_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"SOBNIN_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SOBNIN_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SOBNIN_REDIS_URL"`
	Address      string        `envconfig:"SOBNIN_REDIS_ADDR"`
	Password     string        `envconfig:"SOBNIN_REDIS_PASSWORD"`
	DB           int           `envconfig:"SOBNIN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SOBNIN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SOBNIN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SOBNIN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SOBNIN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SOBNIN_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured at all. The public
// ordering flow works without Redis; only the order-creation rate limit
// depends on it.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"SOBNIN_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SOBNIN_JWT_ISSUER" default:"sobnin"`
	ExpirationMinutes int    `envconfig:"SOBNIN_JWT_EXPIRATION_MINUTES" default:"480"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SOBNIN_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SOBNIN_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SOBNIN_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SOBNIN_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SOBNIN_ARGON_KEY_LEN" default:"32"`
}

// RestaurantConfig carries the public identity shown on pages and embedded in
// WhatsApp hand-off messages.
type RestaurantConfig struct {
	Name     string `envconfig:"SOBNIN_RESTAURANT_NAME" default:"So Bnin"`
	Phone    string `envconfig:"SOBNIN_RESTAURANT_PHONE" default:"+212600000000"`
	WhatsApp string `envconfig:"SOBNIN_RESTAURANT_WHATSAPP" default:"+212600000000"`
	Address  string `envconfig:"SOBNIN_RESTAURANT_ADDRESS" default:"Marrakesh, Morocco"`
	MapsLink string `envconfig:"SOBNIN_RESTAURANT_MAPS" default:"https://maps.google.com"`
}

type MediaConfig struct {
	Dir         string `envconfig:"SOBNIN_MEDIA_DIR" default:"media"`
	MaxUploadMB int    `envconfig:"SOBNIN_MAX_UPLOAD_MB" default:"10"`
}

type OrderRateLimitConfig struct {
	Window  time.Duration `envconfig:"SOBNIN_ORDER_RATE_LIMIT_WINDOW" default:"1m"`
	IPLimit int           `envconfig:"SOBNIN_ORDER_RATE_LIMIT_IP_LIMIT" default:"5"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SOBNIN_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SOBNIN_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
