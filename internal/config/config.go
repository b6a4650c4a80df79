package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
}

type Database struct {
	Host            string        `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"PG_USER" env:"PG_USER" env-required:"true"`
	Password        string        `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-required:"true"`
	Name            string        `yaml:"PG_DBNAME" env:"PG_DBNAME" env-required:"true"`
	SSLMode         string        `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`
	MaxOpenConns    int           `yaml:"MAX_OPEN_CONNS" env:"PG_MAX_OPEN_CONNS" env-default:"10"`
	MaxIdleConns    int           `yaml:"MAX_IDLE_CONNS" env:"PG_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"CONN_MAX_LIFETIME" env:"PG_CONN_MAX_LIFETIME" env-default:"30m"`
	ConnMaxIdleTime time.Duration `yaml:"CONN_MAX_IDLE_TIME" env:"PG_CONN_MAX_IDLE_TIME" env-default:"5m"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-default:"default"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type RateConfig struct {
	MaxAttempts int64         `yaml:"MAX_ATTEMPTS" env:"MAX_ATTEMPTS" env-default:"5"`
	WindowSize  time.Duration `yaml:"WINDOW_SIZE" env:"WINDOW_SIZE" env-default:"15s"`
}

type Security struct {
	JWTKey            string `yaml:"JWT_KEY" env:"JWT_KEY" env-required:"true"`
	JWTExpiryHours    int    `yaml:"JWT_EXPIRY_HOURS" env:"JWT_EXPIRY_HOURS" env-default:"24"`
	AdminEmail        string `yaml:"ADMIN_EMAIL" env:"ADMIN_EMAIL" env-required:"true"`
	AdminPasswordHash string `yaml:"ADMIN_PASSWORD_HASH" env:"ADMIN_PASSWORD_HASH" env-required:"true"`
}

type CacheConfig struct {
	// shopper data lives as long as the order history retention by default
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"720h"`
}

type Store struct {
	Name           string        `yaml:"name" env:"STORE_NAME" env-default:"Sayur YuNur"`
	WhatsAppNumber string        `yaml:"whatsapp_number" env:"STORE_WHATSAPP_NUMBER" env-default:"6287833415425"`
	WhatsAppBase   string        `yaml:"whatsapp_base" env:"STORE_WHATSAPP_BASE" env-default:"https://wa.me"`
	Latitude       float64       `yaml:"latitude" env:"STORE_LATITUDE" env-default:"-7.612214173928771"`
	Longitude      float64       `yaml:"longitude" env:"STORE_LONGITUDE" env-default:"110.1691279294347"`
	Timezone       string        `yaml:"timezone" env:"STORE_TIMEZONE" env-default:"Asia/Jakarta"`
	OrderStatus    string        `yaml:"order_status" env:"STORE_ORDER_STATUS" env-default:"Menunggu"`
	OrderRetention time.Duration `yaml:"order_retention" env:"STORE_ORDER_RETENTION" env-default:"720h"`
	LowStockLimit  int           `yaml:"low_stock_limit" env:"STORE_LOW_STOCK_LIMIT" env-default:"5"`
	OwnerEmail     string        `yaml:"owner_email" env:"STORE_OWNER_EMAIL"`
}

type Shipping struct {
	NearKm         float64       `yaml:"near_km" env:"SHIPPING_NEAR_KM" env-default:"1"`
	CityKm         float64       `yaml:"city_km" env:"SHIPPING_CITY_KM" env-default:"3"`
	OuterKm        float64       `yaml:"outer_km" env:"SHIPPING_OUTER_KM" env-default:"5"`
	FeeNear        int64         `yaml:"fee_near" env:"SHIPPING_FEE_NEAR" env-default:"2000"`
	FeeCity        int64         `yaml:"fee_city" env:"SHIPPING_FEE_CITY" env-default:"3000"`
	FeeOuter       int64         `yaml:"fee_outer" env:"SHIPPING_FEE_OUTER" env-default:"4000"`
	FeeFar         int64         `yaml:"fee_far" env:"SHIPPING_FEE_FAR" env-default:"5000"`
	LocateTimeout  time.Duration `yaml:"locate_timeout" env:"SHIPPING_LOCATE_TIMEOUT" env-default:"10s"`
	LocationMaxAge time.Duration `yaml:"location_max_age" env:"SHIPPING_LOCATION_MAX_AGE" env-default:"5m"`
}

type SendGrid struct {
	APIKey    string `yaml:"API_KEY" env:"SENDGRID_API_KEY"`
	FromEmail string `yaml:"FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:"noreply@sayuryunur.id"`
	FromName  string `yaml:"FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"Sayur YuNur"`
}

type OTel struct {
	ServiceName      string  `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"sayur-storefront"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1.0"`
}

type Catalog struct {
	Channel              string        `yaml:"channel" env:"CATALOG_CHANNEL" env-default:"catalog_changed"`
	MinReconnectInterval time.Duration `yaml:"min_reconnect_interval" env:"CATALOG_MIN_RECONNECT" env-default:"1s"`
	MaxReconnectInterval time.Duration `yaml:"max_reconnect_interval" env:"CATALOG_MAX_RECONNECT" env-default:"1m"`
	ResyncInterval       time.Duration `yaml:"resync_interval" env:"CATALOG_RESYNC_INTERVAL" env-default:"90s"`
}

type Media struct {
	StorageHost string `yaml:"storage_host" env:"MEDIA_STORAGE_HOST" env-default:"firebasestorage.googleapis.com"`
	Bucket      string `yaml:"bucket" env:"MEDIA_BUCKET" env-default:"sayur-yunur.firebasestorage.app"`
	AccessToken string `yaml:"access_token" env:"MEDIA_ACCESS_TOKEN"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   `yaml:"http_server"`
	Database     Database     `yaml:"database"`
	RedisConnect RedisConnect `yaml:"redis"`
	RateConfig   RateConfig   `yaml:"rateConfig"`
	Security     Security     `yaml:"security"`
	Cache        CacheConfig  `yaml:"cache"`
	Store        Store        `yaml:"store"`
	Shipping     Shipping     `yaml:"shipping"`
	SendGrid     SendGrid     `yaml:"sendgrid"`
	OTel         OTel         `yaml:"otel"`
	Catalog      Catalog      `yaml:"catalog"`
	Media        Media        `yaml:"media"`
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "path to the config file")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			log.Fatal("Config path is not set")
		}

	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return cfg
}

func LoadConfigFromPath(configPath string) (*Config, error) {

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return &cfg, nil
}

// IsDevelopment reports whether raw error detail may be exposed to clients.
func (c *Config) IsDevelopment() bool {
	return c.Env == "dev" || c.Env == "local"
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s/%d",
		r.Username, r.Password, r.Host, r.Port, r.DB)
}
