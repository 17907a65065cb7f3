package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Cache   CacheConfig   `toml:"cache"`
	Invoice InvoiceConfig `toml:"invoice"`
}

// ServerConfig contains HTTP and auth settings
type ServerConfig struct {
	Port        int    `toml:"port"`
	JWTSecret   string `toml:"jwt_secret"`
	DatabaseURL string `toml:"database_url"`
}

// StorageConfig contains MinIO object-storage settings for generated PDFs
type StorageConfig struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	UseSSL    bool   `toml:"use_ssl"`
	Bucket    string `toml:"bucket"`
}

// CacheConfig contains Redis settings
type CacheConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// InvoiceConfig contains invoice numbering and due-date settings
type InvoiceConfig struct {
	Prefix      string  `toml:"prefix"`
	DueDays     int     `toml:"due_days"`
	SellerState string  `toml:"seller_state"`
	DefaultGST  float64 `toml:"default_gst"`
}

// Load reads configuration from a TOML file, with environment variables
// overriding the file for deployment secrets.
func Load(filename string) (*Config, error) {
	cfg := &Config{}
	if filename != "" {
		if _, err := toml.DecodeFile(filename, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.Server.DatabaseURL = dsn
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.Server.JWTSecret = secret
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Cache.Addr = addr
	}
	if pw := os.Getenv("REDIS_PASSWORD"); pw != "" {
		cfg.Cache.Password = pw
	}
	if ep := os.Getenv("MINIO_ENDPOINT"); ep != "" {
		cfg.Storage.Endpoint = ep
	}
	if ak := os.Getenv("MINIO_ACCESS_KEY"); ak != "" {
		cfg.Storage.AccessKey = ak
	}
	if sk := os.Getenv("MINIO_SECRET_KEY"); sk != "" {
		cfg.Storage.SecretKey = sk
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Cache.Addr == "" {
		c.Cache.Addr = "localhost:6379"
	}
	if c.Storage.Endpoint == "" {
		c.Storage.Endpoint = "localhost:9000"
	}
	if c.Storage.Bucket == "" {
		c.Storage.Bucket = "audimart-documents"
	}
	if c.Invoice.Prefix == "" {
		c.Invoice.Prefix = "INV"
	}
	if c.Invoice.DueDays == 0 {
		c.Invoice.DueDays = 30
	}
	if c.Invoice.DefaultGST == 0 {
		c.Invoice.DefaultGST = 18.0
	}
}
