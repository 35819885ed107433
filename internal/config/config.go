package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v2"

	"empylo_backend/internal/logger"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	App struct {
		BaseShareURL string `yaml:"base_share_url"` // prefix for circle share links
		FrontendURL  string `yaml:"frontend_url"`   // used in mail links
	} `yaml:"app"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		UseTLS       bool   `yaml:"use_tls"`
		TemplatesDir string `yaml:"templates_dir"`
	} `yaml:"email"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // hours
	} `yaml:"jwt"`

	Token struct {
		OTPTTLMinutes   int `yaml:"otp_ttl_minutes"`
		ResetTTLMinutes int `yaml:"reset_ttl_minutes"`
		SweepMinutes    int `yaml:"sweep_minutes"` // expired-token sweep interval
	} `yaml:"token"`

	Storage struct {
		Type       string `yaml:"type"`      // local, s3
		BasePath   string `yaml:"base_path"` // for local storage
		BaseURL    string `yaml:"base_url"`  // public URL base
		Bucket     string `yaml:"bucket"`
		Region     string `yaml:"region"`
		AccessKey  string `yaml:"access_key"`
		SecretKey  string `yaml:"secret_key"`
		Endpoint   string `yaml:"endpoint"` // custom S3 endpoint
		UseSSL     bool   `yaml:"use_ssl"`
		PublicRead bool   `yaml:"public_read"`
	} `yaml:"storage"`

	Upload struct {
		MaxSize      int64    `yaml:"max_size"`      // bytes
		AllowedTypes []string `yaml:"allowed_types"` // MIME types
	} `yaml:"upload"`
}

var AppConfig *Config

// LoadConfig reads config/config.yaml, or falls back to environment
// variables when DATABASE_URL is set (the test path). The JWT secret has
// no compiled-in default: startup fails when it resolves empty.
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			logger.Fatal("failed to open config file", "path", configPath, "error", err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			logger.Fatal("failed to parse config file", "path", configPath, "error", err)
		}

		applyDefaults(&cfg)
		requireSecret(&cfg)
		AppConfig = &cfg
		return
	}

	logger.Info("loading configuration from environment")

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.App.BaseShareURL = os.Getenv("BASE_SHARE_URL")
	cfg.App.FrontendURL = os.Getenv("FRONTEND_URL")

	cfg.Email.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.Email.SMTPPort, _ = strconv.Atoi(os.Getenv("SMTP_PORT"))
	cfg.Email.SMTPUsername = os.Getenv("SMTP_USER")
	cfg.Email.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.Email.FromEmail = os.Getenv("FROM_EMAIL")
	cfg.Email.TemplatesDir = "templates"

	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.BaseURL = "/api/v1/files"

	applyDefaults(&cfg)
	requireSecret(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.App.BaseShareURL == "" {
		cfg.App.BaseShareURL = "https://empylo.com"
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 24 * 7
	}
	if cfg.Token.OTPTTLMinutes == 0 {
		cfg.Token.OTPTTLMinutes = 10
	}
	if cfg.Token.ResetTTLMinutes == 0 {
		cfg.Token.ResetTTLMinutes = 10
	}
	if cfg.Token.SweepMinutes == 0 {
		cfg.Token.SweepMinutes = 5
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 10 * 1024 * 1024
	}
	if len(cfg.Upload.AllowedTypes) == 0 {
		cfg.Upload.AllowedTypes = []string{
			"image/jpeg", "image/png", "image/gif", "image/webp",
		}
	}
}

func requireSecret(cfg *Config) {
	if cfg.JWT.Secret == "" {
		logger.Fatal("JWT secret is not configured")
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
