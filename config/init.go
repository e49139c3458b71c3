package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	Server struct {
		Address  string `mapstructure:"address"`   // 0.0.0.0
		HTTPPort string `mapstructure:"http_port"` // 5000
	} `mapstructure:"server"`

	Database struct {
		Driver string `mapstructure:"driver"` // "mysql" | "postgres"
		DSN    string `mapstructure:"dsn"`    // user:pass@tcp(127.0.0.1:3306)/syndic?parseTime=true
	} `mapstructure:"database"`

	Auth struct {
		JWTSecret    string        `mapstructure:"jwt_secret"`
		TokenTTL     time.Duration `mapstructure:"token_ttl"`
		RequireToken bool          `mapstructure:"require_token"` // enforce Bearer tokens on identity routes
	} `mapstructure:"auth"`

	Mail struct {
		Host        string `mapstructure:"host"`
		Port        int    `mapstructure:"port"`
		Username    string `mapstructure:"username"`
		Password    string `mapstructure:"password"`
		From        string `mapstructure:"from"`
		PublicURL   string `mapstructure:"public_url"`   // externally reachable base of this API, used in verification links
		FrontendURL string `mapstructure:"frontend_url"` // base of the React app, used for post-verification redirects
	} `mapstructure:"mail"`

	Weather struct {
		APIKey  string `mapstructure:"api_key"`
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"weather"`

	Logging struct {
		Level  string `mapstructure:"level"`  // trace|debug|info|warning|error|fatal
		Format string `mapstructure:"format"` // text|json
		File   string `mapstructure:"file"`   // path/prefix of the log file, empty — stdout only
	} `mapstructure:"logs"`
}

// Load reads the config from env/file with defaults.
func Load() (*Config, error) {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server.address", "0.0.0.0")
	viper.SetDefault("server.http_port", "5000")

	viper.SetDefault("database.driver", "mysql")
	viper.SetDefault("database.dsn", "")

	viper.SetDefault("auth.jwt_secret", "CHANGE_ME")
	viper.SetDefault("auth.token_ttl", 24*time.Hour)
	viper.SetDefault("auth.require_token", false)

	viper.SetDefault("mail.host", "localhost")
	viper.SetDefault("mail.port", 587)
	viper.SetDefault("mail.username", "")
	viper.SetDefault("mail.password", "")
	viper.SetDefault("mail.from", "no-reply@syndic.local")
	viper.SetDefault("mail.public_url", "http://localhost:5000")
	viper.SetDefault("mail.frontend_url", "http://localhost:3000")

	viper.SetDefault("weather.api_key", "")
	viper.SetDefault("weather.base_url", "https://api.openweathermap.org/data/2.5")

	viper.SetDefault("logs.level", "info")
	viper.SetDefault("logs.format", "text")
	viper.SetDefault("logs.file", "")

	if cfgFile := os.Getenv("CONFIG_FILE"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			viper.AddConfigPath(filepath.Join(xdg, "syndic"))
		}
		viper.AddConfigPath("/etc/syndic")
	}

	// Config file is optional; env vars alone are a valid setup.
	if err := viper.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return nil, fmt.Errorf("config read error: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal error: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func validate(c *Config) error {
	if strings.TrimSpace(c.Server.Address) == "" {
		return errors.New("server.address must not be empty")
	}
	if strings.TrimSpace(c.Server.HTTPPort) == "" {
		return errors.New("server.http_port must not be empty")
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return errors.New("database.dsn must be set")
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" || c.Auth.JWTSecret == "CHANGE_ME" {
		return errors.New("auth.jwt_secret must be set (not empty and not CHANGE_ME)")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.token_ttl must be positive")
	}
	return nil
}
