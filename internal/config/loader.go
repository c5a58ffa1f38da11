package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoadConfig loads configuration from an optional YAML file and the
// environment. A local .env file is loaded first so that development
// secrets behave the same way they did under dotenv.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	setDefaults()

	env := strings.ToLower(os.Getenv("APP_ENV"))
	if env == "" {
		env = "development"
	}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName(fmt.Sprintf("config.%s", env))
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/studytrack")
	}

	viper.SetEnvPrefix("STUDYTRACK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Missing file is fine, the environment alone can carry the config.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.Environment = env

	if config.JWT.AccessSecret == "" || config.JWT.RefreshSecret == "" {
		return nil, fmt.Errorf("jwt.access_secret and jwt.refresh_secret must be set")
	}

	return &config, nil
}

// setDefaults registers every config key. Registration also makes the
// matching STUDYTRACK_* environment variable visible to Unmarshal, so the
// whole config can come from the environment with no file at all.
func setDefaults() {
	viper.SetDefault("server.port", 4000)
	viper.SetDefault("server.read_timeout", 10*time.Second)
	viper.SetDefault("server.write_timeout", 10*time.Second)
	viper.SetDefault("server.idle_timeout", 60*time.Second)
	viper.SetDefault("server.shutdown_timeout", 15*time.Second)
	viper.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "studytrack")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.max_open_conns", 10)
	viper.SetDefault("database.min_idle_conns", 2)
	viper.SetDefault("database.conn_max_life", time.Hour)
	viper.SetDefault("database.auto_migrate", false)
	viper.SetDefault("database.migrations_path", "file://migrations")

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("jwt.access_secret", "")
	viper.SetDefault("jwt.refresh_secret", "")
	viper.SetDefault("jwt.access_token_ttl", 15*time.Minute)
	viper.SetDefault("jwt.refresh_token_ttl", 7*24*time.Hour)
	viper.SetDefault("jwt.issuer", "studytrack")

	viper.SetDefault("auth.allowed_email_pattern", `(?i)@(?:[a-z0-9-]+\.)*(?:edu|ac\.kr)$`)
	viper.SetDefault("auth.bcrypt_cost", 12)
	viper.SetDefault("auth.rate_limiting.enabled", false)
	viper.SetDefault("auth.rate_limiting.login_email_ip.enabled", true)
	viper.SetDefault("auth.rate_limiting.login_email_ip.limit", 5)
	viper.SetDefault("auth.rate_limiting.login_email_ip.window", 5*time.Minute)
	viper.SetDefault("auth.rate_limiting.register_ip.enabled", true)
	viper.SetDefault("auth.rate_limiting.register_ip.limit", 10)
	viper.SetDefault("auth.rate_limiting.register_ip.window", time.Hour)

	viper.SetDefault("cookie.domain", "")
	viper.SetDefault("cookie.secure", false)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("metrics.enabled", true)
}
