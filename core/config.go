package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	// Config regroups all the settings the apps need. It is loaded once at
	// startup and passed down explicitly.
	Config struct {
		Debug    bool
		TestMode bool
		Env      string // DEV (default), TEST, QA, PROD
		AppName  string
		Build    string

		RollbarToken string

		Platform PlatformConfig
		Server   ServerConfig
	}

	// PlatformConfig holds the settings of the remote learning-platform API.
	PlatformConfig struct {
		BaseURL        string
		RequestTimeout time.Duration
	}

	ServerConfig struct {
		Host            string
		Addr            string
		ShutdownTimeout time.Duration
		SessionTTL      time.Duration
	}
)

// NewConfig loads the configuration from the environment,
// optionally seeded from a `config/.env.<env>` file.
func NewConfig(workDir string) *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Peerclass")
	conf.SetDefault("build", "dev")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("platformBaseUrl", "http://localhost:8000")
	conf.SetDefault("platformRequestTimeout", 10*time.Second)
	conf.SetDefault("serverHost", "localhost")
	conf.SetDefault("serverAddr", ":8080")
	conf.SetDefault("serverShutdownTimeout", 20*time.Second)
	conf.SetDefault("sessionTTL", 12*time.Hour)

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	if env == "TEST" {
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(workDir, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		Env:          env,
		AppName:      conf.GetString("appName"),
		Build:        conf.GetString("build"),
		RollbarToken: conf.GetString("rollbarToken"),
		Platform: PlatformConfig{
			BaseURL:        conf.GetString("platformBaseUrl"),
			RequestTimeout: conf.GetDuration("platformRequestTimeout"),
		},
		Server: ServerConfig{
			Host:            conf.GetString("serverHost"),
			Addr:            conf.GetString("serverAddr"),
			ShutdownTimeout: conf.GetDuration("serverShutdownTimeout"),
			SessionTTL:      conf.GetDuration("sessionTTL"),
		},
	}
}
