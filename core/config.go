package core

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds all the console's settings. It is loaded once at boot from
// env vars (optionally seeded by a config/.env.<env> file) and passed down
// explicitly; nothing else reads the environment.
type Config struct {
	Env      string // DEV (local; default), TEST, QA, PROD
	Debug    bool
	TestMode bool
	AppName  string
	Build    string

	RollbarToken string

	Server struct {
		Addr            string
		CookieName      string
		SessionTTL      time.Duration
		ShutdownTimeout time.Duration
	}

	Upstream struct {
		BaseURL        string
		RequestTimeout time.Duration
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	Cache struct {
		ListTTL      time.Duration
		DashboardTTL time.Duration
	}
}

func (c *Config) IsDev() bool { return c.Env == "DEV" }

// LoadConfig reads the settings for the current ENV.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Courati Console")
	v.SetDefault("build", "dev")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("serverAddr", ":8000")
	v.SetDefault("cookieName", "courati_sessionid")
	v.SetDefault("sessionTTL", 12*time.Hour)
	v.SetDefault("shutdownTimeout", 20*time.Second)
	v.SetDefault("upstreamBaseURL", "http://localhost:8080")
	v.SetDefault("upstreamTimeout", 30*time.Second)
	v.SetDefault("redisAddr", "localhost:6379")
	v.SetDefault("redisPassword", "")
	v.SetDefault("redisDB", 0)
	v.SetDefault("listCacheTTL", 30*time.Second)
	v.SetDefault("dashboardCacheTTL", time.Minute)

	env := os.Getenv("ENV")
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "config.os.Stat(%s)", dotEnvPath)
	}
	v.AutomaticEnv()

	conf := new(Config)
	conf.Env = env
	conf.Debug = v.GetBool("debug")
	conf.TestMode = v.GetBool("testMode")
	conf.AppName = v.GetString("appName")
	conf.Build = v.GetString("build")
	conf.RollbarToken = v.GetString("rollbarToken")
	conf.Server.Addr = v.GetString("serverAddr")
	conf.Server.CookieName = v.GetString("cookieName")
	conf.Server.SessionTTL = v.GetDuration("sessionTTL")
	conf.Server.ShutdownTimeout = v.GetDuration("shutdownTimeout")
	conf.Upstream.BaseURL = v.GetString("upstreamBaseURL")
	conf.Upstream.RequestTimeout = v.GetDuration("upstreamTimeout")
	conf.Redis.Addr = v.GetString("redisAddr")
	conf.Redis.Password = v.GetString("redisPassword")
	conf.Redis.DB = v.GetInt("redisDB")
	conf.Cache.ListTTL = v.GetDuration("listCacheTTL")
	conf.Cache.DashboardTTL = v.GetDuration("dashboardCacheTTL")

	err := vala.BeginValidation().Validate(
		vala.StringNotEmpty(conf.Server.Addr, "serverAddr"),
		vala.StringNotEmpty(conf.Server.CookieName, "cookieName"),
		vala.StringNotEmpty(conf.Upstream.BaseURL, "upstreamBaseURL"),
		vala.GreaterThan(int(conf.Server.SessionTTL), 0, "sessionTTL"),
	).Check()
	if err != nil {
		return nil, errors.Wrap(err, "checking config")
	}
	if !(conf.Debug || conf.TestMode) && conf.RollbarToken == "" {
		return nil, errors.New("rollbarToken is required outside DEV|TEST")
	}
	return conf, nil
}
