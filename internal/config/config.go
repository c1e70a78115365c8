package config

import (
	"encoding/base64"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppCfg struct{ Env, Port string }
type DBCfg struct{ DSN string }

// RedisCfg selects the cursor store backend: an empty Addr keeps cursor
// state in process memory.
type RedisCfg struct{ Addr string }

type SecurityCfg struct {
	AESKey     []byte // token encryption key
	AdminToken string // guards the onboarding API
}

// PageCfg tunes the pagination core.
type PageCfg struct {
	DefaultSize   int32
	MaxSize       int32
	CursorTTL     time.Duration
	ListerTimeout time.Duration
}

type Cfg struct {
	App   AppCfg
	DB    DBCfg
	Redis RedisCfg
	Sec   SecurityCfg
	Page  PageCfg
}

func Load() Cfg {
	// 1) Load .env into process env (if file exists)
	_ = godotenv.Load()

	// 2) Read from env via viper
	viper.AutomaticEnv()
	viper.SetDefault("APP_ENV", "dev")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("PAGE_SIZE_DEFAULT", 50)
	viper.SetDefault("PAGE_SIZE_MAX", 1000)
	viper.SetDefault("CURSOR_TTL", "72h")
	viper.SetDefault("LISTER_TIMEOUT", "2s")
	viper.SetDefault("ADMIN_TOKEN", "")

	// Decode AES key
	keyB64 := viper.GetString("AES_256_KEY_BASE64")
	key, err := base64.StdEncoding.DecodeString(keyB64)

	cfg := Cfg{
		App: AppCfg{
			Env:  viper.GetString("APP_ENV"),
			Port: viper.GetString("APP_PORT"),
		},
		DB:    DBCfg{DSN: viper.GetString("DB_DSN")},
		Redis: RedisCfg{Addr: viper.GetString("REDIS_ADDR")},
		Sec: SecurityCfg{
			AESKey:     key,
			AdminToken: viper.GetString("ADMIN_TOKEN"),
		},
		Page: PageCfg{
			DefaultSize:   viper.GetInt32("PAGE_SIZE_DEFAULT"),
			MaxSize:       viper.GetInt32("PAGE_SIZE_MAX"),
			CursorTTL:     viper.GetDuration("CURSOR_TTL"),
			ListerTimeout: viper.GetDuration("LISTER_TIMEOUT"),
		},
	}

	// 3) Fail fast on required settings
	if cfg.DB.DSN == "" {
		log.Fatal().Msg("DB_DSN is required")
	}
	if err != nil || len(cfg.Sec.AESKey) != 32 {
		log.Fatal().Msg("AES_256_KEY_BASE64 must be a valid 32-byte base64 key")
	}
	if cfg.Page.DefaultSize <= 0 || cfg.Page.MaxSize < cfg.Page.DefaultSize {
		log.Fatal().Msg("PAGE_SIZE_DEFAULT and PAGE_SIZE_MAX must be positive with default <= max")
	}

	return cfg
}
