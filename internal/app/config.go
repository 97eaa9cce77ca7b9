package app

import (
	"time"

	"github.com/frqgit/year-7-math/internal/platform/envutil"
)

type Config struct {
	Port            string
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	RedisAddr       string
	RedisPassword   string
}

func LoadConfig() Config {
	return Config{
		Port:            envutil.Str("PORT", "8080"),
		JWTSecretKey:    envutil.Str("JWT_SECRET_KEY", "defaultsecret"),
		AccessTokenTTL:  envutil.Seconds("ACCESS_TOKEN_TTL", 3600),
		RefreshTokenTTL: envutil.Seconds("REFRESH_TOKEN_TTL", 86400),
		RedisAddr:       envutil.Str("REDIS_ADDR", ""),
		RedisPassword:   envutil.Str("REDIS_PASSWORD", ""),
	}
}
