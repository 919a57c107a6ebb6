package config

import (
	"os"
	"strconv"
	"time"
)

type JwtConfig struct {
	Secret   string
	TokenTTL time.Duration
}

func NewJwtConfig() *JwtConfig {
	ttlMin, err := strconv.Atoi(os.Getenv("JWT_TTL_MINUTES"))
	if err != nil || ttlMin <= 0 {
		ttlMin = 60
	}
	return &JwtConfig{
		Secret:   os.Getenv("JWT_SECRET"),
		TokenTTL: time.Duration(ttlMin) * time.Minute,
	}
}
