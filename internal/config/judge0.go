package config

import (
	"os"
	"strconv"
	"time"
)

// Judge0Config holds the remote execution service endpoint and the
// opaque RapidAPI credential pair. Missing credentials are surfaced
// before any network call, not here.
type Judge0Config struct {
	BaseURL      string
	APIKey       string
	APIHost      string
	PollInterval time.Duration
	MaxPolls     int
}

func NewJudge0Config() *Judge0Config {
	maxPolls, err := strconv.Atoi(os.Getenv("JUDGE0_MAX_POLLS"))
	if err != nil || maxPolls <= 0 {
		maxPolls = 30
	}
	return &Judge0Config{
		BaseURL:      getEnv("JUDGE0_API_URL", "https://judge0-ce.p.rapidapi.com"),
		APIKey:       os.Getenv("JUDGE0_API_KEY"),
		APIHost:      getEnv("JUDGE0_API_HOST", "judge0-ce.p.rapidapi.com"),
		PollInterval: time.Second,
		MaxPolls:     maxPolls,
	}
}
