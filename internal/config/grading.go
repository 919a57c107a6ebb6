package config

import (
	"os"
	"strconv"
)

// GradingConfig holds the scoring policy and execution limits.
// ProblemID names the author-scoped problem whose test cases apply to
// this deployment.
type GradingConfig struct {
	ProblemID         string
	MaxScore          float64
	DefaultTimeLimit  float64
	MemoryLimitKB     int
	MaxConcurrentRuns int
}

func NewGradingConfig() *GradingConfig {
	maxScore, err := strconv.ParseFloat(os.Getenv("GRADING_MAX_SCORE"), 64)
	if err != nil || maxScore <= 0 {
		maxScore = 100.0
	}
	timeLimit, err := strconv.ParseFloat(os.Getenv("GRADING_TIME_LIMIT_SEC"), 64)
	if err != nil || timeLimit <= 0 {
		timeLimit = 5.0
	}
	memoryLimit, err := strconv.Atoi(os.Getenv("GRADING_MEMORY_LIMIT_KB"))
	if err != nil || memoryLimit <= 0 {
		memoryLimit = 128000
	}
	concurrent, err := strconv.Atoi(os.Getenv("MAX_CONCURRENT_RUNS"))
	if err != nil || concurrent <= 0 {
		concurrent = 3
	}

	return &GradingConfig{
		ProblemID:         getEnv("PROBLEM_ID", "default"),
		MaxScore:          maxScore,
		DefaultTimeLimit:  timeLimit,
		MemoryLimitKB:     memoryLimit,
		MaxConcurrentRuns: concurrent,
	}
}
