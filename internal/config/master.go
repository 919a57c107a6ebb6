package config

import "os"

type AppConfig struct {
	DebugMode      bool
	Judge0Config   *Judge0Config
	ProjectConfig  *ProjectConfig
	GradingConfig  *GradingConfig
	RedisConfig    *RedisConfig
	PostgresConfig *PostgresConfig
	JwtConfig      *JwtConfig
	GradeSinkURL   string
}

func NewSystemConfig() *AppConfig {
	return &AppConfig{
		DebugMode:      os.Getenv("DEBUG_MODE") == "true",
		Judge0Config:   NewJudge0Config(),
		ProjectConfig:  NewProjectConfig(),
		GradingConfig:  NewGradingConfig(),
		RedisConfig:    NewRedisConfig(),
		PostgresConfig: NewPostgresConfig(),
		JwtConfig:      NewJwtConfig(),
		GradeSinkURL:   os.Getenv("GRADE_SINK_URL"),
	}
}

// getEnv gets an environment variable with a fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
