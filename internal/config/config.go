package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config 应用配置
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string
	GinMode   string

	RegretModelPath     string
	PreferenceModelPath string
	FitModelPath        string
	FitVariant          string // eco, base

	RateLimitPerMinute int
}

// Load 加载配置. Values from a .env file in the working directory are used
// unless the variable is already set in the environment.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	fitVariant := getEnv("FIT_VARIANT", "eco")

	return &Config{
		Port:      getEnv("PORT", ":8080"),
		DBPath:    getEnv("DB_PATH", "./data/plantroute.db"),
		JWTSecret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		GinMode:   getEnv("GIN_MODE", ""),

		RegretModelPath:     getEnv("REGRET_MODEL_PATH", "./data/models/regret_protection.json"),
		PreferenceModelPath: getEnv("PREFERENCE_MODEL_PATH", "./data/models/preference.json"),
		FitModelPath:        getEnv("FIT_MODEL_PATH", defaultFitModelPath(fitVariant)),
		FitVariant:          fitVariant,

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
	}
}

// defaultFitModelPath 按变体选择默认模型文件
func defaultFitModelPath(variant string) string {
	if variant == "base" {
		return "./data/models/preference_fit.json"
	}
	return "./data/models/preference_fit_eco.json"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
