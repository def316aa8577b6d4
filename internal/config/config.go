package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the server. It is built once in
// main and handed to every constructor; there is no package-level instance.
type Config struct {
	DatabaseURL string
	HTTPPort    string
	LogLevel    string

	// Admin back-office auth.
	JWTSecret         string
	AdminPasswordHash string

	// Chat completion (Gemini).
	GeminiAPIKey    string
	ChatModel       string
	ChatTemperature float32
	ChatMaxTokens   int32

	// Voice synthesis (ElevenLabs). The API key is optional: without it
	// the text-to-speech endpoint reports a credential error and the rest
	// of the site keeps working.
	VoiceAPIKey       string
	VoiceID           string
	VoiceModel        string
	VoiceStability    float64
	VoiceSimilarity   float64
	VoiceStyle        float64
	VoiceSpeakerBoost bool
}

// Load reads .env (if present) and the environment, validates required
// credentials, and returns the assembled configuration.
func Load() (*Config, error) {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL: getEnv("DATABASE_URL", "portfolio.db"),
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "INFO"),

		JWTSecret:         getEnv("JWT_SECRET", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		ChatModel:       getEnv("CHAT_MODEL", "gemini-1.5-flash-latest"),
		ChatTemperature: float32(getEnvAsFloat("CHAT_TEMPERATURE", 0.7)),
		ChatMaxTokens:   int32(getEnvAsInt("CHAT_MAX_TOKENS", 1024)),

		VoiceAPIKey:       getEnv("ELEVENLABS_API_KEY", ""),
		VoiceID:           getEnv("ELEVENLABS_VOICE_ID", "21m00Tcm4TlvDq8ikWAM"),
		VoiceModel:        getEnv("ELEVENLABS_MODEL", "eleven_turbo_v2"),
		VoiceStability:    getEnvAsFloat("ELEVENLABS_STABILITY", 0.5),
		VoiceSimilarity:   getEnvAsFloat("ELEVENLABS_SIMILARITY", 0.75),
		VoiceStyle:        getEnvAsFloat("ELEVENLABS_STYLE", 0.0),
		VoiceSpeakerBoost: getEnvAsBool("ELEVENLABS_SPEAKER_BOOST", true),
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if cfg.AdminPasswordHash == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD_HASH environment variable is required")
	}

	return cfg, nil
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}
