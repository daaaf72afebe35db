package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultGroqBaseURL = "https://api.groq.com/openai/v1"
	DefaultGroqModel   = "llama3-70b-8192"
)

// ConfigurationError — фатальная ошибка старта, процесс дальше не идёт.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return e.Reason
}

type Config struct {
	Port string

	GroqAPIKey       string
	GroqBaseURL      string
	GroqModel        string
	TranslateTimeout time.Duration

	TTSProvider       string // google | elevenlabs
	TTSBaseURL        string
	TTSTimeout        time.Duration
	ElevenLabsAPIKey  string
	ElevenLabsVoiceID string

	ArtifactDir       string
	ArtifactTTL       time.Duration
	ArtifactServeOnce bool

	S3 S3Config

	TelegramBotToken    string
	TelegramAdminChatID int64

	AccessToken     string
	RateLimitPerMin int
}

type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Secure    bool
}

func (c S3Config) Enabled() bool {
	return c.Endpoint != ""
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds the config from an arbitrary lookup, so tests don't touch the real env.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:              get("PORT", "8080"),
		GroqAPIKey:        get("GROQ_API_KEY", ""),
		GroqBaseURL:       get("GROQ_BASE_URL", DefaultGroqBaseURL),
		GroqModel:         get("GROQ_MODEL", DefaultGroqModel),
		TTSProvider:       strings.ToLower(get("TTS_PROVIDER", "google")),
		TTSBaseURL:        get("TTS_BASE_URL", ""),
		ElevenLabsAPIKey:  get("ELEVENLABS_API_KEY", ""),
		ElevenLabsVoiceID: get("ELEVENLABS_VOICE_ID", "EXAVITQu4vr4xnSDxMaL"),
		ArtifactDir:       get("ARTIFACT_DIR", filepath.Join(os.TempDir(), "speech-artifacts")),
		S3: S3Config{
			Endpoint:  get("S3_ENDPOINT", ""),
			AccessKey: get("S3_ACCESS_KEY", ""),
			SecretKey: get("S3_SECRET_KEY", ""),
			Bucket:    get("S3_BUCKET", ""),
			Region:    get("S3_REGION", ""),
		},
		TelegramBotToken: get("TELEGRAM_BOT_TOKEN", ""),
		AccessToken:      get("ACCESS_TOKEN", ""),
	}

	if cfg.GroqAPIKey == "" {
		return nil, &ConfigurationError{
			Key:    "GROQ_API_KEY",
			Reason: "GROQ_API_KEY is not set. Please check your .env file.",
		}
	}

	var err error
	if cfg.TranslateTimeout, err = duration(get, "TRANSLATE_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.TTSTimeout, err = duration(get, "TTS_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.ArtifactTTL, err = duration(get, "ARTIFACT_TTL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.ArtifactServeOnce, err = boolean(get, "ARTIFACT_SERVE_ONCE", false); err != nil {
		return nil, err
	}
	if cfg.S3.Secure, err = boolean(get, "S3_SECURE", true); err != nil {
		return nil, err
	}

	if cfg.RateLimitPerMin, err = strconv.Atoi(get("RATE_LIMIT_PER_MIN", "30")); err != nil || cfg.RateLimitPerMin <= 0 {
		return nil, &ConfigurationError{Key: "RATE_LIMIT_PER_MIN", Reason: "RATE_LIMIT_PER_MIN must be a positive integer"}
	}

	if chat := get("TELEGRAM_ADMIN_CHAT_ID", ""); chat != "" {
		id, err := strconv.ParseInt(chat, 10, 64)
		if err != nil {
			return nil, &ConfigurationError{Key: "TELEGRAM_ADMIN_CHAT_ID", Reason: "TELEGRAM_ADMIN_CHAT_ID must be an integer chat id"}
		}
		cfg.TelegramAdminChatID = id
	}

	switch cfg.TTSProvider {
	case "google":
	case "elevenlabs":
		if cfg.ElevenLabsAPIKey == "" {
			return nil, &ConfigurationError{Key: "ELEVENLABS_API_KEY", Reason: "ELEVENLABS_API_KEY is required when TTS_PROVIDER=elevenlabs"}
		}
	default:
		return nil, &ConfigurationError{Key: "TTS_PROVIDER", Reason: fmt.Sprintf("unknown TTS_PROVIDER %q", cfg.TTSProvider)}
	}

	if cfg.S3.Enabled() && cfg.S3.Bucket == "" {
		return nil, &ConfigurationError{Key: "S3_BUCKET", Reason: "S3_BUCKET is required when S3_ENDPOINT is set"}
	}

	return cfg, nil
}

func duration(get func(string, string) string, key string, def time.Duration) (time.Duration, error) {
	raw := get(key, "")
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, &ConfigurationError{Key: key, Reason: fmt.Sprintf("%s must be a positive duration, got %q", key, raw)}
	}
	return d, nil
}

func boolean(get func(string, string) string, key string, def bool) (bool, error) {
	raw := get(key, "")
	if raw == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &ConfigurationError{Key: key, Reason: fmt.Sprintf("%s must be true or false, got %q", key, raw)}
	}
	return b, nil
}
