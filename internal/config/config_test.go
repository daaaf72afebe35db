package config

import (
	"errors"
	"testing"
	"time"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_MissingAPIKey(t *testing.T) {
	_, err := FromEnv(envOf(map[string]string{}))
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("FromEnv() error = %v, want ConfigurationError", err)
	}
	if cfgErr.Key != "GROQ_API_KEY" {
		t.Errorf("Key = %q, want GROQ_API_KEY", cfgErr.Key)
	}
	if cfgErr.Error() != "GROQ_API_KEY is not set. Please check your .env file." {
		t.Errorf("Error() = %q", cfgErr.Error())
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{"GROQ_API_KEY": "k"}))
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if cfg.GroqBaseURL != DefaultGroqBaseURL || cfg.GroqModel != DefaultGroqModel {
		t.Errorf("groq defaults = %q %q", cfg.GroqBaseURL, cfg.GroqModel)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.TranslateTimeout != 60*time.Second || cfg.TTSTimeout != 60*time.Second {
		t.Errorf("timeouts = %v %v", cfg.TranslateTimeout, cfg.TTSTimeout)
	}
	if cfg.ArtifactTTL != 30*time.Minute || cfg.ArtifactServeOnce {
		t.Errorf("artifact = %v %v", cfg.ArtifactTTL, cfg.ArtifactServeOnce)
	}
	if cfg.TTSProvider != "google" || cfg.S3.Enabled() {
		t.Errorf("provider = %q, s3 = %v", cfg.TTSProvider, cfg.S3.Enabled())
	}
	if cfg.RateLimitPerMin != 30 {
		t.Errorf("RateLimitPerMin = %d", cfg.RateLimitPerMin)
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		key  string
	}{
		{"bad timeout", map[string]string{"TRANSLATE_TIMEOUT": "soon"}, "TRANSLATE_TIMEOUT"},
		{"bad serve once", map[string]string{"ARTIFACT_SERVE_ONCE": "maybe"}, "ARTIFACT_SERVE_ONCE"},
		{"bad provider", map[string]string{"TTS_PROVIDER": "espeak"}, "TTS_PROVIDER"},
		{"elevenlabs without key", map[string]string{"TTS_PROVIDER": "elevenlabs"}, "ELEVENLABS_API_KEY"},
		{"s3 without bucket", map[string]string{"S3_ENDPOINT": "s3.local"}, "S3_BUCKET"},
		{"bad chat id", map[string]string{"TELEGRAM_ADMIN_CHAT_ID": "admin"}, "TELEGRAM_ADMIN_CHAT_ID"},
		{"bad rate", map[string]string{"RATE_LIMIT_PER_MIN": "0"}, "RATE_LIMIT_PER_MIN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.env["GROQ_API_KEY"] = "k"
			_, err := FromEnv(envOf(tt.env))
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("FromEnv() error = %v, want ConfigurationError", err)
			}
			if cfgErr.Key != tt.key {
				t.Errorf("Key = %q, want %q", cfgErr.Key, tt.key)
			}
		})
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"GROQ_API_KEY":           "k",
		"GROQ_MODEL":             "llama-3.3-70b-versatile",
		"TTS_PROVIDER":           "ElevenLabs",
		"ELEVENLABS_API_KEY":     "el",
		"ARTIFACT_SERVE_ONCE":    "true",
		"TELEGRAM_ADMIN_CHAT_ID": "-100123",
		"S3_ENDPOINT":            "s3.local",
		"S3_BUCKET":              "audio",
		"S3_SECURE":              "false",
	}))
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if cfg.GroqModel != "llama-3.3-70b-versatile" || cfg.TTSProvider != "elevenlabs" {
		t.Errorf("cfg = %+v", cfg)
	}
	if !cfg.ArtifactServeOnce || cfg.TelegramAdminChatID != -100123 {
		t.Errorf("cfg = %+v", cfg)
	}
	if !cfg.S3.Enabled() || cfg.S3.Secure {
		t.Errorf("s3 = %+v", cfg.S3)
	}
}
