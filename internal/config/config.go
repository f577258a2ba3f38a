// Package config loads process configuration from the environment. A .env
// file in the working directory is applied first when present; real
// environment variables always win.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Client configures the voice client binary.
type Client struct {
	// RelayBaseURL is the base URL of the relay server.
	RelayBaseURL string
	// Language is the recognition language hint.
	Language string
	// AudioBackend selects the capture backend: "miniaudio" or
	// "portaudio". Only miniaudio supports playback.
	AudioBackend string

	AskTimeout   time.Duration
	SpeakTimeout time.Duration

	// Greeting is the assistant message shown before any input. Empty
	// disables it.
	Greeting string
}

// Relay configures the relay server binary.
type Relay struct {
	// Addr is the listen address.
	Addr string

	// LLMBackend selects the answer backend: "ollama" or "openai".
	LLMBackend string

	OllamaBaseURL string
	OllamaModel   string

	OpenAIBaseURL string
	OpenAIAPIKey  string
	OpenAIModel   string

	TTSBaseURL    string
	TTSSpeakerID  string
	TTSLanguageID string

	// RequestsPerMinute caps requests per client IP.
	RequestsPerMinute int
	// AllowedOrigins is the CORS origin allowlist.
	AllowedOrigins []string
}

const defaultGreeting = "Hello! I'm your voice assistant. Press the microphone button and ask me anything!"

// LoadClient reads the client configuration from the environment.
func LoadClient() Client {
	_ = godotenv.Load()

	return Client{
		RelayBaseURL: envOr("VOICELOOP_RELAY_URL", "http://localhost:8080"),
		Language:     envOr("VOICELOOP_LANGUAGE", "en-US"),
		AudioBackend: envOr("VOICELOOP_AUDIO_BACKEND", "miniaudio"),
		AskTimeout:   envDuration("VOICELOOP_ASK_TIMEOUT", 30*time.Second),
		SpeakTimeout: envDuration("VOICELOOP_SPEAK_TIMEOUT", 45*time.Second),
		Greeting:     envOr("VOICELOOP_GREETING", defaultGreeting),
	}
}

// LoadRelay reads the relay server configuration from the environment.
func LoadRelay() Relay {
	_ = godotenv.Load()

	return Relay{
		Addr:              envOr("VOICELOOP_RELAY_ADDR", ":8080"),
		LLMBackend:        envOr("VOICELOOP_LLM_BACKEND", "ollama"),
		OllamaBaseURL:     envOr("VOICELOOP_OLLAMA_URL", "http://localhost:11434"),
		OllamaModel:       envOr("VOICELOOP_OLLAMA_MODEL", "llama3"),
		OpenAIBaseURL:     os.Getenv("VOICELOOP_OPENAI_URL"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:       envOr("VOICELOOP_OPENAI_MODEL", "gpt-4o-mini"),
		TTSBaseURL:        envOr("VOICELOOP_TTS_URL", "http://localhost:5002"),
		TTSSpeakerID:      envOr("VOICELOOP_TTS_SPEAKER", "Marcos Rudaski"),
		TTSLanguageID:     envOr("VOICELOOP_TTS_LANGUAGE", "en"),
		RequestsPerMinute: envInt("VOICELOOP_RATE_LIMIT", 60),
		AllowedOrigins:    envList("VOICELOOP_ALLOWED_ORIGINS", []string{"*"}),
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		return fallback
	}
	return duration
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func envList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
