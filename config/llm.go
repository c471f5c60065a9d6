package config

import (
	"fmt"
	"strings"

	"github.com/NomadCrew/nomad-crew-itinerary/logger"
)

const (
	defaultLegacyModel    = "qwen3:8b"
	defaultNvidiaBaseURL  = "https://integrate.api.nvidia.com/v1"
	defaultNvidiaModel    = "z-ai/glm4.7"
	defaultOllamaBaseURL  = "http://localhost:11434"
	defaultOllamaModel    = "qwen3:8b"
	defaultDashscopeURL   = "https://dashscope.aliyuncs.com/compatible-mode/v1"
	defaultDashscopeModel = "qwen-plus"
	defaultGeminiModel    = "gemini-1.5-flash"
	defaultOpenAIBaseURL  = "https://api.openai.com/v1"
	defaultOpenAIModel    = "gpt-4o-mini"

	// Ollama's OpenAI-compatible endpoint ignores the key but the client needs one.
	ollamaPlaceholderKey = "ollama"
)

// Backend names the wire protocol used to reach a model.
type Backend string

const (
	BackendOpenAICompatible Backend = "openai"
	BackendGemini           Backend = "gemini"
)

// LLMConfig holds every variable the provider resolution looks at.
type LLMConfig struct {
	Provider       string  `mapstructure:"PROVIDER" yaml:"provider"`
	APIKey         string  `mapstructure:"API_KEY" yaml:"api_key"`
	BaseURL        string  `mapstructure:"BASE_URL" yaml:"base_url"`
	ModelName      string  `mapstructure:"MODEL_NAME" yaml:"model_name"`
	Temperature    float32 `mapstructure:"TEMPERATURE" yaml:"temperature"`
	TimeoutSeconds int     `mapstructure:"TIMEOUT_SECONDS" yaml:"timeout_seconds"`

	NvidiaAPIKey    string `mapstructure:"NVIDIA_API_KEY" yaml:"nvidia_api_key"`
	NvidiaModel     string `mapstructure:"NVIDIA_MODEL" yaml:"nvidia_model"`
	OllamaBaseURL   string `mapstructure:"OLLAMA_BASE_URL" yaml:"ollama_base_url"`
	OllamaModel     string `mapstructure:"OLLAMA_MODEL" yaml:"ollama_model"`
	DashscopeAPIKey string `mapstructure:"DASHSCOPE_API_KEY" yaml:"dashscope_api_key"`
	DashscopeModel  string `mapstructure:"DASHSCOPE_MODEL" yaml:"dashscope_model"`
	GeminiAPIKey    string `mapstructure:"GEMINI_API_KEY" yaml:"gemini_api_key"`
	GeminiModel     string `mapstructure:"GEMINI_MODEL" yaml:"gemini_model"`
	OpenAIAPIKey    string `mapstructure:"OPENAI_API_KEY" yaml:"openai_api_key"`
	OpenAIModel     string `mapstructure:"OPENAI_MODEL" yaml:"openai_model"`
}

// LLMEndpoint is the resolved model target.
type LLMEndpoint struct {
	Provider string
	Backend  Backend
	BaseURL  string
	Model    string
	APIKey   string
}

// Resolve picks the endpoint. An explicit LLM_API_KEY plus LLM_OPENAI_BASE
// always wins; after that LLM_PROVIDER selects a vendor, and anything
// unrecognised lands on a local Ollama.
func (c LLMConfig) Resolve() (LLMEndpoint, error) {
	if c.APIKey != "" && c.BaseURL != "" {
		return LLMEndpoint{
			Provider: "custom",
			Backend:  BackendOpenAICompatible,
			BaseURL:  strings.TrimRight(c.BaseURL, "/"),
			Model:    orDefault(c.ModelName, defaultLegacyModel),
			APIKey:   c.APIKey,
		}, nil
	}

	provider := strings.ToLower(strings.TrimSpace(c.Provider))
	switch provider {
	case "nvidia":
		if c.NvidiaAPIKey == "" {
			return LLMEndpoint{}, fmt.Errorf("NVIDIA_API_KEY is required when LLM_PROVIDER=nvidia")
		}
		return LLMEndpoint{
			Provider: provider,
			Backend:  BackendOpenAICompatible,
			BaseURL:  defaultNvidiaBaseURL,
			Model:    orDefault(c.NvidiaModel, defaultNvidiaModel),
			APIKey:   c.NvidiaAPIKey,
		}, nil
	case "", "ollama":
		return c.ollama(), nil
	case "dashscope":
		if c.DashscopeAPIKey == "" {
			return LLMEndpoint{}, fmt.Errorf("DASHSCOPE_API_KEY is required when LLM_PROVIDER=dashscope")
		}
		return LLMEndpoint{
			Provider: provider,
			Backend:  BackendOpenAICompatible,
			BaseURL:  defaultDashscopeURL,
			Model:    orDefault(c.DashscopeModel, defaultDashscopeModel),
			APIKey:   c.DashscopeAPIKey,
		}, nil
	case "gemini":
		if c.GeminiAPIKey == "" {
			return LLMEndpoint{}, fmt.Errorf("GEMINI_API_KEY is required when LLM_PROVIDER=gemini")
		}
		return LLMEndpoint{
			Provider: provider,
			Backend:  BackendGemini,
			Model:    orDefault(c.GeminiModel, defaultGeminiModel),
			APIKey:   c.GeminiAPIKey,
		}, nil
	case "openai":
		if c.OpenAIAPIKey == "" {
			return LLMEndpoint{}, fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER=openai")
		}
		return LLMEndpoint{
			Provider: provider,
			Backend:  BackendOpenAICompatible,
			BaseURL:  defaultOpenAIBaseURL,
			Model:    orDefault(c.OpenAIModel, defaultOpenAIModel),
			APIKey:   c.OpenAIAPIKey,
		}, nil
	default:
		logger.GetLogger().Warnw("Unknown LLM_PROVIDER, falling back to Ollama", "provider", c.Provider)
		return c.ollama(), nil
	}
}

func (c LLMConfig) ollama() LLMEndpoint {
	base := strings.TrimRight(orDefault(c.OllamaBaseURL, defaultOllamaBaseURL), "/")
	return LLMEndpoint{
		Provider: "ollama",
		Backend:  BackendOpenAICompatible,
		BaseURL:  base + "/v1",
		Model:    orDefault(c.OllamaModel, defaultOllamaModel),
		APIKey:   ollamaPlaceholderKey,
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
