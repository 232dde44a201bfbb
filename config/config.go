package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string          `mapstructure:"port"`
	OpenAIAPIKey   string          `mapstructure:"OPENAI_API_KEY"`
	WeaviateAPIKey string          `mapstructure:"WEAVIATE_APIKEY"`
	GeminiAPIKeys  []string        `mapstructure:"gemini_api_keys"`
	MinioAccessKey string          `mapstructure:"MINIO_ACCESS_KEY"`
	MinioSecretKey string          `mapstructure:"MINIO_SECRET_KEY"`
	MongoURI       string          `mapstructure:"MONGODB_URI"`
	Mongo          MongoConfig     `mapstructure:"mongo"`
	Storage        StorageConfig   `mapstructure:"storage"`
	Weaviate       WeaviateConfig  `mapstructure:"weaviate"`
	Embedding      EmbeddingConfig `mapstructure:"embedding"`
	AI             AIConfig        `mapstructure:"ai"`
}

type MongoConfig struct {
	Database string `mapstructure:"database"`
}

type StorageConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Bucket   string `mapstructure:"bucket"`
	UseSSL   bool   `mapstructure:"use_ssl"`
}

type WeaviateConfig struct {
	Host string `mapstructure:"host"`
}

type EmbeddingConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	Model     string `mapstructure:"model"`
	Dimension int    `mapstructure:"dimension"`
}

// AIConfig selects and configures the generation backend. Provider is
// "openai" (any OpenAI-compatible endpoint) or "gemini".
type AIConfig struct {
	Provider    string  `mapstructure:"provider"`
	BaseURL     string  `mapstructure:"base_url"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float32 `mapstructure:"temperature"`
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set up Viper to read from config file
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set up Viper to read from environment variables
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Bind environment variables for secrets
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("WEAVIATE_APIKEY")
	v.BindEnv("MINIO_ACCESS_KEY")
	v.BindEnv("MINIO_SECRET_KEY")
	v.BindEnv("MONGODB_URI")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Defaults matching the embedding model in use (bge-small, 384 dims)
	if config.Embedding.Dimension == 0 {
		config.Embedding.Dimension = 384
	}
	if config.AI.MaxTokens == 0 {
		config.AI.MaxTokens = 3000
	}
	if config.AI.Temperature == 0 {
		config.AI.Temperature = 0.2
	}

	return &config, nil
}
