package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	// AdminToken gates feed writes and manual cache refreshes. An empty
	// value disables those operations entirely.
	AdminToken string `envconfig:"ADMIN_TOKEN"`

	DataDir        string   `envconfig:"DATA_DIR" default:"data"`
	KnowledgeFiles []string `envconfig:"KNOWLEDGE_FILES" default:"data/club-knowledge.json"`

	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	S3Bucket    string `envconfig:"S3_BUCKET" default:"site-data"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`

	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`
	OpenAIModel  string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`

	// Minimum length before a keyword-matched local answer is considered
	// substantial enough to skip the generative backend.
	MinLocalAnswerLen int `envconfig:"MIN_LOCAL_ANSWER_LEN" default:"50"`

	IGAccessToken string `envconfig:"IG_ACCESS_TOKEN"`
	IGUserID      string `envconfig:"IG_USER_ID"`
	IGHashtag     string `envconfig:"IG_HASHTAG" default:"LCACProjects"`
	IGLimit       int    `envconfig:"IG_LIMIT" default:"15"`

	RefreshInterval time.Duration `envconfig:"REFRESH_INTERVAL" default:"6h"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("CLUBSITE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func (c *Config) HasS3() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}

func (c *Config) HasInstagram() bool {
	return c.IGAccessToken != "" && c.IGUserID != ""
}
