package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port           int      `yaml:"port"`
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"server"`

	AI struct {
		Provider string `yaml:"provider"` // gemini or openai
		APIKey   string `yaml:"apiKey"`
		Model    string `yaml:"model"`
	} `yaml:"ai"`

	Store struct {
		Driver string `yaml:"driver"` // file, sqlite, mysql, postgres
		Dir    string `yaml:"dir"`    // file driver
		Path   string `yaml:"path"`   // sqlite driver
	} `yaml:"store"`

	Database struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslMode"`
	} `yaml:"database"`

	Minio struct {
		Enabled    bool   `yaml:"enabled"`
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	Wiki struct {
		Endpoint string `yaml:"endpoint"`
	} `yaml:"wiki"`
}

// Load baca file config.yaml. File yang hilang bukan error, defaults + env
// sudah cukup untuk jalan dengan file store.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}
	cfg.applyDefaults()
	cfg.applyEnv()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.AI.Provider == "" {
		c.AI.Provider = "gemini"
	}
	if c.Store.Driver == "" {
		c.Store.Driver = "file"
	}
	if c.Store.Dir == "" {
		c.Store.Dir = "data"
	}
	if c.Store.Path == "" {
		c.Store.Path = "data/prospector.db"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
}

// applyEnv lets secrets come from the environment instead of the yaml file.
func (c *Config) applyEnv() {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" && strings.EqualFold(c.AI.Provider, "gemini") {
		c.AI.APIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" && strings.EqualFold(c.AI.Provider, "openai") {
		c.AI.APIKey = v
	}
	if v := os.Getenv("AI_API_KEY"); v != "" {
		c.AI.APIKey = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("MINIO_SECRET_KEY"); v != "" {
		c.Minio.SecretKey = v
	}
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// Helper untuk build DSN Postgres
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
