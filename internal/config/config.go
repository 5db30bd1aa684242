package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DSN           string
	HTTPPort      string
	Username      string
	Password      string
	FilterWord    string
	MigrationsDir string
	KafkaBrokers  []string
	KafkaGroupID  string
	KafkaTopic    string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	brokersStr := getEnv("KAFKA_BROKERS", "localhost:9092")
	return &Config{
		DSN:           getEnv("APP_DSN", "host=localhost user=postgres password=postgres dbname=wholesale sslmode=disable"),
		HTTPPort:      getEnv("APP_PORT", "9000"),
		Username:      getEnv("APP_USER", "admin"),
		Password:      getEnv("APP_PASS", "secret"),
		FilterWord:    getEnv("APP_FILTER", ""),
		MigrationsDir: getEnv("APP_MIGRATIONS", "migrations"),
		KafkaBrokers:  strings.Split(brokersStr, ","),
		KafkaGroupID:  getEnv("KAFKA_GROUP_ID", "audit-group"),
		KafkaTopic:    getEnv("KAFKA_TOPIC", "order-audit"),
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.HTTPPort)
}
