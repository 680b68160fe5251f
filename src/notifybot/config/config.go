package config

import (
	"log"
	"os"

	"gorm.io/gorm"

	"github.com/bandhall/bandhall/src/api/data"
)

type Config struct {
	Token    string
	MySQLDSN string
	RedisURL string
}

// Load reads the bot configuration from the settings table with env
// fallbacks, same as the API service.
func Load(db *gorm.DB) Config {
	if err := data.LoadSettings(db); err != nil {
		log.Printf("Failed to load settings: %v", err)
	}

	token := data.GetSetting("discord_token")
	if token == "" {
		token = os.Getenv("DISCORD_TOKEN")
	}
	if token == "" {
		log.Fatalf("missing discord token (settings or DISCORD_TOKEN)")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	return Config{
		Token:    token,
		MySQLDSN: os.Getenv("MYSQL_DSN"),
		RedisURL: redisURL,
	}
}
