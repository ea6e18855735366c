package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Kafka    KafkaConfig
}

type AppConfig struct {
	Name           string
	Port           string
	Debug          bool
	LogPath        string
	FrontendOrigin string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type JWTConfig struct {
	Secret   string
	TTLHours int
}

type KafkaConfig struct {
	Broker        string
	ClientID      string
	ConsumerGroup string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "3001")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("TOKEN_TTL_HOURS", 24)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("FRONTEND_URL", "http://localhost:3000")
	viper.SetDefault("KAFKA_CLIENT_ID", "album-shelf-backend")
	viper.SetDefault("KAFKA_CONSUMER_GROUP", "album-shelf-consumer-group")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:           viper.GetString("APP_NAME"),
			Port:           viper.GetString("PORT"),
			Debug:          viper.GetBool("DEBUG"),
			LogPath:        viper.GetString("LOG_PATH"),
			FrontendOrigin: viper.GetString("FRONTEND_URL"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:   viper.GetString("JWT_SECRET"),
			TTLHours: viper.GetInt("TOKEN_TTL_HOURS"),
		},
		Kafka: KafkaConfig{
			Broker:        viper.GetString("KAFKA_BROKER"),
			ClientID:      viper.GetString("KAFKA_CLIENT_ID"),
			ConsumerGroup: viper.GetString("KAFKA_CONSUMER_GROUP"),
		},
	}

	return config, nil
}
