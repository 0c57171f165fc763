package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	DBURL     string `mapstructure:"DB_URL"`
	RedisAddr string `mapstructure:"REDIS_ADDR"`

	MQTTBroker       string `mapstructure:"MQTT_BROKER"`
	MQTTClientID     string `mapstructure:"MQTT_CLIENT_ID"`
	MQTTControlTopic string `mapstructure:"MQTT_TOPIC_CONTROL"`
	MQTTStatusTopic  string `mapstructure:"MQTT_TOPIC_STATUS"`
	MQTTWildcard     string `mapstructure:"MQTT_TOPIC_WILDCARD"`

	HTTPPort  int    `mapstructure:"HTTP_PORT"`
	JWTSecret string `mapstructure:"JWT_SECRET"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`

	SMTPHost string `mapstructure:"SMTP_HOST"`
	SMTPPort int    `mapstructure:"SMTP_PORT"`
	SMTPUser string `mapstructure:"SMTP_USER"`
	SMTPPass string `mapstructure:"SMTP_PASS"`
	MailFrom string `mapstructure:"MAIL_FROM"`

	MDNSLocalName string `mapstructure:"MDNS_LOCAL_NAME"`
}

// LoadConfig reads configuration from file, .env, or env vars
func LoadConfig() (*Config, error) {
	// .env is optional; env vars win either way
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig()

	viper.SetDefault("MQTT_BROKER", "tcp://localhost:1883")
	viper.SetDefault("MQTT_CLIENT_ID", "smart_light_backend")
	viper.SetDefault("MQTT_TOPIC_CONTROL", "/light/control")
	viper.SetDefault("MQTT_TOPIC_STATUS", "/light/status")
	viper.SetDefault("MQTT_TOPIC_WILDCARD", "/light/#")
	viper.SetDefault("HTTP_PORT", 8080)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("MDNS_LOCAL_NAME", "smartlight.local")

	cfg := &Config{
		DBURL:            viper.GetString("DB_URL"),
		RedisAddr:        viper.GetString("REDIS_ADDR"),
		MQTTBroker:       viper.GetString("MQTT_BROKER"),
		MQTTClientID:     viper.GetString("MQTT_CLIENT_ID"),
		MQTTControlTopic: viper.GetString("MQTT_TOPIC_CONTROL"),
		MQTTStatusTopic:  viper.GetString("MQTT_TOPIC_STATUS"),
		MQTTWildcard:     viper.GetString("MQTT_TOPIC_WILDCARD"),
		HTTPPort:         viper.GetInt("HTTP_PORT"),
		JWTSecret:        viper.GetString("JWT_SECRET"),
		LogLevel:         viper.GetString("LOG_LEVEL"),
		SMTPHost:         viper.GetString("SMTP_HOST"),
		SMTPPort:         viper.GetInt("SMTP_PORT"),
		SMTPUser:         viper.GetString("SMTP_USER"),
		SMTPPass:         viper.GetString("SMTP_PASS"),
		MailFrom:         viper.GetString("MAIL_FROM"),
		MDNSLocalName:    viper.GetString("MDNS_LOCAL_NAME"),
	}
	return cfg, nil
}
