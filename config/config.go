package config

import (
	"os"
	"strconv"
)

type Config struct {
	API      APIConfig
	Logger   LoggerConfig
	Session  SessionConfig
	Serial   SerialConfig
	Ticket   TicketConfig
	Business BusinessConfig
}

type APIConfig struct {
	BaseURL   string
	TimeoutMS int
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type SessionConfig struct {
	Path string
}

type SerialConfig struct {
	PortName      string
	SettleDelayMS int
}

type TicketConfig struct {
	PaperWidth  int    // 58 or 80 (mm)
	FontSize    string // small, normal, large
	DownloadDir string
}

type BusinessConfig struct {
	Name    string
	Address string
	TaxID   string
	Phone   string
	Footer  string
}

func LoadEnv() *Config {
	// Basic config loading
	// In a real scenario, use structured config loader like viper or koanf
	return &Config{
		API: APIConfig{
			BaseURL:   getEnv("API_BASE_URL", "http://localhost:3000/api"),
			TimeoutMS: getEnvInt("API_TIMEOUT_MS", 15000),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Session: SessionConfig{
			Path: getEnv("SESSION_DB_PATH", "terminal-session.db"),
		},
		Serial: SerialConfig{
			PortName:      getEnv("SERIAL_PORT", ""),
			SettleDelayMS: getEnvInt("SERIAL_SETTLE_DELAY_MS", 1000),
		},
		Ticket: TicketConfig{
			PaperWidth:  getEnvInt("TICKET_PAPER_WIDTH", 80),
			FontSize:    getEnv("TICKET_FONT_SIZE", "normal"),
			DownloadDir: getEnv("TICKET_DOWNLOAD_DIR", "."),
		},
		Business: BusinessConfig{
			Name:    getEnv("BUSINESS_NAME", "OmniPOS Store"),
			Address: getEnv("BUSINESS_ADDRESS", ""),
			TaxID:   getEnv("BUSINESS_TAX_ID", ""),
			Phone:   getEnv("BUSINESS_PHONE", ""),
			Footer:  getEnv("BUSINESS_TICKET_FOOTER", "Thank you for your purchase!"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
