package commons

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	ServerPort       uint16
	APIKeyHash       string
	NowPaymentsKey   string
	NowPaymentsBase  string
	PriceFeedBase    string
	RedisAddr        string
	RedisPass        string
	PostgresConn     string
	WarmupSymbols    string
	WarmupCurrencies string
}

func LoadConfig() (Config, error) {
	var config Config
	var errors []string

	config.NowPaymentsKey = os.Getenv("NOWPAYMENTS_API_KEY")
	if config.NowPaymentsKey == "" {
		errors = append(errors, "NOWPAYMENTS_API_KEY is not set")
	}

	config.APIKeyHash = os.Getenv("API_KEY_HASH")
	if config.APIKeyHash == "" {
		errors = append(errors, "API_KEY_HASH is not set")
	}

	config.RedisPass = os.Getenv("REDIS_PASSWORD")
	if config.RedisPass == "" {
		errors = append(errors, "REDIS_PASSWORD is not set")
	}

	config.RedisAddr = os.Getenv("REDIS_ADDR")
	if config.RedisAddr == "" {
		errors = append(errors, "REDIS_ADDR is not set")
	}

	config.PostgresConn = os.Getenv("POSTGRES_CONN")
	if config.PostgresConn == "" {
		errors = append(errors, "POSTGRES_CONN is not set")
	}

	config.NowPaymentsBase = os.Getenv("NOWPAYMENTS_API_BASE")
	if config.NowPaymentsBase == "" {
		config.NowPaymentsBase = DefaultNowPaymentsBase
	}

	config.PriceFeedBase = os.Getenv("COINGECKO_API_BASE")
	if config.PriceFeedBase == "" {
		config.PriceFeedBase = DefaultPriceFeedBase
	}

	config.WarmupSymbols = os.Getenv("WARMUP_SYMBOLS")
	config.WarmupCurrencies = os.Getenv("WARMUP_CURRENCIES")

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		errors = append(errors, "SERVER_PORT is not set")
	} else {
		parsedServerPort, err := strconv.ParseUint(serverPort, 10, 16)
		if err != nil {
			errors = append(errors, fmt.Sprintf("invalid SERVER_PORT: %s", err))
		} else {
			config.ServerPort = uint16(parsedServerPort)
		}
	}

	if len(errors) > 0 {
		for _, err := range errors {
			fmt.Println("Configuration Error:", err)
		}
		return Config{}, fmt.Errorf("configuration errors occurred")
	}

	return config, nil
}
