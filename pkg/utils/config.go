package utils

import (
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var loadEnvOnce sync.Once

// LoadEnv reads a .env file from the working directory, if present. Values
// already set in the environment win.
func LoadEnv() {
	loadEnvOnce.Do(func() {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("[config] .env: %v", err)
		}
	})
}

type AuthConfig struct {
	JWTSecret   string
	JWTIssuer   string
	JWTDuration time.Duration
}

func LoadAuthConfig() AuthConfig {
	LoadEnv()

	return AuthConfig{
		// dev default (change for demo / production)
		JWTSecret:   getEnv("MUSICREG_JWT_SECRET", "dev-secret-change-me"),
		JWTIssuer:   getEnv("MUSICREG_JWT_ISSUER", "musicreg"),
		JWTDuration: time.Duration(getEnvInt("MUSICREG_JWT_TTL_HOURS", 24)) * time.Hour,
	}
}

type ServerConfig struct {
	HTTPAddr string
	TCPAddr  string
	// CacheTTL bounds how long a registration read is served from memory.
	CacheTTL time.Duration
}

func LoadServerConfig() ServerConfig {
	LoadEnv()

	return ServerConfig{
		HTTPAddr: getEnv("MUSICREG_HTTP_ADDR", ":8080"),
		TCPAddr:  getEnv("MUSICREG_TCP_ADDR", ":7070"),
		CacheTTL: time.Duration(getEnvInt("MUSICREG_CACHE_TTL_SECONDS", 300)) * time.Second,
	}
}

type GrpcConfig struct {
	Addr string
}

func LoadGrpcConfig() GrpcConfig {
	LoadEnv()
	return GrpcConfig{Addr: getEnv("MUSICREG_GRPC_ADDR", ":9090")}
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// getEnvInt falls back to def when the variable is unset, malformed or not positive.
func getEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("[config] %s=%q is not a positive integer, using %d", key, v, def)
		return def
	}
	return n
}
