package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Aptos    AptosConfig
	Storage  StorageConfig
	Shelby   ShelbyConfig
}

type ServerConfig struct {
	Port         string
	Environment  string
	JWTSecret    string
	AllowOrigins string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type AptosConfig struct {
	Network         string // mainnet, testnet or devnet
	ContractAddress string
}

type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

// ShelbyConfig holds the chunkset pricing policy. The defaults mirror the
// platform's launch pricing but every knob is operator-tunable.
type ShelbyConfig struct {
	OctasPerChunkset uint64        // payment price of one chunkset
	ChunksetSizeMB   int64         // upload megabytes covered by one chunkset
	SessionTTL       time.Duration // lifetime of a prepaid session
}

func (d DatabaseConfig) DSN() string {
	return "postgres://" + d.User + ":" + d.Password + "@" + d.Host + ":" + d.Port + "/" + d.Name + "?sslmode=" + d.SSLMode
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	useSSL, _ := strconv.ParseBool(getEnv("STORAGE_USE_SSL", "false"))
	octasPerChunkset, _ := strconv.ParseUint(getEnv("SHELBY_OCTAS_PER_CHUNKSET", "100000"), 10, 64)
	chunksetSizeMB, _ := strconv.ParseInt(getEnv("SHELBY_CHUNKSET_SIZE_MB", "10"), 10, 64)
	sessionTTLHours, _ := strconv.Atoi(getEnv("SHELBY_SESSION_TTL_HOURS", "24"))

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Environment:  getEnv("ENVIRONMENT", "development"),
			JWTSecret:    getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AllowOrigins: getEnv("ALLOW_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "patrongate"),
			Password: getEnv("DB_PASSWORD", "patrongate"),
			Name:     getEnv("DB_NAME", "patrongate"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Aptos: AptosConfig{
			Network:         getEnv("APTOS_NETWORK", "testnet"),
			ContractAddress: getEnv("MEMBERSHIP_CONTRACT_ADDRESS", "0x1"),
		},
		Storage: StorageConfig{
			Endpoint:  getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("STORAGE_ACCESS_KEY", ""),
			SecretKey: getEnv("STORAGE_SECRET_KEY", ""),
			Bucket:    getEnv("STORAGE_BUCKET", "blobs"),
			UseSSL:    useSSL,
			PublicURL: getEnv("STORAGE_PUBLIC_URL", "http://localhost:9000"),
		},
		Shelby: ShelbyConfig{
			OctasPerChunkset: octasPerChunkset,
			ChunksetSizeMB:   chunksetSizeMB,
			SessionTTL:       time.Duration(sessionTTLHours) * time.Hour,
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

const (
	// LoginMessageMaxAge bounds how old a signed login message may be.
	LoginMessageMaxAge = 5 * time.Minute

	// AuthTokenTTL is the lifetime of an issued session token.
	AuthTokenTTL = 7 * 24 * time.Hour

	// SessionCleanupInterval is how often expired storage sessions are purged.
	SessionCleanupInterval = 1 * time.Hour
)
