package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Search   SearchConfig
	Refresh  RefreshConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	InstanceID         string
	LogFilePath        string
	RealtimeLogPath    string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JwtSecret string
}

// SearchConfig is the lookup policy. The source screens used anything from
// 300ms to 1000ms; the default is the short end and fields can override it.
type SearchConfig struct {
	MinLength      int
	Debounce       time.Duration
	SkipIdentical  bool
	FieldDebounce  map[string]time.Duration // e.g. "officer" -> 1s
	FieldKinds     map[string]string        // field key -> lookup kind
	ResultLimit    int
	CacheTTL       time.Duration
	RequestTimeout time.Duration
}

type RefreshConfig struct {
	Transport     string // "none" | "nats" | "redis"
	Stream        string
	Subject       string
	RedisChannel  string
	MutationTopic string
}

const (
	TransportNone  = "none"
	TransportNats  = "nats"
	TransportRedis = "redis"
)

var defaultFieldKinds = "citizen:citizen,accomplice:citizen,suspect:citizen,victim:citizen,officer:officer,operator:officer"

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			InstanceID:         getEnv("INSTANCE_ID", uuid.NewString()),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			RealtimeLogPath:    getEnv("REALTIME_LOG_FILE_PATH", "logs/realtime.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JwtSecret: getEnv("JWT_SECRET", ""),
		},
		Search: SearchConfig{
			MinLength:      getEnvAsInt("SEARCH_MIN_LENGTH", 3),
			Debounce:       getEnvAsMillis("SEARCH_DEBOUNCE_MS", 300),
			SkipIdentical:  getEnvAsBool("SEARCH_SKIP_IDENTICAL", true),
			FieldDebounce:  parseDurations(getEnv("SEARCH_FIELD_DEBOUNCE_MS", "")),
			FieldKinds:     parsePairs(getEnv("SEARCH_FIELD_KINDS", defaultFieldKinds)),
			ResultLimit:    getEnvAsInt("SEARCH_RESULT_LIMIT", 10),
			CacheTTL:       getEnvAsMillis("SEARCH_CACHE_TTL_MS", 30000),
			RequestTimeout: getEnvAsMillis("SEARCH_REQUEST_TIMEOUT_MS", 0),
		},
		Refresh: RefreshConfig{
			Transport:     strings.ToLower(getEnv("REFRESH_TRANSPORT", TransportNone)),
			Stream:        getEnv("REFRESH_NATS_STREAM", "REFRESH"),
			Subject:       getEnv("REFRESH_NATS_SUBJECT", "refresh"),
			RedisChannel:  getEnv("REFRESH_REDIS_CHANNEL", "refresh_events"),
			MutationTopic: getEnv("REFRESH_MUTATION_TOPIC", "RECORD_MUTATIONS"),
		},
	}
}

// DebounceFor returns the debounce interval of a search field.
func (s SearchConfig) DebounceFor(field string) time.Duration {
	if d, ok := s.FieldDebounce[field]; ok {
		return d
	}
	return s.Debounce
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsMillis(key string, fallback int) time.Duration {
	return time.Duration(getEnvAsInt(key, fallback)) * time.Millisecond
}

// parsePairs reads "a:b,c:d" into a map. Malformed entries are skipped.
func parsePairs(raw string) map[string]string {
	out := make(map[string]string)
	for _, part := range strings.Split(raw, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok || strings.TrimSpace(k) == "" || strings.TrimSpace(v) == "" {
			continue
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out
}

// parseDurations reads "officer:1000,citizen:300" (milliseconds).
func parseDurations(raw string) map[string]time.Duration {
	out := make(map[string]time.Duration)
	for k, v := range parsePairs(raw) {
		ms, err := strconv.Atoi(v)
		if err != nil || ms < 0 {
			continue
		}
		out[k] = time.Duration(ms) * time.Millisecond
	}
	return out
}
