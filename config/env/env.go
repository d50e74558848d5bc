package env

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"MetOptix/role"
	"MetOptix/util"

	"github.com/joho/godotenv"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Settings struct {
	Port    string
	GinMode string

	StoreBackend        string
	MongoURI            string
	MongoDatabase       string
	VisitCollection     string
	MongoConnectTimeout time.Duration
	MigrationsEnabled   bool

	RedisEnabled  bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	JWTSecret         string
	SessionTTL        time.Duration
	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string
	AdminRole         string

	LogFile      string
	LogMaxSizeMB int

	JobsEnabled      bool
	FollowUpSchedule string

	CORSOrigins []string
}

/*
* Load the .env file if present, a missing file is not an error
* Read every setting from the environment, falling back to defaults
* Reject values that would leave the service half configured
 */
func Load() (Settings, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Error in loading the ENV")
	}
	return FromEnv()
}

func FromEnv() (Settings, error) {
	s := Settings{
		Port:    getString("PORT", "8080"),
		GinMode: getString("GIN_MODE", "release"),

		StoreBackend:        strings.ToLower(getString("STORE_BACKEND", StoreMongo)),
		MongoURI:            getString("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:       getString("MONGO_DATABASE", "HospitalDB"),
		VisitCollection:     getString("VISIT_COLLECTION", util.VisitCollection),
		MongoConnectTimeout: getDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		MigrationsEnabled:   getBool("MIGRATIONS_ENABLED", true),

		RedisEnabled:  getBool("REDIS_ENABLED", false),
		RedisAddr:     getString("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getString("REDIS_PASSWORD", ""),
		RedisDB:       getInt("REDIS_DB", 0),
		CacheTTL:      getDuration("CACHE_TTL", 30*time.Second),

		JWTSecret:         getString("JWT_SECRET", "metoptix-dev-secret"),
		SessionTTL:        getDuration("SESSION_TTL", 12*time.Hour),
		AdminUsername:     getString("ADMIN_USERNAME", "admin"),
		AdminPassword:     getString("ADMIN_PASSWORD", "admin123"),
		AdminPasswordHash: getString("ADMIN_PASSWORD_HASH", ""),
		AdminRole:         strings.ToUpper(getString("ADMIN_ROLE", role.Admin)),

		LogFile:      getString("LOG_FILE", ""),
		LogMaxSizeMB: getInt("LOG_MAX_SIZE_MB", 50),

		JobsEnabled:      getBool("JOBS_ENABLED", true),
		FollowUpSchedule: getString("FOLLOW_UP_SCHEDULE", "5 0 * * *"),

		CORSOrigins: getList("CORS_ORIGINS", []string{"*"}),
	}
	if s.StoreBackend != StoreMongo && s.StoreBackend != StoreMemory {
		return s, fmt.Errorf("unknown STORE_BACKEND %q, expected %s or %s", s.StoreBackend, StoreMongo, StoreMemory)
	}
	if _, ok := role.Lookup(s.AdminRole); !ok {
		return s, fmt.Errorf("unknown ADMIN_ROLE %q, expected %s or %s", s.AdminRole, role.Admin, role.Operator)
	}
	return s, nil
}

func getString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func getInt(key string, def int) int {
	v := getString(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using %d", key, v, def)
		return def
	}
	return n
}

func getBool(key string, def bool) bool {
	v := getString(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using %t", key, v, def)
		return def
	}
	return b
}

func getDuration(key string, def time.Duration) time.Duration {
	v := getString(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using %s", key, v, def)
		return def
	}
	return d
}

func getList(key string, def []string) []string {
	v := getString(key, "")
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
