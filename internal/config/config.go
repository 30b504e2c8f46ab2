package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"time"
	_ "time/tzdata" // zone database for minimal containers
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.
type Config struct {
	Env          string // application environment ("local", "dev", "prod")
	Port         string // HTTP port to listen on
	DBUser       string // database username
	DBPass       string // database password (optional)
	DBHost       string // database host address
	DBPort       string // database port number
	DBName       string // database name
	JWTSecret    string // secret used to sign access tokens
	AccessTTLMin int    // access token time-to-live in minutes
	BcryptCost   int    // bcrypt cost for password hashing

	// Location is the zone reservation dates and slots are interpreted in
	// when deciding whether a slot has already started.
	Location *time.Location

	PopularThemeDays  int // length of the popularity window, ending yesterday
	PopularThemeLimit int // maximum number of popular themes returned

	AMQPURL           string // RabbitMQ url; empty disables event publishing
	ReservationLogDir string // directory the event consumer appends reservation.log to
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:          must("APP_ENV"),
		Port:         must("APP_PORT"),
		DBUser:       must("DB_USER"),
		DBPass:       os.Getenv("DB_PASS"), // empty allowed
		DBHost:       must("DB_HOST"),
		DBPort:       must("DB_PORT"),
		DBName:       must("DB_NAME"),
		JWTSecret:    must("JWT_SECRET"),
		AccessTTLMin: mustInt("ACCESS_TOKEN_TTL_MIN"),
		BcryptCost:   mustInt("BCRYPT_COST"),

		Location: mustLocation(envStr("APP_TIMEZONE", "Asia/Seoul")),

		PopularThemeDays:  positive(envInt("POPULAR_THEME_DAYS", 7), 7),
		PopularThemeLimit: positive(envInt("POPULAR_THEME_LIMIT", 10), 10),

		AMQPURL:           amqpURL(),
		ReservationLogDir: envStr("RESERVATION_LOG_DIR", "logs"),
	}
}

// AccessTTL is AccessTTLMin as a duration.
func (c Config) AccessTTL() time.Duration {
	return time.Duration(c.AccessTTLMin) * time.Minute
}

// amqpURL honours RABBITMQ_URL first and AMQP_URL as a fallback.
func amqpURL() string {
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		return v
	}
	return os.Getenv("AMQP_URL")
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Fatalf("invalid APP_TIMEZONE %q: %v", name, err)
	}
	return loc
}

func positive(n, def int) int {
	if n < 1 {
		return def
	}
	return n
}
