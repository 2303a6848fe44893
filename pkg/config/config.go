package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type AppConfig struct {
	JWTSecret     string `env:"JWT_SECRET" validate:"required,min=3"`
	JWTExpiresRaw string `env:"JWT_EXPIRES" validate:"required"`
	JWTExpires    time.Duration
	DatabaseURL   string `env:"DATABASE_URL" validate:"required"`
	Port          int    `env:"PORT" validate:"min=1,max=65535"`
	BcryptCost    int    `env:"BCRYPT_COST" validate:"min=4,max=31"`

	Environment  string `env:"GIN_MODE" validate:"oneof=debug release test"`
	EnforceHTTPS bool   `env:"ENFORCE_HTTPS"`
	CORSOrigin   string `env:"CORS_ORIGIN"`

	// Forwarding headers are only read from these addresses. Empty trusts none.
	TrustedProxies []string `env:"TRUSTED_PROXIES" validate:"dive,ip|cidr"`

	ServiceName  string
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	MetricsPort  string `env:"METRICS_PORT" validate:"numeric"`
	LokiURL      string `env:"LOKI_URL" validate:"omitempty,url"`

	RateLimitEnabled bool   `env:"RATE_LIMIT_ENABLED"`
	RedisURL         string `env:"REDIS_URL" validate:"omitempty,url"`
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		Port:             5000,
		BcryptCost:       10,
		Environment:      "debug",
		CORSOrigin:       "*",
		ServiceName:      "todos-api",
		MetricsPort:      "9091",
		RateLimitEnabled: true,
	}
}

func (c *AppConfig) IsRelease() bool {
	return c.Environment == "release"
}

// Load reads an optional .env file and the process environment, then
// validates the result. Every problem is reported in one error.
func Load(files ...string) (*AppConfig, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
	}

	return FromEnv(os.LookupEnv)
}

func FromEnv(lookup func(string) (string, bool)) (*AppConfig, error) {
	cfg := GetDefaultConfig()
	var problems []string

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	integer := func(key string, dst *int) {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return
		}

		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			problems = append(problems, key+" must be an integer")
			return
		}
		*dst = n
	}

	list := func(key string, dst *[]string) {
		v, ok := lookup(key)
		if !ok {
			return
		}

		*dst = nil
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				*dst = append(*dst, item)
			}
		}
	}

	boolean := func(key string, dst *bool) {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return
		}

		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			problems = append(problems, key+" must be a boolean")
			return
		}
		*dst = b
	}

	str("JWT_SECRET", &cfg.JWTSecret)
	str("JWT_EXPIRES", &cfg.JWTExpiresRaw)
	str("DATABASE_URL", &cfg.DatabaseURL)
	integer("PORT", &cfg.Port)
	integer("BCRYPT_COST", &cfg.BcryptCost)
	str("GIN_MODE", &cfg.Environment)
	boolean("ENFORCE_HTTPS", &cfg.EnforceHTTPS)
	str("CORS_ORIGIN", &cfg.CORSOrigin)
	list("TRUSTED_PROXIES", &cfg.TrustedProxies)
	str("OTEL_EXPORTER_OTLP_ENDPOINT", &cfg.OTLPEndpoint)
	str("METRICS_PORT", &cfg.MetricsPort)
	str("LOKI_URL", &cfg.LokiURL)
	boolean("RATE_LIMIT_ENABLED", &cfg.RateLimitEnabled)
	str("REDIS_URL", &cfg.RedisURL)

	problems = append(problems, validateStruct(cfg)...)

	if cfg.JWTExpiresRaw != "" {
		expires, err := ParseExpires(cfg.JWTExpiresRaw)
		if err != nil {
			problems = append(problems, "JWT_EXPIRES "+err.Error())
		}
		cfg.JWTExpires = expires
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("Invalid configuration: %s.", strings.Join(problems, "; "))
	}

	return cfg, nil
}

var configValidator = newConfigValidator()

// Errors are reported under the environment variable name.
func newConfigValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if name := field.Tag.Get("env"); name != "" {
			return name
		}
		return field.Name
	})

	return v
}

func validateStruct(cfg *AppConfig) []string {
	err := configValidator.Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	problems := make([]string, 0, len(validationErrors))

	for _, fe := range validationErrors {
		field := fe.Field()

		switch fe.Tag() {
		case "required":
			problems = append(problems, field+" is required")
		case "min":
			if fe.Kind() == reflect.String {
				problems = append(problems, fmt.Sprintf("%s must be at least %s characters long", field, fe.Param()))
			} else {
				problems = append(problems, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
			}
		case "max":
			problems = append(problems, fmt.Sprintf("%s must be at most %s", field, fe.Param()))
		case "ip|cidr", "ip", "cidr":
			problems = append(problems, fmt.Sprintf("%s must be an IP address or CIDR range, got %q", field, fe.Value()))
		case "oneof":
			problems = append(problems, fmt.Sprintf("%s must be one of: %s", field, fe.Param()))
		default:
			problems = append(problems, fmt.Sprintf("%s is not a valid %s", field, fe.Tag()))
		}
	}

	return problems
}

var expiresPattern = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?|\.\d+)\s*(milliseconds?|msecs?|ms|seconds?|secs?|s|minutes?|mins?|m|hours?|hrs?|h|days?|d|weeks?|w|years?|yrs?|y)?$`)

var expiresUnits = map[string]time.Duration{
	"ms": time.Millisecond,
	"s":  time.Second,
	"m":  time.Minute,
	"h":  time.Hour,
	"d":  24 * time.Hour,
	"w":  7 * 24 * time.Hour,
	"y":  time.Duration(365.25 * float64(24*time.Hour)),
}

func unitKey(unit string) string {
	unit = strings.ToLower(unit)

	switch {
	case unit == "":
		return "ms"
	case strings.HasPrefix(unit, "ms"), strings.HasPrefix(unit, "mil"):
		return "ms"
	case strings.HasPrefix(unit, "mi"), unit == "m":
		return "m"
	case strings.HasPrefix(unit, "s"):
		return "s"
	case strings.HasPrefix(unit, "h"):
		return "h"
	case strings.HasPrefix(unit, "d"):
		return "d"
	case strings.HasPrefix(unit, "w"):
		return "w"
	default:
		return "y"
	}
}

// ParseExpires accepts Go durations ("1h30m") and the short forms common in
// JWT tooling ("7d", "2 hours", "60000" as milliseconds).
func ParseExpires(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)

	if d, err := time.ParseDuration(value); err == nil {
		if d <= 0 {
			return 0, errors.New("must be a positive duration")
		}
		return d, nil
	}

	match := expiresPattern.FindStringSubmatch(value)
	if match == nil {
		return 0, fmt.Errorf("must be a duration such as 1h or 7d, got %q", value)
	}

	amount, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, fmt.Errorf("must be a duration such as 1h or 7d, got %q", value)
	}

	total := amount * float64(expiresUnits[unitKey(match[2])])

	if total <= 0 || math.IsInf(total, 0) || total > math.MaxInt64 {
		return 0, errors.New("must be a positive finite duration")
	}

	return time.Duration(total), nil
}
