package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"restock/internal/core/domain/model/restockorder"
	"restock/internal/jobs"
	"restock/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/currency"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

type Config struct {
	HTTPPort string `mapstructure:"http_port"`

	DBDriver   string `mapstructure:"db_driver"`
	DBHost     string `mapstructure:"db_host"`
	DBPort     string `mapstructure:"db_port"`
	DBUser     string `mapstructure:"db_user"`
	DBPassword string `mapstructure:"db_password"`
	DBName     string `mapstructure:"db_name"`
	DBSslMode  string `mapstructure:"db_sslmode"`
	MongoURI   string `mapstructure:"mongo_uri"`
	MongoDB    string `mapstructure:"mongo_db"`

	TransitionPolicy   string        `mapstructure:"transition_policy"`
	StaleOrderTTL      time.Duration `mapstructure:"stale_order_ttl"`
	StaleOrderSchedule string        `mapstructure:"stale_order_schedule"`
	StaleOrderBatch    int           `mapstructure:"stale_order_batch"`
	Currency           string        `mapstructure:"currency"`
	BcryptCost         int           `mapstructure:"bcrypt_cost"`

	MetricsEnabled bool   `mapstructure:"metrics_enabled"`
	LogLevel       string `mapstructure:"log_level"`
}

var defaults = map[string]any{
	"http_port":            "8080",
	"db_driver":            DriverPostgres,
	"db_host":              "localhost",
	"db_port":              "5432",
	"db_user":              "postgres",
	"db_password":          "",
	"db_name":              "restock",
	"db_sslmode":           "disable",
	"mongo_uri":            "mongodb://localhost:27017",
	"mongo_db":             "restock",
	"transition_policy":    string(restockorder.StrictPolicy),
	"stale_order_ttl":      "72h",
	"stale_order_schedule": jobs.DefaultStaleOrderSchedule,
	"stale_order_batch":    restockorder.DefaultPageSize,
	"currency":             "MXN",
	"bcrypt_cost":          bcrypt.DefaultCost,
	"metrics_enabled":      true,
	"log_level":            "info",
}

// LoadConfig reads an optional .env file, an optional config.yaml under path and the
// environment, in increasing order of precedence.
func LoadConfig(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errList []error
	if c.DBDriver != DriverPostgres && c.DBDriver != DriverMongo {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("DB_DRIVER",
			fmt.Errorf("%q is neither %q nor %q", c.DBDriver, DriverPostgres, DriverMongo)))
	}
	if _, err := c.Policy(); err != nil {
		errList = append(errList, err)
	}
	if _, err := c.CurrencyUnit(); err != nil {
		errList = append(errList, err)
	}
	if c.StaleOrderTTL <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("STALE_ORDER_TTL",
			fmt.Errorf("%s is not positive", c.StaleOrderTTL)))
	}
	if c.StaleOrderBatch < 1 || c.StaleOrderBatch > restockorder.MaxPageSize {
		errList = append(errList, errs.NewValueIsOutOfRangeError("STALE_ORDER_BATCH",
			c.StaleOrderBatch, 1, restockorder.MaxPageSize))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errList = append(errList, errs.NewValueIsOutOfRangeError("BCRYPT_COST",
			c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost))
	}
	return errors.Join(errList...)
}

func (c Config) Policy() (restockorder.TransitionPolicy, error) {
	return restockorder.ParseTransitionPolicy(c.TransitionPolicy)
}

func (c Config) CurrencyUnit() (currency.Unit, error) {
	unit, err := currency.ParseISO(c.Currency)
	if err != nil {
		return currency.Unit{}, errs.NewValueIsInvalidErrorWithCause("CURRENCY", err)
	}
	return unit, nil
}

// PostgresDSN builds the connection string for gorm's postgres driver.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// SlogLevel maps LOG_LEVEL to a slog level. Unknown values fall back to info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return level
}
