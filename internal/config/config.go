package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-insights/internal/analytics"
)

const envPrefix = "BUDGET_"

type Config struct {
	HTTP      HTTPConfig       `koanf:"http"`
	Postgres  PostgresConfig   `koanf:"postgres"`
	Operator  OperatorConfig   `koanf:"operator"`
	AMQP      AMQPConfig       `koanf:"amqp"`
	Log       LogConfig        `koanf:"log"`
	Analytics analytics.Policy `koanf:"analytics"`
}

type HTTPConfig struct {
	Port string `koanf:"port"`
}

type PostgresConfig struct {
	Address  string `koanf:"address"`
	Port     string `koanf:"port"`
	DB       string `koanf:"db"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
}

type OperatorConfig struct {
	Workers int `koanf:"workers"`
}

// AMQPConfig is optional; an empty URL disables insight publication.
type AMQPConfig struct {
	URL        string `koanf:"url"`
	Exchange   string `koanf:"exchange"`
	RoutingKey string `koanf:"routing_key"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

func defaults() map[string]interface{} {
	// In all cases the default behavior should be for the docker compose setup
	d := map[string]interface{}{
		"http.port": "9446",

		"postgres.address":  "localhost",
		"postgres.port":     "5433",
		"postgres.db":       "postgres",
		"postgres.username": "postgres",
		"postgres.password": "testpassword",

		"operator.workers": 4,

		"amqp.url":         "",
		"amqp.exchange":    "budget",
		"amqp.routing_key": "insights.generated",

		"log.level": "info",
	}

	p := analytics.DefaultPolicy()
	d["analytics.window_days"] = p.WindowDays
	d["analytics.velocity_alert_percent"] = p.VelocityAlertPercent
	d["analytics.velocity_high_percent"] = p.VelocityHighPercent
	d["analytics.category_spike_ratio"] = p.CategorySpikeRatio
	d["analytics.category_spike_min_amount"] = p.CategorySpikeMinAmount
	d["analytics.subscription_min_interval_days"] = p.SubscriptionMinIntervalDays
	d["analytics.subscription_max_interval_days"] = p.SubscriptionMaxIntervalDays
	d["analytics.subscription_min_occurrences"] = p.SubscriptionMinOccurrences
	d["analytics.subscription_amount_tolerance"] = p.SubscriptionAmountTolerance
	d["analytics.subscription_amount_tolerance_floor"] = p.SubscriptionAmountToleranceFloor
	d["analytics.unused_subscription_days"] = p.UnusedSubscriptionDays
	d["analytics.budget_warn_ratio"] = p.BudgetWarnRatio
	d["analytics.budget_over_ratio"] = p.BudgetOverRatio
	d["analytics.emergency_target_months"] = p.EmergencyTargetMonths
	d["analytics.emergency_high_months"] = p.EmergencyHighMonths
	d["analytics.minimum_monthly_expenses"] = p.MinimumMonthlyExpenses
	d["analytics.low_savings_rate"] = p.LowSavingsRate

	return d
}

// envKey maps BUDGET_POSTGRES_ADDRESS to postgres.address and
// BUDGET_ANALYTICS_BUDGET_WARN_RATIO to analytics.budget_warn_ratio.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// Load layers the defaults, an optional YAML file and BUDGET_* environment
// variables, in that order.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ProcessEnvironmentVariables loads the configuration named by CONFIG_FILE,
// if any, and validates it.
func ProcessEnvironmentVariables() (*Config, error) {
	cfg, err := Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.HTTP.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid http port '%s': must be a number", c.HTTP.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid http port %d: must be between 1 and 65535", port))
	}

	if c.Postgres.Address == "" || c.Postgres.DB == "" || c.Postgres.Username == "" {
		problems = append(problems, "postgres address, db and username are required")
	}

	if c.Operator.Workers < 1 {
		problems = append(problems, fmt.Sprintf("invalid operator workers %d: must be at least 1", c.Operator.Workers))
	}

	if c.AMQP.URL != "" {
		if parsed, err := url.Parse(c.AMQP.URL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL: %v", err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQP.Exchange == "" {
			problems = append(problems, "AMQP exchange cannot be empty when an AMQP URL is set")
		}
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log level '%s'", c.Log.Level))
	}

	if err := c.Analytics.Validate(); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// PostgresURL is the lib/pq connection string for the configured database.
func (c *Config) PostgresURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Postgres.Username, c.Postgres.Password),
		Host:     c.Postgres.Address + ":" + c.Postgres.Port,
		Path:     "/" + c.Postgres.DB,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}
