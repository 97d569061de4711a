package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/services"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort        string         `mapstructure:"http_port"`
	DB              DBConfig       `mapstructure:"db"`
	JWT             JWTConfig      `mapstructure:"jwt"`
	SMTP            SMTPConfig     `mapstructure:"smtp"`
	RabbitMQ        RabbitMQConfig `mapstructure:"rabbitmq"`
	Pricing         PricingConfig  `mapstructure:"pricing"`
	GazetteerPath   string         `mapstructure:"gazetteer_path"`
	BacklogSchedule string         `mapstructure:"backlog_schedule"`
	BcryptCost      int            `mapstructure:"bcrypt_cost"`
}

type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SslMode  string `mapstructure:"sslmode"`
}

// DSN renders the connection string for gorm's postgres driver.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SslMode)
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Issuer     string        `mapstructure:"issuer"`
	AccessTTL  time.Duration `mapstructure:"access_ttl"`
	RefreshTTL time.Duration `mapstructure:"refresh_ttl"`
}

// SMTPConfig is optional. Without a host, emails are written to the log instead.
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// RabbitMQConfig is optional. Without a URL, events are not published to a broker.
type RabbitMQConfig struct {
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
}

// PricingConfig holds the tariff. Surcharges are keyed by package type name.
type PricingConfig struct {
	BaseRate   float64            `mapstructure:"base_rate"`
	PerKmRate  float64            `mapstructure:"per_km_rate"`
	PerKgRate  float64            `mapstructure:"per_kg_rate"`
	RoadFactor float64            `mapstructure:"road_factor"`
	Surcharges map[string]float64 `mapstructure:"surcharges"`
}

// Tariff converts the configured rates to the pricing engine's form.
func (c PricingConfig) Tariff() (services.PricingConfig, error) {
	surcharges := make(map[delivery.PackageType]float64, len(c.Surcharges))
	var errList []error
	for name, amount := range c.Surcharges {
		packageType, err := delivery.ParsePackageType(name)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		surcharges[packageType] = amount
	}
	if err := errors.Join(errList...); err != nil {
		return services.PricingConfig{}, err
	}

	tariff := services.PricingConfig{
		BaseRate:   c.BaseRate,
		PerKmRate:  c.PerKmRate,
		PerKgRate:  c.PerKgRate,
		Surcharges: surcharges,
	}
	return tariff, tariff.Validate()
}

func setDefaults(v *viper.Viper) {
	tariff := services.DefaultPricingConfig()
	surcharges := make(map[string]float64, len(tariff.Surcharges))
	for packageType, amount := range tariff.Surcharges {
		surcharges[strings.ToLower(packageType.String())] = amount
	}

	v.SetDefault("http_port", "8080")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "logistics")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "logistics")
	v.SetDefault("jwt.access_ttl", time.Hour)
	v.SetDefault("jwt.refresh_ttl", 24*time.Hour)
	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from", "no-reply@logistics.local")
	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("rabbitmq.exchange", "logistics.events")
	v.SetDefault("pricing.base_rate", tariff.BaseRate)
	v.SetDefault("pricing.per_km_rate", tariff.PerKmRate)
	v.SetDefault("pricing.per_kg_rate", tariff.PerKgRate)
	v.SetDefault("pricing.road_factor", 1.0)
	v.SetDefault("pricing.surcharges", surcharges)
	v.SetDefault("gazetteer_path", "")
	v.SetDefault("backlog_schedule", "")
	v.SetDefault("bcrypt_cost", 0)
}

// LoadConfig reads configuration in order: defaults, .env (if present), environment,
// the YAML file named by --config, and finally the --port flag. Environment variables
// use the upper-cased key with dots replaced by underscores, e.g. DB_HOST or JWT_SECRET.
func LoadConfig(args []string, logger *slog.Logger) (Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		logger.Warn(".env not loaded", "error", err)
	}

	flags := pflag.NewFlagSet("logistics", pflag.ContinueOnError)
	configFile := flags.StringP("config", "c", "", "path to a YAML config file")
	flags.StringP("port", "p", "", "HTTP port to listen on")
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if *configFile != "" {
		v.SetConfigFile(*configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", *configFile, err)
		}
	}
	if err := v.BindPFlag("http_port", flags.Lookup("port")); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate reports every missing or inconsistent setting at once.
func (c Config) Validate() error {
	var errList []error
	if c.HTTPPort == "" {
		errList = append(errList, errors.New("http_port is required"))
	}
	if c.JWT.Secret == "" {
		errList = append(errList, errors.New("jwt.secret is required"))
	}
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 {
		errList = append(errList, errors.New("jwt token lifetimes must be positive"))
	}
	if c.Pricing.RoadFactor < 1 {
		errList = append(errList, fmt.Errorf("pricing.road_factor must be at least 1, got %v", c.Pricing.RoadFactor))
	}
	if _, err := c.Pricing.Tariff(); err != nil {
		errList = append(errList, fmt.Errorf("pricing: %w", err))
	}
	return errors.Join(errList...)
}
