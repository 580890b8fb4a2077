package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

// EnvPrefix prefixes environment overrides, e.g. ROUTE_PROVIDER_APIKEY.
const EnvPrefix = "ROUTE"

type Config struct {
	Mode     string `mapstructure:"mode"`
	Dotenv   string `mapstructure:"dotenv"`
	Handlers struct {
		Prometheus struct {
			Port      string `mapstructure:"port"`
			CertFile  string `mapstructure:"certFile"`
			KeyFile   string `mapstructure:"keyFile"`
			EnableTLS bool   `mapstructure:"enableTLS"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Repositories struct {
		Postgres struct {
			Enabled           bool   `mapstructure:"enabled"`
			Host              string `mapstructure:"host"`
			Password          string `mapstructure:"password"`
			Port              string `mapstructure:"port"`
			Username          string `mapstructure:"username"`
			DB                string `mapstructure:"db"`
			SSLMODE           string `mapstructure:"SSLMODE"`
			MAXCONWAITINGTIME int    `mapstructure:"MAXCONWAITINGTIME"`
		} `mapstructure:"postgres"`
		// BundledSeed serves the embedded seed catalog when Postgres is off.
		BundledSeed bool `mapstructure:"bundledSeed"`
	} `mapstructure:"repositories"`
	Server struct {
		HTTPPort       string        `mapstructure:"HTTPPort"`
		Timeout        time.Duration `mapstructure:"HTTPTimeout"`
		AllowedOrigins []string      `mapstructure:"allowedOrigins"`
		// PlanRateLimit is requests per second per client on the planning
		// routes. Zero disables throttling.
		PlanRateLimit float64 `mapstructure:"planRateLimit"`
		PlanBurst     int     `mapstructure:"planBurst"`
	} `mapstructure:"server"`
	Provider Provider `mapstructure:"provider"`
	Cache    Cache    `mapstructure:"cache"`
	LLM      LLM      `mapstructure:"llm"`
	Planner  Planner  `mapstructure:"planner"`
}

// Provider configures the 2GIS catalog client. An empty APIKey disables it.
type Provider struct {
	BaseURL      string        `mapstructure:"baseURL"`
	APIKey       string        `mapstructure:"apiKey"`
	Locale       string        `mapstructure:"locale"`
	PageSize     int           `mapstructure:"pageSize"`
	MaxPages     int           `mapstructure:"maxPages"`
	DefaultQuery string        `mapstructure:"defaultQuery"`
	RadiusM      int           `mapstructure:"radiusM"`
	RateLimit    float64       `mapstructure:"rateLimit"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Retries      int           `mapstructure:"retries"`
	Backoff      time.Duration `mapstructure:"backoff"`
}

type Cache struct {
	TTL time.Duration `mapstructure:"ttl"`
	// Dir holds the on-disk layer; empty keeps the cache in memory only.
	Dir string `mapstructure:"dir"`
}

type LLM struct {
	APIKey  string        `mapstructure:"apiKey"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Planner struct {
	MaxStops    int           `mapstructure:"maxStops"`
	DayStart    string        `mapstructure:"dayStart"`
	DayEnd      string        `mapstructure:"dayEnd"`
	TimeBudget  time.Duration `mapstructure:"timeBudget"`
	DefaultCity string        `mapstructure:"defaultCity"`
	MealStop    bool          `mapstructure:"mealStop"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")
	v.AddConfigPath("/usr/local/bin")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	// secrets usually arrive through .env without the prefix
	_ = v.BindEnv("provider.apiKey", EnvPrefix+"_PROVIDER_APIKEY", "DGIS_API_KEY")
	_ = v.BindEnv("llm.apiKey", EnvPrefix+"_LLM_APIKEY", "GOOGLE_GEMINI_API_KEY")

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	fmt.Println("Successfully loaded app configs...")
	return config, nil
}
