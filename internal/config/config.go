package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
	} `mapstructure:"app"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
		GroupID string   `mapstructure:"group_id"`
	} `mapstructure:"kafka"`
	Auth struct {
		JWTSecret     string        `mapstructure:"jwt_secret"`
		TokenLifespan time.Duration `mapstructure:"token_lifespan"`
	} `mapstructure:"auth"`
	Jaeger struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"jaeger"`
	Onboarding Onboarding `mapstructure:"onboarding"`
}

type Onboarding struct {
	StorageKey        string        `mapstructure:"storage_key"`
	DraftTTL          time.Duration `mapstructure:"draft_ttl"`
	BasePath          string        `mapstructure:"base_path"`
	SkipDestination   string        `mapstructure:"skip_destination"`
	FinishDestination string        `mapstructure:"finish_destination"`
	GmailDelay        time.Duration `mapstructure:"gmail_delay"`
	GmailSuccessRate  float64       `mapstructure:"gmail_success_rate"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("redis.db", 0)
	v.SetDefault("kafka.group_id", "onboarding-processor-group")
	v.SetDefault("auth.token_lifespan", 24*time.Hour)
	v.SetDefault("onboarding.storage_key", "beehype-onboarding-storage")
	v.SetDefault("onboarding.draft_ttl", 30*24*time.Hour)
	v.SetDefault("onboarding.base_path", "/onboarding")
	v.SetDefault("onboarding.skip_destination", "/dashboard")
	v.SetDefault("onboarding.finish_destination", "/dashboard")
	v.SetDefault("onboarding.gmail_delay", 1200*time.Millisecond)
	v.SetDefault("onboarding.gmail_success_rate", 0.8)
}

// LoadConfig reads .env and config.yaml from the given directories (the
// working directory when none is given), then applies environment overrides.
func LoadConfig(paths ...string) (cfg Config, err error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	envFiles := make([]string, len(paths))
	for i, p := range paths {
		envFiles[i] = strings.TrimSuffix(p, "/") + "/.env"
	}
	if err = godotenv.Load(envFiles...); err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	v := viper.New()
	setDefaults(v)
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err = v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read .env only. Error: %v", err)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.port", "APP_PORT")
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("db.dsn", "DB_DSN")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.db", "REDIS_DB")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("kafka.group_id", "KAFKA_GROUP_ID")
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	v.BindEnv("auth.token_lifespan", "TOKEN_LIFESPAN")
	v.BindEnv("jaeger.otlp_endpoint", "OTLP_ENDPOINT")

	v.BindEnv("onboarding.storage_key", "ONBOARDING_STORAGE_KEY")
	v.BindEnv("onboarding.draft_ttl", "ONBOARDING_DRAFT_TTL")
	v.BindEnv("onboarding.skip_destination", "ONBOARDING_SKIP_DESTINATION")
	v.BindEnv("onboarding.gmail_delay", "ONBOARDING_GMAIL_DELAY")
	v.BindEnv("onboarding.gmail_success_rate", "ONBOARDING_GMAIL_SUCCESS_RATE")

	err = v.Unmarshal(&cfg)
	return
}
