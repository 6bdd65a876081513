package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DatabaseURL string

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	HTTPAddress   string
	HTTPSCertFile string
	HTTPSKeyFile  string

	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	JWTIssuer          string
	JWTAudience        string

	PasswordPepper string

	AllowedOrigins   []string
	AllowCredentials bool
	CookieDomain     string

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	// S3PublicBaseURL prefixes object keys in returned media URLs
	// (CDN host in production, the raw endpoint in dev).
	S3PublicBaseURL string

	ChannelCacheTTL time.Duration
}

var requiredKeys = []string{
	"DATABASE_URL",
	"REDIS_ADDRESS",
	"ACCESS_TOKEN_SECRET",
	"REFRESH_TOKEN_SECRET",
	"ACCESS_TOKEN_TTL",
	"REFRESH_TOKEN_TTL",
	"JWT_ISSUER",
	"JWT_AUDIENCE",
	"PASSWORD_PEPPER",
	"S3_REGION",
	"S3_BUCKET",
	"S3_ACCESS_KEY",
	"S3_SECRET_KEY",
	"S3_PUBLIC_BASE_URL",
}

var optionalKeys = []string{
	"REDIS_PASSWORD", "REDIS_DB", "HTTP_ADDRESS",
	"HTTPS_CERT_FILE", "HTTPS_KEY_FILE",
	"ALLOWED_ORIGINS", "ALLOW_CREDENTIALS", "COOKIE_DOMAIN",
	"S3_ENDPOINT", "CHANNEL_CACHE_TTL",
}

// Load reads config.json if present and environment variables always;
// env wins. Missing required keys fail startup, not first use.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("json")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	for _, key := range append(append([]string{}, requiredKeys...), optionalKeys...) {
		if err := viper.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var missing []string
	for _, key := range requiredKeys {
		if viper.GetString(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}

	cfg := &Config{
		DatabaseURL:        viper.GetString("DATABASE_URL"),
		RedisAddress:       viper.GetString("REDIS_ADDRESS"),
		RedisPassword:      viper.GetString("REDIS_PASSWORD"),
		RedisDB:            viper.GetInt("REDIS_DB"),
		HTTPAddress:        viper.GetString("HTTP_ADDRESS"),
		HTTPSCertFile:      viper.GetString("HTTPS_CERT_FILE"),
		HTTPSKeyFile:       viper.GetString("HTTPS_KEY_FILE"),
		AccessTokenSecret:  viper.GetString("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: viper.GetString("REFRESH_TOKEN_SECRET"),
		AccessTokenTTL:     viper.GetDuration("ACCESS_TOKEN_TTL"),
		RefreshTokenTTL:    viper.GetDuration("REFRESH_TOKEN_TTL"),
		JWTIssuer:          viper.GetString("JWT_ISSUER"),
		JWTAudience:        viper.GetString("JWT_AUDIENCE"),
		PasswordPepper:     viper.GetString("PASSWORD_PEPPER"),
		AllowedOrigins:     viper.GetStringSlice("ALLOWED_ORIGINS"),
		AllowCredentials:   viper.GetBool("ALLOW_CREDENTIALS"),
		CookieDomain:       viper.GetString("COOKIE_DOMAIN"),
		S3Endpoint:         viper.GetString("S3_ENDPOINT"),
		S3Region:           viper.GetString("S3_REGION"),
		S3Bucket:           viper.GetString("S3_BUCKET"),
		S3AccessKey:        viper.GetString("S3_ACCESS_KEY"),
		S3SecretKey:        viper.GetString("S3_SECRET_KEY"),
		S3PublicBaseURL:    strings.TrimRight(viper.GetString("S3_PUBLIC_BASE_URL"), "/"),
		ChannelCacheTTL:    viper.GetDuration("CHANNEL_CACHE_TTL"),
	}

	if cfg.HTTPAddress == "" {
		cfg.HTTPAddress = ":8080"
	}
	if cfg.ChannelCacheTTL == 0 {
		cfg.ChannelCacheTTL = 30 * time.Second
	}
	if cfg.AccessTokenTTL <= 0 || cfg.RefreshTokenTTL <= 0 {
		return nil, fmt.Errorf("token TTLs must be positive durations")
	}

	return cfg, nil
}
