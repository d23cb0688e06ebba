package config

import "fmt"

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	Timezone       string   `mapstructure:"timezone"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type PasswordConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	Issuer      string `mapstructure:"issuer"`
	Audience    string `mapstructure:"audience"`
	ExpiryHours int    `mapstructure:"expiry_hours"`
}

type AuthConfig struct {
	Password   PasswordConfig `mapstructure:"password"`
	JWT        JWTConfig      `mapstructure:"jwt"`
	EncryptKey string         `mapstructure:"encrypt_key"`
}

// SpotifyConfig holds the delegated OAuth credentials for the Spotify Web API.
type SpotifyConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
	Market       string `mapstructure:"market"`
}

func (s *SpotifyConfig) Configured() bool {
	return s.ClientID != "" && s.ClientSecret != ""
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// RateLimitConfig holds the per-tier request budgets. All windows are one
// minute; zero disables the tier.
type RateLimitConfig struct {
	GlobalPerMinute    int `mapstructure:"global_per_minute"`
	SearchPerMinute    int `mapstructure:"search_per_minute"`
	MutationsPerMinute int `mapstructure:"mutations_per_minute"`
}

// CleanupConfig holds the per-job sweep intervals in hours.
// Zero falls back to the default interval.
type CleanupConfig struct {
	ProposalIntervalHours     float64 `mapstructure:"proposal_interval_hours"`
	RoomIntervalHours         float64 `mapstructure:"room_interval_hours"`
	RoomCodeIntervalHours     float64 `mapstructure:"room_code_interval_hours"`
	SpotifyStateIntervalHours float64 `mapstructure:"spotify_state_interval_hours"`
	TokenIntervalHours        float64 `mapstructure:"token_interval_hours"`
}
