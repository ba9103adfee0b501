// Package config loads server configuration from environment variables and
// an optional config file, following the same viper-based precedence rules
// the original project used for its Postgres/Redis/JWT settings.
package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full set of knobs a quiz server instance is started with.
type Config struct {
	Server  ServerConfig
	Quiz    QuizConfig
	Teacher TeacherConfig
	JWT     JWTConfig
}

// ServerConfig controls the HTTP/WebSocket listener.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// QuizConfig names the question file this instance serves and how the
// lobby should treat it.
type QuizConfig struct {
	FilePath    string `mapstructure:"file_path"`
	LockAtStart bool   `mapstructure:"lock_at_start"`
	ShowQRCode  bool   `mapstructure:"show_qr_code"`
}

// TeacherConfig holds the passphrase gate for the control connection. Passphrase
// is a bcrypt hash when PassphraseIsHashed is true, otherwise a plaintext
// passphrase hashed once at startup.
type TeacherConfig struct {
	Passphrase         string `mapstructure:"passphrase"`
	PassphraseIsHashed bool   `mapstructure:"passphrase_is_hashed"`
}

// JWTConfig configures the token that gates the teacher control connection
// once the passphrase has been accepted.
type JWTConfig struct {
	Secret           string        `mapstructure:"secret"`
	ExpirationTime   time.Duration `mapstructure:"expiration_time"`
	SigningAlgorithm string        `mapstructure:"signing_algorithm"`
	Issuer           string        `mapstructure:"issuer"`
}

// LoadConfig loads configuration from, in order of precedence:
//  1. Environment variables (with or without the QUIZ_ prefix)
//  2. A config file named by QUIZ_CONFIG_FILE
//  3. The defaults set below
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("quiz.lock_at_start", true)
	v.SetDefault("quiz.show_qr_code", false)
	v.SetDefault("jwt.expiration_time", 4*time.Hour)
	v.SetDefault("jwt.signing_algorithm", "HS256")
	v.SetDefault("jwt.issuer", "quiz-server")

	v.SetEnvPrefix("QUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvVariables(v)

	if configFile := getConfigFile(); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			log.Printf("warning: unable to read config file: %v", err)
		} else {
			log.Printf("using config file: %s", v.ConfigFileUsed())
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return config, nil
}

func bindEnvVariables(v *viper.Viper) {
	v.BindEnv("server.host", "SERVER_HOST")
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("server.read_timeout", "SERVER_READ_TIMEOUT")
	v.BindEnv("server.write_timeout", "SERVER_WRITE_TIMEOUT")
	v.BindEnv("server.idle_timeout", "SERVER_IDLE_TIMEOUT")

	v.BindEnv("quiz.file_path", "QUIZ_FILE_PATH")
	v.BindEnv("quiz.lock_at_start", "QUIZ_LOCK_AT_START")
	v.BindEnv("quiz.show_qr_code", "QUIZ_SHOW_QR_CODE")

	v.BindEnv("teacher.passphrase", "TEACHER_PASSPHRASE")
	v.BindEnv("teacher.passphrase_is_hashed", "TEACHER_PASSPHRASE_IS_HASHED")

	v.BindEnv("jwt.secret", "JWT_SECRET")
	v.BindEnv("jwt.expiration_time", "JWT_EXPIRATION_TIME")
	v.BindEnv("jwt.signing_algorithm", "JWT_SIGNING_ALGORITHM")
	v.BindEnv("jwt.issuer", "JWT_ISSUER")
}

func getConfigFile() string {
	return os.Getenv("QUIZ_CONFIG_FILE")
}

// Addr returns the host:port the acceptor should bind.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
