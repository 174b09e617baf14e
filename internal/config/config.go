package config

import (
	"log"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `env:"ENV" env-default:"dev"`
	ServerPort string `env:"SERVER_PORT" env-default:"8080"`

	DBHost     string `env:"DB_HOST" env-default:"localhost"`
	DBPort     string `env:"DB_PORT" env-default:"5432"`
	DBUser     string `env:"DB_USER" env-default:"enroll"`
	DBPassword string `env:"DB_PASSWORD" env-default:"enroll_dev_password"`
	DBName     string `env:"DB_NAME" env-default:"enroll"`

	// JWTSecret signs every issued token. There is no usable fallback,
	// so startup fails when it is missing.
	JWTSecret string `env:"JWT_SECRET" env-required:"true"`

	UploadDriver string `env:"UPLOAD_DRIVER" env-default:"disk"`
	UploadDir    string `env:"UPLOAD_DIR" env-default:"uploads"`

	S3Bucket    string `env:"S3_BUCKET" env-default:"enroll"`
	S3Region    string `env:"S3_REGION" env-default:"us-east-1"`
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
}

// MustLoad reads configuration from the environment and exits the
// process on failure. If it returns, the config is valid.
func MustLoad() *Config {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
