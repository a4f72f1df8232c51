package config

import (
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	// DB
	PGDSN string `envconfig:"PG_DSN" required:"true"`
	// JWT
	JWTSecret       string `envconfig:"JWT_SECRET" required:"true"`
	JWTExpireMin    int    `envconfig:"JWT_EXPIRE_MIN" default:"60"`
	RefreshExpireHr int    `envconfig:"REFRESH_EXPIRE_HR" default:"720"`
	// Network
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	// MQ
	RabbitURL      string `envconfig:"RABBIT_URL" required:"true"`
	PortalExchange string `envconfig:"PORTAL_EXCHANGE" default:"portal.exchange"`
	// Redis
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"redis:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	// Avatar storage (S3-compatible; set AVATAR_ENDPOINT for MinIO in compose)
	AvatarBucket    string `envconfig:"AVATAR_BUCKET" default:"avatars"`
	AvatarRegion    string `envconfig:"AVATAR_REGION" default:"us-east-1"`
	AvatarEndpoint  string `envconfig:"AVATAR_ENDPOINT" default:""`
	AvatarPublicURL string `envconfig:"AVATAR_PUBLIC_URL" default:""`
	// Cooperative rules
	MinContribution float64 `envconfig:"MIN_CONTRIBUTION" default:"50"`
	TreasuryPhone   string  `envconfig:"TREASURY_PHONE" default:"0700464272"`
	VerifyTTLHr     int     `envconfig:"VERIFY_TTL_HR" default:"48"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
