package config

import "os"

// R2Config holds the coordinates of the S3-compatible bucket storage that
// keeps report photos and avatars.
type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	ReportsBucket   string
	AvatarsBucket   string
	PublicURL       string
	Region          string
}

func GetR2Config() *R2Config {
	return &R2Config{
		AccountID:       os.Getenv("CLOUDFLARE_ACCOUNT_ID"),
		AccessKeyID:     os.Getenv("CLOUDFLARE_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("CLOUDFLARE_SECRET_ACCESS_KEY"),
		ReportsBucket:   envOr("CLOUDFLARE_REPORTS_BUCKET", "reports"),
		AvatarsBucket:   envOr("CLOUDFLARE_AVATARS_BUCKET", "avatars"),
		PublicURL:       os.Getenv("CLOUDFLARE_PUBLIC_URL"),
		Region:          "auto",
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
