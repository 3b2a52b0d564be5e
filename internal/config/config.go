package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alfredjeanlab/hallbook/internal/model"
)

type Config struct {
	DatabaseURL string // HALLBOOK_DATABASE_URL (required)
	HTTPAddr    string // HALLBOOK_HTTP_ADDR (default ":8080")
	NATSURL     string // HALLBOOK_NATS_URL (optional, empty = no events)
	AuthToken   string // HALLBOOK_AUTH_TOKEN (optional, empty = auth disabled)

	// Classifier settings
	ClassifierURL string // HALLBOOK_CLASSIFIER_URL (optional, empty = static gate)

	// Notification settings
	NotifyWebhookURL string // HALLBOOK_NOTIFY_WEBHOOK_URL (optional, requires NATS)

	// Mirror settings
	MirrorInterval   time.Duration // HALLBOOK_MIRROR_INTERVAL (default 5m; 0 = no snapshots)
	MirrorS3Bucket   string        // HALLBOOK_MIRROR_S3_BUCKET (enables the mirror when set)
	MirrorS3Endpoint string        // HALLBOOK_MIRROR_S3_ENDPOINT (custom endpoint for MinIO)
	MirrorS3Region   string        // HALLBOOK_MIRROR_S3_REGION (default "us-east-1")
	MirrorS3Prefix   string        // HALLBOOK_MIRROR_S3_PREFIX (default "hallbook")

	// Venue settings
	Halls      []string // HALLBOOK_HALLS (comma-separated, optional)
	OpenTime   int      // HALLBOOK_OPEN_TIME (HH:MM, default 09:00), minutes from midnight
	CloseTime  int      // HALLBOOK_CLOSE_TIME (HH:MM, default 17:00), minutes from midnight
	BufferMins int      // HALLBOOK_BUFFER_MINUTES (default 60)
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:      os.Getenv("HALLBOOK_DATABASE_URL"),
		HTTPAddr:         envOrDefault("HALLBOOK_HTTP_ADDR", ":8080"),
		NATSURL:          os.Getenv("HALLBOOK_NATS_URL"),
		AuthToken:        os.Getenv("HALLBOOK_AUTH_TOKEN"),
		ClassifierURL:    os.Getenv("HALLBOOK_CLASSIFIER_URL"),
		NotifyWebhookURL: os.Getenv("HALLBOOK_NOTIFY_WEBHOOK_URL"),
		MirrorS3Bucket:   os.Getenv("HALLBOOK_MIRROR_S3_BUCKET"),
		MirrorS3Endpoint: os.Getenv("HALLBOOK_MIRROR_S3_ENDPOINT"),
		MirrorS3Region:   envOrDefault("HALLBOOK_MIRROR_S3_REGION", "us-east-1"),
		MirrorS3Prefix:   envOrDefault("HALLBOOK_MIRROR_S3_PREFIX", "hallbook"),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("HALLBOOK_DATABASE_URL is required")
	}

	intervalStr := envOrDefault("HALLBOOK_MIRROR_INTERVAL", "5m")
	d, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("HALLBOOK_MIRROR_INTERVAL: %w", err)
	}
	c.MirrorInterval = d

	if v := os.Getenv("HALLBOOK_HALLS"); v != "" {
		for _, h := range strings.Split(v, ",") {
			if h = strings.TrimSpace(h); h != "" {
				c.Halls = append(c.Halls, h)
			}
		}
	}

	if c.OpenTime, err = parseClock("HALLBOOK_OPEN_TIME", "09:00"); err != nil {
		return nil, err
	}
	if c.CloseTime, err = parseClock("HALLBOOK_CLOSE_TIME", "17:00"); err != nil {
		return nil, err
	}
	if c.CloseTime <= c.OpenTime {
		return nil, fmt.Errorf("HALLBOOK_CLOSE_TIME must be after HALLBOOK_OPEN_TIME")
	}

	bufferStr := envOrDefault("HALLBOOK_BUFFER_MINUTES", "60")
	if _, err := fmt.Sscanf(bufferStr, "%d", &c.BufferMins); err != nil || c.BufferMins < 0 {
		return nil, fmt.Errorf("HALLBOOK_BUFFER_MINUTES must be a non-negative integer")
	}

	return c, nil
}

func parseClock(key, fallback string) (int, error) {
	v := envOrDefault(key, fallback)
	m, err := model.ParseMinute(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return m, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
