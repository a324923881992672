package integrations

import (
	"regexp"
	"testing"
	"time"

	"picsync/backend/internal/config"
)

func TestObjectKey(t *testing.T) {
	now := time.Date(2025, 10, 3, 23, 30, 0, 0, time.FixedZone("X", -5*3600))
	key := objectKey(now, "image/PNG")
	re := regexp.MustCompile(`^uploads/2025/10/04/[0-9a-f-]{36}\.png$`)
	if !re.MatchString(key) {
		t.Fatalf("unexpected key: %s", key)
	}
	if key := objectKey(now, "application/pdf"); !regexp.MustCompile(`\.bin$`).MatchString(key) {
		t.Fatalf("unknown types should use .bin, got %s", key)
	}
}

func TestPublicURLForKey(t *testing.T) {
	archive, err := NewImageArchive(config.S3Config{
		Bucket:         "shots",
		Endpoint:       "minio:9000",
		PublicEndpoint: "https://cdn.example.com/media",
		UseSSL:         false,
	})
	if err != nil {
		t.Fatalf("new archive: %v", err)
	}
	got := archive.publicURLForKey("uploads/a.png")
	if got != "https://cdn.example.com/media/shots/uploads/a.png" {
		t.Fatalf("unexpected url: %s", got)
	}

	archive, err = NewImageArchive(config.S3Config{Bucket: "shots"})
	if err != nil {
		t.Fatalf("new archive: %v", err)
	}
	if got := archive.publicURLForKey("k.png"); got != "https://shots.s3.amazonaws.com/k.png" {
		t.Fatalf("unexpected default url: %s", got)
	}
}

func TestNormalizeEndpoint(t *testing.T) {
	if got := normalizeEndpoint("minio:9000", false); got != "http://minio:9000" {
		t.Fatalf("unexpected endpoint: %s", got)
	}
	if got := normalizeEndpoint("s3.example.com", true); got != "https://s3.example.com" {
		t.Fatalf("unexpected endpoint: %s", got)
	}
	if got := normalizeEndpoint("http://already", true); got != "http://already" {
		t.Fatalf("unexpected endpoint: %s", got)
	}
}

func TestNewImageArchiveRequiresBucket(t *testing.T) {
	if _, err := NewImageArchive(config.S3Config{}); err == nil {
		t.Fatalf("expected error without bucket")
	}
}
