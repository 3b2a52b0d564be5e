package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/alfredjeanlab/hallbook/internal/model"
)

// S3Mirror writes reservation records to an S3-compatible bucket.
//
// Layout under the configured prefix:
//
//	reservations/<id>.json            full record, keyed by ID
//	requesters/<email>/<id>.json      per-requester index entry
//	snapshot.jsonl                    periodic full export
type S3Mirror struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Mirror creates an S3 mirror. If endpoint is non-empty, path-style
// addressing is enabled (for MinIO and similar).
func NewS3Mirror(ctx context.Context, bucket, prefix, region, endpoint string) (*S3Mirror, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var s3opts []func(*s3.Options)
	if endpoint != "" {
		s3opts = append(s3opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(cfg, s3opts...)
	return &S3Mirror{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}, nil
}

// PutReservation writes the record object and its requester index entry.
// Both writes carry the full record so either key alone is sufficient to
// reconstruct it.
func (m *S3Mirror) PutReservation(ctx context.Context, r *model.Reservation) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal reservation %s: %w", r.ID, err)
	}

	if err := m.put(ctx, m.reservationKey(r.ID), data, "application/json"); err != nil {
		return err
	}
	return m.put(ctx, m.requesterKey(r.Requester.Email, r.ID), data, "application/json")
}

// PutSnapshot replaces the full JSONL export object.
func (m *S3Mirror) PutSnapshot(ctx context.Context, data []byte) error {
	return m.put(ctx, m.key("snapshot.jsonl"), data, "application/x-ndjson")
}

func (m *S3Mirror) put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	if err != nil {
		return fmt.Errorf("s3 put %s: %w", key, err)
	}
	return nil
}

func (m *S3Mirror) key(parts ...string) string {
	if m.prefix == "" {
		return path.Join(parts...)
	}
	return path.Join(append([]string{m.prefix}, parts...)...)
}

func (m *S3Mirror) reservationKey(id string) string {
	return m.key("reservations", id+".json")
}

func (m *S3Mirror) requesterKey(email, id string) string {
	return m.key("requesters", emailKey(email), id+".json")
}

// emailKey makes an email address safe for use as an S3 key segment.
func emailKey(email string) string {
	return url.PathEscape(strings.ToLower(email))
}
