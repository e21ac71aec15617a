package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Sink persists a single audit record.
type Sink interface {
	Store(ctx context.Context, rec Record) error
}

// ObjectSinkConfig holds connection parameters for an S3-compatible store.
type ObjectSinkConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// ObjectSink writes records as JSON objects into an S3-compatible bucket
// under date-partitioned keys.
type ObjectSink struct {
	client *minio.Client
	bucket string
}

// NewObjectSink builds an ObjectSink. It does not probe the bucket: the
// store being down at boot must not keep the service from starting.
func NewObjectSink(cfg ObjectSinkConfig) (*ObjectSink, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("audit bucket is required")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("audit store client: %w", err)
	}
	return &ObjectSink{client: client, bucket: cfg.Bucket}, nil
}

func (s *ObjectSink) Store(ctx context.Context, rec Record) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal audit record: %w", err)
	}
	_, err = s.client.PutObject(ctx, s.bucket, rec.ObjectKey(),
		bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("put audit object: %w", err)
	}
	return nil
}

// MemorySink stores records in-memory for tests.
type MemorySink struct {
	mu   sync.Mutex
	recs []Record
	err  error
}

func NewMemorySink() *MemorySink { return &MemorySink{} }

// Fail makes every subsequent Store return err.
func (s *MemorySink) Fail(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *MemorySink) Store(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.recs = append(s.recs, rec)
	return nil
}

func (s *MemorySink) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.recs))
	copy(out, s.recs)
	return out
}
