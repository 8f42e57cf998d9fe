// Package storage holds the S3-compatible object store clients: the cloud
// record mirror for spots and the photo asset store.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gmiller1004/workhaven-server/internal/models"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
)

// ErrNotFound is returned when a requested object does not exist in the bucket.
var ErrNotFound = errors.New("object not found")

// S3Service is a client for S3-compatible storage.
type S3Service struct {
	client *minio.Client
	bucket string
}

// NewS3Service initializes and returns a new S3 storage service.
// It connects to the MinIO server using credentials from environment variables.
func NewS3Service() (*S3Service, error) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("missing one or more required environment variables: MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY")
	}

	bucket := os.Getenv("MINIO_BUCKET")
	if bucket == "" {
		bucket = "workhaven"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %v", err)
	}

	log.WithField("endpoint", endpoint).Info("Connected to MinIO")
	return &S3Service{client: client, bucket: bucket}, nil
}

// EnsureBucket creates the configured bucket if it does not already exist.
func (s *S3Service) EnsureBucket(ctx context.Context, region string) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("error checking bucket existence: %v", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return err
		}
	}
	return nil
}

// spotKey builds the mirror object key for a spot record.
func spotKey(id string) string {
	return fmt.Sprintf("spots/%s.json", id)
}

// StoreSpot writes a spot record to the cloud mirror, overwriting any
// previous copy.
func (s *S3Service) StoreSpot(ctx context.Context, spot models.Spot) error {
	data, err := json.Marshal(spot)
	if err != nil {
		return fmt.Errorf("failed to marshal spot to JSON: %v", err)
	}

	_, err = s.client.PutObject(
		ctx,
		s.bucket,
		spotKey(spot.ID.Hex()),
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return fmt.Errorf("failed to store spot in S3: %v", err)
	}
	return nil
}

// FetchSpot retrieves a mirrored spot record by ID. It returns ErrNotFound
// when no copy exists in the bucket.
func (s *S3Service) FetchSpot(ctx context.Context, id string) (*models.Spot, error) {
	key := spotKey(id)

	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to stat object: %v", err)
	}

	object, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object from S3: %v", err)
	}
	defer object.Close()

	var spot models.Spot
	if err := json.NewDecoder(object).Decode(&spot); err != nil {
		return nil, fmt.Errorf("failed to decode JSON from stream: %v", err)
	}
	return &spot, nil
}

// StorePhoto writes photo bytes under photos/<spotID>/<filename> and returns
// the object key.
func (s *S3Service) StorePhoto(ctx context.Context, spotID, filename, contentType string, data []byte) (string, error) {
	key := fmt.Sprintf("photos/%s/%s", spotID, sanitizeKey(filename))
	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", fmt.Errorf("failed to store photo in S3: %v", err)
	}
	return key, nil
}

// PhotoURL returns the public URL for a stored photo object.
func (s *S3Service) PhotoURL(objectKey string) string {
	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL(), s.bucket, objectKey)
}

// sanitizeKey replaces characters that are awkward in object keys.
func sanitizeKey(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ToLower(s)
	return s
}
