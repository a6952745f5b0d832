package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/platefeed/backend/config"
)

// ImageStore accepts decoded image bytes and returns a retrievable URL. It is
// the narrow seam to the storage backend; recipe logic never sees S3.
type ImageStore interface {
	UploadImage(ctx context.Context, data []byte, contentType string) (string, error)
}

// S3ImageStore stores recipe images in an S3 bucket with public-read objects.
type S3ImageStore struct {
	s3Config *config.S3Config
}

// NewS3ImageStore creates a new S3ImageStore instance
func NewS3ImageStore(s3Config *config.S3Config) *S3ImageStore {
	return &S3ImageStore{s3Config: s3Config}
}

// UploadImage writes the image under a fresh key and returns its URL.
func (s *S3ImageStore) UploadImage(ctx context.Context, data []byte, contentType string) (string, error) {
	ext := extensionFor(contentType)
	key := fmt.Sprintf("recipes/%s%s", uuid.New().String(), ext)

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return s.s3Config.ObjectURL(key), nil
}

// DecodeBase64Image decodes a "data:image/...;base64,..." data URI into raw
// bytes plus the declared content type. A bare base64 payload defaults to
// image/png.
func DecodeBase64Image(encoded string) ([]byte, string, error) {
	contentType := "image/png"
	payload := encoded

	if strings.HasPrefix(encoded, "data:") {
		parts := strings.SplitN(encoded, ",", 2)
		if len(parts) != 2 {
			return nil, "", fmt.Errorf("malformed data URI")
		}
		meta := strings.TrimPrefix(parts[0], "data:")
		meta = strings.TrimSuffix(meta, ";base64")
		if meta != "" {
			contentType = meta
		}
		payload = parts[1]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", err
	}
	return data, contentType, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
