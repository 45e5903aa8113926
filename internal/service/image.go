package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/platewise/recipehub/backend/config"
)

// ImageService uploads recipe images to S3 and returns their public URLs.
type ImageService struct {
	s3 *config.S3Config
}

// NewImageService creates a new ImageService instance
func NewImageService(s3cfg *config.S3Config) *ImageService {
	return &ImageService{s3: s3cfg}
}

// UploadRecipeImage stores the image under the recipe's key prefix and
// returns the public URL. Old images are not removed; the recipe record
// only ever points at the newest one.
func (s *ImageService) UploadRecipeImage(ctx context.Context, recipeID uuid.UUID, data []byte, contentType string) (string, error) {
	ext, err := extensionFor(contentType)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("recipe-images/%s/%s%s", recipeID, uuid.New(), ext)

	_, err = s.s3.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3.BucketName, key), nil
}

func extensionFor(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/webp":
		return ".webp", nil
	default:
		return "", fmt.Errorf("unsupported image content type %q", contentType)
	}
}
