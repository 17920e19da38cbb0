package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/danmaket/marketplace-api/pkg/config"
)

// ImageStore stocke les images (produits, bannières) et retourne leurs URLs publiques.
type ImageStore interface {
	Upload(ctx context.Context, ownerID string, data []byte, filename, contentType string) (string, error)
	Delete(ctx context.Context, publicURL string) error
}

// S3Store implémentation d'ImageStore sur un bucket compatible S3.
type S3Store struct {
	client    *s3.Client
	bucket    string
	region    string
	endpoint  string
	cdnDomain string
}

var _ ImageStore = (*S3Store)(nil)

// NewS3Store construit le client S3. Un Endpoint non vide active le mode
// path-style (MinIO, stockage compatible S3 auto-hébergé).
func NewS3Store(cfg config.StorageConfig) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("config aws: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client:    client,
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		endpoint:  cfg.Endpoint,
		cdnDomain: cfg.CDNDomain,
	}, nil
}

// Upload envoie l'image sous la clé <ownerID>/<uuid>.<ext> et retourne l'URL publique.
func (s *S3Store) Upload(ctx context.Context, ownerID string, data []byte, filename, contentType string) (string, error) {
	key := s.generateKey(ownerID, filename)

	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload s3: %w", err)
	}

	return s.publicURL(key), nil
}

// Delete supprime l'objet correspondant à l'URL publique. URL inconnue du
// bucket : erreur, on ne supprime rien à l'aveugle.
func (s *S3Store) Delete(ctx context.Context, publicURL string) error {
	key := s.extractKey(publicURL)
	if key == "" || key == publicURL {
		return fmt.Errorf("delete s3: url hors bucket: %s", publicURL)
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete s3: %w", err)
	}
	return nil
}

func (s *S3Store) generateKey(ownerID, filename string) string {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("%s/%s%s", ownerID, uuid.New().String(), ext)
}

func (s *S3Store) publicURL(key string) string {
	if s.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", s.cdnDomain, key)
	}
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(s.endpoint, "/"), s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

func (s *S3Store) extractKey(publicURL string) string {
	if s.cdnDomain != "" && strings.Contains(publicURL, s.cdnDomain) {
		return strings.TrimPrefix(publicURL, fmt.Sprintf("https://%s/", s.cdnDomain))
	}
	if s.endpoint != "" {
		prefix := fmt.Sprintf("%s/%s/", strings.TrimSuffix(s.endpoint, "/"), s.bucket)
		return strings.TrimPrefix(publicURL, prefix)
	}
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.bucket, s.region)
	return strings.TrimPrefix(publicURL, prefix)
}
