package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/raagrecording/raagrecording-backend/internal/pkg/envutil"
	apperrors "github.com/raagrecording/raagrecording-backend/internal/pkg/errors"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/logger"
)

// Audio container formats accepted for upload. Content is never inspected;
// producers reference the stored binary opaquely by key.
var allowedAudioExts = map[string]bool{
	".wav":  true,
	".flac": true,
	".aiff": true,
	".mp3":  true,
}

// BucketService stores audio binaries in GCS. Keys are generated here so
// callers never control object paths.
type BucketService interface {
	UploadAudio(ctx context.Context, filename string, size int64, file io.Reader) (string, error)
	DeleteFile(ctx context.Context, key string) error
	PublicURL(key string) string
}

type bucketService struct {
	log           *logger.Logger
	storageClient *storage.Client
	bucketName    string
	cdnDomain     string
	maxUploadMB   int64
}

func NewBucketService(baseLog *logger.Logger) (BucketService, error) {
	serviceLog := baseLog.With("service", "BucketService")

	bucket := envutil.String("GCS_BUCKET_NAME", "")
	if bucket == "" {
		return nil, fmt.Errorf("missing env var GCS_BUCKET_NAME")
	}
	cdnDomain := envutil.String("CDN_DOMAIN", "")
	maxUploadMB := int64(envutil.Int("MAX_AUDIO_UPLOAD_MB", 512))
	saPath := envutil.String("GOOGLE_APPLICATION_CREDENTIALS_JSON", "")

	ctx := context.Background()
	var stClient *storage.Client
	var err error
	if saPath != "" {
		stClient, err = storage.NewClient(ctx, option.WithCredentialsFile(saPath), option.WithScopes(storage.ScopeReadWrite))
	} else {
		serviceLog.Warn("GOOGLE_APPLICATION_CREDENTIALS_JSON not set; falling back to ambient credentials")
		stClient, err = storage.NewClient(ctx, option.WithScopes(storage.ScopeReadWrite))
	}
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &bucketService{
		log:           serviceLog,
		storageClient: stClient,
		bucketName:    bucket,
		cdnDomain:     cdnDomain,
		maxUploadMB:   maxUploadMB,
	}, nil
}

func (bs *bucketService) UploadAudio(ctx context.Context, filename string, size int64, file io.Reader) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	if !allowedAudioExts[ext] {
		return "", fmt.Errorf("%w: unsupported audio format %q", apperrors.ErrInvalidArgument, ext)
	}
	if size > bs.maxUploadMB*1024*1024 {
		return "", fmt.Errorf("%w: file exceeds %dMB limit", apperrors.ErrInvalidArgument, bs.maxUploadMB)
	}
	key := fmt.Sprintf("audio/%s%s", uuid.New(), ext)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	w := bs.storageClient.Bucket(bs.bucketName).Object(key).NewWriter(ctx)
	if _, err := io.Copy(w, file); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write audio to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close GCS writer: %w", err)
	}
	return key, nil
}

func (bs *bucketService) DeleteFile(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := bs.storageClient.Bucket(bs.bucketName).Object(key).Delete(ctx); err != nil {
		return fmt.Errorf("delete GCS object %q: %w", key, err)
	}
	return nil
}

func (bs *bucketService) PublicURL(key string) string {
	if bs.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", bs.cdnDomain, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bs.bucketName, key)
}
