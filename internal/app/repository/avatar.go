package repository

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"DBsentinel-Gateway/internal/app/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

const avatarBucket = "user-avatar"

var ErrUnsupportedImage = errors.New("unsupported image type")

// AvatarStorage хранит аватары пользователей в MinIO
type AvatarStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewAvatarStorage(cfg *config.Config) (*AvatarStorage, error) {
	minioClient, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %v", err)
	}

	ctx := context.Background()

	// Создаем bucket если не существует
	exists, err := minioClient.BucketExists(ctx, avatarBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %v", err)
	}
	if !exists {
		err = minioClient.MakeBucket(ctx, avatarBucket, minio.MakeBucketOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %v", err)
		}
	}

	logrus.Info("MinIO client initialized successfully")
	return &AvatarStorage{
		client:    minioClient,
		bucket:    avatarBucket,
		publicURL: cfg.MinioPublicURL,
	}, nil
}

// Save загружает файл и возвращает его публичный URL
func (s *AvatarStorage) Save(ctx context.Context, fileName string, fileHeader *multipart.FileHeader) (string, error) {
	contentType, err := imageContentType(fileName)
	if err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	_, err = s.client.PutObject(ctx, s.bucket, fileName, file, fileHeader.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}

	return s.objectURL(fileName), nil
}

// Delete удаляет ранее загруженный аватар. Чужие URL пропускаются.
func (s *AvatarStorage) Delete(ctx context.Context, imageURL string) error {
	fileName, ok := s.objectName(imageURL)
	if !ok {
		logrus.Debugf("avatar URL %s is not in bucket %s, skipping deletion", imageURL, s.bucket)
		return nil
	}

	_, err := s.client.StatObject(ctx, s.bucket, fileName, minio.StatObjectOptions{})
	if err != nil {
		logrus.Debugf("avatar %s not found in bucket %s, skipping deletion", fileName, s.bucket)
		return nil
	}

	err = s.client.RemoveObject(ctx, s.bucket, fileName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object from MinIO: %v", err)
	}

	logrus.Infof("deleted avatar from MinIO: %s", fileName)
	return nil
}

func (s *AvatarStorage) objectURL(fileName string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, fileName)
}

func (s *AvatarStorage) objectName(imageURL string) (string, bool) {
	prefix := fmt.Sprintf("%s/%s/", s.publicURL, s.bucket)
	if imageURL == "" || !strings.HasPrefix(imageURL, prefix) {
		return "", false
	}
	name := strings.TrimPrefix(imageURL, prefix)
	if name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return name, true
}

func imageContentType(fileName string) (string, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".jpg", ".jpeg":
		return "image/jpeg", nil
	case ".png":
		return "image/png", nil
	case ".gif":
		return "image/gif", nil
	case ".webp":
		return "image/webp", nil
	default:
		return "", ErrUnsupportedImage
	}
}
