package assets

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/adampresley/adamgokit/s3"
	"github.com/adampresley/adamgokit/s3/listoptions"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type S3AssetStoreConfig struct {
	Bucket   string
	S3Client s3.S3Client
}

/*
S3AssetStore serves media assets from an S3 bucket, with object URLs
signed by the client.
*/
type S3AssetStore struct {
	bucket   string
	s3Client s3.S3Client
}

func NewS3AssetStore(config S3AssetStoreConfig) S3AssetStore {
	return S3AssetStore{
		bucket:   config.Bucket,
		s3Client: config.S3Client,
	}
}

func (s S3AssetStore) List(prefix string) ([]Asset, error) {
	var (
		err      error
		response s3.ListResponse
	)

	response, err = s.s3Client.List(
		s.bucket,
		prefix,
		listoptions.WithGetAll(),
		listoptions.WithGetUrls(),
		listoptions.WithFilter(func(obj types.Object) bool {
			// Skip folder placeholder objects.
			return !strings.HasSuffix(aws.ToString(obj.Key), "/")
		}),
	)

	if err != nil {
		return nil, fmt.Errorf("error listing assets under %q: %w", prefix, err)
	}

	result := []Asset{}

	for _, obj := range response.Objects {
		result = append(result, Asset{
			Key:          obj.Key,
			URL:          obj.Url,
			LastModified: obj.LastModified,
		})
	}

	return result, nil
}

func (s S3AssetStore) Get(key string) (io.ReadCloser, string, int64, error) {
	var (
		err    error
		object s3.GetObjectResponse
	)

	if object, err = s.s3Client.Get(s.bucket, key); err != nil {
		return nil, "", 0, fmt.Errorf("error getting asset %q from S3: %w", key, err)
	}

	contentType := object.ContentType

	if contentType == "" {
		contentType = contentTypeFor(key)
	}

	return object.Body, contentType, object.Size, nil
}

func (s S3AssetStore) Put(key string, r io.Reader, contentType string) error {
	var (
		err error
	)

	if _, err = s.s3Client.Put(s.bucket, key, r); err != nil {
		return fmt.Errorf("error uploading asset %q to S3: %w", key, err)
	}

	return nil
}

func (s S3AssetStore) Stat(key string) (*Asset, error) {
	var (
		err  error
		stat *s3.ObjectMetadata
	)

	if stat, err = s.s3Client.StatObject(s.bucket, key); err != nil {
		return nil, fmt.Errorf("error retrieving metadata for asset %q: %w", key, err)
	}

	if stat == nil {
		return nil, nil
	}

	return &Asset{
		Key:          key,
		LastModified: stat.LastModified,
	}, nil
}

func (s S3AssetStore) URL(key string) (string, error) {
	u, err := s.s3Client.GetUrl(s.bucket, key)

	if err != nil {
		return "", fmt.Errorf("error building URL for asset %q: %w", filepath.Base(key), err)
	}

	return u, nil
}
