package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"iqro_backend/internals/configs"
)

type OSSService struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	Prefix     string
	PublicBase string
}

func NewOSSServiceFromEnv(prefix string) (*OSSService, error) {
	endpoint := configs.GetEnv("ALI_OSS_ENDPOINT")
	ak := configs.GetEnv("ALI_OSS_ACCESS_KEY")
	sk := configs.GetEnv("ALI_OSS_SECRET_KEY")
	sts := configs.GetEnv("ALI_OSS_SECURITY_TOKEN")
	bucketName := configs.GetEnv("ALI_OSS_BUCKET")
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	var (
		client *oss.Client
		err    error
	)
	if sts != "" {
		client, err = oss.New(endpoint, ak, sk, oss.SecurityToken(sts))
	} else {
		client, err = oss.New(endpoint, ak, sk)
	}
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	if loc, err := client.GetBucketLocation(bucketName); err != nil {
		if se, ok := err.(oss.ServiceError); ok && se.StatusCode == 403 {
			log.Printf("[OSS] warn: skip location check (bucket=%s): %s", bucketName, se.Code)
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		log.Printf("[OSS] bucket %s location: %s", bucketName, loc)
	}

	return &OSSService{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		Prefix:     strings.Trim(prefix, "/"),
		PublicBase: configs.GetEnv("ALI_OSS_PUBLIC_BASE"),
	}, nil
}

func (s *OSSService) Driver() string { return "oss" }

func (s *OSSService) Upload(ctx context.Context, r io.Reader, filename, contentType, folder string) (*Stored, error) {
	key := buildObjectKey(s.Prefix, folder, filename)
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	if err := s.Bucket.PutObject(key, r, opts...); err != nil {
		return nil, fmt.Errorf("oss put %s: %w", key, err)
	}
	return &Stored{
		URL:         s.PublicURL(key),
		Ref:         key,
		ContentType: contentType,
	}, nil
}

func (s *OSSService) Delete(ctx context.Context, ref string) error {
	if strings.TrimSpace(ref) == "" {
		return nil
	}
	err := s.Bucket.DeleteObject(ref, oss.WithContext(ctx))
	if se, ok := err.(oss.ServiceError); ok && se.StatusCode == 404 {
		return nil
	}
	return err
}

func (s *OSSService) PublicURL(key string) string {
	return ossPublicURL(s.PublicBase, s.Endpoint, s.BucketName, key)
}

func ossPublicURL(publicBase, endpoint, bucket, key string) string {
	if key == "" {
		return ""
	}
	if base := strings.TrimSpace(publicBase); base != "" {
		return strings.TrimRight(base, "/") + "/" + key
	}
	end := strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", bucket, end, key)
}
