package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/ruteri/kyc-onboarding-backend/interfaces"
)

// S3API is the subset of the S3 client used by S3Store.
type S3API interface {
	GetObjectWithContext(ctx aws.Context, input *s3.GetObjectInput, opts ...request.Option) (*s3.GetObjectOutput, error)
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
	HeadBucketWithContext(ctx aws.Context, input *s3.HeadBucketInput, opts ...request.Option) (*s3.HeadBucketOutput, error)
}

// S3Store keeps the credential record as a single object in Amazon S3 or a
// compatible service. A PUT replaces the object whole, so readers never see
// a partial record.
type S3Store struct {
	client      S3API
	bucketName  string
	key         string
	codec       RecordCodec
	log         *slog.Logger
	locationURI string
}

// NewS3Store creates an S3 store for bucket/key. Static credentials are used
// when accessKey is set, otherwise the default AWS credential chain applies.
func NewS3Store(bucketName, key, region, endpoint, accessKey, secretKey string, codec RecordCodec, log *slog.Logger) (*S3Store, error) {
	if bucketName == "" || key == "" {
		return nil, errors.New("s3 store requires bucket and key")
	}

	uri := fmt.Sprintf("s3://%s/%s?region=%s", bucketName, key, region)
	if endpoint != "" {
		uri += fmt.Sprintf("&endpoint=%s", endpoint)
	}

	cfg := aws.Config{
		Region: aws.String(region),
	}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
		cfg.S3ForcePathStyle = aws.Bool(true)
	}
	if accessKey != "" {
		cfg.Credentials = credentials.NewStaticCredentials(accessKey, secretKey, "")
	}

	sess, err := session.NewSession(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return newS3Store(s3.New(sess), bucketName, key, codec, log, uri), nil
}

func newS3Store(client S3API, bucketName, key string, codec RecordCodec, log *slog.Logger, uri string) *S3Store {
	if codec == nil {
		codec = JSONCodec{}
	}
	return &S3Store{
		client:      client,
		bucketName:  bucketName,
		key:         key,
		codec:       codec,
		log:         log,
		locationURI: uri,
	}
}

// Load fetches and decodes the record object.
func (s *S3Store) Load(ctx context.Context) (*interfaces.AdminCredentialPair, error) {
	start := time.Now()

	result, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && (aerr.Code() == s3.ErrCodeNoSuchKey || aerr.Code() == "NotFound") {
			s.log.Debug("Credential record not found in S3",
				slog.String("bucket", s.bucketName),
				slog.String("key", s.key))
			return nil, interfaces.ErrCredentialsNotFound
		}

		s.log.Error("Failed to get credential record from S3",
			slog.String("bucket", s.bucketName),
			slog.String("key", s.key),
			"err", err)
		return nil, fmt.Errorf("%w: %v", interfaces.ErrBackendUnavailable, err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read object body: %v", interfaces.ErrBackendUnavailable, err)
	}

	pair, err := s.codec.Decode(data)
	if err != nil {
		return nil, &interfaces.CacheCorruptError{Location: s.locationURI, Err: err}
	}

	s.log.Debug("Loaded credential record from S3",
		slog.String("bucket", s.bucketName),
		slog.Duration("duration", time.Since(start)))
	return pair, nil
}

// Save uploads the record, replacing any previous object.
func (s *S3Store) Save(ctx context.Context, pair *interfaces.AdminCredentialPair) error {
	start := time.Now()

	data, err := s.codec.Encode(pair)
	if err != nil {
		return fmt.Errorf("failed to encode credential record: %w", err)
	}

	_, err = s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(s.bucketName),
		Key:                  aws.String(s.key),
		Body:                 bytes.NewReader(data),
		ContentType:          aws.String("application/json"),
		ServerSideEncryption: aws.String(s3.ServerSideEncryptionAes256),
	})
	if err != nil {
		s.log.Error("Failed to put credential record to S3",
			slog.String("bucket", s.bucketName),
			slog.String("key", s.key),
			"err", err)
		return fmt.Errorf("%w: %v", interfaces.ErrBackendUnavailable, err)
	}

	s.log.Info("Stored credential record in S3",
		slog.String("bucket", s.bucketName),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// Available checks that the bucket is reachable.
func (s *S3Store) Available(ctx context.Context) bool {
	headCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.client.HeadBucketWithContext(headCtx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucketName),
	})
	if err != nil {
		s.log.Debug("S3 store unavailable", "err", err)
		return false
	}
	return true
}

func (s *S3Store) Name() string {
	return fmt.Sprintf("s3-%s", s.bucketName)
}

func (s *S3Store) LocationURI() string {
	return s.locationURI
}
