// Package plan publishes entity descriptions to an S3 bucket that the
// provisioning collaborator consumes.
package plan

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"

	"github.com/edvin/regionfailover/internal/model"
	"github.com/edvin/regionfailover/internal/topology"
)

// S3Options configures the sink's S3 client and object layout.
type S3Options struct {
	Endpoint  string // empty for the default AWS endpoint
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
}

// S3Sink writes one JSON object per entity under
// {prefix}/{region}/{kind}.json. Owned tables are also indexed under
// {prefix}/tables/{name}.json so that secondary regions can resolve them by
// name.
type S3Sink struct {
	client *s3.Client
	bucket string
	prefix string
	logger zerolog.Logger
	now    func() time.Time
}

// NewS3Sink creates a new S3Sink.
func NewS3Sink(opts S3Options, logger zerolog.Logger) *S3Sink {
	s3opts := s3.Options{
		Region:                     opts.Region,
		RequestChecksumCalculation: aws.RequestChecksumCalculationWhenRequired,
		ResponseChecksumValidation: aws.ResponseChecksumValidationWhenRequired,
	}
	if opts.AccessKey != "" {
		s3opts.Credentials = credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")
	}
	if opts.Endpoint != "" {
		s3opts.BaseEndpoint = aws.String(opts.Endpoint)
		s3opts.UsePathStyle = true
	}

	return &S3Sink{
		client: s3.New(s3opts),
		bucket: opts.Bucket,
		prefix: opts.Prefix,
		logger: logger.With().Str("component", "plan-sink").Str("bucket", opts.Bucket).Logger(),
		now:    time.Now,
	}
}

// Prefix returns the object prefix for a topology's entity descriptions.
func Prefix(t model.Topology) string {
	return path.Join("topologies", t.AppName, t.DomainName)
}

func (s *S3Sink) entityKey(k model.ResourceKey) string {
	return path.Join(s.prefix, string(k.Region), string(k.Kind)+".json")
}

func (s *S3Sink) tableIndexKey(name string) string {
	return path.Join(s.prefix, "tables", name+".json")
}

func (s *S3Sink) activationKey(k model.ResourceKey) string {
	return path.Join(s.prefix, string(k.Region), string(k.Kind)+".enabled.json")
}

// Apply writes e's description. A reference-only table fails with
// topology.ErrTableNotFound unless the owning table has been applied.
func (s *S3Sink) Apply(ctx context.Context, e model.Entity) (model.Outcome, error) {
	if e.Table != nil && !e.Table.Owned {
		if err := s.resolveTable(ctx, e.Table.Name); err != nil {
			return model.Outcome{}, err
		}
	}

	key := s.entityKey(e.Key)
	if err := s.putJSON(ctx, key, e); err != nil {
		return model.Outcome{}, err
	}

	if e.Table != nil && e.Table.Owned {
		if err := s.putJSON(ctx, s.tableIndexKey(e.Table.Name), e.Table); err != nil {
			return model.Outcome{}, err
		}
	}

	s.logger.Debug().Str("key", key).Msg("entity description written")
	return model.Outcome{Key: e.Key, ExternalID: fmt.Sprintf("s3://%s/%s", s.bucket, key)}, nil
}

// Destroy deletes e's description, and the table index for owned tables.
func (s *S3Sink) Destroy(ctx context.Context, e model.Entity) error {
	keys := []string{s.entityKey(e.Key)}
	if e.Table != nil && e.Table.Owned {
		keys = append(keys, s.tableIndexKey(e.Table.Name))
	}
	if e.HealthCheck != nil {
		keys = append(keys, s.activationKey(e.Key))
	}

	for _, key := range keys {
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}
	return nil
}

type activation struct {
	Key       string    `json:"key"`
	FQDN      string    `json:"fqdn"`
	Enabled   bool      `json:"enabled"`
	EnabledAt time.Time `json:"enabled_at"`
}

// EnableHealthCheck writes the activation marker for hc.
func (s *S3Sink) EnableHealthCheck(ctx context.Context, hc model.HealthCheck) error {
	return s.putJSON(ctx, s.activationKey(hc.Key), activation{
		Key:       hc.Key.String(),
		FQDN:      hc.FQDN,
		Enabled:   true,
		EnabledAt: s.now().UTC(),
	})
}

func (s *S3Sink) resolveTable(ctx context.Context, name string) error {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.tableIndexKey(name)),
	})
	if err == nil {
		return nil
	}
	if isNotFound(err) {
		return fmt.Errorf("resolve table %q: %w", name, topology.ErrTableNotFound)
	}
	return fmt.Errorf("resolve table %q: %w", name, err)
}

func (s *S3Sink) putJSON(ctx context.Context, key string, v any) error {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func isNotFound(err error) bool {
	var nf *s3types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var nsk *s3types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var re *awshttp.ResponseError
	return errors.As(err, &re) && re.HTTPStatusCode() == http.StatusNotFound
}
