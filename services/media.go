package services

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/inkwell-app/backend/errs"
	"github.com/inkwell-app/backend/models"
)

// ObjectClient is the slice of the S3 API the media pipeline uses.
type ObjectClient interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Media uploads binary assets to the object host and returns stable refs.
// Deletion of old objects is best-effort: a failed delete is logged and the
// request continues, so an orphaned object never blocks a user action.
type Media struct {
	client  ObjectClient
	bucket  string
	baseURL string
}

func NewMedia(client ObjectClient, bucket, baseURL string) *Media {
	return &Media{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Upload stores the asset under a fresh key and returns its ref. The key
// embeds the media kind so the bucket stays browsable by type.
func (m *Media) Upload(ctx context.Context, kind, filename, contentType string, body io.Reader) (models.MediaRef, error) {
	if kind != models.MediaKindImage && kind != models.MediaKindVideo && kind != models.MediaKindAvatar {
		return models.MediaRef{}, errs.NewInvalidMediaKindError(kind)
	}

	key := kind + "/" + uuid.New().String() + strings.ToLower(path.Ext(filename))
	_, err := m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return models.MediaRef{}, errs.NewUploadError(filename, err)
	}

	return models.MediaRef{
		URL: m.baseURL + "/" + key,
		Key: key,
	}, nil
}

// UploadSpec pairs a file with its kind for batch uploads.
type UploadSpec struct {
	Kind        string
	Filename    string
	ContentType string
	Body        io.Reader
}

// UploadAll stores a batch of assets in order. On any failure the objects
// already uploaded are reclaimed before the error is returned, so a partial
// batch never leaks objects.
func (m *Media) UploadAll(ctx context.Context, specs []UploadSpec) ([]models.MediaRef, error) {
	refs := make([]models.MediaRef, 0, len(specs))
	for _, spec := range specs {
		ref, err := m.Upload(ctx, spec.Kind, spec.Filename, spec.ContentType, spec.Body)
		if err != nil {
			keys := make([]string, 0, len(refs))
			for _, r := range refs {
				keys = append(keys, r.Key)
			}
			m.DeleteAll(ctx, keys)
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// Replace uploads the new asset first and reclaims the old object only after
// the upload succeeds, so a failed upload never leaves the owner without an
// asset.
func (m *Media) Replace(ctx context.Context, kind, filename, contentType string, body io.Reader, oldKey string) (models.MediaRef, error) {
	ref, err := m.Upload(ctx, kind, filename, contentType, body)
	if err != nil {
		return models.MediaRef{}, err
	}
	if oldKey != "" {
		m.Delete(ctx, oldKey)
	}
	return ref, nil
}

// Delete reclaims an object by key. Failures are logged, not returned.
func (m *Media) Delete(ctx context.Context, key string) {
	if key == "" {
		return
	}
	_, err := m.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(m.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to delete media object")
	}
}

// DeleteAll reclaims a batch of objects, best-effort each.
func (m *Media) DeleteAll(ctx context.Context, keys []string) {
	for _, key := range keys {
		m.Delete(ctx, key)
	}
}
