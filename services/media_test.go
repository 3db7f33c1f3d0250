package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-app/backend/errs"
	"github.com/inkwell-app/backend/models"
)

// fakeObjectClient records the order of put and delete calls.
type fakeObjectClient struct {
	calls     []string
	puts      int
	putErr    error
	putErrAt  int // 1-based put call that fails when putErr is set
	deleteErr error
	objects   map[string]bool
}

func newFakeObjectClient() *fakeObjectClient {
	return &fakeObjectClient{objects: map[string]bool{}}
}

func (c *fakeObjectClient) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	c.puts++
	if c.putErr != nil && (c.putErrAt == 0 || c.puts == c.putErrAt) {
		return nil, c.putErr
	}
	c.calls = append(c.calls, "put:"+*params.Key)
	c.objects[*params.Key] = true
	return &s3.PutObjectOutput{}, nil
}

func (c *fakeObjectClient) DeleteObject(_ context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	c.calls = append(c.calls, "delete:"+*params.Key)
	if c.deleteErr != nil {
		return nil, c.deleteErr
	}
	delete(c.objects, *params.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestUploadReturnsRefWithKey(t *testing.T) {
	client := newFakeObjectClient()
	media := NewMedia(client, "bucket", "https://cdn.example.com/")

	ref, err := media.Upload(context.Background(), models.MediaKindImage, "photo.JPG", "image/jpeg", strings.NewReader("data"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ref.Key, "image/"))
	assert.True(t, strings.HasSuffix(ref.Key, ".jpg"))
	assert.Equal(t, "https://cdn.example.com/"+ref.Key, ref.URL)
	assert.True(t, client.objects[ref.Key])
}

func TestUploadRejectsUnknownKind(t *testing.T) {
	media := NewMedia(newFakeObjectClient(), "bucket", "https://cdn.example.com")

	_, err := media.Upload(context.Background(), "document", "a.pdf", "application/pdf", strings.NewReader("x"))
	require.Error(t, err)

	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.StatusCode)
}

func TestUploadFailureWrapsError(t *testing.T) {
	client := newFakeObjectClient()
	client.putErr = errors.New("bucket unavailable")
	media := NewMedia(client, "bucket", "https://cdn.example.com")

	_, err := media.Upload(context.Background(), models.MediaKindImage, "photo.png", "image/png", strings.NewReader("x"))
	require.Error(t, err)
	assert.True(t, errs.IsUploadError(err))
}

func TestReplaceUploadsBeforeDeleting(t *testing.T) {
	client := newFakeObjectClient()
	client.objects["avatar/old"] = true
	media := NewMedia(client, "bucket", "https://cdn.example.com")

	ref, err := media.Replace(context.Background(), models.MediaKindAvatar, "new.png", "image/png", strings.NewReader("x"), "avatar/old")
	require.NoError(t, err)

	require.Len(t, client.calls, 2)
	assert.True(t, strings.HasPrefix(client.calls[0], "put:"))
	assert.Equal(t, "delete:avatar/old", client.calls[1])
	assert.True(t, client.objects[ref.Key])
	assert.False(t, client.objects["avatar/old"])
}

func TestReplaceKeepsOldObjectOnUploadFailure(t *testing.T) {
	client := newFakeObjectClient()
	client.objects["avatar/old"] = true
	client.putErr = errors.New("write denied")
	media := NewMedia(client, "bucket", "https://cdn.example.com")

	_, err := media.Replace(context.Background(), models.MediaKindAvatar, "new.png", "image/png", strings.NewReader("x"), "avatar/old")
	require.Error(t, err)

	// The old object must survive a failed upload.
	assert.True(t, client.objects["avatar/old"])
	assert.Empty(t, client.calls)
}

func TestUploadAllStoresEveryPartInOrder(t *testing.T) {
	client := newFakeObjectClient()
	media := NewMedia(client, "bucket", "https://cdn.example.com")

	refs, err := media.UploadAll(context.Background(), []UploadSpec{
		{Kind: models.MediaKindImage, Filename: "a.png", ContentType: "image/png", Body: strings.NewReader("a")},
		{Kind: models.MediaKindVideo, Filename: "b.mp4", ContentType: "video/mp4", Body: strings.NewReader("b")},
	})
	require.NoError(t, err)
	require.Len(t, refs, 2)

	assert.True(t, strings.HasPrefix(refs[0].Key, "image/"))
	assert.True(t, strings.HasPrefix(refs[1].Key, "video/"))
	for _, ref := range refs {
		assert.True(t, client.objects[ref.Key])
	}
}

func TestUploadAllReclaimsEarlierUploadsOnFailure(t *testing.T) {
	client := newFakeObjectClient()
	client.putErr = errors.New("bucket unavailable")
	client.putErrAt = 3
	media := NewMedia(client, "bucket", "https://cdn.example.com")

	refs, err := media.UploadAll(context.Background(), []UploadSpec{
		{Kind: models.MediaKindImage, Filename: "a.png", ContentType: "image/png", Body: strings.NewReader("a")},
		{Kind: models.MediaKindImage, Filename: "b.png", ContentType: "image/png", Body: strings.NewReader("b")},
		{Kind: models.MediaKindImage, Filename: "c.png", ContentType: "image/png", Body: strings.NewReader("c")},
	})
	require.Error(t, err)
	assert.Nil(t, refs)
	assert.True(t, errs.IsUploadError(err))

	// The two objects stored before the failure must be deleted again.
	assert.Empty(t, client.objects)
	require.Len(t, client.calls, 4)
	assert.True(t, strings.HasPrefix(client.calls[2], "delete:"))
	assert.True(t, strings.HasPrefix(client.calls[3], "delete:"))
}

func TestDeleteFailureIsSwallowed(t *testing.T) {
	client := newFakeObjectClient()
	client.deleteErr = errors.New("permission denied")
	media := NewMedia(client, "bucket", "https://cdn.example.com")

	// Best-effort: no panic, no error surfaced.
	media.Delete(context.Background(), "image/k1")
	media.DeleteAll(context.Background(), []string{"image/k2", "image/k3"})

	assert.Len(t, client.calls, 3)
}
