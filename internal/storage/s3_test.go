package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	apperrors "entity-tracker-backend/internal/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string][]byte
	putErr  error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Store_StoreOpenDelete(t *testing.T) {
	fake := newFakeS3()
	store := newS3Store(fake, S3Config{Bucket: "docs", Prefix: "entity-tracker"})
	ctx := context.Background()

	locator, size, err := store.Store(ctx, strings.NewReader("pdf bytes"), "scan.pdf")
	require.NoError(t, err)
	assert.Equal(t, int64(9), size)
	assert.Contains(t, fake.objects, "docs/entity-tracker/"+locator)

	rc, err := store.Open(ctx, locator)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(body))

	require.NoError(t, store.Delete(ctx, locator))
	assert.Empty(t, fake.objects)

	_, err = store.Open(ctx, locator)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestS3Store_ValidatesBeforeUpload(t *testing.T) {
	fake := newFakeS3()
	store := newS3Store(fake, S3Config{Bucket: "docs", MaxBytes: 4})
	ctx := context.Background()

	_, _, err := store.Store(ctx, strings.NewReader("x"), "tool.exe")
	assert.True(t, apperrors.IsUnsupportedType(err))

	_, _, err = store.Store(ctx, strings.NewReader("12345"), "big.txt")
	assert.True(t, apperrors.IsTooLarge(err))

	assert.Empty(t, fake.objects)
}

func TestS3Store_PutFailureIsStorageError(t *testing.T) {
	fake := newFakeS3()
	fake.putErr = errors.New("connection reset")
	store := newS3Store(fake, S3Config{Bucket: "docs"})

	_, _, err := store.Store(context.Background(), strings.NewReader("x"), "a.txt")
	require.Error(t, err)
	assert.True(t, apperrors.IsStorage(err))
}

func TestNewS3Store_RequiresBucket(t *testing.T) {
	_, err := NewS3Store(context.Background(), S3Config{})
	assert.True(t, apperrors.IsConfiguration(err))
}
