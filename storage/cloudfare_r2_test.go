package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/Dosada05/championship-manager/repositories"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{objects: make(map[string][]byte)}
}

func (b *fakeBucket) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.objects[aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (b *fakeBucket) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[aws.ToString(params.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (b *fakeBucket) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, aws.ToString(params.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (b *fakeBucket) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	prefix := aws.ToString(params.Prefix)
	delimiter := aws.ToString(params.Delimiter)

	seen := make(map[string]bool)
	for key := range b.objects {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		rest := strings.TrimPrefix(key, prefix)
		if i := strings.Index(rest, delimiter); delimiter != "" && i >= 0 {
			seen[prefix+rest[:i+1]] = true
		}
	}
	prefixes := make([]string, 0, len(seen))
	for p := range seen {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)

	out := &s3.ListObjectsV2Output{}
	for _, p := range prefixes {
		out.CommonPrefixes = append(out.CommonPrefixes, types.CommonPrefix{Prefix: aws.String(p)})
	}
	return out, nil
}

func TestObjectStoreGetPut(t *testing.T) {
	ctx := context.Background()
	bucket := newFakeBucket()
	store := NewObjectStore(bucket, "state", "tournaments/")

	if _, err := store.Get(ctx, "cup/teams"); !errors.Is(err, repositories.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
	if err := store.Put(ctx, "cup/teams", []byte(`[]`)); err != nil {
		t.Fatal(err)
	}
	if _, ok := bucket.objects["tournaments/cup/teams.json"]; !ok {
		t.Errorf("unexpected object keys: %v", bucket.objects)
	}
	got, err := store.Get(ctx, "cup/teams")
	if err != nil || string(got) != `[]` {
		t.Errorf("Get() = %q, %v", got, err)
	}
}

func TestObjectStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewObjectStore(newFakeBucket(), "state", "tournaments/")

	if err := store.Delete(ctx, "cup/config"); !errors.Is(err, repositories.ErrKeyNotFound) {
		t.Errorf("deleting a missing key: expected ErrKeyNotFound, got %v", err)
	}
	_ = store.Put(ctx, "cup/config", []byte(`{}`))
	if err := store.Delete(ctx, "cup/config"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(ctx, "cup/config"); !errors.Is(err, repositories.ErrKeyNotFound) {
		t.Error("object still present after delete")
	}
}

func TestObjectStoreListTournaments(t *testing.T) {
	ctx := context.Background()
	store := NewObjectStore(newFakeBucket(), "state", "tournaments/")
	for _, key := range []string{"summer/teams", "summer/config", "winter/config"} {
		if err := store.Put(ctx, key, []byte(`{}`)); err != nil {
			t.Fatal(err)
		}
	}

	ids, err := store.ListTournaments(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || ids[0] != "summer" || ids[1] != "winter" {
		t.Errorf("unexpected tournament ids: %v", ids)
	}
}

func TestObjectStoreBacksStateRepository(t *testing.T) {
	repo := repositories.NewStateRepository(NewObjectStore(newFakeBucket(), "state", ""))
	state, err := repo.Load(context.Background(), "cup")
	if err != nil {
		t.Fatal(err)
	}
	state.Version = 3
	if err := repo.Save(context.Background(), state); err != nil {
		t.Fatal(err)
	}
	reloaded, err := repo.Load(context.Background(), "cup")
	if err != nil || reloaded.Version != 3 {
		t.Errorf("Load() = %+v, %v", reloaded, err)
	}
}

func TestNewCloudflareR2StoreRequiresCredentials(t *testing.T) {
	if _, err := NewCloudflareR2Store(CloudflareR2Config{BucketName: "state"}); err == nil {
		t.Error("expected an error for an incomplete configuration")
	}
}
