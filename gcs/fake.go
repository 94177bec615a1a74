// Copyright 2025 AxonFlow
// SPDX-License-Identifier: BUSL-1.1
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gcs

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Fake is an in-memory Backend for tests. Any method can be forced to
// fail with a scripted error via FailWith; otherwise operations run
// against the in-memory bucket state with the same NotFound/Conflict
// semantics as the real backend. Every invocation is recorded in Calls,
// and SignedURLCalls counts signer invocations so tests can assert the
// signer was never reached.
type Fake struct {
	mu             sync.Mutex
	buckets        map[string]*fakeBucket
	failures       map[string]error
	Calls          []string
	SignedURLCalls int
}

type fakeBucket struct {
	meta    BucketMetadata
	objects map[string]*ObjectMetadata
	cors    []CORSRule
}

// NewFake creates an empty fake backend.
func NewFake() *Fake {
	return &Fake{
		buckets:  make(map[string]*fakeBucket),
		failures: make(map[string]error),
	}
}

// FailWith scripts an error for a method name ("ListBuckets", "Upload", ...).
// The scripted error is returned on every subsequent call of that method.
func (f *Fake) FailWith(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[method] = err
}

// AddBucket seeds a bucket with the given metadata.
func (f *Fake) AddBucket(meta BucketMetadata) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.buckets[meta.Name] = &fakeBucket{
		meta:    meta,
		objects: make(map[string]*ObjectMetadata),
	}
}

// AddObject seeds an object into an existing bucket.
func (f *Fake) AddObject(bucket string, meta ObjectMetadata) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.buckets[bucket]
	if !ok {
		panic(fmt.Sprintf("fake: bucket %q not seeded", bucket))
	}
	meta.Bucket = bucket
	b.objects[meta.Name] = &meta
}

// HasObject reports whether an object is present, for asserting that a
// failed rename/copy left the destination untouched.
func (f *Fake) HasObject(bucket, object string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.buckets[bucket]
	if !ok {
		return false
	}
	_, ok = b.objects[object]
	return ok
}

// CORSRules returns the rules last applied to a bucket.
func (f *Fake) CORSRules(bucket string) []CORSRule {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.buckets[bucket]; ok {
		return b.cors
	}
	return nil
}

func (f *Fake) record(method string) error {
	f.Calls = append(f.Calls, method)
	return f.failures[method]
}

func (f *Fake) ListBuckets(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListBuckets"); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(f.buckets))
	for name := range f.buckets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (f *Fake) CreateBucket(ctx context.Context, name, location string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateBucket"); err != nil {
		return err
	}

	if _, exists := f.buckets[name]; exists {
		return NewStorageError(CategoryConflict, name, nil)
	}
	f.buckets[name] = &fakeBucket{
		meta: BucketMetadata{
			ID:           name,
			Name:         name,
			Location:     location,
			StorageClass: "STANDARD",
			Created:      time.Now().UTC(),
			Updated:      time.Now().UTC(),
		},
		objects: make(map[string]*ObjectMetadata),
	}
	return nil
}

func (f *Fake) DeleteBucket(ctx context.Context, name string, force bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteBucket"); err != nil {
		return err
	}

	b, ok := f.buckets[name]
	if !ok {
		return NewStorageError(CategoryNotFound, name, nil)
	}
	if len(b.objects) > 0 && !force {
		return NewStorageError(CategoryConflict, name, nil)
	}
	delete(f.buckets, name)
	return nil
}

func (f *Fake) ListObjects(ctx context.Context, bucket string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListObjects"); err != nil {
		return nil, err
	}

	b, ok := f.buckets[bucket]
	if !ok {
		return nil, NewStorageError(CategoryNotFound, bucket, nil)
	}
	names := make([]string, 0, len(b.objects))
	for name := range b.objects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (f *Fake) Upload(ctx context.Context, bucket, srcPath, object string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("Upload"); err != nil {
		return err
	}

	b, ok := f.buckets[bucket]
	if !ok {
		return NewStorageError(CategoryNotFound, bucket, nil)
	}
	b.objects[object] = &ObjectMetadata{
		Name:         object,
		Bucket:       bucket,
		ContentType:  "application/octet-stream",
		StorageClass: "STANDARD",
		Updated:      time.Now().UTC(),
	}
	return nil
}

func (f *Fake) Download(ctx context.Context, bucket, object, dstPath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("Download"); err != nil {
		return err
	}

	b, ok := f.buckets[bucket]
	if !ok {
		return NewStorageError(CategoryNotFound, bucket, nil)
	}
	if _, ok := b.objects[object]; !ok {
		return NewStorageError(CategoryNotFound, object, nil)
	}
	return nil
}

func (f *Fake) DeleteObject(ctx context.Context, bucket, object string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteObject"); err != nil {
		return err
	}

	b, ok := f.buckets[bucket]
	if !ok {
		return NewStorageError(CategoryNotFound, bucket, nil)
	}
	if _, ok := b.objects[object]; !ok {
		return NewStorageError(CategoryNotFound, object, nil)
	}
	delete(b.objects, object)
	return nil
}

func (f *Fake) BucketMetadata(ctx context.Context, bucket string) (*BucketMetadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("BucketMetadata"); err != nil {
		return nil, err
	}

	b, ok := f.buckets[bucket]
	if !ok {
		return nil, NewStorageError(CategoryNotFound, bucket, nil)
	}
	meta := b.meta
	return &meta, nil
}

func (f *Fake) ObjectMetadata(ctx context.Context, bucket, object string) (*ObjectMetadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ObjectMetadata"); err != nil {
		return nil, err
	}

	b, ok := f.buckets[bucket]
	if !ok {
		return nil, NewStorageError(CategoryNotFound, bucket, nil)
	}
	meta, ok := b.objects[object]
	if !ok {
		return nil, NewStorageError(CategoryNotFound, object, nil)
	}
	copied := *meta
	return &copied, nil
}

func (f *Fake) ObjectExists(ctx context.Context, bucket, object string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ObjectExists"); err != nil {
		return false, err
	}

	b, ok := f.buckets[bucket]
	if !ok {
		return false, NewStorageError(CategoryNotFound, bucket, nil)
	}
	_, ok = b.objects[object]
	return ok, nil
}

func (f *Fake) SignedURL(bucket, object string, expiry time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SignedURLCalls++
	if err := f.record("SignedURL"); err != nil {
		return "", err
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s?X-Goog-Expires=%d",
		bucket, object, int(expiry.Seconds())), nil
}

func (f *Fake) Rename(ctx context.Context, bucket, oldName, newName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("Rename"); err != nil {
		return err
	}

	b, ok := f.buckets[bucket]
	if !ok {
		return NewStorageError(CategoryNotFound, bucket, nil)
	}
	meta, ok := b.objects[oldName]
	if !ok {
		return NewStorageError(CategoryNotFound, oldName, nil)
	}
	renamed := *meta
	renamed.Name = newName
	b.objects[newName] = &renamed
	delete(b.objects, oldName)
	return nil
}

func (f *Fake) Copy(ctx context.Context, srcBucket, object, dstBucket, dstObject string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("Copy"); err != nil {
		return err
	}

	src, ok := f.buckets[srcBucket]
	if !ok {
		return NewStorageError(CategoryNotFound, srcBucket, nil)
	}
	meta, ok := src.objects[object]
	if !ok {
		return NewStorageError(CategoryNotFound, object, nil)
	}
	dst, ok := f.buckets[dstBucket]
	if !ok {
		return NewStorageError(CategoryNotFound, dstBucket, nil)
	}
	copied := *meta
	copied.Name = dstObject
	copied.Bucket = dstBucket
	dst.objects[dstObject] = &copied
	return nil
}

func (f *Fake) SetBucketCORS(ctx context.Context, bucket string, rules []CORSRule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("SetBucketCORS"); err != nil {
		return err
	}

	b, ok := f.buckets[bucket]
	if !ok {
		return NewStorageError(CategoryNotFound, bucket, nil)
	}
	b.cors = rules
	return nil
}

func (f *Fake) Close() error {
	return nil
}

// Ensure Fake implements the Backend interface
var _ Backend = (*Fake)(nil)
