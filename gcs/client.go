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
	"encoding/base64"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Client implements Backend on the Google Cloud Storage SDK.
type Client struct {
	client    *storage.Client
	projectID string
}

// NewClient creates the shared storage client. Credentials resolve through
// the supplied options or Application Default Credentials; an emulator
// endpoint can be injected via option.WithEndpoint.
func NewClient(ctx context.Context, projectID string, opts ...option.ClientOption) (*Client, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, Classify(err, projectID)
	}
	return &Client{client: client, projectID: projectID}, nil
}

// Close releases the underlying SDK client.
func (c *Client) Close() error {
	return c.client.Close()
}

// ListBuckets returns the names of all buckets in the project.
func (c *Client) ListBuckets(ctx context.Context) ([]string, error) {
	it := c.client.Buckets(ctx, c.projectID)

	var names []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, Classify(err, c.projectID)
		}
		names = append(names, attrs.Name)
	}
	return names, nil
}

// CreateBucket creates a bucket in the given location.
func (c *Client) CreateBucket(ctx context.Context, name, location string) error {
	attrs := &storage.BucketAttrs{Location: location}
	if err := c.client.Bucket(name).Create(ctx, c.projectID, attrs); err != nil {
		return Classify(err, name)
	}
	return nil
}

// DeleteBucket deletes a bucket. With force set, all objects in the bucket
// are deleted first; GCS refuses to delete non-empty buckets.
func (c *Client) DeleteBucket(ctx context.Context, name string, force bool) error {
	bucket := c.client.Bucket(name)

	if force {
		it := bucket.Objects(ctx, nil)
		for {
			attrs, err := it.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return Classify(err, name)
			}
			if err := bucket.Object(attrs.Name).Delete(ctx); err != nil {
				return Classify(err, attrs.Name)
			}
		}
	}

	if err := bucket.Delete(ctx); err != nil {
		return Classify(err, name)
	}
	return nil
}

// ListObjects returns the names of all objects in a bucket.
func (c *Client) ListObjects(ctx context.Context, bucket string) ([]string, error) {
	it := c.client.Bucket(bucket).Objects(ctx, nil)

	var names []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, Classify(err, bucket)
		}
		names = append(names, attrs.Name)
	}
	return names, nil
}

// Upload streams a local file into a bucket object. A missing local file
// classifies as LocalIO with the source path as the resource.
func (c *Client) Upload(ctx context.Context, bucket, srcPath, object string) error {
	f, err := os.Open(srcPath)
	if err != nil {
		return Classify(err, srcPath)
	}
	defer func() {
		_ = f.Close()
	}()

	w := c.client.Bucket(bucket).Object(object).NewWriter(ctx)
	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		return Classify(err, object)
	}
	if err := w.Close(); err != nil {
		return Classify(err, bucket)
	}
	return nil
}

// Download streams a bucket object into a local file.
func (c *Client) Download(ctx context.Context, bucket, object, dstPath string) error {
	r, err := c.client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return Classify(err, object)
	}
	defer func() {
		_ = r.Close()
	}()

	f, err := os.Create(dstPath)
	if err != nil {
		return NewStorageError(CategoryLocalIO, dstPath, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if _, err := io.Copy(f, r); err != nil {
		return Classify(err, object)
	}
	return nil
}

// DeleteObject removes a single object.
func (c *Client) DeleteObject(ctx context.Context, bucket, object string) error {
	if err := c.client.Bucket(bucket).Object(object).Delete(ctx); err != nil {
		return Classify(err, object)
	}
	return nil
}

// BucketMetadata fetches bucket attributes.
func (c *Client) BucketMetadata(ctx context.Context, bucket string) (*BucketMetadata, error) {
	attrs, err := c.client.Bucket(bucket).Attrs(ctx)
	if err != nil {
		return nil, Classify(err, bucket)
	}

	return &BucketMetadata{
		ID:                attrs.Name, // the JSON API uses the name as the bucket id
		Name:              attrs.Name,
		Location:          attrs.Location,
		StorageClass:      attrs.StorageClass,
		Created:           attrs.Created,
		Updated:           attrs.Updated,
		VersioningEnabled: attrs.VersioningEnabled,
	}, nil
}

// ObjectMetadata fetches object attributes. A missing object is
// distinguished from a missing bucket: the returned NotFound error names
// the bucket when the bucket itself is absent, the object otherwise.
func (c *Client) ObjectMetadata(ctx context.Context, bucket, object string) (*ObjectMetadata, error) {
	attrs, err := c.client.Bucket(bucket).Object(object).Attrs(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			if _, berr := c.client.Bucket(bucket).Attrs(ctx); berr != nil {
				return nil, Classify(berr, bucket)
			}
			return nil, NewStorageError(CategoryNotFound, object, err)
		}
		return nil, Classify(err, object)
	}

	return &ObjectMetadata{
		Name:         attrs.Name,
		Bucket:       attrs.Bucket,
		Size:         attrs.Size,
		ContentType:  attrs.ContentType,
		Updated:      attrs.Updated,
		StorageClass: attrs.StorageClass,
		CRC32C:       encodeCRC32C(attrs.CRC32C),
		MD5:          base64.StdEncoding.EncodeToString(attrs.MD5),
	}, nil
}

// ObjectExists reports whether an object is present. A missing bucket is
// an error, not a false result.
func (c *Client) ObjectExists(ctx context.Context, bucket, object string) (bool, error) {
	_, err := c.client.Bucket(bucket).Object(object).Attrs(ctx)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, storage.ErrObjectNotExist) {
		if _, berr := c.client.Bucket(bucket).Attrs(ctx); berr != nil {
			return false, Classify(berr, bucket)
		}
		return false, nil
	}
	return false, Classify(err, object)
}

// SignedURL generates a time-limited GET URL for an object. Signing is
// local; callers must verify the object exists first if they need a
// not-found failure instead of a dead link.
func (c *Client) SignedURL(bucket, object string, expiry time.Duration) (string, error) {
	opts := &storage.SignedURLOptions{
		Method:  "GET",
		Expires: time.Now().Add(expiry),
	}

	url, err := c.client.Bucket(bucket).SignedURL(object, opts)
	if err != nil {
		return "", Classify(err, object)
	}
	return url, nil
}

// Rename copies an object to a new name in the same bucket, then deletes
// the original.
func (c *Client) Rename(ctx context.Context, bucket, oldName, newName string) error {
	b := c.client.Bucket(bucket)
	src := b.Object(oldName)
	dst := b.Object(newName)

	if _, err := dst.CopierFrom(src).Run(ctx); err != nil {
		return Classify(err, oldName)
	}
	if err := src.Delete(ctx); err != nil {
		return Classify(err, oldName)
	}
	return nil
}

// Copy copies an object, possibly across buckets.
func (c *Client) Copy(ctx context.Context, srcBucket, object, dstBucket, dstObject string) error {
	src := c.client.Bucket(srcBucket).Object(object)
	dst := c.client.Bucket(dstBucket).Object(dstObject)

	if _, err := dst.CopierFrom(src).Run(ctx); err != nil {
		return Classify(err, object)
	}
	return nil
}

// SetBucketCORS replaces the bucket's CORS configuration.
func (c *Client) SetBucketCORS(ctx context.Context, bucket string, rules []CORSRule) error {
	cors := make([]storage.CORS, 0, len(rules))
	for _, rule := range rules {
		cors = append(cors, storage.CORS{
			Origins:         rule.Origins,
			Methods:         rule.Methods,
			ResponseHeaders: rule.ResponseHeaders,
			MaxAge:          time.Duration(rule.MaxAgeSeconds) * time.Second,
		})
	}

	update := storage.BucketAttrsToUpdate{CORS: cors}
	if _, err := c.client.Bucket(bucket).Update(ctx, update); err != nil {
		return Classify(err, bucket)
	}
	return nil
}

// encodeCRC32C renders the checksum the way the JSON API does:
// base64 of the big-endian bytes.
func encodeCRC32C(sum uint32) string {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], sum)
	return base64.StdEncoding.EncodeToString(buf[:])
}

// Ensure Client implements the Backend interface
var _ Backend = (*Client)(nil)
