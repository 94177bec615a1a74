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
	"time"
)

// BucketMetadata is the subset of bucket attributes surfaced to callers.
// Created/Updated are zero when the backend does not report them.
type BucketMetadata struct {
	ID                string
	Name              string
	Location          string
	StorageClass      string
	Created           time.Time
	Updated           time.Time
	VersioningEnabled bool
}

// ObjectMetadata is the subset of object attributes surfaced to callers.
// CRC32C and MD5 use the base64 encoding of the JSON API.
type ObjectMetadata struct {
	Name         string
	Bucket       string
	Size         int64
	ContentType  string
	Updated      time.Time
	StorageClass string
	CRC32C       string
	MD5          string
}

// CORSRule is one cross-origin access rule on a bucket.
type CORSRule struct {
	Origins         []string
	Methods         []string
	ResponseHeaders []string
	MaxAgeSeconds   int
}

// Backend defines every storage action the tool catalog performs.
// Implementations return StorageError-classified failures (see Classify)
// and must be safe for concurrent use; each call is independent and
// stateless. SignedURL signs locally and performs no network call.
type Backend interface {
	ListBuckets(ctx context.Context) ([]string, error)
	CreateBucket(ctx context.Context, name, location string) error
	// DeleteBucket with force empties the bucket before deleting it.
	DeleteBucket(ctx context.Context, name string, force bool) error

	ListObjects(ctx context.Context, bucket string) ([]string, error)
	Upload(ctx context.Context, bucket, srcPath, object string) error
	Download(ctx context.Context, bucket, object, dstPath string) error
	DeleteObject(ctx context.Context, bucket, object string) error

	BucketMetadata(ctx context.Context, bucket string) (*BucketMetadata, error)
	ObjectMetadata(ctx context.Context, bucket, object string) (*ObjectMetadata, error)
	ObjectExists(ctx context.Context, bucket, object string) (bool, error)

	SignedURL(bucket, object string, expiry time.Duration) (string, error)
	// Rename copies the object to the new name and deletes the original,
	// matching the SDK's rename semantics.
	Rename(ctx context.Context, bucket, oldName, newName string) error
	Copy(ctx context.Context, srcBucket, object, dstBucket, dstObject string) error
	SetBucketCORS(ctx context.Context, bucket string, rules []CORSRule) error

	Close() error
}
