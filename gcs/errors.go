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
	"errors"
	"io/fs"
	"net/http"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
)

// Category identifies the failure class of a storage operation.
type Category int

const (
	CategoryUnexpected Category = iota
	CategoryNotFound
	CategoryConflict
	CategoryPermissionDenied
	CategoryLocalIO
)

// String returns the category name for logging.
func (c Category) String() string {
	switch c {
	case CategoryNotFound:
		return "not_found"
	case CategoryConflict:
		return "conflict"
	case CategoryPermissionDenied:
		return "permission_denied"
	case CategoryLocalIO:
		return "local_io"
	default:
		return "unexpected"
	}
}

// StorageError is the structured error every Backend method returns.
// Resource names the bucket, object, or local path the operation failed on.
type StorageError struct {
	Category Category
	Resource string
	Cause    error
}

func (e *StorageError) Error() string {
	msg := e.Category.String() + ": " + e.Resource
	if e.Cause != nil {
		msg += " (cause: " + e.Cause.Error() + ")"
	}
	return msg
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a StorageError with an explicit category.
func NewStorageError(category Category, resource string, cause error) *StorageError {
	return &StorageError{Category: category, Resource: resource, Cause: cause}
}

// Classify wraps err in a StorageError, mapping the SDK's sentinel errors
// and googleapi status codes onto categories. The specific categories
// (NotFound, Conflict, PermissionDenied, LocalIO) are checked before
// falling back to Unexpected. A StorageError passes through unchanged so
// callers can pre-classify where they have better resource context.
func Classify(err error, resource string) error {
	if err == nil {
		return nil
	}

	var se *StorageError
	if errors.As(err, &se) {
		return err
	}

	category := CategoryUnexpected
	switch {
	case errors.Is(err, storage.ErrBucketNotExist), errors.Is(err, storage.ErrObjectNotExist):
		category = CategoryNotFound
	case errors.Is(err, fs.ErrNotExist):
		category = CategoryLocalIO
	default:
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			switch apiErr.Code {
			case http.StatusNotFound:
				category = CategoryNotFound
			case http.StatusConflict:
				category = CategoryConflict
			case http.StatusForbidden:
				category = CategoryPermissionDenied
			}
		}
	}

	return &StorageError{Category: category, Resource: resource, Cause: err}
}

// CategoryOf extracts the category from a classified error.
// A nil error has no category; unclassified errors are Unexpected.
func CategoryOf(err error) Category {
	var se *StorageError
	if errors.As(err, &se) {
		return se.Category
	}
	return CategoryUnexpected
}

// ResourceOf returns the resource identifier a classified error refers to.
func ResourceOf(err error) string {
	var se *StorageError
	if errors.As(err, &se) {
		return se.Resource
	}
	return ""
}

// Detail returns the underlying cause of a classified error, for embedding
// in user-facing messages. Falls back to the error itself.
func Detail(err error) error {
	var se *StorageError
	if errors.As(err, &se) && se.Cause != nil {
		return se.Cause
	}
	return err
}
