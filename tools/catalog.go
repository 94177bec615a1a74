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

package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/sanketbisne/gcs-mcp-server/gcs"
)

// CatalogOptions tunes catalog defaults. Zero values fall back to the
// US multi-region and a 15 minute signed URL expiry.
type CatalogOptions struct {
	DefaultLocation        string
	SignedURLExpiryMinutes int
}

type catalog struct {
	backend         gcs.Backend
	defaultLocation string
	defaultExpiry   int
}

// NewCatalog builds a dispatcher with the full GCS tool catalog
// registered against the given backend.
func NewCatalog(backend gcs.Backend, opts CatalogOptions) *Dispatcher {
	c := &catalog{
		backend:         backend,
		defaultLocation: opts.DefaultLocation,
		defaultExpiry:   opts.SignedURLExpiryMinutes,
	}
	if c.defaultLocation == "" {
		c.defaultLocation = "US"
	}
	if c.defaultExpiry <= 0 {
		c.defaultExpiry = 15
	}

	d := NewDispatcher()
	for _, t := range []*Tool{
		c.greet(),
		c.listBuckets(),
		c.createBucket(),
		c.deleteBucket(),
		c.listObjects(),
		c.uploadObject(),
		c.downloadObject(),
		c.deleteObject(),
		c.getBucketMetadata(),
		c.getObjectMetadata(),
		c.generateSignedURL(),
		c.renameObject(),
		c.copyObject(),
		c.setBucketCORS(),
		c.healthCheck(),
	} {
		if err := d.Register(t); err != nil {
			panic(fmt.Sprintf("catalog: %v", err))
		}
	}
	return d
}

func (c *catalog) greet() *Tool {
	return &Tool{
		Name:        "greet",
		Description: "Returns a friendly greeting.",
		InputSchema: objectSchema(map[string]interface{}{
			"name": stringProp("Name to greet"),
		}, []string{"name"}),
		Handler: func(ctx context.Context, args map[string]interface{}) interface{} {
			name := stringArg(args, "name", "there")
			return fmt.Sprintf("Hello %s! It's a pleasure to connect from the GCS MCP Server.", name)
		},
	}
}

func (c *catalog) listBuckets() *Tool {
	return &Tool{
		Name:        "list_buckets",
		Description: "Lists all GCS buckets in the project.",
		InputSchema: objectSchema(nil, nil),
		Handler: func(ctx context.Context, args map[string]interface{}) interface{} {
			names, err := c.backend.ListBuckets(ctx)
			if err != nil {
				switch gcs.CategoryOf(err) {
				case gcs.CategoryPermissionDenied:
					return []string{fmt.Sprintf("❌ Error: Permission denied to list buckets. Details: %v", gcs.Detail(err))}
				default:
					return []string{fmt.Sprintf("❌ Unexpected error: %v", gcs.Detail(err))}
				}
			}
			if names == nil {
				names = []string{}
			}
			return names
		},
	}
}

func (c *catalog) createBucket() *Tool {
	return &Tool{
		Name:        "create_bucket",
		Description: "Creates a new GCS bucket. Bucket names must be globally unique.",
		InputSchema: objectSchema(map[string]interface{}{
			"bucket_name": stringProp("Globally unique bucket name"),
			"location":    stringProp("Bucket location (default US)"),
		}, []string{"bucket_name"}),
		Handler: func(ctx context.Context, args map[string]interface{}) interface{} {
			bucket := stringArg(args, "bucket_name", "")
			if bucket == "" {
				return requiredArg("bucket_name")
			}
			location := stringArg(args, "location", c.defaultLocation)

			if err := c.backend.CreateBucket(ctx, bucket, location); err != nil {
				switch gcs.CategoryOf(err) {
				case gcs.CategoryConflict:
					return fmt.Sprintf("⚠️ Error: Bucket '%s' already exists.", bucket)
				case gcs.CategoryPermissionDenied:
					return fmt.Sprintf("❌ Error: Permission denied to create bucket. Details: %v", gcs.Detail(err))
				default:
					return fmt.Sprintf("❌ Unexpected error: %v", gcs.Detail(err))
				}
			}
			return fmt.Sprintf("✅ Bucket '%s' created successfully in '%s'.", bucket, location)
		},
	}
}

func (c *catalog) deleteBucket() *Tool {
	return &Tool{
		Name:        "delete_bucket",
		Description: "Deletes a GCS bucket, including any objects it contains.",
		InputSchema: objectSchema(map[string]interface{}{
			"bucket_name": stringProp("Bucket to delete"),
		}, []string{"bucket_name"}),
		Handler: func(ctx context.Context, args map[string]interface{}) interface{} {
			bucket := stringArg(args, "bucket_name", "")
			if bucket == "" {
				return requiredArg("bucket_name")
			}

			if err := c.backend.DeleteBucket(ctx, bucket, true); err != nil {
				switch gcs.CategoryOf(err) {
				case gcs.CategoryNotFound:
					return fmt.Sprintf("⚠️ Error: Bucket '%s' not found.", bucket)
				case gcs.CategoryPermissionDenied:
					return fmt.Sprintf("❌ Error: Permission denied to delete bucket. Details: %v", gcs.Detail(err))
				default:
					return fmt.Sprintf("❌ Unexpected error: %v", gcs.Detail(err))
				}
			}
			return fmt.Sprintf("🗑️ Bucket '%s' deleted successfully.", bucket)
		},
	}
}

func (c *catalog) listObjects() *Tool {
	return &Tool{
		Name:        "list_objects",
		Description: "Lists all objects in a specified GCS bucket.",
		InputSchema: objectSchema(map[string]interface{}{
			"bucket_name": stringProp("Bucket to list"),
		}, []string{"bucket_name"}),
		Handler: func(ctx context.Context, args map[string]interface{}) interface{} {
			bucket := stringArg(args, "bucket_name", "")
			if bucket == "" {
				return []string{requiredArg("bucket_name")}
			}

			names, err := c.backend.ListObjects(ctx, bucket)
			if err != nil {
				switch gcs.CategoryOf(err) {
				case gcs.CategoryNotFound:
					return []string{fmt.Sprintf("⚠️ Error: Bucket '%s' not found.", bucket)}
				default:
					return []string{fmt.Sprintf("❌ Unexpected error: %v", gcs.Detail(err))}
				}
			}
			if names == nil {
				names = []string{}
			}
			return names
		},
	}
}

func (c *catalog) uploadObject() *Tool {
	return &Tool{
		Name:        "upload_object",
		Description: "Uploads a local file to a GCS bucket.",
		InputSchema: objectSchema(map[string]interface{}{
			"bucket_name":             stringProp("Destination bucket"),
			"source_file_name":        stringProp("Local file path to upload"),
			"destination_object_name": stringProp("Object name in the bucket"),
		}, []string{"bucket_name", "source_file_name", "destination_object_name"}),
		Handler: func(ctx context.Context, args map[string]interface{}) interface{} {
			bucket := stringArg(args, "bucket_name", "")
			source := stringArg(args, "source_file_name", "")
			object := stringArg(args, "destination_object_name", "")
			if bucket == "" || source == "" || object == "" {
				return requiredArg("bucket_name, source_file_name and destination_object_name")
			}

			if err := c.backend.Upload(ctx, bucket, source, object); err != nil {
				switch gcs.CategoryOf(err) {
				case gcs.CategoryLocalIO:
					return fmt.Sprintf("⚠️ Error: Local file '%s' not found.", source)
				case gcs.CategoryNotFound:
					return fmt.Sprintf("⚠️ Error: Bucket '%s' not found.", bucket)
				case gcs.CategoryPermissionDenied:
					return fmt.Sprintf("❌ Error: Permission denied to upload object. Details: %v", gcs.Detail(err))
				default:
					return fmt.Sprintf("❌ Unexpected error: %v", gcs.Detail(err))
				}
			}
			return fmt.Sprintf("📤 File '%s' uploaded to '%s' in bucket '%s'.", source, object, bucket)
		},
	}
}

func (c *catalog) downloadObject() *Tool {
	return &Tool{
		Name:        "download_object",
		Description: "Downloads an object from a GCS bucket to a local file.",
		InputSchema: objectSchema(map[string]interface{}{
			"bucket_name":           stringProp("Source bucket"),
			"object_name":           stringProp("Object to download"),
			"destination_file_name": stringProp("Local file path to write"),
		}, []string{"bucket_name", "object_name", "destination_file_name"}),
		Handler: func(ctx context.Context, args map[string]interface{}) interface{} {
			bucket := stringArg(args, "bucket_name", "")
			object := stringArg(args, "object_name", "")
			dest := stringArg(args, "destination_file_name", "")
			if bucket == "" || object == "" || dest == "" {
				return requiredArg("bucket_name, object_name and destination_file_name")
			}

			if err := c.backend.Download(ctx, bucket, object, dest); err != nil {
				switch gcs.CategoryOf(err) {
				case gcs.CategoryNotFound:
					return fmt.Sprintf("⚠️ Error: Bucket '%s' or object '%s' not found.", bucket, object)
				case gcs.CategoryLocalIO:
					return fmt.Sprintf("⚠️ Error: Cannot write local file '%s'. Details: %v", dest, gcs.Detail(err))
				default:
					return fmt.Sprintf("❌ Unexpected error: %v", gcs.Detail(err))
				}
			}
			return fmt.Sprintf("📥 Object '%s' downloaded to '%s'.", object, dest)
		},
	}
}

func (c *catalog) deleteObject() *Tool {
	return &Tool{
		Name:        "delete_object",
		Description: "Deletes an object from a GCS bucket.",
		InputSchema: objectSchema(map[string]interface{}{
			"bucket_name": stringProp("Bucket holding the object"),
			"object_name": stringProp("Object to delete"),
		}, []string{"bucket_name", "object_name"}),
		Handler: func(ctx context.Context, args map[string]interface{}) interface{} {
			bucket := stringArg(args, "bucket_name", "")
			object := stringArg(args, "object_name", "")
			if bucket == "" || object == "" {
				return requiredArg("bucket_name and object_name")
			}

			if err := c.backend.DeleteObject(ctx, bucket, object); err != nil {
				switch gcs.CategoryOf(err) {
				case gcs.CategoryNotFound:
					return fmt.Sprintf("⚠️ Error: Bucket '%s' or object '%s' not found.", bucket, object)
				case gcs.CategoryPermissionDenied:
					return fmt.Sprintf("❌ Error: Permission denied to delete object. Details: %v", gcs.Detail(err))
				default:
					return fmt.Sprintf("❌ Unexpected error: %v", gcs.Detail(err))
				}
			}
			return fmt.Sprintf("🗑️ Object '%s' deleted from bucket '%s'.", object, bucket)
		},
	}
}

func (c *catalog) getBucketMetadata() *Tool {
	return &Tool{
		Name:        "get_bucket_metadata",
		Description: "Retrieves metadata for a GCS bucket.",
		InputSchema: objectSchema(map[string]interface{}{
			"bucket_name": stringProp("Bucket to inspect"),
		}, []string{"bucket_name"}),
		Handler: func(ctx context.Context, args map[string]interface{}) interface{} {
			bucket := stringArg(args, "bucket_name", "")
			if bucket == "" {
				return errorMap(requiredArg("bucket_name"))
			}

			meta, err := c.backend.BucketMetadata(ctx, bucket)
			if err != nil {
				switch gcs.CategoryOf(err) {
				case gcs.CategoryNotFound:
					return errorMap(fmt.Sprintf("⚠️ Error: Bucket '%s' not found.", bucket))
				default:
					return errorMap(fmt.Sprintf("❌ Unexpected error: %v", gcs.Detail(err)))
				}
			}

			return map[string]interface{}{
				"id":                 meta.ID,
				"name":               meta.Name,
				"location":           meta.Location,
				"storage_class":      meta.StorageClass,
				"created":            isoOrNil(meta.Created),
				"updated":            isoOrNil(meta.Updated),
				"versioning_enabled": meta.VersioningEnabled,
			}
		},
	}
}

func (c *catalog) getObjectMetadata() *Tool {
	return &Tool{
		Name:        "get_object_metadata",
		Description: "Retrieves metadata for a specific object.",
		InputSchema: objectSchema(map[string]interface{}{
			"bucket_name": stringProp("Bucket holding the object"),
			"object_name": stringProp("Object to inspect"),
		}, []string{"bucket_name", "object_name"}),
		Handler: func(ctx context.Context, args map[string]interface{}) interface{} {
			bucket := stringArg(args, "bucket_name", "")
			object := stringArg(args, "object_name", "")
			if bucket == "" || object == "" {
				return errorMap(requiredArg("bucket_name and object_name"))
			}

			meta, err := c.backend.ObjectMetadata(ctx, bucket, object)
			if err != nil {
				switch gcs.CategoryOf(err) {
				case gcs.CategoryNotFound:
					// a missing bucket and a missing object carry distinct wording
					if gcs.ResourceOf(err) == bucket {
						return errorMap(fmt.Sprintf("⚠️ Error: Bucket '%s' not found.", bucket))
					}
					return errorMap(fmt.Sprintf("⚠️ Error: Object '%s' not found in '%s'.", object, bucket))
				default:
					return errorMap(fmt.Sprintf("❌ Unexpected error: %v", gcs.Detail(err)))
				}
			}

			return map[string]interface{}{
				"name":          meta.Name,
				"bucket":        meta.Bucket,
				"size":          meta.Size,
				"content_type":  meta.ContentType,
				"updated":       isoOrNil(meta.Updated),
				"storage_class": meta.StorageClass,
				"crc32c":        meta.CRC32C,
				"md5_hash":      meta.MD5,
			}
		},
	}
}

func (c *catalog) generateSignedURL() *Tool {
	return &Tool{
		Name:        "generate_signed_url",
		Description: "Generates a signed URL for temporary object access.",
		InputSchema: objectSchema(map[string]interface{}{
			"bucket_name":        stringProp("Bucket holding the object"),
			"object_name":        stringProp("Object to sign a URL for"),
			"expiration_minutes": intProp("URL validity in minutes (default 15)"),
		}, []string{"bucket_name", "object_name"}),
		Handler: func(ctx context.Context, args map[string]interface{}) interface{} {
			bucket := stringArg(args, "bucket_name", "")
			object := stringArg(args, "object_name", "")
			if bucket == "" || object == "" {
				return requiredArg("bucket_name and object_name")
			}
			minutes := intArg(args, "expiration_minutes", c.defaultExpiry)
			if minutes <= 0 {
				minutes = c.defaultExpiry
			}

			// existence precheck: never call the signer for a missing object
			exists, err := c.backend.ObjectExists(ctx, bucket, object)
			if err != nil {
				switch gcs.CategoryOf(err) {
				case gcs.CategoryNotFound:
					return fmt.Sprintf("⚠️ Error: Bucket '%s' not found.", bucket)
				default:
					return fmt.Sprintf("❌ Unexpected error: %v", gcs.Detail(err))
				}
			}
			if !exists {
				return fmt.Sprintf("⚠️ Error: Object '%s' not found.", object)
			}

			url, err := c.backend.SignedURL(bucket, object, time.Duration(minutes)*time.Minute)
			if err != nil {
				return fmt.Sprintf("❌ Unexpected error: %v", gcs.Detail(err))
			}
			return fmt.Sprintf("🔗 Signed URL (valid %d min): %s", minutes, url)
		},
	}
}

func (c *catalog) renameObject() *Tool {
	return &Tool{
		Name:        "rename_object",
		Description: "Renames an object within a bucket.",
		InputSchema: objectSchema(map[string]interface{}{
			"bucket_name": stringProp("Bucket holding the object"),
			"object_name": stringProp("Current object name"),
			"new_name":    stringProp("New object name"),
		}, []string{"bucket_name", "object_name", "new_name"}),
		Handler: func(ctx context.Context, args map[string]interface{}) interface{} {
			bucket := stringArg(args, "bucket_name", "")
			object := stringArg(args, "object_name", "")
			newName := stringArg(args, "new_name", "")
			if bucket == "" || object == "" || newName == "" {
				return requiredArg("bucket_name, object_name and new_name")
			}

			// existence precheck: fail before touching the destination
			exists, err := c.backend.ObjectExists(ctx, bucket, object)
			if err != nil {
				switch gcs.CategoryOf(err) {
				case gcs.CategoryNotFound:
					return fmt.Sprintf("⚠️ Error: Bucket '%s' not found.", bucket)
				default:
					return fmt.Sprintf("❌ Unexpected error: %v", gcs.Detail(err))
				}
			}
			if !exists {
				return fmt.Sprintf("⚠️ Error: Object '%s' not found.", object)
			}

			if err := c.backend.Rename(ctx, bucket, object, newName); err != nil {
				switch gcs.CategoryOf(err) {
				case gcs.CategoryPermissionDenied:
					return fmt.Sprintf("❌ Error: Permission denied to rename object. Details: %v", gcs.Detail(err))
				default:
					return fmt.Sprintf("❌ Unexpected error: %v", gcs.Detail(err))
				}
			}
			return fmt.Sprintf("✏️ Object renamed from '%s' → '%s'.", object, newName)
		},
	}
}

func (c *catalog) copyObject() *Tool {
	return &Tool{
		Name:        "copy_object",
		Description: "Copies an object from one bucket to another.",
		InputSchema: objectSchema(map[string]interface{}{
			"source_bucket_name":      stringProp("Bucket holding the source object"),
			"object_name":             stringProp("Object to copy"),
			"destination_bucket_name": stringProp("Bucket to copy into"),
			"destination_object_name": stringProp("Name of the copy"),
		}, []string{"source_bucket_name", "object_name", "destination_bucket_name", "destination_object_name"}),
		Handler: func(ctx context.Context, args map[string]interface{}) interface{} {
			srcBucket := stringArg(args, "source_bucket_name", "")
			object := stringArg(args, "object_name", "")
			dstBucket := stringArg(args, "destination_bucket_name", "")
			dstObject := stringArg(args, "destination_object_name", "")
			if srcBucket == "" || object == "" || dstBucket == "" || dstObject == "" {
				return requiredArg("source_bucket_name, object_name, destination_bucket_name and destination_object_name")
			}

			// existence precheck: fail before touching the destination
			exists, err := c.backend.ObjectExists(ctx, srcBucket, object)
			if err != nil {
				switch gcs.CategoryOf(err) {
				case gcs.CategoryNotFound:
					return fmt.Sprintf("⚠️ Error: Bucket '%s' not found.", srcBucket)
				default:
					return fmt.Sprintf("❌ Unexpected error: %v", gcs.Detail(err))
				}
			}
			if !exists {
				return fmt.Sprintf("⚠️ Error: Source object '%s' not found.", object)
			}

			if err := c.backend.Copy(ctx, srcBucket, object, dstBucket, dstObject); err != nil {
				switch gcs.CategoryOf(err) {
				case gcs.CategoryNotFound:
					return fmt.Sprintf("⚠️ Error: Bucket '%s' not found.", dstBucket)
				case gcs.CategoryPermissionDenied:
					return fmt.Sprintf("❌ Error: Permission denied to copy object. Details: %v", gcs.Detail(err))
				default:
					return fmt.Sprintf("❌ Unexpected error: %v", gcs.Detail(err))
				}
			}
			return fmt.Sprintf("📦 Object '%s' copied → '%s' in '%s'.", object, dstObject, dstBucket)
		},
	}
}

func (c *catalog) setBucketCORS() *Tool {
	return &Tool{
		Name:        "set_bucket_cors",
		Description: "Sets the CORS configuration for a bucket.",
		InputSchema: objectSchema(map[string]interface{}{
			"bucket_name": stringProp("Bucket to configure"),
			"cors_rules": map[string]interface{}{
				"type":        "array",
				"description": "List of CORS rule maps (origin, method, responseHeader, maxAgeSeconds)",
				"items":       map[string]interface{}{"type": "object"},
			},
		}, []string{"bucket_name", "cors_rules"}),
		Handler: func(ctx context.Context, args map[string]interface{}) interface{} {
			bucket := stringArg(args, "bucket_name", "")
			if bucket == "" {
				return requiredArg("bucket_name")
			}

			rules, err := corsRulesArg(args, "cors_rules")
			if err != nil {
				return fmt.Sprintf("❌ Unexpected error: %v", err)
			}
			if err := c.backend.SetBucketCORS(ctx, bucket, rules); err != nil {
				return fmt.Sprintf("❌ Unexpected error: %v", gcs.Detail(err))
			}
			return fmt.Sprintf("🌐 CORS config updated for '%s'.", bucket)
		},
	}
}

func (c *catalog) healthCheck() *Tool {
	return &Tool{
		Name:        "health_check",
		Description: "Health check endpoint.",
		InputSchema: objectSchema(nil, nil),
		Handler: func(ctx context.Context, args map[string]interface{}) interface{} {
			// deliberately backend-independent
			return "✅ Server is up and running!"
		},
	}
}

func requiredArg(name string) string {
	return fmt.Sprintf("⚠️ Error: %s required.", name)
}

func errorMap(msg string) map[string]interface{} {
	return map[string]interface{}{"error": msg}
}

func isoOrNil(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func objectSchema(props map[string]interface{}, required []string) map[string]interface{} {
	if props == nil {
		props = map[string]interface{}{}
	}
	schema := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringProp(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": desc}
}

func intProp(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "description": desc}
}
