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

/*
Package gcs provides the Google Cloud Storage backend for the MCP tool
server.

# Overview

The package defines the Backend interface covering every storage action
the tool catalog needs (bucket CRUD, object CRUD, metadata, signed URLs,
CORS), plus two implementations:

  - Client: the production implementation on cloud.google.com/go/storage.
    One authenticated client is constructed at startup and shared across
    concurrent tool calls; no per-call re-authentication happens.
  - Fake: an in-memory implementation for tests, with scriptable
    per-method failures and recorded calls.

# Error classification

Backend methods never return raw SDK errors. Every failure is wrapped in
a StorageError carrying a Category (NotFound, Conflict, PermissionDenied,
LocalIO, Unexpected) and the identifier of the offending resource:

	attrs, err := backend.BucketMetadata(ctx, "my-bucket")
	if gcs.CategoryOf(err) == gcs.CategoryNotFound {
	    // render a not-found message naming gcs.ResourceOf(err)
	}

The tool layer renders these structured errors into the user-facing
message strings; this package never produces display text.
*/
package gcs
