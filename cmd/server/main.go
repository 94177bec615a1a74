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

// Package main is the entry point for the GCS MCP Server.
//
// The server exposes Google Cloud Storage management as an MCP tool
// catalog over HTTP: bucket and object CRUD, metadata, signed URLs and
// CORS configuration.
//
// Usage:
//
//	./server
//
// Environment Variables:
//
//	PORT - HTTP server port (default: 8080)
//	GOOGLE_CLOUD_PROJECT - GCP project ID
//	GOOGLE_APPLICATION_CREDENTIALS - path to a service account key file
//	STORAGE_EMULATOR_HOST - custom storage endpoint (emulator support)
//	GCS_MCP_CONFIG_FILE - optional YAML config file path
//	GCS_DEFAULT_LOCATION - default bucket location (default: US)
//	GCS_SIGNED_URL_EXPIRY_MINUTES - default signed URL validity (default: 15)
package main

import (
	"github.com/sanketbisne/gcs-mcp-server/server"
)

func main() {
	server.Run()
}
