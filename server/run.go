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

package server

import (
	"context"
	"log"
	"net/http"

	"google.golang.org/api/option"

	"github.com/sanketbisne/gcs-mcp-server/config"
	"github.com/sanketbisne/gcs-mcp-server/gcs"
	"github.com/sanketbisne/gcs-mcp-server/tools"
)

// Run is the entry point: it loads configuration, builds the single
// authenticated storage client shared by every tool call, and serves
// until the process is stopped.
func Run() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Build client options
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	} else if cfg.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}
	// Custom endpoint (useful for emulator)
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	client, err := gcs.NewClient(context.Background(), cfg.ProjectID, opts...)
	if err != nil {
		log.Fatalf("❌ Failed to create storage client: %v", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			log.Printf("⚠️  Error closing storage client: %v", err)
		}
	}()

	dispatcher := tools.NewCatalog(client, tools.CatalogOptions{
		DefaultLocation:        cfg.DefaultLocation,
		SignedURLExpiryMinutes: cfg.SignedURLExpiryMinutes,
	})
	log.Printf("✅ Registered %d tools", dispatcher.Count())

	srv := NewServer(dispatcher)
	log.Printf("🚀 GCS MCP Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, srv.Handler()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
