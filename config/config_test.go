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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GCS_MCP_CONFIG_FILE", "")
	t.Setenv("PORT", "")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "")
	t.Setenv("GCS_DEFAULT_LOCATION", "")
	t.Setenv("GCS_SIGNED_URL_EXPIRY_MINUTES", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "US", cfg.DefaultLocation)
	assert.Equal(t, 15, cfg.SignedURLExpiryMinutes)
	assert.Empty(t, cfg.ProjectID)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
port: "9090"
project_id: demo-project
default_location: EUROPE-WEST1
signed_url_expiry_minutes: 30
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("GCS_MCP_CONFIG_FILE", path)
	t.Setenv("PORT", "")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "")
	t.Setenv("GCS_DEFAULT_LOCATION", "")
	t.Setenv("GCS_SIGNED_URL_EXPIRY_MINUTES", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "demo-project", cfg.ProjectID)
	assert.Equal(t, "EUROPE-WEST1", cfg.DefaultLocation)
	assert.Equal(t, 30, cfg.SignedURLExpiryMinutes)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`port: "9090"`), 0o644))
	t.Setenv("GCS_MCP_CONFIG_FILE", path)
	t.Setenv("PORT", "7070")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "env-project")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "env-project", cfg.ProjectID)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [not: closed"), 0o644))
	t.Setenv("GCS_MCP_CONFIG_FILE", path)

	_, err := Load()
	assert.Error(t, err)
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_PROJECT", "expanded-project")
	t.Setenv("TEST_UNSET", "")

	assert.Equal(t, "expanded-project", expandEnvVars("${TEST_PROJECT}"))
	assert.Equal(t, "expanded-project", expandEnvVars("$TEST_PROJECT"))
	assert.Equal(t, "fallback", expandEnvVars("${TEST_UNSET:-fallback}"))
	assert.Equal(t, "", expandEnvVars("${TEST_UNSET}"))
	assert.Equal(t, "plain text", expandEnvVars("plain text"))
}

func TestExpiryMustBePositive(t *testing.T) {
	t.Setenv("GCS_MCP_CONFIG_FILE", "")
	t.Setenv("GCS_SIGNED_URL_EXPIRY_MINUTES", "-5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.SignedURLExpiryMinutes)
}
