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
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the full server configuration. Values come from an
// optional YAML file with environment variable overrides layered on top.
type Config struct {
	Port                   string `yaml:"port"`
	ProjectID              string `yaml:"project_id"`
	CredentialsFile        string `yaml:"credentials_file"`
	CredentialsJSON        string `yaml:"credentials_json"`
	Endpoint               string `yaml:"endpoint"`
	DefaultLocation        string `yaml:"default_location"`
	SignedURLExpiryMinutes int    `yaml:"signed_url_expiry_minutes"`
}

// defaultPaths are tried in order when GCS_MCP_CONFIG_FILE is unset.
var defaultPaths = []string{
	"gcs-mcp-server.yaml",
	"/etc/gcs-mcp-server/config.yaml",
}

// Load builds the configuration: defaults, then the YAML file if one is
// found, then environment variables. A missing config file is not an
// error; a malformed one is.
func Load() (*Config, error) {
	cfg := &Config{
		Port:                   "8080",
		DefaultLocation:        "US",
		SignedURLExpiryMinutes: 15,
	}

	path := os.Getenv("GCS_MCP_CONFIG_FILE")
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	} else {
		for _, candidate := range defaultPaths {
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			if err := cfg.loadFile(candidate); err != nil {
				return nil, err
			}
			break
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// loadFile reads and parses a YAML config file, expanding environment
// variable references in the content first.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expanded := expandEnvVars(string(data))
	if err := yaml.Unmarshal([]byte(expanded), c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// applyEnv layers environment variable overrides on top of file values.
func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("GOOGLE_CLOUD_PROJECT"); v != "" {
		c.ProjectID = v
	}
	if v := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); v != "" {
		c.CredentialsFile = v
	}
	if v := os.Getenv("STORAGE_EMULATOR_HOST"); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv("GCS_DEFAULT_LOCATION"); v != "" {
		c.DefaultLocation = v
	}
	if v := os.Getenv("GCS_SIGNED_URL_EXPIRY_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.SignedURLExpiryMinutes = n
		}
	}
}

// envVarRegex matches ${VAR_NAME} or $VAR_NAME patterns
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// expandEnvVars expands environment variable references in the string.
// Supports ${VAR_NAME}, $VAR_NAME and ${VAR_NAME:-default} syntax;
// undefined variables without a default expand to the empty string.
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		defaultVal := ""
		if idx := strings.Index(varName, ":-"); idx != -1 {
			defaultVal = varName[idx+2:]
			varName = varName[:idx]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}
		return defaultVal
	})
}
