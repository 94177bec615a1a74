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
	"fmt"

	"github.com/sanketbisne/gcs-mcp-server/gcs"
)

func stringArg(args map[string]interface{}, key, defaultValue string) string {
	if args == nil {
		return defaultValue
	}
	if v, ok := args[key].(string); ok && v != "" {
		return v
	}
	return defaultValue
}

func intArg(args map[string]interface{}, key string, defaultValue int) int {
	if args == nil {
		return defaultValue
	}
	switch v := args[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		// JSON numbers decode as float64
		return int(v)
	}
	return defaultValue
}

// corsRulesArg parses the cors_rules argument: a list of rule maps in the
// JSON API shape, accepting both camelCase ("responseHeader",
// "maxAgeSeconds") and snake_case keys.
func corsRulesArg(args map[string]interface{}, key string) ([]gcs.CORSRule, error) {
	raw, ok := args[key]
	if !ok {
		return nil, fmt.Errorf("'%s' is required", key)
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("'%s' must be a list of rule maps", key)
	}

	rules := make([]gcs.CORSRule, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("rule %d is not a map", i)
		}
		rule := gcs.CORSRule{
			Origins:         stringSlice(m, "origin", "origins"),
			Methods:         stringSlice(m, "method", "methods"),
			ResponseHeaders: stringSlice(m, "responseHeader", "response_header"),
		}
		if v, ok := m["maxAgeSeconds"]; ok {
			rule.MaxAgeSeconds = toInt(v)
		} else if v, ok := m["max_age_seconds"]; ok {
			rule.MaxAgeSeconds = toInt(v)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func stringSlice(m map[string]interface{}, keys ...string) []string {
	for _, key := range keys {
		raw, ok := m[key]
		if !ok {
			continue
		}
		items, ok := raw.([]interface{})
		if !ok {
			continue
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func toInt(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}
