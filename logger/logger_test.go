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

package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"
	"testing"
	"time"
)

func captureEntry(t *testing.T, logFunc func(*Logger)) LogEntry {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	logFunc(New("test-component"))

	output := buf.String()
	jsonStart := strings.Index(output, "{")
	if jsonStart == -1 {
		t.Fatalf("No JSON found in log output: %s", output)
	}
	jsonStr := strings.TrimSpace(output[jsonStart:])

	var entry LogEntry
	if err := json.Unmarshal([]byte(jsonStr), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v\nOutput: %s", err, output)
	}
	return entry
}

func TestNew(t *testing.T) {
	t.Setenv("INSTANCE_ID", "instance-123")
	l := New("gcs-mcp-server")
	if l.Component != "gcs-mcp-server" {
		t.Errorf("Expected component gcs-mcp-server, got %s", l.Component)
	}
	if l.InstanceID != "instance-123" {
		t.Errorf("Expected instance ID instance-123, got %s", l.InstanceID)
	}
	if l.Container == "" {
		t.Error("Expected container to be set from hostname")
	}

	t.Setenv("INSTANCE_ID", "")
	l = New("gcs-mcp-server")
	if l.InstanceID != "unknown" {
		t.Errorf("Expected unknown instance ID, got %s", l.InstanceID)
	}
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		name    string
		logFunc func(*Logger, string, string, map[string]interface{})
		level   LogLevel
	}{
		{"Info log", (*Logger).Info, INFO},
		{"Error log", (*Logger).Error, ERROR},
		{"Warn log", (*Logger).Warn, WARN},
		{"Debug log", (*Logger).Debug, DEBUG},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := captureEntry(t, func(l *Logger) {
				tt.logFunc(l, "req-456", "Test message", map[string]interface{}{"key": "value"})
			})

			if entry.Level != tt.level {
				t.Errorf("Expected level %s, got %s", tt.level, entry.Level)
			}
			if entry.Message != "Test message" {
				t.Errorf("Expected 'Test message', got '%s'", entry.Message)
			}
			if entry.RequestID != "req-456" {
				t.Errorf("Expected request ID 'req-456', got '%s'", entry.RequestID)
			}
			if entry.Component != "test-component" {
				t.Errorf("Expected component 'test-component', got '%s'", entry.Component)
			}
			if entry.Fields["key"] != "value" {
				t.Errorf("Expected field key=value, got %v", entry.Fields["key"])
			}
			if _, err := time.Parse(time.RFC3339Nano, entry.Timestamp); err != nil {
				t.Errorf("Invalid timestamp format: %s", entry.Timestamp)
			}
		})
	}
}

func TestInfoWithDuration(t *testing.T) {
	entry := captureEntry(t, func(l *Logger) {
		l.InfoWithDuration("req-456", "Tool call completed", 123.45, map[string]interface{}{
			"tool": "list_buckets",
		})
	})

	if entry.Fields["duration_ms"] != 123.45 {
		t.Errorf("Expected duration_ms 123.45, got %v", entry.Fields["duration_ms"])
	}
	if entry.Fields["tool"] != "list_buckets" {
		t.Errorf("Expected tool field preserved, got %v", entry.Fields["tool"])
	}
	if entry.Level != INFO {
		t.Errorf("Expected INFO level, got %s", entry.Level)
	}
}

func TestErrorWithCode(t *testing.T) {
	entry := captureEntry(t, func(l *Logger) {
		l.ErrorWithCode("req-456", "Request failed", 404, errors.New("tool 'ghost' not found"), nil)
	})

	statusCode, ok := entry.Fields["status_code"].(float64)
	if !ok || int(statusCode) != 404 {
		t.Errorf("Expected status_code 404, got %v", entry.Fields["status_code"])
	}
	if entry.Fields["error"] != "tool 'ghost' not found" {
		t.Errorf("Expected error field, got %v", entry.Fields["error"])
	}
	if entry.Level != ERROR {
		t.Errorf("Expected ERROR level, got %s", entry.Level)
	}
}

func TestJSONMarshalError(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	l := New("test-component")
	// Channels cannot be marshaled to JSON
	l.Info("req-456", "Test message", map[string]interface{}{"channel": make(chan int)})

	if !strings.Contains(buf.String(), "Failed to marshal log entry") {
		t.Error("Expected error message about JSON marshaling failure")
	}
}
