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
	"testing"
)

func noopTool(name string) *Tool {
	return &Tool{
		Name:        name,
		Description: "test tool",
		Handler: func(ctx context.Context, args map[string]interface{}) interface{} {
			return "ok"
		},
	}
}

func TestRegisterAndGet(t *testing.T) {
	d := NewDispatcher()

	if err := d.Register(noopTool("alpha")); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	tool, err := d.Get("alpha")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if tool.Name != "alpha" {
		t.Errorf("expected alpha, got %s", tool.Name)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	d := NewDispatcher()

	if err := d.Register(noopTool("alpha")); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := d.Register(noopTool("alpha")); err == nil {
		t.Error("expected error on duplicate registration")
	}
}

func TestRegisterInvalid(t *testing.T) {
	d := NewDispatcher()

	if err := d.Register(nil); err == nil {
		t.Error("expected error for nil tool")
	}
	if err := d.Register(&Tool{Name: ""}); err == nil {
		t.Error("expected error for unnamed tool")
	}
	if err := d.Register(&Tool{Name: "broken"}); err == nil {
		t.Error("expected error for tool without handler")
	}
}

func TestListPreservesRegistrationOrder(t *testing.T) {
	d := NewDispatcher()
	names := []string{"zulu", "alpha", "mike"}
	for _, name := range names {
		if err := d.Register(noopTool(name)); err != nil {
			t.Fatalf("register %s failed: %v", name, err)
		}
	}

	listed := d.List()
	if len(listed) != len(names) {
		t.Fatalf("expected %d tools, got %d", len(names), len(listed))
	}
	for i, name := range names {
		if listed[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, listed[i].Name)
		}
	}
	if d.Count() != len(names) {
		t.Errorf("expected count %d, got %d", len(names), d.Count())
	}
}

func TestCallUnknownTool(t *testing.T) {
	d := NewDispatcher()

	if _, err := d.Call(context.Background(), "ghost", nil); err == nil {
		t.Error("expected error for unknown tool")
	}
}

func TestCallReturnsHandlerResult(t *testing.T) {
	d := NewDispatcher()
	if err := d.Register(noopTool("alpha")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := d.Call(context.Background(), "alpha", nil)
	if err != nil {
		t.Fatalf("call failed: %v", err)
	}
	if result != "ok" {
		t.Errorf("expected ok, got %v", result)
	}
}
