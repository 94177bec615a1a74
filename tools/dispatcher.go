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
	"log"
	"os"
	"sync"
	"time"
)

// Handler executes a tool call. The returned value is a string, a
// []string, or a map[string]interface{}; failures are rendered into the
// result value, never returned as errors.
type Handler func(ctx context.Context, args map[string]interface{}) interface{}

// Tool is one named, independently invocable operation.
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]interface{}
	Handler     Handler
}

// Dispatcher routes named tool calls to their handlers.
// Thread-safe for concurrent access.
type Dispatcher struct {
	mu     sync.RWMutex
	tools  map[string]*Tool
	order  []string
	logger *log.Logger
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		tools:  make(map[string]*Tool),
		logger: log.New(os.Stdout, "[TOOLS] ", log.LstdFlags),
	}
}

// Register adds a tool to the dispatcher.
// Returns an error if a tool with the same name already exists.
func (d *Dispatcher) Register(t *Tool) error {
	if t == nil || t.Name == "" {
		return fmt.Errorf("tool must have a name")
	}
	if t.Handler == nil {
		return fmt.Errorf("tool '%s' has no handler", t.Name)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.tools[t.Name]; exists {
		return fmt.Errorf("tool '%s' already registered", t.Name)
	}
	d.tools[t.Name] = t
	d.order = append(d.order, t.Name)
	return nil
}

// Get returns a registered tool by name.
func (d *Dispatcher) Get(name string) (*Tool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	t, ok := d.tools[name]
	if !ok {
		return nil, fmt.Errorf("tool '%s' not found", name)
	}
	return t, nil
}

// List returns all tools in registration order.
func (d *Dispatcher) List() []*Tool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*Tool, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.tools[name])
	}
	return out
}

// Count returns the number of registered tools.
func (d *Dispatcher) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.tools)
}

// Call invokes a tool by name. The only error condition is an unknown
// tool; tool execution itself always produces a well-formed result.
func (d *Dispatcher) Call(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	t, err := d.Get(name)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result := t.Handler(ctx, args)
	d.logger.Printf("Tool executed: %s (%v)", name, time.Since(start))
	return result, nil
}
