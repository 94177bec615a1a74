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
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/sanketbisne/gcs-mcp-server/logger"
	"github.com/sanketbisne/gcs-mcp-server/tools"
)

// callTimeout bounds a single tool invocation end to end.
const callTimeout = 30 * time.Second

// Server routes HTTP requests to the tool dispatcher.
type Server struct {
	dispatcher *tools.Dispatcher
	router     *mux.Router
	cors       *cors.Cors
	log        *logger.Logger
}

// CallRequest is the body of POST /mcp/tools/call.
type CallRequest struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// CallResponse wraps a tool result with call metadata.
type CallResponse struct {
	RequestID  string      `json:"request_id"`
	Tool       string      `json:"tool"`
	Result     interface{} `json:"result"`
	DurationMs float64     `json:"duration_ms"`
}

// toolInfo is one entry of the GET /mcp/tools listing.
type toolInfo struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"input_schema,omitempty"`
}

// NewServer wires the dispatcher into an HTTP router with CORS.
func NewServer(dispatcher *tools.Dispatcher) *Server {
	s := &Server{
		dispatcher: dispatcher,
		router:     mux.NewRouter(),
		log:        logger.New("gcs-mcp-server"),
		// CORS middleware - configured once, used for all requests
		cors: cors.New(cors.Options{
			AllowedOrigins:   []string{"*"}, // Configure for production
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
		}),
	}

	s.router.HandleFunc("/health", s.healthHandler).Methods("GET")
	s.router.HandleFunc("/mcp/tools", s.listToolsHandler).Methods("GET")
	s.router.HandleFunc("/mcp/tools/call", s.callToolHandler).Methods("POST")
	s.router.Handle("/prometheus", promhttp.Handler()).Methods("GET")
	return s
}

// Handler returns the CORS-wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.cors.Handler(s.router)
}

// healthHandler is liveness only: it never touches the storage backend.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "healthy",
		"service":   "gcs-mcp-server",
		"timestamp": time.Now().UTC(),
		"version":   "1.0.0",
	}); err != nil {
		s.log.Error("", "Error encoding health response", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Server) listToolsHandler(w http.ResponseWriter, r *http.Request) {
	listed := s.dispatcher.List()
	infos := make([]toolInfo, 0, len(listed))
	for _, t := range listed {
		infos = append(infos, toolInfo{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"tools": infos,
		"count": len(infos),
	}); err != nil {
		s.log.Error("", "Error encoding tool listing", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Server) callToolHandler(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()
	start := time.Now()

	var req CallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.log.ErrorWithCode(requestID, "Request body parse failed", http.StatusBadRequest, err, nil)
		sendErrorResponse(w, "Invalid request body", http.StatusBadRequest, requestID)
		return
	}
	if req.Name == "" {
		sendErrorResponse(w, "Tool name is required", http.StatusBadRequest, requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), callTimeout)
	defer cancel()

	result, err := s.dispatcher.Call(ctx, req.Name, req.Arguments)
	if err != nil {
		// only an unknown tool name reaches here
		promToolCallsTotal.WithLabelValues(req.Name, "unknown_tool").Inc()
		s.log.ErrorWithCode(requestID, "Unknown tool requested", http.StatusNotFound, err, map[string]interface{}{
			"tool": req.Name,
		})
		sendErrorResponse(w, err.Error(), http.StatusNotFound, requestID)
		return
	}

	durationMs := float64(time.Since(start).Microseconds()) / 1000.0
	promToolCallsTotal.WithLabelValues(req.Name, resultStatus(result)).Inc()
	promToolCallDuration.WithLabelValues(req.Name).Observe(durationMs)
	s.log.InfoWithDuration(requestID, "Tool call completed", durationMs, map[string]interface{}{
		"tool": req.Name,
	})

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(CallResponse{
		RequestID:  requestID,
		Tool:       req.Name,
		Result:     result,
		DurationMs: durationMs,
	}); err != nil {
		s.log.Error(requestID, "Error encoding call response", map[string]interface{}{"error": err.Error()})
	}
}

// resultStatus derives the metrics status label from the result value.
// Error results carry the category markers at the start of the message.
func resultStatus(result interface{}) string {
	var msg string
	switch v := result.(type) {
	case string:
		msg = v
	case []string:
		if len(v) == 1 {
			msg = v[0]
		}
	case map[string]interface{}:
		if e, ok := v["error"].(string); ok && len(v) == 1 {
			msg = e
		}
	}
	if strings.HasPrefix(msg, "⚠️") || strings.HasPrefix(msg, "❌") {
		return "error"
	}
	return "success"
}

func sendErrorResponse(w http.ResponseWriter, message string, statusCode int, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error":      message,
		"request_id": requestID,
	})
}
