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
	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus metrics
var (
	promToolCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gcs_mcp_tool_calls_total",
			Help: "Total number of tool calls processed by the server",
		},
		[]string{"tool", "status"},
	)
	promToolCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gcs_mcp_tool_call_duration_milliseconds",
			Help:    "Tool call duration in milliseconds",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 200, 500, 1000, 2000, 5000},
		},
		[]string{"tool"},
	)
)

func init() {
	// Register Prometheus metrics
	prometheus.MustRegister(promToolCallsTotal)
	prometheus.MustRegister(promToolCallDuration)
}
