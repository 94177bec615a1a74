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

/*
Package server exposes the tool catalog over HTTP.

Endpoints:

	GET  /health          - liveness check, backend-independent
	GET  /mcp/tools       - tool listing with input schemas
	POST /mcp/tools/call  - invoke a tool by name with JSON arguments
	GET  /prometheus      - Prometheus metrics exposition

The call endpoint returns HTTP errors only for transport-level problems
(malformed JSON, unknown tool name). Tool-level failures arrive as
200 responses whose result value carries the rendered error message,
per the tools package contract.
*/
package server
