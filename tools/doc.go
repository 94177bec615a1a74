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
Package tools implements the MCP tool dispatcher and the fixed catalog of
Google Cloud Storage tools.

# Contract

Every tool takes a map of JSON-decoded arguments and returns one of three
result shapes: a string, a list of strings, or a string-keyed map. A tool
never returns an error: backend failures are rendered into category-marked
message strings embedded in the operation's declared result shape, so a
listing tool reports a failure as a single-element list and a metadata
tool as a map holding only an "error" key. Remote callers can therefore
treat the result channel uniformly and pattern-match the failure category
from the message text.

Dispatcher.Call returns an error only when the tool name itself is
unknown.

# Catalog

NewCatalog registers the 15 tools (bucket CRUD, object CRUD, metadata,
signed URLs, CORS, greet, health_check) against a gcs.Backend. Tool calls
are independent and stateless; the dispatcher holds no mutable state
beyond the registration map.
*/
package tools
