// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package searchapi is the REST client for the Azure AI Search-compatible
// backend under diagnosis.
//
// Unlike an ordinary client it never hides the wire: every Search call also
// returns a core.RawExchange (status, headers, actual body size, elapsed
// time) so the diagnostic layer can classify protocol anomalies that a
// well-behaved SDK would swallow or collapse into a generic error.
//
// Three failure shapes are distinguished:
//
//   - transport errors (connection, timeout): error with no exchange payload
//   - non-200 responses: *HTTPError carrying the observed status
//   - 200 responses that fail to decode: wrapped ErrMalformedPayload
//
// Wire scores arrive loosely typed; they are validated here and surfaced as
// an explicit unscored variant rather than crashing at display time.
package searchapi
