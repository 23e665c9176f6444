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


// Package ai abstracts the optional completion backend used by searchdiag.
//
// Two services are defined:
//
//   - Embedder: turns the target query into a vector for hybrid strategies
//   - AnswerGenerator: synthesizes an enhanced answer from search results
//
// Provider aggregates both for convenient initialization. Public
// constructors in ai/openai return interface types to enforce abstraction;
// ai/mock returns concrete types so tests can inject behavior and assert
// call counts.
//
// The completion backend is an external collaborator: failures here never
// abort a diagnostic run, they only downgrade the affected strategy.
package ai
