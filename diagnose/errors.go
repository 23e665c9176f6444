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


package diagnose

import "errors"

var (
	// ErrSearchClientRequired is returned when a search client is not provided.
	ErrSearchClientRequired = errors.New("search client required")

	// ErrConfigRequired is returned when a run configuration is not provided.
	ErrConfigRequired = errors.New("config required")

	// ErrRunnerRequired is returned when a strategy runner is not provided.
	ErrRunnerRequired = errors.New("runner required")

	// ErrRunAlreadyStarted is returned when Run is called on an orchestrator
	// that already left the NotStarted state.
	ErrRunAlreadyStarted = errors.New("diagnostic run already started")

	// ErrEmbedderNotConfigured marks vector strategies attempted without a
	// completion backend. It surfaces as an error outcome, never as a panic.
	ErrEmbedderNotConfigured = errors.New("embedder not configured")
)
