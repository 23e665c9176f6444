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


// Package diagnose orchestrates the strategy battery and reconciles its
// results.
//
// The moving parts, in execution order:
//
//   - Runner executes one (strategy, index) pair and never lets a failure
//     escape as an error: every execution becomes a StrategyResult
//   - Classify inspects each raw HTTP exchange for protocol anomalies
//   - Reconciler maintains the single best-known answer under a strict
//     score-improvement rule (ties keep the first-seen provenance)
//   - PerfAggregator accumulates per-strategy timing
//   - Orchestrator drives the battery NotStarted → Running → Completed and
//     produces the final DiagnosticSummary
//
// There is no failed terminal state. A run where every strategy errors still
// completes, so the report can explain why everything failed.
package diagnose
