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


package core

import "errors"

// Domain validation errors
var (
	// ErrUnknownStrategy indicates a strategy ID outside the fixed enumeration.
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrUnknownIndex indicates an index name not present in the configured set.
	ErrUnknownIndex = errors.New("unknown index")

	// ErrEmptyQuery indicates the target query text is empty.
	ErrEmptyQuery = errors.New("query cannot be empty")
)
