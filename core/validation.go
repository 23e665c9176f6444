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

import (
	"fmt"
	"slices"
)

// ValidateStrategyID checks that the strategy is part of the fixed enumeration.
// An unknown strategy is a programming error, not a diagnosable result.
func ValidateStrategyID(id StrategyID) error {
	if !slices.Contains(Strategies, id) {
		return fmt.Errorf("%w: %q", ErrUnknownStrategy, id)
	}
	return nil
}

// ValidatePair checks a (strategy, index) pair against the fixed strategy
// enumeration and the configured index names.
func ValidatePair(p Pair, indexes []string) error {
	if err := ValidateStrategyID(p.Strategy); err != nil {
		return err
	}
	if !slices.Contains(indexes, p.Index) {
		return fmt.Errorf("%w: %q", ErrUnknownIndex, p.Index)
	}
	return nil
}
