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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrategyIDCapabilities(t *testing.T) {
	assert.False(t, StrategyBasic.NeedsVector())
	assert.False(t, StrategyBasic.NeedsSemantic())

	assert.True(t, StrategySemantic.NeedsSemantic())
	assert.False(t, StrategySemantic.NeedsVector())

	assert.True(t, StrategyHybridBasic.NeedsVector())
	assert.False(t, StrategyHybridBasic.NeedsSemantic())

	assert.True(t, StrategyHybridSemantic.NeedsVector())
	assert.True(t, StrategyHybridSemantic.NeedsSemantic())

	assert.True(t, StrategySemanticFiltered.NeedsSemantic())
	assert.False(t, StrategySemanticFiltered.NeedsVector())
}

func TestPairKey(t *testing.T) {
	pair := Pair{Strategy: StrategySemantic, Index: "user"}
	assert.Equal(t, "semantic/user", pair.Key())
}

func TestCandidateScore(t *testing.T) {
	t.Run("no score at all", func(t *testing.T) {
		result := &StrategyResult{
			Documents: []Document{{ID: "d1"}, {ID: "d2"}},
		}
		_, ok := result.CandidateScore()
		assert.False(t, ok)
	})

	t.Run("semantic answer wins over documents", func(t *testing.T) {
		result := &StrategyResult{
			SemanticAnswer: &SemanticAnswer{Text: "a", Score: 1.4},
			Documents:      []Document{{ID: "d1", Score: 0.9, Scored: true}},
		}
		score, ok := result.CandidateScore()
		assert.True(t, ok)
		assert.Equal(t, 1.4, score)
	})

	t.Run("document wins over semantic answer", func(t *testing.T) {
		result := &StrategyResult{
			SemanticAnswer: &SemanticAnswer{Text: "a", Score: 0.3},
			Documents:      []Document{{ID: "d1", Score: 2.1, Scored: true}},
		}
		score, ok := result.CandidateScore()
		assert.True(t, ok)
		assert.Equal(t, 2.1, score)
	})

	t.Run("unscored documents are ignored", func(t *testing.T) {
		result := &StrategyResult{
			Documents: []Document{
				{ID: "d1", Score: 99.0, Scored: false},
				{ID: "d2", Score: 0.5, Scored: true},
			},
		}
		score, ok := result.CandidateScore()
		assert.True(t, ok)
		assert.Equal(t, 0.5, score)
	})
}

func TestHasPass(t *testing.T) {
	summary := &DiagnosticSummary{
		Outcomes: map[string]Outcome{
			"basic/user":    OutcomeError,
			"semantic/user": OutcomeFail,
		},
	}
	assert.False(t, summary.HasPass())

	summary.Outcomes["basic/group"] = OutcomePass
	assert.True(t, summary.HasPass())

	empty := &DiagnosticSummary{}
	assert.False(t, empty.HasPass())
}

func TestValidateStrategyID(t *testing.T) {
	for _, strategy := range Strategies {
		assert.NoError(t, ValidateStrategyID(strategy))
	}
	assert.ErrorIs(t, ValidateStrategyID("bogus"), ErrUnknownStrategy)
}

func TestValidatePair(t *testing.T) {
	indexes := []string{"user", "group"}

	assert.NoError(t, ValidatePair(Pair{Strategy: StrategyBasic, Index: "user"}, indexes))
	assert.ErrorIs(t, ValidatePair(Pair{Strategy: "bogus", Index: "user"}, indexes), ErrUnknownStrategy)
	assert.ErrorIs(t, ValidatePair(Pair{Strategy: StrategyBasic, Index: "missing"}, indexes), ErrUnknownIndex)
}
