/*
 * © 2025 Halcyon Labs Ltd.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ContainsPosition(t *testing.T) {
	r := Range{
		Start: Position{Line: 10, Column: 5},
		End:   Position{Line: 12, Column: 3},
	}

	tests := []struct {
		name     string
		position Position
		expected bool
	}{
		{"start position", Position{Line: 10, Column: 5}, true},
		{"before start column", Position{Line: 10, Column: 4}, false},
		{"middle line, any column", Position{Line: 11, Column: 1}, true},
		{"end line before end column", Position{Line: 12, Column: 2}, true},
		{"end column is exclusive", Position{Line: 12, Column: 3}, false},
		{"line above", Position{Line: 9, Column: 5}, false},
		{"line below", Position{Line: 13, Column: 1}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, r.ContainsPosition(tc.position))
		})
	}
}

func Test_Position_Before(t *testing.T) {
	assert.True(t, Position{Line: 1, Column: 5}.Before(Position{Line: 2, Column: 1}))
	assert.True(t, Position{Line: 2, Column: 1}.Before(Position{Line: 2, Column: 2}))
	assert.False(t, Position{Line: 2, Column: 2}.Before(Position{Line: 2, Column: 2}))
	assert.False(t, Position{Line: 3, Column: 1}.Before(Position{Line: 2, Column: 9}))
}

func Test_Range_String(t *testing.T) {
	r := Range{Start: Position{Line: 1, Column: 2}, End: Position{Line: 3, Column: 4}}
	assert.Equal(t, "1:2-3:4", r.String())
}
