package pagerange

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		expr  string
		total int
		want  []int
	}{
		{"empty", "", 10, []int{}},
		{"blank", "   ", 10, []int{}},
		{"empty with no pages", "", 0, []int{}},
		{"simple range", "1-5", 10, []int{0, 1, 2, 3, 4}},
		{"dedup and sort", "3,1,2", 10, []int{0, 1, 2}},
		{"out of bounds single dropped", "1-5,8", 5, []int{0, 1, 2, 3, 4}},
		{"malformed range dropped", "a-b", 10, []int{}},
		{"full-width comma", "1，3", 10, []int{0, 2}},
		{"range clipped to total", "3-20", 5, []int{2, 3, 4}},
		{"range below one clipped", "0-2", 10, []int{0, 1}},
		{"reversed range selects nothing", "5-3", 10, []int{}},
		{"half-open range dropped", "3-", 10, []int{}},
		{"leading hyphen dropped", "-3", 10, []int{}},
		{"one bad end drops whole token", "2-x,4", 10, []int{3}},
		{"extra hyphen parts ignored", "1-3-9", 10, []int{0, 1, 2}},
		{"whitespace around tokens", " 2 , 4 - 5 ", 10, []int{1, 3, 4}},
		{"empty tokens skipped", "1,,2,", 10, []int{0, 1}},
		{"overlapping ranges collapse", "1-3,2-4,3", 10, []int{0, 1, 2, 3}},
		{"zero and negative singles dropped", "0,-1,2", 10, []int{1}},
		{"garbage single dropped", "abc,2", 10, []int{1}},
		{"no pages available", "1-5", 0, []int{}},
		{"huge range stays bounded", "1-2000000000", 3, []int{0, 1, 2}},
		{"overflowing end saturates", "2-99999999999999999999999", 4, []int{1, 2, 3}},
		{"trailing junk after single", "3abc", 10, []int{2}},
		{"decimal single truncated", "2.5", 10, []int{1}},
		{"trailing junk after range end", "1-5abc", 10, []int{0, 1, 2, 3, 4}},
		{"trailing junk after range start", "2x-4", 10, []int{1, 2, 3}},
		{"explicit plus sign", "+3", 10, []int{2}},
		{"junk before digits dropped", "p3", 10, []int{}},
		{"sign without digits dropped", "+", 10, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.expr, tt.total))
		})
	}
}

func TestParseOutputIsStrictlyAscendingAndUnique(t *testing.T) {
	exprs := []string{
		"9,8,7,1-3,2,2,2",
		"10-1,5，5，4",
		"1-30",
		"30,29,28-26,x,1-2-3",
	}
	for _, expr := range exprs {
		got := Parse(expr, 30)
		for i := 1; i < len(got); i++ {
			assert.Less(t, got[i-1], got[i], "expr %q", expr)
		}
		for _, idx := range got {
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, 30)
		}
		assert.True(t, slices.IsSorted(got))
	}
}

func TestDefault(t *testing.T) {
	assert.Equal(t, "1-5", Default(30))
	assert.Equal(t, "1-5", Default(5))
	assert.Equal(t, "1-3", Default(3))
	assert.Equal(t, "1-1", Default(1))
	assert.Equal(t, "1-1", Default(0))
}
