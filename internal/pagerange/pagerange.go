// Package pagerange turns a user-typed page expression such as "1-5, 8" into
// zero-based page indices.
package pagerange

import (
	"errors"
	"slices"
	"strconv"
	"strings"
)

// fullWidthComma is what CJK input methods produce for ','.
const fullWidthComma = "，"

// Parse converts expr into the distinct zero-based indices it selects, in
// ascending order, keeping only pages in [1, totalPages].
//
// Parsing is permissive: each number is read from the leading digits of its
// part, so "3abc" is 3 and "2.5" is 2. A token with no leading number is
// dropped on its own and never fails the expression. A range token with an
// unparseable end is dropped in full. An empty or blank expression selects
// nothing.
func Parse(expr string, totalPages int) (indices []int) {
	seen := make(map[int]struct{})
	defer func() {
		// Degrade to whatever was collected before a panic.
		if r := recover(); r != nil {
			indices = collect(seen)
		}
	}()

	expr = strings.ReplaceAll(expr, fullWidthComma, ",")
	for _, tok := range strings.Split(expr, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}

		if strings.Contains(tok, "-") {
			start, end, ok := parseSpan(tok)
			if !ok {
				continue
			}
			for p := max(start, 1); p <= min(end, totalPages); p++ {
				seen[p-1] = struct{}{}
			}
			continue
		}

		p, ok := leadingInt(tok)
		if !ok {
			continue
		}
		if p >= 1 && p <= totalPages {
			seen[p-1] = struct{}{}
		}
	}

	return collect(seen)
}

// parseSpan reads "start-end". Only the first two hyphen-separated parts count.
func parseSpan(tok string) (start, end int, ok bool) {
	parts := strings.Split(tok, "-")
	if start, ok = leadingInt(parts[0]); !ok {
		return 0, 0, false
	}
	if end, ok = leadingInt(parts[1]); !ok {
		return 0, 0, false
	}
	return start, end, true
}

// leadingInt reads an optional sign and the run of decimal digits at the
// start of s, ignoring whatever follows. Values beyond the int range
// saturate.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	n := 0
	if n < len(s) && (s[n] == '+' || s[n] == '-') {
		n++
	}
	digits := n
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	if n == digits {
		return 0, false
	}
	v, err := strconv.ParseInt(s[:n], 10, 0)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return int(v), true
}

func collect(seen map[int]struct{}) []int {
	out := make([]int, 0, len(seen))
	for i := range seen {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// Default returns the expression selecting the first min(5, pageCount) pages.
func Default(pageCount int) string {
	n := min(5, pageCount)
	if n < 1 {
		n = 1
	}
	return "1-" + strconv.Itoa(n)
}
