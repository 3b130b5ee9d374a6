// Package calibration recovers calibration values from lines of the
// trebuchet document: a two-digit number made of the first and last digit
// found on the line.
package calibration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/maisem/aoc2023"
)

// ErrNoDigits is returned by Value for a line without any digit.
var ErrNoDigits = errors.New("line has no extractable digits")

// Value returns the calibration value of line, considering only ASCII
// digits.
func Value(line string) (int, error) {
	first, last := -1, -1
	for i := 0; i < len(line); i++ {
		if !aoc.IsDigit(line[i]) {
			continue
		}
		d := aoc.Digit(rune(line[i]))
		if first == -1 {
			first = d
		}
		last = d
	}
	if first == -1 {
		return 0, ErrNoDigits
	}
	return 10*first + last, nil
}

var words = [...]string{"one", "two", "three", "four", "five", "six", "seven", "eight", "nine"}

// Match is a digit or spelled-out digit found in a line.
type Match struct {
	Pos   int    // byte offset of the first character in the line
	Token string // "0".."9" or "one".."nine"
}

// Digit returns the value of the matched token. It panics if the token is
// not a digit or digit word.
func (m Match) Digit() int {
	if len(m.Token) == 1 && aoc.IsDigit(m.Token[0]) {
		return int(m.Token[0] - '0')
	}
	for i, w := range words {
		if w == m.Token {
			return i + 1
		}
	}
	panic(fmt.Sprintf("bogus token %q", m.Token))
}

// Matches returns every digit and digit word in line, ordered by position.
// Words may overlap: "oneight" yields both "one" and "eight".
func Matches(line string) []Match {
	var ms []Match
	for i := 0; i < len(line); i++ {
		if aoc.IsDigit(line[i]) {
			ms = append(ms, Match{Pos: i, Token: line[i : i+1]})
			continue
		}
		rest := line[i:]
		for _, w := range words {
			if strings.HasPrefix(rest, w) {
				ms = append(ms, Match{Pos: i, Token: w})
				break
			}
		}
	}
	return ms
}

// WordValue returns the calibration value of line, treating the words
// "one" through "nine" as digits too. A line without any is worth 0.
func WordValue(line string) int {
	ms := Matches(line)
	if len(ms) == 0 {
		return 0
	}
	return 10*ms[0].Digit() + ms[len(ms)-1].Digit()
}

// Sum returns the sum of the calibration values of lines. It stops at the
// first line without digits.
func Sum(lines []string) (int, error) {
	n := 0
	return aoc.FoldErr(lines, func(sum int, line string) (int, error) {
		n++
		v, err := Value(line)
		if err != nil {
			return sum, fmt.Errorf("line %d %q: %w", n, line, err)
		}
		return sum + v, nil
	}, 0)
}

// SumWords returns the sum of the word-aware calibration values of lines.
func SumWords(lines []string) int {
	vals := make([]int, len(lines))
	for i, line := range lines {
		vals[i] = WordValue(line)
	}
	return aoc.Sum(vals...)
}
