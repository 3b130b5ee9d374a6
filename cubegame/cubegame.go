// Package cubegame parses records of the cube game, where an Elf reveals
// handfuls of red, green and blue cubes from a bag, and answers questions
// about which games were possible and how many cubes each one needed.
//
// A record looks like:
//
//	Game 1: 3 blue, 4 red; 1 red, 2 green, 6 blue; 2 green
package cubegame

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/maisem/aoc2023"
	"tailscale.com/util/deephash"
)

var (
	// ErrInvalidID is returned for a game header whose id is not a
	// non-negative integer.
	ErrInvalidID = errors.New("invalid game id")
	// ErrInvalidColor matches any *ColorError.
	ErrInvalidColor = errors.New("invalid color")
)

// Color is a cube color.
type Color uint8

const (
	Red Color = iota
	Green
	Blue

	NumColors = 3
)

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

// ColorError reports a color name other than red, green or blue.
type ColorError struct {
	Token string
}

func (e *ColorError) Error() string {
	return fmt.Sprintf("invalid color %q", e.Token)
}

func (e *ColorError) Is(target error) bool {
	return target == ErrInvalidColor
}

// ParseColor returns the Color named by s.
func ParseColor(s string) (Color, error) {
	switch s {
	case "red":
		return Red, nil
	case "green":
		return Green, nil
	case "blue":
		return Blue, nil
	}
	return 0, &ColorError{Token: s}
}

// CubeSet is the number of cubes of each color in one handful. Colors not
// shown in the handful are 0.
type CubeSet [NumColors]int

// ParseCubeSet parses a handful such as "3 blue, 4 red".
//
// Counts are lenient: a count that is missing or is not a non-negative
// integer is taken as 0. If a color appears twice, the last count wins.
func ParseCubeSet(s string) (CubeSet, error) {
	var cs CubeSet
	for _, part := range strings.Split(s, ",") {
		f := strings.Fields(part)
		var name, count string
		if len(f) > 0 {
			name = f[len(f)-1]
		}
		if len(f) > 1 {
			count = f[len(f)-2]
		}
		c, err := ParseColor(name)
		if err != nil {
			return CubeSet{}, err
		}
		cs[c] = parseCount(count)
	}
	return cs, nil
}

func parseCount(s string) int {
	n, err := parseUint(s)
	if err != nil {
		return 0
	}
	return int(n)
}

// parseUint parses a 32-bit unsigned decimal, allowing one leading '+'.
func parseUint(s string) (uint64, error) {
	return strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, 32)
}

// Count returns the number of cubes of color c.
func (cs CubeSet) Count(c Color) int {
	return cs[c]
}

// Within reports whether no color in cs exceeds its limit.
func (cs CubeSet) Within(l Limits) bool {
	return cs[Green] <= l.Green && cs[Red] <= l.Red && cs[Blue] <= l.Blue
}

// maxWith returns the per-color maximum of cs and o.
func (cs CubeSet) maxWith(o CubeSet) CubeSet {
	for c := range cs {
		cs[c] = max(cs[c], o[c])
	}
	return cs
}

// Limits is the number of cubes of each color in the bag.
type Limits struct {
	Red, Green, Blue int
}

// DefaultLimits is the bag the Elf asks about.
var DefaultLimits = Limits{Red: 12, Green: 13, Blue: 14}

// Game is one parsed record.
type Game struct {
	ID   int
	Sets []CubeSet

	// MinSet is the fewest cubes of each color the bag could have held:
	// the largest count of that color across Sets.
	MinSet CubeSet
}

// NewGame returns a Game with the given handfuls.
func NewGame(id int, sets ...CubeSet) Game {
	g := Game{ID: id, Sets: sets}
	for _, cs := range sets {
		g.MinSet = g.MinSet.maxWith(cs)
	}
	return g
}

// ParseGame parses a record of the form "Game <id>: <set>; <set>; ...".
func ParseGame(line string) (Game, error) {
	header, body, _ := strings.Cut(line, ":")
	// Anything after a second colon is ignored.
	body, _, _ = strings.Cut(body, ":")

	f := strings.Fields(header)
	if len(f) == 0 {
		return Game{}, fmt.Errorf("%w: empty header", ErrInvalidID)
	}
	id, err := parseUint(f[len(f)-1])
	if err != nil {
		return Game{}, fmt.Errorf("%w %q", ErrInvalidID, f[len(f)-1])
	}

	frags := strings.Split(body, ";")
	sets := make([]CubeSet, 0, len(frags))
	for _, frag := range frags {
		cs, err := ParseCubeSet(frag)
		if err != nil {
			return Game{}, fmt.Errorf("game %d: %w", id, err)
		}
		sets = append(sets, cs)
	}
	return NewGame(int(id), sets...), nil
}

// Possible reports whether every handful in g could have come from a bag
// holding l.
func (g Game) Possible(l Limits) bool {
	for _, cs := range g.Sets {
		if !cs.Within(l) {
			return false
		}
	}
	return true
}

// Power returns the product of the counts in g.MinSet. A color never seen
// counts as 1; a game in which no cube was seen at all has power 0.
func (g Game) Power() int {
	if g.MinSet == (CubeSet{}) {
		return 0
	}
	p := 1
	for _, n := range g.MinSet {
		if n > 0 {
			p *= n
		}
	}
	return p
}

// Hash returns a hash of the game's structure.
func (g Game) Hash() deephash.Sum {
	return deephash.Hash(&g)
}

type parsed struct {
	g   Game
	err error
}

// ParseGames parses each line as a game. Lines are parsed concurrently; if
// any fail, the error for the earliest such line is returned and no games
// are.
func ParseGames(lines []string) ([]Game, error) {
	res := aoc.Parallel(lines, func(line string) parsed {
		g, err := ParseGame(line)
		return parsed{g, err}
	})
	games := make([]Game, len(res))
	for i, r := range res {
		if r.err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, r.err)
		}
		games[i] = r.g
	}
	return games, nil
}

// SumPossibleIDs returns the sum of the ids of the games possible with l.
func SumPossibleIDs(games []Game, l Limits) int {
	return aoc.Fold(games, func(sum int, g Game) int {
		if g.Possible(l) {
			return sum + g.ID
		}
		return sum
	}, 0)
}

// SumPowers returns the sum of the powers of games.
func SumPowers(games []Game) int {
	return aoc.Fold(games, func(sum int, g Game) int {
		return sum + g.Power()
	}, 0)
}
