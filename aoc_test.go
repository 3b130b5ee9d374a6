package aoc

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseSample(t *testing.T) {
	tests := []struct {
		comment string
		want    sample
	}{
		{
			comment: `/*
want=1

some-input
*/`,
			want: sample{
				want: "1",
				input: `some-input
`,
			},
		},

		{
			comment: `/*
want=1234

multi-line-input
other-line
other-line-2
*/`,
			want: sample{
				want: "1234",
				input: `multi-line-input
other-line
other-line-2
`,
			},
		},
		{
			comment: `// want=281`,
			want: sample{
				want: "281",
			},
		},
	}

	for _, tt := range tests {
		if got, ok := parseSample("foo", tt.comment); !ok || got != tt.want {
			t.Errorf("ParseSample = %v, want %v", got, tt.want)
		}
	}
}

func TestParseSampleNoWant(t *testing.T) {
	if got, ok := parseSample("foo", "// D1p1 solves part 1."); ok {
		t.Errorf("ParseSample = %v, want no sample", got)
	}
}

const samplesSrc = `package main

/*
want=142

1abc2
pqr3stu8vwx
*/
func (s solver) D1p1() any { return nil }

// want=281
func (s solver) D1p2() any { return nil }

func (s solver) helper() {}
`

func TestExtractSamples(t *testing.T) {
	got := extractSamples([]byte(samplesSrc))
	if len(got) != 2 {
		t.Fatalf("extractSamples found %d samples, want 2: %v", len(got), got)
	}
	want := "1abc2\npqr3stu8vwx\n"
	if s := got["D1p1"]; s.want != "142" || s.input != want {
		t.Errorf("D1p1 sample = %+v", s)
	}
	// D1p2 has no input of its own and reuses the previous one.
	if s := got["D1p2"]; s.want != "281" || s.input != want {
		t.Errorf("D1p2 sample = %+v", s)
	}
}

type testSolver struct {
	*Puzzle
}

func (s testSolver) D2p1() any  { return 1 }
func (s testSolver) D2p2() any  { return 2 }
func (s testSolver) D10p1() any { return 3 }
func (s testSolver) Other() any { return 4 }

func TestExtractMethods(t *testing.T) {
	days := extractMethods(&testSolver{})
	if len(days) != 2 {
		t.Fatalf("extractMethods found %d days, want 2", len(days))
	}
	d2 := days[2]
	if len(d2.parts) != 2 || d2.parts[0].Part != "1" || d2.parts[1].Name != "D2p2" {
		t.Errorf("day 2 parts = %+v", d2.parts)
	}
	if got := d2.parts[1].fn(); got != 2 {
		t.Errorf("D2p2() = %v, want 2", got)
	}
	if d10 := days[10]; len(d10.parts) != 1 {
		t.Errorf("day 10 parts = %+v", d10.parts)
	}
}

func TestPuzzleLines(t *testing.T) {
	p := NewPuzzle(2023, []byte("a\n\nb\nc"))
	got := p.Lines()
	want := []string{"a", "", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("Lines() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Lines()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLoadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "1.input")
	defer func(old string) { flagInput = old }(flagInput)
	flagInput = path
	p := &Puzzle{year: 2023, day: day{day: 1}}

	err := p.loadInput()
	if !errors.Is(err, ErrInputUnreadable) {
		t.Fatalf("loadInput() = %v, want ErrInputUnreadable", err)
	}

	if err := os.WriteFile(path, []byte("1abc2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := p.loadInput(); err != nil {
		t.Fatalf("loadInput() = %v", err)
	}
	if got := string(p.Input()); got != "1abc2\n" {
		t.Errorf("Input() = %q", got)
	}
}

func TestFold(t *testing.T) {
	got := Fold([]string{"a", "bb", "ccc"}, func(n int, s string) int { return n + len(s) }, 0)
	if got != 6 {
		t.Errorf("Fold = %d, want 6", got)
	}
}

func TestFoldErr(t *testing.T) {
	errStop := errors.New("stop")
	calls := 0
	got, err := FoldErr([]int{1, 2, 3, 4}, func(acc, v int) (int, error) {
		calls++
		if v == 3 {
			return acc, errStop
		}
		return acc + v, nil
	}, 0)
	if !errors.Is(err, errStop) || got != 0 {
		t.Errorf("FoldErr = %d, %v; want 0, %v", got, err, errStop)
	}
	if calls != 3 {
		t.Errorf("f called %d times, want 3", calls)
	}

	got, err = FoldErr([]int{1, 2, 3}, func(acc, v int) (int, error) { return acc * v, nil }, 1)
	if err != nil || got != 6 {
		t.Errorf("FoldErr = %d, %v; want 6, nil", got, err)
	}
}

func TestParallel(t *testing.T) {
	in := []int{1, 2, 3, 4, 5}
	got := Parallel(in, func(v int) int { return v * v })
	for i, v := range in {
		if got[i] != v*v {
			t.Errorf("Parallel[%d] = %d, want %d", i, got[i], v*v)
		}
	}
}

func TestOr(t *testing.T) {
	if got := Or("", "a", "b"); got != "a" {
		t.Errorf("Or = %q, want a", got)
	}
	if got := Or(0, 0); got != 0 {
		t.Errorf("Or = %d, want 0", got)
	}
}

func TestSum(t *testing.T) {
	if got := Sum(12, 38, 15, 77); got != 142 {
		t.Errorf("Sum = %d, want 142", got)
	}
}

func TestFetchWithoutSessionKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	defer func(old bool) { flagFetch = old }(flagFetch)
	flagFetch = true

	path := filepath.Join(t.TempDir(), "2023", "1.input")
	_, err := fileOrFetch(path, "https://adventofcode.com/2023/day/1/input")
	if !errors.Is(err, ErrInputUnreadable) {
		t.Fatalf("fileOrFetch() = %v, want ErrInputUnreadable", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Errorf("input cached despite failed fetch: %v", statErr)
	}
}

type countSolver struct {
	*Puzzle
	ran *int
}

func (s countSolver) D4p1() any {
	*s.ran++
	return 7
}

var errBadLine = errors.New("bad line")

type failSolver struct {
	*Puzzle
}

func (s failSolver) D3p1() any { return errBadLine }

func setRunFlags(t *testing.T, input string, skipSample bool) {
	oldInput, oldSkip, oldOnly := flagInput, flagSkipSample, flagOnlySample
	t.Cleanup(func() {
		flagInput, flagSkipSample, flagOnlySample = oldInput, oldSkip, oldOnly
	})
	flagInput, flagSkipSample, flagOnlySample = input, skipSample, false
}

func TestRunDaySkipsUnreadableInput(t *testing.T) {
	setRunFlags(t, filepath.Join(t.TempDir(), "missing.input"), false)

	var ran int
	s := &countSolver{ran: &ran}
	days := extractMethods(s)
	if err := runDay(s, 2023, days[4], nil); err != nil {
		t.Fatalf("runDay() = %v, want nil", err)
	}
	if ran != 0 {
		t.Errorf("solver ran %d times for a day without input", ran)
	}
}

func TestRunDayRunsParts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "4.input")
	if err := os.WriteFile(path, []byte("x\n"), 0644); err != nil {
		t.Fatal(err)
	}
	setRunFlags(t, path, false)

	var ran int
	s := &countSolver{ran: &ran}
	days := extractMethods(s)
	samples := map[string]sample{"D4p1": {input: "y\n", want: "7"}}
	if err := runDay(s, 2023, days[4], samples); err != nil {
		t.Fatalf("runDay() = %v, want nil", err)
	}
	if ran != 2 {
		t.Errorf("solver ran %d times, want 2 (sample and input)", ran)
	}
}

func TestRunDayReturnsSolverError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "3.input")
	if err := os.WriteFile(path, []byte("x\n"), 0644); err != nil {
		t.Fatal(err)
	}
	setRunFlags(t, path, true)

	s := &failSolver{}
	days := extractMethods(s)
	err := runDay(s, 2023, days[3], nil)
	if !errors.Is(err, errBadLine) {
		t.Fatalf("runDay() = %v, want %v", err, errBadLine)
	}
}
