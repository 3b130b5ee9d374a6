// Package aoc are quick & dirty utilities for running Advent of Code
// solvers against their samples and real inputs. (forked from bradfitz/aoc)
package aoc

import (
	"bufio"
	"bytes"
	"errors"
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"golang.org/x/exp/maps"
)

// ErrInputUnreadable is returned when a puzzle's input can be neither read
// from disk nor fetched.
var ErrInputUnreadable = errors.New("input not readable")

type sample struct {
	input string
	want  string
}

var sampleRx = regexp.MustCompile(`(?sm)^\s*want=([^\n]*)(?:\s+(.+\n))?\s*`)

func parseSample(funcName, comment string) (sample, bool) {
	text := strings.TrimPrefix(comment, "//")
	if v, ok := strings.CutPrefix(text, "/*"); ok {
		text = strings.TrimSuffix(v, "*/")
	}
	if m := sampleRx.FindStringSubmatch(text); m != nil {
		s := sample{
			want:  m[1],
			input: m[2],
		}
		return s, true
	}
	var zero sample
	return zero, false
}

func extractSamples(src []byte) map[string]sample {
	fs := token.NewFileSet()
	f, err := parser.ParseFile(fs, "aoc.go", src, parser.ParseComments)
	if err != nil {
		log.Fatalf("parsing source to extract samples: %v", err)
	}
	var lastInput string
	samples := make(map[string]sample)
	for _, d := range f.Decls {
		fd, ok := d.(*ast.FuncDecl)
		if !ok || fd.Doc == nil {
			continue
		}
		funcName := fd.Name.Name
		for _, c := range fd.Doc.List {
			s, ok := parseSample(funcName, c.Text)
			if ok {
				s.input = Or(s.input, lastInput)
				samples[funcName] = s
				lastInput = s.input
				break
			}
		}
	}
	return samples
}

type Puzzle struct {
	year       int
	day        day
	SampleMode bool

	solver  partSolver
	samples map[string]sample
	input   []byte
}

// NewPuzzle returns a Puzzle whose real input is input. It is meant for
// calling solver methods directly, outside of Run.
func NewPuzzle(year int, input []byte) *Puzzle {
	return &Puzzle{year: year, input: input}
}

func (p *Puzzle) descriptionPath() string {
	return fmt.Sprintf("%d/%d.html", p.year, p.day.day)
}

func (p *Puzzle) Description() ([]byte, error) {
	return fileOrFetch(p.descriptionPath(), fmt.Sprintf("https://adventofcode.com/%d/day/%d", p.year, p.day.day))
}

func (p *Puzzle) inputPath() string {
	if flagInput != "" {
		return flagInput
	}
	return fmt.Sprintf("%d/%d.input", p.year, p.day.day)
}

// loadInput reads the real input for the current day and keeps it for
// subsequent calls to Input.
func (p *Puzzle) loadInput() error {
	b, err := fileOrFetch(p.inputPath(), fmt.Sprintf("https://adventofcode.com/%d/day/%d/input", p.year, p.day.day))
	if err != nil {
		return err
	}
	p.input = b
	return nil
}

func (p *Puzzle) Input() []byte {
	if p.SampleMode {
		return []byte(p.Sample().input)
	}
	return p.input
}

func (p *Puzzle) Scanner() *bufio.Scanner {
	return bufio.NewScanner(bytes.NewReader(p.Input()))
}

func (p *Puzzle) ForLinesY(onLine func(int, string)) {
	s := p.Scanner()
	y := -1
	for s.Scan() {
		y++
		onLine(y, s.Text())
	}
	if err := s.Err(); err != nil {
		log.Fatal(err)
	}
}

func (p *Puzzle) Debug(v ...any) {
	if flagDebug {
		fmt.Println(v...)
	}
}

func (p *Puzzle) Debugf(format string, args ...any) {
	if flagDebug && p.SampleMode {
		fmt.Printf(format+"\n", args...)
	}
}

// ForLines calls onLine for each line of input.
func (p *Puzzle) ForLines(onLine func(line string)) {
	p.ForLinesY(func(_ int, line string) { onLine(line) })
}

// Lines returns all lines of input, in order.
func (p *Puzzle) Lines() []string {
	var lines []string
	p.ForLines(func(line string) { lines = append(lines, line) })
	return lines
}

func (p *Puzzle) Sample() sample {
	sample, ok := p.samples[p.solver.Name]
	if !ok {
		log.Fatalf("no sample found for %v", p.solver.Name)
	}
	return sample
}

type day struct {
	day   int
	parts []partSolver
}

type partSolver struct {
	fn   func() any
	Part string
	Name string
}

// extractMethods registers a struct with methods named D{day}p{part} for
// each day/part of Advent of Code. The methods must have the signature
// func() any.
func extractMethods(x any) map[int]day {
	rx := regexp.MustCompile(`^D(\d+)p(\d+.*)$`)
	v := reflect.ValueOf(x).Elem()
	if v.Kind() != reflect.Struct {
		log.Fatalf("Register: got %T; want struct", x)
	}
	vt := v.Type()
	byDays := map[int][]partSolver{}
	for i := 0; i < vt.NumMethod(); i++ {
		mt := vt.Method(i)
		mn := mt.Name
		matches := rx.FindStringSubmatch(mn)
		if len(matches) != 3 {
			continue
		}
		m := v.Method(i).Interface().(func() any)
		day, part := matches[1], matches[2]
		d := Int(day)
		byDays[d] = append(byDays[d], partSolver{
			fn:   m,
			Part: part,
			Name: mn,
		})
	}
	days := make(map[int]day, len(byDays))
	for d, parts := range byDays {
		slices.SortFunc(parts, func(i, j partSolver) int {
			return strings.Compare(i.Part, j.Part)
		})
		days[d] = day{parts: parts, day: d}
	}
	return days
}

var (
	flagCurDay     int
	flagPart       string
	flagDebug      bool
	flagOnlySample bool
	flagSkipSample bool
	flagInput      string
	flagFetch      bool
	flagDescribe   bool
)

func init() {
	flag.IntVar(&flagCurDay, "day", -1, "day to run")
	flag.BoolVar(&flagOnlySample, "sample", false, "only run sample")
	flag.BoolVar(&flagSkipSample, "skip-sample", false, "skip sample")
	flag.BoolVar(&flagDebug, "debug", false, "debug mode")
	flag.StringVar(&flagPart, "part", "", "part to run")
	flag.StringVar(&flagInput, "input", "", "input file; default is <year>/<day>.input")
	flag.BoolVar(&flagFetch, "fetch", false, "fetch missing inputs from adventofcode.com")
	flag.BoolVar(&flagDescribe, "describe", false, "print the puzzle description before running")
}

var initFlags = sync.OnceFunc(flag.Parse)

var (
	okColor  = color.New(color.FgGreen)
	badColor = color.New(color.FgRed)
)

// runDay runs the parts of day. A day whose input cannot be read is logged
// and skipped. It returns the first error value a part returns.
func runDay(slvr any, year int, day day, samples map[string]sample) error {
	p := Puzzle{
		year:    year,
		day:     day,
		samples: samples,
	}
	fmt.Println("Running day", day.day)
	sr := reflect.ValueOf(slvr)
	sr.Elem().FieldByName("Puzzle").Set(reflect.ValueOf(&p))

	if flagDescribe {
		if text, err := p.DescriptionText(); err != nil {
			log.Printf("day %d: %v", day.day, err)
		} else {
			fmt.Println(text)
		}
	}
	if !flagOnlySample {
		// Prime the input.
		if err := p.loadInput(); err != nil {
			log.Printf("day %d: %v", day.day, err)
			return nil
		}
	}

	for _, ps := range day.parts {
		p.solver = ps
		if flagPart != "" && ps.Part != flagPart {
			continue
		}

		for _, sm := range []bool{true, false} {
			if !sm && flagOnlySample {
				continue
			} else if sm && flagSkipSample {
				continue
			}
			p.SampleMode = sm
			t0 := time.Now()
			got := ps.fn()
			if err, ok := got.(error); ok {
				return fmt.Errorf("day %d part %s: %w", day.day, ps.Part, err)
			}
			if sm {
				sample := p.Sample()
				if fmt.Sprint(got) != sample.want {
					badColor.Printf("part %s: %v ❌; want %v\n", ps.Part, got, sample.want)
					return nil
				}
				okColor.Printf("part %s sample: %v ✅ (%v) \n", ps.Part, got, time.Since(t0).Round(time.Microsecond))
			} else {
				fmt.Printf("part %s: %v (took %v) \n", ps.Part, got, time.Since(t0).Round(time.Microsecond))
			}
		}
	}
	return nil
}

// Run runs every D{day}p{part} method of slvr, or only those selected by
// flags. slvr must be a pointer to a struct embedding *Puzzle, and src the
// source file declaring those methods, from which samples are read.
func Run(year int, src []byte, slvr any) {
	samples := extractSamples(src)
	days := extractMethods(slvr)
	initFlags()

	if flagCurDay != -1 {
		day, ok := days[flagCurDay]
		if !ok {
			log.Fatalf("no day %d", flagCurDay)
		}
		if err := runDay(slvr, year, day, samples); err != nil {
			log.Fatal(err)
		}
		return
	}

	dayNums := maps.Keys(days)
	slices.Sort(dayNums)
	for _, day := range dayNums {
		if err := runDay(slvr, year, days[day], samples); err != nil {
			log.Fatal(err)
		}
		fmt.Println()
	}
}

var session = sync.OnceValues(func() (string, error) {
	b, err := os.ReadFile(filepath.Join(os.Getenv("HOME"), "keys", "aoc.session"))
	if err != nil {
		return "", fmt.Errorf("reading session key: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
})

func request(method, url string, body io.Reader) (*http.Request, error) {
	s, err := session()
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	req.AddCookie(&http.Cookie{Name: "session", Value: s})
	return req, nil
}

func fileOrFetch(filename, url string) ([]byte, error) {
	f, err := os.ReadFile(filename)
	if err == nil {
		return f, nil
	}
	if !flagFetch {
		return nil, fmt.Errorf("%w: %w", ErrInputUnreadable, err)
	}

	body, err := fetch(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputUnreadable, err)
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0700); err != nil {
		return nil, fmt.Errorf("%w: caching: %w", ErrInputUnreadable, err)
	}
	if err := os.WriteFile(filename, body, 0644); err != nil {
		return nil, fmt.Errorf("%w: caching: %w", ErrInputUnreadable, err)
	}
	return body, nil
}

func fetch(url string) ([]byte, error) {
	req, err := request("GET", url, nil)
	if err != nil {
		return nil, err
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != 200 {
		return nil, fmt.Errorf("url %v failed: %v", url, res.Status)
	}
	return io.ReadAll(res.Body)
}

// Fold calls f on each element of in, threading the result through.
func Fold[T any, R any](in []T, f func(R, T) R, defVal R) R {
	out := defVal
	for _, v := range in {
		out = f(out, v)
	}
	return out
}

// FoldErr is like Fold, but stops at the first error f returns. The
// partial result is discarded.
func FoldErr[T any, R any](in []T, f func(R, T) (R, error), defVal R) (R, error) {
	out := defVal
	for _, v := range in {
		var err error
		if out, err = f(out, v); err != nil {
			var zero R
			return zero, err
		}
	}
	return out, nil
}

// Parallel calls f on each element of in concurrently and returns the
// results in input order.
func Parallel[I, O any](in []I, f func(I) O) []O {
	var wg sync.WaitGroup
	wg.Add(len(in))
	out := make([]O, len(in))
	for i, v := range in {
		go func(i int, v I) {
			defer wg.Done()
			out[i] = f(v)
		}(i, v)
	}
	wg.Wait()
	return out
}
