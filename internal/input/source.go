// Package input supplies the ordered lines the bracket matcher consumes
package input

import (
	"bufio"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed data/example.txt
var exampleData string

// LineSource supplies a fixed, ordered sequence of text lines
type LineSource interface {
	// Name identifies the source in reports and run history
	Name() string
	// Lines returns every line, read fully up front
	Lines(ctx context.Context) ([]string, error)
}

// FileSource reads lines from a file on disk
type FileSource struct {
	Path string
}

// NewFileSource creates a source for the file at path
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Name returns the file path
func (s *FileSource) Name() string {
	return s.Path
}

// Lines reads the whole file
func (s *FileSource) Lines(ctx context.Context) ([]string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("opening input file: %w", err)
	}
	defer f.Close()

	lines, err := ReadLines(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Path, err)
	}
	return lines, nil
}

// ReaderSource reads lines from an arbitrary reader, typically stdin
type ReaderSource struct {
	name string
	r    io.Reader
}

// NewReaderSource creates a source over r
func NewReaderSource(name string, r io.Reader) *ReaderSource {
	return &ReaderSource{name: name, r: r}
}

// NewStdinSource creates a source over os.Stdin
func NewStdinSource() *ReaderSource {
	return NewReaderSource("stdin", os.Stdin)
}

// Name returns the configured source name
func (s *ReaderSource) Name() string {
	return s.name
}

// Lines consumes the reader
func (s *ReaderSource) Lines(ctx context.Context) ([]string, error) {
	return ReadLines(ctx, s.r)
}

// StaticSource serves an in-memory list of lines
type StaticSource struct {
	name  string
	lines []string
}

// NewStaticSource creates a source over the given lines
func NewStaticSource(name string, lines ...string) *StaticSource {
	return &StaticSource{name: name, lines: lines}
}

// Name returns the configured source name
func (s *StaticSource) Name() string {
	return s.name
}

// Lines returns a copy of the lines
func (s *StaticSource) Lines(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out, nil
}

// ExampleSource returns the bundled ten-line example input. It panics if the
// embedded data cannot be read.
func ExampleSource() *StaticSource {
	lines, err := ReadLines(context.Background(), strings.NewReader(exampleData))
	if err != nil {
		panic(fmt.Sprintf("reading embedded example: %v", err))
	}
	return NewStaticSource("example", lines...)
}

// ReadLines splits r on newlines, stripping a trailing carriage return.
// A final newline does not produce an empty trailing line.
func ReadLines(ctx context.Context, r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning lines: %w", err)
	}
	return lines, nil
}
