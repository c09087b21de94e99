// Package fasta parses the multi-sequence text files consumed by the
// CaSSiS CLI driver's --seq flag. Sequence-input parsing is explicitly
// out of scope for the core per spec.md §1 ("specify their contracts
// only") — this is the thin external-format reader the driver needs to
// turn a --seq file into (name, sequence) pairs for seqindex.Index.
package fasta

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is one named sequence.
type Record struct {
	Name string
	Seq  string
}

// ParseFile reads and parses the FASTA file at path.
func ParseFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fasta: opening %s: %w", path, err)
	}
	defer f.Close()
	recs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("fasta: parsing %s: %w", path, err)
	}
	return recs, nil
}

// Parse reads every ">name ...\nSEQ\nSEQ..." record from r. The record
// name is the first whitespace-delimited token after '>'; sequence
// lines are concatenated with internal whitespace stripped.
func Parse(r io.Reader) ([]Record, error) {
	var out []Record
	var cur *Record
	var seq strings.Builder

	flush := func() {
		if cur != nil {
			cur.Seq = seq.String()
			out = append(out, *cur)
		}
		seq.Reset()
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if line[0] == '>' {
			flush()
			name := strings.TrimSpace(line[1:])
			if i := strings.IndexAny(name, " \t"); i >= 0 {
				name = name[:i]
			}
			if name == "" {
				return nil, fmt.Errorf("line %d: empty sequence name", lineNo)
			}
			cur = &Record{Name: name}
			continue
		}
		if cur == nil {
			return nil, fmt.Errorf("line %d: sequence data before any '>' header", lineNo)
		}
		seq.WriteString(strings.Join(strings.Fields(line), ""))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()
	return out, nil
}
