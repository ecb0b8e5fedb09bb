// Package resolve separates the reconciliation engine from interactive
// I/O. The engine asks a Resolver; callers inject either the console
// implementation or a scripted one.
package resolve

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// ErrCancelled signals that the operator aborted the in-flight file.
// It never fails the whole batch.
var ErrCancelled = errors.New("cancelled by operator")

// Decision is the outcome of resolving one unmapped source header.
// Remember marks decisions the operator actually gave; only those are
// worth persisting to the choice cache. A resolver fallback (such as a
// scripted answer degraded by a declined overwrite) leaves it unset.
type Decision struct {
	Target   string
	Skip     bool
	Remember bool
}

// Resolver answers the questions the engine cannot decide on its own.
// assigned maps canonical column -> source header already claimed in the
// current run.
type Resolver interface {
	SelectSheet(file string, sheets []string) (string, error)
	ResolveColumn(source string, columns []string, assigned map[string]string) (Decision, error)
	ConfirmOverwrite(target, claimedBy string) (bool, error)
}

// Console prompts on an io.Reader/Writer pair, normally stdin/stdout.
// Input is read on its own goroutine so a pending prompt can be
// cancelled from outside via Interrupt.
type Console struct {
	out   io.Writer
	lines chan string

	mu      sync.Mutex
	pending chan struct{}
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	c := &Console{out: out, lines: make(chan string)}
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			c.lines <- strings.TrimSpace(scanner.Text())
		}
		close(c.lines)
	}()
	return c
}

// Interrupt cancels the prompt currently waiting for input, if any,
// making it return ErrCancelled. It reports whether an interrupt was
// consumed; false means no prompt was pending and the caller owns the
// signal (typically exiting the process).
func (c *Console) Interrupt() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return false
	}
	close(c.pending)
	c.pending = nil
	return true
}

func (c *Console) readLine() (string, error) {
	c.mu.Lock()
	cancel := make(chan struct{})
	c.pending = cancel
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		if c.pending == cancel {
			c.pending = nil
		}
		c.mu.Unlock()
	}()

	select {
	case line, ok := <-c.lines:
		if !ok {
			fmt.Fprintln(c.out, "\noperation cancelled")
			return "", ErrCancelled
		}
		return line, nil
	case <-cancel:
		fmt.Fprintln(c.out, "\noperation cancelled")
		return "", ErrCancelled
	}
}

func (c *Console) SelectSheet(file string, sheets []string) (string, error) {
	fmt.Fprintf(c.out, "\nFile %q contains multiple sheets:\n", file)
	for i, sheet := range sheets {
		fmt.Fprintf(c.out, "  %d. %s\n", i+1, sheet)
	}

	for {
		fmt.Fprintf(c.out, "Enter the sheet name or number (1-%d): ", len(sheets))
		choice, err := c.readLine()
		if err != nil {
			return "", err
		}
		if choice == "" {
			continue
		}

		if n, err := strconv.Atoi(choice); err == nil {
			if n >= 1 && n <= len(sheets) {
				return sheets[n-1], nil
			}
			fmt.Fprintf(c.out, "enter a number between 1 and %d\n", len(sheets))
			continue
		}
		for _, sheet := range sheets {
			if sheet == choice {
				return sheet, nil
			}
		}
		fmt.Fprintf(c.out, "sheet %q not found, available: %s\n", choice, strings.Join(sheets, ", "))
	}
}

func (c *Console) ResolveColumn(source string, columns []string, assigned map[string]string) (Decision, error) {
	fmt.Fprintf(c.out, "\nColumn %q could not be automatically mapped.\n", source)
	fmt.Fprintln(c.out, "Available target columns (* = already assigned):")
	for i, col := range columns {
		mark := " "
		if _, ok := assigned[col]; ok {
			mark = "*"
		}
		fmt.Fprintf(c.out, " %s %2d. %s\n", mark, i+1, col)
	}
	if len(assigned) > 0 {
		fmt.Fprintln(c.out, "Current assignments:")
		targets := make([]string, 0, len(assigned))
		for target := range assigned {
			targets = append(targets, target)
		}
		sort.Strings(targets)
		for _, target := range targets {
			fmt.Fprintf(c.out, "  %q -> %q\n", assigned[target], target)
		}
	}

	for {
		fmt.Fprintf(c.out, "Target column name/number for %q (or 'skip'): ", source)
		choice, err := c.readLine()
		if err != nil {
			return Decision{}, err
		}
		if choice == "" {
			continue
		}
		if strings.EqualFold(choice, "skip") {
			return Decision{Skip: true, Remember: true}, nil
		}

		if n, err := strconv.Atoi(choice); err == nil {
			if n >= 1 && n <= len(columns) {
				return Decision{Target: columns[n-1], Remember: true}, nil
			}
			fmt.Fprintf(c.out, "enter a number between 1 and %d\n", len(columns))
			continue
		}
		for _, col := range columns {
			if col == choice {
				return Decision{Target: col, Remember: true}, nil
			}
		}
		fmt.Fprintf(c.out, "column %q not found\n", choice)
	}
}

func (c *Console) ConfirmOverwrite(target, claimedBy string) (bool, error) {
	fmt.Fprintf(c.out, "warning: %q is already mapped from %q\n", target, claimedBy)
	fmt.Fprint(c.out, "Overwrite? (y/n): ")
	choice, err := c.readLine()
	if err != nil {
		return false, err
	}
	return strings.EqualFold(choice, "y"), nil
}

// Scripted answers from fixed tables, for batch runs and tests. A
// source header missing from Mappings is skipped.
type Scripted struct {
	Sheet     string
	Mappings  map[string]string
	Overwrite bool
	CancelOn  string
}

func (s *Scripted) SelectSheet(file string, sheets []string) (string, error) {
	for _, sheet := range sheets {
		if sheet == s.Sheet {
			return sheet, nil
		}
	}
	if len(sheets) > 0 {
		return sheets[0], nil
	}
	return "", ErrCancelled
}

func (s *Scripted) ResolveColumn(source string, columns []string, assigned map[string]string) (Decision, error) {
	if s.CancelOn != "" && source == s.CancelOn {
		return Decision{}, ErrCancelled
	}
	target, ok := s.Mappings[source]
	if !ok {
		// Default, not an answer: nothing worth remembering.
		return Decision{Skip: true}, nil
	}
	if target == "" || target == "skip" {
		return Decision{Skip: true, Remember: true}, nil
	}
	// A scripted answer cannot re-prompt; a declined overwrite becomes
	// a skip instead of looping. The skip is circumstantial (it depends
	// on which columns happen to be claimed), so it is not remembered.
	if claimedBy, taken := assigned[target]; taken && claimedBy != source && !s.Overwrite {
		return Decision{Skip: true}, nil
	}
	return Decision{Target: target, Remember: true}, nil
}

func (s *Scripted) ConfirmOverwrite(target, claimedBy string) (bool, error) {
	return s.Overwrite, nil
}
