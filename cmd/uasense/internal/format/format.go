// Package format provides consistent CLI output formatting for uasense
// commands: JSON for scripting, tables and styled summaries for humans.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

// OutputMode defines the output format for CLI commands
type OutputMode string

const (
	// ModeJSON outputs data as JSON
	ModeJSON OutputMode = "json"
	// ModeTable outputs data as ASCII table
	ModeTable OutputMode = "table"
)

// Formatter provides consistent output formatting across CLI commands
type Formatter interface {
	// PrintJSON outputs data as JSON to stdout
	PrintJSON(data any) error

	// PrintTable outputs data as ASCII table to stdout
	PrintTable(headers []string, rows [][]string) error

	// PrintSummary outputs a summary message to stdout (unless quiet mode)
	PrintSummary(message string) error

	// PrintError outputs an error to stderr (or JSON to stdout in JSON mode)
	PrintError(err error) error

	// Mode reports the active output mode.
	Mode() OutputMode
}

type formatter struct {
	stdout io.Writer
	stderr io.Writer
	mode   OutputMode
	quiet  bool
	color  bool
}

// New creates a new Formatter
func New(stdout, stderr io.Writer, mode OutputMode, quiet, colorize bool) Formatter {
	return &formatter{
		stdout: stdout,
		stderr: stderr,
		mode:   mode,
		quiet:  quiet,
		color:  colorize,
	}
}

func (f *formatter) Mode() OutputMode { return f.mode }

// PrintJSON outputs data as JSON to stdout
func (f *formatter) PrintJSON(data any) error {
	enc := json.NewEncoder(f.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// PrintTable outputs data as ASCII table to stdout
func (f *formatter) PrintTable(headers []string, rows [][]string) error {
	if f.mode == ModeJSON {
		var items []map[string]string
		for _, row := range rows {
			item := make(map[string]string)
			for i, header := range headers {
				if i < len(row) {
					item[header] = row[i]
				}
			}
			items = append(items, item)
		}
		return f.PrintJSON(items)
	}

	w := tabwriter.NewWriter(f.stdout, 0, 0, 2, ' ', 0)

	if f.color {
		bold := color.New(color.Bold)
		var styled []string
		for _, h := range headers {
			styled = append(styled, bold.Sprint(strings.ToUpper(h)))
		}
		fmt.Fprintln(w, strings.Join(styled, "\t"))
	} else {
		var upper []string
		for _, h := range headers {
			upper = append(upper, strings.ToUpper(h))
		}
		fmt.Fprintln(w, strings.Join(upper, "\t"))
	}

	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	return w.Flush()
}

// PrintSummary outputs a summary message to stdout unless quiet mode is set.
func (f *formatter) PrintSummary(message string) error {
	if f.quiet || f.mode == ModeJSON {
		return nil
	}
	_, err := fmt.Fprintln(f.stdout, message)
	return err
}

// PrintError outputs an error to stderr, or as JSON to stdout in JSON mode.
func (f *formatter) PrintError(err error) error {
	if err == nil {
		return nil
	}

	if f.mode == ModeJSON {
		return f.PrintJSON(map[string]any{
			"success": false,
			"error":   err.Error(),
		})
	}

	message := "✗ " + err.Error()
	if f.color {
		_, werr := color.New(color.FgRed).Fprintln(f.stderr, message)
		return werr
	}
	_, werr := fmt.Fprintln(f.stderr, message)
	return werr
}
