// Package diff compares two revisions of a prompt: a word level diff of the
// text and the change of every quality dimension.
package diff

import (
	"fmt"
	"io"
	"strings"

	"github.com/aryann/difflib"

	"promptengine/pkg/quality"
	"promptengine/pkg/utils"
)

type Op string

const (
	Equal  Op = "equal"
	Delete Op = "delete"
	Insert Op = "insert"
)

type WordDelta struct {
	Op   Op     `json:"op"`
	Text string `json:"text"`
}

// ChangeType classifies a score movement.
type ChangeType string

const (
	Unchanged ChangeType = "unchanged"
	Improved  ChangeType = "improved"
	Regressed ChangeType = "regressed"
)

type DimensionChange struct {
	Dimension quality.Dimension `json:"dimension"`
	Old       float64           `json:"old"`
	New       float64           `json:"new"`
	Delta     float64           `json:"delta"`
	State     ChangeType        `json:"state"`
}

// PromptDiff is the comparison of an original prompt with its revision.
type PromptDiff struct {
	Words       []WordDelta       `json:"words"`
	Dimensions  []DimensionChange `json:"dimensions"`
	Overall     DimensionChange   `json:"overall"`
	Improvement float64           `json:"improvement"`
}

// Prompts scores both texts and diffs them.
func Prompts(oldText, newText string) PromptDiff {
	return Reports(oldText, newText, quality.Score(oldText), quality.Score(newText))
}

// Reports diffs the texts using reports that were already computed.
func Reports(oldText, newText string, oldR, newR quality.Report) PromptDiff {
	d := PromptDiff{
		Words:       Words(oldText, newText),
		Dimensions:  make([]DimensionChange, 0, len(quality.Weights)),
		Overall:     change("overall", oldR.Overall, newR.Overall),
		Improvement: quality.Improvement(oldR, newR),
	}
	for _, w := range quality.Weights {
		d.Dimensions = append(d.Dimensions, change(w.Dimension, oldR.Get(w.Dimension), newR.Get(w.Dimension)))
	}
	return d
}

func change(dim quality.Dimension, a, b float64) DimensionChange {
	c := DimensionChange{Dimension: dim, Old: a, New: b, Delta: quality.Round2(b - a), State: Unchanged}
	switch {
	case c.Delta > 0:
		c.State = Improved
	case c.Delta < 0:
		c.State = Regressed
	}
	return c
}

// Words computes a word level diff from a to b. Adjacent tokens with the
// same operation are merged; whitespace between two changes of the same
// kind stays with them.
func Words(a, b string) []WordDelta {
	if a == b {
		if a == "" {
			return nil
		}
		return []WordDelta{{Op: Equal, Text: a}}
	}
	recs := difflib.Diff(utils.TokenizeWords(a), utils.TokenizeWords(b))
	out := make([]WordDelta, 0, len(recs))
	for _, r := range recs {
		var op Op
		switch r.Delta {
		case difflib.Common:
			op = Equal
		case difflib.LeftOnly:
			op = Delete
		case difflib.RightOnly:
			op = Insert
		default:
			continue
		}
		if n := len(out); n > 0 && out[n-1].Op == op {
			out[n-1].Text += r.Payload
			continue
		}
		out = append(out, WordDelta{Op: op, Text: r.Payload})
	}
	return out
}

// Old and New rebuild the two texts from a word diff.
func Old(ws []WordDelta) string { return join(ws, Insert) }
func New(ws []WordDelta) string { return join(ws, Delete) }

func join(ws []WordDelta, skip Op) string {
	var b strings.Builder
	for _, w := range ws {
		if w.Op != skip {
			b.WriteString(w.Text)
		}
	}
	return b.String()
}

const (
	ansiReset = "\x1b[0m"
	fgGreen   = "\x1b[32m"
	fgRed     = "\x1b[31m"
	fgCyan    = "\x1b[36m"
	faint     = "\x1b[2m"
	uline     = "\x1b[4m"
	strike    = "\x1b[9m"
)

func renderWords(ws []WordDelta) string {
	var b strings.Builder
	for _, d := range ws {
		switch d.Op {
		case Equal:
			b.WriteString(d.Text)
		case Insert:
			fmt.Fprintf(&b, "%s%s%s%s", fgGreen, uline, d.Text, ansiReset)
		case Delete:
			fmt.Fprintf(&b, "%s%s%s%s", fgRed, strike, d.Text, ansiReset)
		}
	}
	return b.String()
}

var tags = map[ChangeType]string{
	Improved:  fgGreen + "[+]" + ansiReset,
	Regressed: fgRed + "[-]" + ansiReset,
	Unchanged: faint + "[=]" + ansiReset,
}

// Print writes a colored rendering of d for terminals.
func (d PromptDiff) Print(w io.Writer) {
	fmt.Fprintln(w, fgCyan+"Text"+ansiReset)
	fmt.Fprintln(w, renderWords(d.Words))
	fmt.Fprintln(w)

	fmt.Fprintln(w, fgCyan+"Scores"+ansiReset)
	for _, c := range d.Dimensions {
		fmt.Fprintf(w, "  %s %-22s %5.2f -> %5.2f (%+.2f)\n", tags[c.State], c.Dimension, c.Old, c.New, c.Delta)
	}
	fmt.Fprintf(w, "  %s %-22s %5.2f -> %5.2f (%+.2f, %+.2f%%)\n",
		tags[d.Overall.State], d.Overall.Dimension, d.Overall.Old, d.Overall.New, d.Overall.Delta, d.Improvement)
}
