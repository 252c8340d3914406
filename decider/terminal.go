// Package decider provides the decision providers that resolve ambiguous
// records: an interactive terminal prompt, a scripted provider for batch runs
// and tests, and an AI suggester.
package decider

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rfinn/banksort"
)

// Terminal prompts an operator on a terminal and blocks until a valid choice
// (or an explicit skip) is entered. Invalid input retries.
type Terminal struct {
	r *bufio.Reader
	w io.Writer
}

// NewTerminal creates a provider reading choices from r (usually os.Stdin)
// and writing prompts to w (usually os.Stdout).
func NewTerminal(r io.Reader, w io.Writer) *Terminal {
	return &Terminal{r: bufio.NewReader(r), w: w}
}

var _ banksort.DecisionProvider = (*Terminal)(nil)

// ResolveAction asks the operator for the action of a record no rule could
// decide.
func (t *Terminal) ResolveAction(rec banksort.RawRecord, src *banksort.Source) (banksort.Action, bool, error) {
	for {
		fmt.Fprintf(t.w, "Need an action for: %s - %s\n", src.Name, rec.Summary())
		fmt.Fprint(t.w, "Select the action: income(i), expense(e), move(m), or skip(s) > ")

		choice, err := t.readLine()
		if err != nil {
			return "", false, err
		}
		switch choice {
		case "i", "income":
			return banksort.Income, true, nil
		case "e", "expense":
			return banksort.Expense, true, nil
		case "m", "move":
			return banksort.Move, true, nil
		case "s", "skip":
			return "", false, nil
		}
		fmt.Fprintln(t.w, "Invalid selection. Try again.")
	}
}

// ResolveCategory asks the operator to pick a category by number from the
// enumerated list.
func (t *Terminal) ResolveCategory(e *banksort.Entry, categories []string) (string, bool, error) {
	for {
		fmt.Fprintf(t.w, "Need to categorize: %s\n", e.Summary())
		var b strings.Builder
		b.WriteString("Select the number that matches the category: ")
		for i, cat := range categories {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s(%d)", cat, i)
		}
		b.WriteString(", or skip(s) > ")
		fmt.Fprint(t.w, b.String())

		choice, err := t.readLine()
		if err != nil {
			return "", false, err
		}
		if choice == "s" || choice == "skip" {
			return "", false, nil
		}
		if n, err := strconv.Atoi(choice); err == nil && n >= 0 && n < len(categories) {
			return categories[n], true, nil
		}
		fmt.Fprintln(t.w, "Invalid selection. Try again.")
	}
}

func (t *Terminal) readLine() (string, error) {
	line, err := t.r.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading operator choice: %w", err)
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}
