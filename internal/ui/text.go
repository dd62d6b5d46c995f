package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Formatter applies semantic formatting to text.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

// Sprint formats the arguments and returns the resulting string.
func (f Formatter) Sprint(a ...interface{}) string {
	text := fmt.Sprint(a...)
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// Sprintf formats according to a format specifier and returns the resulting string.
func (f Formatter) Sprintf(format string, a ...interface{}) string {
	text := fmt.Sprintf(format, a...)
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// EnsureNewline ensures the string ends with a newline character.
func EnsureNewline(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}

func noColor() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	return color.NoColor
}

var (
	// Code formats runnable commands. Yellow, `backticks` without color.
	Code = Formatter{color.New(color.FgYellow), "`", "`"}

	// Path formats system and repository paths.
	Path = Formatter{color.New(color.FgYellow), "", ""}

	// Category formats category names. Cyan, 'single quotes' without color.
	Category = Formatter{color.New(color.FgCyan), "'", "'"}

	Success = Formatter{color.New(color.FgGreen), "", ""}
	Error   = Formatter{color.New(color.FgRed), "", ""}
	Warning = Formatter{color.New(color.FgYellow), "", ""}
	Info    = Formatter{color.New(color.FgCyan), "", ""}

	// Muted formats secondary text. Gray, (parentheses) without color.
	Muted = Formatter{color.New(color.FgHiBlack), "(", ")"}

	// Heading formats section titles.
	Heading = Formatter{color.New(color.Bold), "", ""}
)

// Marker returns the colored one-letter marker for a file status name
// ("modified", "added", "deleted", "missing").
func Marker(status string) string {
	switch status {
	case "modified":
		return Warning.Sprint("M")
	case "added":
		return Success.Sprint("A")
	case "deleted":
		return Error.Sprint("D")
	case "missing":
		return Muted.Sprint("?")
	default:
		return " "
	}
}

// DiffLine colors one line of diff output.
func DiffLine(line string) string {
	switch {
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return line
	case strings.HasPrefix(line, "@@"):
		return Info.Sprint(line)
	case strings.HasPrefix(line, "+"):
		return Success.Sprint(line)
	case strings.HasPrefix(line, "-"):
		return Error.Sprint(line)
	default:
		return line
	}
}
