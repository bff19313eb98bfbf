package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

type action int

const (
	actionCommit action = iota
	actionRegenerate
	actionEdit
	actionCopy
	actionCancel
)

func promptUserAction(in *bufio.Reader, out io.Writer, autoPush bool) (action, error) {
	fmt.Fprintln(out, "Options:")
	if autoPush {
		fmt.Fprintln(out, "  [enter] Commit and push")
	} else {
		fmt.Fprintln(out, "  [enter] Commit")
	}
	fmt.Fprintln(out, "  [r] Regenerate message")
	fmt.Fprintln(out, "  [e] Edit message")
	fmt.Fprintln(out, "  [c] Copy to clipboard")
	fmt.Fprintln(out, "  [q] Quit")
	fmt.Fprint(out, "\nChoice (enter/r/e/c/q): ")

	input, err := in.ReadString('\n')
	if err != nil && !(err == io.EOF && input != "") {
		return actionCancel, err
	}
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "", "enter":
		return actionCommit, nil
	case "r", "regenerate":
		return actionRegenerate, nil
	case "e", "edit":
		return actionEdit, nil
	case "c", "copy":
		return actionCopy, nil
	case "q", "quit", "cancel":
		return actionCancel, nil
	default:
		fmt.Fprintln(out, "Invalid choice, defaulting to quit")
		return actionCancel, nil
	}
}

// editMessage reads replacement lines until an empty line. No input keeps
// the original message.
func editMessage(in *bufio.Reader, out io.Writer, original string) (string, error) {
	fmt.Fprintf(out, "\nCurrent message:\n%s\n", original)
	fmt.Fprintln(out, "Enter new message (press Enter twice to finish):")

	var lines []string
	for {
		line, err := in.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line)
		if err == io.EOF {
			break
		}
	}

	if len(lines) == 0 {
		return original, nil
	}
	return strings.Join(lines, "\n"), nil
}
