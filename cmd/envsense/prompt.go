package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// promptYesNo asks a yes/no question and reads the answer line by line.
// An empty line takes the default; EOF with no answer means no.
func promptYesNo(in io.Reader, out io.Writer, question string, defaultYes bool) (bool, error) {
	suffix := "[y/N]:"
	if defaultYes {
		suffix = "[Y/n]:"
	}
	reader := bufio.NewReader(in)
	for {
		if _, err := fmt.Fprintf(out, "%s %s ", question, suffix); err != nil {
			return false, err
		}
		line, err := reader.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		switch answer {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		case "":
			if err != nil {
				// EOF with no response: treat as no.
				return false, nil
			}
			return defaultYes, nil
		default:
			if err != nil {
				return false, fmt.Errorf("invalid response %q", answer)
			}
			if _, err := fmt.Fprintln(out, "Please enter y or n."); err != nil {
				return false, err
			}
		}
	}
}
