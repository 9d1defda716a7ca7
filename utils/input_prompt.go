package utils

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/meysamhadeli/snackforge/constants/lipgloss"
)

// ConfirmPrompt asks a yes/no question and reports whether the user answered yes.
// An empty answer or end of input counts as no.
func ConfirmPrompt(w io.Writer, question string, reader *bufio.Reader) (bool, error) {
	fmt.Fprint(w, lipgloss.BlueSky.Render(fmt.Sprintf("%s (y/N): ", question)))

	answer, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("error reading input: %w", err)
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}
