package utils

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/glamour"
)

var glamourStyles = map[string]bool{
	"ascii": true, "dark": true, "dracula": true, "light": true, "notty": true, "pink": true, "tokyo-night": true,
}

// RenderChat renders a conversational model reply as terminal markdown.
// Themes glamour does not ship fall back to its automatic dark/light detection.
func RenderChat(content string, theme string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}

	style := glamour.WithAutoStyle()
	if glamourStyles[theme] {
		style = glamour.WithStandardStyle(theme)
	}

	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return rendered, nil
}

// HighlightFile writes content syntax-highlighted for a 256-color terminal.
func HighlightFile(w io.Writer, content string, language string, theme string) error {
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, content, language, "terminal256", theme); err != nil {
		return err
	}
	if !strings.HasSuffix(content, "\n") {
		buf.WriteString("\n")
	}
	_, err := w.Write(buf.Bytes())
	return err
}
