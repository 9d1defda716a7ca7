package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path     string
		content  string
		expected string
	}{
		{"App.js", "export default function App() {}", "javascript"},
		{"screens/Home.tsx", "export const Home = () => <View />;", "tsx"},
		{"styles/main.css", "body { margin: 0; }", "css"},
		{"README.md", "# My App\n\nGenerated.", "markdown"},
		{"notes.unknownext", "whatever", "javascript"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, DetectLanguage(tt.path, tt.content), tt.path)
	}
}
