package extractor

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/naka-gawa/check-versions/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_FromReadme(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected []domain.RepoReference
	}{
		{
			name:    "self link is dropped",
			content: "- [wav-files-encoder](https://github.com/RustedBytes/wav-files-encoder)\n- [Homepage](https://github.com/RustedBytes/wav-files-toolkit)\n",
			expected: []domain.RepoReference{
				{Name: "wav-files-encoder", URL: "https://github.com/RustedBytes/wav-files-encoder"},
			},
		},
		{
			name:    "fragment and query are stripped",
			content: "[a](https://github.com/o/a#usage) [b](https://github.com/o/b?tab=readme)",
			expected: []domain.RepoReference{
				{Name: "a", URL: "https://github.com/o/a"},
				{Name: "b", URL: "https://github.com/o/b"},
			},
		},
		{
			name: "badge and asset links are excluded",
			content: "[img](https://github.com/o/logo.png) [pic](https://github.com/o/pic.jpg) " +
				"[badge](https://github.com/o/r/actions/workflows/ci.yml/badge.svg) " +
				"[rel](https://github.com/o/r/releases)",
			expected: nil,
		},
		{
			name:     "self link with fragment is dropped",
			content:  "[home](https://github.com/RustedBytes/wav-files-toolkit#readme)",
			expected: nil,
		},
		{
			name:    "duplicates are kept in order",
			content: "[x](https://github.com/o/x) [y](https://github.com/o/y) [x again](https://github.com/o/x)",
			expected: []domain.RepoReference{
				{Name: "x", URL: "https://github.com/o/x"},
				{Name: "y", URL: "https://github.com/o/y"},
				{Name: "x again", URL: "https://github.com/o/x"},
			},
		},
		{
			name:     "non-github and plain urls are ignored",
			content:  "see https://github.com/o/bare and [site](https://example.com/o/r)",
			expected: nil,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := New("wav-files-toolkit", nil)
			assert.Equal(t, tc.expected, e.FromReadme(tc.content))
		})
	}
}

func TestExtractor_FromWorkflow(t *testing.T) {
	content := `
      - run: curl -L https://github.com/RustedBytes/wav-files-encoder/releases/download/v1.0.0/enc.tar.gz
      - run: curl -L "https://github.com/RustedBytes/wav-files-splitter"
      - run: echo https://github.com/RustedBytes/wav-files-encoder
`
	e := New("wav-files-toolkit", nil)
	expected := []domain.RepoReference{
		{Name: "wav-files-encoder", URL: "https://github.com/RustedBytes/wav-files-encoder"},
		{Name: "wav-files-splitter", URL: "https://github.com/RustedBytes/wav-files-splitter"},
	}
	assert.Equal(t, expected, e.FromWorkflow(content))
}

func TestExtractor_LoadReadme(t *testing.T) {
	t.Run("reads and extracts", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "README.md")
		require.NoError(t, os.WriteFile(path, []byte("[t](https://github.com/RustedBytes/wav-files-trim)"), 0o644))

		repos, err := New("wav-files-toolkit", nil).LoadReadme(path)
		require.NoError(t, err)
		assert.Equal(t, []domain.RepoReference{{Name: "t", URL: "https://github.com/RustedBytes/wav-files-trim"}}, repos)
	})

	t.Run("missing file is fatal", func(t *testing.T) {
		_, err := New("wav-files-toolkit", nil).LoadReadme(filepath.Join(t.TempDir(), "missing.md"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrReadme))
	})
}

func TestExtractor_LoadWorkflow_Missing(t *testing.T) {
	var diag bytes.Buffer
	repos := New("wav-files-toolkit", nil).LoadWorkflow(filepath.Join(t.TempDir(), "nope.yml"), &diag)
	assert.Empty(t, repos)
	assert.Contains(t, diag.String(), "Error reading workflow")
}
