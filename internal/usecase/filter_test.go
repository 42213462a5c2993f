package usecase

import (
	"testing"

	"github.com/naka-gawa/check-versions/internal/domain"
	"github.com/stretchr/testify/assert"
)

var toolkitFilter = ToolFilter{ToolMarker: "wav-files-", OrgMarker: "RustedBytes", SelfRepo: "wav-files-toolkit"}

func ref(url string) domain.RepoReference {
	r := domain.RepoReference{URL: url}
	r.Name = r.RepoSegment()
	return r
}

func TestToolFilter_Matches(t *testing.T) {
	testCases := []struct {
		name     string
		url      string
		expected bool
	}{
		{name: "tool marker", url: "https://github.com/RustedBytes/wav-files-encoder", expected: true},
		{name: "tool marker outside org", url: "https://github.com/someone/wav-files-fork", expected: true},
		{name: "org repository", url: "https://github.com/RustedBytes/audio-kit", expected: true},
		{name: "tool marker wins over self exclusion", url: "https://github.com/RustedBytes/wav-files-toolkit", expected: true},
		{name: "unrelated", url: "https://github.com/ffmpeg/ffmpeg", expected: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, toolkitFilter.Matches(tc.url))
		})
	}

	t.Run("org repository named after hosting project", func(t *testing.T) {
		f := ToolFilter{OrgMarker: "RustedBytes", SelfRepo: "toolkit"}
		assert.False(t, f.Matches("https://github.com/RustedBytes/toolkit"))
	})
}

func TestMerge(t *testing.T) {
	base := []domain.RepoReference{ref("https://github.com/o/a"), ref("https://github.com/o/b")}
	extra := []domain.RepoReference{ref("https://github.com/o/b"), ref("https://github.com/o/c"), ref("https://github.com/o/c")}

	merged := Merge(base, extra)

	assert.Equal(t, []domain.RepoReference{
		ref("https://github.com/o/a"),
		ref("https://github.com/o/b"),
		ref("https://github.com/o/c"),
	}, merged)
}

func TestDedupe(t *testing.T) {
	repos := []domain.RepoReference{
		{Name: "first", URL: "https://github.com/o/a"},
		{Name: "b", URL: "https://github.com/o/b"},
		{Name: "second", URL: "https://github.com/o/a"},
	}

	once := Dedupe(repos)

	assert.Equal(t, []domain.RepoReference{
		{Name: "first", URL: "https://github.com/o/a"},
		{Name: "b", URL: "https://github.com/o/b"},
	}, once)
	assert.Equal(t, once, Dedupe(once), "dedupe must be idempotent")
}

func TestToolFilter_SelectTools(t *testing.T) {
	repos := []domain.RepoReference{
		ref("https://github.com/RustedBytes/wav-files-encoder"),
		ref("https://github.com/ffmpeg/ffmpeg"),
		ref("https://github.com/RustedBytes/wav-files-encoder"),
		ref("https://github.com/RustedBytes/audio-kit"),
	}

	selected := toolkitFilter.SelectTools(repos)

	assert.Equal(t, []domain.RepoReference{
		ref("https://github.com/RustedBytes/wav-files-encoder"),
		ref("https://github.com/RustedBytes/audio-kit"),
	}, selected)
	assert.Equal(t, selected, toolkitFilter.SelectTools(selected))
	assert.Empty(t, toolkitFilter.SelectTools([]domain.RepoReference{ref("https://github.com/ffmpeg/ffmpeg")}))
}
