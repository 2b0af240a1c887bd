package parser

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/harrison/treegen/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeSegment(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantDir bool
	}{
		{in: "a:b", want: "a_b"},
		{in: "src/", want: "src", wantDir: true},
		{in: "/abs", want: "abs"},
		{in: `what?<>*|"\.txt`, want: "what_______.txt"},
		{in: "tab\there", want: "tab_here"},
		{in: "pkg/util/", want: "pkg/util", wantDir: true},
		{in: " spaced ", want: "spaced"},
		{in: "./", want: "", wantDir: true},
		{in: "/", want: "", wantDir: true},
	}

	for _, tt := range tests {
		got, isDir := SanitizeSegment(tt.in)
		if got != tt.want || isDir != tt.wantDir {
			t.Errorf("SanitizeSegment(%q) = (%q, %v), want (%q, %v)", tt.in, got, isDir, tt.want, tt.wantDir)
		}
	}
}

func TestSanitizeSegmentRemovesEveryForbiddenCharacter(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<>:"\|?*`)
	for c := 0; c < 0x20; c++ {
		b.WriteByte(byte(c))
	}
	b.WriteString("name")

	got, _ := SanitizeSegment(b.String())
	assert.False(t, forbiddenRegex.MatchString(got), "result %q still holds a forbidden character", got)
	assert.True(t, strings.HasSuffix(got, "name"))
	assert.Equal(t, strings.Repeat("_", 8+0x20)+"name", got)
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
		want     models.Target
	}{
		{
			name:     "file under directories",
			segments: []string{"root/", "src/", "main.txt"},
			want:     models.Target{Path: filepath.Join("root", "src", "main.txt")},
		},
		{
			name:     "directory",
			segments: []string{"root/", "src/"},
			want:     models.Target{Path: filepath.Join("root", "src"), IsDir: true},
		},
		{
			name:     "only the last segment decides",
			segments: []string{"root", "lib/"},
			want:     models.Target{Path: filepath.Join("root", "lib"), IsDir: true},
		},
		{
			name:     "empty segments are dropped",
			segments: []string{"root/", "/", "x.txt"},
			want:     models.Target{Path: filepath.Join("root", "x.txt")},
		},
		{
			name:     "forbidden characters in every segment",
			segments: []string{"a:b/", "c?d"},
			want:     models.Target{Path: filepath.Join("a_b", "c_d")},
		},
		{
			name:     "dot root from tree output is dropped",
			segments: []string{".", "cmd/"},
			want:     models.Target{Path: "cmd", IsDir: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Sanitize(tt.segments)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeEmptyLeafNamesNoPath(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
	}{
		{name: "dot under a directory", segments: []string{"root/", "."}},
		{name: "dot slash under a directory", segments: []string{"root/", "./"}},
		{name: "lone slash", segments: []string{"/"}},
		{name: "dot root line", segments: []string{"."}},
		{name: "empty stack", segments: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Sanitize(tt.segments)
			assert.False(t, ok)
			assert.Equal(t, models.Target{}, got)
		})
	}
}
