package registry

import (
	"testing"

	liberrors "github.com/lib-shared/lib-shared/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEntryShape(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{"valid minimal", `{"title":"Button","files":[]}`, ""},
		{"valid with nulls", `{"title":"Button","description":null,"files":[{"content":"x","path":null}]}`, ""},
		{"not an object", `[1,2]`, "entry is not a JSON object"},
		{"null document", `null`, "entry is not a JSON object"},
		{"missing title", `{"files":[]}`, "title must be a non-empty string"},
		{"empty title", `{"title":"","files":[]}`, "title must be a non-empty string"},
		{"numeric title", `{"title":7,"files":[]}`, "title must be a non-empty string"},
		{"missing files", `{"title":"Button"}`, "files must be an array"},
		{"files is object", `{"title":"Button","files":{}}`, "files must be an array"},
		{"file is string", `{"title":"Button","files":["a"]}`, "files[0] must be an object"},
		{"file missing content", `{"title":"Button","files":[{"path":"a"}]}`, "files[0].content must be a string"},
		{"file numeric content", `{"title":"Button","files":[{"content":"a"},{"content":1}]}`, "files[1].content must be a string"},
		{"file numeric path", `{"title":"Button","files":[{"content":"a","path":3}]}`, "files[0].path must be a string"},
		{"description not string", `{"title":"Button","description":[],"files":[]}`, "description must be a string"},
		{"dependencies not array", `{"title":"Button","files":[],"dependencies":"clsx"}`, "dependencies must be an array"},
		{"dependencies mixed", `{"title":"Button","files":[],"dependencies":["clsx",1]}`, "dependencies must only contain strings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := ParseEntry("button", []byte(tt.raw))
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "Button", entry.Title)
				return
			}
			require.Error(t, err)
			assert.Nil(t, entry)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, liberrors.HasCode(err, liberrors.ErrCodeRegistryShape))
		})
	}
}

func TestParseEntryKeepsFileOrder(t *testing.T) {
	entry, err := ParseEntry("stack", []byte(`{"title":"Stack","files":[{"content":"one"},{"content":"two"}]}`))
	require.NoError(t, err)
	require.Len(t, entry.Files, 2)
	assert.Equal(t, "one", entry.Files[0].Content)
	assert.Equal(t, "two", entry.Files[1].Content)
	assert.Equal(t, "stack", entry.Name)
}

func TestParseIndex(t *testing.T) {
	index, err := ParseIndex([]byte(`{"items":[{"name":"container"},{"name":"button"}]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"button", "container"}, itemNames(index))

	empty, err := ParseIndex([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, empty.Items)

	_, err = ParseIndex([]byte(`{"items":[{"name":1}]}`))
	require.Error(t, err)
	assert.True(t, liberrors.HasCode(err, liberrors.ErrCodeRegistryShape))
}

func itemNames(index *Index) []string {
	names := make([]string, 0, len(index.Items))
	for _, item := range index.Items {
		names = append(names, item.Name)
	}
	return names
}
