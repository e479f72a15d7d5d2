package imaging

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/roster/internal/core/domain"
	"github.com/custodia-labs/roster/internal/core/ports/driven"
)

// writeFile creates name in dir with the given modification time.
func writeFile(t *testing.T, dir, name string, modTime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
	return path
}

func newLibrary(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	writeFile(t, dir, "old.jpg", base)
	writeFile(t, dir, "new.PNG", base.Add(time.Hour))
	writeFile(t, dir, "clip.mov", base.Add(2*time.Hour))
	writeFile(t, dir, "notes.txt", base.Add(3*time.Hour))
	writeFile(t, dir, ".hidden.jpg", base.Add(4*time.Hour))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "album.jpg"), 0700))
	return dir
}

func names(items []domain.LibraryItem) []string {
	out := make([]string, len(items))
	for i, c := range items {
		out[i] = c.Name
	}
	return out
}

func TestLibraryPicker_List(t *testing.T) {
	dir := newLibrary(t)
	picker := NewLibraryPicker(dir, nil)

	tests := []struct {
		mediaType domain.MediaType
		want      []string
	}{
		{domain.MediaAll, []string{"clip.mov", "new.PNG", "old.jpg"}},
		{domain.MediaImages, []string{"new.PNG", "old.jpg"}},
		{domain.MediaVideos, []string{"clip.mov"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mediaType), func(t *testing.T) {
			candidates, err := picker.List(context.Background(), tt.mediaType)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(candidates))
		})
	}
}

func TestLibraryPicker_List_MissingDir(t *testing.T) {
	picker := NewLibraryPicker(filepath.Join(t.TempDir(), "absent"), nil)

	_, err := picker.List(context.Background(), domain.MediaAll)

	assert.ErrorIs(t, err, domain.ErrLibraryUnavailable)
}

func TestLibraryPicker_PickFromLibrary(t *testing.T) {
	dir := newLibrary(t)
	var offered []domain.LibraryItem
	picker := NewLibraryPicker(dir, ChooserFunc(func(_ context.Context, c []domain.LibraryItem) (*domain.LibraryItem, error) {
		offered = c
		return &c[1], nil
	}))

	result, err := picker.PickFromLibrary(context.Background(), domain.DefaultAcquisitionConfig())

	require.NoError(t, err)
	assert.False(t, result.Cancelled)
	require.Len(t, result.Assets, 1)
	assert.True(t, strings.HasPrefix(result.Assets[0].URI, "file:///"))
	assert.True(t, strings.HasSuffix(result.Assets[0].URI, "/new.PNG"))
	assert.Equal(t, "image/png", result.Assets[0].MIMEType)
	assert.Len(t, offered, 3)
}

func TestLibraryPicker_PickFromLibrary_Cancelled(t *testing.T) {
	tests := []struct {
		name    string
		chooser driven.ImageChooser
	}{
		{"nil choice", ChooserFunc(func(context.Context, []domain.LibraryItem) (*domain.LibraryItem, error) { return nil, nil })},
		{"context cancelled", ChooserFunc(func(context.Context, []domain.LibraryItem) (*domain.LibraryItem, error) { return nil, context.Canceled })},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			picker := NewLibraryPicker(newLibrary(t), tt.chooser)

			result, err := picker.PickFromLibrary(context.Background(), domain.DefaultAcquisitionConfig())

			require.NoError(t, err)
			assert.True(t, result.Cancelled)
			assert.Empty(t, result.Assets)
		})
	}
}

func TestLibraryPicker_PickFromLibrary_Errors(t *testing.T) {
	t.Run("no chooser", func(t *testing.T) {
		_, err := NewLibraryPicker(newLibrary(t), nil).PickFromLibrary(context.Background(), domain.DefaultAcquisitionConfig())
		assert.ErrorIs(t, err, domain.ErrLibraryUnavailable)
	})

	t.Run("empty library", func(t *testing.T) {
		picker := NewLibraryPicker(t.TempDir(), NewPromptChooser(strings.NewReader("1\n"), &strings.Builder{}))
		_, err := picker.PickFromLibrary(context.Background(), domain.DefaultAcquisitionConfig())
		assert.ErrorIs(t, err, domain.ErrLibraryUnavailable)
	})

	t.Run("chooser failure", func(t *testing.T) {
		picker := NewLibraryPicker(newLibrary(t), ChooserFunc(func(context.Context, []domain.LibraryItem) (*domain.LibraryItem, error) {
			return nil, errors.New("tty gone")
		}))
		_, err := picker.PickFromLibrary(context.Background(), domain.DefaultAcquisitionConfig())
		assert.ErrorContains(t, err, "tty gone")
	})
}

func TestLibraryPicker_SetChooser(t *testing.T) {
	picker := NewLibraryPicker(newLibrary(t), nil)
	picker.SetChooser(ChooserFunc(func(_ context.Context, c []domain.LibraryItem) (*domain.LibraryItem, error) {
		return &c[0], nil
	}))

	result, err := picker.PickFromLibrary(context.Background(), domain.DefaultAcquisitionConfig())

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(result.Assets[0].URI, "/clip.mov"))
}

func TestLibraryPicker_FileChooserSkipsLibrary(t *testing.T) {
	photo := writeFile(t, t.TempDir(), "me.jpg", time.Now())
	picker := NewLibraryPicker(filepath.Join(t.TempDir(), "absent"), NewFileChooser(photo))

	result, err := picker.PickFromLibrary(context.Background(), domain.DefaultAcquisitionConfig())

	require.NoError(t, err)
	assert.Equal(t, fileURI(photo), result.Assets[0].URI)
}

func TestPromptChooser_Choose(t *testing.T) {
	candidates := []domain.LibraryItem{{Path: "/a/one.jpg", Name: "one.jpg"}, {Path: "/a/two.jpg", Name: "two.jpg"}}

	tests := []struct {
		input string
		want  string
	}{
		{"2\n", "two.jpg"},
		{"1\n", "one.jpg"},
		{"\n", ""},
		{"9\n", ""},
		{"abc\n", ""},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out strings.Builder
			chosen, err := NewPromptChooser(strings.NewReader(tt.input), &out).Choose(context.Background(), candidates)

			require.NoError(t, err)
			if tt.want == "" {
				assert.Nil(t, chosen)
			} else {
				require.NotNil(t, chosen)
				assert.Equal(t, tt.want, chosen.Name)
			}
			assert.Contains(t, out.String(), "1) one.jpg")
			assert.Contains(t, out.String(), "[1-2, empty to cancel]")
		})
	}
}

func TestFileChooser_RejectsUnsupported(t *testing.T) {
	dir := t.TempDir()
	notes := writeFile(t, dir, "notes.txt", time.Now())

	_, err := NewFileChooser(notes).Choose(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = NewFileChooser(filepath.Join(dir, "absent.jpg")).Choose(context.Background(), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
