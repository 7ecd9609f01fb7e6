package widgets

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinyland/devconsole/pkg/app"
)

func setupTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "a.ino"), []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestFileBrowserDirectoriesSortBeforeFiles(t *testing.T) {
	root := setupTree(t)
	fb := NewFileBrowser("browser", root)

	if len(fb.entries) != 2 || !fb.entries[0].isDir {
		t.Fatalf("expected sub/ before a.ino, got %+v", fb.entries)
	}
}

func TestFileBrowserDescendAndBackspace(t *testing.T) {
	root := setupTree(t)
	fb := NewFileBrowser("browser", root)

	fb.HandleEvent(tea.KeyMsg{Type: tea.KeyEnter}) // enters "sub"
	if fb.dir != filepath.Join(root, "sub") {
		t.Fatalf("expected to descend into sub, got %s", fb.dir)
	}

	fb.HandleEvent(tea.KeyMsg{Type: tea.KeyBackspace})
	if fb.dir != root {
		t.Fatalf("expected backspace to return to root, got %s", fb.dir)
	}
}

func TestFileBrowserConfirmOnFile(t *testing.T) {
	root := setupTree(t)
	fb := NewFileBrowser("browser", root)
	fb.hover = 1 // a.ino, after sub/

	var confirmed string
	fb.OnConfirm = func(path string) { confirmed = path }

	outcome := fb.HandleEvent(tea.KeyMsg{Type: tea.KeyEnter})
	if outcome.Kind != app.PopModal {
		t.Fatalf("expected PopModal outcome, got %+v", outcome)
	}
	if confirmed != filepath.Join(root, "a.ino") {
		t.Fatalf("expected confirm with a.ino path, got %q", confirmed)
	}
}

func TestFileBrowserEscCancels(t *testing.T) {
	fb := NewFileBrowser("browser", setupTree(t))
	canceled := false
	fb.OnCancel = func() { canceled = true }

	outcome := fb.HandleEvent(tea.KeyMsg{Type: tea.KeyEsc})
	if outcome.Kind != app.PopModal || !canceled {
		t.Fatalf("expected PopModal + cancel callback, got outcome=%+v canceled=%v", outcome, canceled)
	}
}
