package widgets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinyland/devconsole/pkg/app"
	"github.com/tinyland/devconsole/pkg/components"
	"github.com/tinyland/devconsole/pkg/layout"
	"github.com/tinyland/devconsole/pkg/registry"
)

type fileEntry struct {
	name  string
	isDir bool
}

// FileBrowser is a modal directory browser: directories first, then
// files, alphabetic within each group. Arrow-right or Enter on a
// directory descends and pushes the prior path onto a history stack;
// Backspace pops it. Enter on a file calls OnConfirm with the full path;
// Esc calls OnCancel. Both callbacks are invoked synchronously from
// HandleEvent, matching the router's single-threaded Update.
type FileBrowser struct {
	Name      string
	OnConfirm func(path string)
	OnCancel  func()

	dir     string
	history []string

	entries []fileEntry
	hover   int

	lastViewportHeight int
	entryRects         []layout.Rect
}

// NewFileBrowser returns a FileBrowser rooted at startDir.
func NewFileBrowser(name, startDir string) *FileBrowser {
	f := &FileBrowser{Name: name, dir: startDir, lastViewportHeight: 10}
	f.reload()
	return f
}

func (f *FileBrowser) ID() string      { return f.Name }
func (f *FileBrowser) OnTick(time.Time) {}

func (f *FileBrowser) reload() {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		f.entries = nil
		return
	}

	var dirs, files []fileEntry
	for _, e := range entries {
		fe := fileEntry{name: e.Name(), isDir: e.IsDir()}
		if fe.isDir {
			dirs = append(dirs, fe)
		} else {
			files = append(files, fe)
		}
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].name < dirs[j].name })
	sort.Slice(files, func(i, j int) bool { return files[i].name < files[j].name })

	f.entries = append(dirs, files...)
	f.hover = 0
}

func (f *FileBrowser) HandleEvent(msg tea.Msg) app.Outcome {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return app.ContinueOutcome()
	}

	switch key.String() {
	case "up", "k":
		f.move(-1)
	case "down", "j":
		f.move(1)
	case "pgup":
		f.move(-f.lastViewportHeight)
	case "pgdown":
		f.move(f.lastViewportHeight)
	case "right", "enter":
		return f.activate()
	case "backspace", "left":
		f.ascend()
	case "esc":
		if f.OnCancel != nil {
			f.OnCancel()
		}
		return app.PopModalOutcome()
	}
	return app.ContinueOutcome()
}

func (f *FileBrowser) move(delta int) {
	if len(f.entries) == 0 {
		return
	}
	next := f.hover + delta
	if next < 0 {
		next = 0
	}
	if next >= len(f.entries) {
		next = len(f.entries) - 1
	}
	f.hover = next
}

func (f *FileBrowser) activate() app.Outcome {
	if f.hover < 0 || f.hover >= len(f.entries) {
		return app.ContinueOutcome()
	}
	entry := f.entries[f.hover]
	full := filepath.Join(f.dir, entry.name)

	if entry.isDir {
		f.history = append(f.history, f.dir)
		f.dir = full
		f.reload()
		return app.ContinueOutcome()
	}

	if f.OnConfirm != nil {
		f.OnConfirm(full)
	}
	return app.PopModalOutcome()
}

func (f *FileBrowser) ascend() {
	if len(f.history) == 0 {
		f.dir = filepath.Dir(f.dir)
	} else {
		f.dir = f.history[len(f.history)-1]
		f.history = f.history[:len(f.history)-1]
	}
	f.reload()
}

func (f *FileBrowser) Render(area layout.Rect, reg *registry.Registry) string {
	f.lastViewportHeight = area.Height - 1
	f.entryRects = f.entryRects[:0]

	out := reg.Mark(f.Name+".path", components.Bold(f.dir)) + "\n"
	for i, e := range f.entries {
		if i >= f.lastViewportHeight {
			break
		}
		rect := layout.Rect{X: area.X, Y: area.Y + 1 + i, Width: area.Width, Height: 1}
		f.entryRects = append(f.entryRects, rect)

		label := e.name
		if e.isDir {
			label += "/"
		}
		if i == f.hover {
			label = components.Bold(components.Color(ColorAccent()) + "> " + label + components.Reset())
		} else {
			label = "  " + label
		}

		name := fmt.Sprintf("%s.entry.%d", f.Name, i)
		reg.Register(name, registry.Rect{X: rect.X, Y: rect.Y, W: rect.Width, H: rect.Height})
		out += reg.Mark(name, label) + "\n"
	}

	style := components.DefaultBoxStyle()
	style.FG = ColorBorderFocus()
	return components.RenderBox(out, area.Width, area.Height, style)
}
