package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"csclean/internal/concat"
)

// maxListed bounds the file list; longer runs show the most recent rows.
const maxListed = 12

type progressModel struct {
	title    string
	base     string // общий каталог файлов, в списке не показываем
	events   <-chan concat.Event
	spinner  spinner.Model
	prog     progress.Model
	items    []fileItem
	index    map[string]int
	recent   []int
	finished int
	skipped  int
	failed   int
	width    int
	done     bool
}

type fileItem struct {
	path    string
	status  concat.Status
	reason  string
	elapsed time.Duration
}

type eventMsg concat.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders concat progress.
func NewProgressModel(title string, files []string, events <-chan concat.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76 // Default width

	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, fileItem{path: file, status: concat.StatusQueued})
		index[file] = i
	}
	return &progressModel{
		title:   title,
		base:    commonDir(files),
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(concat.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s (%d/%d)", m.title, m.finished, len(m.items))
	if m.skipped > 0 {
		header += fmt.Sprintf(" · %d skipped", m.skipped)
	}
	if m.failed > 0 {
		header += fmt.Sprintf(" · %d failed", m.failed)
	}
	if m.done {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 10
	nameWidth := m.width - statusWidth - 4
	if nameWidth < 20 {
		nameWidth = 20
	}

	for _, idx := range m.visible() {
		item := m.items[idx]
		label := m.display(item.path)
		switch {
		case item.reason != "":
			label += " (" + item.reason + ")"
		case item.status == concat.StatusDone:
			label += " " + item.elapsed.Round(time.Microsecond).String()
		}
		name := truncate(label, nameWidth)
		statusStyled := styleStatus(item.status).Render(fmt.Sprintf("%10s", item.status))
		b.WriteString(fmt.Sprintf("  %s %s\n", statusStyled, name))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")

	return b.String()
}

// visible returns item indexes to render: everything for short runs,
// otherwise the most recently touched files.
func (m *progressModel) visible() []int {
	if len(m.items) <= maxListed {
		out := make([]int, len(m.items))
		for i := range out {
			out[i] = i
		}
		return out
	}
	return m.recent
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev concat.Event) tea.Cmd {
	idx, ok := m.index[ev.File]
	if !ok || ev.Status == concat.StatusQueued {
		return nil
	}
	item := &m.items[idx]
	if isFinal(item.status) {
		return nil
	}
	item.status = ev.Status
	item.reason = ev.Reason
	item.elapsed = ev.Elapsed
	m.touch(idx)
	switch ev.Status {
	case concat.StatusSkipped:
		m.skipped++
	case concat.StatusError:
		m.failed++
	}
	if !isFinal(ev.Status) {
		return nil
	}
	m.finished++
	return m.prog.SetPercent(float64(m.finished) / float64(len(m.items)))
}

func (m *progressModel) touch(idx int) {
	for i, v := range m.recent {
		if v == idx {
			m.recent = append(m.recent[:i], m.recent[i+1:]...)
			break
		}
	}
	m.recent = append(m.recent, idx)
	if len(m.recent) > maxListed {
		m.recent = m.recent[len(m.recent)-maxListed:]
	}
}

// display shows path relative to the common directory of the run.
func (m *progressModel) display(path string) string {
	if m.base == "" {
		return path
	}
	if rel, err := filepath.Rel(m.base, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return path
}

// commonDir returns the deepest directory containing every file, or "".
func commonDir(files []string) string {
	if len(files) == 0 {
		return ""
	}
	dir := filepath.Dir(files[0])
	for _, f := range files[1:] {
		for !strings.HasPrefix(f, dir+string(filepath.Separator)) {
			parent := filepath.Dir(dir)
			if parent == dir {
				return ""
			}
			dir = parent
		}
	}
	if dir == "." {
		return ""
	}
	return dir
}

func isFinal(s concat.Status) bool {
	return s == concat.StatusDone || s == concat.StatusSkipped || s == concat.StatusError
}

func styleStatus(status concat.Status) lipgloss.Style {
	switch status {
	case concat.StatusDone:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case concat.StatusError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case concat.StatusSkipped:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	case concat.StatusWorking:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
