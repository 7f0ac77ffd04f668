// Package teacher is the settings editor for each game's scoring, timing
// and difficulty.
package teacher

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/brainarcade/internal/leaderboard"
	"github.com/abhisek/brainarcade/internal/problemgen"
	"github.com/abhisek/brainarcade/internal/router"
	"github.com/abhisek/brainarcade/internal/screen"
	"github.com/abhisek/brainarcade/internal/settings"
	"github.com/abhisek/brainarcade/internal/ui/layout"
	"github.com/abhisek/brainarcade/internal/ui/theme"
)

type intField struct {
	label    string
	unit     string
	get      func(settings.Settings) int
	patch    func(*settings.Patch, int)
	adaptive bool
}

var fields = []intField{
	{label: "Questions", get: settings.Settings.QuestionCount,
		patch: func(p *settings.Patch, v int) { p.QuestionCount = &v }},
	{label: "Time per question", unit: "s", get: settings.Settings.TimePerQuestion,
		patch: func(p *settings.Patch, v int) { p.TimePerQuestion = &v }},
	{label: "Points per correct", get: settings.Settings.BasePoints,
		patch: func(p *settings.Patch, v int) { p.BasePoints = &v }},
	{label: "Penalty per wrong", get: settings.Settings.NegativePoints,
		patch: func(p *settings.Patch, v int) { p.NegativePoints = &v }},
	{label: "Bonus every", unit: "s left", get: settings.Settings.BonusStepSeconds,
		patch: func(p *settings.Patch, v int) { p.BonusStepSeconds = &v }},
	{label: "Bonus points", get: settings.Settings.BonusPerStep,
		patch: func(p *settings.Patch, v int) { p.BonusPerStep = &v }},
	{label: "Start level", adaptive: true, get: settings.Settings.StartDifficulty,
		patch: func(p *settings.Patch, v int) { p.StartDifficulty = &v }},
	{label: "Max level", adaptive: true, get: settings.Settings.MaxDifficulty,
		patch: func(p *settings.Patch, v int) { p.MaxDifficulty = &v }},
	{label: "Streak to level up", adaptive: true, get: settings.Settings.StreakToIncrease,
		patch: func(p *settings.Patch, v int) { p.StreakToIncrease = &v }},
	{label: "Wrongs to level down", adaptive: true, get: settings.Settings.WrongToDecrease,
		patch: func(p *settings.Patch, v int) { p.WrongToDecrease = &v }},
}

type loadedMsg struct {
	subject leaderboard.Subject
	cfg     settings.Settings
}

type savedMsg struct {
	cfg    settings.Settings
	status string
	err    error
}

// TeacherScreen edits one subject's settings at a time.
type TeacherScreen struct {
	mgr      *settings.Manager
	subject  int
	cfg      settings.Settings
	loaded   bool
	selected int
	dirty    bool
	status   string
	errMsg   string
}

var _ screen.Screen = (*TeacherScreen)(nil)
var _ screen.KeyHintProvider = (*TeacherScreen)(nil)

func New(mgr *settings.Manager) *TeacherScreen {
	return &TeacherScreen{mgr: mgr, cfg: settings.Defaults(leaderboard.Subjects[0])}
}

func (t *TeacherScreen) Init() tea.Cmd {
	return t.load()
}

func (t *TeacherScreen) Title() string {
	return "Teacher Settings"
}

func (t *TeacherScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Game"},
		{Key: "↑↓", Description: "Field"},
		{Key: "←→ -+", Description: "Change"},
		{Key: "Space", Description: "Topic"},
		{Key: "S", Description: "Save"},
		{Key: "R", Description: "Reset"},
		{Key: "Esc", Description: "Back"},
	}
}

func (t *TeacherScreen) current() leaderboard.Subject {
	return leaderboard.Subjects[t.subject]
}

func (t *TeacherScreen) load() tea.Cmd {
	mgr, subj := t.mgr, t.current()
	t.loaded = false
	return func() tea.Msg {
		return loadedMsg{subject: subj, cfg: mgr.Load(context.Background(), subj)}
	}
}

// rows is the number of selectable lines for the current subject.
func (t *TeacherScreen) rows() int {
	n := len(t.visibleFields())
	if t.cfg.Adaptive() {
		n += len(problemgen.AllTopics)
	}
	return n
}

func (t *TeacherScreen) visibleFields() []intField {
	if t.cfg.Adaptive() {
		return fields
	}
	var out []intField
	for _, f := range fields {
		if !f.adaptive {
			out = append(out, f)
		}
	}
	return out
}

func (t *TeacherScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.subject != t.current() {
			return t, nil
		}
		t.cfg = msg.cfg
		t.loaded = true
		t.dirty = false
		t.selected = min(t.selected, t.rows()-1)
		return t, nil

	case savedMsg:
		if msg.err != nil {
			t.errMsg = msg.err.Error()
			t.status = ""
			return t, nil
		}
		t.errMsg = ""
		t.status = msg.status
		if msg.cfg.Subject() == t.current() {
			t.cfg = msg.cfg
			t.dirty = false
		}
		return t, nil

	case tea.KeyPressMsg:
		return t.handleKey(msg)
	}
	return t, nil
}

func (t *TeacherScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	n := len(leaderboard.Subjects)
	switch msg.String() {
	case "esc":
		return t, router.Back
	case "tab":
		t.subject = (t.subject + 1) % n
		t.status, t.errMsg = "", ""
		return t, t.load()
	case "shift+tab":
		t.subject = (t.subject + n - 1) % n
		t.status, t.errMsg = "", ""
		return t, t.load()
	}
	if !t.loaded {
		return t, nil
	}

	switch msg.String() {
	case "up", "k":
		if t.selected > 0 {
			t.selected--
		}
	case "down", "j":
		if t.selected < t.rows()-1 {
			t.selected++
		}
	case "left", "-":
		t.adjust(-1)
	case "right", "+", "=":
		t.adjust(1)
	case "space", " ":
		t.toggleTopic()
	case "s", "S":
		return t, t.save()
	case "r", "R":
		return t, t.reset()
	}
	return t, nil
}

// adjust nudges the selected number; Apply keeps it within bounds.
func (t *TeacherScreen) adjust(delta int) {
	fs := t.visibleFields()
	if t.selected >= len(fs) {
		return
	}
	f := fs[t.selected]
	var p settings.Patch
	f.patch(&p, f.get(t.cfg)+delta)
	next := settings.Apply(t.cfg, p)
	if f.get(next) != f.get(t.cfg) {
		t.cfg = next
		t.dirty = true
		t.status = ""
	}
}

// toggleTopic flips the selected maths topic. An empty selection means all
// topics, so the last enabled topic cannot be turned off.
func (t *TeacherScreen) toggleTopic() {
	i := t.selected - len(t.visibleFields())
	if !t.cfg.Adaptive() || i < 0 || i >= len(problemgen.AllTopics) {
		return
	}
	id := problemgen.AllTopics[i]
	enabled := t.cfg.EnabledTopics()
	if len(enabled) == 0 {
		enabled = slices.Clone(problemgen.AllTopics)
	}
	if j := slices.Index(enabled, id); j >= 0 {
		if len(enabled) == 1 {
			return
		}
		enabled = slices.Delete(enabled, j, j+1)
	} else {
		enabled = append(enabled, id)
	}
	if len(enabled) == len(problemgen.AllTopics) {
		enabled = nil
	}
	t.cfg = settings.Apply(t.cfg, settings.Patch{EnabledTopics: &enabled})
	t.dirty = true
	t.status = ""
}

func (t *TeacherScreen) topicEnabled(id string) bool {
	enabled := t.cfg.EnabledTopics()
	return len(enabled) == 0 || slices.Contains(enabled, id)
}

func (t *TeacherScreen) save() tea.Cmd {
	mgr, cfg := t.mgr, t.cfg
	return func() tea.Msg {
		err := mgr.Save(context.Background(), cfg)
		return savedMsg{cfg: cfg, status: "Saved " + cfg.Subject().Label() + " settings", err: err}
	}
}

func (t *TeacherScreen) reset() tea.Cmd {
	mgr, subj := t.mgr, t.current()
	return func() tea.Msg {
		cfg, err := mgr.Reset(context.Background(), subj)
		return savedMsg{cfg: cfg, status: "Restored " + subj.Label() + " defaults", err: err}
	}
}

func (t *TeacherScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	var b strings.Builder
	b.WriteString("\n")

	var tabs []string
	for i, subj := range leaderboard.Subjects {
		tabs = append(tabs, theme.Tab(subj.Label(), i == t.subject, theme.SubjectAccent(string(subj))))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.JoinHorizontal(lipgloss.Center, tabs...)))
	b.WriteString("\n\n")

	if !t.loaded {
		b.WriteString(center.Foreground(theme.TextDim).Render("Loading settings..."))
		return b.String()
	}

	var lines []string
	row, selLine := 0, 0
	line := func(text string) {
		style := lipgloss.NewStyle().Foreground(theme.Text)
		prefix := "  "
		if row == t.selected {
			style = style.Foreground(theme.Primary).Bold(true)
			prefix = "▸ "
			selLine = len(lines)
		}
		lines = append(lines, style.Render(prefix+text))
		row++
	}

	for _, f := range t.visibleFields() {
		value := fmt.Sprintf("%d", f.get(t.cfg))
		if f.unit != "" {
			value += " " + f.unit
		}
		line(fmt.Sprintf("%-22s ◂ %s ▸", f.label, value))
	}
	if t.cfg.Adaptive() {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.TextDim).Render("  Topics"))
		for _, id := range problemgen.AllTopics {
			box := "[ ]"
			if t.topicEnabled(id) {
				box = "[x]"
			}
			line(fmt.Sprintf("%s %s", box, problemgen.TopicLabel(id)))
		}
	}

	visible := max(1, height-8)
	start := 0
	if selLine >= visible {
		start = selLine - visible + 1
	}
	end := min(len(lines), start+visible)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(lines[start:end], "\n")))
	b.WriteString("\n\n")

	switch {
	case t.errMsg != "":
		b.WriteString(center.Foreground(theme.Error).Render(t.errMsg))
	case t.status != "":
		b.WriteString(center.Foreground(theme.Success).Render(t.status))
	case t.dirty:
		b.WriteString(center.Foreground(theme.Accent).Render("Unsaved changes. Press S to save."))
	}
	return b.String()
}
