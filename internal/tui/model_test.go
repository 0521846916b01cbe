package tui

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/jonathan/hirehub/internal/apply"
	"github.com/jonathan/hirehub/internal/catalog"
	"github.com/jonathan/hirehub/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	timeout = 2 * time.Second
	tick    = 5 * time.Millisecond
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	acc, err := catalog.NewDefault(catalog.Latency{})
	require.NoError(t, err)

	m, err := New(Config{
		Catalog: acc,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Submitter: apply.SubmitterFunc(func(_ context.Context, app types.JobApplication) (*types.ApplicationReceipt, error) {
			return &types.ApplicationReceipt{ConfirmationID: uuid.New(), JobID: app.JobID, SubmittedAt: time.Now()}, nil
		}),
		ApplyOptions: []apply.Option{
			apply.WithCloseDelay(150 * time.Millisecond),
			apply.WithClearDelay(0),
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() { m.quit() })

	m.Update(m.load()())
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends each key and returns the command from the last one.
func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(key(k))
	}
	return cmd
}

func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func filteredIDs(m *Model) []string {
	var out []string
	for _, j := range m.store.FilteredJobs() {
		out = append(out, j.ID)
	}
	return out
}

func TestNew_RequiresCatalog(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	m := newTestModel(t)

	assert.Len(t, m.store.Jobs(), 10)
	assert.Contains(t, m.locations, "Remote")
	assert.Contains(t, m.View(), "Showing 10 of 10 jobs")
	assert.Contains(t, m.View(), "Senior Frontend Developer")
}

func TestFilterKeys(t *testing.T) {
	m := newTestModel(t)

	press(m, "c")
	assert.Equal(t, types.Frontend, m.store.Filters().Category)
	assert.Equal(t, []string{"1", "9"}, filteredIDs(m))

	press(m, "c")
	assert.Equal(t, types.Backend, m.store.Filters().Category)
	assert.Equal(t, []string{"2", "10"}, filteredIDs(m))

	press(m, "l")
	assert.Equal(t, m.locations[0], m.store.Filters().Location)

	press(m, "e")
	assert.Equal(t, types.EntryLevel, m.store.Filters().Experience)

	press(m, "r")
	assert.Equal(t, types.DefaultFilters(), m.store.Filters())
	assert.Len(t, m.store.FilteredJobs(), 10)
}

func TestFilterKeys_CycleWraps(t *testing.T) {
	m := newTestModel(t)

	for range types.ExperienceLevels() {
		press(m, "e")
	}
	assert.Equal(t, types.Internship, m.store.Filters().Experience)

	press(m, "e")
	assert.Equal(t, types.AllExperience, m.store.Filters().Experience)
}

func TestSearch(t *testing.T) {
	m := newTestModel(t)

	press(m, "/")
	require.True(t, m.searching)
	typeText(m, "data")

	assert.Equal(t, "data", m.store.Filters().SearchQuery)
	assert.Equal(t, []string{"2", "6"}, filteredIDs(m))

	// letters go to the search box, not the filter keys
	assert.Equal(t, types.AllCategories, m.store.Filters().Category)

	press(m, "enter")
	assert.False(t, m.searching)

	press(m, "r")
	assert.Empty(t, m.search.Value())
	assert.Empty(t, m.store.Filters().SearchQuery)
}

func TestEmptyResult(t *testing.T) {
	m := newTestModel(t)

	press(m, "/")
	typeText(m, "astronaut")
	press(m, "enter")

	assert.Contains(t, m.View(), "No jobs found matching your criteria.")
	assert.Nil(t, press(m, "enter"), "enter on an empty list does nothing")
}

func TestNavigationAndDetail(t *testing.T) {
	m := newTestModel(t)

	press(m, "down", "down", "up")
	assert.Equal(t, 1, m.cursor)
	press(m, "up", "up")
	assert.Equal(t, 0, m.cursor)

	press(m, "down")
	cmd := press(m, "enter")
	require.NotNil(t, cmd)
	assert.Equal(t, screenDetail, m.screen)

	m.Update(cmd())
	d := m.detail.Current()
	require.NotNil(t, d.Job)
	assert.Equal(t, "2", d.Job.ID)
	assert.Contains(t, m.View(), "Backend Engineer")
	assert.Contains(t, m.View(), "Responsibilities")

	press(m, "esc")
	assert.Equal(t, screenList, m.screen)
}

func TestCursorResetOnFilter(t *testing.T) {
	m := newTestModel(t)

	press(m, "down", "down", "down")
	press(m, "c")

	assert.Equal(t, 0, m.cursor)
}

func TestApplyForm_Validation(t *testing.T) {
	m := newTestModel(t)

	press(m, "a")
	st := m.form.State()
	require.True(t, st.IsOpen())
	assert.Equal(t, "1", st.Job.ID)
	assert.True(t, m.isScrollLocked())
	assert.True(t, m.inputs[inputName].Focused())

	// keys go to the form while it is open
	press(m, "down", "q")
	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, "q", m.form.State().Name)

	press(m, "enter")
	st = m.form.State()
	assert.Equal(t, apply.PhaseIdle, st.Phase)
	assert.Equal(t, apply.MsgEmailRequired, st.Errors[apply.FieldEmail])
	assert.Equal(t, apply.MsgResumeRequired, st.Errors[apply.FieldResume])
	assert.Contains(t, m.View(), apply.MsgEmailRequired)

	press(m, "esc")
	assert.False(t, m.form.State().IsOpen())
	assert.False(t, m.isScrollLocked())
	assert.False(t, m.pressEscape(), "escape is unbound after close")
}

func TestApplyForm_Submit(t *testing.T) {
	m := newTestModel(t)
	resume := filepath.Join(t.TempDir(), "resume.pdf")
	require.NoError(t, os.WriteFile(resume, []byte("%PDF-1.4"), 0o644))

	press(m, "down", "a")
	typeText(m, "Jane Doe")
	press(m, "tab")
	typeText(m, "jane@example.com")
	press(m, "tab")
	typeText(m, resume)
	press(m, "enter")

	require.Eventually(t, func() bool {
		return m.form.State().Phase == apply.PhaseSucceeded
	}, timeout, tick)
	st := m.form.State()
	require.NotNil(t, st.Receipt)
	assert.Equal(t, "2", st.Receipt.JobID)
	assert.Contains(t, m.View(), "Application Submitted!")

	// auto-close releases the host effects
	require.Eventually(t, func() bool {
		return !m.form.State().IsOpen() && !m.isScrollLocked()
	}, timeout, tick)
	assert.False(t, m.pressEscape())
}

func TestApplyForm_MissingResumeFile(t *testing.T) {
	m := newTestModel(t)

	press(m, "a")
	typeText(m, "Jane")
	press(m, "tab")
	typeText(m, "jane@example.com")
	press(m, "tab")
	typeText(m, "/does/not/exist.pdf")
	press(m, "enter")

	st := m.form.State()
	assert.Equal(t, apply.PhaseIdle, st.Phase)
	assert.Nil(t, st.Resume)
	assert.Equal(t, apply.MsgResumeRequired, st.Errors[apply.FieldResume])
	assert.Contains(t, m.status, "cannot read resume")
}

func TestApplyForm_ResumeTypeNotPicked(t *testing.T) {
	m := newTestModel(t)
	resume := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(resume, []byte("plain"), 0o644))

	press(m, "a")
	typeText(m, "Jane")
	press(m, "tab")
	typeText(m, "jane@example.com")
	press(m, "tab")
	typeText(m, resume)
	press(m, "enter")

	st := m.form.State()
	assert.Equal(t, apply.PhaseIdle, st.Phase)
	assert.Nil(t, st.Resume)
	assert.Contains(t, m.status, apply.MsgResumeType)
}

func TestScrollLock_FreezesListUnderForm(t *testing.T) {
	m := newTestModel(t)

	press(m, "down")
	press(m, "a")
	require.True(t, m.isScrollLocked())
	press(m, "down", "down", "up")
	assert.Equal(t, 1, m.cursor)

	m.UnlockScroll()
	press(m, "down")
	assert.Equal(t, 2, m.cursor)
}

func TestApplyFromDetail(t *testing.T) {
	m := newTestModel(t)

	cmd := press(m, "enter")
	m.Update(cmd())
	press(m, "a")

	st := m.form.State()
	require.True(t, st.IsOpen())
	assert.Equal(t, "1", st.Job.ID)
}

func TestRefreshAppliesFocus(t *testing.T) {
	m := newTestModel(t)

	m.FocusName()
	m.Update(refreshMsg{})

	assert.True(t, m.inputs[inputName].Focused())
}

func TestBindEscape_StaleUnbind(t *testing.T) {
	m := newTestModel(t)
	calls := 0

	unbindFirst := m.BindEscape(func() { calls++ })
	m.BindEscape(func() { calls += 10 })
	unbindFirst()

	assert.True(t, m.pressEscape())
	assert.Equal(t, 10, calls)
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)

	cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	// disposed form no longer opens
	assert.ErrorIs(t, m.form.Open(&types.Job{ID: "1"}), apply.ErrDisposed)
}

func TestCycle(t *testing.T) {
	opts := []string{"a", "b", "c"}

	assert.Equal(t, "b", cycle(opts, "a"))
	assert.Equal(t, "a", cycle(opts, "c"))
	assert.Equal(t, "a", cycle(opts, "zzz"))
}
