// Package tui provides an interactive terminal browser for the job board.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonathan/hirehub/internal/apply"
	"github.com/jonathan/hirehub/internal/catalog"
	"github.com/jonathan/hirehub/internal/store"
	"github.com/jonathan/hirehub/internal/types"
)

type screen int

const (
	screenList screen = iota
	screenDetail
)

// Form inputs, in tab order.
const (
	inputName = iota
	inputEmail
	inputResume
	inputCount
)

// Config configures a Model.
type Config struct {
	Catalog catalog.Accessor
	// Store defaults to a new store over Catalog.
	Store     *store.Store
	Submitter apply.Submitter
	Logger    *slog.Logger
	// ApplyOptions are passed to the application form controller after the defaults.
	ApplyOptions []apply.Option
}

// Model is the bubbletea model of the job browser. It implements apply.Host for
// the application form it owns.
type Model struct {
	store   *store.Store
	catalog catalog.Accessor
	detail  *store.DetailLoader
	form    *apply.Controller
	logger  *slog.Logger

	ctx         context.Context
	cancel      context.CancelFunc
	wakeCh      chan struct{}
	unsubscribe []func()

	screen    screen
	cursor    int
	locations []string
	search    textinput.Model
	searching bool
	inputs    [inputCount]textinput.Model
	focused   int
	status    string
	width     int
	height    int
	styles    styles

	hostMu       sync.Mutex
	scrollLocked bool
	focusPending bool
	escape       func()
	escapeSeq    uint64
}

var _ apply.Host = (*Model)(nil)

type refreshMsg struct{}

type loadedMsg struct {
	locations []string
	err       error
}

type detailMsg struct {
	detail store.Detail
	err    error
}

// New creates the browser model. Run it with tea.NewProgram.
func New(cfg Config) (*Model, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		store:   cfg.Store,
		catalog: cfg.Catalog,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		wakeCh:  make(chan struct{}, 1),
		styles:  defaultStyles(),
	}
	if m.store == nil {
		m.store = store.New(cfg.Catalog, store.WithLogger(logger))
	}
	m.detail = store.NewDetailLoader(cfg.Catalog, logger)

	opts := []apply.Option{
		apply.WithHost(m),
		apply.WithLogger(logger),
		apply.WithOnClose(m.wake),
	}
	if cfg.Submitter != nil {
		opts = append(opts, apply.WithSubmitter(cfg.Submitter))
	}
	m.form = apply.NewController(append(opts, cfg.ApplyOptions...)...)

	m.unsubscribe = []func(){
		m.store.Subscribe(func(store.State) { m.wake() }),
		m.detail.Subscribe(func(store.Detail) { m.wake() }),
		m.form.Subscribe(func(apply.State) { m.wake() }),
	}

	m.search = textinput.New()
	m.search.Prompt = "/ "
	m.search.Placeholder = "Search by title or company"
	m.search.CharLimit = 100

	placeholders := [inputCount]string{"Full name", "you@example.com", "Path to resume (.pdf, .doc, .docx)"}
	for i := range m.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = placeholders[i]
		in.CharLimit = 256
		m.inputs[i] = in
	}
	m.inputs[inputEmail].CharLimit = 254

	return m, nil
}

// Init starts the catalog load.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.waitForWake(), textinput.Blink)
}

// wake schedules a refresh. It never blocks.
func (m *Model) wake() {
	select {
	case m.wakeCh <- struct{}{}:
	default:
	}
}

func (m *Model) waitForWake() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.wakeCh:
			return refreshMsg{}
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m *Model) load() tea.Cmd {
	return func() tea.Msg {
		locations, err := store.Bootstrap(m.ctx, m.store, m.catalog)
		return loadedMsg{locations: locations, err: err}
	}
}

func (m *Model) loadDetail(id string) tea.Cmd {
	return func() tea.Msg {
		d, err := m.detail.Load(m.ctx, id)
		return detailMsg{detail: d, err: err}
	}
}

// Update handles a message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case refreshMsg:
		m.applyFocus()
		m.clampCursor()
		return m, m.waitForWake()

	case loadedMsg:
		m.locations = msg.locations
		if msg.err != nil {
			m.logger.Debug("initial load failed", "error", msg.err)
		}
		m.clampCursor()
		return m, nil

	case detailMsg:
		if msg.err != nil && !errors.Is(msg.err, store.ErrSuperseded) {
			m.status = msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, m.quit()
	}
	if m.form.State().IsOpen() {
		return m, m.updateForm(msg)
	}
	if m.searching {
		return m, m.updateSearch(msg)
	}
	if m.screen == screenDetail {
		return m, m.updateDetail(msg)
	}
	return m, m.updateList(msg)
}

func (m *Model) updateList(msg tea.KeyMsg) tea.Cmd {
	m.status = ""
	switch msg.String() {
	case "q":
		return m.quit()
	case "up", "k":
		m.scroll(-1)
	case "down", "j":
		m.scroll(1)
	case "/":
		m.searching = true
		return m.search.Focus()
	case "c":
		next := cycle(append([]types.Category{types.AllCategories}, types.Categories()...), m.store.Filters().Category)
		m.setFilters(types.FilterUpdate{}.WithCategory(next))
	case "l":
		next := cycle(append([]string{types.AllLocations}, m.locations...), m.store.Filters().Location)
		m.setFilters(types.FilterUpdate{}.WithLocation(next))
	case "e":
		next := cycle(append([]types.ExperienceLevel{types.AllExperience}, types.ExperienceLevels()...), m.store.Filters().Experience)
		m.setFilters(types.FilterUpdate{}.WithExperience(next))
	case "r":
		m.store.ResetFilters()
		m.search.SetValue("")
		m.cursor = 0
	case "enter":
		job := m.selected()
		if job == nil {
			return nil
		}
		m.screen = screenDetail
		return m.loadDetail(job.ID)
	case "a":
		m.openForm(m.selected())
	}
	return nil
}

func (m *Model) updateDetail(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return m.quit()
	case "esc", "backspace", "b":
		m.detail.Cancel()
		m.screen = screenList
	case "a":
		m.openForm(m.detail.Current().Job)
	}
	return nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "esc":
		m.searching = false
		m.search.Blur()
		return nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if value := m.search.Value(); value != before {
		m.setFilters(types.FilterUpdate{}.WithSearch(value))
	}
	return cmd
}

func (m *Model) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.pressEscape()
		return nil
	case "tab":
		return m.focusInput((m.focused + 1) % inputCount)
	case "shift+tab":
		return m.focusInput((m.focused + inputCount - 1) % inputCount)
	case "enter":
		m.submitForm()
		return nil
	case "up":
		m.scroll(-1)
		return nil
	case "down":
		m.scroll(1)
		return nil
	}

	if m.form.State().Phase != apply.PhaseIdle {
		return nil
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	switch m.focused {
	case inputName:
		m.form.SetName(m.inputs[inputName].Value())
	case inputEmail:
		m.form.SetEmail(m.inputs[inputEmail].Value())
	}
	return cmd
}

// scroll moves the list cursor by delta unless the host scroll lock is held.
// Arrow keys reach it while the form is open, so the lock is what keeps the list still.
func (m *Model) scroll(delta int) {
	if m.isScrollLocked() {
		return
	}
	next := m.cursor + delta
	if next < 0 || next >= len(m.store.FilteredJobs()) {
		return
	}
	m.cursor = next
}

func (m *Model) openForm(job *types.Job) {
	if job == nil {
		return
	}
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.focused = inputName
	if err := m.form.Open(job); err != nil {
		m.status = err.Error()
		return
	}
	m.applyFocus()
}

func (m *Model) submitForm() {
	resume, err := apply.ResumeFromFile(m.inputs[inputResume].Value())
	m.status = ""
	if err != nil {
		m.status = err.Error()
	}
	m.form.SetResume(resume)
	if err := m.form.Submit(); err != nil {
		m.status = err.Error()
	}
}

func (m *Model) focusInput(i int) tea.Cmd {
	m.inputs[m.focused].Blur()
	m.focused = i
	return m.inputs[i].Focus()
}

// applyFocus honors a pending FocusName request.
func (m *Model) applyFocus() {
	if m.takeFocus() {
		m.focusInput(inputName)
	}
}

func (m *Model) setFilters(u types.FilterUpdate) {
	m.store.UpdateFilters(u)
	m.cursor = 0
}

func (m *Model) selected() *types.Job {
	jobs := m.store.FilteredJobs()
	if m.cursor < 0 || m.cursor >= len(jobs) {
		return nil
	}
	job := jobs[m.cursor]
	return &job
}

func (m *Model) clampCursor() {
	n := len(m.store.FilteredJobs())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) quit() tea.Cmd {
	m.form.Dispose()
	m.detail.Cancel()
	for _, unsubscribe := range m.unsubscribe {
		unsubscribe()
	}
	m.cancel()
	return tea.Quit
}

// cycle returns the option after cur, wrapping around. Unknown values restart at the first option.
func cycle[T comparable](options []T, cur T) T {
	for i, o := range options {
		if o == cur {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}
