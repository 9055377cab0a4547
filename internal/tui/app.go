package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/camctl/internal/camview"
	"github.com/muurk/camctl/internal/directory"
	"github.com/muurk/camctl/internal/editflow"
	"github.com/muurk/camctl/internal/logging"
)

// Messages for async operations. Each carries what it was issued for so a
// late result can be matched or dropped.
type fetchDoneMsg struct {
	ticket  camview.Ticket
	devices directory.Collection
	err     error
}

type updateDoneMsg struct {
	request editflow.Request
	err     error
}

// Filter inputs, in display order
const (
	inputSearch = iota
	inputLocation
	inputStatus
	inputCount

	noFocus = -1
)

// AppModel is the interactive camera browser. All view state lives in the
// camview.Store; the model adds the widgets and cursor around it.
type AppModel struct {
	Store *camview.Store

	ctx context.Context
	dir camview.Directory

	Spinner spinner.Model
	Inputs  [inputCount]textinput.Model
	focus   int
	cursor  int // index into the current page

	Help     help.Model
	keys     keyMaps
	showHelp bool

	Width  int
	Height int
}

// NewAppModel creates the browser over dir. The store decides the initial
// page size.
func NewAppModel(ctx context.Context, dir camview.Directory, store *camview.Store) AppModel {
	if store == nil {
		store = camview.NewStore()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	var inputs [inputCount]textinput.Model
	placeholders := [inputCount]string{"name, location or recorder", "any location", "Active or Inactive"}
	prompts := [inputCount]string{"Search: ", "Location: ", "Status: "}
	for i := range inputs {
		in := textinput.New()
		in.Prompt = prompts[i]
		in.Placeholder = placeholders[i]
		in.CharLimit = 64
		in.Width = 24
		in.PromptStyle = BlurredInputStyle
		inputs[i] = in
	}

	return AppModel{
		Store:   store,
		ctx:     ctx,
		dir:     dir,
		Spinner: s,
		Inputs:  inputs,
		focus:   noFocus,
		Help:    help.New(),
		keys:    newKeyMaps(),
		Width:   MinTerminalWidth,
		Height:  24,
	}
}

// Init starts the first fetch
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, m.startFetch())
}

// startFetch moves the store to Loading and returns the command that
// performs the request.
func (m AppModel) startFetch() tea.Cmd {
	ticket := m.Store.BeginFetch()
	ctx, dir := m.ctx, m.dir
	return func() tea.Msg {
		devices, err := dir.FetchAll(ctx)
		return fetchDoneMsg{ticket: ticket, devices: devices, err: err}
	}
}

func (m AppModel) startUpdate(req editflow.Request) tea.Cmd {
	ctx, dir := m.ctx, m.dir
	return func() tea.Msg {
		err := dir.UpdateStatus(ctx, req.DeviceID, req.Status)
		return updateDoneMsg{request: req, err: err}
	}
}

// busy reports whether a request is in flight and the spinner should run
func (m AppModel) busy() bool {
	return m.Store.Load().Kind == camview.Loading || m.Store.Edit().Phase == editflow.Confirming
}

// Update handles all messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case fetchDoneMsg:
		if m.Store.CompleteFetch(msg.ticket, msg.devices, msg.err) && msg.err == nil {
			// A fresh snapshot starts with cleared filters
			m.syncInputs()
			m.cursor = 0
		}
		return m, nil

	case updateDoneMsg:
		if m.Store.CompleteUpdate(msg.err) {
			logging.Info("status updated",
				zap.String("device_id", msg.request.DeviceID),
				zap.String("status", string(msg.request.Status)))
			return m, tea.Batch(m.Spinner.Tick, m.startFetch())
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		if m.Store.Edit().DialogOpen {
			return m.updateDialog(msg)
		}
		if m.focus != noFocus {
			return m.updateFilter(msg)
		}
		return m.updateBrowse(msg)
	}

	if m.focus != noFocus {
		var cmd tea.Cmd
		m.Inputs[m.focus], cmd = m.Inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m AppModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys.Browse
	load := m.Store.Load().Kind

	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.Reload):
		if load == camview.Loading {
			return m, nil
		}
		return m, tea.Batch(m.Spinner.Tick, m.startFetch())

	case key.Matches(msg, k.Help):
		m.showHelp = true
		return m, nil
	}

	// Everything else acts on the table
	if load != camview.Loaded {
		return m, nil
	}

	rows := m.Store.Screen().Rows
	switch {
	case key.Matches(msg, k.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, k.Down):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, k.PrevPage):
		m.Store.PrevPage()
		m.cursor = 0

	case key.Matches(msg, k.NextPage):
		m.Store.NextPage()
		m.cursor = 0

	case key.Matches(msg, k.Bigger):
		m.Store.CyclePageSize(1)
		m.cursor = 0

	case key.Matches(msg, k.Smaller):
		m.Store.CyclePageSize(-1)
		m.cursor = 0

	case key.Matches(msg, k.Edit):
		if m.cursor < len(rows) {
			if err := m.Store.OpenEdit(rows[m.cursor].ID); err != nil {
				logging.Warn("cannot edit device", zap.String("device_id", rows[m.cursor].ID), zap.Error(err))
			}
		}

	case key.Matches(msg, k.Search):
		return m, m.focusInput(inputSearch)

	case key.Matches(msg, k.Location):
		return m, m.focusInput(inputLocation)

	case key.Matches(msg, k.Status):
		return m, m.focusInput(inputStatus)
	}

	return m, nil
}

func (m *AppModel) focusInput(i int) tea.Cmd {
	m.focus = i
	m.Inputs[i].PromptStyle = FocusedInputStyle
	return m.Inputs[i].Focus()
}

func (m *AppModel) blurInput() {
	if m.focus == noFocus {
		return
	}
	m.Inputs[m.focus].Blur()
	m.Inputs[m.focus].PromptStyle = BlurredInputStyle
	m.focus = noFocus
}

func (m AppModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Filter.Done):
		m.blurInput()
		return m, nil

	case key.Matches(msg, m.keys.Filter.Clear):
		m.Inputs[m.focus].SetValue("")
		m.applyFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.Inputs[m.focus], cmd = m.Inputs[m.focus].Update(msg)
	m.applyFilter()
	return m, cmd
}

// applyFilter pushes the focused input into the store
func (m *AppModel) applyFilter() {
	v := m.Inputs[m.focus].Value()
	switch m.focus {
	case inputSearch:
		m.Store.SetSearch(v)
	case inputLocation:
		m.Store.SetLocation(v)
	case inputStatus:
		m.Store.SetStatusFilter(v)
	}
	m.cursor = 0
}

// syncInputs mirrors the store criteria into the inputs
func (m *AppModel) syncInputs() {
	c := m.Store.Criteria()
	m.Inputs[inputSearch].SetValue(c.Search)
	m.Inputs[inputLocation].SetValue(c.Location)
	m.Inputs[inputStatus].SetValue(c.Status)
}

func (m AppModel) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Store.Edit().Phase == editflow.Confirming {
		// Input is blocked while saving
		return m, nil
	}

	k := m.keys.Dialog
	switch {
	case key.Matches(msg, k.Cancel):
		m.Store.CancelEdit()

	case key.Matches(msg, k.Toggle):
		m.Store.TogglePendingStatus()

	case key.Matches(msg, k.Save):
		req, ok := m.Store.ConfirmEdit()
		if !ok {
			return m, nil
		}
		return m, tea.Batch(m.Spinner.Tick, m.startUpdate(req))
	}
	return m, nil
}

// Run starts the interactive browser and blocks until the user quits.
func Run(ctx context.Context, dir camview.Directory, store *camview.Store) error {
	p := tea.NewProgram(
		NewAppModel(ctx, dir, store),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
