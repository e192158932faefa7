package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/pdxmph/tasks-tui/internal/logging"
	"github.com/pdxmph/tasks-tui/internal/task"
)

// Model represents the main application state. It owns the only mutable
// task collection and replaces it with whatever the task operations return.
type Model struct {
	ops    task.Ops
	logger *log.Logger

	tasks    []task.Task
	selected int
	width    int
	height   int
	status   string

	// Title search
	searchMode bool
	search     textinput.Model

	// Priority filter and its selection overlay
	priorityFilter   task.PriorityFilter
	priorityMode     bool
	prioritySelected int

	// Add/edit form
	formMode        bool
	formEditID      string // empty while adding
	formField       int
	formTitle       textinput.Model
	formDescription textarea.Model
	formDueDate     textinput.Model
	formPriorityIdx int
	formErrors      *task.ValidationError
	defaultPriority task.Priority

	// Delete confirmation
	deleteConfirmMode bool
	deleteID          string
}

// Options configures a new Model
type Options struct {
	Ops             task.Ops
	Logger          *log.Logger
	Tasks           []task.Task
	DefaultPriority task.Priority
	DefaultFilter   task.PriorityFilter
}

// Form field indices
const (
	FormFieldTitle = iota
	FormFieldDescription
	FormFieldPriority
	FormFieldDueDate
	FormFieldCount // Total number of fields
)

// Styles
var (
	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230"))

	overdueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	doneStyle = lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(lipgloss.Color("241"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

	priorityStyles = map[task.Priority]lipgloss.Style{
		task.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		task.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		task.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	}
)

// New creates a new application model
func New(opts Options) *Model {
	if opts.Ops.Now == nil || opts.Ops.NewID == nil {
		opts.Ops = task.NewOps()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.DefaultPriority == "" {
		opts.DefaultPriority = task.PriorityHigh
	}
	if opts.DefaultFilter == "" {
		opts.DefaultFilter = task.FilterAll
	}

	// Setup search input
	ti := textinput.New()
	ti.Placeholder = "Search task by title..."
	ti.Width = 30
	ti.CharLimit = 100
	ti.Prompt = "> "
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230"))
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	// Setup form inputs. Limits sit above the validation bounds so the
	// length messages can still be shown.
	title := textinput.New()
	title.Placeholder = "Task title..."
	title.Width = 40
	title.CharLimit = 120

	desc := textarea.New()
	desc.Placeholder = "Task description..."
	desc.SetHeight(4)
	desc.SetWidth(50)
	desc.CharLimit = 600
	desc.ShowLineNumbers = false

	due := textinput.New()
	due.Placeholder = "YYYY-MM-DD"
	due.Width = 25
	due.CharLimit = 40

	return &Model{
		ops:             opts.Ops,
		logger:          opts.Logger,
		tasks:           opts.Tasks,
		search:          ti,
		priorityFilter:  opts.DefaultFilter,
		formTitle:       title,
		formDescription: desc,
		formDueDate:     due,
		defaultPriority: opts.DefaultPriority,
	}
}

// Tasks returns the current task collection
func (m Model) Tasks() []task.Task {
	return m.tasks
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.width > 0 {
			listWidth := m.width / 2
			m.search.Width = listWidth - 6
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case m.deleteConfirmMode:
			return m.updateDeleteConfirm(msg)
		case m.priorityMode:
			return m.updatePriorityMode(msg)
		case m.formMode:
			return m.updateForm(msg)
		case m.searchMode:
			return m.updateSearch(msg)
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

func (m Model) updateDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if err := m.apply(task.DeleteAction{ID: m.deleteID}); err == nil {
			m.status = "Task deleted"
		}
	}
	// Any other key cancels
	m.deleteConfirmMode = false
	m.deleteID = ""
	return m, nil
}

func (m Model) updatePriorityMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.priorityMode = false
		m.prioritySelected = 0
	case "enter":
		m.priorityFilter = task.PriorityFilters[m.prioritySelected]
		m.logger.Debug("priority filter changed", "filter", m.priorityFilter)
		m.priorityMode = false
		m.prioritySelected = 0
		m.selected = m.ensureValidSelection()
	case "j", "down":
		if m.prioritySelected < len(task.PriorityFilters)-1 {
			m.prioritySelected++
		}
	case "k", "up":
		if m.prioritySelected > 0 {
			m.prioritySelected--
		}
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm()
		return m, nil

	case "ctrl+s":
		return m.submitForm()

	case "tab":
		if m.formField < FormFieldCount-1 {
			cmd := m.focusField(m.formField + 1)
			return m, cmd
		}
		return m, nil

	case "shift+tab":
		if m.formField > 0 {
			cmd := m.focusField(m.formField - 1)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.formField {
	case FormFieldTitle:
		m.formTitle, cmd = m.formTitle.Update(msg)
	case FormFieldDescription:
		m.formDescription, cmd = m.formDescription.Update(msg)
	case FormFieldDueDate:
		m.formDueDate, cmd = m.formDueDate.Update(msg)
	case FormFieldPriority:
		switch msg.String() {
		case "left", "h":
			m.formPriorityIdx = (m.formPriorityIdx + len(task.Priorities) - 1) % len(task.Priorities)
		case "right", "l", "enter", " ":
			m.formPriorityIdx = (m.formPriorityIdx + 1) % len(task.Priorities)
		}
	}
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	in := m.formInput()

	var action task.Action = task.AddAction{Input: in}
	if m.formEditID != "" {
		action = task.EditAction{ID: m.formEditID, Input: in}
	}

	if err := m.apply(action); err != nil {
		var verr *task.ValidationError
		if errors.As(err, &verr) {
			m.formErrors = verr
		}
		return m, nil
	}

	if m.formEditID != "" {
		m.status = "Task updated"
	} else {
		m.status = "Task added"
		// Select the new task when it is visible
		visible := m.visibleTasks()
		if len(visible) > 0 && visible[len(visible)-1].ID == m.tasks[len(m.tasks)-1].ID {
			m.selected = len(visible) - 1
		}
	}
	m.closeForm()
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchMode = false
		m.search.Reset()
		m.search.Blur()
		m.selected = m.ensureValidSelection()
		return m, nil
	case "enter":
		m.searchMode = false
		m.search.Blur()
		m.selected = m.ensureValidSelection()
		return m, nil
	case "up":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down":
		if m.selected < len(m.visibleTasks())-1 {
			m.selected++
		}
		return m, nil
	}

	// Pass all other keys to the textinput
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.selected = m.ensureValidSelection()
	return m, cmd
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		if m.selected < len(m.visibleTasks())-1 {
			m.selected++
		}

	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}

	case "/":
		m.searchMode = true
		m.status = ""
		cmd := m.search.Focus()
		return m, cmd

	case "p":
		m.priorityMode = true
		m.prioritySelected = 0
		for i, f := range task.PriorityFilters {
			if f == m.priorityFilter {
				m.prioritySelected = i
				break
			}
		}

	case "a":
		cmd := m.openForm(task.Task{Priority: m.defaultPriority}, "")
		return m, cmd

	case "e":
		if t, ok := m.selectedTask(); ok {
			cmd := m.openForm(t, t.ID)
			return m, cmd
		}

	case " ", "x":
		if t, ok := m.selectedTask(); ok {
			if err := m.apply(task.ToggleAction{ID: t.ID, Completed: !t.Completed}); err == nil {
				if t.Completed {
					m.status = "Task reopened"
				} else {
					m.status = "Task completed"
				}
			}
		}

	case "d":
		if t, ok := m.selectedTask(); ok {
			m.deleteConfirmMode = true
			m.deleteID = t.ID
		}

	case "C":
		m.priorityFilter = task.FilterAll
		m.search.Reset()
		m.selected = m.ensureValidSelection()

	case "esc":
		if m.search.Value() != "" {
			m.search.Reset()
			m.selected = m.ensureValidSelection()
		}
	}

	return m, nil
}

// apply runs a through the task operations and swaps in the result
func (m *Model) apply(a task.Action) error {
	next, err := m.ops.Apply(m.tasks, a)
	if err != nil {
		m.logger.Info("action rejected", "action", task.ActionName(a), "err", err)
		return err
	}
	m.logger.Debug("action applied", "action", task.ActionName(a), "before", len(m.tasks), "after", len(next))
	m.tasks = next
	m.selected = m.ensureValidSelection()
	return nil
}

func (m *Model) openForm(t task.Task, editID string) tea.Cmd {
	in := task.InputFrom(t)

	m.formMode = true
	m.formEditID = editID
	m.formErrors = nil
	m.status = ""
	m.formTitle.Reset()
	m.formTitle.SetValue(in.Title)
	m.formDescription.Reset()
	m.formDescription.SetValue(in.Description)
	m.formDueDate.Reset()
	m.formDueDate.SetValue(in.DueDate)

	m.formPriorityIdx = 0
	for i, p := range task.Priorities {
		if p == t.Priority {
			m.formPriorityIdx = i
			break
		}
	}

	if m.width > 0 {
		fieldWidth := m.width/2 - 10
		m.formTitle.Width = fieldWidth
		m.formDescription.SetWidth(fieldWidth)
		m.formDueDate.Width = fieldWidth
	}

	return m.focusField(FormFieldTitle)
}

func (m *Model) closeForm() {
	m.formMode = false
	m.formEditID = ""
	m.formField = 0
	m.formErrors = nil
	m.formTitle.Reset()
	m.formTitle.Blur()
	m.formDescription.Reset()
	m.formDescription.Blur()
	m.formDueDate.Reset()
	m.formDueDate.Blur()
}

func (m *Model) focusField(field int) tea.Cmd {
	m.formField = field
	m.formTitle.Blur()
	m.formDescription.Blur()
	m.formDueDate.Blur()

	switch field {
	case FormFieldTitle:
		return m.formTitle.Focus()
	case FormFieldDescription:
		return m.formDescription.Focus()
	case FormFieldDueDate:
		return m.formDueDate.Focus()
	}
	return nil
}

func (m Model) formInput() task.Input {
	return task.Input{
		Title:       m.formTitle.Value(),
		Description: m.formDescription.Value(),
		Priority:    string(task.Priorities[m.formPriorityIdx]),
		DueDate:     m.formDueDate.Value(),
	}
}

// visibleTasks returns tasks matching the current priority filter and search
func (m Model) visibleTasks() []task.Task {
	return task.Filter(m.tasks, m.priorityFilter, m.search.Value())
}

func (m Model) selectedTask() (task.Task, bool) {
	visible := m.visibleTasks()
	if len(visible) == 0 || m.selected >= len(visible) {
		return task.Task{}, false
	}
	return visible[m.selected], true
}

// ensureValidSelection ensures the current selection is within bounds
func (m Model) ensureValidSelection() int {
	visible := m.visibleTasks()
	if len(visible) == 0 {
		return 0
	}
	if m.selected >= len(visible) {
		return len(visible) - 1
	}
	if m.selected < 0 {
		return 0
	}
	return m.selected
}
