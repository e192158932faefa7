package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/pdxmph/tasks-tui/internal/task"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Overlays replace the main view
	switch {
	case m.priorityMode:
		return m.renderPrioritySelection()
	case m.formMode:
		return m.renderForm()
	case m.deleteConfirmMode:
		return m.renderDeleteConfirmation()
	}

	// Calculate pane widths
	listWidth := m.width / 2
	detailWidth := m.width - listWidth - 3 // account for borders

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		borderStyle.Width(listWidth).Height(m.height-3).Render(m.renderList(listWidth, m.height-3)),
		borderStyle.Width(detailWidth).Height(m.height-3).Render(m.renderDetail(detailWidth)),
	)

	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderHelp())
}

// renderList renders the task cards
func (m Model) renderList(width, height int) string {
	var lines []string

	if m.searchMode {
		lines = append(lines, m.search.View())
		lines = append(lines, "")
		height -= 2
	}

	visible := m.visibleTasks()
	summary := task.Summarize(m.tasks)

	header := fmt.Sprintf("Tasks (%d of %d) · %d done", len(visible), summary.Total, summary.Completed)
	var indicators []string
	if m.priorityFilter != task.FilterAll {
		indicators = append(indicators, "priority:"+string(m.priorityFilter))
	}
	if q := m.search.Value(); q != "" && !m.searchMode {
		indicators = append(indicators, fmt.Sprintf("search:%q", q))
	}
	if len(indicators) > 0 {
		header += " [" + strings.Join(indicators, ", ") + "]"
	}
	lines = append(lines, header)
	lines = append(lines, strings.Repeat("─", max(width-2, 0)))

	if len(m.tasks) == 0 {
		lines = append(lines, "")
		lines = append(lines, "No tasks yet")
		lines = append(lines, labelStyle.Render("Get started by creating your first task. Press a to add one."))
		return strings.Join(lines, "\n")
	}
	if len(visible) == 0 {
		lines = append(lines, "")
		lines = append(lines, "No tasks found")
		return strings.Join(lines, "\n")
	}

	// Calculate visible range
	visibleHeight := height - 2 // account for header
	startIdx := 0
	if m.selected >= visibleHeight {
		startIdx = m.selected - visibleHeight + 1
	}

	now := m.ops.Now()
	for i := startIdx; i < len(visible) && i < startIdx+visibleHeight; i++ {
		lines = append(lines, m.renderCard(visible[i], i == m.selected, width-4, now))
	}

	return strings.Join(lines, "\n")
}

// renderCard renders one task as a single list line
func (m Model) renderCard(t task.Task, selected bool, width int, now time.Time) string {
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}
	marker := " "
	if t.IsOverdue(now) {
		marker = "!"
	}
	badge := strings.ToUpper(string(t.Priority))
	due := "due " + t.DueDate.Format("Jan 2")

	titleWidth := width - len(check) - len(badge) - len(due) - 6
	title := truncate(t.Title, titleWidth)

	if selected {
		return selectedStyle.Render(fmt.Sprintf("%s%s %s %s %s", marker, check, title, badge, due))
	}

	if t.Completed {
		title = doneStyle.Render(title)
	}
	if marker == "!" {
		marker = overdueStyle.Render(marker)
	}
	return fmt.Sprintf("%s%s %s %s %s", marker, check, title,
		priorityStyles[t.Priority].Render(badge), labelStyle.Render(due))
}

// renderDetail renders the selected task
func (m Model) renderDetail(width int) string {
	t, ok := m.selectedTask()
	if !ok {
		return "No task selected"
	}

	now := m.ops.Now()
	var lines []string

	lines = append(lines, t.Title)
	lines = append(lines, strings.Repeat("─", max(width-2, 0)))
	lines = append(lines, "")

	lines = append(lines, "Priority: "+priorityStyles[t.Priority].Render(string(t.Priority)))
	if t.Completed {
		lines = append(lines, "Status: completed")
	} else {
		lines = append(lines, "Status: open")
	}

	due := fmt.Sprintf("Due: %s", t.DueDate.Format("2006-01-02"))
	if t.IsOverdue(now) {
		due += " " + overdueStyle.Render("(overdue)")
	} else if !t.Completed {
		days := int(t.DueDate.Sub(now).Hours() / 24)
		due += fmt.Sprintf(" (in %d days)", days)
	}
	lines = append(lines, due)
	lines = append(lines, fmt.Sprintf("Created: %s", t.CreatedAt.Format("2006-01-02 15:04")))
	lines = append(lines, "")

	if t.Description != "" {
		lines = append(lines, "Description:")
		lines = append(lines, wrapText(t.Description, width-4)...)
	}

	return strings.Join(lines, "\n")
}

// renderHelp renders the help line
func (m Model) renderHelp() string {
	if m.searchMode {
		return " Type to search • ↑/↓: navigate • Enter: confirm • Esc: cancel"
	}

	help := " j/k: navigate • /: search • p: priority • a: add • e: edit • space: done • d: delete"

	if m.priorityFilter != task.FilterAll || m.search.Value() != "" {
		help += " • C: clear all"
	}
	if m.search.Value() != "" {
		help += " • Esc: clear search"
	}

	help += " • q: quit"

	if m.status != "" {
		help = " " + m.status + " |" + help
	}
	return help
}

// renderPrioritySelection renders the priority filter overlay
func (m Model) renderPrioritySelection() string {
	var lines []string
	lines = append(lines, "Filter by priority:")
	lines = append(lines, "")

	for i, f := range task.PriorityFilters {
		line := fmt.Sprintf("  %s", f)
		if f == task.FilterAll {
			line = "  all (clear filter)"
		}
		if i == m.prioritySelected {
			line = selectedStyle.Render(line)
		}
		lines = append(lines, line)
	}

	lines = append(lines, "")
	lines = append(lines, "Press Enter to confirm, Esc to cancel")

	return m.centerBox(borderStyle.
		Padding(1).
		Background(lipgloss.Color("235")).
		Render(strings.Join(lines, "\n")))
}

// renderForm renders the add/edit overlay with inline validation messages
func (m Model) renderForm() string {
	heading := "Add New Task"
	submit := "Add Task"
	if m.formEditID != "" {
		heading = "Edit Task"
		submit = "Update Task"
	}

	var lines []string
	lines = append(lines, heading)
	lines = append(lines, strings.Repeat("─", 40))
	lines = append(lines, "")

	field := func(label, view, name string) {
		lines = append(lines, labelStyle.Render(label))
		lines = append(lines, view)
		if msg := m.formErrors.Message(name); msg != "" {
			lines = append(lines, errorStyle.Render(msg))
		}
		lines = append(lines, "")
	}

	field("Title", m.formTitle.View(), task.FieldTitle)
	field("Description", m.formDescription.View(), task.FieldDescription)

	var priorities []string
	for i, p := range task.Priorities {
		name := string(p)
		switch {
		case i == m.formPriorityIdx && m.formField == FormFieldPriority:
			priorities = append(priorities, selectedStyle.Render("< "+name+" >"))
		case i == m.formPriorityIdx:
			priorities = append(priorities, priorityStyles[p].Render("["+name+"]"))
		default:
			priorities = append(priorities, " "+name+" ")
		}
	}
	field("Priority", strings.Join(priorities, " "), task.FieldPriority)
	field("Due Date", m.formDueDate.View(), task.FieldDueDate)

	lines = append(lines, fmt.Sprintf("Ctrl+S: %s • Tab/Shift+Tab: move • Esc: cancel", submit))

	return m.centerBox(borderStyle.
		Padding(1).
		Width(max(m.width/2, 60)).
		Background(lipgloss.Color("235")).
		Render(strings.Join(lines, "\n")))
}

// renderDeleteConfirmation renders the delete confirmation prompt
func (m Model) renderDeleteConfirmation() string {
	var title string
	if t, ok := task.Find(m.tasks, m.deleteID); ok {
		title = t.Title
	}

	width := 60
	height := 7

	prompt := fmt.Sprintf("Delete task '%s'? (y/n)", title)

	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-4).
		Align(lipgloss.Center, lipgloss.Center).
		Render(prompt)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(width).
		Height(height).
		Render(content)

	return m.centerBox(box)
}

// centerBox centers a rendered box on the screen
func (m Model) centerBox(box string) string {
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(box)
}

// truncate shortens s to width runes, marking the cut with an ellipsis
func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

// wrapText wraps text to fit within the specified width
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{}
	}

	currentLine := words[0]
	for _, word := range words[1:] {
		if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return lines
}
