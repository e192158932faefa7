package task

// Action is a user intent that produces the next task collection
type Action interface {
	actionName() string
}

// AddAction submits the add form
type AddAction struct {
	Input Input
}

// EditAction submits the edit form for the task with ID
type EditAction struct {
	ID    string
	Input Input
}

// DeleteAction removes the task with ID
type DeleteAction struct {
	ID string
}

// ToggleAction sets the completion flag of the task with ID
type ToggleAction struct {
	ID        string
	Completed bool
}

func (AddAction) actionName() string    { return "add" }
func (EditAction) actionName() string   { return "edit" }
func (DeleteAction) actionName() string { return "delete" }
func (ToggleAction) actionName() string { return "toggle" }

// ActionName returns a short label for logging
func ActionName(a Action) string {
	if a == nil {
		return "none"
	}
	return a.actionName()
}

// Apply reduces tasks with a. Only add and edit can fail, and only with a
// *ValidationError; the returned collection is then tasks itself. A nil or
// unrecognized action returns tasks unchanged.
func (o Ops) Apply(tasks []Task, a Action) ([]Task, error) {
	switch a := a.(type) {
	case AddAction:
		return o.Add(tasks, a.Input)
	case EditAction:
		return o.Edit(tasks, a.ID, a.Input)
	case DeleteAction:
		return Delete(tasks, a.ID), nil
	case ToggleAction:
		return SetCompleted(tasks, a.ID, a.Completed), nil
	default:
		return tasks, nil
	}
}
