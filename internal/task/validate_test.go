package task

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.October, 16, 12, 0, 0, 0, time.Local)

func validInput() Input {
	return Input{
		Title:       "Task",
		Description: "desc",
		Priority:    "low",
		DueDate:     "2026-10-20",
	}
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
	return verr.Fields
}

func TestValidateAcceptsValidInput(t *testing.T) {
	draft, err := Validate(validInput(), testNow)
	require.NoError(t, err)

	assert.Equal(t, "Task", draft.Title)
	assert.Equal(t, "desc", draft.Description)
	assert.Equal(t, PriorityLow, draft.Priority)
	assert.Equal(t, time.Date(2026, time.October, 20, 0, 0, 0, 0, time.Local), draft.DueDate)
}

func TestValidateSingleRule(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Input)
		field  string
		msg    string
	}{
		{
			name:   "empty title",
			modify: func(in *Input) { in.Title = "" },
			field:  FieldTitle,
			msg:    "Title is required",
		},
		{
			name:   "long title",
			modify: func(in *Input) { in.Title = strings.Repeat("t", 101) },
			field:  FieldTitle,
			msg:    "Title must be less than 100 characters",
		},
		{
			name:   "empty description",
			modify: func(in *Input) { in.Description = "" },
			field:  FieldDescription,
			msg:    "Description is required",
		},
		{
			name:   "long description",
			modify: func(in *Input) { in.Description = strings.Repeat("d", 501) },
			field:  FieldDescription,
			msg:    "Description must be less than 500 characters",
		},
		{
			name:   "unknown priority",
			modify: func(in *Input) { in.Priority = "urgent" },
			field:  FieldPriority,
			msg:    "Priority must be one of high, medium, low",
		},
		{
			name:   "priority is case sensitive",
			modify: func(in *Input) { in.Priority = "High" },
			field:  FieldPriority,
			msg:    "Priority must be one of high, medium, low",
		},
		{
			name:   "missing due date",
			modify: func(in *Input) { in.DueDate = "" },
			field:  FieldDueDate,
			msg:    "Due date is required",
		},
		{
			name:   "unparseable due date",
			modify: func(in *Input) { in.DueDate = "next tuesday" },
			field:  FieldDueDate,
			msg:    "Due date must be a valid date",
		},
		{
			name:   "past due date",
			modify: func(in *Input) { in.DueDate = "2026-10-01" },
			field:  FieldDueDate,
			msg:    "Due date must be in the future",
		},
		{
			name:   "due today is not in the future",
			modify: func(in *Input) { in.DueDate = "2026-10-16" },
			field:  FieldDueDate,
			msg:    "Due date must be in the future",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.modify(&in)

			draft, err := Validate(in, testNow)
			assert.Equal(t, Draft{}, draft)
			assert.Equal(t, map[string]string{tt.field: tt.msg}, fieldErrors(t, err))
		})
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	_, err := Validate(Input{Priority: "none", DueDate: "2020-01-01"}, testNow)

	assert.Equal(t, map[string]string{
		FieldTitle:       "Title is required",
		FieldDescription: "Description is required",
		FieldPriority:    "Priority must be one of high, medium, low",
		FieldDueDate:     "Due date must be in the future",
	}, fieldErrors(t, err))
}

func TestValidateLengthBoundaries(t *testing.T) {
	in := validInput()
	in.Title = strings.Repeat("é", 100)
	in.Description = strings.Repeat("ü", 500)

	_, err := Validate(in, testNow)
	require.NoError(t, err, "limits count characters, not bytes")
}

func TestValidateDueDateTimestamp(t *testing.T) {
	in := validInput()

	in.DueDate = testNow.Add(time.Hour).Format(time.RFC3339)
	draft, err := Validate(in, testNow)
	require.NoError(t, err)
	assert.True(t, draft.DueDate.Equal(testNow.Add(time.Hour)))

	in.DueDate = testNow.Format(time.RFC3339)
	_, err = Validate(in, testNow)
	assert.Equal(t, map[string]string{FieldDueDate: "Due date must be in the future"}, fieldErrors(t, err))
}

func TestValidationErrorString(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{
		FieldTitle:   "Title is required",
		FieldDueDate: "Due date is required",
	}}

	assert.Equal(t, "invalid task: dueDate: Due date is required; title: Title is required", err.Error())
	assert.Equal(t, "Title is required", err.Message(FieldTitle))
	assert.Empty(t, err.Message(FieldPriority))

	var nilErr *ValidationError
	assert.Empty(t, nilErr.Message(FieldTitle))
}

func TestDueDateRoundTrip(t *testing.T) {
	midnight := time.Date(2026, time.December, 1, 0, 0, 0, 0, time.Local)
	assert.Equal(t, "2026-12-01", FormatDueDate(midnight))

	parsed, err := ParseDueDate(FormatDueDate(midnight))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(midnight))

	precise := time.Date(2026, time.December, 1, 9, 30, 0, 0, time.UTC)
	parsed, err = ParseDueDate(FormatDueDate(precise))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(precise))
}

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority("medium")
	require.NoError(t, err)
	assert.Equal(t, PriorityMedium, p)

	_, err = ParsePriority("urgent")
	assert.ErrorIs(t, err, ErrUnknownPriority)
}
