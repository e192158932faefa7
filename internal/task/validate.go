package task

import (
	_ "embed"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// Field names used as keys in ValidationError.Fields
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldPriority    = "priority"
	FieldDueDate     = "dueDate"
)

// Fields lists the validated fields in form order
var Fields = []string{FieldTitle, FieldDescription, FieldPriority, FieldDueDate}

const (
	dateLayout  = "2006-01-02"
	schemaURL   = "https://tasks-tui.local/schema/input.schema.json"
	msgDueEmpty = "Due date is required"
	msgDueBad   = "Due date must be a valid date"
	msgDuePast  = "Due date must be in the future"
)

//go:embed schema/input.schema.json
var inputSchemaJSON string

var inputSchema = mustCompileSchema()

// schemaMessages maps a field and the schema keyword it failed to the
// message shown next to that field.
var schemaMessages = map[string]map[string]string{
	FieldTitle: {
		"type":      "Title is required",
		"minLength": "Title is required",
		"maxLength": "Title must be less than 100 characters",
	},
	FieldDescription: {
		"type":      "Description is required",
		"minLength": "Description is required",
		"maxLength": "Description must be less than 500 characters",
	},
	FieldPriority: {
		"enum": "Priority must be one of high, medium, low",
	},
}

// ValidationError maps each failing field to one human-readable message
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid task: " + strings.Join(parts, "; ")
}

// Message returns the message for field, or "" if the field passed
func (e *ValidationError) Message(field string) string {
	if e == nil {
		return ""
	}
	return e.Fields[field]
}

func (e *ValidationError) add(field, msg string) {
	if _, exists := e.Fields[field]; exists {
		return
	}
	e.Fields[field] = msg
}

// Validate checks every rule against in and returns the normalized values,
// or a *ValidationError listing every field that failed. now is the moment
// the due date must be later than.
func Validate(in Input, now time.Time) (Draft, error) {
	verr := &ValidationError{Fields: make(map[string]string)}

	doc := map[string]interface{}{
		FieldTitle:       in.Title,
		FieldDescription: in.Description,
		FieldPriority:    in.Priority,
		FieldDueDate:     in.DueDate,
	}
	if err := inputSchema.Validate(doc); err != nil {
		collectSchemaErrors(verr, err)
	}

	due, msg := checkDueDate(in.DueDate, now)
	if msg != "" {
		verr.add(FieldDueDate, msg)
	}

	if len(verr.Fields) > 0 {
		return Draft{}, verr
	}

	return Draft{
		Title:       in.Title,
		Description: in.Description,
		Priority:    Priority(in.Priority),
		DueDate:     due,
	}, nil
}

func checkDueDate(s string, now time.Time) (time.Time, string) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, msgDueEmpty
	}
	due, err := ParseDueDate(s)
	if err != nil {
		return time.Time{}, msgDueBad
	}
	if !due.After(now) {
		return time.Time{}, msgDuePast
	}
	return due, ""
}

// ParseDueDate accepts a calendar date (local midnight) or an RFC 3339
// timestamp.
func ParseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(dateLayout, s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing due date %q: %w", s, err)
	}
	return t, nil
}

// FormatDueDate renders t the way ParseDueDate reads it back
func FormatDueDate(t time.Time) string {
	local := t.In(time.Local)
	if local.Hour() == 0 && local.Minute() == 0 && local.Second() == 0 && local.Nanosecond() == 0 {
		return local.Format(dateLayout)
	}
	return t.Format(time.RFC3339)
}

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, strings.NewReader(inputSchemaJSON)); err != nil {
		panic(fmt.Sprintf("loading task input schema: %v", err))
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		panic(fmt.Sprintf("compiling task input schema: %v", err))
	}
	return schema
}

func collectSchemaErrors(verr *ValidationError, err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		verr.add("", err.Error())
		return
	}
	collectSchemaCauses(verr, ve)
}

func collectSchemaCauses(verr *ValidationError, ve *jsonschema.ValidationError) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectSchemaCauses(verr, cause)
		}
		return
	}

	field := strings.TrimPrefix(ve.InstanceLocation, "/")
	if i := strings.IndexByte(field, '/'); i >= 0 {
		field = field[:i]
	}
	keyword := path.Base(ve.KeywordLocation)

	if msg, ok := schemaMessages[field][keyword]; ok {
		verr.add(field, msg)
		return
	}
	verr.add(field, ve.Message)
}
