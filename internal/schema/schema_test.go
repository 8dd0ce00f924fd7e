package schema

import (
	"reflect"
	"strings"
	"testing"

	"resumelens/internal/types"
)

func TestForTask(t *testing.T) {
	for _, task := range types.AllTasks() {
		def, ok := ForTask(task)
		if !ok {
			t.Errorf("ForTask(%s) not found", task)
			continue
		}
		if len(def.Fields) == 0 {
			t.Errorf("ForTask(%s) has no fields", task)
		}
	}

	if _, ok := ForTask("unknown_task"); ok {
		t.Error("unknown task should not resolve to a definition")
	}
}

func TestDescribeListsEveryField(t *testing.T) {
	for _, task := range types.AllTasks() {
		def, _ := ForTask(task)
		described := def.Describe()
		for _, name := range def.FieldNames() {
			if !strings.Contains(described, `"`+name+`"`) {
				t.Errorf("task %s: Describe() is missing field %q:\n%s", task, name, described)
			}
		}
		if !strings.HasPrefix(described, "{") || !strings.HasSuffix(described, "}") {
			t.Errorf("task %s: Describe() should render a JSON object shape:\n%s", task, described)
		}
	}
}

// TestSchemaMatchesRecordTags pins each definition to the JSON tags of the
// record type its parser decodes into, so the prompt and the parser cannot
// drift apart.
func TestSchemaMatchesRecordTags(t *testing.T) {
	tests := []struct {
		name   string
		def    Definition
		record any
	}{
		{"feedback", Feedback(), types.FeedbackRecord{}},
		{"structured resume", StructuredResume(), types.StructuredResume{}},
		{"ats jargon", AtsJargon(), types.AtsJargonReport{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tags := jsonTagNames(reflect.TypeOf(tt.record))
			for _, name := range tt.def.FieldNames() {
				if !tags[name] {
					t.Errorf("schema field %q has no matching JSON tag on %T", name, tt.record)
				}
			}
			if len(tt.def.Fields) != len(tags) {
				t.Errorf("schema declares %d fields, record %T has %d JSON tags",
					len(tt.def.Fields), tt.record, len(tags))
			}
		})
	}
}

func jsonTagNames(t reflect.Type) map[string]bool {
	tags := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		if idx := strings.Index(tag, ","); idx >= 0 {
			tag = tag[:idx]
		}
		tags[tag] = true
	}
	return tags
}
