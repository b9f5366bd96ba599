package schema

import (
	"errors"
	"testing"
)

type mapRegistry map[string]Schema

func (r mapRegistry) Lookup(fullname string) (Schema, bool) {
	s, ok := r[fullname]
	return s, ok
}

func (r mapRegistry) Register(fullname string, s Schema) bool {
	if _, exists := r[fullname]; exists {
		return false
	}
	r[fullname] = s
	return true
}

func TestAvroParserStandaloneRecord(t *testing.T) {
	registry := mapRegistry{}
	parsed, err := NewAvroParser().Parse([]byte(`{"type":"record","name":"a","fields":[{"name":"id","type":"long"}]}`), registry)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	name, ok := FullNameOf(parsed)
	if !ok || name != "a" {
		t.Fatalf("expected named schema a, got %q (named=%v)", name, ok)
	}
	if !HasFields(parsed) {
		t.Fatalf("record with a field should report fields")
	}
	if _, ok := registry["a"]; !ok {
		t.Fatalf("parser should register a")
	}
}

func TestAvroParserReportsUnresolvedReference(t *testing.T) {
	testCases := []struct {
		name       string
		definition string
		missing    string
	}{
		{
			name:       "field reference",
			definition: `{"type":"record","name":"x","fields":[{"name":"y","type":"y"}]}`,
			missing:    "y",
		},
		{
			name:       "namespace inherited",
			definition: `{"type":"record","name":"x","namespace":"ns","fields":[{"name":"y","type":"y"}]}`,
			missing:    "ns.y",
		},
		{
			name:       "union branch",
			definition: `{"type":"record","name":"x","fields":[{"name":"z","type":["null","z"]}]}`,
			missing:    "z",
		},
		{
			name:       "array items",
			definition: `{"type":"record","name":"x","fields":[{"name":"zs","type":{"type":"array","items":"other.Z"}}]}`,
			missing:    "other.Z",
		},
		{
			name:       "map values",
			definition: `{"type":"record","name":"x","fields":[{"name":"zs","type":{"type":"map","values":{"type":"w"}}}]}`,
			missing:    "w",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			registry := mapRegistry{}
			_, err := NewAvroParser().Parse([]byte(tc.definition), registry)
			var unresolved *UnresolvedReferenceError
			if !errors.As(err, &unresolved) {
				t.Fatalf("expected unresolved reference, got %v", err)
			}
			if unresolved.Name != tc.missing {
				t.Fatalf("expected missing %q, got %q", tc.missing, unresolved.Name)
			}
			if len(registry) != 0 {
				t.Fatalf("failed parse must not register anything, got %d entries", len(registry))
			}
		})
	}
}

func TestAvroParserUsesRegistry(t *testing.T) {
	registry := mapRegistry{}
	parser := NewAvroParser()
	if _, err := parser.Parse([]byte(`{"type":"record","name":"y","fields":[{"name":"v","type":"int"}]}`), registry); err != nil {
		t.Fatalf("parse y: %v", err)
	}
	parsed, err := parser.Parse([]byte(`{"type":"record","name":"x","fields":[{"name":"y","type":"y"}]}`), registry)
	if err != nil {
		t.Fatalf("parse x: %v", err)
	}
	if name, _ := FullNameOf(parsed); name != "x" {
		t.Fatalf("unexpected name %q", name)
	}
	if _, ok := registry["x"]; !ok {
		t.Fatalf("x should be registered")
	}
}

func TestAvroParserRegistersNestedTypes(t *testing.T) {
	registry := mapRegistry{}
	definition := `{
  "type": "record",
  "name": "Order",
  "namespace": "shop",
  "fields": [
    {"name": "status", "type": {"type": "enum", "name": "Status", "symbols": ["NEW", "DONE"]}},
    {"name": "previous", "type": ["null", "Status"]},
    {"name": "self", "type": ["null", "Order"]}
  ]
}`
	if _, err := NewAvroParser().Parse([]byte(definition), registry); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	for _, name := range []string{"shop.Order", "shop.Status"} {
		if _, ok := registry[name]; !ok {
			t.Fatalf("expected %s to be registered", name)
		}
	}
}

func TestAvroParserPrimitive(t *testing.T) {
	parsed, err := NewAvroParser().Parse([]byte(`"string"`), mapRegistry{})
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if _, ok := FullNameOf(parsed); ok {
		t.Fatalf("primitive schema should not be named")
	}
	if HasFields(parsed) {
		t.Fatalf("primitive schema has no fields")
	}
}

func TestAvroParserOpaqueFailure(t *testing.T) {
	_, err := NewAvroParser().Parse([]byte(`{"type": "record",`), mapRegistry{})
	if err == nil {
		t.Fatalf("malformed JSON should fail")
	}
	var unresolved *UnresolvedReferenceError
	if errors.As(err, &unresolved) {
		t.Fatalf("malformed JSON is not an unresolved reference: %v", err)
	}
}

func TestAvroParserRejectsRedefinition(t *testing.T) {
	registry := mapRegistry{}
	parser := NewAvroParser()
	first := `{"type":"record","name":"a","fields":[{"name":"kind","type":{"type":"enum","name":"Kind","symbols":["X"]}}]}`
	if _, err := parser.Parse([]byte(first), registry); err != nil {
		t.Fatalf("parse a: %v", err)
	}
	kind := registry["Kind"]

	second := `{"type":"record","name":"b","fields":[{"name":"kind","type":{"type":"enum","name":"Kind","symbols":["Y","Z"]}}]}`
	_, err := parser.Parse([]byte(second), registry)
	var dup *DuplicateNameError
	if !errors.As(err, &dup) || dup.Name != "Kind" {
		t.Fatalf("expected duplicate Kind, got %v", err)
	}
	var unresolved *UnresolvedReferenceError
	if errors.As(err, &unresolved) {
		t.Fatalf("redefinition must not look like a missing dependency")
	}
	if _, ok := registry["b"]; ok {
		t.Fatalf("b should not be registered after a failed parse")
	}
	if registry["Kind"] != kind {
		t.Fatalf("Kind must keep its first definition")
	}
}

// refusingRegistry 查询时为空，但拒绝任何登记。
type refusingRegistry struct{}

func (refusingRegistry) Lookup(string) (Schema, bool) { return nil, false }
func (refusingRegistry) Register(string, Schema) bool { return false }

func TestAvroParserFailsWhenRegistrationRefused(t *testing.T) {
	_, err := NewAvroParser().Parse([]byte(`{"type":"record","name":"a","fields":[]}`), refusingRegistry{})
	var dup *DuplicateNameError
	if !errors.As(err, &dup) || dup.Name != "a" {
		t.Fatalf("expected duplicate a, got %v", err)
	}
}
