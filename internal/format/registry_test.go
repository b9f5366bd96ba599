package format

import (
	"testing"

	"github.com/avsc-hub/avsc-hub/internal/schema"
)

func replaceRegistry(t *testing.T) func() {
	t.Helper()
	prev := globalRegistry
	globalRegistry = newRegistry()
	return func() { globalRegistry = prev }
}

func testParser() schema.Parser {
	return schema.NewAvroParser()
}

func TestRegisterResolveAndList(t *testing.T) {
	cleanup := replaceRegistry(t)
	defer cleanup()

	if err := Register(Metadata{Key: "beta", Extension: ".b", NewParser: testParser}); err != nil {
		t.Fatalf("register beta failed: %v", err)
	}
	if err := Register(Metadata{Key: "Alpha", Extension: ".a", NewParser: testParser}); err != nil {
		t.Fatalf("register alpha failed: %v", err)
	}

	if _, ok := Resolve("BETA"); !ok {
		t.Fatalf("resolve should be case-insensitive")
	}

	list := List()
	if len(list) != 2 {
		t.Fatalf("list length mismatch: %d", len(list))
	}
	if list[0].Key != "alpha" || list[1].Key != "beta" {
		t.Fatalf("unexpected order: %+v", list)
	}
}

func TestRegisterRejectsInvalidMetadata(t *testing.T) {
	cleanup := replaceRegistry(t)
	defer cleanup()

	testCases := []struct {
		name string
		meta Metadata
	}{
		{"missing key", Metadata{Extension: ".x", NewParser: testParser}},
		{"bad extension", Metadata{Key: "x", Extension: "x", NewParser: testParser}},
		{"missing parser", Metadata{Key: "x", Extension: ".x"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := Register(tc.meta); err == nil {
				t.Fatalf("expected registration error")
			}
		})
	}
}

func TestRegisterDuplicateFails(t *testing.T) {
	cleanup := replaceRegistry(t)
	defer cleanup()

	meta := Metadata{Key: "avro", Extension: ".avsc", NewParser: testParser}
	if err := Register(meta); err != nil {
		t.Fatalf("first registration should succeed: %v", err)
	}
	if err := Register(meta); err == nil {
		t.Fatalf("duplicate registration should fail")
	}
}

func TestBuiltinAvroFormat(t *testing.T) {
	meta, ok := Resolve(DefaultKey())
	if !ok {
		t.Fatalf("avro format should be registered at init")
	}
	if meta.Extension != ".avsc" {
		t.Fatalf("unexpected extension %s", meta.Extension)
	}
	if meta.NewParser() == nil {
		t.Fatalf("parser factory returned nil")
	}
}
