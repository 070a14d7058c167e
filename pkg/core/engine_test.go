package core_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stratumdoc/stratum/pkg/core"
)

func TestCompose(t *testing.T) {
	engine := core.NewEngine()

	t.Run("Single Document Without Includes", func(t *testing.T) {
		docs, err := engine.Compose([]core.Source{
			{Layer: core.LayerBase, ID: "a", Raw: "Hello"},
		}, []string{"a"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(docs) != 1 {
			t.Fatalf("expected 1 document, got %d", len(docs))
		}
		if docs[0].Body != "Hello" {
			t.Errorf("expected body Hello, got %q", docs[0].Body)
		}
		if !reflect.DeepEqual(docs[0].Contributors, []string{"a"}) {
			t.Errorf("expected contributors [a], got %v", docs[0].Contributors)
		}
	})

	t.Run("Include Substitutes Target Body", func(t *testing.T) {
		docs, err := engine.Compose([]core.Source{
			{Layer: core.LayerBase, ID: "a", Raw: "{include:b}"},
			{Layer: core.LayerBase, ID: "b", Raw: "World"},
		}, []string{"a"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if docs[0].Body != "World" {
			t.Errorf("expected body World, got %q", docs[0].Body)
		}
		if !reflect.DeepEqual(docs[0].Contributors, []string{"a", "b"}) {
			t.Errorf("expected contributors [a b], got %v", docs[0].Contributors)
		}
	})

	t.Run("Self Include Fails With Cycle", func(t *testing.T) {
		_, err := engine.Compose([]core.Source{
			{Layer: core.LayerBase, ID: "a", Raw: "{include:a}"},
		}, []string{"a"})
		var cyclic *core.CyclicIncludeError
		if !errors.As(err, &cyclic) {
			t.Fatalf("expected CyclicIncludeError, got %v", err)
		}
		if !reflect.DeepEqual(cyclic.Path, []string{"a"}) {
			t.Errorf("expected cycle path [a], got %v", cyclic.Path)
		}
	})

	t.Run("Override Precedence Across Three Layers", func(t *testing.T) {
		docs, err := engine.Compose([]core.Source{
			{Layer: core.LayerBase, ID: "x", Raw: "v1"},
			{Layer: core.LayerExtension, ID: "x", Raw: "v2"},
			{Layer: core.LayerLocalOverride, ID: "x", Raw: "v3"},
		}, []string{"x"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if docs[0].Body != "v3" {
			t.Errorf("expected v3, got %q", docs[0].Body)
		}
	})

	t.Run("Root Front Matter Surfaces", func(t *testing.T) {
		docs, err := engine.Compose([]core.Source{
			{Layer: core.LayerBase, ID: "a", Raw: "---\nname: foo\n---\nBody text"},
		}, []string{"a"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if docs[0].Metadata["name"] != "foo" {
			t.Errorf("expected metadata name=foo, got %v", docs[0].Metadata)
		}
		if docs[0].Body != "Body text" {
			t.Errorf("expected Body text, got %q", docs[0].Body)
		}
	})

	t.Run("Included Metadata Does Not Propagate", func(t *testing.T) {
		docs, err := engine.Compose([]core.Source{
			{Layer: core.LayerBase, ID: "root", Raw: "{include:frag}"},
			{Layer: core.LayerBase, ID: "frag", Raw: "---\nname: frag\n---\nfragment body"},
		}, []string{"root"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if docs[0].Metadata != nil {
			t.Errorf("included metadata leaked: %v", docs[0].Metadata)
		}
		if docs[0].Body != "fragment body" {
			t.Errorf("expected fragment body, got %q", docs[0].Body)
		}
	})

	t.Run("Diamond Includes Deduplicate", func(t *testing.T) {
		docs, err := engine.Compose([]core.Source{
			{Layer: core.LayerBase, ID: "r", Raw: "{include:a}{include:b}"},
			{Layer: core.LayerBase, ID: "a", Raw: "[{include:c}]"},
			{Layer: core.LayerBase, ID: "b", Raw: "[{include:c}]"},
			{Layer: core.LayerBase, ID: "c", Raw: "C"},
		}, []string{"r"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// C's body appears exactly once; the second branch substitutes empty.
		if docs[0].Body != "[C][]" {
			t.Errorf("expected [C][], got %q", docs[0].Body)
		}
		if !reflect.DeepEqual(docs[0].Contributors, []string{"r", "a", "c", "b"}) {
			t.Errorf("unexpected contributors: %v", docs[0].Contributors)
		}
	})

	t.Run("Unknown Root Fails", func(t *testing.T) {
		_, err := engine.Compose([]core.Source{
			{Layer: core.LayerBase, ID: "a", Raw: "x"},
		}, []string{"missing"})
		var emptyRoot *core.EmptyRootError
		if !errors.As(err, &emptyRoot) {
			t.Fatalf("expected EmptyRootError, got %v", err)
		}
		if emptyRoot.ID != "missing" {
			t.Errorf("error names wrong root: %q", emptyRoot.ID)
		}
	})

	t.Run("Any Error Aborts All Roots", func(t *testing.T) {
		docs, err := engine.Compose([]core.Source{
			{Layer: core.LayerBase, ID: "good", Raw: "fine"},
			{Layer: core.LayerBase, ID: "bad", Raw: "{include:ghost}"},
		}, []string{"good"})
		if err == nil {
			t.Fatal("expected composition to fail, got success")
		}
		if docs != nil {
			t.Errorf("expected no partial output, got %v", docs)
		}
	})

	t.Run("Deterministic Output", func(t *testing.T) {
		sources := []core.Source{
			{Layer: core.LayerBase, ID: "r", Raw: "{include:a}\n{include:b}"},
			{Layer: core.LayerBase, ID: "a", Raw: "alpha"},
			{Layer: core.LayerExtension, ID: "b", Raw: "beta"},
			{Layer: core.LayerLocalOverride, ID: "a", Raw: "alpha-override"},
		}
		first, err := engine.Compose(sources, []string{"r"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := engine.Compose(sources, []string{"r"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("same input produced different output:\n%v\n%v", first, second)
		}
	})

	t.Run("Output Follows Caller Root Order", func(t *testing.T) {
		docs, err := engine.Compose([]core.Source{
			{Layer: core.LayerBase, ID: "a", Raw: "A"},
			{Layer: core.LayerBase, ID: "b", Raw: "B"},
		}, []string{"b", "a"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if docs[0].ID != "b" || docs[1].ID != "a" {
			t.Errorf("root order not preserved: %v, %v", docs[0].ID, docs[1].ID)
		}
	})

	t.Run("Stats Reflect Last Run", func(t *testing.T) {
		_, err := engine.Compose([]core.Source{
			{Layer: core.LayerBase, ID: "r", Raw: "{include:a}"},
			{Layer: core.LayerBase, ID: "a", Raw: "x"},
		}, []string{"r"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		stats := engine.LastStats()
		if stats.Documents != 2 || stats.Edges != 1 || stats.Roots != 1 {
			t.Errorf("unexpected stats: %+v", stats)
		}
	})
}
