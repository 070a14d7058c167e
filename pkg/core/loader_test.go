package core_test

import (
	"errors"
	"testing"

	"github.com/stratumdoc/stratum/pkg/core"
)

func TestLoad(t *testing.T) {
	t.Run("Duplicate Identifier In Same Layer Fails", func(t *testing.T) {
		_, err := core.Load([]core.Source{
			{Layer: core.LayerBase, ID: "agents/reviewer", Raw: "one"},
			{Layer: core.LayerBase, ID: "agents/reviewer", Raw: "two"},
		})
		var dupErr *core.DuplicateIdentifierError
		if !errors.As(err, &dupErr) {
			t.Fatalf("expected DuplicateIdentifierError, got %v", err)
		}
		if dupErr.ID != "agents/reviewer" || dupErr.Layer != core.LayerBase {
			t.Errorf("error carries wrong context: %+v", dupErr)
		}
	})

	t.Run("Same Identifier Across Layers Is Valid", func(t *testing.T) {
		reg, err := core.Load([]core.Source{
			{Layer: core.LayerBase, ID: "x", Raw: "v1"},
			{Layer: core.LayerExtension, ID: "x", Raw: "v2"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if reg.Len() != 2 {
			t.Errorf("expected 2 documents, got %d", reg.Len())
		}
		if got := reg.Layer(core.LayerBase)["x"].Body; got != "v1" {
			t.Errorf("base body = %q", got)
		}
		if got := reg.Layer(core.LayerExtension)["x"].Body; got != "v2" {
			t.Errorf("extension body = %q", got)
		}
	})

	t.Run("Malformed Front Matter Carries Identifier", func(t *testing.T) {
		_, err := core.Load([]core.Source{
			{Layer: core.LayerBase, ID: "broken", Raw: "---\nno closing fence"},
		})
		var fmErr *core.MalformedFrontMatterError
		if !errors.As(err, &fmErr) {
			t.Fatalf("expected MalformedFrontMatterError, got %v", err)
		}
		if fmErr.ID != "broken" {
			t.Errorf("expected error to name %q, got %q", "broken", fmErr.ID)
		}
	})

	t.Run("Identifiers Are Sorted And Distinct", func(t *testing.T) {
		reg, err := core.Load([]core.Source{
			{Layer: core.LayerBase, ID: "b", Raw: ""},
			{Layer: core.LayerBase, ID: "a", Raw: ""},
			{Layer: core.LayerLocalOverride, ID: "b", Raw: ""},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ids := reg.Identifiers()
		if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
			t.Errorf("unexpected identifiers: %v", ids)
		}
	})
}
