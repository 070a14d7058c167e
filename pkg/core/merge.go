package core

import "log/slog"

// MergeLayers flattens a registry into one effective document per
// identifier. Precedence is total and deterministic: local-override beats
// extension beats base. The override replaces the whole document; there is
// no field-level merging of metadata or body.
func MergeLayers(reg *Registry, logger *slog.Logger) map[string]Document {
	merged := make(map[string]Document, reg.Len())
	for _, layer := range []Layer{LayerBase, LayerExtension, LayerLocalOverride} {
		for id, doc := range reg.Layer(layer) {
			if prev, ok := merged[id]; ok && logger != nil {
				logger.Debug("layer override",
					"id", id,
					"winner", doc.Layer.String(),
					"shadowed", prev.Layer.String(),
				)
			}
			merged[id] = doc
		}
	}
	return merged
}

// Merge is the lower-level form of MergeLayers for callers that assemble
// candidate lists by hand, bypassing Load's uniqueness check. Candidates
// for one identifier are examined in registration order; the highest layer
// wins, and within the same layer the last registered wins with a warning.
func Merge(candidates map[string][]Document, logger *slog.Logger) map[string]Document {
	merged := make(map[string]Document, len(candidates))
	for id, docs := range candidates {
		if len(docs) == 0 {
			continue
		}
		winner := docs[0]
		for _, doc := range docs[1:] {
			if doc.Layer < winner.Layer {
				continue
			}
			if doc.Layer == winner.Layer && logger != nil {
				logger.Warn("same-layer tie resolved by last registration",
					"id", id,
					"layer", doc.Layer.String(),
				)
			}
			winner = doc
		}
		merged[id] = winner
	}
	return merged
}
