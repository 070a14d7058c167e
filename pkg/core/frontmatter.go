package core

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseFrontMatter splits raw text into an optional metadata block and the
// body. The block, if present, starts with a "---" fence on the very first
// line and ends at the next "---" fence on its own line; between the fences
// sits a YAML mapping of string keys to scalars or lists of strings.
//
// No front matter is the valid common case: the body is the entire input
// and the returned metadata is nil.
func ParseFrontMatter(raw string) (Metadata, string, error) {
	// Standard: the opening fence must be the very first line.
	if !strings.HasPrefix(raw, "---\n") && !strings.HasPrefix(raw, "---\r\n") && raw != "---" {
		return nil, raw, nil
	}

	rest := raw[3:]
	// The closing fence must sit on its own line, so search for a newline
	// immediately followed by the marker.
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return nil, "", &MalformedFrontMatterError{
			Reason: "opening fence has no closing fence before end of document",
		}
	}

	block := rest[:end]
	body := rest[end+len("\n---"):]

	// The remainder of the fence line (if any) is discarded with the line
	// itself; the body starts after the following newline.
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	} else {
		body = ""
	}

	meta, err := decodeMetadataBlock(block)
	if err != nil {
		return nil, "", err
	}

	return meta, body, nil
}

// decodeMetadataBlock parses the text between the fences. yaml.v3 already
// rejects duplicate mapping keys, which covers the duplicate-key rule.
func decodeMetadataBlock(block string) (Metadata, error) {
	meta := make(Metadata)
	if strings.TrimSpace(block) == "" {
		return meta, nil
	}

	if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
		return nil, &MalformedFrontMatterError{
			Reason: "invalid key-value block",
			Err:    err,
		}
	}

	for key, value := range meta {
		if err := validateMetadataValue(key, value); err != nil {
			return nil, err
		}
	}

	return meta, nil
}

// validateMetadataValue enforces the scalar-or-string-list shape. Front
// matter here is intentionally flat; nested structures are a sign the
// document was written for some other tool.
func validateMetadataValue(key string, value any) error {
	switch v := value.(type) {
	case nil, string, bool, int, int64, uint64, float64:
		return nil
	case []any:
		for _, item := range v {
			if _, ok := item.(string); !ok {
				return &MalformedFrontMatterError{
					Reason: fmt.Sprintf("key %q: list values must be strings, got %T", key, item),
				}
			}
		}
		return nil
	default:
		return &MalformedFrontMatterError{
			Reason: fmt.Sprintf("key %q: value must be a scalar or a list of strings, got %T", key, value),
		}
	}
}

// EncodeFrontMatter serializes metadata and body back into fenced document
// text. Empty metadata yields the body unchanged.
func EncodeFrontMatter(meta Metadata, body string) (string, error) {
	if len(meta) == 0 {
		return body, nil
	}

	var buf strings.Builder
	buf.WriteString("---\n")
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(meta); err != nil {
		return "", err
	}
	encoder.Close()
	buf.WriteString("---\n")
	buf.WriteString(body)
	return buf.String(), nil
}
