// Package manifest decodes structured file manifests out of model output.
// Models asked for JSON frequently wrap it in markdown fences; parsing
// recovers from that before giving up.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrParse is returned when content cannot be decoded as a manifest, even
// after fenced-block recovery.
var ErrParse = errors.New("manifest: unparseable model output")

// Manifest is the generated-project payload the code-generation path expects.
type Manifest struct {
	ProjectTitle   string          `json:"projectTitle,omitempty"`
	Explanation    string          `json:"explanation,omitempty"`
	Files          map[string]File `json:"files"`
	GeneratedFiles []string        `json:"generatedFiles,omitempty"`
}

// File is one generated source file.
type File struct {
	Code string `json:"code"`
}

// Parse decodes model output into a Manifest. It first tries the content
// verbatim, then re-extracts a fenced code block from the raw text. The
// returned string is the JSON that actually decoded, for callers that
// forward the raw document.
func Parse(content string) (*Manifest, string, error) {
	if raw, ok := decode(content); ok {
		return raw.m, raw.json, nil
	}

	if extracted, ok := ExtractFenced(content); ok {
		if raw, ok := decode(extracted); ok {
			return raw.m, raw.json, nil
		}
	}

	return nil, "", fmt.Errorf("%w: %.80s", ErrParse, strings.TrimSpace(content))
}

type decoded struct {
	m    *Manifest
	json string
}

func decode(content string) (decoded, bool) {
	content = strings.TrimSpace(content)
	if !gjson.Valid(content) {
		return decoded{}, false
	}
	var m Manifest
	if err := json.Unmarshal([]byte(content), &m); err != nil {
		return decoded{}, false
	}
	return decoded{m: &m, json: content}, true
}

// ExtractFenced pulls the body of the first markdown code fence out of raw
// text. A ```json fence wins over a plain ``` fence.
func ExtractFenced(content string) (string, bool) {
	for _, marker := range []string{"```json", "```"} {
		start := strings.Index(content, marker)
		if start == -1 {
			continue
		}
		rest := content[start+len(marker):]
		end := strings.Index(rest, "```")
		if end == -1 {
			continue
		}
		body := strings.TrimSpace(rest[:end])
		if body != "" {
			return body, true
		}
	}
	return "", false
}

// Merge injects the routing envelope's model and metadata fields into a raw
// manifest document, so callers receive one flat JSON object.
func Merge(rawJSON, model string, metadata map[string]string) (string, error) {
	out, err := sjson.Set(rawJSON, "model", model)
	if err != nil {
		return "", fmt.Errorf("manifest: merge model: %w", err)
	}
	for k, v := range metadata {
		out, err = sjson.Set(out, "metadata."+k, v)
		if err != nil {
			return "", fmt.Errorf("manifest: merge metadata: %w", err)
		}
	}
	return out, nil
}
