package batch

import (
	"bytes"
	"encoding/json"
	"os"
)

// writeJSON writes v as two-space indented JSON. HTML escaping is off so
// titles keep characters such as '&' and '<' verbatim.
func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
