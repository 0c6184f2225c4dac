package nameless

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// JsonPrint writes v as indented JSON, prefixed with tag when non-empty.
func JsonPrint(w io.Writer, tag string, v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "%s: error marshaling: %v\n", tag, err)
		return
	}
	if tag == "" {
		fmt.Fprintln(w, string(b))
		return
	}
	fmt.Fprintf(w, "%s: %s\n", tag, string(b))
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

// parseEpoch accepts both bare and quoted integers; some endpoints return
// timestamps as strings.
func parseEpoch(s string) (int64, error) {
	s = strings.Trim(s, `"`)
	sec, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid unix timestamp %q", s)
	}
	return sec, nil
}
