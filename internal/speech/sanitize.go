package speech

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	nonWordRe   = regexp.MustCompile(`[^\w\s-]`)
	separatorRe = regexp.MustCompile(`[-\s]+`)
)

// CleanName reduces a section name to a lowercase underscore token that
// is safe inside filenames and object keys. Names that sanitize to
// nothing get a timestamped placeholder so they stay distinguishable.
func CleanName(name string) string {
	cleaned := nonWordRe.ReplaceAllString(name, "_")
	cleaned = separatorRe.ReplaceAllString(cleaned, "_")
	cleaned = strings.Trim(strings.ToLower(cleaned), "_")
	if cleaned == "" {
		return fmt.Sprintf("unnamed_%d", time.Now().Unix())
	}
	return cleaned
}
