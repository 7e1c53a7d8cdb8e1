package bridge

import (
	"strings"

	"github.com/Mohsinsiddi/stakeforms/internal/contract"
)

// LooseCoerce is the untyped fallback for inputs whose ABI type has no
// ParamKind. Text starting with "[" becomes a list (single quotes are read
// as double quotes), the exact text "false" becomes false, and anything
// else stays a string. "true" stays the string "true"; the typed path is the
// one that understands it.
func LooseCoerce(raw string) any {
	if strings.HasPrefix(raw, "[") {
		if items, err := contract.SplitList(raw); err == nil {
			return items
		}
		return strings.ReplaceAll(raw, "'", `"`)
	}
	if raw == "false" {
		return false
	}
	return raw
}
