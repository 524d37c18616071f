package msgtrans

import (
	"fmt"
	"sort"
	"strings"
)

// ValidateTranslations keeps the raw entries whose key is declared by a legal
// method and whose value is not blank. Blank values and keys no method
// declares are reported once each to diags; absent keys are silent, the
// method falls back to the superclass.
func ValidateTranslations(iface string, legal []*Method, raw map[string]string, source string, diags *Diagnostics) TranslationKeyMap {
	byKey := make(map[string][]*Method, len(legal))
	for _, m := range legal {
		byKey[m.Key] = append(byKey[m.Key], m)
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(TranslationKeyMap)
	for _, key := range keys {
		methods, ok := byKey[key]
		if !ok {
			diags.Warn(iface, source, key, fmt.Sprintf("orphan translation key: no method declares key %s", key))
			continue
		}
		value := raw[key]
		if strings.TrimSpace(value) == "" {
			diags.Warn(iface, source, key, fmt.Sprintf("translation ignored: blank value for key %s", key))
			continue
		}
		for _, m := range methods {
			out[m] = value
		}
	}
	return out
}
