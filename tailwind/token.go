package tailwind

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// TokenLength is the length of content derived tokens.
const TokenLength = 12

// ScopePrefix starts every scoped class name.
const ScopePrefix = "tw-"

// contentToken derives stable token from the set of utility classes: order
// and repetition of classes do not change the result.
func contentToken(classes []string) string {
	set := slices.Clone(classes)
	slices.Sort(set)
	set = slices.Compact(set)
	return fmt.Sprintf("%016x", xxhash.Sum64String(strings.Join(set, " ")))[:TokenLength]
}

// DataKeyAttribute returns name of the attribute which marks element in
// keyed mode.
func DataKeyAttribute(token string) string {
	return "data-tw-" + token[1:TokenLength]
}

// DataValueAttribute is the attribute which carries token in valued mode.
const DataValueAttribute = "data-tw"

// DataValueText returns value of DataValueAttribute for the token.
func DataValueText(token string) string {
	return token[1:TokenLength]
}
