package dom

import (
	"sync"

	"github.com/andybalholm/cascadia"
)

var (
	selectorCache   = make(map[string]cascadia.SelectorGroup)
	selectorCacheMu sync.Mutex
)

// compile returns a cached selector group, or nil if selector does not parse.
// Invalid selectors never match, the same way a failed element.matches call
// is treated as a miss.
func compile(selector string) cascadia.SelectorGroup {
	selectorCacheMu.Lock()
	defer selectorCacheMu.Unlock()

	if sel, ok := selectorCache[selector]; ok {
		return sel
	}
	sel, err := cascadia.ParseGroup(selector)
	if err != nil {
		sel = nil
	}
	selectorCache[selector] = sel
	return sel
}

// ValidSelector reports whether selector parses.
func ValidSelector(selector string) bool {
	return compile(selector) != nil
}
