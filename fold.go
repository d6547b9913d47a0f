package headerkit

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/maypok86/otter"
)

const foldCacheSize = 2048

var (
	commonBuildOnce sync.Once
	commonFold      map[string]string // as-transmitted casing -> folded form
	foldCache       *otter.Cache[string, string]
)

func buildCommonFoldOnce() {
	commonBuildOnce.Do(buildCommonFold)
}

func buildCommonFold() {
	common := []string{
		"accept",
		"accept-charset",
		"accept-encoding",
		"accept-language",
		"accept-ranges",
		"age",
		"access-control-allow-origin",
		"allow",
		"authorization",
		"cache-control",
		"connection",
		"content-disposition",
		"content-encoding",
		"content-language",
		"content-length",
		"content-location",
		"content-range",
		"content-type",
		"cookie",
		"date",
		"etag",
		"expect",
		"expires",
		"from",
		"host",
		"if-match",
		"if-modified-since",
		"if-none-match",
		"if-unmodified-since",
		"last-modified",
		"link",
		"location",
		"max-forwards",
		"origin",
		"proxy-authenticate",
		"proxy-authorization",
		"range",
		"referer",
		"retry-after",
		"sec-websocket-accept",
		"sec-websocket-extensions",
		"sec-websocket-key",
		"sec-websocket-protocol",
		"sec-websocket-version",
		"server",
		"set-cookie",
		"strict-transport-security",
		"trailer",
		"transfer-encoding",
		"upgrade",
		"user-agent",
		"vary",
		"via",
		"www-authenticate",
	}

	commonFold = make(map[string]string, len(common)*2)
	for _, lower := range common {
		commonFold[lower] = lower
		commonFold[canonicalCase(lower)] = lower
	}

	cache, err := otter.MustBuilder[string, string](foldCacheSize).Build()
	if err != nil {
		// Only reachable with an invalid capacity, which is a constant here.
		panic(err)
	}
	foldCache = &cache
}

// canonicalCase uppercases the first letter and every letter following a
// hyphen, producing the traditional Content-Type style casing.
func canonicalCase(s string) string {
	b := []byte(s)
	upper := true
	for i, c := range b {
		if upper && 'a' <= c && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
		upper = c == '-'
	}
	return string(b)
}

// Fold returns the case-folded form of a key, the form used internally for
// slot identity. It is exposed for callers that need to display or compare
// folded names themselves.
func Fold(key string) string {
	return foldKey(key)
}

// foldKey returns the case-folded form of key used for slot identity. The
// folding is fixed and locale-independent: ASCII letters are lowercased in
// place and anything beyond ASCII goes through strings.ToLower, which maps
// runes with the locale-free Unicode tables. Common header names in their
// usual casings skip folding entirely, and folded forms of uncommon
// non-ASCII names are memoized in a small cache.
func foldKey(key string) string {
	buildCommonFoldOnce()

	if folded, ok := commonFold[key]; ok {
		return folded
	}

	if folded, ok := toLowerASCII(key); ok {
		return folded
	}

	if folded, ok := foldCache.Get(key); ok {
		return folded
	}
	folded := strings.ToLower(key)
	foldCache.Set(key, folded)
	return folded
}

// toLowerASCII lowercases s if it is pure ASCII. The second return value is
// false when s contains a non-ASCII byte, in which case the caller must fold
// with the full Unicode tables.
func toLowerASCII(s string) (string, bool) {
	hasUpper := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= utf8.RuneSelf {
			return "", false
		}
		hasUpper = hasUpper || ('A' <= c && c <= 'Z')
	}

	if !hasUpper {
		return s, true
	}

	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b), true
}
