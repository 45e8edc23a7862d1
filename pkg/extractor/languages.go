package extractor

import (
	"sort"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/pemistahl/lingua-go"
)

// detectable restricts lingua to the languages vacation-rental sites in
// scope actually use; a smaller set keeps detection sharp on short text.
var detectable = []lingua.Language{
	lingua.English, lingua.French, lingua.German, lingua.Spanish,
	lingua.Italian, lingua.Portuguese, lingua.Dutch, lingua.Greek,
}

// minDetectionChars guards lingua against guessing on near-empty text.
const minDetectionChars = 40

type languageDetector struct {
	once     sync.Once
	detector lingua.LanguageDetector
}

func newLanguageDetector() *languageDetector {
	return &languageDetector{}
}

func (d *languageDetector) get() lingua.LanguageDetector {
	d.once.Do(func() {
		d.detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(detectable...).
			WithMinimumRelativeDistance(0.25).
			Build()
	})
	return d.detector
}

// detect unions explicitly advertised language codes (lang attributes,
// hreflang alternates, language-switcher links) with lingua's guess over the
// page's title and description. Returns sorted ISO 639-1 codes.
func (d *languageDetector) detect(doc *goquery.Document, text string) []string {
	codes := make(map[string]struct{})

	if lang, ok := doc.Find("html").First().Attr("lang"); ok {
		addLangCode(codes, lang)
	}
	doc.Find("link[hreflang],a[hreflang]").Each(func(_ int, s *goquery.Selection) {
		if lang, ok := s.Attr("hreflang"); ok {
			addLangCode(codes, lang)
		}
	})
	doc.Find(`[class*="language-switcher"] a,[class*="lang-switcher"] a,[id*="language"] a`).Each(func(_ int, s *goquery.Selection) {
		if lang, ok := s.Attr("lang"); ok {
			addLangCode(codes, lang)
		}
	})

	if len(strings.TrimSpace(text)) >= minDetectionChars {
		if lang, ok := d.get().DetectLanguageOf(text); ok {
			addLangCode(codes, lang.IsoCode639_1().String())
		}
	}

	if len(codes) == 0 {
		return nil
	}
	out := make([]string, 0, len(codes))
	for code := range codes {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// addLangCode normalizes values like "en-US" or "EN" to a bare two-letter
// code before recording them.
func addLangCode(codes map[string]struct{}, raw string) {
	code := strings.ToLower(strings.TrimSpace(raw))
	if idx := strings.IndexAny(code, "-_"); idx > 0 {
		code = code[:idx]
	}
	if len(code) != 2 || code == "x-" {
		return
	}
	for _, r := range code {
		if r < 'a' || r > 'z' {
			return
		}
	}
	codes[code] = struct{}{}
}
