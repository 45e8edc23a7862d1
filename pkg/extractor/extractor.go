// Package extractor turns a fetched HTML payload into a LeadRecord. It is a
// pure function of the document; no network access happens here.
package extractor

import (
	"bufio"
	"bytes"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"leadharvest/internal/common"
	"leadharvest/models"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 400
	maxAddressLen     = 400
	maxPropertyLinks  = 15
	maxInfoPages      = 5
)

var (
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	phoneRes = []*regexp.Regexp{
		regexp.MustCompile(`(\+\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
		regexp.MustCompile(`\+\d{1,3}[-.\s]?\d{2,4}[-.\s]?\d{3,4}[-.\s]?\d{3,4}`),
		regexp.MustCompile(`\d{3}[-.\s]\d{3}[-.\s]\d{4}`),
	}

	streetAddressRe = regexp.MustCompile(`(?i)\d+[^,\n]*(?:street|st|avenue|ave|road|rd|boulevard|blvd|lane|ln|drive|dr)[^,\n]*(?:,\s*[^,\n]+){1,4}`)
	poBoxRe         = regexp.MustCompile(`(?i)p\.?o\.?\s*box\s*\d+[^,\n]*(?:,\s*[^,\n]+){1,3}`)

	propertyCountRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\s*(?:properties|rooms|units|accommodations|cabins|villas)`),
		regexp.MustCompile(`(?i)(\d+)\s*(?:bedroom|bath|guest)`),
		regexp.MustCompile(`(?i)sleeps?\s*(?:up\s*to\s*)?(\d+)`),
	}

	digitRe = regexp.MustCompile(`\d`)
)

// spamEmailMarkers filters placeholder and automated sender addresses.
var spamEmailMarkers = []string{"example", "test", "noreply", "donotreply", "no-reply"}

// socialPlatforms maps a Social field setter to the link hosts it accepts.
var socialPlatforms = []struct {
	set     func(*models.Social, string)
	domains []string
}{
	{func(s *models.Social, v string) { s.Facebook = v }, []string{"facebook.com", "fb.com"}},
	{func(s *models.Social, v string) { s.Twitter = v }, []string{"twitter.com", "x.com"}},
	{func(s *models.Social, v string) { s.Instagram = v }, []string{"instagram.com"}},
	{func(s *models.Social, v string) { s.LinkedIn = v }, []string{"linkedin.com"}},
}

// propertyLinkKeywords mark hrefs pointing at individual property pages.
var propertyLinkKeywords = []string{
	"property", "room", "unit", "booking", "reserve",
	"accommodation", "rental", "villa", "cabin", "suite",
}

var bookingKeywords = []string{
	"book now", "reserve", "availability", "check-in", "check-out",
	"booking", "reservation", "book online", "check availability",
	"instant book",
}

type Extractor struct {
	langs *languageDetector
}

func NewExtractor() *Extractor {
	return &Extractor{langs: newLanguageDetector()}
}

// Extract builds a LeadRecord from the payload fetched for hostname. Every
// field is independently optional; a payload goquery cannot parse yields a
// sparse record with Reachable still true, since the fetch itself succeeded.
func (e *Extractor) Extract(hostname string, payload []byte) *models.LeadRecord {
	rec := &models.LeadRecord{
		Hostname:  hostname,
		URL:       "https://" + hostname,
		Reachable: true,
		ScrapedAt: time.Now().UTC(),
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(payload))
	if err != nil {
		return rec
	}
	doc.Find("script,style,noscript").Remove()
	text := normalizeText(doc.Text())

	rec.Title = common.Truncate(normalizeText(doc.Find("title").First().Text()), maxTitleLen)
	rec.Description = extractDescription(doc)
	rec.Contact.Email = extractEmail(doc, text)
	rec.Contact.Phone = extractPhone(doc, text)
	rec.Contact.Address = extractAddress(doc, text)
	rec.Social = ExtractSocial(doc)
	rec.PropertyLinks = extractPropertyLinks(doc, hostname)
	rec.HasContactForm = hasContactForm(doc)
	rec.HasBookingEngine = hasBookingEngine(text)
	rec.PropertyCount = extractPropertyCount(doc, text, rec)
	rec.Languages = e.langs.detect(doc, rec.Title+" "+rec.Description)
	rec.InfoPages = extractInfoPages(doc, hostname)

	return rec
}

// normalizeText collapses whitespace, joining non-empty lines with single
// spaces.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}

func extractDescription(doc *goquery.Document) string {
	if content, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		if desc := strings.TrimSpace(content); len(desc) > 20 {
			return common.Truncate(desc, maxDescriptionLen)
		}
	}
	if content, ok := doc.Find(`meta[property="og:description"]`).First().Attr("content"); ok {
		if desc := strings.TrimSpace(content); len(desc) > 20 {
			return common.Truncate(desc, maxDescriptionLen)
		}
	}

	// First substantial paragraph, skipping cookie notices.
	var desc string
	doc.Find("p").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= 5 {
			return false
		}
		text := normalizeText(s.Text())
		if len(text) > 50 && !strings.Contains(strings.ToLower(text), "cookie") {
			desc = common.Truncate(text, maxDescriptionLen)
			return false
		}
		return true
	})
	return desc
}

func extractEmail(doc *goquery.Document, text string) string {
	var email string
	doc.Find(`a[href^="mailto:"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		addr := strings.TrimPrefix(href, "mailto:")
		if idx := strings.IndexByte(addr, '?'); idx >= 0 {
			addr = addr[:idx]
		}
		if isUsableEmail(addr) {
			email = addr
			return false
		}
		return true
	})
	if email != "" {
		return email
	}

	for _, match := range emailRe.FindAllString(text, 10) {
		if isUsableEmail(match) {
			return match
		}
	}
	return ""
}

func isUsableEmail(addr string) bool {
	addr = strings.TrimSpace(addr)
	if !emailRe.MatchString(addr) {
		return false
	}
	lower := strings.ToLower(addr)
	for _, marker := range spamEmailMarkers {
		if strings.Contains(lower, marker) {
			return false
		}
	}
	return true
}

func extractPhone(doc *goquery.Document, text string) string {
	if href, ok := doc.Find(`a[href^="tel:"]`).First().Attr("href"); ok {
		phone := strings.TrimSpace(strings.TrimPrefix(href, "tel:"))
		if isUsablePhone(phone) {
			return phone
		}
	}

	for _, re := range phoneRes {
		for _, match := range re.FindAllString(text, 5) {
			if isUsablePhone(match) {
				return strings.TrimSpace(match)
			}
		}
	}
	return ""
}

func isUsablePhone(phone string) bool {
	digits := len(digitRe.FindAllString(phone, -1))
	return digits >= 7 && digits <= 15
}

func extractAddress(doc *goquery.Document, text string) string {
	selectors := []string{
		`[itemtype*="PostalAddress"]`,
		".address", ".location", ".contact-address",
		`[class*="address"]`, `[class*="location"]`,
	}
	for _, sel := range selectors {
		if node := doc.Find(sel).First(); node.Length() > 0 {
			addr := normalizeText(node.Text())
			if len(addr) > 15 {
				return common.Truncate(addr, maxAddressLen)
			}
		}
	}

	for _, re := range []*regexp.Regexp{streetAddressRe, poBoxRe} {
		if match := re.FindString(text); len(strings.TrimSpace(match)) > 15 {
			return common.Truncate(strings.TrimSpace(match), maxAddressLen)
		}
	}
	return ""
}

// ExtractSocial collects the first outbound link per known platform,
// skipping login/signup pages. Exported because the enrichment pass reuses
// it on the about page.
func ExtractSocial(doc *goquery.Document) models.Social {
	var social models.Social
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		lower := strings.ToLower(href)
		if strings.Contains(lower, "/login") || strings.Contains(lower, "/signup") || strings.Contains(lower, "/share") {
			return
		}
		host := linkHost(lower)
		if host == "" {
			return
		}
		for _, platform := range socialPlatforms {
			for _, domain := range platform.domains {
				if host == domain || strings.HasSuffix(host, "."+domain) {
					platform.set(&social, href)
				}
			}
		}
	})
	return social
}

func linkHost(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(u.Host, "www.")
}

func extractPropertyLinks(doc *goquery.Document, hostname string) []string {
	seen := make(map[string]struct{})
	var links []string
	base := &url.URL{Scheme: "https", Host: hostname}

	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		lower := strings.ToLower(href)
		matched := false
		for _, keyword := range propertyLinkKeywords {
			if strings.Contains(lower, keyword) {
				matched = true
				break
			}
		}
		if !matched {
			return true
		}

		ref, err := url.Parse(href)
		if err != nil {
			return true
		}
		abs := base.ResolveReference(ref)
		if abs.Host != hostname || abs.Path == "" || abs.Path == "/" {
			return true
		}
		full := abs.String()
		if _, dup := seen[full]; dup {
			return true
		}
		seen[full] = struct{}{}
		links = append(links, full)
		return len(links) < maxPropertyLinks
	})
	return links
}

// extractPropertyCount tries progressively weaker signals: listing-card
// style elements, numeric text patterns, then distinct property links, then
// the mere presence of a booking engine.
func extractPropertyCount(doc *goquery.Document, text string, rec *models.LeadRecord) int {
	selectors := []string{
		`[class*="property"]`, `[class*="room"]`, `[class*="unit"]`,
		`[class*="accommodation"]`, "[data-property]", "[data-room]",
		".booking-item", ".rental-item", ".listing-card",
	}
	for _, sel := range selectors {
		count := 0
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if len(normalizeText(s.Text())) > 10 {
				count++
			}
		})
		if count > 0 {
			return count
		}
	}

	for _, re := range propertyCountRes {
		if match := re.FindStringSubmatch(text); len(match) > 1 {
			if n, err := strconv.Atoi(match[1]); err == nil && n >= 1 && n <= 100 {
				return n
			}
		}
	}

	if len(rec.PropertyLinks) > 0 {
		return len(rec.PropertyLinks)
	}
	if rec.HasBookingEngine {
		return 1
	}
	return 0
}

// hasContactForm requires a form carrying both an email-type input and a
// message-type input.
func hasContactForm(doc *goquery.Document) bool {
	found := false
	doc.Find("form").EachWithBreak(func(_ int, form *goquery.Selection) bool {
		hasEmail := form.Find(`input[type="email"]`).Length() > 0 ||
			form.Find(`input[name*="email"],input[id*="email"]`).Length() > 0
		hasMessage := form.Find("textarea").Length() > 0 ||
			form.Find(`input[name*="message"]`).Length() > 0
		if hasEmail && hasMessage {
			found = true
			return false
		}
		return true
	})
	return found
}

func hasBookingEngine(text string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range bookingKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// extractInfoPages collects about/contact style links on the same host,
// used later as enrichment targets.
func extractInfoPages(doc *goquery.Document, hostname string) []string {
	seen := make(map[string]struct{})
	var pages []string
	base := &url.URL{Scheme: "https", Host: hostname}

	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		lower := strings.ToLower(href + " " + s.Text())
		if strings.HasPrefix(strings.ToLower(href), "mailto:") || strings.HasPrefix(strings.ToLower(href), "tel:") {
			return true
		}
		if !strings.Contains(lower, "about") && !strings.Contains(lower, "contact") {
			return true
		}

		ref, err := url.Parse(href)
		if err != nil {
			return true
		}
		abs := base.ResolveReference(ref)
		if abs.Host != hostname || abs.Path == "" || abs.Path == "/" {
			return true
		}
		full := abs.String()
		if _, dup := seen[full]; dup {
			return true
		}
		seen[full] = struct{}{}
		pages = append(pages, full)
		return len(pages) < maxInfoPages
	})
	return pages
}
