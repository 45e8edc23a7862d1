package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"leadharvest/models"
)

// DefaultCrtShURL is the public certificate-transparency search endpoint.
const DefaultCrtShURL = "https://crt.sh"

// crtShTimeout bounds the single CT query; the endpoint is slow under load.
const crtShTimeout = 30 * time.Second

// maxCertEntries caps how many certificate entries are processed per query.
const maxCertEntries = 500

// excludedPrefixes are infrastructure subdomains that certificate logs are
// full of but that never lead anywhere useful. The wordlist sources are not
// filtered by this set.
var excludedPrefixes = map[string]struct{}{
	"www": {}, "api": {}, "app": {}, "admin": {}, "blog": {}, "help": {},
	"support": {}, "docs": {}, "cdn": {}, "assets": {}, "static": {},
	"mail": {}, "ftp": {}, "dev": {}, "test": {}, "staging": {},
	"portal": {}, "dashboard": {}, "auth": {}, "login": {}, "billing": {},
	"payments": {}, "feedback": {}, "roadmap": {}, "status": {},
	"updates": {}, "academy": {}, "platform": {},
}

type crtShEntry struct {
	NameValue string `json:"name_value"`
}

// CertTransparencySource queries a certificate-transparency log search
// service for all names ever certified under the root domain.
type CertTransparencySource struct {
	client  *http.Client
	baseURL string
	logger  *slog.Logger
}

func NewCertTransparencySource(logger *slog.Logger, baseURL string) *CertTransparencySource {
	if baseURL == "" {
		baseURL = DefaultCrtShURL
	}
	return &CertTransparencySource{
		client:  &http.Client{Timeout: crtShTimeout},
		baseURL: baseURL,
		logger:  logger,
	}
}

func (s *CertTransparencySource) Name() models.DiscoverySource {
	return models.SourceCertTransparency
}

// Candidates returns subject-alternative names found in the CT logs. Any
// endpoint failure yields an empty slice; discovery continues with the
// remaining sources.
func (s *CertTransparencySource) Candidates(ctx context.Context, rootDomain string) []string {
	endpoint := fmt.Sprintf("%s/?q=%s&output=json", s.baseURL, url.QueryEscape("%."+rootDomain))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		s.logger.Warn("Certificate transparency request build failed", "error", err)
		return nil
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("Certificate transparency lookup failed", "domain", rootDomain, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("Certificate transparency lookup returned non-200", "domain", rootDomain, "status", resp.StatusCode)
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logger.Warn("Certificate transparency read failed", "domain", rootDomain, "error", err)
		return nil
	}

	var entries []crtShEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		s.logger.Warn("Certificate transparency returned malformed JSON", "domain", rootDomain, "error", err)
		return nil
	}
	if len(entries) > maxCertEntries {
		entries = entries[:maxCertEntries]
	}

	var names []string
	for _, entry := range entries {
		// A single certificate entry may carry several SANs separated by newlines.
		for _, name := range strings.Split(entry.NameValue, "\n") {
			name = strings.ToLower(strings.TrimSpace(name))
			name = strings.TrimPrefix(name, "*.")
			if name == "" || !strings.HasSuffix(name, "."+rootDomain) {
				continue
			}
			if isExcludedPrefix(name) {
				continue
			}
			names = append(names, name)
		}
	}
	return names
}

// isExcludedPrefix reports whether the leftmost label is a known
// infrastructure prefix, or implausibly short/long for a customer name.
func isExcludedPrefix(hostname string) bool {
	label := strings.SplitN(hostname, ".", 2)[0]
	if _, excluded := excludedPrefixes[label]; excluded {
		return true
	}
	return len(label) < 3 || len(label) > 50
}
