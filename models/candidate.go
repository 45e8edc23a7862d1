package models

// DiscoverySource tags which strategy produced a candidate hostname.
type DiscoverySource string

const (
	SourceCertTransparency DiscoverySource = "cert-transparency"
	SourcePattern          DiscoverySource = "pattern"
	SourcePropertyThemed   DiscoverySource = "property-themed"
)

// CandidateHost is a hostname not yet confirmed reachable. Candidates are
// unique by normalized hostname across all sources; the first source to
// produce a name wins the tag.
type CandidateHost struct {
	Hostname string          `json:"hostname" yaml:"hostname"`
	Source   DiscoverySource `json:"source" yaml:"source"`
}

// URL returns the https URL used to probe the candidate.
func (c CandidateHost) URL() string {
	return "https://" + c.Hostname
}
