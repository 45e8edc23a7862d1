package models

import "time"

// Contact holds contact details pulled from a page. Empty string means the
// signal was not found.
type Contact struct {
	Email   string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone   string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Address string `json:"address,omitempty" yaml:"address,omitempty"`
}

// Social holds links to known social platforms.
type Social struct {
	Facebook  string `json:"facebook,omitempty" yaml:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty" yaml:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty" yaml:"instagram,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty" yaml:"linkedin,omitempty"`
}

// Any reports whether at least one social profile was found.
func (s Social) Any() bool {
	return s.Facebook != "" || s.Twitter != "" || s.Instagram != "" || s.LinkedIn != ""
}

// Merge copies fields from other into s where s has none. Used by the
// enrichment stage; first-pass values are never overwritten.
func (s *Social) Merge(other Social) {
	if s.Facebook == "" {
		s.Facebook = other.Facebook
	}
	if s.Twitter == "" {
		s.Twitter = other.Twitter
	}
	if s.Instagram == "" {
		s.Instagram = other.Instagram
	}
	if s.LinkedIn == "" {
		s.LinkedIn = other.LinkedIn
	}
}

// LeadRecord is the structured result of extracting business signals from one
// reachable host. It is created by the extractor, annotated in place by the
// scorer and classifier, and optionally promoted to an EnrichedRecord.
type LeadRecord struct {
	Hostname    string `json:"hostname" yaml:"hostname"`
	URL         string `json:"url" yaml:"url"`
	Reachable   bool   `json:"reachable" yaml:"reachable"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	PropertyCount int      `json:"property_count" yaml:"property_count"`
	PropertyLinks []string `json:"property_links,omitempty" yaml:"property_links,omitempty"`

	Contact          Contact  `json:"contact" yaml:"contact"`
	Social           Social   `json:"social" yaml:"social"`
	HasContactForm   bool     `json:"has_contact_form" yaml:"has_contact_form"`
	HasBookingEngine bool     `json:"has_booking_engine" yaml:"has_booking_engine"`
	Languages        []string `json:"languages,omitempty" yaml:"languages,omitempty"`

	// InfoPages are about/contact style links found on the first pass,
	// used as enrichment targets.
	InfoPages []string `json:"-" yaml:"-"`

	Score     *ScoreResult           `json:"score,omitempty" yaml:"score,omitempty"`
	Country   *CountryClassification `json:"country,omitempty" yaml:"country,omitempty"`
	ScrapedAt time.Time              `json:"scraped_at" yaml:"scraped_at"`
}

// Grade is the letter grade derived from a lead quality score.
type Grade string

const (
	GradeD     Grade = "D"
	GradeC     Grade = "C"
	GradeB     Grade = "B"
	GradeBPlus Grade = "B+"
	GradeA     Grade = "A"
	GradeAPlus Grade = "A+"
)

// ScoreResult is a deterministic quality score in [0,100] with its grade.
type ScoreResult struct {
	Score int   `json:"score" yaml:"score"`
	Grade Grade `json:"grade" yaml:"grade"`
}

// Confidence ranks how trustworthy a geographic inference is.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
	ConfidenceNone   Confidence = "none"
)

// ClassificationMethod names the evidence source that produced a country.
type ClassificationMethod string

const (
	MethodAddress ClassificationMethod = "address"
	MethodDomain  ClassificationMethod = "domain"
	MethodContent ClassificationMethod = "content"
	MethodNone    ClassificationMethod = "none"
)

// UnknownCountry is the country value when no method matched.
const UnknownCountry = "unknown"

// CountryClassification is the geographic inference for one record.
// Confidence is none if and only if Country is unknown.
type CountryClassification struct {
	Country    string               `json:"country" yaml:"country"`
	Confidence Confidence           `json:"confidence" yaml:"confidence"`
	Method     ClassificationMethod `json:"method" yaml:"method"`
}

// EnrichedRecord is a LeadRecord plus fields gathered on the second pass.
// Only the top-N scored records are promoted. Lead points at the pipeline's
// record; social links found during enrichment are merged into it.
type EnrichedRecord struct {
	Lead *LeadRecord `json:"lead" yaml:"lead"`

	CompanyName  string `json:"company_name,omitempty" yaml:"company_name,omitempty"`
	PersonalName string `json:"personal_name,omitempty" yaml:"personal_name,omitempty"`
	BusinessType string `json:"business_type,omitempty" yaml:"business_type,omitempty"`
}
