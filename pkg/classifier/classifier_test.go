package classifier

import (
	"testing"

	"leadharvest/models"
)

func TestClassify_AddressBeatsDomain(t *testing.T) {
	c := New()
	rec := &models.LeadRecord{
		Hostname: "chalets.example.de", // domain says Germany
		Contact:  models.Contact{Address: "12 Rue de Rivoli, Paris, France"},
	}

	got := c.Classify(rec)
	if got.Country != "France" {
		t.Errorf("Country = %q, want France from the address", got.Country)
	}
	if got.Confidence != models.ConfidenceHigh {
		t.Errorf("Confidence = %q, want high", got.Confidence)
	}
	if got.Method != models.MethodAddress {
		t.Errorf("Method = %q, want address", got.Method)
	}
	if rec.Country == nil || rec.Country.Country != "France" {
		t.Error("Classify() must attach the result to the record")
	}
}

func TestClassify_CCTLD(t *testing.T) {
	c := New()
	rec := &models.LeadRecord{Hostname: "booking.example.de"}

	got := c.Classify(rec)
	if got.Country != "Germany" {
		t.Errorf("Country = %q, want Germany from .de", got.Country)
	}
	if got.Confidence != models.ConfidenceMedium {
		t.Errorf("Confidence = %q, want medium", got.Confidence)
	}
	if got.Method != models.MethodDomain {
		t.Errorf("Method = %q, want domain", got.Method)
	}
}

func TestClassify_DomainToken(t *testing.T) {
	c := New()
	rec := &models.LeadRecord{Hostname: "france.villas-example.com"}

	got := c.Classify(rec)
	if got.Country != "France" || got.Method != models.MethodDomain {
		t.Errorf("got %+v, want France via domain label", got)
	}
}

func TestClassify_ContentFallback(t *testing.T) {
	c := New()
	rec := &models.LeadRecord{
		Hostname:    "stay.example.com",
		Title:       "Santorini Sunset Suites",
		Description: "Cave houses overlooking the caldera in Santorini, Greece. Greece at its finest.",
	}

	got := c.Classify(rec)
	if got.Country != "Greece" {
		t.Errorf("Country = %q, want Greece from content", got.Country)
	}
	if got.Confidence != models.ConfidenceLow {
		t.Errorf("Confidence = %q, want low", got.Confidence)
	}
	if got.Method != models.MethodContent {
		t.Errorf("Method = %q, want content", got.Method)
	}
}

func TestClassify_ContentPicksMostMentioned(t *testing.T) {
	c := New()
	rec := &models.LeadRecord{
		Hostname:    "stay.example.com",
		Title:       "Villas in Spain",
		Description: "Mallorca and Ibiza villas across Spain. Day trips to France available.",
	}

	got := c.Classify(rec)
	if got.Country != "Spain" {
		t.Errorf("Country = %q, want Spain (3 mentions beat 1)", got.Country)
	}
}

func TestClassify_NoEvidence(t *testing.T) {
	c := New()
	rec := &models.LeadRecord{
		Hostname:    "stay.example.com",
		Title:       "Cozy rooms",
		Description: "Comfortable rooms at fair prices.",
	}

	got := c.Classify(rec)
	if got.Country != models.UnknownCountry {
		t.Errorf("Country = %q, want unknown", got.Country)
	}
	if got.Confidence != models.ConfidenceNone {
		t.Errorf("Confidence = %q, want none", got.Confidence)
	}
	if got.Method != models.MethodNone {
		t.Errorf("Method = %q, want none", got.Method)
	}
}

func TestClassify_EmptyRecord(t *testing.T) {
	c := New()
	rec := &models.LeadRecord{Hostname: "stay.example.com"}

	got := c.Classify(rec)
	if got.Country != models.UnknownCountry || got.Confidence != models.ConfidenceNone {
		t.Errorf("empty record should classify as unknown/none, got %+v", got)
	}
}

func TestClassify_ConfidenceNoneOnlyForUnknown(t *testing.T) {
	c := New()
	records := []*models.LeadRecord{
		{Hostname: "a.example.de"},
		{Hostname: "b.example.com", Contact: models.Contact{Address: "Main Street 1, Berlin, Germany"}},
		{Hostname: "c.example.com", Title: "Tuscany farm stays in Italy"},
		{Hostname: "d.example.com"},
	}

	for _, rec := range records {
		got := c.Classify(rec)
		unknown := got.Country == models.UnknownCountry
		none := got.Confidence == models.ConfidenceNone
		if unknown != none {
			t.Errorf("%s: country %q with confidence %q violates unknown<=>none", rec.Hostname, got.Country, got.Confidence)
		}
	}
}
