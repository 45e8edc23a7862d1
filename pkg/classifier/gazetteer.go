package classifier

// countryEntry pairs a country with the keywords (country names, major
// cities, regions) that indicate it in free text. Order matters: entries are
// checked top to bottom and the first hit wins, so more specific markets come
// before catch-alls.
type countryEntry struct {
	Country  string
	Keywords []string
}

var countryGazetteer = []countryEntry{
	{"United States", []string{"usa", "united states", "america", "california", "florida", "texas", "new york", "hawaii", "colorado"}},
	{"United Kingdom", []string{"united kingdom", "england", "scotland", "wales", "london", "manchester", "edinburgh", "cornwall"}},
	{"Canada", []string{"canada", "toronto", "vancouver", "montreal", "quebec", "ontario"}},
	{"Spain", []string{"spain", "españa", "madrid", "barcelona", "valencia", "mallorca", "ibiza", "tenerife"}},
	{"France", []string{"france", "paris", "lyon", "marseille", "nice", "provence", "normandy"}},
	{"Italy", []string{"italy", "italia", "rome", "milan", "florence", "venice", "tuscany", "sicily"}},
	{"Germany", []string{"germany", "deutschland", "berlin", "munich", "hamburg", "bavaria"}},
	{"Australia", []string{"australia", "sydney", "melbourne", "brisbane", "perth", "queensland"}},
	{"Netherlands", []string{"netherlands", "holland", "amsterdam", "rotterdam", "utrecht"}},
	{"Portugal", []string{"portugal", "lisbon", "porto", "algarve", "madeira"}},
	{"Greece", []string{"greece", "athens", "santorini", "mykonos", "crete", "rhodes"}},
	{"Mexico", []string{"mexico", "cancun", "tulum", "playa del carmen", "cabo"}},
}

// ccTLDCountries maps country-code top-level domains to country names.
var ccTLDCountries = map[string]string{
	"us": "United States",
	"uk": "United Kingdom",
	"ca": "Canada",
	"es": "Spain",
	"fr": "France",
	"it": "Italy",
	"de": "Germany",
	"au": "Australia",
	"nl": "Netherlands",
	"pt": "Portugal",
	"gr": "Greece",
	"mx": "Mexico",
	"ch": "Switzerland",
	"at": "Austria",
	"be": "Belgium",
	"ie": "Ireland",
	"nz": "New Zealand",
}

// domainTokens are country indicators that appear as whole hostname labels,
// e.g. "france.villas-example.com".
var domainTokens = map[string]string{
	"usa":       "United States",
	"uk":        "United Kingdom",
	"canada":    "Canada",
	"spain":     "Spain",
	"espana":    "Spain",
	"france":    "France",
	"italy":     "Italy",
	"italia":    "Italy",
	"germany":   "Germany",
	"australia": "Australia",
	"holland":   "Netherlands",
	"portugal":  "Portugal",
	"greece":    "Greece",
	"mexico":    "Mexico",
}
