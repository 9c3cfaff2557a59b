package newsapi

// Country is a country the top-headlines endpoint accepts.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// DefaultCountry is selected when nothing else is configured.
const DefaultCountry = "in"

// Countries lists the supported country codes in display order.
var Countries = []Country{
	{Code: "in", Name: "India"},
	{Code: "us", Name: "United States"},
	{Code: "gb", Name: "United Kingdom"},
	{Code: "au", Name: "Australia"},
	{Code: "ca", Name: "Canada"},
	{Code: "de", Name: "Germany"},
	{Code: "fr", Name: "France"},
	{Code: "it", Name: "Italy"},
	{Code: "jp", Name: "Japan"},
	{Code: "sg", Name: "Singapore"},
}

// Categories lists the supported categories. An empty category means no
// category filter.
var Categories = []string{
	"business",
	"entertainment",
	"general",
	"health",
	"science",
	"sports",
	"technology",
}

// IsCountry reports whether code is a supported country code.
func IsCountry(code string) bool {
	for _, c := range Countries {
		if c.Code == code {
			return true
		}
	}
	return false
}

// IsCategory reports whether value is empty or a supported category.
func IsCategory(value string) bool {
	if value == "" {
		return true
	}
	for _, c := range Categories {
		if c == value {
			return true
		}
	}
	return false
}

// CountryName returns the display name for code, or code itself when it is
// not in the catalog.
func CountryName(code string) string {
	for _, c := range Countries {
		if c.Code == code {
			return c.Name
		}
	}
	return code
}
