package weather

import (
	"strings"

	"github.com/terraincognita07/tripplanner/internal/models"
)

type region struct {
	Name       string
	Keywords   []string
	BestMonths string
	Summary    string
	// Typical daytime temperature in °C used for synthetic data.
	BaseTempC float64
	Humid     bool
}

var regions = []region{
	{
		Name:       "Southeast Asia",
		Keywords:   []string{"thailand", "bangkok", "phuket", "vietnam", "hanoi", "bali", "indonesia", "singapore", "malaysia", "philippines", "cambodia", "laos"},
		BestMonths: "November to March",
		Summary:    "Dry season runs roughly November to March; expect heavy monsoon rain from June to October.",
		BaseTempC:  30,
		Humid:      true,
	},
	{
		Name:       "South Asia",
		Keywords:   []string{"india", "delhi", "mumbai", "goa", "jaipur", "kerala", "agra", "nepal", "kathmandu", "sri lanka", "maldives", "bangladesh"},
		BestMonths: "October to March",
		Summary:    "Winter months are pleasant across the plains; summer is very hot and the monsoon arrives in June.",
		BaseTempC:  28,
		Humid:      true,
	},
	{
		Name:       "East Asia",
		Keywords:   []string{"japan", "tokyo", "kyoto", "osaka", "korea", "seoul", "china", "beijing", "shanghai", "hong kong", "taiwan", "taipei"},
		BestMonths: "March to May, October to November",
		Summary:    "Spring blossoms and autumn colours bring mild weather; summers are humid and winters cold in the north.",
		BaseTempC:  18,
	},
	{
		Name:       "Middle East",
		Keywords:   []string{"dubai", "abu dhabi", "qatar", "doha", "oman", "jordan", "petra", "saudi", "israel", "egypt", "cairo"},
		BestMonths: "November to March",
		Summary:    "Winters are warm and dry; summer temperatures regularly exceed 40°C.",
		BaseTempC:  32,
	},
	{
		Name:       "Mediterranean Europe",
		Keywords:   []string{"italy", "rome", "florence", "venice", "spain", "barcelona", "madrid", "greece", "athens", "santorini", "portugal", "lisbon", "porto", "croatia", "malta", "nice"},
		BestMonths: "April to June, September to October",
		Summary:    "Hot dry summers and mild wet winters; shoulder seasons avoid the crowds and the heat.",
		BaseTempC:  22,
	},
	{
		Name:       "Northern Europe",
		Keywords:   []string{"london", "england", "scotland", "ireland", "paris", "france", "berlin", "germany", "amsterdam", "netherlands", "prague", "vienna", "copenhagen", "stockholm", "oslo", "iceland", "switzerland", "zurich"},
		BestMonths: "May to September",
		Summary:    "Long daylight and mild temperatures in summer; winters are short, cold and often grey.",
		BaseTempC:  15,
	},
	{
		Name:       "North America",
		Keywords:   []string{"new york", "usa", "united states", "california", "san francisco", "los angeles", "chicago", "canada", "toronto", "vancouver", "montreal", "mexico", "cancun"},
		BestMonths: "April to June, September to October",
		Summary:    "Climate varies widely by latitude; spring and autumn are comfortable almost everywhere.",
		BaseTempC:  18,
	},
	{
		Name:       "South America",
		Keywords:   []string{"peru", "lima", "cusco", "brazil", "rio", "argentina", "buenos aires", "chile", "santiago", "colombia", "bogota", "patagonia"},
		BestMonths: "May to September for the Andes, December to March for the south",
		Summary:    "Seasons are reversed south of the equator; the Andes are driest in the southern winter.",
		BaseTempC:  20,
	},
	{
		Name:       "Africa",
		Keywords:   []string{"kenya", "nairobi", "tanzania", "zanzibar", "south africa", "cape town", "morocco", "marrakech", "namibia", "botswana", "uganda"},
		BestMonths: "June to October",
		Summary:    "The dry season suits safaris; coastal North Africa is best in spring and autumn.",
		BaseTempC:  26,
	},
	{
		Name:       "Oceania",
		Keywords:   []string{"australia", "sydney", "melbourne", "new zealand", "auckland", "queenstown", "fiji", "tahiti"},
		BestMonths: "September to November, March to May",
		Summary:    "Southern hemisphere seasons; the tropical north has a wet season from November to April.",
		BaseTempC:  21,
	},
}

var defaultRegion = region{
	Name:       "General",
	BestMonths: "Spring or autumn",
	Summary:    "Shoulder seasons usually balance pleasant weather with smaller crowds.",
	BaseTempC:  20,
}

func matchRegion(destination string) region {
	normalized := strings.ToLower(strings.TrimSpace(destination))
	for _, candidate := range regions {
		for _, keyword := range candidate.Keywords {
			if strings.Contains(normalized, keyword) {
				return candidate
			}
		}
	}
	return defaultRegion
}

// SeasonalGuidanceFor returns the seasonal advice for the region a destination belongs to.
func SeasonalGuidanceFor(destination string) models.SeasonalGuidance {
	matched := matchRegion(destination)
	return models.SeasonalGuidance{
		Region:     matched.Name,
		BestMonths: matched.BestMonths,
		Summary:    matched.Summary,
	}
}
