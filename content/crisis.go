package content

// CrisisResource is one helpline or support service entry.
type CrisisResource struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Text  string `json:"text"`
	Link  string `json:"link"`
}

// CrisisDirectory is the lookup result for one country.
type CrisisDirectory struct {
	Country   string           `json:"country"`
	Resources []CrisisResource `json:"resources"`
}

const internationalKey = "International"

var crisisResources = map[string][]CrisisResource{
	"US": {
		{Name: "National Suicide Prevention Lifeline", Phone: "988", Text: "Text HOME to 741741", Link: "https://suicidepreventionlifeline.org/"},
		{Name: "Crisis Text Line", Phone: "N/A", Text: "Text HOME to 741741", Link: "https://www.crisistextline.org/"},
		{Name: "NAMI Helpline", Phone: "1-800-950-NAMI (6264)", Text: "N/A", Link: "https://www.nami.org/help"},
	},
	"UK": {
		{Name: "Samaritans", Phone: "116 123", Text: "N/A", Link: "https://www.samaritans.org/"},
		{Name: "Befrienders", Phone: "03 7953 9393", Text: "N/A", Link: "https://www.befrienders.org.uk/"},
		{Name: "MIND", Phone: "0300 123 3393", Text: "N/A", Link: "https://www.mind.org.uk/"},
	},
	"CA": {
		{Name: "Canada Suicide Prevention Service", Phone: "1-833-456-4566", Text: "Text 45645", Link: "https://www.canada.ca/en/public-health/services/suicide-prevention.html"},
		{Name: "Talk Suicide Canada", Phone: "1-833-456-4566", Text: "N/A", Link: "https://talksuicide.ca/"},
	},
	"AU": {
		{Name: "Lifeline Australia", Phone: "13 11 14", Text: "N/A", Link: "https://www.lifeline.org.au/"},
		{Name: "Beyond Blue", Phone: "1300 22 4636", Text: "N/A", Link: "https://www.beyondblue.org.au/"},
	},
	internationalKey: {
		{Name: "International Association for Suicide Prevention", Phone: "N/A", Text: "N/A", Link: "https://www.iasp.info/resources/Crisis_Centres/"},
		{Name: "Find help by country", Phone: "N/A", Text: "N/A", Link: "https://findahelpline.com/"},
		{Name: "Find local resources", Phone: "N/A", Text: "N/A", Link: "https://www.befrienders.org/"},
	},
}

// CrisisResourcesFor returns the directory for a country code, falling
// back to the international list for unknown countries. The requested
// country code is echoed back unchanged.
func CrisisResourcesFor(country string) CrisisDirectory {
	resources, ok := crisisResources[country]
	if !ok {
		resources = crisisResources[internationalKey]
	}
	return CrisisDirectory{Country: country, Resources: resources}
}
