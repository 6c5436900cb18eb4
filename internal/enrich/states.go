package enrich

// usStates maps 2-letter codes to full state names (plus DC).
var usStates = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut",
	"DE": "Delaware", "FL": "Florida", "GA": "Georgia", "HI": "Hawaii",
	"ID": "Idaho", "IL": "Illinois", "IN": "Indiana", "IA": "Iowa",
	"KS": "Kansas", "KY": "Kentucky", "LA": "Louisiana", "ME": "Maine",
	"MD": "Maryland", "MA": "Massachusetts", "MI": "Michigan",
	"MN": "Minnesota", "MS": "Mississippi", "MO": "Missouri",
	"MT": "Montana", "NE": "Nebraska", "NV": "Nevada",
	"NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico",
	"NY": "New York", "NC": "North Carolina", "ND": "North Dakota",
	"OH": "Ohio", "OK": "Oklahoma", "OR": "Oregon", "PA": "Pennsylvania",
	"RI": "Rhode Island", "SC": "South Carolina", "SD": "South Dakota",
	"TN": "Tennessee", "TX": "Texas", "UT": "Utah", "VT": "Vermont",
	"VA": "Virginia", "WA": "Washington", "WV": "West Virginia",
	"WI": "Wisconsin", "WY": "Wyoming", "DC": "District of Columbia",
}

// stateNameToCode is the reverse lookup, keyed lowercase.
var stateNameToCode = func() map[string]string {
	m := make(map[string]string, len(usStates))
	for code, name := range usStates {
		m[lower(name)] = code
	}
	return m
}()

// stateNamesByLength lists lowercase state names longest-first so that
// "west virginia" resolves to WV, not VA, and the scan order is stable
// across runs.
var stateNamesByLength = func() []string {
	names := make([]string, 0, len(stateNameToCode))
	for name := range stateNameToCode {
		names = append(names, name)
	}
	sortNames(names)
	return names
}()

var remoteKeywords = []string{
	"remote", "work from home", "wfh", "anywhere", "distributed",
	"virtual",
}

var multiLocationKeywords = []string{
	"multiple locations", "various locations", "flexible location",
}

// nonUSSignals are country/region/city tokens that mark a posting as
// explicitly outside the US. Checked only after the US rules failed, so
// "Paris, TX" is accepted by the state-code rule before "paris" is seen.
var nonUSSignals = []string{
	"united kingdom", "uk", "england", "scotland", "london",
	"canada", "toronto", "vancouver", "montreal", "ontario",
	"germany", "berlin", "munich",
	"france", "paris",
	"netherlands", "amsterdam",
	"ireland", "dublin",
	"spain", "madrid", "barcelona",
	"poland", "warsaw", "krakow",
	"india", "bangalore", "bengaluru", "hyderabad", "mumbai", "pune",
	"australia", "sydney", "melbourne",
	"singapore",
	"japan", "tokyo",
	"israel", "tel aviv",
	"brazil", "sao paulo",
	"mexico", "mexico city",
	"emea", "apac", "latam", "europe", "worldwide", "global",
}

// usMetros maps "city|ST" to its Metropolitan Statistical Area. Best-effort
// coverage of the large metros; missing entries are fine.
var usMetros = map[string]string{
	"san francisco|CA":  "San Francisco-Oakland-Hayward, CA",
	"oakland|CA":        "San Francisco-Oakland-Hayward, CA",
	"san jose|CA":       "San Jose-Sunnyvale-Santa Clara, CA",
	"los angeles|CA":    "Los Angeles-Long Beach-Anaheim, CA",
	"san diego|CA":      "San Diego-Carlsbad, CA",
	"new york|NY":       "New York-Newark-Jersey City, NY-NJ-PA",
	"brooklyn|NY":       "New York-Newark-Jersey City, NY-NJ-PA",
	"jersey city|NJ":    "New York-Newark-Jersey City, NY-NJ-PA",
	"chicago|IL":        "Chicago-Naperville-Elgin, IL-IN-WI",
	"dallas|TX":         "Dallas-Fort Worth-Arlington, TX",
	"fort worth|TX":     "Dallas-Fort Worth-Arlington, TX",
	"austin|TX":         "Austin-Round Rock, TX",
	"houston|TX":        "Houston-The Woodlands-Sugar Land, TX",
	"seattle|WA":        "Seattle-Tacoma-Bellevue, WA",
	"boston|MA":         "Boston-Cambridge-Newton, MA-NH",
	"cambridge|MA":      "Boston-Cambridge-Newton, MA-NH",
	"washington|DC":     "Washington-Arlington-Alexandria, DC-VA-MD-WV",
	"arlington|VA":      "Washington-Arlington-Alexandria, DC-VA-MD-WV",
	"atlanta|GA":        "Atlanta-Sandy Springs-Roswell, GA",
	"denver|CO":         "Denver-Aurora-Lakewood, CO",
	"boulder|CO":        "Boulder, CO",
	"miami|FL":          "Miami-Fort Lauderdale-West Palm Beach, FL",
	"phoenix|AZ":        "Phoenix-Mesa-Scottsdale, AZ",
	"philadelphia|PA":   "Philadelphia-Camden-Wilmington, PA-NJ-DE-MD",
	"minneapolis|MN":    "Minneapolis-St. Paul-Bloomington, MN-WI",
	"portland|OR":       "Portland-Vancouver-Hillsboro, OR-WA",
	"salt lake city|UT": "Salt Lake City, UT",
	"raleigh|NC":        "Raleigh, NC",
	"charlotte|NC":      "Charlotte-Concord-Gastonia, NC-SC",
	"nashville|TN":      "Nashville-Davidson-Murfreesboro-Franklin, TN",
	"pittsburgh|PA":     "Pittsburgh, PA",
	"detroit|MI":        "Detroit-Warren-Dearborn, MI",
	"st. louis|MO":      "St. Louis, MO-IL",
	"columbus|OH":       "Columbus, OH",
}
