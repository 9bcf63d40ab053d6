package keywords

// Вокабуляр по умолчанию. Восстанавливается вызовом Reset.

var defaultHigh = []string{
	"slb", "schlumberger", "halliburton", "baker hughes", "oilfield services",
	"drilling", "completion", "fracking", "hydraulic fracturing", "well services",
	"subsurface", "reservoir", "logging", "wireline", "coiled tubing",
	"artificial lift", "stimulation", "cementing", "mud logging",
	"directional drilling", "mwd", "lwd", "measurement while drilling",
	"carbon capture", "ccs", "ccus", "sequestration", "co2 injection",
	"digital oilfield", "petrotechnical", "geophysics", "petrophysics",
}

var defaultModerate = []string{
	"exploration", "production", "upstream", "offshore", "deepwater",
	"unconventional", "shale", "tight oil", "enhanced recovery",
	"field development", "project sanctioning", "final investment decision",
	"technology", "innovation", "digitalization", "automation",
	"esg", "sustainability", "emissions", "decarbonization",
	"lng", "natural gas", "oil price", "commodity", "energy transition",
}

var defaultRelevant = []string{
	"refining", "downstream", "petrochemicals", "marketing",
	"renewable", "solar", "wind", "hydrogen", "electric vehicle",
	"pipeline", "midstream", "transportation", "storage",
}
