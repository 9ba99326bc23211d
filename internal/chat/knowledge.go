package chat

// Knowledge holds the canned informational text used for direct answers
// and greeting lines. Loaded once at startup and never mutated.
type Knowledge struct {
	Brands    string
	Company   string
	Logistics string
	Marketing string
	Sales     string
	Events    string
	Portal    string
	Phones    string
}

// DefaultKnowledge returns the JDM Products knowledge base.
func DefaultKnowledge() *Knowledge {
	return &Knowledge{
		Brands:    "Garmin, Fitbit, Tonies, Echelon, Austere, SureFire Gaming, AENO, and 15+ other leading technology brands.",
		Company:   "JDM Products is an award-winning B2B consumer electronics distributor founded in 1999 by Jonathan Moore.",
		Logistics: "Pan-European freight network with facilities in Ireland and the UK.",
		Marketing: "Social media support, co-marketing opportunities, and brand awareness campaigns.",
		Sales:     "Regional sales management teams across UK and Ireland serving 3000+ active accounts.",
		Events:    "Trade shows, B2B events, product training, and consumer events.",
		Portal:    "b2b.jdmproducts.com",
		Phones:    "Ireland: +353 1 2050500 | UK: +44 0203 4815711",
	}
}
