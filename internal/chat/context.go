package chat

import "regexp"

// Region values detected from user input.
const (
	RegionUnset   = ""
	RegionUK      = "UK"
	RegionIreland = "Ireland"
	RegionEU      = "EU"
)

var (
	urgencyRE = regexp.MustCompile(`urgent|asap|immediately`)
	ukRE      = regexp.MustCompile(`uk|united kingdom`)
	irelandRE = regexp.MustCompile(`ireland`)
	euRE      = regexp.MustCompile(`eu|europe`)
)

// Context accumulates cross-turn session facts. Location is sticky once
// detected and Urgent never resets to false.
type Context struct {
	Location string
	Urgent   bool
}

// Update applies the context rules to one normalized utterance. It runs on
// every turn before routing or lead-capture delegation: urgency first, then
// region detection in priority order UK, Ireland, EU (first match wins for
// the turn; no match leaves the prior value in place). Mutates c in place.
func (c *Context) Update(normalized string) {
	if urgencyRE.MatchString(normalized) {
		c.Urgent = true
	}

	switch {
	case ukRE.MatchString(normalized):
		c.Location = RegionUK
	case irelandRE.MatchString(normalized):
		c.Location = RegionIreland
	case euRE.MatchString(normalized):
		c.Location = RegionEU
	}
}
