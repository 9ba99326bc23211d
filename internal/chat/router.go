package chat

import (
	"fmt"
	"regexp"
)

// Intent labels the branch that produced a turn's replies. Used for
// metrics and transcript diagnostics.
type Intent string

const (
	IntentRetailerOnboarding Intent = "retailer_onboarding"
	IntentBrands             Intent = "brands"
	IntentPortalSupport      Intent = "portal_support"
	IntentOrderSupport       Intent = "order_support"
	IntentServices           Intent = "services"
	IntentExpansion          Intent = "expansion"
	IntentQualification      Intent = "lead_qualification"
	IntentConsumer           Intent = "consumer"
	IntentFallback           Intent = "fallback"

	// IntentLeadCapture marks turns consumed by an active capture flow
	// rather than matched against the rule table.
	IntentLeadCapture Intent = "lead_capture"
)

// Intent patterns, compiled once. All are unanchored, case-insensitivity
// comes from matching against normalized (already lower-cased) text.
var (
	resellerRE  = regexp.MustCompile(`reseller|retailer|partner|open an account|become a retailer|onboard`)
	brandsRE    = regexp.MustCompile(`garmin|fitbit|tonies|echelon|austere|surefire|aeno|brands|distribute`)
	stockRE     = regexp.MustCompile(`stock|available|availability|in stock`)
	portalRE    = regexp.MustCompile(`portal|can't access|cannot access|login`)
	orderRE     = regexp.MustCompile(`order|where.*order|pricing|price|stock availability|stock level`)
	servicesRE  = regexp.MustCompile(`services|marketing|logistics|training|events|sales management`)
	expansionRE = regexp.MustCompile(`cover|country|expanding|expansion|european distribution|region`)
	interestRE  = regexp.MustCompile(`interested|talk about|discuss|we'd like|we would like`)
	consumerRE  = regexp.MustCompile(`consumer|buy for myself|personal purchase`)
)

// Turn is the outcome of routing one user utterance.
type Turn struct {
	Intent  Intent
	Replies []string
	// Lead is set when this turn completed a capture flow.
	Lead *CaptureResult
}

// rule pairs an intent pattern with its handler. Rules are evaluated in
// slice order with first match winning, so the order below is a binding
// part of the routing contract: in particular the brand rule shadows the
// order/pricing rule for any input carrying both brand and stock keywords
// (the brand branch stays informational, matching the widget's behavior).
type rule struct {
	intent Intent
	re     *regexp.Regexp
	handle func(rt *Router, ctx *Context, lc *Capture, normalized string) []string
}

// Router dispatches normalized utterances to the first matching intent
// rule. It is stateless across turns and safe to share between sessions;
// all mutable state lives in the Context and Capture passed per call.
type Router struct {
	kb    *Knowledge
	rules []rule
}

// NewRouter builds a router answering from the given knowledge base.
func NewRouter(kb *Knowledge) *Router {
	rt := &Router{kb: kb}
	rt.rules = []rule{
		{IntentRetailerOnboarding, resellerRE, (*Router).handleReseller},
		{IntentBrands, brandsRE, (*Router).handleBrands},
		{IntentPortalSupport, portalRE, (*Router).handlePortal},
		{IntentOrderSupport, orderRE, (*Router).handleOrder},
		{IntentServices, servicesRE, (*Router).handleServices},
		{IntentExpansion, expansionRE, (*Router).handleExpansion},
		{IntentQualification, interestRE, (*Router).handleInterest},
		{IntentConsumer, consumerRE, (*Router).handleConsumer},
	}
	return rt
}

// Route processes one user turn: normalize, update context, then either
// delegate to an active capture flow (which receives the raw text so the
// final summary preserves the user's literal input) or evaluate the intent
// rules in priority order. Every turn yields at least one reply; when no
// rule matches, the fallback branch answers and starts a capture.
func (rt *Router) Route(ctx *Context, lc *Capture, raw string) Turn {
	normalized := Normalize(raw)
	ctx.Update(normalized)

	if lc.Active() {
		reply, result := lc.HandleTurn(raw, ctx)
		return Turn{Intent: IntentLeadCapture, Replies: []string{reply}, Lead: result}
	}

	for _, r := range rt.rules {
		if r.re.MatchString(normalized) {
			return Turn{Intent: r.intent, Replies: r.handle(rt, ctx, lc, normalized)}
		}
	}

	return Turn{Intent: IntentFallback, Replies: rt.handleFallback(ctx, lc, normalized)}
}

func (rt *Router) handleReseller(ctx *Context, lc *Capture, normalized string) []string {
	return []string{
		"Absolutely. To open a JDM trade account, please confirm: your retail business type, your location (Ireland, UK, or EU), and which brands you currently stock. We work with 3000+ active accounts.",
		lc.Begin(ReasonRetailerOnboarding, TeamSales),
	}
}

func (rt *Router) handleBrands(ctx *Context, lc *Capture, normalized string) []string {
	replies := []string{fmt.Sprintf("JDM currently distributes %s", rt.kb.Brands)}
	if stockRE.MatchString(normalized) {
		replies = append(replies, fmt.Sprintf(
			"For live stock levels, please log into your reseller portal at %s or I can have your account manager contact you.",
			rt.kb.Portal,
		))
	}
	return replies
}

func (rt *Router) handlePortal(ctx *Context, lc *Capture, normalized string) []string {
	return []string{
		fmt.Sprintf("For portal access, please use %s/account/create or LOGIN from the portal homepage.", rt.kb.Portal),
		fmt.Sprintf("If you're still blocked, share your account name and I can escalate to support. %s", rt.kb.Phones),
	}
}

func (rt *Router) handleOrder(ctx *Context, lc *Capture, normalized string) []string {
	return []string{
		fmt.Sprintf(
			"Your dedicated account manager can help with order status, pricing, and stock. Share your account name and I will route it now. Or call %s.",
			rt.kb.Phones,
		),
		lc.Begin(ReasonExistingCustomerSupport, TeamAccountManagement),
	}
}

func (rt *Router) handleServices(ctx *Context, lc *Capture, normalized string) []string {
	return []string{
		fmt.Sprintf("JDM services include: %s %s %s %s", rt.kb.Logistics, rt.kb.Marketing, rt.kb.Sales, rt.kb.Events),
		"Would you like to speak with our team about any specific service?",
	}
}

func (rt *Router) handleExpansion(ctx *Context, lc *Capture, normalized string) []string {
	return []string{
		"Our core markets are Ireland and the UK, and we have expanded to five additional EU countries. If you share your target region, I can connect a regional sales manager.",
		lc.Begin(ReasonRegionalExpansion, TeamRegionalSales),
	}
}

func (rt *Router) handleInterest(ctx *Context, lc *Capture, normalized string) []string {
	return []string{
		"Great to hear. To qualify this quickly, please share business type, location, annual turnover/size, current brands stocked, and immediate vs future needs.",
		lc.Begin(ReasonLeadQualification, TeamSales),
	}
}

func (rt *Router) handleConsumer(ctx *Context, lc *Capture, normalized string) []string {
	return []string{
		"JDM is a B2B distributor and supplies trade partners only. If you represent a retail business, I can help you open an account.",
	}
}

func (rt *Router) handleFallback(ctx *Context, lc *Capture, normalized string) []string {
	regionNote := ""
	switch ctx.Location {
	case RegionUK:
		regionNote = " Since you're in the UK, we can route this through our UK team."
	case RegionIreland:
		regionNote = " Since you're in Ireland, our Ireland team can pick this up quickly."
	}
	return []string{
		fmt.Sprintf("That's a great question. Let me connect you with the right person on our team.%s", regionNote),
		lc.Begin(ReasonFallback, TeamSales),
	}
}
