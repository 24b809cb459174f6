package entity

// BusinessBlueprint is the terminal artifact of a completed interview.
// Every text field is always a string and every list field always a non-nil
// slice of strings; the normalizer guarantees this regardless of what the
// model returned.
type BusinessBlueprint struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`

	SituationSummary     string `json:"situationSummary"`
	RecommendedDirection string `json:"recommendedDirection"`
	BusinessModelSummary string `json:"businessModelSummary"`

	ExampleOffers      []string `json:"exampleOffers"`
	Monetization       []string `json:"monetization"`
	HowToFindCustomers []string `json:"howToFindCustomers"`
	StepByStepGuide    []string `json:"stepByStepGuide"`
	DayOneActions      []string `json:"dayOneActions"`
	First30Days        []string `json:"first30Days"`
	KeyRisks           []string `json:"keyRisks"`
	HowToDeRisk        []string `json:"howToDeRisk"`
	GrowthLevers       []string `json:"growthLevers"`
}

// BlueprintSection pairs a display heading with one list field, in render
// order. Formatters and the Telegram renderer iterate this instead of
// hardcoding the field set twice.
type BlueprintSection struct {
	Heading string
	Items   []string
}

// ListSections returns the blueprint's list fields in presentation order.
func (b *BusinessBlueprint) ListSections() []BlueprintSection {
	return []BlueprintSection{
		{Heading: "Example offers", Items: b.ExampleOffers},
		{Heading: "Monetization", Items: b.Monetization},
		{Heading: "How to find customers", Items: b.HowToFindCustomers},
		{Heading: "Step-by-step guide", Items: b.StepByStepGuide},
		{Heading: "Day-one actions", Items: b.DayOneActions},
		{Heading: "First 30 days", Items: b.First30Days},
		{Heading: "Key risks", Items: b.KeyRisks},
		{Heading: "How to de-risk", Items: b.HowToDeRisk},
		{Heading: "Growth levers", Items: b.GrowthLevers},
	}
}
