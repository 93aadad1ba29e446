package intent

import "github.com/hyperjump/sahayak/internal/models"

// IntentRule maps an intent label to its trigger keywords.
type IntentRule struct {
	Label    models.IntentLabel
	Keywords []string
}

// CategoryRule maps a service category to its trigger keywords.
type CategoryRule struct {
	Category string
	Keywords []string
}

// TierRule maps a price tier to its trigger keywords.
type TierRule struct {
	Tier     models.PriceTier
	Keywords []string
}

// Rules holds ordered rule tables. Within each table the first matching rule wins.
type Rules struct {
	Intents    []IntentRule
	Categories []CategoryRule
	Tiers      []TierRule
}

// DefaultRules returns the built-in rule tables.
func DefaultRules() Rules {
	return Rules{
		Intents: []IntentRule{
			{models.IntentSearch, []string{"find", "search", "looking for", "need"}},
			{models.IntentBooking, []string{"book", "schedule", "appointment"}},
			{models.IntentCompare, []string{"compare", "difference"}},
			{models.IntentHelp, []string{"help", "how"}},
		},
		// repair is last: its keywords ("service", "fix") also appear in
		// queries for more specific trades.
		Categories: []CategoryRule{
			{"plumber", []string{"plumber", "plumbing", "pipe", "leak", "drain", "water tank", "tap", "bathroom fitting"}},
			{"tutor", []string{"tutor", "tutoring", "teacher", "education", "lessons", "coaching", "iit", "jee", "neet", "allen", "resonance", "classes", "academy", "institute", "preparation"}},
			{"gym", []string{"gym", "fitness", "workout", "exercise", "training", "yoga", "zumba", "crossfit", "health club", "gymnasium"}},
			{"electrician", []string{"electrician", "electrical", "wiring", "electric", "voltage", "circuit", "inverter"}},
			{"cleaner", []string{"cleaning", "cleaner", "maid", "housekeeping", "sanitization", "deep clean"}},
			{"mechanic", []string{"mechanic", "auto", "car repair", "vehicle", "garage", "automobile", "bike service"}},
			{"carpenter", []string{"carpenter", "woodwork", "furniture", "sofa", "wardrobe"}},
			{"painter", []string{"painter", "painting", "paint job", "whitewash", "colour"}},
			{"locksmith", []string{"locksmith", "lock", "key", "door lock", "security"}},
			{"repair", []string{"repair", "fix", "service", "maintenance", "ac", "refrigerator", "washing machine", "appliance"}},
		},
		Tiers: []TierRule{
			{models.PriceCheap, []string{"cheap", "affordable", "budget"}},
			{models.PricePremium, []string{"premium", "expensive", "high-end", "best"}},
			{models.PriceMediocre, []string{"medium", "moderate", "mediocre"}},
		},
	}
}
