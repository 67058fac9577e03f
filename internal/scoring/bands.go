// internal/scoring/bands.go
package scoring

import "infraiq-workers/internal/models"

type Maturity struct {
	Level models.MaturityLevel `json:"level"`
	Label string               `json:"label"`
	Emoji string               `json:"emoji"`
}

// Band covers totals up to and including Max.
type Band struct {
	Max int
	Maturity
}

// Bands are ascending; the last one catches everything above 80.
var Bands = []Band{
	{Max: 20, Maturity: Maturity{Level: models.MaturityFragmented, Label: "Fragmented Infrastructure", Emoji: "🔴"}},
	{Max: 40, Maturity: Maturity{Level: models.MaturityEmerging, Label: "Emerging Infrastructure", Emoji: "🟠"}},
	{Max: 60, Maturity: Maturity{Level: models.MaturityDeveloping, Label: "Developing Infrastructure", Emoji: "🟡"}},
	{Max: 80, Maturity: Maturity{Level: models.MaturityMaturing, Label: "Maturing Infrastructure", Emoji: "🔵"}},
	{Max: 100, Maturity: Maturity{Level: models.MaturityLiving, Label: "Living Infrastructure™", Emoji: "🟢"}},
}

func Classify(total int) Maturity {
	for _, b := range Bands[:len(Bands)-1] {
		if total <= b.Max {
			return b.Maturity
		}
	}
	return Bands[len(Bands)-1].Maturity
}

// Describe returns the display label and emoji for a level.
func Describe(level models.MaturityLevel) (Maturity, bool) {
	for _, b := range Bands {
		if b.Level == level {
			return b.Maturity, true
		}
	}
	return Maturity{}, false
}
