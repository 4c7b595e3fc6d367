package voice

import (
	"regexp"
	"strconv"
	"strings"

	"baby-feed-tracker/internal/domain/feeds"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Candidate es lo que se pudo entender de una frase dictada.
// Es un borrador: el caller decide si lo registra.
type Candidate struct {
	Kind     feeds.Kind
	Side     feeds.Qualifier
	Amount   *float64
	Unit     feeds.VolumeUnit // unidad dicha; vacío si el número vino solo
	Duration *float64
}

// El orden importa: "breastfed" contiene "fed", así que nurse va antes que bottle.
var kindKeywords = []struct {
	kind  feeds.Kind
	words []string
}{
	{feeds.KindNurse, []string{"nurse", "nursed", "nursing", "breastfed", "breast"}},
	{feeds.KindPump, []string{"pump", "pumped", "pumping"}},
	{feeds.KindBottle, []string{"bottle", "fed", "feed"}},
	{feeds.KindDiaper, []string{"diaper", "pee", "poop"}},
}

var numberWords = map[string]float64{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

const unitPattern = `(ml|millilit(?:er|re)s?|oz|ounces?)\b`

var (
	reDigitsAmount = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(and\s+a\s+half\s+)?` + unitPattern)
	reWordsAmount  = regexp.MustCompile(`\b(one|two|three|four|five|six|seven|eight|nine|ten)\s+(and\s+a\s+half\s+)?` + unitPattern)
	reHalfAmount   = regexp.MustCompile(`\b(?:a\s+)?half\s+(?:an?\s+)?` + unitPattern)
	reTrailingNum  = regexp.MustCompile(`\b(\d+)\s*$`)
	reDuration     = regexp.MustCompile(`(\d+)\s*min`)
)

var folder = cases.Fold()

// Parse interpreta la frase. ok=false si no aparece ninguna palabra de tipo;
// en ese caso no hay que llamar al store.
func Parse(transcript string) (Candidate, bool) {
	text := folder.String(norm.NFKC.String(strings.TrimSpace(transcript)))
	if text == "" {
		return Candidate{}, false
	}

	var c Candidate
	for _, kk := range kindKeywords {
		if containsAny(text, kk.words) {
			c.Kind = kk.kind
			break
		}
	}
	if c.Kind == "" {
		return Candidate{}, false
	}

	c.Side = parseQualifier(c.Kind, text)
	c.Amount, c.Unit = parseAmount(text)

	if m := reDuration.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			c.Duration = &v
		}
	}

	return c, true
}

func parseQualifier(k feeds.Kind, text string) feeds.Qualifier {
	if k == feeds.KindDiaper {
		pee, poop := strings.Contains(text, "pee"), strings.Contains(text, "poop")
		switch {
		case (pee && poop) || strings.Contains(text, "both"):
			return feeds.QualifierBoth
		case pee:
			return feeds.QualifierPee
		case poop:
			return feeds.QualifierPoop
		}
		return feeds.QualifierNone
	}

	if k == feeds.KindBottle {
		switch {
		case strings.Contains(text, "formula"):
			return feeds.QualifierFormula
		case strings.Contains(text, "milk"):
			return feeds.QualifierMilk
		}
	}

	switch {
	case strings.Contains(text, "left"):
		return feeds.QualifierLeft
	case strings.Contains(text, "right"):
		return feeds.QualifierRight
	case strings.Contains(text, "both"):
		return feeds.QualifierBoth
	}
	return feeds.QualifierNone
}

func parseAmount(text string) (*float64, feeds.VolumeUnit) {
	if m := reDigitsAmount.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			if m[2] != "" {
				v += 0.5
			}
			return &v, unitOf(m[3])
		}
	}

	if m := reWordsAmount.FindStringSubmatch(text); m != nil {
		v := numberWords[m[1]]
		if m[2] != "" {
			v += 0.5
		}
		return &v, unitOf(m[3])
	}

	if m := reHalfAmount.FindStringSubmatch(text); m != nil {
		v := 0.5
		return &v, unitOf(m[1])
	}

	// "bottle 30": número suelto al final, solo si es plausible como volumen.
	if m := reTrailingNum.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil && v >= 5 {
			return &v, ""
		}
	}

	return nil, ""
}

func unitOf(tok string) feeds.VolumeUnit {
	if strings.HasPrefix(tok, "oz") || strings.HasPrefix(tok, "ounce") {
		return feeds.UnitOZ
	}
	return feeds.UnitML
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// Event arma el evento a registrar. Si la unidad dicha no es la del
// despliegue, el volumen se convierte (redondeado a 0.1).
func (c Candidate) Event(unit feeds.VolumeUnit) feeds.Event {
	e := feeds.Event{
		Kind:      c.Kind,
		Qualifier: c.qualifierFor(),
		Duration:  c.Duration,
	}

	if c.Amount != nil {
		v := *c.Amount
		if c.Unit != "" {
			v = feeds.ConvertVolume(v, c.Unit, unit)
		}
		e.Amount = &v
	}

	return e
}

// El lado solo se guarda si tiene sentido para el tipo.
func (c Candidate) qualifierFor() feeds.Qualifier {
	switch c.Kind {
	case feeds.KindNurse, feeds.KindPump:
		if c.Side == feeds.QualifierLeft || c.Side == feeds.QualifierRight || c.Side == feeds.QualifierBoth {
			return c.Side
		}
	case feeds.KindBottle:
		if c.Side == feeds.QualifierFormula || c.Side == feeds.QualifierMilk {
			return c.Side
		}
	case feeds.KindDiaper:
		return c.Side
	}
	return feeds.QualifierNone
}

// Describe arma el texto de confirmación que ve el usuario.
func Describe(c Candidate, ok bool) string {
	if !ok {
		return "Could not parse input"
	}

	parts := []string{"Type: " + string(c.Kind)}
	if c.Side != "" {
		parts = append(parts, "Side: "+string(c.Side))
	}
	if c.Amount != nil {
		amount := "Amount: " + feeds.FormatNumber(c.Amount)
		if c.Unit != "" {
			amount += " " + string(c.Unit)
		}
		parts = append(parts, amount)
	}
	if c.Duration != nil {
		parts = append(parts, "Duration: "+feeds.FormatNumber(c.Duration)+" min")
	}
	return strings.Join(parts, " | ")
}
