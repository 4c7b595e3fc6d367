package feeds

import (
	"math"
	"strings"
)

type Kind string

const (
	KindBottle      Kind = "bottle"
	KindNurse       Kind = "nurse"
	KindPump        Kind = "pump"
	KindDiaper      Kind = "diaper"
	KindVitaminDose Kind = "vitamin_dose"
)

// ParseKind normaliza el tipo recibido desde la API.
// "vitamin_d" se acepta como alias histórico de vitamin_dose.
func ParseKind(s string) Kind {
	k := strings.ToLower(strings.TrimSpace(s))
	switch k {
	case "vitamin_d", "vitamin":
		return KindVitaminDose
	default:
		return Kind(k)
	}
}

// Known indica si k es uno de los tipos que la API acepta al escribir.
func (k Kind) Known() bool {
	switch k {
	case KindBottle, KindNurse, KindPump, KindDiaper, KindVitaminDose:
		return true
	}
	return false
}

// ParseQualifier normaliza lado/contenido; no valida contra el Kind.
func ParseQualifier(s string) Qualifier {
	return Qualifier(strings.ToLower(strings.TrimSpace(s)))
}

// Qualifier depende del Kind: lado (nurse/pump), contenido (bottle) o tipo de pañal.
type Qualifier string

const (
	QualifierNone Qualifier = ""

	QualifierLeft  Qualifier = "left"
	QualifierRight Qualifier = "right"
	QualifierBoth  Qualifier = "both"

	QualifierFormula Qualifier = "formula"
	QualifierMilk    Qualifier = "milk"

	QualifierPee  Qualifier = "pee"
	QualifierPoop Qualifier = "poop"
)

type VolumeUnit string

const (
	UnitML VolumeUnit = "ml"
	UnitOZ VolumeUnit = "oz"
)

func ParseVolumeUnit(s string) VolumeUnit {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "oz", "ounce", "ounces":
		return UnitOZ
	default:
		return UnitML
	}
}

const mlPerOz = 29.5735

// ConvertVolume pasa v de una unidad a otra, redondeado a 0.1.
func ConvertVolume(v float64, from, to VolumeUnit) float64 {
	switch {
	case from == UnitOZ && to == UnitML:
		return math.Round(v*mlPerOz*10) / 10
	case from == UnitML && to == UnitOZ:
		return math.Round(v/mlPerOz*10) / 10
	}
	return v
}

// Notas fijas de las dosis de vitamina.
const (
	VitaminGiven  = "Yes"
	VitaminMissed = "No"

	// AutoCaregiver firma las entradas sintetizadas por el reconciliador.
	AutoCaregiver = "Auto"
)
