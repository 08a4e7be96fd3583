package domain

// ScoreTier agrupa un puntaje en la misma escala de colores que usa el cliente.
type ScoreTier string

const (
	TierRed    ScoreTier = "red"
	TierYellow ScoreTier = "yellow"
	TierBlue   ScoreTier = "blue"
	TierGreen  ScoreTier = "green"
)

// Umbrales compartidos con la UI: <50 rojo, <70 amarillo, <90 azul, resto verde.
const (
	tierYellowFrom = 50
	tierBlueFrom   = 70
	tierGreenFrom  = 90
)

// ScoreTierFor devuelve el tramo de color para un puntaje.
func ScoreTierFor(score int) ScoreTier {
	switch {
	case score < tierYellowFrom:
		return TierRed
	case score < tierBlueFrom:
		return TierYellow
	case score < tierGreenFrom:
		return TierBlue
	default:
		return TierGreen
	}
}

// LevelForScore devuelve la etiqueta de nivel que corresponde al puntaje global.
func LevelForScore(score int) string {
	switch ScoreTierFor(score) {
	case TierRed:
		return "Beginner"
	case TierYellow:
		return "Intermediate"
	case TierBlue:
		return "Pro"
	default:
		return "Expert"
	}
}

// ClampScore limita un puntaje a [0,100].
func ClampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
