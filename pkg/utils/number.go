package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// SafeDivide retorna numerator/denominator, ou 0 quando o denominador é zero
// ou o resultado não é um número finito
func SafeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}

	result := numerator / denominator
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0
	}

	return result
}

// Percentage retorna part/total*100 com a mesma proteção de SafeDivide
func Percentage(part, total float64) float64 {
	return SafeDivide(part, total) * 100
}

// Clamp limita value ao intervalo fechado [lower, upper]
func Clamp(value, lower, upper float64) float64 {
	if math.IsNaN(value) {
		return lower
	}

	return math.Max(lower, math.Min(value, upper))
}

// PercentageChange calcula a variação percentual entre dois períodos.
// Sem período anterior, qualquer valor positivo conta como +100%.
func PercentageChange(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}

	return (current - previous) / previous * 100
}
