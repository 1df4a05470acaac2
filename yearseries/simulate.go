package yearseries

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
)

func GenerateYears(start, n int) []int {
	years := make([]int, 0, n)
	for i := 0; i < n; i++ {
		years = append(years, start+i)
	}
	return years
}

type Values []float64

func (v Values) Add(src Values) Values {
	floats.Add(v, src)
	return v
}

func GenerateConst(n int, val float64) Values {
	v := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		v = append(v, val)
	}
	return Values(v)
}

// GeneratePolynomial evaluates coef[0] + coef[1]*x + coef[2]*x^2 ... with x counted in years
// since the first year.
func GeneratePolynomial(years []int, coef ...float64) Values {
	v := make([]float64, 0, len(years))
	for _, year := range years {
		x := float64(year - years[0])
		val, pow := 0.0, 1.0
		for _, c := range coef {
			val += c * pow
			pow *= x
		}
		v = append(v, val)
	}
	return Values(v)
}

func GenerateNoise(n int, scale float64) Values {
	v := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		v = append(v, rand.NormFloat64()*scale)
	}
	return Values(v)
}
