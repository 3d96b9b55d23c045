package analytics

import (
	"math"
	"sort"
)

// Statistic helpers return nil for degenerate inputs (empty series, constant
// series, too few points) instead of erroring; the reports render nil as
// "not available".

func Mean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return ptr(sum / float64(len(values)))
}

func Median(values []float64) *float64 {
	n := len(values)
	if n == 0 {
		return nil
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	if n%2 == 1 {
		return ptr(sorted[n/2])
	}
	return ptr((sorted[n/2-1] + sorted[n/2]) / 2)
}

// Mode returns the most frequent value; ties resolve to the smallest one.
func Mode(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}

	counts := make(map[float64]int, len(values))
	for _, v := range values {
		counts[v]++
	}

	best, bestCount := 0.0, 0
	for v, c := range counts {
		if c > bestCount || (c == bestCount && v < best) {
			best, bestCount = v, c
		}
	}

	return ptr(best)
}

// StdDev is the sample standard deviation; undefined below two points.
func StdDev(values []float64) *float64 {
	n := len(values)
	if n < 2 {
		return nil
	}

	mean := *Mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}

	return ptr(math.Sqrt(sum / float64(n-1)))
}

// CoefficientOfVariation is stddev/mean; undefined for a zero mean.
func CoefficientOfVariation(values []float64) *float64 {
	sd := StdDev(values)
	mean := Mean(values)
	if sd == nil || mean == nil || *mean == 0 {
		return nil
	}

	return ptr(*sd / *mean)
}

// Skewness is the adjusted Fisher-Pearson coefficient; undefined below three
// points or for a constant series.
func Skewness(values []float64) *float64 {
	n := float64(len(values))
	if n < 3 {
		return nil
	}

	mean := *Mean(values)
	m2, m3 := 0.0, 0.0
	for _, v := range values {
		d := v - mean
		m2 += d * d
		m3 += d * d * d
	}
	m2 /= n
	m3 /= n

	if m2 == 0 {
		return nil
	}

	g1 := m3 / math.Pow(m2, 1.5)
	return ptr(g1 * math.Sqrt(n*(n-1)) / (n - 2))
}

// linearFit is a first-degree least-squares fit.
func linearFit(xs, ys []float64) (slope, intercept float64) {
	n := float64(len(xs))
	var sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}

	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

// pearson reports ok=false when either series is constant.
func pearson(xs, ys []float64) (float64, bool) {
	n := float64(len(xs))
	if n == 0 {
		return 0, false
	}

	meanX := *Mean(xs)
	meanY := *Mean(ys)

	var cov, varX, varY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return 0, false
	}

	return cov / math.Sqrt(varX*varY), true
}

// twoTailedPValue converts Pearson r into the two-tailed p of the t-test with
// n-2 degrees of freedom, via the regularized incomplete beta function.
func twoTailedPValue(r float64, n int) float64 {
	if n < 3 {
		return 1
	}

	df := float64(n - 2)
	denom := 1 - r*r
	if denom <= 0 {
		return 0
	}

	t := math.Abs(r) * math.Sqrt(df/denom)
	return incompleteBeta(df/2, 0.5, df/(df+t*t))
}

// incompleteBeta is the regularized incomplete beta function I_x(a, b),
// evaluated with the continued fraction expansion.
func incompleteBeta(a, b, x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}

	lgA, _ := math.Lgamma(a)
	lgB, _ := math.Lgamma(b)
	lgAB, _ := math.Lgamma(a + b)
	front := math.Exp(lgAB - lgA - lgB + a*math.Log(x) + b*math.Log(1-x))

	if x < (a+1)/(a+b+2) {
		return front * betaCF(a, b, x) / a
	}
	return 1 - front*betaCF(b, a, 1-x)/b
}

func betaCF(a, b, x float64) float64 {
	const (
		maxIterations = 200
		epsilon       = 3e-14
		tiny          = 1e-30
	)

	qab := a + b
	qap := a + 1
	qam := a - 1

	c := 1.0
	d := 1 - qab*x/qap
	if math.Abs(d) < tiny {
		d = tiny
	}
	d = 1 / d
	h := d

	for m := 1; m <= maxIterations; m++ {
		fm := float64(m)
		m2 := 2 * fm

		aa := fm * (b - fm) * x / ((qam + m2) * (a + m2))
		d = 1 + aa*d
		if math.Abs(d) < tiny {
			d = tiny
		}
		c = 1 + aa/c
		if math.Abs(c) < tiny {
			c = tiny
		}
		d = 1 / d
		h *= d * c

		aa = -(a + fm) * (qab + fm) * x / ((a + m2) * (qap + m2))
		d = 1 + aa*d
		if math.Abs(d) < tiny {
			d = tiny
		}
		c = 1 + aa/c
		if math.Abs(c) < tiny {
			c = tiny
		}
		d = 1 / d
		del := d * c
		h *= del

		if math.Abs(del-1) < epsilon {
			break
		}
	}

	return h
}

func round(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}

func ptr(v float64) *float64 {
	return &v
}
