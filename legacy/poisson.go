package legacy

import "math"

// Poisson sampling follows the reference two-regime split: the
// multiplication method below lambda 10 and the PTRS transformed
// rejection above it.

const ptrsThreshold = 10.0

// Poisson returns a Poisson deviate with mean lam.
func (s *Sampler) Poisson(lam float64) int64 {
	if lam >= ptrsThreshold {
		return s.poissonPTRS(lam)
	}
	if lam == 0 {
		return 0
	}
	return s.poissonMult(lam)
}

// poissonMult multiplies uniforms until the product drops below
// exp(-lam).
func (s *Sampler) poissonMult(lam float64) int64 {
	enlam := math.Exp(-lam)
	var x int64
	prod := 1.0
	for {
		prod *= s.next()
		if prod > enlam {
			x++
		} else {
			return x
		}
	}
}

// poissonPTRS is the transformed rejection method with squeeze
// (Hoermann's PTRS), two uniforms per trial.
func (s *Sampler) poissonPTRS(lam float64) int64 {
	slam := math.Sqrt(lam)
	loglam := math.Log(lam)
	b := 0.931 + 2.53*slam
	a := -0.059 + 0.02483*b
	invalpha := 1.1239 + 1.1328/(b-3.4)
	vr := 0.9277 - 3.6224/(b-2)

	for {
		u := s.next() - 0.5
		v := s.next()
		us := 0.5 - math.Abs(u)
		k := int64(math.Floor((2*a/us+b)*u + lam + 0.43))
		if us >= 0.07 && v <= vr {
			return k
		}
		if k < 0 || (us < 0.013 && v > us) {
			continue
		}
		lg, _ := math.Lgamma(float64(k) + 1)
		if math.Log(v)+math.Log(invalpha)-math.Log(a/(us*us)+b) <= -lam+float64(k)*loglam-lg {
			return k
		}
	}
}
