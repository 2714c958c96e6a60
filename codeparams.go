// ═══════════════════════════════════════════════════════════════════════════════
// CODE-PARAMETER DERIVATION
// ═══════════════════════════════════════════════════════════════════════════════
// Golomb-family codes need a modulus chosen from the statistics of the list
// being decoded: how likely a document is to contain the term (frequency/N)
// sets the expected gap, and the skip tower's higher levels need a modulus
// that widens with the variance of a sum of `2^i` quanta worth of gaps.
// These are derived once per list (in readFrequency) and reused for every
// posting and every tower level, never recomputed per record.
// ═══════════════════════════════════════════════════════════════════════════════

package invindex

import "math"

// golombModulus picks the Golomb parameter b for a Bernoulli(p) gap model
// with p = frequency/N, approximating the standard
// b = ceil(-ln(2) / ln(1 - p)).
func golombModulus(frequency, n int64) int64 {
	if n <= 0 || frequency <= 0 {
		return 1
	}
	p := float64(frequency) / float64(n)
	if p >= 1 {
		return 1
	}
	b := int64(math.Ceil(-math.Ln2 / math.Log(1-p)))
	if b < 1 {
		b = 1
	}
	return b
}

// quantumSigma estimates the standard deviation of the sum of `quantum`
// independent geometric gaps with success probability p = frequency/N: a
// single geometric gap has variance (1-p)/p^2, so a sum of `quantum` of
// them has standard deviation sqrt(quantum*(1-p))/p.
func quantumSigma(frequency, n int64, quantum int64) float64 {
	if n <= 0 || frequency <= 0 || quantum <= 0 {
		return 1
	}
	p := float64(frequency) / float64(n)
	if p <= 0 {
		p = 1e-9
	}
	return math.Sqrt(float64(quantum)*(1-p)) / p
}

// gaussianGolombModulusConstant is sqrt(pi*ln(2)/2), the scale factor that
// makes a Golomb code with this modulus near-optimal for a half-Gaussian
// magnitude with standard deviation sigma (the same constant used to pick
// a Golomb parameter from a Laplace/Gaussian residual distribution).
var gaussianGolombModulusConstant = math.Sqrt(math.Pi * math.Ln2 / 2)

// gaussianGolombModulus picks the modulus for tower level i, whose gap sum
// spans 2^i times as many quanta as the base level and so has standard
// deviation sigma*sqrt(2^i).
func gaussianGolombModulus(sigma float64, i int) int64 {
	scaled := sigma * math.Sqrt(math.Pow(2, float64(i)))
	b := int64(math.Round(gaussianGolombModulusConstant * scaled))
	if b < 1 {
		b = 1
	}
	return b
}

// codeParams is the per-list bundle of derived parameters computed once in
// readFrequency and consulted by every subsequent decode on that list.
type codeParams struct {
	golombB     int64
	golombLog2B int

	towerTopB        []int64
	towerTopLog2B    []int
	towerLowerB      []int64
	towerLowerLog2B  []int
	pointerPrediction []int64
}

func newCodeParams(height int) *codeParams {
	return &codeParams{
		towerTopB:         make([]int64, height+1),
		towerTopLog2B:     make([]int, height+1),
		towerLowerB:       make([]int64, height+1),
		towerLowerLog2B:   make([]int, height+1),
		pointerPrediction: make([]int64, height+1),
	}
}

// derive fills in every per-list parameter from frequency, N and quantum,
// per §4.1. height is the number of tower levels actually usable for this
// list (min(H, floor(log2(frequency/quantum)))); levels beyond it are left
// zeroed and must never be consulted.
func (cp *codeParams) derive(frequency, n, quantum int64, height int, pointerCoding Coding) {
	if pointerCoding == CodingGolomb || pointerCoding == CodingSkewedGolomb {
		cp.golombB = golombModulus(frequency, n)
		cp.golombLog2B = mostSignificantBit(cp.golombB)
	}
	if quantum <= 0 {
		return
	}
	sigma := quantumSigma(frequency, n, quantum)
	for i := 0; i <= height && i < len(cp.towerTopB); i++ {
		cp.towerTopB[i] = gaussianGolombModulus(sigma, i+1)
		cp.towerTopLog2B[i] = mostSignificantBit(cp.towerTopB[i])
		cp.towerLowerB[i] = gaussianGolombModulus(sigma, i)
		cp.towerLowerLog2B[i] = mostSignificantBit(cp.towerLowerB[i])
		cp.pointerPrediction[i] = (quantum*(int64(1)<<uint(i))*n + frequency/2) / frequency
	}
}

// nat2int is the inverse zig-zag mapping: a non-negative code value decodes
// to a signed residual, 0->0, 1->1, 2->-1, 3->2, 4->-2, ...
func nat2int(v int64) int64 {
	if v%2 == 0 {
		return -(v / 2)
	}
	return (v + 1) / 2
}

// int2nat is nat2int's inverse, used only by the test-only fixture encoder.
func int2nat(x int64) int64 {
	if x > 0 {
		return 2*x - 1
	}
	return -2 * x
}
