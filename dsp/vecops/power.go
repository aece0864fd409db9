package vecops

import "math"

// chainStep multiplies two earlier chain values: p[k+1] = p[s[0]] * p[s[1]],
// with p[0] the input.
type chainStep [2]uint8

// powerChains holds a shortest addition chain for every exponent from 3 to
// 16. The last value of each chain is x^e.
var powerChains = [17][]chainStep{
	3:  {{0, 0}, {1, 0}},
	4:  {{0, 0}, {1, 1}},
	5:  {{0, 0}, {1, 1}, {2, 0}},
	6:  {{0, 0}, {1, 0}, {2, 2}},
	7:  {{0, 0}, {1, 0}, {2, 2}, {3, 0}},
	8:  {{0, 0}, {1, 1}, {2, 2}},
	9:  {{0, 0}, {1, 1}, {2, 2}, {3, 0}},
	10: {{0, 0}, {1, 1}, {2, 0}, {3, 3}},
	11: {{0, 0}, {1, 1}, {2, 0}, {3, 3}, {4, 0}},
	12: {{0, 0}, {1, 0}, {2, 2}, {3, 3}},
	13: {{0, 0}, {1, 0}, {2, 2}, {3, 3}, {4, 0}},
	14: {{0, 0}, {1, 0}, {2, 2}, {3, 0}, {4, 4}},
	15: {{0, 0}, {1, 0}, {2, 2}, {3, 3}, {4, 2}},
	16: {{0, 0}, {1, 1}, {2, 2}, {3, 3}},
}

// maxChainExponent is the largest exponent served by a multiply chain.
const maxChainExponent = 16

func evalChain[T Float](chain []chainStep, x T) T {
	var p [6]T
	p[0] = x
	for k, s := range chain {
		p[k+1] = p[s[0]] * p[s[1]]
	}
	return p[len(chain)]
}

func evalChainVec[T Float](chain []chainStep, x Vec[T]) Vec[T] {
	var p [6]Vec[T]
	p[0] = x
	for k, s := range chain {
		p[k+1] = p[s[0]].Mul(p[s[1]])
	}
	return p[len(chain)]
}

// IntegerPower sets dst[i] = src[i]^exponent.
//
// Exponents up to 16 use fixed multiply chains, so the scalar and vector
// paths agree bit for bit. Larger exponents go through math.Pow lane by
// lane. A negative exponent panics.
func (k *Kernels[T]) IntegerPower(dst, src []T, exponent int) {
	switch {
	case exponent < 0:
		panic("vecops: negative exponent")
	case exponent == 0:
		k.Fill(dst, 1)
	case exponent == 1:
		k.Copy(dst, src)
	case exponent == 2:
		k.Multiply(dst, src, src)
	case exponent <= maxChainExponent:
		chain := powerChains[exponent]
		UnaryOp(k.Arch(), dst, src,
			func(x T) T { return evalChain(chain, x) },
			func(x Vec[T]) Vec[T] { return evalChainVec(chain, x) })
	default:
		e := float64(exponent)
		pow := func(x T) T { return T(math.Pow(float64(x), e)) }
		UnaryOp(k.Arch(), dst, src, pow,
			func(x Vec[T]) Vec[T] { return x.Map(pow) })
	}
}
