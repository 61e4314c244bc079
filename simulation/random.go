package simulation

import (
	"chat-feed/contract"

	"github.com/pion/randutil"
)

var _ contract.Random = mathRandom{}

type mathRandom struct {
	gen randutil.MathRandomGenerator
}

// NewRandom returns a goroutine-safe pseudo random source seeded at startup.
func NewRandom() contract.Random {
	return mathRandom{gen: randutil.NewMathRandomGenerator()}
}

// Float64 keeps the top 53 bits so every value is exactly representable.
func (r mathRandom) Float64() float64 {
	return float64(r.gen.Uint64()>>11) / (1 << 53)
}

func (r mathRandom) IntN(n int) int {
	return r.gen.Intn(n)
}
