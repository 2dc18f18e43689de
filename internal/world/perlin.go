package world

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// Gradient lookup tables of the improved noise generator.
var (
	gradX = [16]float64{1, -1, 1, -1, 1, -1, 1, -1, 0, 0, 0, 0, 1, 0, -1, 0}
	gradY = [16]float64{1, 1, -1, -1, 0, 0, 0, 0, 1, -1, 1, -1, 1, -1, 1, -1}
	gradZ = [16]float64{0, 0, 0, 0, 1, 1, -1, -1, 1, 1, -1, -1, 0, 1, 0, -1}
)

// maxImprovedNoise bounds the magnitude of a single improved noise octave.
const maxImprovedNoise = 1.1

// coordinate wrap applied per octave to keep float precision at large offsets
const octaveWrap = 16777216

// improvedNoise is one octave of improved Perlin noise with a random origin.
type improvedNoise struct {
	permutations [512]int
	origin       mgl64.Vec3
}

func newImprovedNoise(rnd *rand.Rand) *improvedNoise {
	n := &improvedNoise{
		origin: mgl64.Vec3{rnd.Float64() * 256.0, rnd.Float64() * 256.0, rnd.Float64() * 256.0},
	}
	for i := 0; i < 256; i++ {
		n.permutations[i] = i
	}
	for i := 0; i < 256; i++ {
		j := rnd.Intn(256-i) + i
		n.permutations[i], n.permutations[j] = n.permutations[j], n.permutations[i]
		n.permutations[i+256] = n.permutations[i]
	}
	return n
}

func grad3d(hash int, x, y, z float64) float64 {
	i := hash & 15
	return gradX[i]*x + gradY[i]*y + gradZ[i]*z
}

// floorToInt floors then truncates, matching a (int) cast of a floored double.
func floorToInt(d float64) int {
	i := int(d)
	if d < float64(i) {
		i--
	}
	return i
}

// sample evaluates the octave at p. Hash order is X, then Y, then Z.
func (n *improvedNoise) sample(p mgl64.Vec3) float64 {
	p = p.Add(n.origin)

	flx, fly, flz := floorToInt(p[0]), floorToInt(p[1]), floorToInt(p[2])
	permX, permY, permZ := flx&255, fly&255, flz&255
	fx := p[0] - float64(flx)
	fy := p[1] - float64(fly)
	fz := p[2] - float64(flz)

	perm := &n.permutations
	l := perm[permX] + permY
	i1 := perm[l] + permZ
	j1 := perm[l+1] + permZ
	k1 := perm[permX+1] + permY
	l1 := perm[k1] + permZ
	i2 := perm[k1+1] + permZ

	u, v, w := fade(fx), fade(fy), fade(fz)

	d1 := lerp(grad3d(perm[i1], fx, fy, fz), grad3d(perm[l1], fx-1, fy, fz), u)
	d2 := lerp(grad3d(perm[j1], fx, fy-1, fz), grad3d(perm[i2], fx-1, fy-1, fz), u)
	d3 := lerp(grad3d(perm[i1+1], fx, fy, fz-1), grad3d(perm[l1+1], fx-1, fy, fz-1), u)
	d4 := lerp(grad3d(perm[j1+1], fx, fy-1, fz-1), grad3d(perm[i2+1], fx-1, fy-1, fz-1), u)

	return lerp(lerp(d1, d2, v), lerp(d3, d4, v), w)
}

// PerlinField sums octaves of improved noise. Octave j samples at frequency
// 2^-j and contributes with amplitude 2^j, so the first octave is the finest.
type PerlinField struct {
	octaves []*improvedNoise
	Scale   mgl64.Vec3 // block to noise space
}

// NewPerlinField seeds count octaves from a single math/rand source.
func NewPerlinField(seed int64, count int) *PerlinField {
	rnd := rand.New(rand.NewSource(seed))
	f := &PerlinField{
		octaves: make([]*improvedNoise, count),
		Scale:   mgl64.Vec3{1.0 / 80.0, 1.0 / 160.0, 1.0 / 80.0},
	}
	for i := range f.octaves {
		f.octaves[i] = newImprovedNoise(rnd)
	}
	return f
}

func (f *PerlinField) Sample(x, y, z int) (float64, error) {
	base := mgl64.Vec3{float64(x) * f.Scale[0], float64(y) * f.Scale[1], float64(z) * f.Scale[2]}

	sum := 0.0
	freq := 1.0
	for _, oct := range f.octaves {
		p := base.Mul(freq)
		p[0] = wrapCoord(p[0])
		p[2] = wrapCoord(p[2])
		sum += oct.sample(p) / freq
		freq /= 2.0
	}
	return sum, nil
}

func wrapCoord(d float64) float64 {
	k := int64(math.Floor(d))
	return d - float64(k) + float64(k%octaveWrap)
}

func (f *PerlinField) MinValue() float64 { return -f.MaxValue() }

func (f *PerlinField) MaxValue() float64 {
	return (math.Exp2(float64(len(f.octaves))) - 1) * maxImprovedNoise
}
