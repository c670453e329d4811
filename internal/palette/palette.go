// Package palette assigns the gradient styles that give each stack its
// visual identity. A palette is generated once, when the stack is created,
// and stored with the record.
package palette

import (
	"math/rand/v2"
	"regexp"
)

// Size is the number of gradients in every palette.
const Size = 20

// Gradients is the fixed set every palette permutes.
var Gradients = [Size]string{
	"linear-gradient(135deg, #667eea 0%, #764ba2 100%)",
	"linear-gradient(135deg, #f093fb 0%, #f5576c 100%)",
	"linear-gradient(135deg, #4facfe 0%, #00f2fe 100%)",
	"linear-gradient(135deg, #43e97b 0%, #38f9d7 100%)",
	"linear-gradient(135deg, #fa709a 0%, #fee140 100%)",
	"linear-gradient(135deg, #30cfd0 0%, #330867 100%)",
	"linear-gradient(135deg, #a8edea 0%, #fed6e3 100%)",
	"linear-gradient(135deg, #ff9a9e 0%, #fecfef 100%)",
	"linear-gradient(135deg, #ffecd2 0%, #fcb69f 100%)",
	"linear-gradient(135deg, #ff6e7f 0%, #bfe9ff 100%)",
	"linear-gradient(135deg, #e0c3fc 0%, #8ec5fc 100%)",
	"linear-gradient(135deg, #f77062 0%, #fe5196 100%)",
	"linear-gradient(135deg, #fccb90 0%, #d57eeb 100%)",
	"linear-gradient(135deg, #fddb92 0%, #d1fdff 100%)",
	"linear-gradient(135deg, #89f7fe 0%, #66a6ff 100%)",
	"linear-gradient(135deg, #f5576c 0%, #4ec5f1 100%)",
	"linear-gradient(135deg, #96fbc4 0%, #f9f586 100%)",
	"linear-gradient(135deg, #c471f5 0%, #fa71cd 100%)",
	"linear-gradient(135deg, #48c6ef 0%, #6f86d6 100%)",
	"linear-gradient(135deg, #feac5e 0%, #c779d0 100%)",
}

// Generate returns a uniformly random permutation of Gradients. Each call
// draws from the unseeded global source and is not reproducible.
func Generate() []string {
	return Shuffle(Gradients[:], rand.IntN)
}

// Canonical returns Gradients in their declared order. It stands in for
// records stored without a palette.
func Canonical() []string {
	return append([]string(nil), Gradients[:]...)
}

// Shuffle returns a Fisher-Yates permutation of src without modifying it.
// intn(n) must return a uniform value in [0, n).
func Shuffle(src []string, intn func(n int) int) []string {
	out := append([]string(nil), src...)
	for i := len(out) - 1; i > 0; i-- {
		j := intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// StyleAt returns the style for the index-th displayed layer. Styles are
// reused cyclically when there are more layers than palette entries.
func StyleAt(p []string, index int) string {
	if len(p) == 0 {
		return ""
	}
	return p[index%len(p)]
}

// IsPermutation reports whether p holds exactly the Gradients multiset.
func IsPermutation(p []string) bool {
	if len(p) != Size {
		return false
	}
	counts := make(map[string]int, Size)
	for _, g := range Gradients {
		counts[g]++
	}
	for _, s := range p {
		counts[s]--
		if counts[s] < 0 {
			return false
		}
	}
	return true
}

var hexColor = regexp.MustCompile(`#[0-9a-fA-F]{6}\b`)

// Stops returns the first and last hex colour of a gradient style. Both are
// empty when the style holds no hex colour; a single colour is returned
// twice.
func Stops(style string) (from, to string) {
	found := hexColor.FindAllString(style, -1)
	switch len(found) {
	case 0:
		return "", ""
	case 1:
		return found[0], found[0]
	default:
		return found[0], found[len(found)-1]
	}
}
