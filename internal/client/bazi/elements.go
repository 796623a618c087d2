package bazi

import "github.com/dmitrijs2005/fortunekeeper/internal/client/models"

// Element is one of the five elements. The numeric order is also the
// tie-break priority used by Dominant: lower values win.
type Element int

const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

var elementNames = [5]string{"wood", "fire", "earth", "metal", "water"}

func (e Element) String() string {
	if e < Wood || e > Water {
		return "unknown"
	}
	return elementNames[e]
}

// Key returns the symbol used in service payloads (木火土金水).
func (e Element) Key() models.Element {
	return models.Elements[e]
}

// Tally counts stems per element.
type Tally [5]int

// Count increments one element per pillar stem, so the total is always 4.
func Count(p FourPillars) Tally {
	var t Tally
	for _, pillar := range p.All() {
		t[pillar.Element()]++
	}
	return t
}

func (t Tally) Total() int {
	n := 0
	for _, c := range t {
		n += c
	}
	return n
}

// Dominant returns the element with the highest count. Ties go to the
// element that comes first in wood, fire, earth, metal, water order.
func (t Tally) Dominant() Element {
	best := Wood
	for e := Fire; e <= Water; e++ {
		if t[e] > t[best] {
			best = e
		}
	}
	return best
}
