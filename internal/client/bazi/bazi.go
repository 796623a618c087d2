// Package bazi derives a simplified four-pillar chart and its five-elements
// tally from a birth timestamp.
//
// The arithmetic is a stable demo approximation, not a lunar-calendar
// computation: it is used only when no server-computed profile exists.
// Pillars are taken from the wall-clock fields of the supplied time, so the
// caller chooses the location.
package bazi

import (
	"time"

	"github.com/dmitrijs2005/fortunekeeper/internal/client/models"
)

// Stems is the 10-symbol heavenly stem cycle.
var Stems = [10]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

// Branches is the 12-symbol earthly branch cycle.
var Branches = [12]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

// stemElement maps a stem index to its element: stems come in yin/yang pairs.
var stemElement = [10]Element{Wood, Wood, Fire, Fire, Earth, Earth, Metal, Metal, Water, Water}

// Pillar is a stem-branch pair held as cycle indexes.
type Pillar struct {
	Stem   int
	Branch int
}

func newPillar(n int) Pillar {
	return Pillar{Stem: mod(n, len(Stems)), Branch: mod(n, len(Branches))}
}

func (p Pillar) StemSymbol() string   { return Stems[p.Stem] }
func (p Pillar) BranchSymbol() string { return Branches[p.Branch] }
func (p Pillar) Element() Element     { return stemElement[p.Stem] }

func (p Pillar) String() string {
	return p.StemSymbol() + p.BranchSymbol()
}

// FourPillars is the year/month/day/hour chart.
type FourPillars struct {
	Year  Pillar
	Month Pillar
	Day   Pillar
	Hour  Pillar
}

func (f FourPillars) All() [4]Pillar {
	return [4]Pillar{f.Year, f.Month, f.Day, f.Hour}
}

// ComputePillars applies the fixed modular rules:
//
//	year  = Y - 4
//	month = M + 2   (M zero-based)
//	day   = D + 5
//	hour  = H / 2
//
// each reduced mod 10 for the stem and mod 12 for the branch.
func ComputePillars(t time.Time) FourPillars {
	return FourPillars{
		Year:  newPillar(t.Year() - 4),
		Month: newPillar(int(t.Month()) - 1 + 2),
		Day:   newPillar(t.Day() + 5),
		Hour:  newPillar(t.Hour() / 2),
	}
}

// mod is the non-negative remainder, so years before 4 AD stay in range.
func mod(n, m int) int {
	r := n % m
	if r < 0 {
		r += m
	}
	return r
}

// Chart bundles everything derived from one timestamp.
type Chart struct {
	Pillars  FourPillars
	Tally    Tally
	Dominant Element
}

func NewChart(t time.Time) Chart {
	p := ComputePillars(t)
	tally := Count(p)
	return Chart{Pillars: p, Tally: tally, Dominant: tally.Dominant()}
}

// ElementCounts renders the tally keyed by the service's element symbols.
func (c Chart) ElementCounts() map[models.Element]int {
	out := make(map[models.Element]int, len(models.Elements))
	for e := Wood; e <= Water; e++ {
		out[e.Key()] = c.Tally[e]
	}
	return out
}
