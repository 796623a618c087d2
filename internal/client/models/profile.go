package models

// Strength verdicts for the day master.
const (
	StrengthFollowStrong = "從強"
	StrengthStrong       = "身強"
	StrengthBalanced     = "一般"
	StrengthWeak         = "身弱"
	StrengthFollowWeak   = "從弱"
)

type Birth struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	Gender string `json:"gender"`
}

type Schedule struct {
	Daily   bool `json:"daily"`
	Monthly bool `json:"monthly"`
}

// Notify selects which score areas the member subscribed to.
type Notify struct {
	Overall    bool `json:"overall"`
	Wealth     bool `json:"wealth"`
	Career     bool `json:"career"`
	Investment bool `json:"invest"`
	Social     bool `json:"social"`
	Lottery    bool `json:"lottery"`
}

type DayMasterStrength struct {
	DayMaster string  `json:"day_master"`
	Support   float64 `json:"support"`
	Drain     float64 `json:"drain"`
	Ratio     float64 `json:"ratio"`
	Result    string  `json:"result"`
}

// Profile is the server-computed birth chart of a member.
type Profile struct {
	Birth             Birth             `json:"birth"`
	Schedule          Schedule          `json:"schedule"`
	Notify            Notify            `json:"notify"`
	DayMasterStrength DayMasterStrength `json:"day_master_strength"`
	Elements          map[Element]int   `json:"wuxing"`
	TenGods           map[string]int    `json:"ten_god"`
}

// TenGodNames lists the ten gods in display order.
var TenGodNames = [10]string{"比肩", "劫財", "食神", "傷官", "偏財", "正財", "七殺", "正官", "偏印", "正印"}

// EmptyProfile is the fallback used when no profile is linked or the
// service answer is unusable.
func EmptyProfile() *Profile {
	p := &Profile{
		Birth:             Birth{Gender: "男"},
		DayMasterStrength: DayMasterStrength{Result: StrengthBalanced},
		Elements:          make(map[Element]int, len(Elements)),
		TenGods:           make(map[string]int, len(TenGodNames)),
	}
	for _, e := range Elements {
		p.Elements[e] = 0
	}
	for _, g := range TenGodNames {
		p.TenGods[g] = 0
	}
	return p
}
