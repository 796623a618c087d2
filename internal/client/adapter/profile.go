package adapter

import (
	"strings"

	"github.com/dmitrijs2005/fortunekeeper/internal/client/models"
)

// Profile adapts a member's stored birth chart. Only the top-level object is
// required; the embedded JSON strings (body_strength, wuxing_json,
// shishen_json) fall back to zero values when absent or unparsable.
func Profile(raw []byte) (*models.Profile, error) {
	root, err := parseObject("profile", raw)
	if err != nil {
		return nil, err
	}

	p := models.EmptyProfile()

	p.Birth.Date = str(root, "birth_date", "")
	if t := str(root, "birth_time", ""); len(t) >= 5 {
		p.Birth.Time = t[:5]
	} else {
		p.Birth.Time = t
	}
	if str(root, "gender", "") == "女" {
		p.Birth.Gender = "女"
	}

	schedule := splitList(str(root, "schedule", ""))
	p.Schedule = models.Schedule{
		Daily:   schedule["日"],
		Monthly: schedule["月"],
	}

	sections := splitList(str(root, "section", ""))
	p.Notify = models.Notify{
		Overall:    sections["整體"],
		Wealth:     sections["財運"],
		Career:     sections["工作運"],
		Investment: sections["投資"],
		Social:     sections["人際"],
		Lottery:    sections["彩券"],
	}

	if bs, ok := embedded(root, "body_strength"); ok {
		p.DayMasterStrength = models.DayMasterStrength{
			DayMaster: str(bs, "day_master", ""),
			Support:   num(bs, "support"),
			Drain:     num(bs, "drain"),
			Ratio:     num(bs, "ratio"),
			Result:    str(bs, "result", models.StrengthBalanced),
		}
	}
	if wx, ok := embedded(root, "wuxing_json"); ok {
		for _, e := range models.Elements {
			p.Elements[e] = int(num(wx, string(e)))
		}
	}
	if tg, ok := embedded(root, "shishen_json"); ok {
		for _, g := range models.TenGodNames {
			p.TenGods[g] = int(num(tg, g))
		}
	}
	return p, nil
}

func splitList(s string) map[string]bool {
	out := make(map[string]bool)
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out[item] = true
		}
	}
	return out
}
