package adapter

import (
	"github.com/tidwall/gjson"

	"github.com/dmitrijs2005/fortunekeeper/internal/client/models"
)

// NoLucky is the placeholder a year report shows for missing lucky items.
const NoLucky = "—"

func commentary(r gjson.Result) models.Commentary {
	return models.Commentary{
		Overall:    str(r, "ai.overall", ""),
		Wealth:     str(r, "ai.wealth", ""),
		Career:     str(r, "ai.career", ""),
		Investment: str(r, "ai.invest", ""),
		Social:     str(r, "ai.relation", ""),
	}
}

func lucky(r gjson.Result, def string) models.Lucky {
	return models.Lucky{
		Color:     str(r, "lucky.color", def),
		Stone:     str(r, "lucky.stone", def),
		Direction: str(r, "lucky.direction", def),
	}
}

// Month adapts a month report. The scores object is required.
func Month(raw []byte) (*models.MonthFortune, error) {
	root, err := parseObject("month", raw)
	if err != nil {
		return nil, err
	}
	scores, err := requireObject("month", root, "scores")
	if err != nil {
		return nil, err
	}

	m := &models.MonthFortune{
		Month:      str(root, "month", ""),
		MonthType:  str(root, "month_type", ""),
		Scores:     labelledScores(scores),
		Commentary: commentary(root),
		Lucky:      lucky(root, ""),
	}

	if tg := root.Get("month_shishen"); tg.IsObject() {
		m.TenGods = &models.MonthTenGods{
			Main: models.TenGodNote{
				Key:  str(tg, "main.key", ""),
				Desc: str(tg, "main.desc", ""),
			},
		}
		if sub := tg.Get("sub"); sub.IsObject() {
			m.TenGods.Sub = &models.TenGodNote{
				Key:  str(sub, "key", ""),
				Desc: str(sub, "desc", ""),
			}
		}
	}
	return m, nil
}

// Year adapts a year report. The scores object is required; missing lucky
// items are shown as NoLucky.
func Year(raw []byte) (*models.YearFortune, error) {
	root, err := parseObject("year", raw)
	if err != nil {
		return nil, err
	}
	scores, err := requireObject("year", root, "scores")
	if err != nil {
		return nil, err
	}

	return &models.YearFortune{
		Year:       str(root, "year", ""),
		YearType:   str(root, "year_type", ""),
		Scores:     labelledScores(scores),
		Commentary: commentary(root),
		Lucky:      lucky(root, NoLucky),
	}, nil
}
