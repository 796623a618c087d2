package adapter

import (
	"math"
	"sort"

	"github.com/tidwall/gjson"

	"github.com/dmitrijs2005/fortunekeeper/internal/client/models"
)

// MaxStrength caps normalized element values.
const MaxStrength = 5

// normalize rounds a raw element weight onto the 0..MaxStrength scale.
func normalize(v float64) int {
	n := int(math.Round(v))
	if n < 0 {
		return 0
	}
	if n > MaxStrength {
		return MaxStrength
	}
	return n
}

// DateRange adapts the multi-day element report into the today card and the
// per-element trend. The data object is required and must hold at least one
// day. today selects the card; when that date is absent the latest date is
// used instead.
func DateRange(raw []byte, today string) (*models.TodaySummary, *models.TrendSeries, error) {
	root, err := parseObject("range", raw)
	if err != nil {
		return nil, nil, err
	}
	data, err := requireObject("range", root, "data")
	if err != nil {
		return nil, nil, err
	}

	days := make(map[string]gjson.Result)
	data.ForEach(func(k, v gjson.Result) bool {
		if v.IsObject() {
			days[k.String()] = v
		}
		return true
	})
	if len(days) == 0 {
		return nil, nil, shapeErr("range", "data", "no days")
	}

	dates := make([]string, 0, len(days))
	for d := range days {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	trend := &models.TrendSeries{
		Dates:  dates,
		Values: make(map[models.Element][]int, len(models.Elements)),
	}
	for _, d := range dates {
		for _, e := range models.Elements {
			trend.Values[e] = append(trend.Values[e], normalize(num(days[d], "wuxing."+string(e))))
		}
	}

	pick, ok := days[today]
	if !ok {
		pick = days[dates[len(dates)-1]]
	}
	return todaySummary(pick), trend, nil
}

func todaySummary(d gjson.Result) *models.TodaySummary {
	s := &models.TodaySummary{
		Date:    str(d, "date", ""),
		GanZhi:  str(d, "ganzhi.year", "") + "｜" + str(d, "ganzhi.day", ""),
		Summary: str(d, "summary", ""),
		Trend:   str(d, "trendDirection", "flat"),
	}
	for _, e := range models.Elements {
		s.Strengths = append(s.Strengths, models.ElementValue{Element: e, Value: normalize(num(d, "wuxing."+string(e)))})
	}

	s.Dominant = models.Element(str(d, "dominant", ""))
	if s.Dominant == "" {
		s.Dominant = strongest(s.Strengths)
	}
	return s
}

// strongest picks the highest value; earlier elements win ties.
func strongest(values []models.ElementValue) models.Element {
	best := values[0]
	for _, v := range values[1:] {
		if v.Value > best.Value {
			best = v
		}
	}
	return best.Element
}
