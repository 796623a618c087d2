package adapter

import (
	"strconv"

	"github.com/dmitrijs2005/fortunekeeper/internal/client/models"
)

// CalendarMonth adapts the per-day list of a month. The days array is
// required and every day must carry its date.
func CalendarMonth(raw []byte) (models.CalendarMonth, error) {
	root, err := parseObject("calendar", raw)
	if err != nil {
		return nil, err
	}
	days, err := requireArray("calendar", root, "days")
	if err != nil {
		return nil, err
	}

	out := make(models.CalendarMonth)
	for i, d := range days.Array() {
		date := str(d, "date", "")
		if date == "" {
			return nil, shapeErr("calendar", "days."+strconv.Itoa(i)+".date", "required field missing")
		}
		day := models.CalendarDay{
			UID:    str(d, "uid", ""),
			Date:   date,
			Scores: localizedScores(d.Get("scores")),
		}
		if main := d.Get("meta.shishen.main"); main.IsObject() {
			day.TenGod = &models.DayTenGod{
				Main:       str(main, "main", ""),
				Secondary:  str(main, "secondary", ""),
				Confidence: num(main, "confidence"),
			}
		}
		out[date] = day
	}
	return out, nil
}
