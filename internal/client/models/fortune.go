package models

// Element is a five-elements key as used by the remote service (木火土金水).
type Element string

const (
	Wood  Element = "木"
	Fire  Element = "火"
	Earth Element = "土"
	Metal Element = "金"
	Water Element = "水"
)

// Elements lists the five elements in their canonical order.
var Elements = [5]Element{Wood, Fire, Earth, Metal, Water}

// Scores is the canonical score set shared by every domain.
type Scores struct {
	Overall    float64 `json:"overall"`
	Wealth     float64 `json:"wealth"`
	Career     float64 `json:"career"`
	Investment float64 `json:"investment"`
	Social     float64 `json:"social"`
	Lottery    float64 `json:"lottery"`
}

// GanZhi is a stem-branch label triple as rendered by the service.
type GanZhi struct {
	Year  string `json:"year"`
	Month string `json:"month"`
	Day   string `json:"day"`
}

// DailyFortune is the detailed report for one day.
type DailyFortune struct {
	UID      string              `json:"uid"`
	Date     string              `json:"date"`
	GanZhi   GanZhi              `json:"gz"`
	Scores   Scores              `json:"scores"`
	Text     string              `json:"text"`
	Sections map[string][]string `json:"sections"`
}

// ElementValue is one element with its normalized 0..5 strength.
type ElementValue struct {
	Element Element `json:"element"`
	Value   int     `json:"value"`
}

// TodaySummary is the free "today" card.
type TodaySummary struct {
	Date      string         `json:"date"`
	GanZhi    string         `json:"ganzhi"`
	Summary   string         `json:"summary"`
	Dominant  Element        `json:"dominant"`
	Trend     string         `json:"trend"`
	Strengths []ElementValue `json:"strengths"`
}

// TrendSeries holds per-element normalized values in date order.
type TrendSeries struct {
	Dates  []string          `json:"dates"`
	Values map[Element][]int `json:"values"`
}

// Lucky items attached to month and year reports.
type Lucky struct {
	Color     string `json:"color"`
	Stone     string `json:"stone"`
	Direction string `json:"direction"`
}

// Commentary is the generated text per score area.
type Commentary struct {
	Overall    string `json:"overall"`
	Wealth     string `json:"wealth"`
	Career     string `json:"career"`
	Investment string `json:"investment"`
	Social     string `json:"social"`
}

// TenGodNote is a key/description pair.
type TenGodNote struct {
	Key  string `json:"key"`
	Desc string `json:"desc"`
}

// MonthTenGods is the optional ruling ten-god of a month.
type MonthTenGods struct {
	Main TenGodNote  `json:"main"`
	Sub  *TenGodNote `json:"sub,omitempty"`
}

type MonthFortune struct {
	Month      string        `json:"month"`
	MonthType  string        `json:"month_type"`
	Scores     Scores        `json:"scores"`
	Commentary Commentary    `json:"ai"`
	Lucky      Lucky         `json:"lucky"`
	TenGods    *MonthTenGods `json:"month_shishen,omitempty"`
}

type YearFortune struct {
	Year       string     `json:"year"`
	YearType   string     `json:"year_type"`
	Scores     Scores     `json:"scores"`
	Commentary Commentary `json:"ai"`
	Lucky      Lucky      `json:"lucky"`
}

// DayTenGod is the optional ten-god hint on a calendar day.
type DayTenGod struct {
	Main       string  `json:"main"`
	Secondary  string  `json:"secondary,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

type CalendarDay struct {
	UID    string     `json:"uid"`
	Date   string     `json:"date"`
	Scores Scores     `json:"scores"`
	TenGod *DayTenGod `json:"ten_god,omitempty"`
}

// CalendarMonth maps YYYY-MM-DD to the day entry.
type CalendarMonth map[string]CalendarDay
