package adapter

import (
	"math"

	"github.com/tidwall/gjson"

	"github.com/dmitrijs2005/fortunekeeper/internal/client/models"
)

// parseObject validates raw and returns its top-level object.
func parseObject(domain string, raw []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, shapeErr(domain, "", "invalid json")
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return gjson.Result{}, shapeErr(domain, "", "expected object")
	}
	return root, nil
}

func requireObject(domain string, root gjson.Result, path string) (gjson.Result, error) {
	r := root.Get(path)
	if !r.IsObject() {
		return gjson.Result{}, shapeErr(domain, path, "required object missing")
	}
	return r, nil
}

func requireArray(domain string, root gjson.Result, path string) (gjson.Result, error) {
	r := root.Get(path)
	if !r.IsArray() {
		return gjson.Result{}, shapeErr(domain, path, "required array missing")
	}
	return r, nil
}

// str returns the string at path, or def when absent or null.
func str(r gjson.Result, path, def string) string {
	v := r.Get(path)
	if !v.Exists() || v.Type == gjson.Null {
		return def
	}
	return v.String()
}

// num reads numbers and numeric strings alike; anything else is 0.
func num(r gjson.Result, path string) float64 {
	v := r.Get(path)
	switch v.Type {
	case gjson.Number, gjson.String:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	default:
		return 0
	}
}

// embedded resolves a field that may hold either an object or a string of
// JSON. The second result is false when nothing usable is there.
func embedded(r gjson.Result, path string) (gjson.Result, bool) {
	v := r.Get(path)
	switch {
	case v.IsObject():
		return v, true
	case v.Type == gjson.String && gjson.Valid(v.String()):
		inner := gjson.Parse(v.String())
		return inner, inner.IsObject()
	default:
		return gjson.Result{}, false
	}
}

// labelled score keys used by month/year/daily payloads.
func labelledScores(r gjson.Result) models.Scores {
	return models.Scores{
		Overall:    num(r, "overall"),
		Wealth:     num(r, "wealth"),
		Career:     num(r, "career"),
		Investment: num(r, "invest"),
		Social:     num(r, "relation"),
		Lottery:    num(r, "lottery"),
	}
}

// localizedScores translates the calendar payload's Chinese score keys.
func localizedScores(r gjson.Result) models.Scores {
	return models.Scores{
		Overall:    num(r, "整體"),
		Wealth:     num(r, "財運"),
		Career:     num(r, "工作運"),
		Investment: num(r, "投資"),
		Social:     num(r, "人際"),
		Lottery:    num(r, "彩券"),
	}
}
