package ui

import (
	"html/template"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Label turns an aspect or type key like performance_bugs into Performance Bugs
func Label(key string) string {
	return titleCaser.String(strings.ReplaceAll(key, "_", " "))
}

// Funcs is the template function map
func Funcs() template.FuncMap {
	return template.FuncMap{
		"label":   Label,
		"date":    formatDate,
		"percent": percent,
		"json":    toJS,
		"add":     func(a, b int) int { return a + b },
		"sub":     func(a, b int) int { return a - b },
		"pageURL": PageURL,
		"has":     has,
		"ratio":   ratio,
	}
}

func formatDate(v any) string {
	var t time.Time
	switch x := v.(type) {
	case time.Time:
		t = x
	case interface{ Unix() int64 }:
		t = time.Unix(x.Unix(), 0).UTC()
	default:
		return ""
	}
	if t.IsZero() {
		return "unknown"
	}
	return t.Format("Jan 2, 2006")
}

// percent renders a 0..1 score
func percent(f float64) string {
	return strconv.Itoa(int(math.Round(f*100))) + "%"
}

func toJS(v any) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}

// PageURL rewrites the page parameter of q onto path
func PageURL(path string, q url.Values, page int) string {
	c := url.Values{}
	for k, v := range q {
		c[k] = append([]string(nil), v...)
	}
	if page <= 1 {
		c.Del("page")
	} else {
		c.Set("page", strconv.Itoa(page))
	}
	if enc := c.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}

func has(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// ratio is part/total as a CSS percentage, 0 for an empty total
func ratio(part, total int64) string {
	if total <= 0 {
		return "0%"
	}
	return strconv.FormatFloat(float64(part)*100/float64(total), 'f', 1, 64) + "%"
}
