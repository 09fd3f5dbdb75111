package dashboard

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// DefaultInterval is the ads overview window in days when none is selected.
const DefaultInterval = 30

// NoAdsMessage replaces the ad list when nothing ran in the window.
const NoAdsMessage = "No data for selected interval."

// IntervalOption is one entry of the interval selector.
type IntervalOption struct {
	Days     int    `json:"days"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// Intervals lists the supported windows in days.
func Intervals() []int { return []int{7, 30, 90} }

// ValidInterval reports whether days is one of Intervals.
func ValidInterval(days int) bool {
	return slices.Contains(Intervals(), days)
}

// AdCard is one rendered ad.
type AdCard struct {
	Name        string `json:"name"`
	Impressions string `json:"impressions"`
	Spend       string `json:"spend"`
}

// AdsOverview is the ads card for one interval.
type AdsOverview struct {
	Interval     int              `json:"interval"`
	Options      []IntervalOption `json:"options"`
	Items        []AdCard         `json:"items"`
	EmptyMessage string           `json:"empty_message,omitempty"`
}

// FilterAds keeps ads that started on or before today and stopped on or after
// today minus days. Ads with unparsable dates are dropped.
func FilterAds(ads []Ad, days int, today time.Time) []Ad {
	cutoff := today.AddDate(0, 0, -days)
	var out []Ad
	for _, ad := range ads {
		start, okStart := parseAdDate(ad.DateStart)
		stop, okStop := parseAdDate(ad.DateStop)
		if !okStart || !okStop {
			continue
		}
		if !start.After(today) && !stop.Before(cutoff) {
			out = append(out, ad)
		}
	}
	return out
}

// Overview builds the ads card. Unsupported intervals fall back to
// DefaultInterval.
func Overview(ads []Ad, days int, today time.Time) AdsOverview {
	if !ValidInterval(days) {
		days = DefaultInterval
	}
	overview := AdsOverview{Interval: days}
	for _, d := range Intervals() {
		overview.Options = append(overview.Options, IntervalOption{
			Days:     d,
			Label:    "Last " + strconv.Itoa(d) + " days",
			Selected: d == days,
		})
	}
	for _, ad := range FilterAds(ads, days, today) {
		overview.Items = append(overview.Items, AdCard{
			Name:        ad.Name,
			Impressions: groupDigits(ad.Impressions),
			Spend:       groupDigits(ad.Spend),
		})
	}
	if len(overview.Items) == 0 {
		overview.EmptyMessage = NoAdsMessage
	}
	return overview
}

func groupDigits(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "0"
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	return humanize.Commaf(f)
}

var adDateLayouts = []string{time.DateOnly, time.RFC3339, time.DateTime}

func parseAdDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range adDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
