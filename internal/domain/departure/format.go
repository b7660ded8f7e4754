package departure

import (
	"fmt"
	"time"
)

// FormatDuration renders whole minutes as "45 mins", "1 hour", "2 hours 30 mins".
// The minute label stays plural even for 1; only the hour label singularizes.
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d mins", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d %s", hours, plural(hours, "hour", "hours"))
	}
	return fmt.Sprintf("%d %s %d mins", hours, plural(hours, "hour", "hours"), mins)
}

// FormatTime renders a 12-hour clock time such as "2:30 PM".
func FormatTime(t time.Time, loc *time.Location) string {
	return in(t, loc).Format("3:04 PM")
}

// FormatDate renders e.g. "Mon, Oct 20".
func FormatDate(t time.Time, loc *time.Location) string {
	return in(t, loc).Format("Mon, Jan 2")
}

func FormatDateTime(t time.Time, loc *time.Location) string {
	return FormatDate(t, loc) + " at " + FormatTime(t, loc)
}

// MinutesBetween returns the floored number of minutes from a to b.
func MinutesBetween(a, b time.Time) int {
	d := b.Sub(a)
	m := d / time.Minute
	if d%time.Minute < 0 {
		m--
	}
	return int(m)
}

func IsPast(t, now time.Time) bool {
	return t.Before(now)
}

// IsWithinMinutes reports whether t falls in [now, now+minutes].
func IsWithinMinutes(t time.Time, minutes int, now time.Time) bool {
	threshold := now.Add(time.Duration(minutes) * time.Minute)
	return !t.After(threshold) && !t.Before(now)
}

// TimeRemaining renders the countdown to t, e.g. "in 2 hours 15 mins".
func TimeRemaining(t, now time.Time) string {
	if t.Before(now) {
		return pastDue
	}
	return "in " + FormatDuration(MinutesBetween(now, t))
}

// RelativeTime renders t relative to now: "Just now", "in 5 minutes", "2 hours ago", "in 3 days".
func RelativeTime(t, now time.Time) string {
	d := t.Sub(now)
	future := d > 0
	if d < 0 {
		d = -d
	}
	minutes := int(d / time.Minute)
	if minutes < 1 {
		return "Just now"
	}

	var n int
	var unit string
	switch hours := minutes / 60; {
	case minutes < 60:
		n, unit = minutes, plural(minutes, "minute", "minutes")
	case hours < 24:
		n, unit = hours, plural(hours, "hour", "hours")
	default:
		days := hours / 24
		n, unit = days, plural(days, "day", "days")
	}
	if future {
		return fmt.Sprintf("in %d %s", n, unit)
	}
	return fmt.Sprintf("%d %s ago", n, unit)
}

var currencySymbols = map[string]string{
	"GBP": "£",
	"USD": "$",
	"EUR": "€",
}

// FormatCurrency renders an amount in minor units, e.g. 4550 GBP as "£45.50".
// Unknown currency codes are used verbatim as the prefix.
func FormatCurrency(minor int64, currency string) string {
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = currency
	}
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%s%d.%02d", sign, symbol, minor/100, minor%100)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func in(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		return t.UTC()
	}
	return t.In(loc)
}
