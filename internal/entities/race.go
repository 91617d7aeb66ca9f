package entities

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Race is a strain category
type Race string

// Known races
const (
	RaceIndica Race = "indica"
	RaceSativa Race = "sativa"
	RaceHybrid Race = "hybrid"
)

// KnownRaces lists the races with a dedicated icon
func KnownRaces() []Race {
	return []Race{RaceIndica, RaceSativa, RaceHybrid}
}

// DefaultIcon is used for races without a dedicated icon
const DefaultIcon = "/static/icons/leaf.svg"

var raceIcons = map[Race]string{
	RaceIndica: "/static/icons/indica.svg",
	RaceSativa: "/static/icons/sativa.svg",
	RaceHybrid: "/static/icons/hybrid.svg",
}

// IconFor returns the icon path for a race, case-insensitively
func IconFor(race string) string {
	if icon, ok := raceIcons[Race(strings.ToLower(strings.TrimSpace(race)))]; ok {
		return icon
	}
	return DefaultIcon
}

// CapitalizeFirst upper-cases the first character and leaves the rest as is
func CapitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
