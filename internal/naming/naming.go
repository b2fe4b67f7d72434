// Package naming standardizes city names for file and folder output:
// pinyin-based file stems for Chinese names and sanitized folder names.
package naming

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-pinyin"
)

const unknownCity = "unknown_city"

var (
	asciiName      = regexp.MustCompile(`^[a-zA-Z\s\-\.]+$`)
	asciiSeparator = regexp.MustCompile(`[\s\-\.]+`)
	nonPinyinRune  = regexp.MustCompile(`[^a-z0-9_]`)
	underscoreRun  = regexp.MustCompile(`_+`)
)

// CityNameToPinyin converts a city name to a lowercase pinyin file stem.
// Pure ASCII names are normalized directly; Chinese names are transliterated
// character by character.
func CityNameToPinyin(cityName string) string {
	cityName = strings.TrimSpace(cityName)
	if cityName == "" {
		return unknownCity
	}

	if asciiName.MatchString(cityName) {
		name := asciiSeparator.ReplaceAllString(strings.ToLower(cityName), "_")
		name = strings.Trim(underscoreRun.ReplaceAllString(name, "_"), "_")
		if name == "" {
			return unknownCity
		}
		return name
	}

	args := pinyin.NewArgs()
	args.Fallback = func(r rune, a pinyin.Args) []string {
		return []string{string(r)}
	}

	parts := make([]string, 0)
	for _, syllables := range pinyin.Pinyin(cityName, args) {
		if len(syllables) > 0 {
			parts = append(parts, syllables[0])
		}
	}

	name := strings.ToLower(strings.Join(parts, "_"))
	name = nonPinyinRune.ReplaceAllString(name, "_")
	name = strings.Trim(underscoreRun.ReplaceAllString(name, "_"), "_")
	if name == "" {
		return unknownCity
	}
	return name
}

// SanitizeFolderName cleans a city name so it is safe as a directory name
func SanitizeFolderName(cityName string) string {
	cityName = strings.TrimSpace(cityName)
	if cityName == "" {
		return unknownCity
	}

	for _, invalid := range `<>:"/\|?*` {
		cityName = strings.ReplaceAll(cityName, string(invalid), "_")
	}

	cityName = strings.Trim(cityName, ". ")
	if cityName == "" {
		return unknownCity
	}
	return cityName
}
