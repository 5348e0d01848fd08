package domain

import (
	"regexp"
	"strings"
)

var provinceAbbreviations = map[string]string{
	"Ontario":                   "ON",
	"Quebec":                    "QC",
	"British Columbia":          "BC",
	"Alberta":                   "AB",
	"Manitoba":                  "MB",
	"Saskatchewan":              "SK",
	"Nova Scotia":               "NS",
	"New Brunswick":             "NB",
	"Prince Edward Island":      "PE",
	"Newfoundland and Labrador": "NL",
	"Northwest Territories":     "NT",
	"Yukon":                     "YT",
	"Nunavut":                   "NU",
}

var (
	cityProvincePattern = regexp.MustCompile(`^([A-Za-z\s]+)[, ]*([A-Za-z\s]+)\.?$`)
	phoneStripPattern   = regexp.MustCompile(`[^0-9xXeEtT]`)
	phonePartsPattern   = regexp.MustCompile(`^(\d{10})([xXeEtT]*)(\d*)`)
	phoneSearchPattern  = regexp.MustCompile(`\d{3}[\s-]?\d{3}[\s-]?\d{4}([xXeEtT]*\d+)?`)
	whitespacePattern   = regexp.MustCompile(`\s+`)
)

// FormatCityProvince uppercases a "City, Province" line and abbreviates
// a full province name to its two-letter code. Input that does not match
// the expected shape is returned unchanged.
func FormatCityProvince(cityProvince string) string {
	match := cityProvincePattern.FindStringSubmatch(strings.TrimSpace(cityProvince))
	if match == nil {
		return cityProvince
	}

	city := strings.ToUpper(strings.TrimSpace(match[1]))
	province := strings.TrimSpace(match[2])
	if abbr, ok := provinceAbbreviations[province]; ok {
		province = abbr
	}
	province = strings.ToUpper(province)
	if len(province) > 2 {
		province = province[:2]
	}

	return city + ", " + province + "."
}

// FormatPhoneNumber normalizes a ten-digit phone number to
// "(XXX) XXX-XXXX", keeping a trailing extension when one is marked.
// Values that do not contain a leading ten-digit run are returned with
// only the non-phone characters stripped.
func FormatPhoneNumber(phone string) string {
	stripped := phoneStripPattern.ReplaceAllString(phone, "")

	match := phonePartsPattern.FindStringSubmatch(stripped)
	if match == nil {
		return stripped
	}

	main := match[1]
	extension := match[3]

	formatted := "(" + main[:3] + ") " + main[3:6] + "-" + main[6:]
	if extension != "" {
		formatted += " ext. " + extension
	}

	return formatted
}

// NormalizeAttentionLine collapses whitespace in a contact line, pulls
// any embedded phone number to the end in formatted form, and guarantees
// an "ATTN: " prefix. The second return reports whether the prefix was
// already present.
func NormalizeAttentionLine(text string) (string, bool) {
	cleaned := whitespacePattern.ReplaceAllString(strings.TrimSpace(text), " ")
	hadPrefix := strings.HasPrefix(cleaned, "ATTN:")

	cleaned = strings.TrimSpace(strings.ReplaceAll(cleaned, "ATTN:", ""))

	if phone := phoneSearchPattern.FindString(cleaned); phone != "" {
		formatted := FormatPhoneNumber(phone)
		cleaned = strings.TrimSpace(strings.ReplaceAll(cleaned, phone, ""))
		cleaned = strings.TrimSpace(cleaned + " " + formatted)
	}

	return "ATTN: " + cleaned, hadPrefix
}
