package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateSlug validates a website slug used in published URLs.
//
// The validation rules are intentionally conservative:
//   - No empty slugs
//   - Lowercase letters, digits and single hyphens only
//   - No leading or trailing hyphen
//   - Maximum length of 64 characters
func ValidateSlug(slug string) error {
	if slug == "" {
		return New(ErrCodeInvalidInput, "slug cannot be empty")
	}
	if len(slug) > 64 {
		return New(ErrCodeInvalidInput, "slug too long (max 64 characters)")
	}
	if !slugRegex.MatchString(slug) {
		return New(ErrCodeInvalidInput, "invalid slug: %q", slug)
	}
	return nil
}

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidateComponentID validates an id supplied from outside the engine
// (HTTP path parameters, CLI arguments).
func ValidateComponentID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "component id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "component id too long (max 128 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "component id contains invalid characters")
		}
	}
	return nil
}

// hexColorRegex matches #rgb, #rrggbb and #rrggbbaa.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ValidateColor accepts hex colors, theme references and a small set of CSS
// functional notations. Anything else is rejected so that raw values cannot
// break out of an inline style declaration.
func ValidateColor(value string) error {
	v := strings.TrimSpace(value)
	switch {
	case v == "":
		return New(ErrCodeValidation, "color cannot be empty")
	case hexColorRegex.MatchString(v):
		return nil
	case strings.HasPrefix(v, "theme:"):
		return nil
	case v == "transparent" || v == "inherit" || v == "currentColor":
		return nil
	case (strings.HasPrefix(v, "rgb(") || strings.HasPrefix(v, "rgba(") || strings.HasPrefix(v, "hsl(")) &&
		strings.HasSuffix(v, ")") && !strings.ContainsAny(v, ";{}<>\"'"):
		return nil
	}
	return New(ErrCodeValidation, "invalid color: %q", value)
}

// cssLengthRegex matches plain CSS lengths such as 0, 2rem, 12px, 50%.
var cssLengthRegex = regexp.MustCompile(`^(0|\d+(\.\d+)?(px|rem|em|%|vh|vw))$`)

// ValidateLength validates a single CSS length value.
func ValidateLength(value string) error {
	v := strings.TrimSpace(value)
	if v == "" {
		return New(ErrCodeValidation, "length cannot be empty")
	}
	if strings.HasPrefix(v, "theme:") || cssLengthRegex.MatchString(v) {
		return nil
	}
	return New(ErrCodeValidation, "invalid length: %q", value)
}

// ValidateURL validates a URL string for safety.
// It accepts http(s), mailto, tel, in-page anchors, site-relative paths and
// data:image URIs produced by image uploads.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	lower := strings.ToLower(strings.TrimSpace(rawURL))
	for _, prefix := range []string{"http://", "https://", "mailto:", "tel:", "#", "/", "data:image/"} {
		if strings.HasPrefix(lower, prefix) {
			if prefix == "/" && strings.HasPrefix(lower, "//") {
				break
			}
			return nil
		}
	}
	return New(ErrCodeInvalidInput, "URL must use http, https, mailto or tel scheme")
}

// Required returns a validation failure when value is blank.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return Validation(field, "%s is required", field)
	}
	return nil
}
