package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
	repeatedSeparators  = regexp.MustCompile(`[_-]{2,}`)
)

// SanitizeFilenamePart keeps letters, digits, dot, dash and underscore.
// Anything else collapses into a single underscore.
// Example: "SO/24-25 #1042" -> "SO_24-25_1042"
func SanitizeFilenamePart(s string) string {
	s = unsafeFilenameChars.ReplaceAllString(strings.TrimSpace(s), "_")
	s = repeatedSeparators.ReplaceAllStringFunc(s, func(m string) string {
		return m[:1]
	})
	s = strings.Trim(s, "._-")
	return s
}

// OrderFormFilename builds the download name for an order form: order_<no>.<ext>
// An order number that sanitizes to nothing yields order.<ext>.
func OrderFormFilename(orderNo, ext string) string {
	ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
	name := SanitizeFilenamePart(orderNo)
	if name == "" {
		return fmt.Sprintf("order.%s", ext)
	}
	return fmt.Sprintf("order_%s.%s", name, ext)
}

// OrderFormPageFilename names one page image of a preview session
func OrderFormPageFilename(orderNo string, page, totalPages int, ext string) string {
	if totalPages <= 1 {
		return OrderFormFilename(orderNo, ext)
	}
	base := strings.TrimSuffix(OrderFormFilename(orderNo, ext), "."+strings.TrimPrefix(ext, "."))
	return fmt.Sprintf("%s_page_%d.%s", base, page, strings.TrimPrefix(ext, "."))
}
