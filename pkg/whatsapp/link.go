// Package whatsapp builds wa.me deep links that open a chat with the
// restaurant and pre-fill the order message.
package whatsapp

import (
	"net/url"
	"strings"
)

var numberCleaner = strings.NewReplacer("+", "", " ", "", "-", "", "(", "", ")", "")

// Link returns a deep-link URL for the given destination number with the
// message URL-encoded into the text parameter. wa.me wants bare digits, so
// the number is stripped of formatting first.
func Link(number, message string) string {
	return "https://wa.me/" + numberCleaner.Replace(number) + "?text=" + url.QueryEscape(message)
}
