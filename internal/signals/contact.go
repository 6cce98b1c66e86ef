package signals

import (
	"regexp"

	"github.com/jonathan/resume-scorer/internal/types"
)

var (
	emailPattern = regexp.MustCompile(`\S+@\S+`)
	phonePattern = regexp.MustCompile(`\b\d{10,15}\b`)
	linkPattern  = regexp.MustCompile(`https?://[^\s]+`)
)

// Contact collects e-mail addresses, phone numbers and links, each de-duplicated
// in order of first appearance.
func Contact(text string) types.ContactInfo {
	return types.ContactInfo{
		Emails: uniqueInOrder(emailPattern.FindAllString(text, -1)),
		Phones: uniqueInOrder(phonePattern.FindAllString(text, -1)),
		Links:  uniqueInOrder(linkPattern.FindAllString(text, -1)),
	}
}
