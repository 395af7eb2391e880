package protocol

import (
	"regexp"
	"strconv"
	"strings"
)

const itemIDSeparator = "|"

var itemIDNumberSuffix = regexp.MustCompile(`\|[0-9]+$`)

// ItemID is the compound identifier of one item: the name of its hosting
// document plus the occurrence number of the instance within it.
type ItemID struct {
	// DocumentName is the name of the hosting document.
	DocumentName string
	// Number is the occurrence number, 0 for the first instance.
	Number int
}

// ParseItemID splits a raw identifier of the form "<document>|<number>". The
// numeric suffix is recognized only when it matches exactly; any other value
// is taken wholesale as the document name with occurrence 0. A failed number
// parse also falls back to 0 rather than erroring.
func ParseItemID(raw string) ItemID {
	if !itemIDNumberSuffix.MatchString(raw) {
		return ItemID{DocumentName: raw}
	}
	idx := strings.LastIndex(raw, itemIDSeparator)
	number, err := strconv.Atoi(raw[idx+1:])
	if err != nil || number < 0 {
		number = 0
	}
	return ItemID{DocumentName: raw[:idx], Number: number}
}

// String renders the identifier. A zero occurrence renders as the bare
// document name.
func (id ItemID) String() string {
	if id.Number == 0 {
		return id.DocumentName
	}
	return id.DocumentName + itemIDSeparator + strconv.Itoa(id.Number)
}
