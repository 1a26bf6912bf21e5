package disk

import (
	"math"
	"strconv"
	"strings"

	bosherr "github.com/cloudfoundry/bosh-utils/errors"
)

// Offset is a position or size on a block device, expressed in whatever
// unit the partition table was read with. A negative Offset is a sentinel
// meaning "through the end of the device" until resolved against the
// device size.
type Offset float64

// ParseOffset interprets a raw parted field as a number. parted appends
// unit suffixes to values (e.g. "500MB"), so every rune outside the
// numeric set is stripped before parsing.
func ParseOffset(raw string) (Offset, error) {
	var numeric strings.Builder
	for _, r := range raw {
		if r == '.' || r == '-' || r == '+' || (r >= '0' && r <= '9') {
			numeric.WriteRune(r)
		}
	}

	value, err := strconv.ParseFloat(numeric.String(), 64)
	if err != nil {
		return 0, bosherr.Errorf("Parsing numeric value from `%s'", raw)
	}

	return Offset(value), nil
}

// Resolve replaces the end-of-device sentinel with the device size.
func (o Offset) Resolve(maxSize Offset) Offset {
	if o < 0 {
		return maxSize
	}
	return o
}

// Equals compares offsets rounded to 2 decimal places, absorbing
// unit-conversion drift between successive parted reports.
func (o Offset) Equals(other Offset) bool {
	return o.rounded() == other.rounded()
}

func (o Offset) rounded() float64 {
	return math.Round(float64(o)*100) / 100
}
