package disk

import (
	"fmt"
	"strconv"

	bosherr "github.com/cloudfoundry/bosh-utils/errors"

	"github.com/cloudfoundry/disk-reconciler/tabular"
)

// Partition is one existing partition as reported by parted, normalized
// into the table's unit. End has its end-of-device sentinel resolved
// against MaxSize at construction; records are immutable and replaced
// wholesale on the next table read.
type Partition struct {
	Number  int    `json:"number"`
	Start   Offset `json:"start"`
	End     Offset `json:"end"`
	MaxSize Offset `json:"max_size"`
}

// NewPartition builds a Partition from one parsed table row, sharing the
// owning table's size as MaxSize.
func NewPartition(record tabular.Record, maxSize Offset) (Partition, error) {
	number, err := strconv.Atoi(record["Number"])
	if err != nil {
		return Partition{}, bosherr.WrapErrorf(err, "Parsing partition number from `%s'", record["Number"])
	}

	start, err := ParseOffset(record["Start"])
	if err != nil {
		return Partition{}, bosherr.WrapErrorf(err, "Parsing start of partition %d", number)
	}

	end, err := ParseOffset(record["End"])
	if err != nil {
		return Partition{}, bosherr.WrapErrorf(err, "Parsing end of partition %d", number)
	}

	return Partition{
		Number:  number,
		Start:   start,
		End:     end.Resolve(maxSize),
		MaxSize: maxSize,
	}, nil
}

// Same reports whether the candidate range already describes this
// partition, within 2-decimal rounding.
func (p Partition) Same(start, end Offset) bool {
	end = end.Resolve(p.MaxSize)
	return p.Start.Equals(start) && p.End.Equals(end)
}

// Overlaps reports whether the candidate range conflicts with this
// partition. Ranges that merely share a boundary are adjacent, not
// overlapping.
func (p Partition) Overlaps(start, end Offset) bool {
	end = end.Resolve(p.MaxSize)

	if start.Equals(p.End) || end.Equals(p.Start) {
		return false
	}

	return end.rounded() >= p.Start.rounded() && start.rounded() <= p.End.rounded()
}

func (p Partition) String() string {
	return fmt.Sprintf("[Number: %d, Start: %v, End: %v]", p.Number, float64(p.Start), float64(p.End))
}
