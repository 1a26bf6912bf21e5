package disk

import (
	"fmt"
	"strings"

	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshsys "github.com/cloudfoundry/bosh-utils/system"

	"github.com/cloudfoundry/disk-reconciler/tabular"
)

// Table is an immutable snapshot of a device's partition layout. A new
// snapshot is produced by every TableReader.Read; snapshots are never
// mutated in place.
type Table struct {
	Device     string
	Unit       string
	Label      string
	Size       string
	Partitions []Partition
}

// Empty reports whether the snapshot carries no label and no partitions,
// which is what a fresh or unlabeled disk looks like.
func (t Table) Empty() bool {
	return t.Label == "" && len(t.Partitions) == 0
}

type TableReader struct {
	cmdRunner boshsys.CmdRunner
	logger    boshlog.Logger
	logTag    string
}

func NewTableReader(cmdRunner boshsys.CmdRunner, logger boshlog.Logger) TableReader {
	return TableReader{
		cmdRunner: cmdRunner,
		logger:    logger,
		logTag:    "TableReader",
	}
}

// Read asks parted to print the device's partition table in the given
// unit. A failing report is not an error: parted exits non-zero for
// unlabeled or freshly attached disks, so the reader returns an empty
// snapshot and lets callers test for emptiness. A report that succeeds
// but cannot be parsed is an error.
func (r TableReader) Read(device, unit string) (Table, error) {
	table := Table{Device: device, Unit: unit, Partitions: []Partition{}}

	stdout, _, _, err := r.cmdRunner.RunCommand("parted", device, "unit", unit, "print")
	if err != nil {
		r.logger.Debug(r.logTag, "Reading partition table of `%s' failed, treating as empty: %s", device, err.Error())
		return table, nil
	}

	lines := strings.Split(stdout, "\n")

	table.Label = readField(lines, "Partition Table:")
	table.Size = readField(lines, fmt.Sprintf("Disk %s:", device))

	maxSize := Offset(0)
	if table.Size != "" {
		maxSize, err = ParseOffset(table.Size)
		if err != nil {
			return Table{}, bosherr.WrapErrorf(err, "Parsing size of `%s'", device)
		}
	}

	for _, record := range tabular.Parse(tableSection(lines)) {
		partition, err := NewPartition(record, maxSize)
		if err != nil {
			return Table{}, bosherr.WrapErrorf(err, "Parsing partition table of `%s'", device)
		}
		table.Partitions = append(table.Partitions, partition)
	}

	return table, nil
}

// readField returns the value after "key: " on the first line containing
// the key, or an empty string when no line matches.
func readField(lines []string, key string) string {
	for _, line := range lines {
		if !strings.Contains(line, key) {
			continue
		}

		split := strings.SplitN(line, ": ", 2)
		if len(split) < 2 {
			return ""
		}
		return strings.TrimSpace(split[1])
	}

	return ""
}

// tableSection cuts the fixed-width section out of a parted report. It
// begins at the line whose first token is the partition-number column
// title and ends at the first blank line.
func tableSection(lines []string) []string {
	section := []string{}
	for _, line := range lines {
		if len(section) == 0 {
			fields := strings.Fields(line)
			if len(fields) > 0 && fields[0] == "Number" {
				section = append(section, line)
			}
			continue
		}

		if strings.TrimSpace(line) == "" {
			break
		}
		section = append(section, line)
	}

	return section
}
