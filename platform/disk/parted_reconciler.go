package disk

import (
	"strconv"

	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshsys "github.com/cloudfoundry/bosh-utils/system"

	boshsettings "github.com/cloudfoundry/disk-reconciler/settings"
)

// Result is the caller-facing outcome of a reconciliation run: whether
// anything changed, plus the refreshed layout for verification.
type Result struct {
	Changed    bool        `json:"changed"`
	Partitions []Partition `json:"partition_table"`
}

// PartedReconciler converges a device's partition table on a desired
// state by driving parted. It assumes exclusive access to the device for
// the duration of a run; concurrent runs against the same device are
// unsafe.
type PartedReconciler struct {
	reader    TableReader
	cmdRunner boshsys.CmdRunner
	logger    boshlog.Logger
	logTag    string
}

func NewPartedReconciler(cmdRunner boshsys.CmdRunner, logger boshlog.Logger) PartedReconciler {
	return PartedReconciler{
		reader:    NewTableReader(cmdRunner, logger),
		cmdRunner: cmdRunner,
		logger:    logger,
		logTag:    "PartedReconciler",
	}
}

// Reconcile applies the desired label and then the desired partition. A
// label that fails to apply is folded into "no change" and does not block
// the partition step; partition removal or creation failures abort the
// run.
func (r PartedReconciler) Reconcile(desired boshsettings.DesiredState) (Result, error) {
	labelChanged, err := r.SetLabel(desired.Device, desired.Unit, desired.Label)
	if err != nil {
		return Result{}, bosherr.WrapErrorf(err, "Setting label on `%s'", desired.Device)
	}

	table, partitionChanged, err := r.SetPartition(desired.Device, desired.Unit, desired.PartType, desired.FsType, desired.Start, desired.End)
	if err != nil {
		return Result{}, bosherr.WrapErrorf(err, "Setting partition on `%s'", desired.Device)
	}

	return Result{
		Changed:    labelChanged || partitionChanged,
		Partitions: table.Partitions,
	}, nil
}

// SetLabel writes a new partition table of the given type unless the
// device already carries one. A failing mklabel is absorbed as "no change
// made"; only an unparseable parted report is an error.
func (r PartedReconciler) SetLabel(device, unit, label string) (bool, error) {
	table, err := r.reader.Read(device, unit)
	if err != nil {
		return false, err
	}

	if table.Label == label {
		r.logger.Debug(r.logTag, "Device `%s' already labeled `%s'", device, label)
		return false, nil
	}

	_, _, _, err = r.cmdRunner.RunCommand("parted", "-s", "-a", "optimal", device, "--", "mklabel", label)
	if err != nil {
		r.logger.Warn(r.logTag, "Labeling `%s' as `%s' failed, no change made: %s", device, label, err.Error())
		return false, nil
	}

	return true, nil
}

// SetPartition converges the device on a partition spanning [start, end]
// in the given unit, where end < 0 means through the end of the device.
// An existing partition matching the range short-circuits with no tool
// invocations at all. Otherwise every overlapping partition is removed
// first, in table order, and the desired partition is created; a failure
// in either step aborts immediately since the device is then in a
// partially modified state that must not be masked. The returned snapshot
// reflects the device after any changes.
func (r PartedReconciler) SetPartition(device, unit, partType, fsType string, start, end int) (Table, bool, error) {
	table, err := r.reader.Read(device, unit)
	if err != nil {
		return Table{}, false, err
	}

	desiredStart := Offset(start)
	desiredEnd := Offset(end)

	for _, partition := range table.Partitions {
		if partition.Same(desiredStart, desiredEnd) {
			r.logger.Debug(r.logTag, "Partition %d on `%s' already spans [%d, %d]", partition.Number, device, start, end)
			return table, false, nil
		}
	}

	for _, partition := range table.Partitions {
		if !partition.Overlaps(desiredStart, desiredEnd) {
			continue
		}

		r.logger.Info(r.logTag, "Removing partition %d from `%s'", partition.Number, device)
		_, _, _, err := r.cmdRunner.RunCommand("parted", "-s", "-a", "optimal", device, "--", "unit", unit, "rm", strconv.Itoa(partition.Number))
		if err != nil {
			return Table{}, false, bosherr.WrapErrorf(err, "Removing partition %d from `%s'", partition.Number, device)
		}
	}

	r.logger.Info(r.logTag, "Creating %s %s partition [%d, %d] on `%s'", partType, fsType, start, end, device)
	_, _, _, err = r.cmdRunner.RunCommand("parted", "-s", "-a", "optimal", device, "--", "unit", unit, "mkpart", partType, fsType, strconv.Itoa(start), strconv.Itoa(end))
	if err != nil {
		return Table{}, false, bosherr.WrapErrorf(err, "Creating partition on `%s'", device)
	}

	table, err = r.reader.Read(device, unit)
	if err != nil {
		return Table{}, false, err
	}

	return table, true, nil
}
