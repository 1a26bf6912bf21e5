package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"code.cloudfoundry.org/clock"
	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
	flag "github.com/spf13/pflag"

	boshinf "github.com/cloudfoundry/disk-reconciler/infrastructure"
	boshdisk "github.com/cloudfoundry/disk-reconciler/platform/disk"
	boshsettings "github.com/cloudfoundry/disk-reconciler/settings"
)

var (
	device   = flag.String("device", "", "device to reconcile (eg: /dev/sdb)")
	label    = flag.String("label", boshsettings.DefaultLabel, "partition table type")
	unit     = flag.String("unit", boshsettings.DefaultUnit, "unit of start/end")
	partType = flag.String("part-type", boshsettings.DefaultPartType, "type of partition")
	fsType   = flag.String("fs-type", boshsettings.DefaultFsType, "filesystem type hint passed to parted")
	start    = flag.Int("start", 0, "start of partition")
	end      = flag.Int("end", -1, "end of partition, -1 for end of disk")

	configPath    = flag.String("config", "", "path to a JSON desired-state file (overrides the flags above)")
	stateURL      = flag.String("desired-state-url", "", "URL of a JSON desired-state document (overrides the flags above)")
	stateFilePath = flag.String("state-file", "", "path to persist the reconciliation result to")
	settleTimeout = flag.Duration("settle-timeout", 5*time.Second, "how long to wait for the device node to appear")
	logLevel      = flag.String("log-level", "ERROR", "log level (DEBUG, INFO, WARN, ERROR, NONE)")
)

func main() {
	flag.Parse()

	level, err := boshlog.Levelify(*logLevel)
	if err != nil {
		fail(err)
	}

	logger := boshlog.NewLogger(level)
	fs := boshsys.NewOsFileSystem(logger)
	cmdRunner := boshsys.NewExecCmdRunner(logger)

	desired, err := desiredState(fs, logger)
	if err != nil {
		fail(err)
	}

	waiter := boshdisk.NewDevicePathWaiter(fs, clock.NewClock(), logger)
	err = waiter.WaitForDevicePath(desired.Device, *settleTimeout)
	if err != nil {
		fail(err)
	}

	reconciler := boshdisk.NewPartedReconciler(cmdRunner, logger)
	result, err := reconciler.Reconcile(desired)
	if err != nil {
		fail(err)
	}

	if *stateFilePath != "" {
		err = boshdisk.NewResultCache(fs, *stateFilePath).Save(result)
		if err != nil {
			fail(err)
		}
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		fail(err)
	}

	fmt.Println(string(resultJSON))
}

func desiredState(fs boshsys.FileSystem, logger boshlog.Logger) (boshsettings.DesiredState, error) {
	switch {
	case *configPath != "":
		return boshsettings.LoadDesiredState(fs, *configPath)
	case *stateURL != "":
		return boshinf.NewHTTPDesiredStateSource(*stateURL, nil, "", logger).DesiredState()
	default:
		if *device == "" {
			return boshsettings.DesiredState{}, bosherr.Error("--device is required")
		}
		if !flag.CommandLine.Changed("start") || !flag.CommandLine.Changed("end") {
			return boshsettings.DesiredState{}, bosherr.Error("--start and --end are required")
		}

		desired := boshsettings.DesiredState{
			Device:   *device,
			Label:    *label,
			Unit:     *unit,
			PartType: *partType,
			FsType:   *fsType,
			Start:    *start,
			End:      *end,
		}

		return desired, desired.Validate()
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}
