package disk

import (
	"time"

	"code.cloudfoundry.org/clock"
	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshretry "github.com/cloudfoundry/bosh-utils/retrystrategy"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
)

const devicePathCheckDelay = 500 * time.Millisecond

// DevicePathWaiter blocks until a device node shows up, giving udev time
// to settle after a disk is attached.
type DevicePathWaiter struct {
	fs          boshsys.FileSystem
	timeService clock.Clock
	logger      boshlog.Logger
	logTag      string
}

func NewDevicePathWaiter(fs boshsys.FileSystem, timeService clock.Clock, logger boshlog.Logger) DevicePathWaiter {
	return DevicePathWaiter{
		fs:          fs,
		timeService: timeService,
		logger:      logger,
		logTag:      "DevicePathWaiter",
	}
}

func (w DevicePathWaiter) WaitForDevicePath(path string, timeout time.Duration) error {
	pathRetryable := boshretry.NewRetryable(func() (bool, error) {
		if w.fs.FileExists(path) {
			w.logger.Debug(w.logTag, "Device path `%s' exists", path)
			return false, nil
		}

		return true, bosherr.Errorf("Device path `%s' does not exist", path)
	})

	pathRetryStrategy := boshretry.NewTimeoutRetryStrategy(timeout, devicePathCheckDelay, pathRetryable, w.timeService, w.logger)

	err := pathRetryStrategy.Try()
	if err != nil {
		return bosherr.WrapErrorf(err, "Waiting for device `%s'", path)
	}

	return nil
}
