package disk

import (
	"encoding/json"

	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
)

// ResultCache persists the outcome of the last reconciliation run so
// operators can audit what was last done to a device.
type ResultCache struct {
	fs   boshsys.FileSystem
	path string
}

func NewResultCache(fs boshsys.FileSystem, path string) ResultCache {
	return ResultCache{fs: fs, path: path}
}

func (c ResultCache) Save(result Result) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return bosherr.WrapError(err, "Marshalling reconciliation result")
	}

	err = c.fs.WriteFile(c.path, resultJSON)
	if err != nil {
		return bosherr.WrapError(err, "Writing reconciliation result to file")
	}

	return nil
}

func (c ResultCache) Load() (Result, error) {
	resultJSON, err := c.fs.ReadFile(c.path)
	if err != nil {
		return Result{}, bosherr.WrapError(err, "Reading reconciliation result from file")
	}

	var result Result
	err = json.Unmarshal(resultJSON, &result)
	if err != nil {
		return Result{}, bosherr.WrapError(err, "Unmarshalling reconciliation result")
	}

	return result, nil
}
