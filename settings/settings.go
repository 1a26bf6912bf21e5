package settings

import (
	"encoding/json"

	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
	"github.com/mitchellh/mapstructure"
)

const (
	DefaultLabel    = "gpt"
	DefaultUnit     = "compact"
	DefaultPartType = "primary"
	DefaultFsType   = "ext4"
)

var (
	Labels    = []string{"bsd", "loop", "gpt", "mac", "msdos", "pc98", "sun"}
	Units     = []string{"s", "B", "kB", "MB", "GB", "TB", "compact", "cyl", "chs", "%", "kiB", "MiB", "GiB", "TiB"}
	PartTypes = []string{"primary", "extended"}
	FsTypes   = []string{"ext2", "ext3", "ext4", "fat16", "fat32", "hfs", "hfs+", "hfsx", "linux-swap", "NTFS", "reiserfs", "ufs", "btrfs"}
)

// DesiredState is the declared layout for one device: the partition table
// label plus a single (start, end) range in the given unit. An End of -1
// means through the end of the device.
type DesiredState struct {
	Device   string `mapstructure:"device" json:"device"`
	Label    string `mapstructure:"label" json:"label"`
	Unit     string `mapstructure:"unit" json:"unit"`
	PartType string `mapstructure:"part_type" json:"part_type"`
	FsType   string `mapstructure:"fs_type" json:"fs_type"`
	Start    int    `mapstructure:"start" json:"start"`
	End      int    `mapstructure:"end" json:"end"`
}

// NewDesiredState returns a state carrying the documented defaults. The
// caller still has to fill in device, start and end.
func NewDesiredState() DesiredState {
	return DesiredState{
		Label:    DefaultLabel,
		Unit:     DefaultUnit,
		PartType: DefaultPartType,
		FsType:   DefaultFsType,
	}
}

// NewDesiredStateFromMap builds a validated DesiredState from loosely
// typed input such as a parsed JSON document. String-typed integers are
// accepted; absent optional fields keep their defaults; device, start and
// end must be present.
func NewDesiredStateFromMap(input map[string]interface{}) (DesiredState, error) {
	for _, key := range []string{"device", "start", "end"} {
		if _, found := input[key]; !found {
			return DesiredState{}, bosherr.Errorf("Missing required field `%s'", key)
		}
	}

	state := NewDesiredState()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &state,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return DesiredState{}, bosherr.WrapError(err, "Building desired state decoder")
	}

	err = decoder.Decode(input)
	if err != nil {
		return DesiredState{}, bosherr.WrapError(err, "Decoding desired state")
	}

	err = state.Validate()
	if err != nil {
		return DesiredState{}, err
	}

	return state, nil
}

// LoadDesiredState reads a JSON desired-state document from a file.
func LoadDesiredState(fs boshsys.FileSystem, path string) (DesiredState, error) {
	contents, err := fs.ReadFile(path)
	if err != nil {
		return DesiredState{}, bosherr.WrapErrorf(err, "Reading desired state from file %s", path)
	}

	var input map[string]interface{}
	err = json.Unmarshal(contents, &input)
	if err != nil {
		return DesiredState{}, bosherr.WrapErrorf(err, "Parsing desired state from file %s", path)
	}

	return NewDesiredStateFromMap(input)
}

func (s DesiredState) Validate() error {
	if s.Device == "" {
		return bosherr.Error("Device must not be empty")
	}

	if !contains(Labels, s.Label) {
		return bosherr.Errorf("Label `%s' must be one of %v", s.Label, Labels)
	}

	if !contains(Units, s.Unit) {
		return bosherr.Errorf("Unit `%s' must be one of %v", s.Unit, Units)
	}

	if !contains(PartTypes, s.PartType) {
		return bosherr.Errorf("Partition type `%s' must be one of %v", s.PartType, PartTypes)
	}

	if !contains(FsTypes, s.FsType) {
		return bosherr.Errorf("Filesystem type `%s' must be one of %v", s.FsType, FsTypes)
	}

	return nil
}

func contains(choices []string, value string) bool {
	for _, choice := range choices {
		if choice == value {
			return true
		}
	}

	return false
}
