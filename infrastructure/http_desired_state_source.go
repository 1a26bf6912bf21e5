package infrastructure

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	"github.com/cloudfoundry/bosh-utils/httpclient"
	boshlog "github.com/cloudfoundry/bosh-utils/logger"

	boshsettings "github.com/cloudfoundry/disk-reconciler/settings"
)

// HTTPDesiredStateSource fetches a desired-state document from a metadata
// endpoint, the way an automation agent pulls its intent at boot.
type HTTPDesiredStateSource struct {
	client          *httpclient.HTTPClient
	metadataHost    string
	metadataHeaders map[string]string
	statePath       string
	logTag          string
	logger          boshlog.Logger
}

func NewHTTPDesiredStateSource(
	metadataHost string,
	metadataHeaders map[string]string,
	statePath string,
	logger boshlog.Logger,
) HTTPDesiredStateSource {
	return NewHTTPDesiredStateSourceWithCustomRetryDelay(metadataHost, metadataHeaders, statePath, logger, 1*time.Second)
}

func NewHTTPDesiredStateSourceWithCustomRetryDelay(
	metadataHost string,
	metadataHeaders map[string]string,
	statePath string,
	logger boshlog.Logger,
	retryDelay time.Duration,
) HTTPDesiredStateSource {
	return HTTPDesiredStateSource{
		client:          createRetryClient(retryDelay, logger),
		metadataHost:    metadataHost,
		metadataHeaders: metadataHeaders,
		statePath:       statePath,
		logTag:          "httpDesiredStateSource",
		logger:          logger,
	}
}

// DesiredState retrieves and validates the desired-state JSON document.
func (s HTTPDesiredStateSource) DesiredState() (boshsettings.DesiredState, error) {
	url := fmt.Sprintf("%s%s", s.metadataHost, s.statePath)
	resp, err := s.client.GetCustomized(url, s.addHeaders())
	if err != nil {
		return boshsettings.DesiredState{}, bosherr.WrapErrorf(err, "Getting desired state from url %s", url)
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			s.logger.Warn(s.logTag, "Failed to close response body when getting desired state: %s", err.Error())
		}
	}()

	if !isSuccessful(resp) {
		return boshsettings.DesiredState{}, bosherr.Errorf("Invalid status from url %s: %d", url, resp.StatusCode)
	}

	bytes, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return boshsettings.DesiredState{}, bosherr.WrapError(err, "Reading desired state response body")
	}

	var input map[string]interface{}
	err = json.Unmarshal(bytes, &input)
	if err != nil {
		return boshsettings.DesiredState{}, bosherr.WrapError(err, "Parsing desired state")
	}

	return boshsettings.NewDesiredStateFromMap(input)
}

func (s HTTPDesiredStateSource) addHeaders() func(*http.Request) {
	return func(req *http.Request) {
		for key, value := range s.metadataHeaders {
			req.Header.Add(key, value)
		}
	}
}

func createRetryClient(delay time.Duration, logger boshlog.Logger) *httpclient.HTTPClient {
	return httpclient.NewHTTPClient(
		httpclient.NewRetryClient(
			httpclient.CreateDefaultClient(nil), 10, delay, logger),
		logger)
}

func isSuccessful(resp *http.Response) bool {
	return resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices
}
