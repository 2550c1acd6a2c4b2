package services

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"SyconApi/auth"
	"SyconApi/models"
	"SyconApi/request"
	"SyconApi/validation"
)

// API routes of the data endpoints.
const (
	routeDevices = "/api/devices"
	routeRawData = "/api/devices/%s/%s/data/raw"
)

// DataService retrieves raw sensor readings for the devices of the
// authenticated account. Results are memoized by the full argument tuple and
// never expire on their own: identical historical queries are idempotent, so
// caching them indefinitely is safe. Callers querying a sliding "now" window
// must call ClearCache to get fresh data.
type DataService struct {
	session *auth.Session
	exec    *request.Executor

	mu           sync.Mutex
	deviceCache  map[string]*models.RawDataResult
	devicesCache map[string]models.MultiDeviceResult
}

// NewDataService creates a DataService on top of an executor and a session.
func NewDataService(session *auth.Session, exec *request.Executor) *DataService {
	return &DataService{
		session:      session,
		exec:         exec,
		deviceCache:  make(map[string]*models.RawDataResult),
		devicesCache: make(map[string]models.MultiDeviceResult),
	}
}

// ClearCache drops all memoized results.
func (s *DataService) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deviceCache = make(map[string]*models.RawDataResult)
	s.devicesCache = make(map[string]models.MultiDeviceResult)
}

// GetDevices lists the devices associated with the account.
func (s *DataService) GetDevices() ([]models.Device, error) {
	token, ok := s.session.BearerToken()
	if !ok {
		return nil, models.NewAPIError(models.ErrorCodeNotAuthenticated,
			"no bearer token, call Authenticate first", 0)
	}

	resp, err := s.exec.Get(routeDevices, nil, request.BearerHeader(token))
	if err != nil {
		return nil, err
	}

	var devices []models.Device
	if err := request.DecodeJSON(resp, &devices); err != nil {
		return nil, err
	}
	return devices, nil
}

// GetDataFromDevice fetches the readings of one field of one device between
// start and end. Exactly one of headLimit/tailLimit must be set (zero means
// absent); externalSensorID is optional and may be empty. Parameters are
// validated locally before any network round trip.
func (s *DataService) GetDataFromDevice(deviceID string, field models.DataField, start, end string, headLimit, tailLimit int, externalSensorID string) (*models.RawDataResult, error) {
	if err := s.validateQuery(field, start, end, headLimit, tailLimit); err != nil {
		return nil, err
	}
	if err := validation.ValidateDeviceID(deviceID); err != nil {
		return nil, err
	}

	token, ok := s.session.BearerToken()
	if !ok {
		return nil, models.NewAPIError(models.ErrorCodeNotAuthenticated,
			"no bearer token, call Authenticate first", 0)
	}

	key := cacheKey([]string{deviceID}, field, start, end, headLimit, tailLimit, externalSensorID)
	s.mu.Lock()
	if cached, ok := s.deviceCache[key]; ok {
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	result, err := s.fetchDevice(token, deviceID, field, start, end, headLimit, tailLimit, externalSensorID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.deviceCache[key] = result
	s.mu.Unlock()
	return result, nil
}

// GetDataFromDevices fetches the same field and window for several devices,
// one request per device, in the given order. A failing device is recorded
// in the returned mapping and does not stop the remaining fetches, except
// for authentication failures (missing or rejected token), which apply to
// every device alike and abort the whole batch. Only fully successful
// batches are memoized: a mapping containing per-device failures would
// otherwise replay transient errors forever, so it is re-fetched on the
// next identical call instead.
func (s *DataService) GetDataFromDevices(deviceIDs []string, field models.DataField, start, end string, headLimit, tailLimit int, externalSensorID string) (models.MultiDeviceResult, error) {
	if err := s.validateQuery(field, start, end, headLimit, tailLimit); err != nil {
		return nil, err
	}
	for _, id := range deviceIDs {
		if err := validation.ValidateDeviceID(id); err != nil {
			return nil, err
		}
	}

	token, ok := s.session.BearerToken()
	if !ok {
		return nil, models.NewAPIError(models.ErrorCodeNotAuthenticated,
			"no bearer token, call Authenticate first", 0)
	}

	key := cacheKey(deviceIDs, field, start, end, headLimit, tailLimit, externalSensorID)
	s.mu.Lock()
	if cached, ok := s.devicesCache[key]; ok {
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	data := make(models.MultiDeviceResult, len(deviceIDs))
	allSucceeded := true
	for _, deviceID := range deviceIDs {
		result, err := s.fetchDevice(token, deviceID, field, start, end, headLimit, tailLimit, externalSensorID)
		if err != nil {
			var apiErr models.APIError
			if errors.As(err, &apiErr) &&
				(apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden) {
				return nil, err
			}
			data[deviceID] = models.DeviceResult{Err: err}
			allSucceeded = false
			continue
		}
		data[deviceID] = models.DeviceResult{Data: result}
	}

	if allSucceeded {
		s.mu.Lock()
		s.devicesCache[key] = data
		s.mu.Unlock()
	}
	return data, nil
}

// GetDataFromAllDevices lists the account's devices and fetches the field
// for each of them. Listing entries without an identifier are skipped with a
// log line rather than failing the whole call.
func (s *DataService) GetDataFromAllDevices(field models.DataField, start, end string, headLimit, tailLimit int, externalSensorID string) (models.MultiDeviceResult, error) {
	if err := s.validateQuery(field, start, end, headLimit, tailLimit); err != nil {
		return nil, err
	}

	devices, err := s.GetDevices()
	if err != nil {
		return nil, err
	}

	deviceIDs := make([]string, 0, len(devices))
	for _, device := range devices {
		if device.ID == "" {
			log.Println("Skipping device listing entry without an id")
			continue
		}
		deviceIDs = append(deviceIDs, device.ID)
	}

	return s.GetDataFromDevices(deviceIDs, field, start, end, headLimit, tailLimit, externalSensorID)
}

// fetchDevice performs one uncached raw-data request.
func (s *DataService) fetchDevice(token, deviceID string, field models.DataField, start, end string, headLimit, tailLimit int, externalSensorID string) (*models.RawDataResult, error) {
	route := fmt.Sprintf(routeRawData, deviceID, field)
	resp, err := s.exec.Get(route, dataQuery(start, end, headLimit, tailLimit, externalSensorID), request.BearerHeader(token))
	if err != nil {
		return nil, err
	}

	var result models.RawDataResult
	if err := request.DecodeJSON(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *DataService) validateQuery(field models.DataField, start, end string, headLimit, tailLimit int) error {
	if err := validation.ValidateField(field); err != nil {
		return err
	}
	if err := validation.ValidateDate(start); err != nil {
		return err
	}
	if err := validation.ValidateDate(end); err != nil {
		return err
	}
	return validation.ValidateLimits(headLimit, tailLimit)
}

// dataQuery builds the query parameters of the raw-data endpoint.
func dataQuery(start, end string, headLimit, tailLimit int, externalSensorID string) map[string]string {
	query := map[string]string{
		"start": start,
		"end":   end,
	}
	if headLimit != 0 {
		query["headLimit"] = strconv.Itoa(headLimit)
	}
	if tailLimit != 0 {
		query["tailLimit"] = strconv.Itoa(tailLimit)
	}
	if externalSensorID != "" {
		query["externalSensorId"] = externalSensorID
	}
	return query
}

// cacheKey canonicalizes the full argument tuple. Device ids keep their
// request order. Ids and the external sensor id are opaque strings that may
// contain any character, so they are quoted before joining: a separator
// inside an id can then never make two distinct argument tuples collide.
// Field, dates and limits are validated to a separator-free shape already.
func cacheKey(deviceIDs []string, field models.DataField, start, end string, headLimit, tailLimit int, externalSensorID string) string {
	parts := make([]string, 0, len(deviceIDs)+6)
	for _, id := range deviceIDs {
		parts = append(parts, strconv.Quote(id))
	}
	parts = append(parts,
		string(field),
		start,
		end,
		strconv.Itoa(headLimit),
		strconv.Itoa(tailLimit),
		strconv.Quote(externalSensorID),
	)
	return strings.Join(parts, "|")
}
