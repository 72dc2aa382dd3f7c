package proxy

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/playperu/apitoolbox/internal/toolbox"
)

const defaultPrayerMethod = "2" // ISNA

// PrayerTimesQuery selects the city whose timings are requested.
type PrayerTimesQuery struct {
	City    string `validate:"required"`
	Country string `validate:"required"`
	Method  string
}

// QiblaQuery holds the coordinates, kept as the caller sent them.
type QiblaQuery struct {
	Latitude  string `validate:"required"`
	Longitude string `validate:"required"`
}

// aladhanMessages are the texts that differ between the two Aladhan
// operations.
type aladhanMessages struct {
	upstream string
	// httpFallback is formatted with the upstream status text.
	httpFallback string
	// statusOnHTTPError also accepts a string "status" field as the message
	// of a non-2xx reply. Only prayer times does this.
	statusOnHTTPError bool
	embeddedFallback  string
	internal          string
}

var prayerMessages = aladhanMessages{
	upstream:          "aladhan-timings",
	httpFallback:      "Error fetching prayer times: %s. The API might not recognize the provided city/country combination.",
	statusOnHTTPError: true,
	embeddedFallback:  "Failed to retrieve prayer times from Aladhan API. The city/country may not be supported or an unknown error occurred.",
	internal:          "Internal server error while fetching prayer times. Please try again later.",
}

var qiblaMessages = aladhanMessages{
	upstream:         "aladhan-qibla",
	httpFallback:     "Error fetching Qibla direction: %s. The API might not be able to calculate Qibla for the provided coordinates.",
	embeddedFallback: "Failed to retrieve Qibla direction from Aladhan API.",
	internal:         "Internal server error while fetching Qibla direction.",
}

// PrayerTimes fetches the day's timings for a city.
func (s *Service) PrayerTimes(ctx context.Context, q PrayerTimesQuery) (json.RawMessage, error) {
	if err := s.validate.StructCtx(ctx, q); err != nil {
		return nil, toolbox.Validation("City and Country parameters are required")
	}
	if q.Method == "" {
		q.Method = defaultPrayerMethod
	}

	v := url.Values{}
	v.Set("city", q.City)
	v.Set("country", q.Country)
	v.Set("method", q.Method)
	return s.aladhan(ctx, s.urls.Aladhan+"/v1/timingsByCity?"+v.Encode(), prayerMessages)
}

// Qibla fetches the Qibla bearing for a coordinate pair.
func (s *Service) Qibla(ctx context.Context, q QiblaQuery) (json.RawMessage, error) {
	if err := s.validate.StructCtx(ctx, q); err != nil {
		return nil, toolbox.Validation("Latitude and Longitude parameters are required")
	}

	u := s.urls.Aladhan + "/v1/qibla/" + url.PathEscape(q.Latitude) + "/" + url.PathEscape(q.Longitude)
	return s.aladhan(ctx, u, qiblaMessages)
}

// aladhan calls an Aladhan endpoint. Aladhan signals failure either by
// HTTP status or by a 200 body whose "code" is not 200; both become errors.
func (s *Service) aladhan(ctx context.Context, rawURL string, m aladhanMessages) (json.RawMessage, error) {
	resp, err := s.get(ctx, rawURL, nil)
	if err != nil {
		s.logTransport(ctx, m.upstream, err)
		return nil, toolbox.Transport(m.internal, err)
	}

	data, ok := resp.json()

	if !resp.ok() {
		s.logUpstreamStatus(ctx, m.upstream, resp)
		msg, found := stringField(data, "data")
		if !found && m.statusOnHTTPError {
			msg, found = stringField(data, "status")
		}
		if !found {
			msg = fmt.Sprintf(m.httpFallback, resp.statusText)
		}

		var details json.RawMessage
		if ok {
			details = resp.body
		}
		return nil, toolbox.Upstream(resp.status, msg, details)
	}

	if !ok {
		return nil, toolbox.Internal(m.internal, errInvalidJSON)
	}

	code := data.Get("code")
	if code.Type == gjson.Number && code.Num == http.StatusOK {
		return resp.body, nil
	}

	msg, found := stringField(data, "data")
	if !found {
		msg, found = stringField(data, "status")
	}
	if !found {
		msg = m.embeddedFallback
	}

	var details json.RawMessage
	if d := data.Get("data"); d.Exists() {
		details = json.RawMessage(d.Raw)
	}
	return nil, toolbox.Upstream(embeddedStatus(code), msg, details)
}

// embeddedStatus maps an embedded Aladhan code to the local status: client
// errors are kept, everything else becomes 500.
func embeddedStatus(code gjson.Result) int {
	if code.Type != gjson.Number || code.Num != math.Trunc(code.Num) {
		return http.StatusInternalServerError
	}
	if c := int(code.Num); c >= 400 && c < 500 {
		return c
	}
	return http.StatusInternalServerError
}
