package model

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tj/assert"
)

func TestParseLocation(t *testing.T) {
	cases := []struct {
		name     string
		lat, lon string
		expected Location
		isErr    bool
	}{
		{name: "ok", lat: "35.96", lon: "-84.29", expected: Location{Latitude: 35.96, Longitude: -84.29}},
		{name: "spaces", lat: " 40 ", lon: "-100.5", expected: Location{Latitude: 40, Longitude: -100.5}},
		{name: "out of range passes through", lat: "123", lon: "456", expected: Location{Latitude: 123, Longitude: 456}},
		{name: "bad latitude", lat: "abc", lon: "-84.29", isErr: true},
		{name: "bad longitude", lat: "35.96", lon: "", isErr: true},
		{name: "nan", lat: "NaN", lon: "1", isErr: true},
		{name: "inf", lat: "1", lon: "+Inf", isErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			loc, err := ParseLocation(tc.lat, tc.lon)
			if tc.isErr {
				var coordErr *CoordinateError
				assert.True(t, errors.As(err, &coordErr))
				assert.Equal(t, "Invalid coordinates", err.Error())
				return
			}

			assert.Nil(t, err)
			assert.Equal(t, tc.expected, loc)
		})
	}
}

func TestQueryOptionsValues(t *testing.T) {
	loc := Location{Latitude: 35.9621, Longitude: -84.2916}

	cases := []struct {
		name          string
		opts          QueryOptions
		defaultFormat string
		expected      map[string][]string
	}{
		{
			name:          "default format",
			defaultFormat: "json",
			expected: map[string][]string{
				"lat":    {"35.9621"},
				"lon":    {"-84.2916"},
				"format": {"json"},
			},
		},
		{
			name: "no default format",
			expected: map[string][]string{
				"lat": {"35.9621"},
				"lon": {"-84.2916"},
			},
		},
		{
			name:          "lists joined in order",
			defaultFormat: "json",
			opts: QueryOptions{
				Vars:   []string{"tmax", "tmin", "prcp"},
				Years:  []string{"2012", "1999"},
				Start:  "2012-01-01",
				End:    "2012-01-31",
				Format: "csv",
			},
			expected: map[string][]string{
				"lat":    {"35.9621"},
				"lon":    {"-84.2916"},
				"format": {"csv"},
				"vars":   {"tmax,tmin,prcp"},
				"years":  {"2012,1999"},
				"start":  {"2012-01-01"},
				"end":    {"2012-01-31"},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.opts.Values(loc, tc.defaultFormat)
			if diff := cmp.Diff(tc.expected, map[string][]string(got)); diff != "" {
				t.Errorf("unexpected query (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList(""))
	assert.Equal(t, []string{"tmin", "tmax", "prcp"}, SplitList(" tmin, tmax ,prcp"))
	assert.Equal(t, []string{"2010", "2011"}, SplitList("2010,,2011,"))
}

func TestResponseKinds(t *testing.T) {
	var responses = []Response{Records{}, Document{Value: map[string]any{}}, Text("a,b")}
	kinds := make([]Kind, 0, len(responses))
	for _, r := range responses {
		kinds = append(kinds, r.Kind())
	}

	assert.Equal(t, []Kind{KindRecords, KindDocument, KindText}, kinds)
}
