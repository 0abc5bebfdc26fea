// Package model contains the request and response shapes exchanged with the Daymet single-pixel service.
package model

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Location is a geographic point. Range checks are left to the remote service.
type Location struct {
	Latitude  float64
	Longitude float64
}

// CoordinateError is returned when a latitude or longitude cannot be parsed as a finite number.
type CoordinateError struct {
	Latitude  string
	Longitude string
}

func (e *CoordinateError) Error() string {
	return "Invalid coordinates"
}

// ParseLocation parses latitude and longitude strings.
func ParseLocation(lat, lon string) (Location, error) {
	latitude, latOK := parseCoordinate(lat)
	longitude, lonOK := parseCoordinate(lon)
	if !latOK || !lonOK {
		return Location{}, &CoordinateError{Latitude: lat, Longitude: lon}
	}

	return Location{Latitude: latitude, Longitude: longitude}, nil
}

func parseCoordinate(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}

	return v, true
}

// String formats the location the way it is shown to users.
func (l Location) String() string {
	return fmt.Sprintf("(%s, %s)", formatCoordinate(l.Latitude), formatCoordinate(l.Longitude))
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// QueryOptions contains optional query parameters of a data request.
type QueryOptions struct {
	Vars   []string
	Years  []string
	Start  string
	End    string
	Format string
}

// Values builds query parameters for loc and opts.
// defaultFormat is used when opts.Format is empty; an empty default sends no format.
func (opts QueryOptions) Values(loc Location, defaultFormat string) url.Values {
	params := url.Values{}
	params.Set("lat", formatCoordinate(loc.Latitude))
	params.Set("lon", formatCoordinate(loc.Longitude))

	format := opts.Format
	if format == "" {
		format = defaultFormat
	}
	if format != "" {
		params.Set("format", format)
	}

	if len(opts.Vars) > 0 {
		params.Set("vars", strings.Join(opts.Vars, ","))
	}
	if len(opts.Years) > 0 {
		params.Set("years", strings.Join(opts.Years, ","))
	}
	if opts.Start != "" {
		params.Set("start", opts.Start)
	}
	if opts.End != "" {
		params.Set("end", opts.End)
	}

	return params
}

// SplitList splits a comma-separated flag value into trimmed, non-empty elements.
func SplitList(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		list = append(list, p)
	}

	return list
}

// Variable describes a weather variable code understood by the service.
type Variable struct {
	Code string
	Name string
	Unit string
}

// Variables lists the known Daymet variable codes.
var Variables = []Variable{
	{Code: "tmin", Name: "Minimum Temperature", Unit: "°C"},
	{Code: "tmax", Name: "Maximum Temperature", Unit: "°C"},
	{Code: "prcp", Name: "Precipitation", Unit: "mm/day"},
	{Code: "srad", Name: "Shortwave Radiation", Unit: "W/m²"},
	{Code: "vp", Name: "Vapor Pressure", Unit: "Pa"},
	{Code: "swe", Name: "Snow Water Equivalent", Unit: "kg/m²"},
	{Code: "dayl", Name: "Day Length", Unit: "seconds"},
}
