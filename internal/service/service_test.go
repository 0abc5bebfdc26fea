package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/katiamach/ornl/internal/api"
	"github.com/katiamach/ornl/internal/config"
	"github.com/katiamach/ornl/internal/model"
	"github.com/tj/assert"
)

var errTest = errors.New("test error")

type call struct {
	baseURL  string
	endpoint string
	params   url.Values
}

type fakeRequester struct {
	calls []call
	body  *api.Body
	err   error
}

func (f *fakeRequester) Get(_ context.Context, baseURL, endpoint string, params url.Values) (*api.Body, error) {
	f.calls = append(f.calls, call{baseURL: baseURL, endpoint: endpoint, params: params})
	return f.body, f.err
}

type staticBaseURL struct {
	url string
	err error
}

func (s staticBaseURL) BaseURL() (string, error) {
	return s.url, s.err
}

var loc = model.Location{Latitude: 35.9621, Longitude: -84.2916}

func TestGetWeatherDataParams(t *testing.T) {
	cases := []struct {
		name     string
		opts     model.QueryOptions
		expected url.Values
	}{
		{
			name: "empty options send json format",
			expected: url.Values{
				"lat":    {"35.9621"},
				"lon":    {"-84.2916"},
				"format": {"json"},
			},
		},
		{
			name: "arrays are comma joined",
			opts: model.QueryOptions{
				Vars:   []string{"tmin", "tmax"},
				Years:  []string{"2010", "2011"},
				Format: "csv",
			},
			expected: url.Values{
				"lat":    {"35.9621"},
				"lon":    {"-84.2916"},
				"format": {"csv"},
				"vars":   {"tmin,tmax"},
				"years":  {"2010,2011"},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			requester := &fakeRequester{body: &api.Body{ContentType: "application/json", Data: []byte("[]")}}
			ws := New(requester, staticBaseURL{url: "https://daymet.test"})

			_, err := ws.GetWeatherData(context.Background(), loc, tc.opts)
			assert.Nil(t, err)

			assert.Len(t, requester.calls, 1)
			assert.Equal(t, "https://daymet.test", requester.calls[0].baseURL)
			assert.Equal(t, api.DataEndpoint, requester.calls[0].endpoint)
			if diff := cmp.Diff(tc.expected, requester.calls[0].params); diff != "" {
				t.Errorf("unexpected params (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPreviewDataSendsNoFormat(t *testing.T) {
	requester := &fakeRequester{body: &api.Body{Data: []byte("{}")}}
	ws := New(requester, staticBaseURL{url: "https://daymet.test"})

	_, err := ws.PreviewData(context.Background(), loc, model.QueryOptions{Vars: []string{"prcp"}})
	assert.Nil(t, err)

	assert.Equal(t, api.PreviewEndpoint, requester.calls[0].endpoint)
	assert.Equal(t, url.Values{
		"lat":  {"35.9621"},
		"lon":  {"-84.2916"},
		"vars": {"prcp"},
	}, requester.calls[0].params)
}

func TestRequestErrors(t *testing.T) {
	t.Run("client error is returned unchanged", func(t *testing.T) {
		apiErr := &api.APIError{Message: "bad request"}
		ws := New(&fakeRequester{err: apiErr}, staticBaseURL{url: "https://daymet.test"})

		_, err := ws.GetWeatherData(context.Background(), loc, model.QueryOptions{})
		assert.Equal(t, apiErr, err)
		assert.Equal(t, "API Error: bad request", err.Error())
	})

	t.Run("config error stops the request", func(t *testing.T) {
		requester := &fakeRequester{}
		ws := New(requester, staticBaseURL{err: errTest})

		_, err := ws.PreviewData(context.Background(), loc, model.QueryOptions{})
		assert.True(t, errors.Is(err, errTest))
		assert.Empty(t, requester.calls)
	})
}

func TestDecodeResponse(t *testing.T) {
	cases := []struct {
		name     string
		body     api.Body
		expected model.Response
	}{
		{
			name:     "array",
			body:     api.Body{ContentType: "application/json", Data: []byte(`[{"year":2012,"prcp":0}]`)},
			expected: model.Records{map[string]any{"year": json.Number("2012"), "prcp": json.Number("0")}},
		},
		{
			name:     "object",
			body:     api.Body{ContentType: "application/json", Data: []byte(`{"tiles":[11216]}`)},
			expected: model.Document{Value: map[string]any{"tiles": []any{json.Number("11216")}}},
		},
		{
			name:     "csv",
			body:     api.Body{ContentType: "text/csv", Data: []byte("year,yday,prcp (mm/day)\n2012,1,0\n")},
			expected: model.Text("year,yday,prcp (mm/day)\n2012,1,0\n"),
		},
		{
			name:     "csv starting with a number",
			body:     api.Body{ContentType: "text/csv", Data: []byte("2012,1,0\n2012,2,3.5\n")},
			expected: model.Text("2012,1,0\n2012,2,3.5\n"),
		},
		{
			name:     "latin1 csv",
			body:     api.Body{ContentType: "text/csv; charset=ISO-8859-1", Data: []byte("tmax (\xb0C)\n")},
			expected: model.Text("tmax (°C)\n"),
		},
		{
			name:     "empty",
			body:     api.Body{ContentType: "text/plain"},
			expected: model.Text(""),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := tc.body
			got, err := decodeResponse(&body)
			assert.Nil(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestBaseURLIsReadOnEveryCall(t *testing.T) {
	var hits []string
	newServer := func(name string) *httptest.Server {
		r := mux.NewRouter()
		r.HandleFunc(api.DataEndpoint, func(w http.ResponseWriter, req *http.Request) {
			hits = append(hits, name)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"year":2012,"yday":1,"prcp":1.5}]`))
		}).Methods(http.MethodGet).Queries("format", "json")

		ts := httptest.NewServer(handlers.CompressHandler(r))
		t.Cleanup(ts.Close)
		return ts
	}
	first := newServer("first")
	second := newServer("second")

	store := config.New(filepath.Join(t.TempDir(), "config.json"))
	assert.Nil(t, store.Set(config.KeyBaseURL, first.URL))

	ws := New(api.NewClient(nil), store)

	resp, err := ws.GetWeatherData(context.Background(), loc, model.QueryOptions{})
	assert.Nil(t, err)
	assert.Equal(t, model.KindRecords, resp.Kind())

	assert.Nil(t, store.Set(config.KeyBaseURL, second.URL))

	_, err = ws.GetWeatherData(context.Background(), loc, model.QueryOptions{})
	assert.Nil(t, err)

	assert.Equal(t, []string{"first", "second"}, hits)
}

func TestPreviewText(t *testing.T) {
	page := `<html><head><title>Daymet Preview</title><style>td{color:red}</style></head>
<body><h2>Single Pixel</h2>
<p>Latitude: 35.9621<br>Longitude: -84.2916</p>
<table><tr><th>year</th><th>tmax</th></tr><tr><td>2012</td><td>11.5</td></tr></table>
<script>var x = 1;</script></body></html>`

	expected := "Daymet Preview\nSingle Pixel\nLatitude: 35.9621\nLongitude: -84.2916\nyear | tmax\n2012 | 11.5"
	assert.Equal(t, expected, PreviewText(page))
}
