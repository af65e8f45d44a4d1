package transperth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jaydubbbbb/train-departures-backend/pkg/config"
)

func TestNewSource_ModeSelection(t *testing.T) {
	client := NewClient()

	cfg := &config.AppConfig{SourceMode: config.SourceModeAPI, APIEndpoint: "http://example.invalid/api"}
	if _, ok := NewSource(client, cfg).(*APISource); !ok {
		t.Errorf("expected an APISource for mode %q", config.SourceModeAPI)
	}

	cfg = &config.AppConfig{SourceMode: config.SourceModeScrape}
	if _, ok := NewSource(client, cfg).(*ScrapeSource); !ok {
		t.Errorf("expected a ScrapeSource for mode %q", config.SourceModeScrape)
	}

	cfg = &config.AppConfig{SourceMode: config.SourceModeAuto}
	if _, ok := NewSource(client, cfg).(*fallbackSource); !ok {
		t.Errorf("expected a fallback chain for mode %q", config.SourceModeAuto)
	}
}

func TestFallbackSource_UsesScrapeWhenAPIFails(t *testing.T) {
	page := `<tr class="departure-row">
		<td class="destination">Perth</td>
		<td class="time">4 min</td>
	</tr>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.Write([]byte(page))
		}
	}))
	defer server.Close()

	cfg := &config.AppConfig{
		SourceMode:  config.SourceModeAuto,
		APIEndpoint: server.URL + "/api",
		Lines: []config.LineConfig{
			{Name: "Armadale", URL: server.URL + "/live"},
		},
	}

	source := NewSource(NewClient(), cfg)

	raws, err := source.FetchDepartures()
	if err != nil {
		t.Fatalf("expected the scrape fallback to succeed, got error: %v", err)
	}
	if len(raws) != 1 || raws[0].Destination != "Perth" {
		t.Fatalf("unexpected departures from fallback: %+v", raws)
	}
}

func TestFallbackSource_AllFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := &config.AppConfig{
		SourceMode:  config.SourceModeAuto,
		APIEndpoint: server.URL + "/api",
		Lines: []config.LineConfig{
			{Name: "Armadale", URL: server.URL + "/live"},
		},
	}

	source := NewSource(NewClient(), cfg)

	_, err := source.FetchDepartures()
	if err == nil {
		t.Fatalf("expected an error when every source fails, got nil")
	}
}
