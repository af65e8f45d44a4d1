package transperth

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func TestParseLiveTimes(t *testing.T) {
	file, err := os.Open("testdata/live_times.html")
	if err != nil {
		t.Fatalf("failed to open fixture: %v", err)
	}
	defer file.Close()

	raws, err := ParseLiveTimes(file, "Armadale")
	if err != nil {
		t.Fatalf("ParseLiveTimes failed: %v", err)
	}

	// Three full rows plus one with a missing destination; the notice row
	// has neither field and is skipped
	if len(raws) != 4 {
		t.Fatalf("expected 4 raw departures, got %d", len(raws))
	}

	first := raws[0]
	if first.Platform != "1" || first.Destination != "Perth" || first.TimeDisplay != "Now" {
		t.Errorf("unexpected first row: %+v", first)
	}
	if first.Pattern != "K" || first.Stops != "All Stations" {
		t.Errorf("unexpected first row pattern/stops: %+v", first)
	}
	if first.Line != "Armadale" {
		t.Errorf("expected line name to be attached, got %q", first.Line)
	}

	second := raws[1]
	if second.Destination != "Armadale" || second.TimeDisplay != "5 min" || second.Stops != "Limited Stops" {
		t.Errorf("unexpected second row: %+v", second)
	}

	// Row with empty pattern and stops cells comes through empty; defaults
	// are the board's job
	third := raws[2]
	if third.TimeDisplay != "10:45" || third.Pattern != "" || third.Stops != "" {
		t.Errorf("unexpected third row: %+v", third)
	}

	// Row missing the destination is still emitted for drop accounting
	fourth := raws[3]
	if fourth.Destination != "" || fourth.TimeDisplay != "12 min" {
		t.Errorf("unexpected fourth row: %+v", fourth)
	}
}

func TestScrapeSource_CombinesLines(t *testing.T) {
	page := `<table>
		<tr class="departure-row">
			<td class="platform">1</td>
			<td class="destination">Perth</td>
			<td class="time">3 min</td>
		</tr>
	</table>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer server.Close()

	source := NewScrapeSource(NewClient(), []Line{
		{Name: "Armadale", URL: server.URL + "/armadale"},
		{Name: "Thornlie-Cockburn", URL: server.URL + "/thornlie"},
	}, "")

	raws, err := source.FetchDepartures()
	if err != nil {
		t.Fatalf("unexpected error fetching departures: %v", err)
	}

	if len(raws) != 2 {
		t.Fatalf("expected 1 departure per line, got %d total", len(raws))
	}
	if raws[0].Line != "Armadale" || raws[1].Line != "Thornlie-Cockburn" {
		t.Errorf("expected line names to be attached in order, got %q and %q", raws[0].Line, raws[1].Line)
	}
}

func TestScrapeSource_ToleratesSingleLineFailure(t *testing.T) {
	page := `<div class="departure">
		<span class="destination">Perth</span>
		<span class="time">Due</span>
	</div>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(page))
	}))
	defer server.Close()

	source := NewScrapeSource(NewClient(), []Line{
		{Name: "Armadale", URL: server.URL + "/armadale"},
		{Name: "Thornlie-Cockburn", URL: server.URL + "/broken"},
	}, "")

	raws, err := source.FetchDepartures()
	if err != nil {
		t.Fatalf("expected partial success, got error: %v", err)
	}
	if len(raws) != 1 {
		t.Fatalf("expected 1 departure from the healthy line, got %d", len(raws))
	}
}

func TestScrapeSource_FailsWhenAllLinesFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	source := NewScrapeSource(NewClient(), []Line{
		{Name: "Armadale", URL: server.URL + "/armadale"},
	}, "")

	_, err := source.FetchDepartures()
	if err == nil {
		t.Fatalf("expected an error when every line fails, got nil")
	}
}

func TestScrapeSource_ProxyFallback(t *testing.T) {
	page := `<tr class="departure-row">
		<td class="destination">Perth</td>
		<td class="time">2 min</td>
	</tr>`

	var proxiedTarget string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/proxy" {
			if r.URL.Query().Get("api_key") != "secret" {
				t.Errorf("expected api_key=secret, got %q", r.URL.Query().Get("api_key"))
			}
			proxiedTarget = r.URL.Query().Get("url")
			w.Write([]byte(page))
			return
		}
		// The direct fetch is always blocked
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	source := NewScrapeSource(NewClient(), []Line{
		{Name: "Armadale", URL: server.URL + "/live"},
	}, "secret")
	source.proxyBase = server.URL + "/proxy"

	raws, err := source.FetchDepartures()
	if err != nil {
		t.Fatalf("expected the proxy fallback to succeed, got error: %v", err)
	}

	if len(raws) != 1 || raws[0].Destination != "Perth" {
		t.Fatalf("unexpected departures via proxy: %+v", raws)
	}
	if proxiedTarget != server.URL+"/live" {
		t.Errorf("expected the proxy to receive the original page URL, got %q", proxiedTarget)
	}
}
