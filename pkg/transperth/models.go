package transperth

// Line identifies one rail line serving the station and the live times page
// to fetch for it.
type Line struct {
	Name string
	URL  string
}

// liveTimesResponse represents the object returned by the internal
// live train times JSON endpoint.
type liveTimesResponse struct {
	Entries []liveTimesEntry `json:"entries"`
}

// liveTimesEntry is a single upcoming service in the JSON response.
type liveTimesEntry struct {
	Platform    string `json:"platform"`
	Destination string `json:"destination"`
	DisplayTime string `json:"displayTime"`
	Pattern     string `json:"pattern"`
	StopPattern string `json:"stopPattern"`
	Line        string `json:"line"`
}
