package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBoundaryURL is the public brazil-states GeoJSON used by the maps.
const DefaultBoundaryURL = "https://raw.githubusercontent.com/codeforamerica/click_that_hood/master/public/data/brazil-states.geojson"

// StateFeature is one state boundary: the UF code, display name, and the
// raw geometry passed through to whatever draws the map.
type StateFeature struct {
	Code     string
	Name     string
	Geometry json.RawMessage
}

// StateSet is the decoded boundary collection.
type StateSet struct {
	Features []StateFeature
}

// Names returns the code-to-display-name mapping.
func (s *StateSet) Names() map[string]string {
	out := make(map[string]string, len(s.Features))
	for _, f := range s.Features {
		out[f.Code] = f.Name
	}
	return out
}

// Codes returns every state code in feature order.
func (s *StateSet) Codes() []string {
	out := make([]string, len(s.Features))
	for i, f := range s.Features {
		out[i] = f.Code
	}
	return out
}

// BoundaryClient fetches state boundary data over HTTP. The zero client is
// not usable; construct with NewBoundaryClient.
type BoundaryClient struct {
	url    string
	client *http.Client
}

// NewBoundaryClient returns a client for the given GeoJSON URL. An empty
// url falls back to DefaultBoundaryURL.
func NewBoundaryClient(url string) *BoundaryClient {
	if url == "" {
		url = DefaultBoundaryURL
	}
	return &BoundaryClient{
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchStates downloads and decodes the boundary collection. Failures are
// returned as-is with context; there is no retry here, callers own the
// retry policy.
func (c *BoundaryClient) FetchStates(ctx context.Context) (*StateSet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch state boundaries: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch state boundaries: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch state boundaries: unexpected status %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch state boundaries: %w", err)
	}
	return decodeStates(body)
}

func decodeStates(data []byte) (*StateSet, error) {
	var doc struct {
		Features []struct {
			Properties struct {
				Sigla string `json:"sigla"`
				Name  string `json:"name"`
			} `json:"properties"`
			Geometry json.RawMessage `json:"geometry"`
		} `json:"features"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode state boundaries: %w", err)
	}
	set := &StateSet{Features: make([]StateFeature, 0, len(doc.Features))}
	for _, f := range doc.Features {
		set.Features = append(set.Features, StateFeature{
			Code:     f.Properties.Sigla,
			Name:     f.Properties.Name,
			Geometry: f.Geometry,
		})
	}
	return set, nil
}
