package countries

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"
)

// Country is one entry of the dial-code directory.
type Country struct {
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
	IDD struct {
		Root     string   `json:"root"`
		Suffixes []string `json:"suffixes"`
	} `json:"idd"`
	Flags struct {
		PNG string `json:"png"`
	} `json:"flags"`
	CCA2 string `json:"cca2"`
}

// Client fetches the read-only country/dial-code directory. Results are
// cached in memory; when the upstream is unavailable a small built-in list
// is served instead.
type Client struct {
	apiURL string
	client *http.Client

	mu     sync.Mutex
	cached []Country
}

func NewClient(apiURL string) *Client {
	return &Client{
		apiURL: apiURL,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// List returns the directory sorted by common name, entries without dial
// data filtered out.
func (c *Client) List(ctx context.Context) ([]Country, error) {
	c.mu.Lock()
	if c.cached != nil {
		cached := c.cached
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	list, err := c.fetch(ctx)
	if err != nil {
		return fallbackCountries(), nil
	}

	c.mu.Lock()
	c.cached = list
	c.mu.Unlock()
	return list, nil
}

func (c *Client) fetch(ctx context.Context) ([]Country, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create countries request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch countries: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("countries API returned status %d", resp.StatusCode)
	}

	var raw []Country
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode countries response: %w", err)
	}

	list := raw[:0]
	for _, country := range raw {
		if country.IDD.Root != "" && len(country.IDD.Suffixes) > 0 {
			list = append(list, country)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name.Common < list[j].Name.Common
	})
	return list, nil
}

// fallbackCountries is served when the directory upstream fails.
func fallbackCountries() []Country {
	mk := func(name, root, png, cca2 string) Country {
		var c Country
		c.Name.Common = name
		c.IDD.Root = root
		c.IDD.Suffixes = []string{""}
		c.Flags.PNG = png
		c.CCA2 = cca2
		return c
	}
	return []Country{
		mk("United States", "+1", "https://flagcdn.com/w320/us.png", "US"),
		mk("United Kingdom", "+44", "https://flagcdn.com/w320/gb.png", "GB"),
		mk("India", "+91", "https://flagcdn.com/w320/in.png", "IN"),
	}
}
