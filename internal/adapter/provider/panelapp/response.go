package panelapp

import (
	"bytes"
	"encoding/json"
)

// apiPage is one page of a PanelApp list endpoint.
type apiPage struct {
	Count    int              `json:"count"`
	Next     *string          `json:"next"`
	Previous *string          `json:"previous"`
	Results  []map[string]any `json:"results"`
}

// dump is the on-disk shape of a fetched entity.
type dump struct {
	Results []map[string]any `json:"results"`
}

func decodePage(data []byte) (*apiPage, error) {
	var page apiPage
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&page); err != nil {
		return nil, err
	}
	return &page, nil
}
