package country

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type Name struct {
	Common   string `json:"common"`
	Official string `json:"official"`
}

type Currency struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// CurrencySet keeps currencies in the order the profile source lists them;
// the first entry is the country's default conversion target.
type CurrencySet struct {
	Codes  []string
	ByCode map[string]Currency
}

func (c *CurrencySet) UnmarshalJSON(data []byte) error {
	c.Codes = nil
	c.ByCode = map[string]Currency{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("currencies: expected object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		code, _ := keyTok.(string)
		var cur Currency
		if err := dec.Decode(&cur); err != nil {
			return fmt.Errorf("currencies[%s]: %w", code, err)
		}
		if _, dup := c.ByCode[code]; !dup {
			c.Codes = append(c.Codes, code)
		}
		c.ByCode[code] = cur
	}
	_, err = dec.Token()
	return err
}

// First returns the first listed currency code.
func (c CurrencySet) First() (string, bool) {
	if len(c.Codes) == 0 {
		return "", false
	}
	return c.Codes[0], true
}

type IDD struct {
	Root     string   `json:"root"`
	Suffixes []string `json:"suffixes"`
}

// RestCountriesAPIResponse mirrors one element of GET /alpha/{code}.
type RestCountriesAPIResponse []struct {
	Name  Name   `json:"name"`
	CCA2  string `json:"cca2"`
	CCA3  string `json:"cca3"`
	Flags struct {
		PNG string `json:"png"`
	} `json:"flags"`
	Population  int64             `json:"population"`
	Capital     []string          `json:"capital"`
	Region      string            `json:"region"`
	Subregion   string            `json:"subregion"`
	Currencies  CurrencySet       `json:"currencies"`
	Languages   map[string]string `json:"languages"`
	IDD         IDD               `json:"idd"`
	Area        float64           `json:"area"`
	Timezones   []string          `json:"timezones"`
	Car         struct {
		Side string `json:"side"`
	} `json:"car"`
	Maps struct {
		GoogleMaps string `json:"googleMaps"`
	} `json:"maps"`
	LatLng      []float64 `json:"latlng"`
	CapitalInfo struct {
		LatLng []float64 `json:"latlng"`
	} `json:"capitalInfo"`
	Independent bool   `json:"independent"`
	UnMember    bool   `json:"unMember"`
	Status      string `json:"status"`
}

// Country is immutable once fetched.
type Country struct {
	CCA2          string
	CCA3          string
	Name          Name
	FlagPNG       string
	Population    int64
	Capital       []string
	Region        string
	Subregion     string
	Currencies    CurrencySet
	Languages     map[string]string
	IDD           IDD
	Area          float64
	Timezones     []string
	CarSide       string
	GoogleMapsURL string
	LatLng        []float64
	CapitalLatLng []float64
	Independent   bool
	UNMember      bool
	Status        string
}

// Summary is one entry of the country listing.
type Summary struct {
	Name        Name   `json:"name"`
	CCA2        string `json:"cca2"`
	CCA3        string `json:"cca3"`
	Independent bool   `json:"independent"`
	Status      string `json:"status"`
	Flags       struct {
		PNG string `json:"png"`
	} `json:"flags"`
}
