package ezmoney

import (
	"bytes"
	"encoding/json"
	"fmt"
	stdhtml "html"
	"strings"

	"github.com/chiehmin/etfmon"
	"golang.org/x/net/html"
)

// The payload found in div#DataAsset's data-content attribute is a list
// of asset classes; stock constituents live under AssetCode "ST":
//
//	[
//	  {
//	    "AssetCode": "ST",
//	    "Details": [
//	      {"DetailCode": "2330", "DetailName": "台積電",
//	       "Share": 1280000, "NavRate": 9.13, "Amount": 1852160000},
//	      ...
//	    ]
//	  },
//	  {"AssetCode": "CA", ...}
//	]
type asset struct {
	AssetCode string   `json:"AssetCode"`
	Details   []detail `json:"Details"`
}

type detail struct {
	DetailCode string  `json:"DetailCode"`
	DetailName string  `json:"DetailName"`
	Share      float64 `json:"Share"`
	NavRate    float64 `json:"NavRate"`
	Amount     float64 `json:"Amount"`
}

// parseHoldings extracts the stock holdings table from a fund page.
func parseHoldings(page []byte) ([]etfmon.Holding, error) {
	payload, err := dataAssetPayload(page)
	if err != nil {
		return nil, err
	}

	var assets []asset
	if err := json.Unmarshal([]byte(payload), &assets); err != nil {
		return nil, fmt.Errorf("cannot decode DataAsset payload: %w", err)
	}

	var rows []etfmon.Holding
	for _, a := range assets {
		if a.AssetCode != "ST" {
			continue
		}
		for _, d := range a.Details {
			rows = append(rows, etfmon.Holding{
				SecurityID:   strings.TrimSpace(d.DetailCode),
				SecurityName: strings.TrimSpace(d.DetailName),
				Shares:       etfmon.Q(d.Share),
				Weight:       etfmon.Percent(d.NavRate),
				Amount:       etfmon.M(d.Amount, etfmon.DefaultCurrency),
			})
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no stock holdings found in DataAsset payload")
	}
	return rows, nil
}

// dataAssetPayload walks the page and returns the unescaped
// data-content attribute of the div with id DataAsset.
func dataAssetPayload(page []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("cannot parse fund page html: %w", err)
	}

	var content string
	var found bool
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found {
			return
		}
		if n.Type == html.ElementNode && n.Data == "div" {
			var isTarget bool
			var raw string
			for _, attr := range n.Attr {
				switch attr.Key {
				case "id":
					isTarget = attr.Val == "DataAsset"
				case "data-content":
					raw = attr.Val
				}
			}
			if isTarget {
				content, found = raw, true
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if !found {
		return "", fmt.Errorf("no DataAsset div in fund page")
	}
	if content == "" {
		return "", fmt.Errorf("DataAsset div has no data-content attribute")
	}
	// The attribute value is HTML-escaped JSON. x/net/html unescapes
	// entities while parsing attributes; pages in the wild have been
	// seen double-escaped, and one more pass is a no-op on plain JSON.
	return stdhtml.UnescapeString(content), nil
}
