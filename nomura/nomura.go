// Package nomura fetches active-ETF holdings from the Nomura funds
// JSON endpoint. Unlike EZMoney there is no page scraping here, but the
// payload is free-form enough that fields are picked out with jsonpath
// rather than a rigid struct mapping.
package nomura

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/chiehmin/etfmon"
)

/*
	{
	    "success": true,
	    "data": {
	        "fundCode": "00980A",
	        "navDate": "2025-11-27",
	        "holdings": [
	            {
	                "stockId": "2330",
	                "stockName": "台積電",
	                "shares": 1280000,
	                "weight": 9.13,
	                "amount": 1852160000
	            }
	        ]
	    }
	}
*/
var fundEndpoints = map[string]string{
	"00980A": "https://www.nomurafunds.com.tw/api/etf/holdings?fundCode=00980A",
}

// Scraper fetches holdings from the Nomura funds API.
type Scraper struct {
	client  *http.Client
	headers http.Header
}

// New returns a Scraper with the default client and browser headers.
func New() *Scraper {
	return &Scraper{client: etfmon.NewClient(), headers: etfmon.BrowserHeaders()}
}

// Supports reports whether the scraper knows an endpoint for the fund.
func Supports(fund string) bool {
	_, ok := fundEndpoints[fund]
	return ok
}

// FetchHoldings implements etfmon.Fetcher.
func (s *Scraper) FetchHoldings(fund string) ([]etfmon.Holding, error) {
	addr, ok := fundEndpoints[fund]
	if !ok {
		return nil, &etfmon.FetchError{Fund: fund, Cause: fmt.Errorf("no known Nomura endpoint for %s", fund)}
	}

	var jobj any
	body, err := etfmon.Jwget(s.client, addr, s.headers, &jobj)
	if err != nil {
		if body == nil {
			return nil, &etfmon.FetchError{Fund: fund, Cause: err}
		}
		return nil, &etfmon.ParseError{Fund: fund, Cause: err, Raw: body}
	}

	rows, err := extractHoldings(jobj)
	if err != nil {
		return nil, &etfmon.ParseError{Fund: fund, Cause: err, Raw: body}
	}
	return rows, nil
}

// extractHoldings pulls the holdings list out of the decoded payload.
func extractHoldings(jobj any) ([]etfmon.Holding, error) {
	const path = "$.data.holdings"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("cannot evaluate %q: %w", path, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected holdings payload %T for %q", jval, path)
	}

	var rows []etfmon.Holding
	for i, item := range jlist {
		id, err := jstring(item, "stockId")
		if err != nil {
			return nil, fmt.Errorf("holding %d: %w", i, err)
		}
		name, err := jstring(item, "stockName")
		if err != nil {
			return nil, fmt.Errorf("holding %d: %w", i, err)
		}
		shares, err := jnumber(item, "shares")
		if err != nil {
			return nil, fmt.Errorf("holding %s: %w", id, err)
		}
		weight, err := jnumber(item, "weight")
		if err != nil {
			return nil, fmt.Errorf("holding %s: %w", id, err)
		}
		amount, err := jnumber(item, "amount")
		if err != nil {
			return nil, fmt.Errorf("holding %s: %w", id, err)
		}
		rows = append(rows, etfmon.Holding{
			SecurityID:   strings.TrimSpace(id),
			SecurityName: strings.TrimSpace(name),
			Shares:       etfmon.Q(shares),
			Weight:       etfmon.Percent(weight),
			Amount:       etfmon.M(amount, etfmon.DefaultCurrency),
		})
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no holdings in payload")
	}
	return rows, nil
}

// jstring reads a string field off a holdings item.
func jstring(item any, key string) (string, error) {
	jval, err := jsonpath.Get("$."+key, item)
	if err != nil {
		return "", fmt.Errorf("missing field %q: %w", key, err)
	}
	str, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("field %q is %T, want string", key, jval)
	}
	return str, nil
}

// jnumber reads a numeric field off a holdings item. The endpoint has
// been seen serving both JSON numbers and quoted numbers.
func jnumber(item any, key string) (float64, error) {
	jval, err := jsonpath.Get("$."+key, item)
	if err != nil {
		return 0, fmt.Errorf("missing field %q: %w", key, err)
	}
	switch v := jval.(type) {
	case float64:
		return v, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("field %q: %w", key, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("field %q is %T, want number", key, jval)
	}
}
