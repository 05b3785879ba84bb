// Package ezmoney fetches active-ETF holdings from the EZMoney fund
// pages. The page embeds the full asset breakdown as a JSON payload in
// the data-content attribute of a div#DataAsset element; scraping it is
// a heuristic concern kept behind the etfmon.Fetcher contract.
package ezmoney

import (
	"fmt"
	"net/http"

	"github.com/chiehmin/etfmon"
)

// fundPages maps a public fund code to its EZMoney page. EZMoney uses
// an internal fund code in the URL ('00981A' maps to '49YTW', found by
// manual browser navigation).
var fundPages = map[string]string{
	"00981A": "https://www.ezmoney.com.tw/ETF/Fund/Info?fundCode=49YTW",
}

// Scraper fetches holdings from EZMoney fund pages.
type Scraper struct {
	client  *http.Client
	headers http.Header
}

// New returns a Scraper with the default client and browser headers.
func New() *Scraper {
	return &Scraper{client: etfmon.NewClient(), headers: etfmon.BrowserHeaders()}
}

// Supports reports whether the scraper knows a page for the fund.
func Supports(fund string) bool {
	_, ok := fundPages[fund]
	return ok
}

// FetchHoldings implements etfmon.Fetcher.
func (s *Scraper) FetchHoldings(fund string) ([]etfmon.Holding, error) {
	addr, ok := fundPages[fund]
	if !ok {
		return nil, &etfmon.FetchError{Fund: fund, Cause: fmt.Errorf("no known EZMoney page for %s", fund)}
	}

	body, err := etfmon.Wget(s.client, addr, s.headers)
	if err != nil {
		return nil, &etfmon.FetchError{Fund: fund, Cause: err}
	}

	rows, err := parseHoldings(body)
	if err != nil {
		return nil, &etfmon.ParseError{Fund: fund, Cause: err, Raw: body}
	}
	return rows, nil
}
