// Package slims is a minimal client for the SLIMS LIMS REST API, covering
// the queries the wrapper needs: finding samples flagged for secondary
// analysis, resolving their fastq file locations, and maintaining the
// bioinformatics status records attached to a sample.
package slims

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// SLIMS content types used by the wrapper.
const (
	ContentTypeDNA            int64 = 6
	ContentTypeFastq          int64 = 22
	ContentTypeBioinformatics int64 = 23
)

type Client struct {
	baseURL  string
	username string
	password string
	hc       *http.Client
}

// NewClient returns a client for the SLIMS REST endpoint at baseURL,
// e.g. https://slims.example.com/slimsrest/rest.
func NewClient(baseURL, username, password string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		hc:       &http.Client{Timeout: time.Minute},
	}
}

// Criterion is one node of a SLIMS fetch criteria tree.
type Criterion struct {
	Operator  string      `json:"operator"`
	FieldName string      `json:"fieldName,omitempty"`
	Value     interface{} `json:"value,omitempty"`
	Criteria  []Criterion `json:"criteria,omitempty"`
}

// Equals matches records where field equals value.
func Equals(field string, value interface{}) Criterion {
	return Criterion{Operator: "equals", FieldName: field, Value: value}
}

// Conjunction matches records satisfying all of crits.
func Conjunction(crits ...Criterion) Criterion {
	return Criterion{Operator: "and", Criteria: crits}
}

// Fetch returns all records of table matching criteria.
func (c *Client) Fetch(table string, criteria Criterion) ([]Record, error) {
	body, err := json.Marshal(map[string]interface{}{"criteria": criteria})
	if err != nil {
		return nil, errors.Wrap(err, "encoding slims criteria")
	}
	return c.do(http.MethodPost, table+"/advanced", body)
}

// FetchByPK returns the single record of table with primary key pk.
func (c *Client) FetchByPK(table string, pk int64) (Record, error) {
	records, err := c.do(http.MethodGet, fmt.Sprintf("%s/%d", table, pk), nil)
	if err != nil {
		return Record{}, err
	}
	if len(records) != 1 {
		return Record{}, errors.Errorf("slims: expected 1 %s record for pk %d, got %d", table, pk, len(records))
	}
	return records[0], nil
}

// Add creates a new record in table with the given fields.
func (c *Client) Add(table string, fields map[string]interface{}) (Record, error) {
	body, err := json.Marshal(fields)
	if err != nil {
		return Record{}, errors.Wrap(err, "encoding slims record")
	}
	records, err := c.do(http.MethodPut, table, body)
	if err != nil {
		return Record{}, err
	}
	if len(records) != 1 {
		return Record{}, errors.Errorf("slims: add to %s returned %d records", table, len(records))
	}
	return records[0], nil
}

// Update modifies fields of the record of table with primary key pk.
func (c *Client) Update(table string, pk int64, fields map[string]interface{}) (Record, error) {
	body, err := json.Marshal(fields)
	if err != nil {
		return Record{}, errors.Wrap(err, "encoding slims record")
	}
	records, err := c.do(http.MethodPost, fmt.Sprintf("%s/%d", table, pk), body)
	if err != nil {
		return Record{}, err
	}
	if len(records) != 1 {
		return Record{}, errors.Errorf("slims: update of %s/%d returned %d records", table, pk, len(records))
	}
	return records[0], nil
}

func (c *Client) do(method, path string, body []byte) ([]Record, error) {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, c.baseURL+"/"+path, reader)
	if err != nil {
		return nil, errors.Wrap(err, "building slims request")
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "slims unreachable at %s", c.baseURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Errorf("slims: %s %s returned %s", method, path, resp.Status)
	}

	var payload struct {
		Entities []Record `json:"entities"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrap(err, "decoding slims response")
	}
	return payload.Entities, nil
}
