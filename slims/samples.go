package slims

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Info is the subset of a SLIMS DNA record the wrapper cares about,
// flattened from the raw column list.
type Info struct {
	ContentID         string
	Investigator      string
	Department        string
	ResponderMails    []string
	IsResearch        bool
	ResearchProject   string
	Gender            string
	IsPriority        bool
	PCR               string
	IsTrio            bool
	TrioID            string
	TrioRole          string
	SecondaryAnalysis []int64
	TertiaryAnalysis  []int64
}

// SamplesForAnalysis returns all DNA records flagged with the given
// secondary analysis key.
func (c *Client) SamplesForAnalysis(secondaryAnalysis int64) ([]Record, error) {
	return c.Fetch("Content", Conjunction(
		Equals("cntn_cstm_secondaryAnalysis", secondaryAnalysis),
		Equals("cntn_fk_contentType", ContentTypeDNA),
	))
}

// FastqRecords returns all fastq records registered for a content id.
func (c *Client) FastqRecords(contentID string) ([]Record, error) {
	return c.Fetch("Content", Conjunction(
		Equals("cntn_id", contentID),
		Equals("cntn_fk_contentType", ContentTypeFastq),
	))
}

// Translate flattens a DNA record into an Info, resolving the department
// and responder reference records.
func (c *Client) Translate(rec Record) (Info, error) {
	info := Info{
		ContentID:         rec.String("cntn_id"),
		Investigator:      "CGG",
		IsResearch:        rec.Bool("cntn_cstm_research"),
		ResearchProject:   rec.String("cntn_cstm_researchProject"),
		Gender:            rec.String("gender"),
		IsPriority:        rec.Bool("cntn_cstm_priority"),
		PCR:               rec.String("cntn_cstm_pcr"),
		IsTrio:            rec.Bool("cntn_cstm_trio"),
		TrioID:            rec.String("cntn_cstm_trioID"),
		TrioRole:          rec.String("cntn_cstm_trioRole"),
		SecondaryAnalysis: rec.Int64s("cntn_cstm_secondaryAnalysis"),
		TertiaryAnalysis:  rec.Int64s("cntn_cstm_tertiaryAnalysis"),
	}

	department, err := c.FetchByPK("ReferenceDataRecord", rec.Int64("cntn_cstm_department"))
	if err != nil {
		return info, errors.Wrapf(err, "resolving department for %s", info.ContentID)
	}
	info.Department = department.String("rdrc_name")

	for _, pk := range department.Int64s("rdrc_cstm_responder") {
		responder, err := c.FetchByPK("ReferenceDataRecord", pk)
		if err != nil {
			return info, errors.Wrapf(err, "resolving responder for %s", info.ContentID)
		}
		info.ResponderMails = append(info.ResponderMails, responder.String("rdrc_cstm_email"))
	}
	return info, nil
}

// FastqSet is the demultiplexer result attached to one fastq record.
type FastqSet struct {
	Reads int64
	Paths []string
}

// demuxerResult mirrors the JSON blob the demultiplexer writes into
// cntn_cstm_demuxerSampleResult.
type demuxerResult struct {
	FastqPaths []string `json:"fastq_paths"`
	TotalReads int64    `json:"total_reads"`
}

// FastqPaths extracts fastq file locations and read counts from fastq
// records. Records flagged doNotInclude are skipped. Every listed path
// must exist locally.
func FastqPaths(records []Record) ([]FastqSet, error) {
	var ans []FastqSet
	for _, rec := range records {
		if rec.Bool("cntn_cstm_doNotInclude") {
			continue
		}
		raw := rec.String("cntn_cstm_demuxerSampleResult")
		if raw == "" {
			return nil, errors.Errorf("fastq record without demuxer info: %s", rec.String("cntn_id"))
		}
		var result demuxerResult
		if err := json.Unmarshal([]byte(raw), &result); err != nil {
			return nil, errors.Wrapf(err, "parsing demuxer info for %s", rec.String("cntn_id"))
		}
		for _, path := range result.FastqPaths {
			if _, err := os.Stat(path); err != nil {
				return nil, errors.Errorf("a fastq path from slims does not exist locally: %s", path)
			}
		}
		ans = append(ans, FastqSet{Reads: result.TotalReads, Paths: result.FastqPaths})
	}
	return ans, nil
}

// RunTag returns the newest run tag (YYMMDD_flowcell) among fastq
// records, by flowcell date.
func RunTag(records []Record) (string, error) {
	var newest string
	var newestDate time.Time
	for _, rec := range records {
		tag := rec.String("cntn_cstm_runTag")
		if tag == "" {
			continue
		}
		date, err := time.Parse("060102", strings.Split(tag, "_")[0])
		if err != nil {
			return "", errors.Wrapf(err, "malformed run tag %s", tag)
		}
		if newest == "" || date.After(newestDate) {
			newest = tag
			newestDate = date
		}
	}
	if newest == "" {
		return "", errors.New("no run tag found in fastq records")
	}
	return newest, nil
}
