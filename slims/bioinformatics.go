package slims

import (
	"github.com/pkg/errors"
)

// Secondary analysis states recorded on bioinformatics records.
const (
	StateNovel    = "novel"
	StateRunning  = "running"
	StateComplete = "complete"
	StateError    = "error"
)

// SLIMS content status enum value for a pending record.
const statusPending int64 = 10

// Bioinformatics records live at a fixed location in the SLIMS tree.
const locationBioinformatics int64 = 83

// FindBioinformatics returns the bioinformatics record for a content id
// and secondary analysis, if one exists. More than one such record
// violates the one-record-per-analysis invariant and is an error.
func (c *Client) FindBioinformatics(contentID string, secondaryAnalysis int64) (Record, bool, error) {
	records, err := c.Fetch("Content", Conjunction(
		Equals("cntn_id", contentID),
		Equals("cntn_fk_contentType", ContentTypeBioinformatics),
		Equals("cntn_cstm_secondaryAnalysis", secondaryAnalysis),
	))
	if err != nil {
		return Record{}, false, err
	}
	if len(records) > 1 {
		return Record{}, false, errors.Errorf("multiple bioinformatics records found for %s, analysis %d", contentID, secondaryAnalysis)
	}
	if len(records) == 0 {
		return Record{}, false, nil
	}
	return records[0], true, nil
}

// AddBioinformatics creates a bioinformatics record for contentID, linked
// to the originating fastq record and tagged with the secondary analysis
// key and its initial state.
func (c *Client) AddBioinformatics(contentID string, originalContentPK, secondaryAnalysis int64, state string) (Record, error) {
	if originalContentPK == 0 {
		return Record{}, errors.New("cannot add a bioinformatics record without a parent fastq record")
	}
	return c.Add("Content", map[string]interface{}{
		"cntn_id":                          contentID,
		"cntn_fk_contentType":              ContentTypeBioinformatics,
		"cntn_status":                      statusPending,
		"cntn_fk_location":                 locationBioinformatics,
		"cntn_fk_originalContent":          originalContentPK,
		"cntn_fk_user":                     "",
		"cntn_cstm_secondaryAnalysis":      []int64{secondaryAnalysis},
		"cntn_cstm_SecondaryAnalysisState": state,
	})
}

// SetAnalysisState updates the secondary analysis state of an existing
// bioinformatics record.
func (c *Client) SetAnalysisState(pk int64, state string) error {
	_, err := c.Update("Content", pk, map[string]interface{}{
		"cntn_cstm_SecondaryAnalysisState": state,
	})
	return errors.Wrapf(err, "setting analysis state %s", state)
}
