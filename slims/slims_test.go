package slims

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCriteriaEncoding(t *testing.T) {
	crit := Conjunction(
		Equals("cntn_cstm_secondaryAnalysis", 42),
		Equals("cntn_fk_contentType", ContentTypeDNA),
	)
	data, err := json.Marshal(crit)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"operator":"and","criteria":[` +
		`{"operator":"equals","fieldName":"cntn_cstm_secondaryAnalysis","value":42},` +
		`{"operator":"equals","fieldName":"cntn_fk_contentType","value":6}]}`
	if string(data) != want {
		t.Errorf("wrong criteria encoding:\ngot  %s\nwant %s", data, want)
	}
}

func TestRecordAccessors(t *testing.T) {
	raw := `{
		"pk": 101,
		"tableName": "Content",
		"columns": [
			{"name": "cntn_id", "value": "DNA123456"},
			{"name": "cntn_fk_contentType", "value": 6},
			{"name": "cntn_cstm_priority", "value": true},
			{"name": "cntn_cstm_secondaryAnalysis", "value": [42, 43]},
			{"name": "cntn_cstm_department", "value": 5},
			{"name": "cntn_cstm_researchProject", "value": null}
		]
	}`
	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatal(err)
	}

	if rec.PK != 101 {
		t.Error("wrong pk:", rec.PK)
	}
	if rec.String("cntn_id") != "DNA123456" {
		t.Error("wrong cntn_id:", rec.String("cntn_id"))
	}
	if rec.Int64("cntn_fk_contentType") != 6 {
		t.Error("wrong content type:", rec.Int64("cntn_fk_contentType"))
	}
	if !rec.Bool("cntn_cstm_priority") {
		t.Error("expected priority to be true")
	}
	list := rec.Int64s("cntn_cstm_secondaryAnalysis")
	if len(list) != 2 || list[0] != 42 || list[1] != 43 {
		t.Error("wrong analysis list:", list)
	}
	single := rec.Int64s("cntn_cstm_department")
	if len(single) != 1 || single[0] != 5 {
		t.Error("single value should unwrap to a one-element list:", single)
	}
	if rec.String("cntn_cstm_researchProject") != "" {
		t.Error("null column should read as empty string")
	}
	if rec.String("cntn_missing") != "" {
		t.Error("missing column should read as empty string")
	}
}

func entityResponse(records ...map[string]interface{}) string {
	data, _ := json.Marshal(map[string]interface{}{"entities": records})
	return string(data)
}

func contentRecord(pk int64, columns map[string]interface{}) map[string]interface{} {
	var cols []map[string]interface{}
	for name, value := range columns {
		cols = append(cols, map[string]interface{}{"name": name, "value": value})
	}
	return map[string]interface{}{"pk": pk, "tableName": "Content", "columns": cols}
}

func TestSamplesForAnalysis(t *testing.T) {
	var gotPath, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		fmt.Fprint(w, entityResponse(contentRecord(101, map[string]interface{}{"cntn_id": "DNA123456"})))
	}))
	defer server.Close()

	client := NewClient(server.URL, "user", "pass")
	records, err := client.SamplesForAnalysis(42)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].String("cntn_id") != "DNA123456" {
		t.Error("wrong records:", records)
	}
	if gotPath != "/Content/advanced" {
		t.Error("wrong path:", gotPath)
	}
	var body struct {
		Criteria Criterion `json:"criteria"`
	}
	if err = json.Unmarshal([]byte(gotBody), &body); err != nil {
		t.Fatal(err)
	}
	if body.Criteria.Operator != "and" || len(body.Criteria.Criteria) != 2 {
		t.Error("wrong criteria:", gotBody)
	}
}

func TestFetchUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "user", "pass")
	if _, err := client.SamplesForAnalysis(42); err == nil {
		t.Error("expected an error for an unreachable server")
	}
}

func TestFetchBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(server.URL, "user", "pass")
	if _, err := client.SamplesForAnalysis(42); err == nil {
		t.Error("expected an error for a 403 response")
	}
}

func TestTranslate(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ReferenceDataRecord/5", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, entityResponse(map[string]interface{}{
			"pk": 5, "tableName": "ReferenceDataRecord",
			"columns": []map[string]interface{}{
				{"name": "rdrc_name", "value": "KK"},
				{"name": "rdrc_cstm_responder", "value": []int64{7}},
			},
		}))
	})
	mux.HandleFunc("/ReferenceDataRecord/7", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, entityResponse(map[string]interface{}{
			"pk": 7, "tableName": "ReferenceDataRecord",
			"columns": []map[string]interface{}{
				{"name": "rdrc_cstm_email", "value": "kk@example.com"},
			},
		}))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	var rec Record
	raw := `{
		"pk": 101,
		"columns": [
			{"name": "cntn_id", "value": "DNA123456"},
			{"name": "cntn_cstm_department", "value": 5},
			{"name": "cntn_cstm_priority", "value": true},
			{"name": "cntn_cstm_secondaryAnalysis", "value": [42]},
			{"name": "gender", "value": "F"}
		]
	}`
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatal(err)
	}

	client := NewClient(server.URL, "user", "pass")
	info, err := client.Translate(rec)
	if err != nil {
		t.Fatal(err)
	}
	if info.ContentID != "DNA123456" {
		t.Error("wrong content id:", info.ContentID)
	}
	if info.Department != "KK" {
		t.Error("wrong department:", info.Department)
	}
	if len(info.ResponderMails) != 1 || info.ResponderMails[0] != "kk@example.com" {
		t.Error("wrong responder mails:", info.ResponderMails)
	}
	if !info.IsPriority || info.Gender != "F" {
		t.Error("wrong flags:", info)
	}
	if len(info.SecondaryAnalysis) != 1 || info.SecondaryAnalysis[0] != 42 {
		t.Error("wrong secondary analysis:", info.SecondaryAnalysis)
	}
}

func TestFindBioinformaticsInvariant(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, entityResponse(
			contentRecord(1, map[string]interface{}{"cntn_id": "DNA123456"}),
			contentRecord(2, map[string]interface{}{"cntn_id": "DNA123456"}),
		))
	}))
	defer server.Close()

	client := NewClient(server.URL, "user", "pass")
	if _, _, err := client.FindBioinformatics("DNA123456", 42); err == nil {
		t.Error("expected an error for duplicate bioinformatics records")
	}
}

func TestFindBioinformaticsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, entityResponse())
	}))
	defer server.Close()

	client := NewClient(server.URL, "user", "pass")
	_, found, err := client.FindBioinformatics("DNA123456", 42)
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Error("expected no record to be found")
	}
}
