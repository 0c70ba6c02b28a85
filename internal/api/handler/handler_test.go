package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"csv-manager/internal/api"
	"csv-manager/internal/api/handler"
	"csv-manager/internal/config"
	"csv-manager/internal/model"
	"csv-manager/internal/store"
	"csv-manager/pkg/router"
)

const peopleCSV = "name,age,city\nAlice,30,Berlin\nBob,25,London\nCarol,35,Berlin\n"

func setupServer(t *testing.T) http.Handler {
	t.Helper()
	if err := store.InitDB(filepath.Join(t.TempDir(), "test.db")); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.CloseDB() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := config.Config{
		DefaultPageSize: 10,
		MaxPageSize:     500,
		SampleSize:      100,
	}
	r := router.New(log)
	api.RegisterRoutes(r, handler.New(cfg, log))
	return r.Handler()
}

func doRequest(t *testing.T, srv http.Handler, method, path, userID string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func uploadCSV(t *testing.T, srv http.Handler, userID, name, csvBody string) model.Dataset {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(fw, csvBody); err != nil {
		t.Fatal(err)
	}
	if err := mw.WriteField("name", name); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/datasets/upload", &buf)
	req.Header.Set("X-User-ID", userID)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("upload status = %d, body %s", rec.Code, rec.Body.String())
	}

	var ds model.Dataset
	if err := json.Unmarshal(rec.Body.Bytes(), &ds); err != nil {
		t.Fatal(err)
	}
	return ds
}

func decodeRows(t *testing.T, rec *httptest.ResponseRecorder) (rows []model.Row, total int) {
	t.Helper()
	var body struct {
		Rows  []model.Row `json:"rows"`
		Total int         `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	return body.Rows, body.Total
}

func TestUploadAndGetDataset(t *testing.T) {
	srv := setupServer(t)
	user, err := store.CreateUser("alice@example.com", "Alice")
	if err != nil {
		t.Fatal(err)
	}

	ds := uploadCSV(t, srv, user.ID, "people.csv", peopleCSV)
	if ds.Name != "people.csv" || ds.RowCount != 3 || len(ds.ColumnHeaders) != 3 {
		t.Fatalf("uploaded dataset = %+v", ds)
	}

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/datasets/"+ds.ID, user.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/datasets", user.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var list []model.Dataset
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != ds.ID {
		t.Errorf("list = %+v, want the uploaded dataset", list)
	}
}

func TestMissingOrUnknownIdentity(t *testing.T) {
	srv := setupServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/datasets", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no header status = %d, want 401", rec.Code)
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/datasets", "ghost", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unknown user status = %d, want 401", rec.Code)
	}
}

func TestListRowsEndpoint(t *testing.T) {
	srv := setupServer(t)
	user, err := store.CreateUser("alice@example.com", "Alice")
	if err != nil {
		t.Fatal(err)
	}
	ds := uploadCSV(t, srv, user.ID, "people.csv", peopleCSV)
	base := "/api/v1/datasets/" + ds.ID + "/rows"

	rec := doRequest(t, srv, http.MethodGet, base, user.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("rows status = %d, body %s", rec.Code, rec.Body.String())
	}
	rows, total := decodeRows(t, rec)
	if total != 3 || len(rows) != 3 {
		t.Errorf("got %d rows, total %d, want 3/3", len(rows), total)
	}

	// case-insensitive substring filter
	rec = doRequest(t, srv, http.MethodGet, base+`?filters={"city":"berlin"}`, user.ID, nil)
	rows, total = decodeRows(t, rec)
	if total != 2 {
		t.Errorf("filtered total = %d, want 2", total)
	}

	// sorted page: total stays the filtered count, not the page length
	rec = doRequest(t, srv, http.MethodGet, base+"?page=2&limit=2&sortColumn=name&sortDirection=desc", user.ID, nil)
	rows, total = decodeRows(t, rec)
	if total != 3 || len(rows) != 1 {
		t.Errorf("page 2: got %d rows, total %d, want 1/3", len(rows), total)
	}
	if rows[0].Data["name"].String() != "Alice" {
		t.Errorf("desc page 2 row = %+v, want Alice last", rows[0].Data)
	}

	cases := []struct {
		name  string
		query string
	}{
		{"malformed filters", "?filters=notjson"},
		{"zero page", "?page=0"},
		{"zero limit", "?limit=0"},
		{"bad direction", "?sortDirection=sideways"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodGet, base+tc.query, user.ID, nil)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400, body %s", rec.Code, rec.Body.String())
			}
		})
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/datasets/nope/rows", user.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("absent dataset status = %d, want 404", rec.Code)
	}
}

func TestUpdateCellEndpoint(t *testing.T) {
	srv := setupServer(t)
	user, err := store.CreateUser("alice@example.com", "Alice")
	if err != nil {
		t.Fatal(err)
	}
	ds := uploadCSV(t, srv, user.ID, "people.csv", peopleCSV)
	base := "/api/v1/datasets/" + ds.ID + "/rows"

	rows, _ := decodeRows(t, doRequest(t, srv, http.MethodGet, base, user.ID, nil))

	body := `{"rowId":"` + rows[0].ID + `","column":"age","value":31}`
	rec := doRequest(t, srv, http.MethodPatch, base, user.ID, strings.NewReader(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("patch status = %d, body %s", rec.Code, rec.Body.String())
	}
	var updated model.Row
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatal(err)
	}
	if got := updated.Data["age"]; got.Kind != model.KindNumber || got.Num != 31 {
		t.Errorf("updated cell = %+v, want number 31", got)
	}

	// each JSON scalar keeps its type through the edit
	scalars := []struct {
		name  string
		value string
		want  model.Value
	}{
		{"string", `"thirty"`, model.StringValue("thirty")},
		{"bool", `true`, model.BoolValue(true)},
		{"null", `null`, model.NullValue()},
	}
	for _, tc := range scalars {
		t.Run(tc.name, func(t *testing.T) {
			body := `{"rowId":"` + rows[0].ID + `","column":"age","value":` + tc.value + `}`
			rec := doRequest(t, srv, http.MethodPatch, base, user.ID, strings.NewReader(body))
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}
			var row model.Row
			if err := json.Unmarshal(rec.Body.Bytes(), &row); err != nil {
				t.Fatal(err)
			}
			if got := row.Data["age"]; got != tc.want {
				t.Errorf("cell = %+v, want %+v", got, tc.want)
			}
		})
	}

	cases := []struct {
		name string
		body string
		want int
	}{
		{"unknown column", `{"rowId":"` + rows[0].ID + `","column":"salary","value":"1"}`, http.StatusBadRequest},
		{"missing rowId", `{"column":"age","value":"1"}`, http.StatusBadRequest},
		{"malformed body", `{`, http.StatusBadRequest},
		{"unknown row", `{"rowId":"nope","column":"age","value":"1"}`, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodPatch, base, user.ID, strings.NewReader(tc.body))
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d, body %s", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}

func TestSummaryEndpoint(t *testing.T) {
	srv := setupServer(t)
	user, err := store.CreateUser("alice@example.com", "Alice")
	if err != nil {
		t.Fatal(err)
	}
	ds := uploadCSV(t, srv, user.ID, "people.csv", peopleCSV)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/datasets/"+ds.ID+"/summary", user.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("summary status = %d, body %s", rec.Code, rec.Body.String())
	}

	var body struct {
		DatasetID  string `json:"datasetId"`
		SampleSize int    `json:"sampleSize"`
		Columns    map[string]struct {
			Count int     `json:"count"`
			Type  string  `json:"dataType"`
			Mean  float64 `json:"mean"`
		} `json:"columns"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.SampleSize != 3 || len(body.Columns) != 3 {
		t.Fatalf("summary body = %+v", body)
	}
	if age := body.Columns["age"]; age.Type != "number" || age.Mean != 30 {
		t.Errorf("age stats = %+v, want number with mean 30", age)
	}
	if city := body.Columns["city"]; city.Type != "string" {
		t.Errorf("city stats = %+v, want string", city)
	}
}

func TestChartEndpoint(t *testing.T) {
	srv := setupServer(t)
	user, err := store.CreateUser("alice@example.com", "Alice")
	if err != nil {
		t.Fatal(err)
	}
	ds := uploadCSV(t, srv, user.ID, "people.csv", peopleCSV)
	base := "/api/v1/datasets/" + ds.ID + "/chart"

	rec := doRequest(t, srv, http.MethodGet, base+"?column=age", user.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("chart status = %d, body %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Column         string   `json:"column"`
		Kind           string   `json:"kind"`
		AvailableKinds []string `json:"availableKinds"`
		Message        string   `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Kind != "bar" || len(body.AvailableKinds) != 2 {
		t.Errorf("numeric chart = %+v, want default bar of [bar line]", body)
	}

	// explicit kind selection
	rec = doRequest(t, srv, http.MethodGet, base+"?column=age&kind=line", user.ID, nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Kind != "line" {
		t.Errorf("kind = %q, want line", body.Kind)
	}

	// unknown column is an input error, distinct from the no-chart state
	rec = doRequest(t, srv, http.MethodGet, base+"?column=salary", user.ID, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown column status = %d, want 400", rec.Code)
	}
	rec = doRequest(t, srv, http.MethodGet, base, user.ID, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing column status = %d, want 400", rec.Code)
	}
}

func TestChartNoKindAvailable(t *testing.T) {
	srv := setupServer(t)
	user, err := store.CreateUser("alice@example.com", "Alice")
	if err != nil {
		t.Fatal(err)
	}
	// single distinct textual value: no chart kind applies
	ds := uploadCSV(t, srv, user.ID, "flat.csv", "status\nok\nok\nok\n")

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/datasets/"+ds.ID+"/chart?column=status", user.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("chart status = %d, body %s", rec.Code, rec.Body.String())
	}
	var body struct {
		AvailableKinds []string `json:"availableKinds"`
		Message        string   `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.AvailableKinds) != 0 || body.Message == "" {
		t.Errorf("no-chart body = %+v, want empty kinds with message", body)
	}
}

func TestExportEndpoint(t *testing.T) {
	srv := setupServer(t)
	user, err := store.CreateUser("alice@example.com", "Alice")
	if err != nil {
		t.Fatal(err)
	}
	ds := uploadCSV(t, srv, user.ID, "people.csv", peopleCSV)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/datasets/"+ds.ID+"/export", user.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}
	if got := rec.Body.String(); got != peopleCSV {
		t.Errorf("exported CSV = %q, want round-trip of the upload", got)
	}
}

func TestShareRenameDeleteEndpoints(t *testing.T) {
	srv := setupServer(t)
	owner, err := store.CreateUser("owner@example.com", "Owner")
	if err != nil {
		t.Fatal(err)
	}
	mate, err := store.CreateUser("mate@example.com", "Mate")
	if err != nil {
		t.Fatal(err)
	}
	team, err := store.CreateTeam("analysts", owner.ID)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.AddTeamMember(team.ID, mate.ID, model.RoleMember); err != nil {
		t.Fatal(err)
	}
	ds := uploadCSV(t, srv, owner.ID, "people.csv", peopleCSV)
	base := "/api/v1/datasets/" + ds.ID

	// invisible to the teammate until shared
	if rec := doRequest(t, srv, http.MethodGet, base, mate.ID, nil); rec.Code != http.StatusNotFound {
		t.Errorf("unshared get status = %d, want 404", rec.Code)
	}

	if rec := doRequest(t, srv, http.MethodPost, base+"/share", owner.ID, nil); rec.Code != http.StatusOK {
		t.Fatalf("share status = %d, body %s", rec.Code, rec.Body.String())
	}
	if rec := doRequest(t, srv, http.MethodGet, base, mate.ID, nil); rec.Code != http.StatusOK {
		t.Errorf("shared get status = %d, want 200", rec.Code)
	}

	// rename is owner-or-team-owner, the plain member gets 403
	body := strings.NewReader(`{"name":"renamed.csv"}`)
	if rec := doRequest(t, srv, http.MethodPatch, base, mate.ID, body); rec.Code != http.StatusForbidden {
		t.Errorf("member rename status = %d, want 403", rec.Code)
	}
	body = strings.NewReader(`{"name":"renamed.csv"}`)
	if rec := doRequest(t, srv, http.MethodPatch, base, owner.ID, body); rec.Code != http.StatusOK {
		t.Errorf("owner rename status = %d, want 200", rec.Code)
	}

	// delete is owner only and reads as NotFound for everyone else
	if rec := doRequest(t, srv, http.MethodDelete, base, mate.ID, nil); rec.Code != http.StatusNotFound {
		t.Errorf("member delete status = %d, want 404", rec.Code)
	}
	if rec := doRequest(t, srv, http.MethodDelete, base, owner.ID, nil); rec.Code != http.StatusOK {
		t.Errorf("owner delete status = %d, want 200", rec.Code)
	}
	if rec := doRequest(t, srv, http.MethodGet, base, owner.ID, nil); rec.Code != http.StatusNotFound {
		t.Errorf("deleted get status = %d, want 404", rec.Code)
	}
}

func TestRegisterAndTeamEndpoints(t *testing.T) {
	srv := setupServer(t)

	// registration needs no identity header
	rec := doRequest(t, srv, http.MethodPost, "/api/v1/users", "", strings.NewReader(`{}`))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty registration status = %d, want 400", rec.Code)
	}
	rec = doRequest(t, srv, http.MethodPost, "/api/v1/users", "", strings.NewReader(`{"email":"owner@example.com","name":"Owner"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}
	var owner model.User
	if err := json.Unmarshal(rec.Body.Bytes(), &owner); err != nil {
		t.Fatal(err)
	}
	rec = doRequest(t, srv, http.MethodPost, "/api/v1/users", "", strings.NewReader(`{"email":"mate@example.com","name":"Mate"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}
	var mate model.User
	if err := json.Unmarshal(rec.Body.Bytes(), &mate); err != nil {
		t.Fatal(err)
	}

	if rec := doRequest(t, srv, http.MethodPost, "/api/v1/teams", "", strings.NewReader(`{}`)); rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous team creation status = %d, want 401", rec.Code)
	}

	rec = doRequest(t, srv, http.MethodPost, "/api/v1/teams", owner.ID, strings.NewReader(`{"name":"analysts"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("create team status = %d, body %s", rec.Code, rec.Body.String())
	}
	var team model.Team
	if err := json.Unmarshal(rec.Body.Bytes(), &team); err != nil {
		t.Fatal(err)
	}
	if team.Name != "analysts" {
		t.Errorf("team name = %q, want analysts", team.Name)
	}

	// one team per user
	if rec := doRequest(t, srv, http.MethodPost, "/api/v1/teams", owner.ID, strings.NewReader(`{}`)); rec.Code != http.StatusBadRequest {
		t.Errorf("second team status = %d, want 400", rec.Code)
	}

	membersPath := "/api/v1/teams/" + team.ID + "/members"
	cases := []struct {
		name   string
		caller string
		body   string
		want   int
	}{
		{"non-owner cannot add", mate.ID, `{"userId":"` + mate.ID + `"}`, http.StatusForbidden},
		{"missing userId", owner.ID, `{}`, http.StatusBadRequest},
		{"unknown user", owner.ID, `{"userId":"ghost"}`, http.StatusBadRequest},
		{"invalid role", owner.ID, `{"userId":"` + mate.ID + `","role":"admin"}`, http.StatusBadRequest},
		{"owner adds member", owner.ID, `{"userId":"` + mate.ID + `"}`, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodPost, membersPath, tc.caller, strings.NewReader(tc.body))
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d, body %s", rec.Code, tc.want, rec.Body.String())
			}
		})
	}

	// the fresh member now counts as in a team
	if rec := doRequest(t, srv, http.MethodPost, "/api/v1/teams", mate.ID, strings.NewReader(`{}`)); rec.Code != http.StatusBadRequest {
		t.Errorf("member team creation status = %d, want 400", rec.Code)
	}
}

func TestActivityEndpoint(t *testing.T) {
	srv := setupServer(t)
	user, err := store.CreateUser("alice@example.com", "Alice")
	if err != nil {
		t.Fatal(err)
	}

	if rec := doRequest(t, srv, http.MethodGet, "/api/v1/activity", "", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous activity status = %d, want 401", rec.Code)
	}

	ds := uploadCSV(t, srv, user.ID, "people.csv", peopleCSV)
	if rec := doRequest(t, srv, http.MethodDelete, "/api/v1/datasets/"+ds.ID, user.ID, nil); rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/activity", user.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("activity status = %d, body %s", rec.Code, rec.Body.String())
	}
	var entries []model.Activity
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].Action != "deleted_csv" || entries[1].Action != "uploaded_csv" {
		t.Fatalf("entries = %+v, want delete then upload", entries)
	}
	if entries[0].DatasetID != ds.ID || entries[0].Details["fileName"] != "people.csv" {
		t.Errorf("entry = %+v, want dataset reference and file name", entries[0])
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/activity?limit=1", user.ID, nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("limited entries = %d, want 1", len(entries))
	}

	// malformed limit falls back to the default instead of failing
	rec = doRequest(t, srv, http.MethodGet, "/api/v1/activity?limit=abc", user.ID, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("malformed limit status = %d, want 200", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("fallback entries = %d, want 2", len(entries))
	}
}

func TestUnknownRoute(t *testing.T) {
	srv := setupServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/api/v1/unknown", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
