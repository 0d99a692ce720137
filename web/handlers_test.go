package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"

	"github.com/Alt0Pal0/Gretch-2025-Rankings/controller"
	"github.com/Alt0Pal0/Gretch-2025-Rankings/testutils"
	"github.com/unrolled/render"
)

// A global testDB instance to use for all of the tests instead of setting up a new one each time.
var testDB *testutils.TestDB

// TestMain controls the main for the tests and allows for setup and shutdown of the tests
func TestMain(m *testing.M) {
	defer func() {
		// Catch all panics to make sure the shutdown is successfully run
		if r := recover(); r != nil {
			if testDB != nil {
				testDB.Shutdown()
			}
			fmt.Printf("panic - %v\n", r)
		}
	}()

	// Setup the global testDB variable
	testDB = testutils.NewTestDB()
	defer testDB.Shutdown()
	code := m.Run()
	os.Exit(code)
}

// Must run before anything publishes a version. An empty store is not an
// error, the site just renders an empty board.
func TestPlayersHandler_noRankingsYet(t *testing.T) {
	ctrl := newTestController(t)

	req := httptest.NewRequest(http.MethodGet, "/api/players", nil)
	rr := httptest.NewRecorder()
	playersHandler(ctrl, render.New()).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", rr.Code)
	}

	var resp boardResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if !resp.Success {
		t.Error("expected success to be true")
	}
	if resp.Message != "no rankings published yet" {
		t.Errorf("unexpected message: %s", resp.Message)
	}
	if resp.Version != nil {
		t.Errorf("expected no version, got: %+v", resp.Version)
	}
	if resp.Players.QB == nil || len(resp.Players.QB) != 0 {
		t.Errorf("expected an empty QB list, got: %v", resp.Players.QB)
	}
}

func TestUpdateRankingsHandler_success(t *testing.T) {
	ctrl := newTestController(t)

	body := `{
		"notes": "initial board",
		"players": {
			"QB": [
				{"name": "Josh Allen", "nfl_team": "BUF", "bye_week": 7},
				{"name": "Lamar Jackson", "nfl_team": "BAL", "bye_week": 7, "is_bold": true}
			],
			"WR": [
				{"name": "Ja'Marr Chase", "nfl_team": "CIN", "news_copy": "Got paid."}
			]
		}
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/rankings", strings.NewReader(body))
	rr := httptest.NewRecorder()
	updateRankingsHandler(ctrl, render.New()).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d, body: %s", rr.Code, rr.Body.String())
	}

	var resp publishResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if !resp.Success {
		t.Error("expected success to be true")
	}
	if !strings.Contains(resp.Message, "Rankings updated successfully to version") {
		t.Errorf("unexpected message: %s", resp.Message)
	}
	if resp.Version == nil || resp.Version.PlayerCount != 3 {
		t.Errorf("unexpected version in response: %+v", resp.Version)
	}

	// The published board is readable right away.
	req = httptest.NewRequest(http.MethodGet, "/api/players", nil)
	rr = httptest.NewRecorder()
	playersHandler(ctrl, render.New()).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", rr.Code)
	}

	var board boardResponse
	if err := json.NewDecoder(rr.Body).Decode(&board); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if board.Version == nil || !board.Version.IsCurrent {
		t.Fatalf("unexpected version: %+v", board.Version)
	}
	if len(board.Players.QB) != 2 || board.Players.QB[0].Name != "Josh Allen" {
		t.Errorf("unexpected QB list: %+v", board.Players.QB)
	}
	if board.Players.QB[0].PositionRank != 1 || board.Players.QB[1].PositionRank != 2 {
		t.Errorf("unexpected QB ranks: %+v", board.Players.QB)
	}
	if !board.Players.QB[1].IsBold {
		t.Error("expected the second QB to be bold")
	}
	if board.Players.WR[0].NewsCopy != "Got paid." {
		t.Errorf("unexpected WR news: %+v", board.Players.WR[0])
	}
}

func TestUpdateRankingsHandler_invalidPlayer(t *testing.T) {
	ctrl := newTestController(t)

	// No team on the player, the publish must be rejected before any write.
	body := `{"players": {"QB": [{"name": "Josh Allen"}]}}`

	req := httptest.NewRequest(http.MethodPost, "/api/rankings", strings.NewReader(body))
	rr := httptest.NewRecorder()
	updateRankingsHandler(ctrl, render.New()).ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status code. Got: %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "invalid player data for Josh Allen") {
		t.Errorf("response body does not contain expected string: %s", rr.Body.String())
	}
}

func TestUpdateRankingsHandler_badJSON(t *testing.T) {
	ctrl := newTestController(t)

	req := httptest.NewRequest(http.MethodPost, "/api/rankings", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	updateRankingsHandler(ctrl, render.New()).ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status code. Got: %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "invalid request body") {
		t.Errorf("response body does not contain expected string: %s", rr.Body.String())
	}
}

func TestUploadCSVHandler_success(t *testing.T) {
	ctrl := newTestController(t)

	file := "RK,PLAYER NAME,TEAM,POS,BYE\n1,Bijan Robinson,ATL,RB1,5\n"
	resp := runUploadCSVHandlerTest(t, ctrl, "text/csv", file)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("error reading response body: %v", err)
	}
	if !strings.Contains(string(b), "Rankings updated successfully to version") {
		t.Errorf("response body does not contain expected string: %s", string(b))
	}
}

func TestUploadCSVHandler_badFileContentType(t *testing.T) {
	ctrl := newTestController(t)

	resp := runUploadCSVHandlerTest(t, ctrl, "application/json", "{}")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected status code. Got: %d", resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("error reading response body: %v", err)
	}
	if !strings.Contains(string(b), "Only CSV files are supported. Got application/json") {
		t.Errorf("response body does not contain expected string: %s", string(b))
	}
}

func TestUploadCSVHandler_badTeam(t *testing.T) {
	ctrl := newTestController(t)

	file := "RK,PLAYER NAME,TEAM,POS\n1,Bijan Robinson,ATLANTA FALCONS FC,RB1\n"
	resp := runUploadCSVHandlerTest(t, ctrl, "text/csv", file)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("unexpected status code. Got: %d", resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("error reading response body: %v", err)
	}
	if !strings.Contains(string(b), "bad team name for Bijan Robinson") {
		t.Errorf("response body does not contain expected string: %s", string(b))
	}
}

func TestRouter_versionNotFound(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/versions/999999", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("unexpected status code. Got: %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "version not found") {
		t.Errorf("response body does not contain expected string: %s", rr.Body.String())
	}
}

func TestRouter_adminRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/admin/versions/1", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("unexpected status code without credentials. Got: %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/admin/versions/999999", nil)
	req.SetBasicAuth("admin", "wrong-password")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("unexpected status code with bad credentials. Got: %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/admin/versions/999999", nil)
	req.SetBasicAuth("admin", "hunter2")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	// Authorized, but the version does not exist.
	if rr.Code != http.StatusNotFound {
		t.Errorf("unexpected status code with good credentials. Got: %d", rr.Code)
	}
}

func newTestController(t *testing.T) controller.C {
	ctrl, err := controller.New(testDB.Clock, testDB.DB)
	if err != nil {
		t.Fatalf("error creating controller: %v", err)
	}
	return ctrl
}

func newTestRouter(t *testing.T) http.Handler {
	return getRouter(newTestController(t), render.New(), "admin", "hunter2")
}

func runUploadCSVHandlerTest(t *testing.T, ctrl controller.C, contentType, file string) *http.Response {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="rankings-file"; filename="file.csv"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("error creating form field 'rankings-file': %v", err)
	}
	part.Write([]byte(file))

	fieldWriter, err := writer.CreateFormField("notes")
	if err != nil {
		t.Fatalf("error creating form field 'notes': %v", err)
	}
	fieldWriter.Write([]byte("csv upload"))
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/rankings/csv", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rr := httptest.NewRecorder()
	uploadCSVHandler(ctrl, render.New()).ServeHTTP(rr, req)
	return rr.Result()
}
