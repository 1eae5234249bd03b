package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kadro-api/internal/dto"
	"github.com/kadro-api/internal/handler"
	"github.com/kadro-api/internal/importer"
	"github.com/kadro-api/internal/orgchart"
	"github.com/kadro-api/internal/repository"
	"github.com/kadro-api/internal/service"
)

type testServer struct {
	server *httptest.Server
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	goose.SetLogger(goose.NopLogger())
	require.NoError(t, repository.Migrate(sqlDB, "sqlite3"))

	posRepo := repository.NewPositionRepository(db)
	tasraRepo := repository.NewTasraPositionRepository(db)
	personRepo := repository.NewPersonnelRepository(db)
	ranker := orgchart.NewRanker(orgchart.DefaultProfile())

	router := handler.NewRouter(
		handler.NewPositionHandler(service.NewPositionService(posRepo, personRepo, ranker), logger),
		handler.NewTasraPositionHandler(service.NewTasraPositionService(tasraRepo, personRepo, ranker), logger),
		handler.NewPersonnelHandler(service.NewPersonnelService(personRepo, posRepo, tasraRepo, ranker), logger),
		handler.NewImportHandler(
			service.NewImportService(posRepo, tasraRepo, personRepo, importer.NewEngine(ranker), 5, logger),
			1<<20, logger,
		),
		logger,
	)

	ts := &testServer{server: httptest.NewServer(router.Setup())}
	t.Cleanup(func() {
		ts.server.Close()
		sqlDB.Close()
	})
	return ts
}

func (ts *testServer) request(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, ts.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor", "ik.uzmani")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (ts *testServer) upload(t *testing.T, path, filename, content string) *http.Response {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, ts.server.URL+path, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Actor", "ik.uzmani")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	ts := setupTestServer(t)
	resp := ts.request(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreatePosition(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.request(t, http.MethodPost, "/positions", map[string]any{
		"name":           "Şube Müdürü",
		"department":     "Bilgi İşlem",
		"status":         "Vekalet",
		"original_title": "Şef",
		"start_date":     "2024-01-15",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	p := decode[dto.PositionResponse](t, resp)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Vekalet", p.Status)
	require.NotNil(t, p.StartDate)
	assert.Equal(t, "2024-01-15", *p.StartDate)
	assert.Equal(t, "ik.uzmani", p.LastModifiedBy)
}

func TestCreatePosition_ValidationError(t *testing.T) {
	ts := setupTestServer(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing name", map[string]any{"department": "D", "status": "Asıl"}},
		{"unknown status", map[string]any{"name": "Şef", "department": "D", "status": "Geçici"}},
		{"bad date", map[string]any{"name": "Şef", "department": "D", "status": "Asıl", "start_date": "15.01.2024"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.request(t, http.MethodPost, "/positions", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestCreatePosition_Duplicate(t *testing.T) {
	ts := setupTestServer(t)
	body := map[string]any{"name": "Şef", "department": "Bilgi İşlem", "status": "Asıl"}

	require.Equal(t, http.StatusCreated, ts.request(t, http.MethodPost, "/positions", body).StatusCode)
	resp := ts.request(t, http.MethodPost, "/positions", body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestUpdatePosition_Cycle(t *testing.T) {
	ts := setupTestServer(t)

	head := decode[dto.PositionResponse](t, ts.request(t, http.MethodPost, "/positions",
		map[string]any{"name": "Daire Başkanı", "department": "D", "status": "Asıl"}))
	chief := decode[dto.PositionResponse](t, ts.request(t, http.MethodPost, "/positions",
		map[string]any{"name": "Şef", "department": "D", "status": "Asıl", "reports_to": head.ID}))

	resp := ts.request(t, http.MethodPatch, "/positions/"+head.ID, map[string]any{"reports_to": chief.ID})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = ts.request(t, http.MethodPatch, "/positions/"+head.ID, map[string]any{"reports_to": head.ID})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = ts.request(t, http.MethodPatch, "/positions/missing", map[string]any{"name": "X"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPositionTreeAndDelete(t *testing.T) {
	ts := setupTestServer(t)

	head := decode[dto.PositionResponse](t, ts.request(t, http.MethodPost, "/positions",
		map[string]any{"name": "Daire Başkanı", "department": "D", "status": "Asıl"}))
	ts.request(t, http.MethodPost, "/positions",
		map[string]any{"name": "Şef", "department": "D", "status": "Boş", "reports_to": head.ID})

	tree := decode[[]dto.TreeNodeResponse](t, ts.request(t, http.MethodGet, "/positions/tree", nil))
	require.Len(t, tree, 1)
	assert.Equal(t, head.ID, tree[0].ID)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "Şef", tree[0].Children[0].Name)

	resp := ts.request(t, http.MethodDelete, "/positions/"+head.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	list := decode[[]dto.PositionResponse](t, ts.request(t, http.MethodGet, "/positions", nil))
	require.Len(t, list, 1)
	assert.Nil(t, list[0].ReportsTo)
}

func TestPositionExport(t *testing.T) {
	ts := setupTestServer(t)
	ts.request(t, http.MethodPost, "/positions", map[string]any{"name": "Şef", "department": "D", "status": "Asıl"})

	resp := ts.request(t, http.MethodGet, "/positions/export", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")

	wb, err := excelize.OpenReader(resp.Body)
	require.NoError(t, err)
	defer wb.Close()
	rows, err := wb.GetRows("Kadro")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestPersonnelLifecycle(t *testing.T) {
	ts := setupTestServer(t)
	body := map[string]any{
		"organization":    "merkez",
		"first_name":      "Ayşe",
		"last_name":       "Yılmaz",
		"registry_number": "239089",
		"status":          "Memur",
	}

	resp := ts.request(t, http.MethodPost, "/personnel", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	person := decode[dto.PersonnelResponse](t, resp)

	resp = ts.request(t, http.MethodPost, "/personnel", body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	pos := decode[dto.PositionResponse](t, ts.request(t, http.MethodPost, "/positions", map[string]any{
		"name": "Şef", "department": "D", "status": "Asıl", "assigned_personnel_id": person.ID,
	}))

	list := decode[[]dto.PersonnelResponse](t, ts.request(t, http.MethodGet, "/personnel?organization=merkez", nil))
	require.Len(t, list, 1)
	require.NotNil(t, list[0].PrimaryPosition)
	assert.Equal(t, pos.ID, list[0].PrimaryPosition.ID)

	tasra := decode[[]dto.PersonnelResponse](t, ts.request(t, http.MethodGet, "/personnel?organization=tasra", nil))
	assert.Empty(t, tasra)

	resp = ts.request(t, http.MethodGet, "/personnel?organization=il", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = ts.request(t, http.MethodDelete, "/personnel/"+person.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	positions := decode[[]dto.PositionResponse](t, ts.request(t, http.MethodGet, "/positions", nil))
	require.Len(t, positions, 1)
	assert.Nil(t, positions[0].AssignedPersonnelID)
}

func TestTasraPositionLifecycle(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.request(t, http.MethodPost, "/tasra-positions", map[string]any{
		"name": "İl Müdürü", "unit": "Ankara İl Müdürlüğü", "status": "Vekalet",
		"original_title": "Şube Müdürü", "receives_proxy_pay": true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	tp := decode[dto.TasraPositionResponse](t, resp)
	assert.True(t, tp.ReceivesProxyPay)

	resp = ts.request(t, http.MethodPatch, "/tasra-positions/"+tp.ID, map[string]any{"status": "Asıl"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[dto.TasraPositionResponse](t, resp)
	assert.False(t, updated.ReceivesProxyPay)
	assert.Nil(t, updated.OriginalTitle)

	list := decode[[]dto.TasraPositionResponse](t, ts.request(t, http.MethodGet, "/tasra-positions", nil))
	assert.Len(t, list, 1)

	assert.Equal(t, http.StatusNoContent, ts.request(t, http.MethodDelete, "/tasra-positions/"+tp.ID, nil).StatusCode)
	assert.Equal(t, http.StatusNotFound, ts.request(t, http.MethodDelete, "/tasra-positions/"+tp.ID, nil).StatusCode)
}

func TestImportPositions(t *testing.T) {
	ts := setupTestServer(t)

	csv := "Birim;Pozisyon;Durum\nBilgi İşlem;Şef;Asıl\nBilgi İşlem;Uzman;Bilinmiyor\n"
	resp := ts.upload(t, "/positions/import", "kadro.csv", csv)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	report := decode[dto.ImportResponse](t, resp)
	assert.Equal(t, "position", report.Kind)
	assert.Equal(t, 1, report.Inserted)
	assert.Equal(t, 1, report.Errored)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "Satır 3")

	list := decode[[]dto.PositionResponse](t, ts.request(t, http.MethodGet, "/positions", nil))
	require.Len(t, list, 1)
	assert.Equal(t, "ik.uzmani", list[0].LastModifiedBy)
}

func TestImportPersonnel_Organization(t *testing.T) {
	ts := setupTestServer(t)
	csv := "Ad,Soyad,Sicil No,Statü\nAli,Kaya,1001,Memur\n"

	resp := ts.upload(t, "/personnel/import?organization=tasra", "personel.csv", csv)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decode[dto.ImportResponse](t, resp).Inserted)

	list := decode[[]dto.PersonnelResponse](t, ts.request(t, http.MethodGet, "/personnel?organization=tasra", nil))
	require.Len(t, list, 1)
	assert.Equal(t, "tasra", list[0].Organization)
}

func TestImport_FileErrors(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.upload(t, "/tasra-positions/import", "kadro.pdf", "%PDF")
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)

	resp = ts.upload(t, "/positions/import", "kadro.csv", "Foo;Bar\n1;2\n")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = ts.request(t, http.MethodPost, "/positions/import", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouting(t *testing.T) {
	ts := setupTestServer(t)

	assert.Equal(t, http.StatusMethodNotAllowed, ts.request(t, http.MethodPut, "/positions", nil).StatusCode)
	assert.Equal(t, http.StatusMethodNotAllowed, ts.request(t, http.MethodGet, "/personnel/abc", nil).StatusCode)
	assert.Equal(t, http.StatusNotFound, ts.request(t, http.MethodGet, "/positions/a/b", nil).StatusCode)
}
