package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Laye1997/malika-bi-nu-begg-d/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

type fakeSheets struct {
	mu       sync.Mutex
	values   [][]string
	appended [][]string
	updated  [][]string
	// valueInputOption of every write, in request order
	inputOptions []string
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var body struct {
		Values [][]string `json:"values"`
	}
	switch r.Method {
	case http.MethodGet:
		body.Values = f.values
	case http.MethodPost:
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.appended = append(f.appended, body.Values...)
		f.inputOptions = append(f.inputOptions, r.URL.Query().Get("valueInputOption"))
	case http.MethodPut:
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.updated = append(f.updated, body.Values...)
		f.inputOptions = append(f.inputOptions, r.URL.Query().Get("valueInputOption"))
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"majorDimension": "ROWS", "values": body.Values})
}

func newSheetsRepo(t *testing.T, fake *fakeSheets) *SheetsMembersRepo {
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	repo, err := NewSheetsMembersRepo(context.Background(), SheetsOptions{
		SpreadsheetID: "sheet-123",
		Sheet:         "Membres",
	}, zap.NewNop(), option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return repo
}

func TestSheetsMembersRepo_LoadTable(t *testing.T) {
	fake := &fakeSheets{values: [][]string{
		{"Prénom", "Nom", "Téléphone"},
		{"Awa", "Diop", "77 000 00 01"},
	}}
	repo := newSheetsRepo(t, fake)

	tbl, err := repo.LoadTable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Prénom", "Nom", "Téléphone"}, tbl.Header)
	assert.Equal(t, [][]string{{"Awa", "Diop", "77 000 00 01"}}, tbl.Rows)
}

func TestSheetsMembersRepo_LoadTableEmptySheet(t *testing.T) {
	repo := newSheetsRepo(t, &fakeSheets{})
	_, err := repo.LoadTable(context.Background())
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestSheetsMembersRepo_AppendUsesExistingHeader(t *testing.T) {
	fake := &fakeSheets{values: [][]string{{"Téléphone", "Prénom", "Nom"}}}
	repo := newSheetsRepo(t, fake)

	require.NoError(t, repo.AppendMember(context.Background(), domain.Member{FirstName: "Awa", LastName: "Diop", Phone: "77 000 00 01"}))
	assert.Empty(t, fake.updated)
	assert.Equal(t, [][]string{{"77 000 00 01", "Awa", "Diop"}}, fake.appended)
}

func TestSheetsMembersRepo_AppendWritesDefaultHeader(t *testing.T) {
	fake := &fakeSheets{}
	repo := newSheetsRepo(t, fake)

	require.NoError(t, repo.AppendMember(context.Background(), domain.Member{FirstName: "Awa", LastName: "Diop", Phone: "77"}))
	assert.Equal(t, [][]string{domain.DefaultHeader}, fake.updated)
	require.Len(t, fake.appended, 1)
	assert.Equal(t, "Awa", fake.appended[0][1])
}

func TestSheetsMembersRepo_AppendWritesRawValues(t *testing.T) {
	fake := &fakeSheets{}
	repo := newSheetsRepo(t, fake)

	m := domain.Member{FirstName: `=IMPORTXML("http://x","//a")`, LastName: "Diop", Phone: "0770000001"}
	require.NoError(t, repo.AppendMember(context.Background(), m))

	assert.Equal(t, []string{"RAW", "RAW"}, fake.inputOptions)
	require.Len(t, fake.appended, 1)
	assert.Equal(t, `=IMPORTXML("http://x","//a")`, fake.appended[0][1])
	assert.Equal(t, "0770000001", fake.appended[0][3])
}

func TestQuoteSheet(t *testing.T) {
	assert.Equal(t, "'Membres'", quoteSheet("Membres"))
	assert.Equal(t, "'L''équipe'", quoteSheet("L'équipe"))
}
