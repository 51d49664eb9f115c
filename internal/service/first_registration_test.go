package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/Laye1997/malika-bi-nu-begg-d/internal/domain"
	"github.com/Laye1997/malika-bi-nu-begg-d/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// blankTab is a spreadsheet API tab that starts with no rows at all.
type blankTab struct {
	mu   sync.Mutex
	rows [][]string
}

func (b *blankTab) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var body struct {
		Values [][]string `json:"values"`
	}
	switch r.Method {
	case http.MethodGet:
		body.Values = b.rows
		// header-row range reads only the first row
		if strings.Contains(r.URL.Path, "!") && len(b.rows) > 0 {
			body.Values = b.rows[:1]
		}
	case http.MethodPut:
		_ = json.NewDecoder(r.Body).Decode(&body)
		b.rows = append(body.Values, b.rows...)
	case http.MethodPost:
		_ = json.NewDecoder(r.Body).Decode(&body)
		b.rows = append(b.rows, body.Values...)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"majorDimension": "ROWS", "values": body.Values})
}

func newBlankWorkbook(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "membres.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func assertFirstRegistration(t *testing.T, repo repository.MembersRepo) {
	t.Helper()
	ctx := context.Background()
	svc := newTestService(repo, MemberServiceOptions{})

	snap, err := svc.ListAll(ctx)
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
	assert.Equal(t, 0, snap.Len())

	_, err = svc.Append(ctx, member("Awa", "Diop", "77 000 00 01", "Sanka"))
	require.NoError(t, err)

	snap, err = svc.ListAll(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, snap.Len())
	assert.Equal(t, "Awa", snap.Members[0].FirstName)
	assert.True(t, snap.Has(domain.FieldPhone))

	_, err = svc.Append(ctx, member("Awa", "Diop", "770000001", "Sanka"))
	assert.ErrorIs(t, err, domain.ErrDuplicatePhone)
}

func TestMemberService_FirstRegistrationIntoMissingExcelTab(t *testing.T) {
	path := newBlankWorkbook(t)
	assertFirstRegistration(t, repository.NewExcelMembersRepo(path, "Membres", 0, true, zap.NewNop()))
}

func TestMemberService_FirstRegistrationIntoBlankExcelSheet(t *testing.T) {
	path := newBlankWorkbook(t)
	assertFirstRegistration(t, repository.NewExcelMembersRepo(path, "Sheet1", 1, false, zap.NewNop()))
}

func TestMemberService_FirstRegistrationIntoBlankSheetsTab(t *testing.T) {
	tab := &blankTab{}
	srv := httptest.NewServer(tab)
	t.Cleanup(srv.Close)

	repo, err := repository.NewSheetsMembersRepo(context.Background(), repository.SheetsOptions{
		SpreadsheetID: "sheet-123",
		Sheet:         "Membres",
	}, zap.NewNop(), option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	assertFirstRegistration(t, repo)
	assert.Equal(t, domain.DefaultHeader, tab.rows[0])
}
