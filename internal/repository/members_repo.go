package repository

import (
	"context"
	"errors"

	"github.com/Laye1997/malika-bi-nu-begg-d/internal/domain"
)

// ErrNoHeader is returned by LoadTable when the destination exists but has
// no header row yet (missing tab, blank sheet). AppendMember on such a
// destination writes domain.DefaultHeader first.
var ErrNoHeader = errors.New("no header row")

// MembersRepo is a backing source for member rows. Implementations read the
// whole table on every LoadTable call and never mutate existing rows.
type MembersRepo interface {
	// Name identifies the backend in logs and cache keys.
	Name() string
	// LoadTable returns the raw header and data rows.
	LoadTable(ctx context.Context) (*domain.Table, error)
	// AppendMember writes one row in the destination's own column layout.
	AppendMember(ctx context.Context, m domain.Member) error
}
