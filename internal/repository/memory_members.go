package repository

import (
	"context"
	"sync"

	"github.com/Laye1997/malika-bi-nu-begg-d/internal/domain"
)

// MemoryMembersRepo keeps the table in process memory (demo / tests).
type MemoryMembersRepo struct {
	mu     sync.RWMutex
	header []string
	rows   [][]string
}

// NewMemoryMembersRepo starts empty with the given header (DefaultHeader if nil).
func NewMemoryMembersRepo(header []string) *MemoryMembersRepo {
	if len(header) == 0 {
		header = domain.DefaultHeader
	}
	return &MemoryMembersRepo{
		header: append([]string{}, header...),
		rows:   [][]string{},
	}
}

func (r *MemoryMembersRepo) Name() string { return "memory" }

func (r *MemoryMembersRepo) LoadTable(_ context.Context) (*domain.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rows := make([][]string, len(r.rows))
	for i, row := range r.rows {
		rows[i] = append([]string{}, row...)
	}
	return &domain.Table{Header: append([]string{}, r.header...), Rows: rows}, nil
}

func (r *MemoryMembersRepo) AppendMember(_ context.Context, m domain.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, domain.LayoutRow(r.header, m))
	return nil
}
