package repository

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Laye1997/malika-bi-nu-begg-d/internal/domain"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// RemoteFormMembersRepo reads members from a published CSV export of the
// response spreadsheet and writes them by posting the registration form.
// Neither call is retried.
type RemoteFormMembersRepo struct {
	csvClient    *resty.Client
	formClient   *resty.Client
	csvURL       string
	formURL      string
	headerOffset int
	fields       map[domain.Field]string
	accepted     map[int]bool
	logger       *zap.Logger
}

// RemoteFormOptions configures RemoteFormMembersRepo.
type RemoteFormOptions struct {
	CSVURL       string
	FormURL      string
	HeaderOffset int
	// FormFields maps a field to the form input name. Empty means every
	// field is posted under its own name.
	FormFields map[domain.Field]string
	// AcceptedStatus lists the form responses treated as committed.
	AcceptedStatus []int
	Timeout        time.Duration
}

func NewRemoteFormMembersRepo(opts RemoteFormOptions, logger *zap.Logger) *RemoteFormMembersRepo {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if len(opts.AcceptedStatus) == 0 {
		opts.AcceptedStatus = []int{http.StatusOK, http.StatusCreated, http.StatusFound, http.StatusSeeOther}
	}
	accepted := make(map[int]bool, len(opts.AcceptedStatus))
	for _, s := range opts.AcceptedStatus {
		accepted[s] = true
	}

	// published exports redirect to a content host
	csvClient := resty.New().
		SetTimeout(opts.Timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5)).
		SetHeader("Accept", "text/csv")

	// form endpoints answer with a redirect to a confirmation page; keep it
	formClient := resty.New().
		SetTimeout(opts.Timeout).
		SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}))

	return &RemoteFormMembersRepo{
		csvClient:    csvClient,
		formClient:   formClient,
		csvURL:       opts.CSVURL,
		formURL:      opts.FormURL,
		headerOffset: opts.HeaderOffset,
		fields:       opts.FormFields,
		accepted:     accepted,
		logger:       logger,
	}
}

func (r *RemoteFormMembersRepo) Name() string { return "remote" }

func (r *RemoteFormMembersRepo) LoadTable(ctx context.Context) (*domain.Table, error) {
	if r.csvURL == "" {
		return nil, errors.New("csv export url not configured")
	}
	resp, err := r.csvClient.R().SetContext(ctx).Get(r.csvURL)
	if err != nil {
		r.logger.Error("CSV export request failed", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch csv export: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("csv export returned status %d", resp.StatusCode())
	}

	records, err := parseCSV(resp.Body())
	if err != nil {
		return nil, err
	}
	t := domain.SplitAtHeader(records, r.headerOffset)
	if t == nil {
		return nil, fmt.Errorf("csv export has no header row at offset %d", r.headerOffset)
	}
	return t, nil
}

func (r *RemoteFormMembersRepo) AppendMember(ctx context.Context, m domain.Member) error {
	if r.formURL == "" {
		return errors.New("form url not configured")
	}
	resp, err := r.formClient.R().
		SetContext(ctx).
		SetFormData(r.formData(m)).
		Post(r.formURL)
	if err != nil {
		r.logger.Error("Form submission failed", zap.Error(err))
		return fmt.Errorf("failed to submit form: %w", err)
	}
	if !r.accepted[resp.StatusCode()] {
		r.logger.Warn("Form submission rejected", zap.Int("status_code", resp.StatusCode()))
		return fmt.Errorf("form endpoint returned status %d", resp.StatusCode())
	}
	return nil
}

func (r *RemoteFormMembersRepo) formData(m domain.Member) map[string]string {
	data := map[string]string{}
	for _, rule := range domain.ColumnRules() {
		name, ok := r.fields[rule.Field]
		if !ok {
			// the form stamps its own submission time
			if len(r.fields) > 0 || rule.Field == domain.FieldRegisteredAt {
				continue
			}
			name = string(rule.Field)
		}
		data[name] = m.Value(rule.Field)
	}
	return data
}

func parseCSV(body []byte) ([][]string, error) {
	body = bytes.TrimPrefix(body, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("csv export is empty")
	}
	cr := csv.NewReader(bytes.NewReader(body))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv export: %w", err)
	}
	for _, rec := range records {
		for i := range rec {
			rec[i] = strings.TrimRight(rec[i], "\r")
		}
	}
	return records, nil
}
