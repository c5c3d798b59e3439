package routeresponse

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "voucherbot/internal/common/errors"
	"voucherbot/internal/common/logger"
	"voucherbot/internal/common/metrics"
	llmanswer "voucherbot/internal/pipeline/ai-conversation/llm-answer"
	queryvouchers "voucherbot/internal/pipeline/data-access/query-vouchers"
	annotatesentence "voucherbot/internal/pipeline/nlq/annotate-sentence"
	buildquery "voucherbot/internal/pipeline/nlq/build-query"
	classifyintent "voucherbot/internal/pipeline/nlq/classify-intent"
	formatresult "voucherbot/internal/pipeline/nlq/format-result"
	resolvefield "voucherbot/internal/pipeline/nlq/resolve-field"
	"voucherbot/pkg/synonyms"
)

// ==========================
// Test Helper Functions
// ==========================

type stubLLM struct {
	text    string
	err     error
	prompts []string
}

func (s *stubLLM) Execute(ctx context.Context, input *llmanswer.Input) (*llmanswer.Output, error) {
	s.prompts = append(s.prompts, input.Prompt)
	if s.err != nil {
		return nil, s.err
	}
	return &llmanswer.Output{Text: s.text}, nil
}

type failingAnnotator struct{}

func (failingAnnotator) Execute(ctx context.Context, input *annotatesentence.Input) (*annotatesentence.Output, error) {
	return nil, apperrors.NewIntentAPITimeoutError(context.DeadlineExceeded)
}

func stageSampleCount(t *testing.T, stage string) uint64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, metrics.StageDuration.WithLabelValues(stage).(prometheus.Metric).Write(m))
	return m.GetHistogram().GetSampleCount()
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func createTestHandler(t *testing.T, db *sql.DB, llm LLM, annotator Annotator) *Handler {
	t.Helper()
	log := logger.NewTestLogger(t)

	resolver := resolvefield.NewHandler(resolvefield.LoadConfig(), synonyms.Default())
	builder, err := buildquery.NewHandler(buildquery.LoadConfig(), log)
	require.NoError(t, err)
	if annotator == nil {
		annotator = annotatesentence.NewHandler(annotatesentence.LoadConfig(), log)
	}

	return NewHandler(LoadConfig(), Dependencies{
		Annotator:  annotator,
		Resolver:   resolver,
		Classifier: classifyintent.NewHandler(classifyintent.LoadConfig(), resolver, log),
		Builder:    builder,
		Storage:    queryvouchers.NewHandler(queryvouchers.LoadConfig(), db, nil, log),
		Formatter:  formatresult.NewHandler(formatresult.LoadConfig(), log),
		LLM:        llm,
	}, log)
}

// ==========================
// Query route
// ==========================

func TestHandler_Execute_QueryRoute(t *testing.T) {
	tests := []struct {
		name    string
		message string
		expect  func(mock sqlmock.Sqlmock)
		want    string
	}{
		{
			name:    "total claim amount for a voucher",
			message: "What is the total claim amount for TXN_2024001",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT SUM(invoiceclaimamount) FROM ai_feed_data_dhwnai WHERE stagetransactionid = ?").
					WithArgs("TXN_2024001").
					WillReturnRows(sqlmock.NewRows([]string{"SUM(invoiceclaimamount)"}).AddRow(int64(42)))
			},
			want: "📊 Result: `42`",
		},
		{
			name:    "requested field of a voucher",
			message: "  what is the STATUS of txn_2024001  ",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT * FROM ai_feed_data_dhwnai WHERE stagetransactionid = ?").
					WithArgs("TXN_2024001").
					WillReturnRows(sqlmock.NewRows([]string{"stagetransactionid", "status"}).
						AddRow("TXN_2024001", "Approved"))
			},
			want: "📄 Voucher: TXN_2024001\nstatus: Approved",
		},
		{
			name:    "count since a date",
			message: "count vouchers since 01 Jan 2024",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT COUNT(*) FROM ai_feed_data_dhwnai WHERE submitteddatetime >= STR_TO_DATE(?, '%d %b %Y')").
					WithArgs("01 Jan 2024").
					WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(int64(5)))
			},
			want: "📊 Result: `5`",
		},
		{
			name:    "nothing recognized lists rows",
			message: "list vouchers",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT * FROM ai_feed_data_dhwnai").
					WillReturnRows(sqlmock.NewRows([]string{"status", "invoiceclaimamount", "pending_days"}).
						AddRow("Approved", "100.50", int64(2)))
			},
			want: "Status: Approved | Amount: ₹100.50 | Pending Days: 2",
		},
		{
			name:    "no matching rows",
			message: "list txn_9999999",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT * FROM ai_feed_data_dhwnai WHERE stagetransactionid = ?").
					WithArgs("TXN_9999999").
					WillReturnRows(sqlmock.NewRows([]string{"stagetransactionid"}))
			},
			want: "No matching records found.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.expect(mock)
			llm := &stubLLM{}

			out := createTestHandler(t, db, llm, nil).Execute(context.Background(), &Input{Message: tt.message})

			assert.Equal(t, RouteQuery, out.Route)
			assert.Equal(t, tt.want, out.Response)
			assert.Empty(t, out.ErrorCode)
			assert.Empty(t, llm.prompts, "query route never calls the LLM")
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHandler_Execute_DBError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT SUM(invoiceclaimamount) FROM ai_feed_data_dhwnai WHERE stagetransactionid = ?").
		WithArgs("TXN_2024001").
		WillReturnError(errors.New("Unknown column 'invoiceclaimamount' in 'field list'"))

	out := createTestHandler(t, db, &stubLLM{}, nil).
		Execute(context.Background(), &Input{Message: "total claim amount for TXN_2024001"})

	assert.Equal(t, RouteQuery, out.Route)
	assert.Equal(t, "⚠️ DB error: Unknown column 'invoiceclaimamount' in 'field list'", out.Response)
	assert.Equal(t, string(apperrors.ErrCodeQueryExecutionFailed), out.ErrorCode)
}

func TestHandler_Execute_NoStorage(t *testing.T) {
	h := createTestHandler(t, nil, &stubLLM{text: "ok"}, nil)
	h.deps.Storage = nil

	var out *Output
	require.NotPanics(t, func() {
		out = h.Execute(context.Background(), &Input{Message: "status of TXN_2024001"})
	})

	assert.Equal(t, RouteQuery, out.Route)
	assert.Equal(t, "⚠️ DB error: no database configured", out.Response)
	assert.Equal(t, string(apperrors.ErrCodeDatabaseConnectionFailed), out.ErrorCode)

	llmOut := h.Execute(context.Background(), &Input{Message: "why is it pending"})
	assert.Equal(t, "ok", llmOut.Response, "LLM route works without storage")
}

func TestHandler_Execute_AnnotatorFailureFallsBackToRules(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT COUNT(*) FROM ai_feed_data_dhwnai WHERE submitteddatetime >= STR_TO_DATE(?, '%d %b %Y')").
		WithArgs("01 Jan 2024").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(int64(3)))

	out := createTestHandler(t, db, &stubLLM{}, failingAnnotator{}).
		Execute(context.Background(), &Input{Message: "count vouchers since 01 jan 2024"})

	assert.Equal(t, "📊 Result: `3`", out.Response)
	assert.Empty(t, out.ErrorCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_RecordsStageDurations(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT SUM(invoiceclaimamount) FROM ai_feed_data_dhwnai WHERE stagetransactionid = ?").
		WithArgs("TXN_2024001").
		WillReturnRows(sqlmock.NewRows([]string{"s"}).AddRow(int64(42)))

	stages := []string{
		resolvefield.StageName,
		annotatesentence.StageName,
		classifyintent.StageName,
		buildquery.StageName,
		queryvouchers.StageName,
		formatresult.StageName,
		llmanswer.StageName,
	}
	before := map[string]uint64{}
	for _, stage := range stages {
		before[stage] = stageSampleCount(t, stage)
	}

	h := createTestHandler(t, db, &stubLLM{text: "ok"}, nil)
	h.Execute(context.Background(), &Input{Message: "total claim amount for TXN_2024001"})
	h.Execute(context.Background(), &Input{Message: "why is it pending"})

	for _, stage := range stages {
		assert.Equal(t, before[stage]+1, stageSampleCount(t, stage), stage)
	}
}

// ==========================
// LLM route
// ==========================

func TestHandler_Execute_LLMRoute(t *testing.T) {
	db, mock := newMockDB(t)
	llm := &stubLLM{text: "It is waiting for finance approval."}

	out := createTestHandler(t, db, llm, nil).
		Execute(context.Background(), &Input{Message: "Why is TXN_2024001 still pending?"})

	assert.Equal(t, RouteLLM, out.Route)
	assert.Equal(t, "It is waiting for finance approval.", out.Response)
	require.Len(t, llm.prompts, 1)
	assert.Equal(t, BuildPrompt("why is txn_2024001 still pending?"), llm.prompts[0])
	assert.NoError(t, mock.ExpectationsWereMet(), "LLM route never touches storage")
}

func TestHandler_Execute_LLMError(t *testing.T) {
	db, _ := newMockDB(t)
	llm := &stubLLM{err: apperrors.NewLLMSynthesisFailedError(errors.New("status 401: Invalid API Key"))}

	out := createTestHandler(t, db, llm, nil).
		Execute(context.Background(), &Input{Message: "explain the approval flow"})

	assert.Equal(t, RouteLLM, out.Route)
	assert.Equal(t, "⚠️ Error with AI: status 401: Invalid API Key", out.Response)
	assert.Equal(t, string(apperrors.ErrCodeLLMSynthesisFailed), out.ErrorCode)
}

func TestHandler_WantsLLM(t *testing.T) {
	h := NewHandler(LoadConfig(), Dependencies{}, logger.NewTestLogger(t))

	tests := []struct {
		text string
		want bool
	}{
		{"why is it pending", true},
		{"how long will it take", true},
		{"explain txn_2024001", true},
		{"summarize my vouchers", true},
		{"tell me about txn_2024001", true},
		// Keywords match as substrings, so "how many" and "show" go to the LLM.
		{"how many vouchers", true},
		{"show vouchers", true},
		{"count vouchers", false},
		{"tell me the status", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, h.wantsLLM(tt.text))
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	assert.Equal(t,
		"User asked:\nwhy?\n\nif it is a complex question, provide a detailed answer.\n"+
			"If it is a simple question, provide a short answer in one line.\n"+
			"You may refer to fields like status, submittedby, amount, etc.",
		BuildPrompt("why?"))
}

// ==========================
// Dry run
// ==========================

func TestHandler_Plan(t *testing.T) {
	db, mock := newMockDB(t)
	h := createTestHandler(t, db, &stubLLM{}, nil)

	plan, err := h.Plan(context.Background(), "  Status of TXN_2024001 since 1st Feb 2024 ")

	require.NoError(t, err)
	assert.Equal(t, "status of txn_2024001 since 1st feb 2024", plan.Text)
	assert.Equal(t, "status", plan.Field)
	assert.Equal(t, annotatesentence.ProviderRule, plan.Provider)
	assert.Equal(t, "TXN_2024001", plan.Intent.VoucherID)
	assert.Equal(t,
		"SELECT * FROM ai_feed_data_dhwnai WHERE stagetransactionid = ? AND submitteddatetime >= STR_TO_DATE(?, '%d %b %Y')",
		plan.Query.Query)
	assert.Equal(t, []interface{}{"TXN_2024001", "01 Feb 2024"}, plan.Query.Params)
	assert.NoError(t, mock.ExpectationsWereMet())
}
