package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/productindex/internal/config"
	"github.com/kailas-cloud/productindex/internal/domain"
	"github.com/kailas-cloud/productindex/internal/domain/search/filter"
	queryuc "github.com/kailas-cloud/productindex/internal/usecase/query"
	syncuc "github.com/kailas-cloud/productindex/internal/usecase/sync"
)

// --- Mocks ---

type mockCorpus struct {
	mode       domain.Mode
	initErr    error
	deleted    string
	deleteErr  error
	initCalled bool
}

func (m *mockCorpus) Initialize(_ context.Context, mode domain.Mode) (domain.Session, error) {
	m.initCalled = true
	m.mode = mode
	if m.initErr != nil {
		return domain.Session{}, m.initErr
	}
	return domain.Session{CorpusKey: "product_info_1", Mode: mode}, nil
}

func (m *mockCorpus) DeleteByName(_ context.Context, name string) error {
	m.deleted = name
	return m.deleteErr
}

type mockSync struct {
	root    string
	session domain.Session
	report  syncuc.Report
	err     error
}

func (m *mockSync) Sync(_ context.Context, session domain.Session, root string) (syncuc.Report, error) {
	m.session = session
	m.root = root
	return m.report, m.err
}

type mockQuery struct {
	text        string
	constraints filter.Constraints
	answer      queryuc.Answer
	err         error
}

func (m *mockQuery) Query(_ context.Context, _ domain.Session, text string, c filter.Constraints) (queryuc.Answer, error) {
	m.text = text
	m.constraints = c
	return m.answer, m.err
}

type fixture struct {
	corpus *mockCorpus
	sync   *mockSync
	query  *mockQuery
	env    string
	served domain.Session
}

func newFixture() *fixture {
	return &fixture{corpus: &mockCorpus{}, sync: &mockSync{}, query: &mockQuery{}}
}

func (f *fixture) builder() Builder {
	return func(env string) (*Deps, error) {
		f.env = env
		cfg := config.Config{}
		cfg.Vectara.APIKey = "k"
		cfg.Data.Root = "/srv/data"
		cfg.ApplyDefaults()
		return &Deps{
			Config: cfg,
			Corpus: f.corpus,
			Sync:   f.sync,
			Query:  f.query,
			Serve: func(_ context.Context, s domain.Session) error {
				f.served = s
				return nil
			},
		}, nil
	}
}

func run(t *testing.T, build Builder, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(build)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

// --- Tests ---

func TestRootCmd_HasSubcommands(t *testing.T) {
	root := NewRootCommand(nil)
	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"init", "sync", "query", "delete", "serve", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestVersionCmd_NoDeps(t *testing.T) {
	out, err := run(t, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "productindex version dev")
}

func TestInitCmd_DefaultModeFromConfig(t *testing.T) {
	f := newFixture()
	out, err := run(t, f.builder(), "init", "--env", "prod")

	require.NoError(t, err)
	assert.Equal(t, "prod", f.env)
	assert.Equal(t, domain.ModeLookup, f.corpus.mode)
	assert.Contains(t, out, "Corpus ready: product_info_1 (lookup)")
}

func TestInitCmd_ModeFlag(t *testing.T) {
	f := newFixture()
	_, err := run(t, f.builder(), "--mode", "RECREATE", "init")

	require.NoError(t, err)
	assert.Equal(t, domain.ModeRecreate, f.corpus.mode)
}

func TestInitCmd_InvalidMode(t *testing.T) {
	f := newFixture()
	_, err := run(t, f.builder(), "--mode", "upsert", "init")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidMode)
	assert.False(t, f.corpus.initCalled)
}

func TestInitCmd_Ambiguous(t *testing.T) {
	f := newFixture()
	f.corpus.initErr = &domain.AmbiguousCorpusError{Name: "WL - Product Information", Matches: 2}

	_, err := run(t, f.builder(), "init")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAmbiguousCorpus)
	assert.Contains(t, err.Error(), "found 2")
}

func TestInitCmd_BuildError(t *testing.T) {
	buildErr := errors.New("config missing")
	_, err := run(t, func(string) (*Deps, error) { return nil, buildErr }, "init")
	assert.ErrorIs(t, err, buildErr)
}

func TestSyncCmd(t *testing.T) {
	f := newFixture()
	f.sync.report = syncuc.Report{Manufacturers: 1, Products: 2, Files: 3}

	out, err := run(t, f.builder(), "sync")
	require.NoError(t, err)
	assert.Equal(t, "/srv/data", f.sync.root)
	assert.Equal(t, "product_info_1", f.sync.session.CorpusKey)
	assert.Contains(t, out, "Synced 3 files (1 manufacturers, 2 products)")
}

func TestSyncCmd_DataFlag(t *testing.T) {
	f := newFixture()
	_, err := run(t, f.builder(), "sync", "--data", "/tmp/other")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other", f.sync.root)
}

func TestSyncCmd_UploadError(t *testing.T) {
	f := newFixture()
	f.sync.err = &domain.UploadError{Path: "/srv/data/M/P/a.pdf", Err: errors.New("413")}

	_, err := run(t, f.builder(), "sync")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpload)
}

func TestQueryCmd_RequiresExactlyOneArg(t *testing.T) {
	_, err := run(t, newFixture().builder(), "query")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestQueryCmd_Render(t *testing.T) {
	f := newFixture()
	f.query.answer = queryuc.Answer{
		Filter: "doc.Manufacturer = 'Medtronic'",
		Results: []queryuc.DisplayResult{
			{DocumentID: "d1", Metadata: map[string]any{"Manufacturer": "Medtronic"}, Text: "MRI conditional", Score: 0.75},
		},
		Summary: "The device is MRI conditional.",
	}

	out, err := run(t, f.builder(), "query", "Is it MRI safe?", "--manufacturer", "Medtronic")
	require.NoError(t, err)

	assert.Equal(t, "Is it MRI safe?", f.query.text)
	assert.Equal(t, "Medtronic", f.query.constraints[domain.AttrManufacturer])
	assert.Equal(t, "", f.query.constraints[domain.AttrProduct])
	assert.Contains(t, out, "1 results")
	assert.Contains(t, out, "[1]")
	assert.Contains(t, out, "d1")
	assert.Contains(t, out, `{"Manufacturer":"Medtronic"}`)
	assert.Contains(t, out, "MRI conditional")
	assert.Contains(t, out, "score 0.7500")
	assert.Contains(t, out, "The device is MRI conditional.")
}

func TestRenderAnswer_DocumentIDPerResult(t *testing.T) {
	var buf bytes.Buffer
	err := renderAnswer(&buf, queryuc.Answer{
		Results: []queryuc.DisplayResult{
			{DocumentID: "azure-manual.pdf", Metadata: map[string]any{"Manufacturer": "Medtronic"}, Text: "t", Score: 0.5},
			{DocumentID: "azure-mri.pdf", Metadata: map[string]any{"Product": "Azure S SR"}, Text: "u", Score: 0.25},
		},
		Summary: "s",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "2 results")
	assert.Contains(t, out, "azure-manual.pdf")
	assert.Contains(t, out, "azure-mri.pdf")
	assert.Less(t, strings.Index(out, "azure-manual.pdf"), strings.Index(out, "azure-mri.pdf"))
}

func TestRenderAnswer_NoResults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderAnswer(&buf, queryuc.Answer{}))
	assert.Contains(t, buf.String(), "No results found.")
	assert.NotContains(t, buf.String(), "0 results")
}

func TestQueryCmd_JSON(t *testing.T) {
	f := newFixture()
	f.query.answer = queryuc.Answer{Summary: "s", Results: []queryuc.DisplayResult{}}

	out, err := run(t, f.builder(), "query", "q", "--json", "-p", "Azure S SR")
	require.NoError(t, err)
	assert.Equal(t, "Azure S SR", f.query.constraints[domain.AttrProduct])

	var ans queryuc.Answer
	require.NoError(t, json.Unmarshal([]byte(out), &ans))
	assert.Equal(t, "s", ans.Summary)
}

func TestQueryCmd_NoResults(t *testing.T) {
	out, err := run(t, newFixture().builder(), "query", "q")
	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestDeleteCmd(t *testing.T) {
	f := newFixture()
	out, err := run(t, f.builder(), "delete")

	require.NoError(t, err)
	assert.Equal(t, "WL - Product Information", f.corpus.deleted)
	assert.False(t, f.corpus.initCalled)
	assert.Contains(t, out, "Deleted corpora named")
}

func TestServeCmd(t *testing.T) {
	f := newFixture()
	_, err := run(t, f.builder(), "serve")

	require.NoError(t, err)
	assert.Equal(t, "product_info_1", f.served.CorpusKey)
}

func TestRecreateMode_WarnsOnReadCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		warn bool
	}{
		{"query recreate", []string{"query", "q", "--mode", "recreate"}, true},
		{"serve recreate", []string{"serve", "--mode", "recreate"}, true},
		{"query lookup", []string{"query", "q", "--mode", "lookup"}, false},
		{"init recreate", []string{"init", "--mode", "recreate"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, newFixture().builder(), tt.args...)
			require.NoError(t, err)
			if tt.warn {
				assert.Contains(t, out, `warning: recreate mode replaced corpus "product_info_1"`)
			} else {
				assert.NotContains(t, out, "warning:")
			}
		})
	}
}

func TestRootCmd_ModeHelpMentionsRecreate(t *testing.T) {
	flag := NewRootCommand(nil).PersistentFlags().Lookup("mode")
	require.NotNil(t, flag)
	assert.Contains(t, flag.Usage, "deletes it and starts empty")
}
