package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"task-widget/internal/config"
	"task-widget/internal/repository"
	"task-widget/internal/repository/jsonfile"
)

var fixedNow = time.Date(2024, 6, 15, 9, 30, 0, 0, time.Local)

func fixedClock() time.Time { return fixedNow }

// jsonFactory opens a JSON repository at the configured data path.
func jsonFactory(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.Repository, error) {
	return jsonfile.New(cfg.GetDataPath(), jsonfile.Options{Logger: logger}), nil
}

type testApp struct {
	*App
	out    *bytes.Buffer
	errOut *bytes.Buffer
	cfg    *config.Config
}

// setupTestApp opens a session on a fresh data directory. input feeds any
// confirmation prompts.
func setupTestApp(t *testing.T, input string) *testApp {
	t.Helper()

	cfg := config.NewConfig()
	cfg.Storage.Dir = t.TempDir()

	session, err := OpenSession(context.Background(), cfg, zerolog.Nop(), jsonFactory, fixedClock)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	app := NewApp(session.API, cfg).WithIO(out, errOut, strings.NewReader(input))

	return &testApp{App: app, out: out, errOut: errOut, cfg: cfg}
}

// reset clears captured output between steps of a test.
func (a *testApp) reset() {
	a.out.Reset()
	a.errOut.Reset()
}

// runRoot executes the root command against dataDir and returns stdout.
func runRoot(t *testing.T, dataDir string, args ...string) (string, string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	root := NewRootCommand(
		WithLoader(config.NewLoaderWithFile("")),
		WithRepositoryFactory(jsonFactory),
		WithClock(fixedClock),
		WithIO(out, errOut, strings.NewReader("")),
	)
	root.SetArgs(append([]string{"--data-dir", dataDir}, args...))

	err := root.Execute(context.Background())
	return out.String(), errOut.String(), err
}

func dataPath(dir string) string {
	return filepath.Join(dir, "todo_widget_data.json")
}
