package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geniustechspace/wheelhouse/internal/build"
	"github.com/geniustechspace/wheelhouse/internal/filelock"
	"github.com/geniustechspace/wheelhouse/internal/pybuild"
)

// stubService returns a canned result and records the request it saw.
type stubService struct {
	result *build.Result
	req    build.Request
}

func (s *stubService) Run(_ context.Context, req build.Request) (*build.Result, error) {
	s.req = req
	if req.Observer != nil {
		req.Observer.RunStarted(req.Layout.Dist())
		for _, o := range s.result.Outcomes() {
			req.Observer.PackageFinished(o)
		}
	}
	return s.result, nil
}

// writeTestConfig creates a workspace root plus a config file pointing at it.
func writeTestConfig(t *testing.T, historyEnabled bool, packages ...string) (cfgPath, root string) {
	t.Helper()
	root = t.TempDir()

	content := fmt.Sprintf("workspace:\n  root: %s\npackages:\n", root)
	for _, p := range packages {
		content += "  - " + p + "\n"
	}
	if historyEnabled {
		content += "history:\n  enabled: true\n"
	}

	cfgPath = filepath.Join(t.TempDir(), "wheelhouse.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))
	return cfgPath, root
}

func mkEligible(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		dir := filepath.Join(root, "clients", "python", name)
		require.NoError(t, os.MkdirAll(dir, 0o750))
		require.NoError(t, os.WriteFile(filepath.Join(dir, pybuild.DescriptorFile), []byte("[project]\n"), 0o600))
	}
}

func TestExecuteBuildRendersSummaryAndRecordsHistory(t *testing.T) {
	cfgPath, root := writeTestConfig(t, true, "core", "notification")
	mkEligible(t, root, "core", "notification")

	now := time.Now()
	stub := &stubService{result: &build.Result{
		RunID: "run-1",
		Succeeded: []pybuild.Outcome{
			{Package: "core", Status: pybuild.StatusSuccess},
		},
		Failed: []pybuild.Outcome{
			{Package: "notification", Status: pybuild.StatusFailure, Diagnostic: "missing dependency X"},
		},
		Start: now,
		End:   now.Add(time.Second),
	}}

	var out bytes.Buffer
	exec := NewCommandExecutor().WithService(stub)
	res := exec.ExecuteBuild(context.Background(), BuildRequest{ConfigPath: cfgPath, Out: &out})
	resp, err := res.ToTuple()
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Result.ExitCode())
	assert.Equal(t, filepath.Join(root, "dist", "python"), resp.DistDir)

	// Candidate list from config reached the service in declaration order.
	assert.Equal(t, []string{"core", "notification"}, stub.req.Packages)

	rendered := out.String()
	assert.Contains(t, rendered, "Build Summary")
	assert.Contains(t, rendered, "missing dependency X")

	// The run was persisted and is readable through ExecuteHistory.
	hist := exec.ExecuteHistory(context.Background(), HistoryRequest{ConfigPath: cfgPath, Limit: 5})
	require.True(t, hist.IsOk())
	runs := hist.Unwrap().Runs
	require.Len(t, runs, 1)
	assert.Equal(t, "run-1", runs[0].ID)
	assert.Equal(t, "failed", runs[0].Outcome)
}

func TestExecuteBuildRefusedWhileLocked(t *testing.T) {
	cfgPath, root := writeTestConfig(t, false, "core")
	mkEligible(t, root, "core")

	dist := filepath.Join(root, "dist", "python")
	require.NoError(t, os.MkdirAll(dist, 0o750))
	lock := filelock.New(dist)
	acquired, err := lock.TryAcquire()
	require.NoError(t, err)
	require.True(t, acquired)
	defer func() { require.NoError(t, lock.Release()) }()

	exec := NewCommandExecutor().WithService(&stubService{result: &build.Result{}})
	res := exec.ExecuteBuild(context.Background(), BuildRequest{ConfigPath: cfgPath, Out: &bytes.Buffer{}})

	require.True(t, res.IsErr())
	assert.Contains(t, res.UnwrapErr().Error(), "already writing")
}

func TestExecuteBuildMissingExplicitConfig(t *testing.T) {
	exec := NewCommandExecutor().WithService(&stubService{result: &build.Result{}})
	res := exec.ExecuteBuild(context.Background(), BuildRequest{
		ConfigPath: filepath.Join(t.TempDir(), "custom.yaml"),
		Out:        &bytes.Buffer{},
	})
	require.True(t, res.IsErr())
}

func TestExecuteListReportsEligibility(t *testing.T) {
	cfgPath, root := writeTestConfig(t, false, "core", "idp", "notification")
	mkEligible(t, root, "core", "notification")

	exec := NewCommandExecutor()
	res := exec.ExecuteList(context.Background(), ListRequest{ConfigPath: cfgPath})
	require.True(t, res.IsOk())

	candidates := res.Unwrap().Candidates
	require.Len(t, candidates, 3)
	assert.Equal(t, "core", candidates[0].Name)
	assert.True(t, candidates[0].Eligible)
	assert.False(t, candidates[1].Eligible) // idp has no descriptor
	assert.True(t, candidates[2].Eligible)
}

func TestExecuteCleanRemovesStaleState(t *testing.T) {
	cfgPath, root := writeTestConfig(t, false, "core", "idp")
	mkEligible(t, root, "core")

	stale := filepath.Join(root, "clients", "python", "core", "build")
	require.NoError(t, os.MkdirAll(stale, 0o750))

	exec := NewCommandExecutor()
	res := exec.ExecuteClean(context.Background(), CleanRequest{ConfigPath: cfgPath})
	require.True(t, res.IsOk())

	// Only the eligible package was cleaned.
	assert.Equal(t, []string{"core"}, res.Unwrap().Cleaned)
	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
}

func TestExecuteHistoryDisabled(t *testing.T) {
	cfgPath, _ := writeTestConfig(t, false, "core")

	exec := NewCommandExecutor()
	res := exec.ExecuteHistory(context.Background(), HistoryRequest{ConfigPath: cfgPath})
	require.True(t, res.IsErr())
	assert.Contains(t, res.UnwrapErr().Error(), "not enabled")
}
