// Copyright 2025 Supabase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gopkg.in/yaml.v3"

	"github.com/multigres/cql3/go/mterrors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const sampleDoc = `
statements:
  - alter_table: {table: ks.users, drop_compact_storage: true}
  - create_index: {if_not_exists: true, table: ks.users, column: {keys: attrs}}
  - insert: {table: ks.users, columns: [name, id], values: ['bob', 7], if_not_exists: true}
  - insert: {table: ks.users, columns: [a, b], values: [1]}
  - insert: {table: ks.users, json: "'{}'"}
`

func newTestFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, body := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(body), 0o644))
	}
	return fs
}

func execute(t *testing.T, fs afero.Fs, args ...string) (string, error) {
	t.Helper()
	root, _ := GetRootCommand(fs)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--log-level=error"))
	err := root.Execute()
	return out.String(), err
}

func TestRenderText(t *testing.T) {
	fs := newTestFs(t, map[string]string{"/a.yaml": sampleDoc, "/empty.yaml": ""})

	out, err := execute(t, fs, "render", "/a.yaml", "/empty.yaml")
	require.NoError(t, err)
	assert.Equal(t, `ALTER TABLE ks.users DROP COMPACT STORAGE;
CREATE INDEX IF NOT EXISTS ON ks.users( KEYS( attrs ) );
INSERT INTO ks.users (name, id) VALUES ('bob', 7) IF NOT EXISTS;
INSERT INTO ks.users (a, b) VALUES (1);
INSERT INTO ks.users () JSON '{}';
`, out)
}

func TestRenderJSON(t *testing.T) {
	fs := newTestFs(t, map[string]string{"/a.yaml": sampleDoc})

	out, err := execute(t, fs, "render", "-o", "json", "/a.yaml")
	require.NoError(t, err)

	var files []RenderedFile
	require.NoError(t, json.Unmarshal([]byte(out), &files))
	require.Len(t, files, 1)
	assert.Equal(t, "/a.yaml", files[0].File)
	require.Len(t, files[0].Statements, 5)
	assert.Equal(t, RenderedStatement{Type: "CREATE INDEX", CQL: "CREATE INDEX IF NOT EXISTS ON ks.users( KEYS( attrs ) )"}, files[0].Statements[1])
}

func TestRenderErrors(t *testing.T) {
	fs := newTestFs(t, map[string]string{"/bad.yaml": "statements: [{insert: {table: t}}]"})

	_, err := execute(t, fs, "render", "/bad.yaml")
	require.Error(t, err)
	assert.True(t, mterrors.IsError(err, "MT10003"))
	assert.Contains(t, err.Error(), "/bad.yaml")

	_, err = execute(t, fs, "render", "/missing.yaml")
	require.Error(t, err)
	assert.True(t, mterrors.IsError(err, "MT10004"))

	_, err = execute(t, fs, "render")
	require.Error(t, err)

	_, err = execute(t, fs, "render", "--output-format=xml", "/bad.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")

	out, err := execute(t, fs, "render", "--watch", "/bad.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--watch requires the OS filesystem")
	assert.Empty(t, out)
}

func TestValues(t *testing.T) {
	fs := newTestFs(t, map[string]string{"/a.yaml": sampleDoc})

	t.Run("text", func(t *testing.T) {
		out, err := execute(t, fs, "values", "/a.yaml")
		require.NoError(t, err)
		assert.Equal(t, `/a.yaml#2 ks.users
  id = 7
  name = 'bob'
/a.yaml#3 ks.users
/a.yaml#4 ks.users
`, out)
	})

	t.Run("json", func(t *testing.T) {
		out, err := execute(t, fs, "values", "--output-format", "json", "/a.yaml")
		require.NoError(t, err)

		var inserts []InsertValues
		require.NoError(t, json.Unmarshal([]byte(out), &inserts))
		require.Len(t, inserts, 3)
		assert.Equal(t, []ColumnValue{{Column: "id", Value: "7"}, {Column: "name", Value: "'bob'"}}, inserts[0].Values)
		assert.Empty(t, inserts[1].Values)
		assert.Empty(t, inserts[2].Values)
	})
}

func TestConfigCommand(t *testing.T) {
	fs := newTestFs(t, nil)
	cfgPath := filepath.Join(t.TempDir(), "cqlrender.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output-format: json\n"), 0o644))

	out, err := execute(t, fs, "config", "--config-file", cfgPath)
	require.NoError(t, err)

	var s Settings
	require.NoError(t, yaml.Unmarshal([]byte(out), &s))
	assert.Equal(t, "json", s.OutputFormat)
	assert.Equal(t, "error", s.LogLevel)
	assert.False(t, s.Watch)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, newTestFs(t, nil), "version")
	require.NoError(t, err)
	assert.Equal(t, "cqlrender "+Version+"\n", out)
}

// syncBuffer is a bytes.Buffer safe for the watcher goroutine and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRenderWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.yaml")
	require.NoError(t, os.WriteFile(path, []byte("statements: [{insert: {table: t, columns: [x], values: [1]}}]"), 0o644))

	root, _ := GetRootCommand(afero.NewOsFs())
	out := &syncBuffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs([]string{"render", "--watch", "--log-level=error", path})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- root.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "INSERT INTO t (x) VALUES (1);")
	}, 5*time.Second, 10*time.Millisecond)

	// Keep rewriting until the watcher, which starts after the first render, sees a change.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("statements: [{insert: {table: t, columns: [x], values: [2]}}]"), 0o644)
		return strings.Contains(out.String(), "INSERT INTO t (x) VALUES (2);")
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("render --watch did not stop after cancel")
	}
}
