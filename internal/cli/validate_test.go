package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/figlift/figlift/internal/kiwi"
	"github.com/figlift/figlift/internal/testutil"
)

func TestValidateValidFile(t *testing.T) {
	path := writeSampleFile(t)

	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(fakeOpts("text"))
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "✓")
}

func TestValidateInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.fig")
	require.NoError(t, os.WriteFile(path, []byte("not a container at all"), 0o644))

	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(fakeOpts("json"))
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status) // the command ran; the verdict is in the data

	data := resp.Data.(map[string]any)
	assert.Equal(t, false, data["valid"])
	assert.Equal(t, "INVALID_MAGIC", data["code"])
}

func TestValidateUnresolvedParent(t *testing.T) {
	path := writeSampleFile(t)

	ghost := testutil.GUIDValue(9, 9)
	msg := kiwi.Object{Type: "Message", Fields: []kiwi.Field{
		{Name: "nodeChanges", Value: kiwi.Array{
			testutil.NodeChange(0, 0, nil, ""),
			testutil.NodeChange(0, 1, &ghost, "a"),
		}},
		{Name: "blobs", Value: kiwi.Array{}},
	}}

	buf := &bytes.Buffer{}
	opts := &RootOptions{Format: "json", Decoder: &testutil.FakeDecoder{Value: msg}}
	cmd := NewValidateCommand(opts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	data := resp.Data.(map[string]any)
	assert.Equal(t, "UNRESOLVED_PARENT", data["code"])
}

func TestValidateYAMLFormat(t *testing.T) {
	path := writeSampleFile(t)

	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(fakeOpts("yaml"))
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "status: ok")
	assert.Contains(t, buf.String(), "valid: true")
}
