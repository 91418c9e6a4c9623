package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/domain"
	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/engine"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCommand(&errOut)
	root.SetOut(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestGenerate_JSON(t *testing.T) {
	out, logs, err := run(t, "generate", "--width", "40", "--height", "30", "--master-rooms", "2", "--cars", "1", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, logs, "Generated layout")

	var res engine.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, domain.Boundaries{Width: 40, Height: 30}, res.Layout.Boundaries)
	assert.Equal(t, "Parking", res.Layout.Rooms[0].Name)
}

func TestGenerate_Table(t *testing.T) {
	out, _, err := run(t, "generate", "--width", "40", "--height", "30", "--master-rooms", "2", "--cars", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Master Bedroom 2")
	assert.Contains(t, out, "13 rooms")
}

func TestGenerate_FileWithOverride(t *testing.T) {
	dir := t.TempDir()
	reqPath := filepath.Join(dir, "house.toml")
	require.NoError(t, os.WriteFile(reqPath, []byte(`
width = 40
height = 30
master_rooms = 2
cars = 1
orientation = "rotated"
`), 0o644))
	svgPath := filepath.Join(dir, "house.svg")

	_, logs, err := run(t, "generate", "-f", reqPath, "--height", "30", "--format", "svg", "-o", svgPath)
	require.NoError(t, err)
	assert.Contains(t, logs, "Wrote "+svgPath)

	data, err := os.ReadFile(svgPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<svg"))
	assert.Contains(t, string(data), "Master Bedroom 2")
}

func TestGenerate_Errors(t *testing.T) {
	_, _, err := run(t, "generate", "--width", "-1", "--height", "10")
	assert.ErrorIs(t, err, domain.ErrInvalidEnvelope)

	_, _, err = run(t, "generate", "--width", "10", "--height", "10", "--orientation", "sideways")
	assert.Error(t, err)

	_, _, err = run(t, "generate", "--width", "10", "--height", "10", "--format", "pdf")
	assert.EqualError(t, err, `unknown format "pdf"`)

	_, _, err = run(t, "generate", "-f", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestGenerate_UnknownFormatLeavesNoFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.svg")
	_, _, err := run(t, "generate", "--width", "40", "--height", "30", "--format", "bogus", "-o", out)
	assert.EqualError(t, err, `unknown format "bogus"`)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "output file created: %v", statErr)
}

func TestEstimate_RoundTrip(t *testing.T) {
	layoutPath := filepath.Join(t.TempDir(), "layout.json")
	_, _, err := run(t, "generate", "--width", "40", "--height", "30", "--master-rooms", "2", "--cars", "1", "--format", "json", "-o", layoutPath)
	require.NoError(t, err)

	out, _, err := run(t, "estimate", "--json", layoutPath)
	require.NoError(t, err)

	var est domain.ParameterEstimate
	require.NoError(t, json.Unmarshal([]byte(out), &est))
	assert.Equal(t, 2, est.MasterRooms)
	assert.Equal(t, 1, est.UnattachedBathrooms)
	assert.Equal(t, 1, est.Cars)

	out, _, err = run(t, "estimate", layoutPath)
	require.NoError(t, err)
	assert.Contains(t, out, "master_rooms")
}

func TestEstimate_BareLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "boundaries": {"width": 20, "height": 20},
  "rooms": [
    {"name": "Master Bedroom 1", "x1": 0, "y1": 0, "x2": 10, "y2": 10},
    {"name": "Common Toilet", "x1": 10, "y1": 0, "x2": 13, "y2": 3}
  ]
}`), 0o644))

	out, _, err := run(t, "estimate", "--json", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"master_rooms": 1`)
}

func TestEstimate_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"boundaries":{"width":0,"height":5},"rooms":[]}`), 0o644))

	_, _, err := run(t, "estimate", path)
	assert.ErrorIs(t, err, domain.ErrMalformedLayout)

	_, _, err = run(t, "estimate")
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	layoutPath := filepath.Join(dir, "layout.json")
	_, _, err := run(t, "generate", "--width", "20", "--height", "20", "--format", "json", "-o", layoutPath)
	require.NoError(t, err)

	out, _, err := run(t, "render", layoutPath, "--scale", "5", "--areas", "--title", "Cabin")
	require.NoError(t, err)
	assert.Contains(t, out, `width="100" height="100"`)
	assert.Contains(t, out, "<title>Cabin</title>")
}

func TestLogLevel(t *testing.T) {
	_, logs, err := run(t, "--log-level", "error", "generate", "--width", "20", "--height", "20")
	require.NoError(t, err)
	assert.Empty(t, logs)

	_, _, err = run(t, "--log-level", "loud", "generate", "--width", "20", "--height", "20")
	assert.Error(t, err)
}

func TestGenerate_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "house.yml")
	require.NoError(t, os.WriteFile(path, []byte("width: 40\nheight: 30\nmaster_rooms: 2\ncars: 1\n"), 0o644))

	out, _, err := run(t, "generate", "--file", path, "--format", "json")
	require.NoError(t, err)

	var res engine.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Len(t, res.Layout.Rooms, 13)
}
