package profile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vanditkanudia/gridgap/core/model"
)

func writeProfile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestCSVSourceFetch(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "wind_no01_2030.csv", "hour,value\n0,0.5\n1,0.25\n2,0.75\n")

	src := NewCSVSource(dir)
	key := model.ProfileKey{Zone: "NO01", Tech: model.TechWind, Year: 2030}
	p, err := src.Fetch(context.Background(), key)
	require.NoError(t, err)
	require.Equal(t, key, p.Key)
	require.Equal(t, []float64{0.5, 0.25, 0.75}, p.Values)
}

func TestCSVSourceMissingFile(t *testing.T) {
	src := NewCSVSource(t.TempDir())
	_, err := src.Fetch(context.Background(), model.ProfileKey{Zone: "NO01", Tech: model.TechSolar, Year: 2030})
	require.Error(t, err)
	require.True(t, model.IsMissingData(err), "got %v", err)
}

func TestCSVSourceHourGap(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "wind_no01_2030.csv", "hour,value\n0,0.5\n2,0.25\n")

	src := NewCSVSource(dir)
	_, err := src.Fetch(context.Background(), model.ProfileKey{Zone: "NO01", Tech: model.TechWind, Year: 2030})
	require.Error(t, err)
	require.True(t, model.IsConfiguration(err), "got %v", err)
}

func TestCSVSourceBadValue(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "wind_no01_2030.csv", "hour,value\n0,NaN\n")

	src := NewCSVSource(dir)
	_, err := src.Fetch(context.Background(), model.ProfileKey{Zone: "NO01", Tech: model.TechWind, Year: 2030})
	require.Error(t, err)
	require.True(t, model.IsConfiguration(err), "got %v", err)
}

func TestCSVSourceMissingHeader(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "wind_no01_2030.csv", "0,0.5\n1,0.25\n")

	src := NewCSVSource(dir)
	_, err := src.Fetch(context.Background(), model.ProfileKey{Zone: "NO01", Tech: model.TechWind, Year: 2030})
	require.Error(t, err)
	require.True(t, model.IsConfiguration(err), "got %v", err)
}

func TestFilename(t *testing.T) {
	key := model.ProfileKey{Zone: "SE04", Tech: model.TechHydroROR, Year: 2019}
	require.Equal(t, "hydro_ror_se04_2019.csv", Filename(key))
}
