package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vanditkanudia/gridgap/core/factory"
	"github.com/vanditkanudia/gridgap/core/model"
	coreprofile "github.com/vanditkanudia/gridgap/core/profile"
)

func TestSyntheticDeterministic(t *testing.T) {
	key := model.ProfileKey{Zone: "NO01", Tech: model.TechWind, Year: 2030}
	a, err := NewSyntheticSource(SyntheticConfig{Seed: 7}).Fetch(context.Background(), key)
	require.NoError(t, err)
	b, err := NewSyntheticSource(SyntheticConfig{Seed: 7}).Fetch(context.Background(), key)
	require.NoError(t, err)
	require.Equal(t, a.Values, b.Values)

	other, err := NewSyntheticSource(SyntheticConfig{Seed: 8}).Fetch(context.Background(), key)
	require.NoError(t, err)
	require.NotEqual(t, a.Values, other.Values)
}

func TestSyntheticSolarShape(t *testing.T) {
	key := model.ProfileKey{Zone: "NO01", Tech: model.TechSolar, Year: 2030}
	p, err := NewSyntheticSource(SyntheticConfig{Seed: 1}).Fetch(context.Background(), key)
	require.NoError(t, err)
	require.Len(t, p.Values, 8760)
	require.NoError(t, p.Validate(8760))

	// Midnight is dark all year.
	for d := 0; d < 365; d++ {
		require.Zero(t, p.Values[d*24], "day %d midnight", d)
	}
	// Midsummer noon outproduces midwinter noon.
	require.Greater(t, p.Values[(172*24)+12], p.Values[(5*24)+12])
}

func TestSyntheticDemandPeak(t *testing.T) {
	key := model.ProfileKey{Zone: "NO01", Tech: model.TechDemand, Year: 2020}
	p, err := NewSyntheticSource(SyntheticConfig{Seed: 1, PeakDemandMW: 1500}).Fetch(context.Background(), key)
	require.NoError(t, err)
	require.Len(t, p.Values, 8784, "2020 is a leap year")

	max := 0.0
	for _, v := range p.Values {
		require.GreaterOrEqual(t, v, 0.0)
		if v > max {
			max = v
		}
	}
	require.InDelta(t, 1500, max, 1e-9)
}

func TestSyntheticUnsupportedClass(t *testing.T) {
	key := model.ProfileKey{Zone: "NO01", Tech: model.TechNuclear, Year: 2030}
	_, err := NewSyntheticSource(SyntheticConfig{}).Fetch(context.Background(), key)
	require.Error(t, err)
	require.True(t, model.IsMissingData(err), "got %v", err)
}

func TestSourceFactoryBuiltins(t *testing.T) {
	src, err := coreprofile.NewSource(factory.ModuleConfig{
		Type: "synthetic",
		Conf: map[string]any{"seed": 3, "peak_demand_mw": 900},
	})
	require.NoError(t, err)
	p, err := src.Fetch(context.Background(), model.ProfileKey{Zone: "SE04", Tech: model.TechDemand, Year: 2030})
	require.NoError(t, err)
	require.Len(t, p.Values, 8760)

	src, err = coreprofile.NewSource(factory.ModuleConfig{
		Type: "csv",
		Conf: map[string]any{"dir": t.TempDir()},
	})
	require.NoError(t, err)
	_, err = src.Fetch(context.Background(), model.ProfileKey{Zone: "SE04", Tech: model.TechWind, Year: 2030})
	require.True(t, model.IsMissingData(err), "got %v", err)

	_, err = coreprofile.NewSource(factory.ModuleConfig{Type: "hdf5"})
	require.Error(t, err)

	_, err = coreprofile.NewSource(factory.ModuleConfig{Type: "http"})
	require.Error(t, err, "http source requires url")
}
