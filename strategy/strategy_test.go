package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrategyValidate(t *testing.T) {
	tests := []struct {
		name    string
		s       Strategy
		wantErr bool
	}{
		{name: "auto", s: Auto(), wantErr: false},
		{name: "pre filter", s: NewPreFilter(), wantErr: false},
		{name: "post filter minimum", s: NewPostFilter(1), wantErr: false},
		{name: "post filter maximum", s: NewPostFilter(MaxOversample), wantErr: false},
		{name: "post filter below one", s: NewPostFilter(0.5), wantErr: true},
		{name: "post filter zero", s: NewPostFilter(0), wantErr: true},
		{name: "post filter above cap", s: NewPostFilter(10.5), wantErr: true},
		{name: "hybrid valid", s: NewHybrid(1.5, 5), wantErr: false},
		{name: "hybrid equal bounds", s: NewHybrid(2, 2), wantErr: false},
		{name: "hybrid min below one", s: NewHybrid(0.5, 5), wantErr: true},
		{name: "hybrid max above cap", s: NewHybrid(1.5, 11), wantErr: true},
		{name: "hybrid inverted bounds", s: NewHybrid(5, 2), wantErr: true},
		{name: "unknown kind", s: Strategy{Kind: Kind(9)}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if tt.wantErr {
				require.Error(t, err)

				var cfgErr *ConfigError
				assert.ErrorAs(t, err, &cfgErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name        string
		selectivity float64
		wantKind    Kind
	}{
		{name: "very broad", selectivity: 0.95, wantKind: KindPreFilter},
		{name: "just above pre threshold", selectivity: 0.81, wantKind: KindPreFilter},
		{name: "exactly pre threshold", selectivity: 0.80, wantKind: KindHybrid},
		{name: "medium", selectivity: 0.30, wantKind: KindHybrid},
		{name: "exactly post threshold", selectivity: 0.05, wantKind: KindHybrid},
		{name: "just below post threshold", selectivity: 0.04, wantKind: KindPostFilter},
		{name: "very narrow", selectivity: 0.01, wantKind: KindPostFilter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Select(tt.selectivity)
			assert.Equal(t, tt.wantKind, s.Kind)
			assert.NoError(t, s.Validate(), "Select must always yield a valid strategy")
		})
	}
}

func TestSelectParameters(t *testing.T) {
	t.Run("post filter oversample is inverse selectivity", func(t *testing.T) {
		// 1/0.04 = 25, capped at MaxOversample.
		s := Select(0.04)
		assert.InDelta(t, MaxOversample, s.Oversample, 1e-9)
	})

	t.Run("hybrid bounds", func(t *testing.T) {
		s := Select(0.30)
		assert.InDelta(t, 1.5, s.MinOversample, 1e-9)
		assert.InDelta(t, 1/0.30, s.MaxOversample, 1e-9)
	})

	t.Run("hybrid bounds never invert", func(t *testing.T) {
		// 1/0.7 is about 1.43, below the lower bound; the upper bound
		// must clamp up rather than produce an inverted pair.
		for _, sel := range []float64{0.67, 0.70, 0.80} {
			s := Select(sel)
			assert.Equal(t, KindHybrid, s.Kind)
			assert.LessOrEqual(t, s.MinOversample, s.MaxOversample, "selectivity %g", sel)
			assert.NoError(t, s.Validate(), "selectivity %g", sel)
		}
		s := Select(0.70)
		assert.InDelta(t, 1.5, s.MinOversample, 1e-9)
		assert.InDelta(t, 1.5, s.MaxOversample, 1e-9)
	})
}

func TestOversampleFor(t *testing.T) {
	assert.InDelta(t, MaxOversample, OversampleFor(0), 1e-9)
	assert.InDelta(t, MaxOversample, OversampleFor(-1), 1e-9)
	assert.InDelta(t, MaxOversample, OversampleFor(0.01), 1e-9)
	assert.InDelta(t, 2.0, OversampleFor(0.5), 1e-9)
	assert.InDelta(t, 1.0, OversampleFor(1.0), 1e-9)
	assert.InDelta(t, 1.0, OversampleFor(2.0), 1e-9)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "auto", KindAuto.String())
	assert.Equal(t, "pre_filter", KindPreFilter.String())
	assert.Equal(t, "post_filter", KindPostFilter.String())
	assert.Equal(t, "hybrid", KindHybrid.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
