package kanerva

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPtr(v int64) *int64 { return &v }

func testConfig() Config {
	return Config{
		AddressDimension: 100,
		MemoryDimension:  24,
		NumLocations:     200,
		HammingThreshold: 45,
		Seed:             seedPtr(42),
	}
}

func zeros(n int) []int { return make([]int, n) }

func ones(n int) []int {
	v := make([]int, n)
	for i := range v {
		v[i] = 1
	}
	return v
}

func TestConfig_Validate(t *testing.T) {
	base := testConfig()
	assert.NoError(t, base.Validate())

	cases := []struct {
		name string
		mod  func(c *Config)
	}{
		{"zero address dim", func(c *Config) { c.AddressDimension = 0 }},
		{"negative address dim", func(c *Config) { c.AddressDimension = -1 }},
		{"zero memory dim", func(c *Config) { c.MemoryDimension = 0 }},
		{"zero locations", func(c *Config) { c.NumLocations = 0 }},
		{"negative threshold", func(c *Config) { c.HammingThreshold = -1 }},
		{"threshold over address dim", func(c *Config) { c.HammingThreshold = c.AddressDimension + 1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := base
			tc.mod(&c)
			err := c.Validate()
			assert.Error(t, err)
			assert.True(t, IsInvalidConfig(err))
		})
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	c := testConfig()
	c.NumLocations = 0
	_, err := New(c)
	assert.True(t, IsInvalidConfig(err))
}

func TestEngine_FreshReadIsZero(t *testing.T) {
	e, err := New(testConfig())
	require.NoError(t, err)

	addr := zeros(e.AddressDimension())
	out, err := e.Read(addr)
	require.NoError(t, err)
	assert.Equal(t, zeros(e.MemoryDimension()), out)
}

func TestEngine_WriteThenReadRecallsSamePattern(t *testing.T) {
	e, err := New(testConfig())
	require.NoError(t, err)

	addr := make([]int, e.AddressDimension())
	for i := range addr {
		if i%3 == 0 {
			addr[i] = 1
		}
	}
	data := ones(e.MemoryDimension())

	require.NoError(t, e.Write(addr, data))
	out, err := e.Read(addr)
	require.NoError(t, err)
	assert.Equal(t, data, out)
	assert.Equal(t, 1, e.MemoryCount())
}

func TestEngine_SeedReproducibility(t *testing.T) {
	cfg := testConfig()
	e1, err := New(cfg)
	require.NoError(t, err)
	e2, err := New(cfg)
	require.NoError(t, err)

	addr := make([]int, cfg.AddressDimension)
	for i := range addr {
		if i%5 == 0 {
			addr[i] = 1
		}
	}
	data := make([]int, cfg.MemoryDimension)
	for i := range data {
		if i%2 == 0 {
			data[i] = 1
		}
	}

	require.NoError(t, e1.Write(addr, data))
	require.NoError(t, e2.Write(addr, data))

	out1, err := e1.Read(addr)
	require.NoError(t, err)
	out2, err := e2.Read(addr)
	require.NoError(t, err)
	assert.Equal(t, out1, out2)
}

func TestEngine_FingerprintMatchesAcrossIdenticalHistory(t *testing.T) {
	cfg := testConfig()
	e1, err := New(cfg)
	require.NoError(t, err)
	e2, err := New(cfg)
	require.NoError(t, err)

	addr := make([]int, cfg.AddressDimension)
	data := ones(cfg.MemoryDimension)
	for i := range addr {
		if i%4 == 0 {
			addr[i] = 1
		}
	}

	require.NoError(t, e1.Write(addr, data))
	require.NoError(t, e2.Write(addr, data))
	assert.Equal(t, e1.fingerprint(), e2.fingerprint())

	require.NoError(t, e2.Write(addr, data))
	assert.NotEqual(t, e1.fingerprint(), e2.fingerprint())
}

func TestEngine_DifferentSeedsCanDiffer(t *testing.T) {
	cfg1 := testConfig()
	cfg2 := testConfig()
	cfg2.Seed = seedPtr(43)

	e1, err := New(cfg1)
	require.NoError(t, err)
	e2, err := New(cfg2)
	require.NoError(t, err)

	// The hard-location tables themselves should not be identical; probe via
	// active-set membership on a fixed address rather than reaching into
	// unexported state.
	addr := make([]int, cfg1.AddressDimension)
	for i := range addr {
		if i%7 == 0 {
			addr[i] = 1
		}
	}
	a1 := e1.activeSet(e1.locations.PackBits(addr))
	a2 := e2.activeSet(e2.locations.PackBits(addr))
	assert.NotEqual(t, a1, a2)
}

func TestEngine_MemoryCountIncrementsPerWrite(t *testing.T) {
	e, err := New(testConfig())
	require.NoError(t, err)
	addr := zeros(e.AddressDimension())
	data := zeros(e.MemoryDimension())

	for i := 1; i <= 3; i++ {
		require.NoError(t, e.Write(addr, data))
		assert.Equal(t, i, e.MemoryCount())
	}
}

func TestEngine_EraseMemoryRestoresInitialState(t *testing.T) {
	e, err := New(testConfig())
	require.NoError(t, err)
	addr := zeros(e.AddressDimension())
	data := ones(e.MemoryDimension())
	require.NoError(t, e.Write(addr, data))

	e.EraseMemory()
	assert.Equal(t, 0, e.MemoryCount())

	out, err := e.Read(addr)
	require.NoError(t, err)
	assert.Equal(t, zeros(e.MemoryDimension()), out)
}

func TestEngine_WriteRejectsWrongLength(t *testing.T) {
	e, err := New(testConfig())
	require.NoError(t, err)

	err = e.Write(zeros(e.AddressDimension()+1), zeros(e.MemoryDimension()))
	assert.True(t, IsInvalidArgument(err))
	assert.Equal(t, 0, e.MemoryCount())

	err = e.Write(zeros(e.AddressDimension()), zeros(e.MemoryDimension()+1))
	assert.True(t, IsInvalidArgument(err))
	assert.Equal(t, 0, e.MemoryCount())
}

func TestEngine_WriteRejectsNonBinaryValues(t *testing.T) {
	e, err := New(testConfig())
	require.NoError(t, err)

	addr := zeros(e.AddressDimension())
	addr[0] = 2
	err = e.Write(addr, zeros(e.MemoryDimension()))
	assert.True(t, IsInvalidArgument(err))
	assert.Equal(t, 0, e.MemoryCount())
}

func TestEngine_ReadRejectsWrongLength(t *testing.T) {
	e, err := New(testConfig())
	require.NoError(t, err)

	_, err = e.Read(zeros(e.AddressDimension() - 1))
	assert.True(t, IsInvalidArgument(err))
}

func TestEngine_SingleLocationPopulation(t *testing.T) {
	cfg := Config{
		AddressDimension: 16,
		MemoryDimension:  8,
		NumLocations:     1,
		HammingThreshold: 16,
		Seed:             seedPtr(7),
	}
	e, err := New(cfg)
	require.NoError(t, err)

	addr := ones(16)
	data := ones(8)
	require.NoError(t, e.Write(addr, data))

	out, err := e.Read(zeros(16))
	require.NoError(t, err)
	assert.Equal(t, data, out, "the single hard location is always active regardless of query address")
}

func TestEngine_OverwriteDominantPatternWins(t *testing.T) {
	cfg := testConfig()
	cfg.HammingThreshold = cfg.AddressDimension // every location always active
	e, err := New(cfg)
	require.NoError(t, err)

	addr := zeros(e.AddressDimension())
	allOnes := ones(e.MemoryDimension())
	allZeros := zeros(e.MemoryDimension())

	require.NoError(t, e.Write(addr, allOnes))
	require.NoError(t, e.Write(addr, allOnes))
	require.NoError(t, e.Write(addr, allZeros))

	out, err := e.Read(addr)
	require.NoError(t, err)
	assert.Equal(t, allOnes, out, "two votes for 1 against one vote for 0 should still read back 1")
}

func TestEngine_String(t *testing.T) {
	e, err := New(testConfig())
	require.NoError(t, err)
	s := e.String()
	assert.Contains(t, s, "Engine")
	assert.Contains(t, s, "A=100")
	assert.Contains(t, s, "M=24")
	assert.Contains(t, s, "N=200")
	assert.Contains(t, s, "T=45")
}
