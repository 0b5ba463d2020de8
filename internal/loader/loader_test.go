package loader

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saturn/pkg/algorithm"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAlgo() algorithm.Algorithm {
	return algorithm.NewBase()
}

func TestInstantiateSingleCandidateEmptySelector(t *testing.T) {
	resolver := NewStaticResolver(map[string]func() algorithm.Algorithm{
		"examples.Momentum": newAlgo,
	})
	ld := New(resolver, discardLogger())

	instance, err := ld.Instantiate("artifact.so", SelectAny(), time.Second)

	require.NoError(t, err)
	require.NotNil(t, instance)
}

func TestInstantiateAmbiguousWithEmptySelector(t *testing.T) {
	resolver := NewStaticResolver(map[string]func() algorithm.Algorithm{
		"examples.Momentum":      newAlgo,
		"examples.MeanReversion": newAlgo,
	})
	ld := New(resolver, discardLogger())

	instance, err := ld.Instantiate("artifact.so", SelectAny(), time.Second)

	require.ErrorIs(t, err, ErrAmbiguousType)
	assert.Nil(t, instance)
}

func TestInstantiateSelectsAmongCandidates(t *testing.T) {
	resolver := NewStaticResolver(map[string]func() algorithm.Algorithm{
		"examples.Momentum":      newAlgo,
		"examples.MeanReversion": newAlgo,
	})
	ld := New(resolver, discardLogger())

	instance, err := ld.Instantiate("artifact.so", SelectName("Momentum"), time.Second)

	require.NoError(t, err)
	require.NotNil(t, instance)
}

func TestInstantiateNoMatchingType(t *testing.T) {
	resolver := NewStaticResolver(map[string]func() algorithm.Algorithm{
		"examples.Momentum": newAlgo,
	})
	ld := New(resolver, discardLogger())

	instance, err := ld.Instantiate("artifact.so", SelectName("Breakout"), time.Second)

	require.ErrorIs(t, err, ErrNoMatchingType)
	assert.Nil(t, instance)
}

func TestInstantiateTimeout(t *testing.T) {
	resolver := NewStaticResolver(map[string]func() algorithm.Algorithm{
		"examples.Slow": func() algorithm.Algorithm {
			time.Sleep(500 * time.Millisecond)
			return algorithm.NewBase()
		},
	})
	ld := New(resolver, discardLogger())

	start := time.Now()
	instance, err := ld.Instantiate("artifact.so", SelectAny(), 20*time.Millisecond)

	require.ErrorIs(t, err, ErrInstantiationTimeout)
	assert.Nil(t, instance)
	assert.Less(t, time.Since(start), 400*time.Millisecond, "caller must not wait out the construction")
}

func TestInstantiateConstructionPanicIsContained(t *testing.T) {
	resolver := NewStaticResolver(map[string]func() algorithm.Algorithm{
		"examples.Faulty": func() algorithm.Algorithm {
			panic("constructor exploded")
		},
	})
	ld := New(resolver, discardLogger())

	instance, err := ld.Instantiate("artifact.so", SelectAny(), time.Second)

	require.ErrorIs(t, err, ErrConstructionFault)
	assert.Contains(t, err.Error(), "constructor exploded")
	assert.Nil(t, instance)
}

func TestInstantiateNilConstructorResult(t *testing.T) {
	resolver := NewStaticResolver(map[string]func() algorithm.Algorithm{
		"examples.Nil": func() algorithm.Algorithm { return nil },
	})
	ld := New(resolver, discardLogger())

	_, err := ld.Instantiate("artifact.so", SelectAny(), time.Second)

	require.ErrorIs(t, err, ErrConstructionFault)
}

type failingResolver struct{ err error }

func (r *failingResolver) Resolve(_ Reference) ([]Candidate, error) {
	return nil, r.err
}

func TestInstantiateResolverFailure(t *testing.T) {
	ld := New(&failingResolver{err: errors.New("bad artifact")}, discardLogger())

	instance, err := ld.Instantiate("artifact.so", SelectAny(), time.Second)

	require.ErrorIs(t, err, ErrConstructionFault)
	assert.Contains(t, err.Error(), "bad artifact")
	assert.Nil(t, instance)
}

func TestInstantiateRejectsNonPositiveTimeout(t *testing.T) {
	ld := New(NewStaticResolver(nil), discardLogger())

	_, err := ld.Instantiate("artifact.so", SelectAny(), 0)

	require.Error(t, err)
}
