package cmdmend_test

import (
	"testing"

	"github.com/fwojciec/cmdmend"
	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	t.Parallel()

	t.Run("identical vectors score 1", func(t *testing.T) {
		t.Parallel()

		v := []float32{0.5, -0.25, 0.75}
		assert.InDelta(t, 1.0, cmdmend.CosineSimilarity(v, v), 1e-6)
	})

	t.Run("orthogonal vectors score 0", func(t *testing.T) {
		t.Parallel()

		a := []float32{1, 0}
		b := []float32{0, 1}
		assert.InDelta(t, 0.0, cmdmend.CosineSimilarity(a, b), 1e-6)
	})

	t.Run("opposite vectors score -1", func(t *testing.T) {
		t.Parallel()

		a := []float32{1, 2}
		b := []float32{-1, -2}
		assert.InDelta(t, -1.0, cmdmend.CosineSimilarity(a, b), 1e-6)
	})

	t.Run("mismatched dimensions score 0", func(t *testing.T) {
		t.Parallel()

		assert.Zero(t, cmdmend.CosineSimilarity([]float32{1, 2}, []float32{1}))
	})

	t.Run("zero vectors score 0", func(t *testing.T) {
		t.Parallel()

		assert.Zero(t, cmdmend.CosineSimilarity([]float32{0, 0}, []float32{1, 1}))
		assert.Zero(t, cmdmend.CosineSimilarity(nil, nil))
	})
}
