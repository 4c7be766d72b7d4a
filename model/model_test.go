package model_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/lvfusion/model"
)

type ModelSuite struct {
	suite.Suite
}

func (s *ModelSuite) TestConstruction() {
	m, err := model.NewModel([]int{2, 3, 4})
	require.NoError(s.T(), err)
	require.Equal(s.T(), 3, m.NumVariables())
	require.Equal(s.T(), 3, m.NumLabels(1))
	require.Equal(s.T(), 4, model.MaxState(m))
	require.Equal(s.T(), model.DefaultMaxOrder, m.MaxOrder())

	_, err = model.NewModel([]int{2, 0})
	require.ErrorIs(s.T(), err, model.ErrEmptyLabelSpace)

	u, err := model.NewUniformModel(5, 3, model.WithMaxOrder(4))
	require.NoError(s.T(), err)
	require.Equal(s.T(), 5, u.NumVariables())
	require.Equal(s.T(), 4, u.MaxOrder())
}

func (s *ModelSuite) TestWithMaxOrderPanics() {
	require.Panics(s.T(), func() { model.WithMaxOrder(0) })
	require.Panics(s.T(), func() { model.WithMaxOrder(model.HardMaxOrder + 1) })
}

func (s *ModelSuite) TestAddFactorValidation() {
	m, err := model.NewModel([]int{2, 2, 3})
	require.NoError(s.T(), err)

	_, err = m.AddFactor([]int{0, 5}, model.Potts{Weight: 1})
	require.ErrorIs(s.T(), err, model.ErrVariableOutOfRange)

	_, err = m.AddFactor([]int{1, 1}, model.Potts{Weight: 1})
	require.ErrorIs(s.T(), err, model.ErrDuplicateVariable)

	_, err = m.AddFactor([]int{0}, model.TruncatedLinear{Weight: 1})
	require.ErrorIs(s.T(), err, model.ErrFunctionShape)

	_, err = m.AddFactor([]int{0, 2}, model.MustTable([]int{2, 2}, 0, 1, 1, 0))
	require.ErrorIs(s.T(), err, model.ErrFunctionShape)

	_, err = m.AddFactor([]int{2}, model.Unary{1, 2})
	require.ErrorIs(s.T(), err, model.ErrFunctionShape)

	_, err = m.AddFactor([]int{0}, nil)
	require.ErrorIs(s.T(), err, model.ErrFunctionShape)

	f, err := m.AddFactor([]int{0, 2}, model.MustTable([]int{2, 3}, 0, 1, 2, 3, 4, 5))
	require.NoError(s.T(), err)
	require.Equal(s.T(), 0, f)
	require.Equal(s.T(), []int{0, 2}, m.FactorVariables(f))
	// first variable fastest: (l0=1, l1=2) -> 1 + 2*2 = 5
	require.Equal(s.T(), 5.0, m.FactorEnergy(f, []int{1, 2}))
}

// TestOrderCap covers the default cap: an 11-variable clique is rejected.
func (s *ModelSuite) TestOrderCap() {
	m, err := model.NewUniformModel(11, 2)
	require.NoError(s.T(), err)
	vars := make([]int, 11)
	for i := range vars {
		vars[i] = i
	}
	_, err = m.AddFactor(vars, model.Potts{Weight: 1})
	require.ErrorIs(s.T(), err, model.ErrOrderExceeded)

	_, err = m.AddFactor(vars[:10], model.Potts{Weight: 1})
	require.NoError(s.T(), err)
	require.Equal(s.T(), 10, model.MaxArity(m))
}

func (s *ModelSuite) TestEvaluate() {
	m, err := model.NewUniformModel(3, 3)
	require.NoError(s.T(), err)
	_, err = m.AddFactor([]int{0}, model.Unary{5, 1, 3})
	require.NoError(s.T(), err)
	_, err = m.AddFactor([]int{0, 1}, model.TruncatedLinear{Weight: 2, Cap: 1})
	require.NoError(s.T(), err)
	_, err = m.AddFactor([]int{0, 1, 2}, model.Potts{Weight: 10})
	require.NoError(s.T(), err)
	_, err = m.AddFactor([]int{2, 1}, model.FuncOf(2, func(l []int) float64 { return float64(l[0] * l[1]) }))
	require.NoError(s.T(), err)

	require.Equal(s.T(), 5.0, m.Evaluate([]int{0, 0, 0}))
	// unary 1 + truncated 2*min(1,1)=2 + potts 10 + 2*0
	require.Equal(s.T(), 13.0, m.Evaluate([]int{1, 0, 2}))
	require.Equal(s.T(), 1.0+2+10+4, model.Evaluate(m, []int{1, 2, 2}))
}

func (s *ModelSuite) TestValidateLabeling() {
	m, err := model.NewModel([]int{2, 3})
	require.NoError(s.T(), err)
	require.NoError(s.T(), model.ValidateLabeling(m, []int{1, 2}))
	require.ErrorIs(s.T(), model.ValidateLabeling(m, []int{1}), model.ErrLabelingLength)
	require.ErrorIs(s.T(), model.ValidateLabeling(m, []int{2, 0}), model.ErrLabelOutOfRange)
	require.ErrorIs(s.T(), model.ValidateLabeling(m, []int{0, -1}), model.ErrLabelOutOfRange)
}

func (s *ModelSuite) TestStats() {
	m, err := model.NewModel([]int{2, 2, 5})
	require.NoError(s.T(), err)
	_, _ = m.AddFactor([]int{0}, model.Unary{0, 1})
	_, _ = m.AddFactor([]int{0, 1}, model.Potts{Weight: 1})
	_, _ = m.AddFactor([]int{1, 2}, model.Potts{Weight: 1})
	st := m.Stats()
	require.Equal(s.T(), 3, st.Variables)
	require.Equal(s.T(), 3, st.Factors)
	require.Equal(s.T(), 5, st.MaxState)
	require.Equal(s.T(), 2, st.MaxArity)
	require.Equal(s.T(), map[int]int{1: 1, 2: 2}, st.ByArity)
}

// TestConcurrentReaders registers factors while other goroutines evaluate.
func (s *ModelSuite) TestConcurrentReaders() {
	m, err := model.NewUniformModel(4, 2)
	require.NoError(s.T(), err)
	_, err = m.AddFactor([]int{0, 1}, model.Potts{Weight: 1})
	require.NoError(s.T(), err)

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				_ = m.Evaluate([]int{0, 1, 0, 1})
			}
		}()
	}
	for i := 0; i < 50; i++ {
		_, err := m.AddFactor([]int{2, 3}, model.Potts{Weight: 1})
		require.NoError(s.T(), err)
	}
	wg.Wait()
	require.Equal(s.T(), 51, m.NumFactors())
}

func TestModelSuite(t *testing.T) {
	suite.Run(t, new(ModelSuite))
}
