package dataset

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	input := "x,y,label\n0.5, 1.5, 0\n-1,2,1\n3,4,2\n"
	opts := DefaultCSVOptions()
	opts.Header = true

	d, err := ReadCSV(strings.NewReader(input), opts)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0.5, 1.5}, {-1, 2}, {3, 4}}, d.Features)
	assert.Equal(t, []int{0, 1, 2}, d.Labels)
	assert.Equal(t, 3, d.Len())
	assert.Equal(t, 2, d.NumFeatures())
	assert.Equal(t, 3, d.NumClasses())
}

func TestReadCSVLabelColumn(t *testing.T) {
	d, err := ReadCSV(strings.NewReader("1;0.1;0.2\n0;0.3;0.4\n"), CSVOptions{LabelColumn: 0, Comma: ';'})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, d.Labels)
	assert.Equal(t, [][]float64{{0.1, 0.2}, {0.3, 0.4}}, d.Features)
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("1,2,x\n"), DefaultCSVOptions())
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader("1,a,0\n"), DefaultCSVOptions())
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader("1,2,-1\n"), DefaultCSVOptions())
	assert.ErrorIs(t, err, ErrInvalidDataset)

	_, err = ReadCSV(strings.NewReader("1,2,0\n"), CSVOptions{LabelColumn: 5})
	assert.ErrorIs(t, err, ErrInvalidDataset)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Dataset{}.Validate())
	assert.ErrorIs(t, Dataset{Features: [][]float64{{1}}, Labels: nil}.Validate(), ErrInvalidDataset)
	assert.ErrorIs(t, Dataset{Features: [][]float64{{1}, {1, 2}}, Labels: []int{0, 0}}.Validate(), ErrInvalidDataset)
}

func TestSplit(t *testing.T) {
	d := Dataset{
		Features: [][]float64{{0}, {1}, {2}, {3}, {4}, {5}, {6}, {7}, {8}, {9}},
		Labels:   []int{0, 1, 0, 1, 0, 1, 0, 1, 0, 1},
	}

	train, test := Split(d, 0.3)
	assert.Equal(t, 7, train.Len())
	assert.Equal(t, 3, test.Len())
	assert.Equal(t, []float64{7}, test.Features[0])

	train, test = Split(d, 0)
	assert.Equal(t, 8, train.Len())
	assert.Equal(t, 2, test.Len())
}

func TestShuffle(t *testing.T) {
	d := Dataset{
		Features: [][]float64{{0}, {1}, {2}, {3}, {4}},
		Labels:   []int{0, 1, 2, 3, 4},
	}
	shuffled := Shuffle(d, rand.New(rand.NewPCG(1, 2)))
	require.Equal(t, 5, shuffled.Len())
	for i, label := range shuffled.Labels {
		assert.Equal(t, float64(label), shuffled.Features[i][0])
	}
	assert.ElementsMatch(t, d.Labels, shuffled.Labels)
}

func TestScaler(t *testing.T) {
	train := Dataset{Features: [][]float64{{0, 5, 1}, {10, 5, 3}}, Labels: []int{0, 1}}
	s := FitScaler(train)
	assert.Equal(t, []float64{0, 5, 1}, s.Min)
	assert.Equal(t, []float64{10, 5, 3}, s.Max)

	scaled := s.Apply(Dataset{Features: [][]float64{{5, 7, 4}, {-2, 5, 2}}, Labels: []int{1, 0}})
	assert.Equal(t, [][]float64{{0.5, 0.5, 1}, {0, 0.5, 0.5}}, scaled.Features)
	assert.Equal(t, []int{1, 0}, scaled.Labels)
}

func TestAppendBias(t *testing.T) {
	d := Dataset{Features: [][]float64{{1, 2}, {3, 4}}, Labels: []int{0, 1}}
	biased := AppendBias(d)
	assert.Equal(t, [][]float64{{1, 2, 1}, {3, 4, 1}}, biased.Features)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, d.Features)
}

func TestBalance(t *testing.T) {
	d := Dataset{
		Features: [][]float64{{1, 1}, {2, 2}, {3, 3}, {4, 4}, {10, 10}},
		Labels:   []int{0, 0, 0, 0, 1},
	}
	balanced := Balance(d, rand.New(rand.NewPCG(3, 4)))
	require.Equal(t, 8, balanced.Len())

	counts := map[int]int{}
	for i, label := range balanced.Labels {
		counts[label]++
		if label == 1 {
			assert.InDelta(t, 10, balanced.Features[i][0], 0.1)
		}
	}
	assert.Equal(t, map[int]int{0: 4, 1: 4}, counts)
}

func TestBlobs(t *testing.T) {
	d := Blobs(rand.New(rand.NewPCG(5, 6)), [][]float64{{-1, -1}, {1, 1}, {5, 0}}, 10, 0.1)
	require.NoError(t, d.Validate())
	assert.Equal(t, 30, d.Len())
	assert.Equal(t, 3, d.NumClasses())
	assert.Equal(t, []int{0, 1, 2, 0, 1, 2}, d.Labels[:6])
	assert.InDelta(t, 5, d.Features[2][0], 1)
}
