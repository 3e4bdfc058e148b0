package forecast

import (
	"errors"
	"math/rand"
	"sort"
)

// ErrInsufficientData signals that a series is too short to fit the
// requested model. Callers translate it to a structured result.
var ErrInsufficientData = errors.New("insufficient data")

// ErrModelFit signals that a fit produced a non-finite or otherwise
// unusable model.
var ErrModelFit = errors.New("model fit failure")

// ForestParams configures the bagged regression-tree ensemble. The seed makes
// repeated fits on identical data produce identical forecasts.
type ForestParams struct {
	Trees    int
	Seed     int64
	MinSplit int
}

func DefaultForestParams() ForestParams {
	return ForestParams{Trees: 100, Seed: 42, MinSplit: 2}
}

// Forest is a bagged ensemble of regression trees. A forest is fitted from
// scratch on every request and never shared between requests.
type Forest struct {
	trees []*treeNode
}

// FitForest trains the ensemble: each tree gets a bootstrap resample of the
// training rows and is grown to purity with exhaustive best-split search.
func FitForest(x [][]float64, y []float64, p ForestParams) (*Forest, error) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, ErrInsufficientData
	}
	if p.Trees <= 0 {
		p.Trees = 100
	}
	if p.MinSplit < 2 {
		p.MinSplit = 2
	}
	rng := rand.New(rand.NewSource(p.Seed))
	f := &Forest{trees: make([]*treeNode, 0, p.Trees)}
	n := len(x)
	for t := 0; t < p.Trees; t++ {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = rng.Intn(n)
		}
		f.trees = append(f.trees, growTree(x, y, idx, p.MinSplit))
	}
	return f, nil
}

// Predict averages the per-tree predictions for one feature row.
func (f *Forest) Predict(row []float64) float64 {
	sum := 0.0
	for _, t := range f.trees {
		sum += t.predict(row)
	}
	return sum / float64(len(f.trees))
}

type treeNode struct {
	leaf    bool
	value   float64
	feature int
	thresh  float64
	left    *treeNode
	right   *treeNode
}

func (n *treeNode) predict(row []float64) float64 {
	for !n.leaf {
		if row[n.feature] <= n.thresh {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

func growTree(x [][]float64, y []float64, idx []int, minSplit int) *treeNode {
	mean := 0.0
	for _, i := range idx {
		mean += y[i]
	}
	mean /= float64(len(idx))

	if len(idx) < minSplit || pure(y, idx) {
		return &treeNode{leaf: true, value: mean}
	}

	feat, thresh, ok := bestSplit(x, y, idx)
	if !ok {
		return &treeNode{leaf: true, value: mean}
	}

	var left, right []int
	for _, i := range idx {
		if x[i][feat] <= thresh {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return &treeNode{leaf: true, value: mean}
	}
	return &treeNode{
		feature: feat,
		thresh:  thresh,
		left:    growTree(x, y, left, minSplit),
		right:   growTree(x, y, right, minSplit),
	}
}

func pure(y []float64, idx []int) bool {
	for _, i := range idx[1:] {
		if y[i] != y[idx[0]] {
			return false
		}
	}
	return true
}

// bestSplit scans every feature for the threshold minimizing the summed
// squared error of the two children. Sorting plus running sums keeps the scan
// linear per feature.
func bestSplit(x [][]float64, y []float64, idx []int) (feature int, thresh float64, ok bool) {
	nFeatures := len(x[idx[0]])
	n := len(idx)

	bestScore := 0.0
	order := make([]int, n)

	totalSum, totalSq := 0.0, 0.0
	for _, i := range idx {
		totalSum += y[i]
		totalSq += y[i] * y[i]
	}
	parentSSE := totalSq - totalSum*totalSum/float64(n)
	bestScore = parentSSE

	for f := 0; f < nFeatures; f++ {
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool { return x[order[a]][f] < x[order[b]][f] })

		leftSum, leftSq := 0.0, 0.0
		for k := 0; k < n-1; k++ {
			yi := y[order[k]]
			leftSum += yi
			leftSq += yi * yi
			// splits only between distinct feature values
			if x[order[k]][f] == x[order[k+1]][f] {
				continue
			}
			nl := float64(k + 1)
			nr := float64(n - k - 1)
			rightSum := totalSum - leftSum
			rightSq := totalSq - leftSq
			sse := (leftSq - leftSum*leftSum/nl) + (rightSq - rightSum*rightSum/nr)
			if sse < bestScore {
				bestScore = sse
				feature = f
				thresh = (x[order[k]][f] + x[order[k+1]][f]) / 2
				ok = true
			}
		}
	}
	return feature, thresh, ok
}
