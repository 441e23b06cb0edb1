package ml

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

const (
	defaultMaxDepth = 25
	numClasses      = 2
)

// TreeNode is one node of a fitted decision tree. Internal nodes carry a
// feature/threshold split; leaves carry the class counts of the training
// samples that reached them.
type TreeNode struct {
	Feature   int       `json:"feature,omitempty"`
	Threshold float64   `json:"threshold,omitempty"`
	Left      *TreeNode `json:"left,omitempty"`
	Right     *TreeNode `json:"right,omitempty"`
	Counts    []int     `json:"counts,omitempty"`
}

func (n *TreeNode) leaf() bool {
	return n.Left == nil && n.Right == nil
}

// RandomForest is an ensemble of bootstrap-sampled decision trees with
// Gini splits over a random feature subset per node. The reported
// probability of a class is the fraction of trees voting for it.
type RandomForest struct {
	NumTrees int         `json:"num_trees"`
	MaxDepth int         `json:"max_depth"`
	Roots    []*TreeNode `json:"roots"`
}

// NewRandomForest creates an unfitted forest of the given size.
func NewRandomForest(numTrees int) *RandomForest {
	return &RandomForest{
		NumTrees: numTrees,
		MaxDepth: defaultMaxDepth,
	}
}

// Fit trains the forest on the given feature vectors and binary labels.
// The same seed always produces the same forest.
func (f *RandomForest) Fit(vectors [][]float64, labels []int, seed int64) error {
	if len(vectors) == 0 {
		return fmt.Errorf("cannot fit forest on empty training set")
	}
	if len(vectors) != len(labels) {
		return fmt.Errorf("vector count %d does not match label count %d", len(vectors), len(labels))
	}
	for _, label := range labels {
		if label < 0 || label >= numClasses {
			return fmt.Errorf("label %d out of range", label)
		}
	}

	// Candidate splits are drawn from features that vary somewhere in the
	// training set; constant columns can never split.
	active := activeFeatures(vectors)
	mtry := int(math.Sqrt(float64(len(active))))
	if mtry < 1 {
		mtry = 1
	}

	rng := rand.New(rand.NewSource(seed))
	f.Roots = make([]*TreeNode, f.NumTrees)
	for t := 0; t < f.NumTrees; t++ {
		sample := make([]int, len(vectors))
		for i := range sample {
			sample[i] = rng.Intn(len(vectors))
		}
		f.Roots[t] = buildTree(vectors, labels, sample, active, mtry, f.MaxDepth, 0, rng)
	}
	return nil
}

// activeFeatures returns the indices of columns that are non-zero for at
// least one training vector.
func activeFeatures(vectors [][]float64) []int {
	if len(vectors) == 0 {
		return nil
	}
	seen := make([]bool, len(vectors[0]))
	for _, vec := range vectors {
		for i, val := range vec {
			if val != 0 {
				seen[i] = true
			}
		}
	}
	var active []int
	for i, ok := range seen {
		if ok {
			active = append(active, i)
		}
	}
	return active
}

// Predict returns the majority class and the per-class vote fractions for
// one feature vector.
func (f *RandomForest) Predict(vec []float64) (int, []float64) {
	votes := make([]float64, numClasses)
	for _, root := range f.Roots {
		node := root
		for !node.leaf() {
			if vec[node.Feature] <= node.Threshold {
				node = node.Left
			} else {
				node = node.Right
			}
		}
		votes[argmaxInt(node.Counts)]++
	}

	probs := make([]float64, numClasses)
	total := float64(len(f.Roots))
	for c := range votes {
		probs[c] = votes[c] / total
	}
	return argmaxFloat(probs), probs
}

// buildTree grows one CART tree over the bootstrap sample.
func buildTree(vectors [][]float64, labels []int, sample, active []int, mtry, maxDepth, depth int, rng *rand.Rand) *TreeNode {
	counts := classCounts(labels, sample)
	if depth >= maxDepth || len(sample) < 2 || pure(counts) {
		return &TreeNode{Counts: counts}
	}

	feature, threshold, ok := bestSplit(vectors, labels, sample, active, mtry, rng)
	if !ok {
		return &TreeNode{Counts: counts}
	}

	var left, right []int
	for _, idx := range sample {
		if vectors[idx][feature] <= threshold {
			left = append(left, idx)
		} else {
			right = append(right, idx)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return &TreeNode{Counts: counts}
	}

	return &TreeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      buildTree(vectors, labels, left, active, mtry, maxDepth, depth+1, rng),
		Right:     buildTree(vectors, labels, right, active, mtry, maxDepth, depth+1, rng),
	}
}

// bestSplit searches mtry random active features for the threshold with
// the lowest weighted Gini impurity.
func bestSplit(vectors [][]float64, labels []int, sample, active []int, mtry int, rng *rand.Rand) (int, float64, bool) {
	if len(active) == 0 {
		return 0, 0, false
	}
	if mtry > len(active) {
		mtry = len(active)
	}
	bestImpurity := math.Inf(1)
	bestFeature := -1
	bestThreshold := 0.0
	found := false

	for _, pick := range rng.Perm(len(active))[:mtry] {
		feature := active[pick]
		type valueLabel struct {
			value float64
			label int
		}
		pairs := make([]valueLabel, len(sample))
		for i, idx := range sample {
			pairs[i] = valueLabel{vectors[idx][feature], labels[idx]}
		}
		sort.Slice(pairs, func(i, j int) bool { return pairs[i].value < pairs[j].value })

		// Sweep the sorted values, moving samples from the right
		// partition to the left one threshold at a time.
		leftCounts := make([]int, numClasses)
		rightCounts := classCounts(labels, sample)
		total := float64(len(sample))
		for i := 0; i+1 < len(pairs); i++ {
			leftCounts[pairs[i].label]++
			rightCounts[pairs[i].label]--
			if pairs[i].value == pairs[i+1].value {
				continue
			}
			nLeft := float64(i + 1)
			nRight := total - nLeft
			impurity := (nLeft*gini(leftCounts, nLeft) + nRight*gini(rightCounts, nRight)) / total
			if impurity < bestImpurity {
				bestImpurity = impurity
				bestFeature = feature
				bestThreshold = (pairs[i].value + pairs[i+1].value) / 2
				found = true
			}
		}
	}
	return bestFeature, bestThreshold, found
}

func gini(counts []int, total float64) float64 {
	if total == 0 {
		return 0
	}
	impurity := 1.0
	for _, count := range counts {
		p := float64(count) / total
		impurity -= p * p
	}
	return impurity
}

func classCounts(labels []int, sample []int) []int {
	counts := make([]int, numClasses)
	for _, idx := range sample {
		counts[labels[idx]]++
	}
	return counts
}

func pure(counts []int) bool {
	nonzero := 0
	for _, count := range counts {
		if count > 0 {
			nonzero++
		}
	}
	return nonzero <= 1
}

func argmaxInt(values []int) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}

func argmaxFloat(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}
