// Package predict fits an ordinary least squares model over engagement
// features to estimate like counts, scores it on a held-out split and
// projects a seven day like trajectory per video.
package predict

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	apperrors "douyinsight/internal/errors"
	"douyinsight/internal/metrics"
)

// FeatureNames lists the model inputs in column order.
var FeatureNames = []string{
	"duration_seconds",
	"collect_count",
	"comment_count",
	"share_count",
	"fans_count",
	"interaction_rate",
	"publish_hour",
}

// Features extracts the model input vector for one video. An unknown
// publish hour contributes 0.
func Features(v metrics.EnrichedVideo) []float64 {
	hour := v.PublishHour
	if hour < 0 {
		hour = 0
	}
	return []float64{
		float64(v.DurationSeconds),
		float64(v.CollectCount),
		float64(v.CommentCount),
		float64(v.ShareCount),
		float64(v.FansCount),
		v.InteractionRate,
		float64(hour),
	}
}

// model holds the fitted coefficients plus the standardization learned
// from the training columns. beta[0] is the intercept.
type model struct {
	mean []float64
	std  []float64
	beta []float64
}

// fit standardizes the feature columns and solves the least squares
// system with an intercept column. Columns with zero variance pass
// through unscaled.
func fit(features [][]float64, targets []float64) (*model, error) {
	n := len(features)
	if n == 0 || n != len(targets) {
		return nil, apperrors.InvalidInput("training set is empty or misaligned")
	}
	k := len(features[0])

	m := &model{
		mean: make([]float64, k),
		std:  make([]float64, k),
	}
	for j := 0; j < k; j++ {
		col := make([]float64, n)
		for i := range features {
			col[i] = features[i][j]
		}
		metrics.RepairColumn(col)
		mean, std := stat.MeanStdDev(col, nil)
		if std == 0 || math.IsNaN(std) {
			mean, std = 0, 1
		}
		m.mean[j], m.std[j] = mean, std
	}

	design := mat.NewDense(n, k+1, nil)
	y := mat.NewVecDense(n, nil)
	for i, row := range features {
		design.Set(i, 0, 1)
		scaled := m.scale(row)
		for j, v := range scaled {
			design.Set(i, j+1, v)
		}
		y.SetVec(i, targets[i])
	}

	// Constant feature columns standardize to all zeros and make the
	// design rank-deficient, so a plain QR solve would reject legal
	// inputs. The SVD minimum-norm solution handles any rank.
	var svd mat.SVD
	if !svd.Factorize(design, mat.SVDThin) {
		return nil, apperrors.InvalidInput("least squares factorization failed")
	}
	rank := svd.Rank(1e-12)
	if rank == 0 {
		return nil, apperrors.InvalidInput("design matrix has rank zero")
	}
	var beta mat.VecDense
	svd.SolveVecTo(&beta, y, rank)

	m.beta = make([]float64, k+1)
	for j := 0; j <= k; j++ {
		m.beta[j] = beta.AtVec(j)
	}
	return m, nil
}

func (m *model) scale(row []float64) []float64 {
	out := make([]float64, len(row))
	for j, v := range row {
		if !finite(v) {
			v = m.mean[j]
		}
		out[j] = (v - m.mean[j]) / m.std[j]
	}
	return out
}

func (m *model) predict(row []float64) float64 {
	scaled := m.scale(row)
	sum := m.beta[0]
	for j, v := range scaled {
		sum += m.beta[j+1] * v
	}
	return sum
}

func (m *model) predictAll(features [][]float64) []float64 {
	out := make([]float64, len(features))
	for i, row := range features {
		out[i] = m.predict(row)
	}
	return out
}

// rSquared scores predictions against observed targets. A constant
// target column scores 0.
func rSquared(targets, estimates []float64) float64 {
	r2 := stat.RSquaredFrom(estimates, targets, nil)
	if math.IsNaN(r2) || math.IsInf(r2, 0) {
		return 0
	}
	return r2
}

// splitIndexes partitions record indexes into train and test sets with a
// deterministic shuffle. The test set holds ratio of the records, at
// least one when n > 1.
func splitIndexes(n int, ratio float64, seed int64) (train, test []int) {
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	testCount := int(math.Round(float64(n) * ratio))
	if testCount < 1 && n > 1 {
		testCount = 1
	}
	if testCount >= n {
		testCount = n - 1
	}
	return perm[testCount:], perm[:testCount]
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
