package predict

import (
	"context"
	"fmt"
	"math"
	"time"

	"douyinsight/internal"
	"douyinsight/internal/config"
	apperrors "douyinsight/internal/errors"
	"douyinsight/internal/metrics"
	"douyinsight/ports"
)

const (
	forecastDays    = 7
	comparisonLimit = 15
)

// Stats summarizes the dataset and model accuracy for the prediction
// overview panel.
type Stats struct {
	TotalVideos int    `json:"total_videos"`
	Accuracy    string `json:"accuracy"`
	AvgLikes    int64  `json:"avg_likes"`
}

// Performance reports R-squared on the train and held-out splits as
// percentages.
type Performance struct {
	TrainAccuracy float64 `json:"train_accuracy"`
	TestAccuracy  float64 `json:"test_accuracy"`
}

// Comparison pairs observed and fitted like counts for the first few
// videos, labeled by truncated video ID.
type Comparison struct {
	Labels    []string `json:"labels"`
	Actual    []int64  `json:"actual"`
	Predicted []int64  `json:"predicted"`
}

// Forecast is the seven day like projection for one video.
type Forecast struct {
	VideoID           string   `json:"video_id"`
	Description       string   `json:"description"`
	CurrentLikes      int64    `json:"current_likes"`
	PredictedLikes    int64    `json:"predicted_likes"`
	FutureDates       []string `json:"future_dates"`
	FuturePredictions []int64  `json:"future_predictions"`
	TotalInteractions int64    `json:"total_interactions"`
}

// Engine runs the prediction operations against the stored dataset. Every
// call refits from current data; models are small enough that caching is
// not worth the staleness handling.
type Engine struct {
	videos     ports.VideoRepository
	log        *internal.Logger
	minRecords int
	testRatio  float64
	seed       int64
	now        func() time.Time
}

func NewEngine(videos ports.VideoRepository, cfg config.PredictConfig) *Engine {
	return &Engine{
		videos:     videos,
		log:        internal.NewDefaultLogger("predict"),
		minRecords: cfg.MinRecords,
		testRatio:  cfg.TestRatio,
		seed:       cfg.Seed,
		now:        time.Now,
	}
}

func (e *Engine) load(ctx context.Context) ([]metrics.EnrichedVideo, [][]float64, []float64, error) {
	videos, err := e.videos.List(ctx)
	if err != nil {
		return nil, nil, nil, apperrors.Wrap(err, "loading videos for prediction")
	}
	enriched := metrics.Enrich(videos)

	features := make([][]float64, len(enriched))
	targets := make([]float64, len(enriched))
	for i, v := range enriched {
		features[i] = Features(v)
		targets[i] = float64(v.LikeCount)
	}
	return enriched, features, targets, nil
}

// Stats fits on the training split and reports held-out accuracy. With
// fewer than the minimum usable records it degrades to counts only.
func (e *Engine) Stats(ctx context.Context) (Stats, error) {
	enriched, features, targets, err := e.load(ctx)
	if err != nil {
		return Stats{}, err
	}

	var avg float64
	for _, t := range targets {
		avg += t
	}
	if len(targets) > 0 {
		avg /= float64(len(targets))
	}

	out := Stats{TotalVideos: len(enriched), AvgLikes: int64(avg)}
	if len(enriched) < e.minRecords {
		out.Accuracy = "insufficient data"
		return out, nil
	}

	_, test, m, err := e.fitSplit(features, targets)
	if err != nil {
		return Stats{}, err
	}
	out.Accuracy = fmt.Sprintf("%.2f%%", rSquared(gather(targets, test), m.predictAll(gatherRows(features, test)))*100)
	return out, nil
}

// Performance reports train and test R-squared as percentages, rounded
// to two decimals. Insufficient data yields zeroes.
func (e *Engine) Performance(ctx context.Context) (Performance, error) {
	enriched, features, targets, err := e.load(ctx)
	if err != nil {
		return Performance{}, err
	}
	if len(enriched) < e.minRecords {
		return Performance{}, nil
	}

	train, test, m, err := e.fitSplit(features, targets)
	if err != nil {
		return Performance{}, err
	}
	return Performance{
		TrainAccuracy: round2(rSquared(gather(targets, train), m.predictAll(gatherRows(features, train))) * 100),
		TestAccuracy:  round2(rSquared(gather(targets, test), m.predictAll(gatherRows(features, test))) * 100),
	}, nil
}

// Comparison fits on the full dataset and pairs fitted against observed
// like counts for up to fifteen videos in source order. Labels are the
// first eight characters of the video ID.
func (e *Engine) Comparison(ctx context.Context) (Comparison, error) {
	out := Comparison{Labels: []string{}, Actual: []int64{}, Predicted: []int64{}}

	enriched, features, targets, err := e.load(ctx)
	if err != nil {
		return out, err
	}
	if len(enriched) < e.minRecords {
		return out, nil
	}

	m, err := fit(features, targets)
	if err != nil {
		return out, err
	}
	fitted := m.predictAll(features)

	limit := comparisonLimit
	if len(enriched) < limit {
		limit = len(enriched)
	}
	for i := 0; i < limit; i++ {
		out.Labels = append(out.Labels, shortID(enriched[i].AwemeID))
		out.Actual = append(out.Actual, enriched[i].LikeCount)
		out.Predicted = append(out.Predicted, int64(fitted[i]))
	}
	return out, nil
}

// ForecastLikes projects the like count of one video over the next seven
// days. Growth scales with the video's interaction ratio and decays day
// over day.
func (e *Engine) ForecastLikes(ctx context.Context, videoID string) (Forecast, error) {
	if videoID == "" {
		return Forecast{}, apperrors.InvalidInput("missing video_id parameter")
	}

	enriched, features, targets, err := e.load(ctx)
	if err != nil {
		return Forecast{}, err
	}
	if len(enriched) < e.minRecords {
		return Forecast{}, apperrors.InvalidInput(
			fmt.Sprintf("prediction requires at least %d videos", e.minRecords))
	}

	var target *metrics.EnrichedVideo
	for i := range enriched {
		if enriched[i].AwemeID == videoID {
			target = &enriched[i]
			break
		}
	}
	if target == nil {
		return Forecast{}, apperrors.NotFound("video")
	}

	m, err := fit(features, targets)
	if err != nil {
		return Forecast{}, err
	}
	base := m.predict(Features(*target))

	currentLikes := target.LikeCount
	interactions := target.CommentCount + target.ShareCount + target.CollectCount

	divisor := currentLikes
	if divisor < 1 {
		divisor = 1
	}
	growthFactor := 1 + float64(interactions)/float64(divisor)*0.1

	dates := make([]string, 0, forecastDays)
	predictions := make([]int64, 0, forecastDays)
	now := e.now()
	for day := 0; day < forecastDays; day++ {
		dates = append(dates, now.AddDate(0, 0, day+1).Format("01-02"))

		predicted := float64(currentLikes)
		if day > 0 {
			dailyGrowth := (growthFactor - 1) * math.Pow(0.7, float64(day)) * float64(currentLikes)
			for d := 0; d <= day; d++ {
				predicted += dailyGrowth * math.Pow(0.9, float64(d))
			}
		}
		predictions = append(predictions, int64(math.Round(predicted)))
	}

	return Forecast{
		VideoID:           target.AwemeID,
		Description:       target.Description,
		CurrentLikes:      currentLikes,
		PredictedLikes:    int64(base),
		FutureDates:       dates,
		FuturePredictions: predictions,
		TotalInteractions: interactions,
	}, nil
}

func (e *Engine) fitSplit(features [][]float64, targets []float64) (train, test []int, m *model, err error) {
	train, test = splitIndexes(len(features), e.testRatio, e.seed)
	m, err = fit(gatherRows(features, train), gather(targets, train))
	return train, test, m, err
}

func gather(vals []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = vals[j]
	}
	return out
}

func gatherRows(rows [][]float64, idx []int) [][]float64 {
	out := make([][]float64, len(idx))
	for i, j := range idx {
		out[i] = rows[j]
	}
	return out
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
