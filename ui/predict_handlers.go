package ui

import (
	"encoding/json"
	"net/http"
)

func (a *App) handlePredictStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.predictor.Stats(r.Context())
	if err != nil {
		a.log.Error("prediction stats failed: %v", err)
		writeError(w, "failed to compute prediction stats")
		return
	}
	writeData(w, stats)
}

func (a *App) handlePredictPerformance(w http.ResponseWriter, r *http.Request) {
	perf, err := a.predictor.Performance(r.Context())
	if err != nil {
		a.log.Error("prediction performance failed: %v", err)
		writeError(w, "failed to compute model performance")
		return
	}
	writeData(w, perf)
}

func (a *App) handlePredictComparison(w http.ResponseWriter, r *http.Request) {
	cmp, err := a.predictor.Comparison(r.Context())
	if err != nil {
		a.log.Error("prediction comparison failed: %v", err)
		writeError(w, "failed to compute prediction comparison")
		return
	}
	writeData(w, cmp)
}

func (a *App) handlePredictLikes(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VideoID string `json:"video_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body")
		return
	}

	forecast, err := a.predictor.ForecastLikes(r.Context(), req.VideoID)
	if err != nil {
		a.log.Warn("like forecast for %q failed: %v", req.VideoID, err)
		writeError(w, err.Error())
		return
	}
	writeData(w, forecast)
}
