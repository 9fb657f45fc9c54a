package ui

import (
	"net/http"
	"strconv"

	"douyinsight/internal/analysis"
)

func (a *App) handleGeneralStats(w http.ResponseWriter, r *http.Request) {
	videos, comments := a.assembler.Snapshot(r.Context())
	writeData(w, analysis.GeneralStatistics(videos, comments))
}

func (a *App) handleLikeCollect(w http.ResponseWriter, r *http.Request) {
	videos, _ := a.assembler.Snapshot(r.Context())
	writeData(w, analysis.LikeCollectRelation(videos))
}

func (a *App) handleFansDistribution(w http.ResponseWriter, r *http.Request) {
	videos, _ := a.assembler.Snapshot(r.Context())
	writeData(w, analysis.FansDistribution(videos))
}

func (a *App) handleIPDistribution(w http.ResponseWriter, r *http.Request) {
	_, comments := a.assembler.Snapshot(r.Context())
	writeData(w, analysis.IPDistribution(comments))
}

func (a *App) handleTopUsers(w http.ResponseWriter, r *http.Request) {
	videos, _ := a.assembler.Snapshot(r.Context())
	writeData(w, analysis.TopUsersByFans(videos, queryInt(r, "limit", 0)))
}

func (a *App) handleTopVideos(w http.ResponseWriter, r *http.Request) {
	videos, _ := a.assembler.Snapshot(r.Context())
	writeData(w, analysis.TopVideosByLikes(videos, queryInt(r, "limit", 0)))
}

func (a *App) handleVideoStatistics(w http.ResponseWriter, r *http.Request) {
	videos, _ := a.assembler.Snapshot(r.Context())
	writeData(w, analysis.VideoStatistics(videos))
}

func (a *App) handlePublishHours(w http.ResponseWriter, r *http.Request) {
	videos, _ := a.assembler.Snapshot(r.Context())
	writeData(w, analysis.PublishTimeDistribution(videos))
}

func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	writeData(w, a.assembler.BuildReport(r.Context()))
}

// queryInt parses an integer query parameter, falling back to def on
// absence or garbage.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
