package ui

import (
	"net/http"

	"douyinsight/domain/record"
	"douyinsight/internal/textstats"
)

const keywordLimit = 20

func (a *App) handleKeywords(w http.ResponseWriter, r *http.Request) {
	videoID := r.URL.Query().Get("video_id")

	comments, err := a.loadComments(r, videoID)
	if err != nil {
		a.log.Error("loading comments for keywords failed: %v", err)
		writeError(w, "failed to load comments")
		return
	}

	texts := make([]string, 0, len(comments))
	for _, c := range comments {
		texts = append(texts, c.Content)
	}

	result := map[string]interface{}{
		"comment_keywords": textstats.TopKeywords(texts, keywordLimit),
		"comment_count":    len(comments),
	}

	if videoID != "" {
		video, err := a.videos.GetByAwemeID(r.Context(), videoID)
		if err != nil {
			writeError(w, "video not found")
			return
		}
		result["video_id"] = videoID
		result["description_keywords"] = textstats.TopKeywords([]string{video.Description}, keywordLimit)
	}

	writeData(w, result)
}

func (a *App) handleSentiment(w http.ResponseWriter, r *http.Request) {
	videoID := r.URL.Query().Get("video_id")

	comments, err := a.loadComments(r, videoID)
	if err != nil {
		a.log.Error("loading comments for sentiment failed: %v", err)
		writeError(w, "failed to load comments")
		return
	}

	writeData(w, textstats.AnalyzeComments(comments))
}

func (a *App) loadComments(r *http.Request, videoID string) ([]record.Comment, error) {
	if videoID != "" {
		return a.comments.ListByVideo(r.Context(), videoID)
	}
	return a.comments.List(r.Context())
}
