package ui

import (
	"encoding/json"
	"net/http"
)

func (a *App) handleAIAnalyze(w http.ResponseWriter, r *http.Request) {
	if !a.analyzer.Configured() {
		writeError(w, "AI analysis is not configured")
		return
	}

	var req struct {
		VideoID string `json:"video_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body")
		return
	}

	result, err := a.analyzer.AnalyzeVideo(r.Context(), req.VideoID)
	if err != nil {
		a.log.Error("ai analysis for %q failed: %v", req.VideoID, err)
		writeError(w, err.Error())
		return
	}
	writeData(w, result)
}

func (a *App) handleAIChat(w http.ResponseWriter, r *http.Request) {
	if !a.analyzer.Configured() {
		writeError(w, "AI analysis is not configured")
		return
	}

	var req struct {
		Message string `json:"message"`
		VideoID string `json:"video_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body")
		return
	}

	response, err := a.analyzer.Chat(r.Context(), req.Message, req.VideoID)
	if err != nil {
		a.log.Error("ai chat failed: %v", err)
		writeError(w, err.Error())
		return
	}
	writeData(w, map[string]string{"response": response})
}
