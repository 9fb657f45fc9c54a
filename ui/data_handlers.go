package ui

import (
	"net/http"

	"douyinsight/domain/record"
)

const descriptionLimit = 100

// videoView is the list representation of a video with a truncated
// description.
type videoView struct {
	AwemeID         string `json:"aweme_id"`
	UserName        string `json:"user_name"`
	FansCount       int64  `json:"fans_count"`
	Description     string `json:"description"`
	PublishTime     string `json:"publish_time"`
	DurationSeconds int64  `json:"duration"`
	LikeCount       int64  `json:"like_count"`
	CommentCount    int64  `json:"comment_count"`
	ShareCount      int64  `json:"share_count"`
	CollectCount    int64  `json:"collect_count"`
}

type commentView struct {
	UserName    string `json:"user_name"`
	Content     string `json:"content"`
	LikeCount   int64  `json:"like_count"`
	UserIP      string `json:"user_ip"`
	CommentTime string `json:"comment_time"`
}

func (a *App) handleListVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := a.videos.List(r.Context())
	if err != nil {
		a.log.Error("listing videos failed: %v", err)
		writeError(w, "failed to load videos")
		return
	}

	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)
	total := len(videos)

	page := paginate(videos, offset, limit)
	views := make([]videoView, 0, len(page))
	for _, v := range page {
		views = append(views, toVideoView(v))
	}

	writeData(w, map[string]interface{}{
		"videos": views,
		"total":  total,
	})
}

func (a *App) handleListComments(w http.ResponseWriter, r *http.Request) {
	videoID := r.URL.Query().Get("video_id")

	var comments []record.Comment
	var err error
	if videoID != "" {
		comments, err = a.comments.ListByVideo(r.Context(), videoID)
	} else {
		comments, err = a.comments.List(r.Context())
	}
	if err != nil {
		a.log.Error("listing comments failed: %v", err)
		writeError(w, "failed to load comments")
		return
	}

	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	limit := queryInt(r, "limit", 20)
	total := len(comments)

	slice := paginate(comments, (page-1)*limit, limit)
	views := make([]commentView, 0, len(slice))
	for _, c := range slice {
		views = append(views, toCommentView(c))
	}

	writeData(w, map[string]interface{}{
		"comments": views,
		"total":    total,
	})
}

func (a *App) handleImport(w http.ResponseWriter, r *http.Request) {
	summary, err := a.importer.ImportAll(r.Context(), a.data.VideoFile, a.data.CommentFile)
	if err != nil {
		a.log.Error("import failed: %v", err)
		writeError(w, "import failed: "+err.Error())
		return
	}
	writeData(w, summary)
}

func (a *App) handleClearData(w http.ResponseWriter, r *http.Request) {
	videosDeleted, err := a.videos.Clear(r.Context())
	if err != nil {
		a.log.Error("clearing videos failed: %v", err)
		writeError(w, "failed to clear videos")
		return
	}
	commentsDeleted, err := a.comments.Clear(r.Context())
	if err != nil {
		a.log.Error("clearing comments failed: %v", err)
		writeError(w, "failed to clear comments")
		return
	}

	a.log.Warn("cleared all data: %d videos, %d comments", videosDeleted, commentsDeleted)
	writeData(w, map[string]int64{
		"videos_deleted":   videosDeleted,
		"comments_deleted": commentsDeleted,
	})
}

func toVideoView(v record.Video) videoView {
	publishTime := ""
	if v.PublishTime != nil {
		publishTime = v.PublishTime.Format("2006-01-02 15:04:05")
	}
	return videoView{
		AwemeID:         v.AwemeID,
		UserName:        v.UserName,
		FansCount:       v.FansCount,
		Description:     truncateRunes(v.Description, descriptionLimit),
		PublishTime:     publishTime,
		DurationSeconds: v.DurationSeconds,
		LikeCount:       v.LikeCount,
		CommentCount:    v.CommentCount,
		ShareCount:      v.ShareCount,
		CollectCount:    v.CollectCount,
	}
}

func toCommentView(c record.Comment) commentView {
	commentTime := ""
	if c.CommentTime != nil {
		commentTime = c.CommentTime.Format("2006-01-02 15:04:05")
	}
	return commentView{
		UserName:    c.UserName,
		Content:     c.Content,
		LikeCount:   c.LikeCount,
		UserIP:      c.UserIP,
		CommentTime: commentTime,
	}
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return nil
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

// truncateRunes shortens a description to limit runes, appending an
// ellipsis when cut. Counting runes keeps multi-byte Chinese text intact.
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
