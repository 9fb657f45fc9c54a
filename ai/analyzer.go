// Package ai builds analysis prompts from stored video data and runs
// them through the configured LLM collaborator. The view count is not in
// the dataset, so prompts estimate it as ten times the like count; the
// estimate never leaves this package except inside reported metrics.
package ai

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"douyinsight/domain/record"
	"douyinsight/internal"
	"douyinsight/internal/config"
	apperrors "douyinsight/internal/errors"
	"douyinsight/ports"
)

// Metrics are the derived engagement rates included with every analysis,
// as percentages rounded by the formatter.
type Metrics struct {
	ViewCount       int64   `json:"view_count"`
	LikeCount       int64   `json:"like_count"`
	CommentCount    int64   `json:"comment_count"`
	ShareCount      int64   `json:"share_count"`
	CollectCount    int64   `json:"collect_count"`
	InteractionRate float64 `json:"interaction_rate"`
	LikeRate        float64 `json:"like_rate"`
	CommentRate     float64 `json:"comment_rate"`
	ShareRate       float64 `json:"share_rate"`
	CollectRate     float64 `json:"collect_rate"`
}

// Analysis is an LLM review of one video: the raw markdown response, its
// HTML rendering and the metrics the prompt was built from.
type Analysis struct {
	VideoID  string  `json:"video_id"`
	Response string  `json:"response"`
	HTML     string  `json:"html"`
	Metrics  Metrics `json:"metrics"`
}

// Analyzer runs video analysis and free-form chat against the LLM
// collaborator. A nil client means the collaborator is unconfigured and
// every call fails with an external service error.
type Analyzer struct {
	client    ports.LLMClient
	videos    ports.VideoRepository
	model     string
	maxTokens int
	log       *internal.Logger
}

func NewAnalyzer(client ports.LLMClient, videos ports.VideoRepository, cfg config.AIConfig) *Analyzer {
	return &Analyzer{
		client:    client,
		videos:    videos,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		log:       internal.NewDefaultLogger("ai"),
	}
}

// Configured reports whether an LLM client is wired in.
func (a *Analyzer) Configured() bool {
	return a.client != nil
}

// AnalyzeVideo prompts the LLM for a structured review of one stored
// video and renders the markdown answer to HTML.
func (a *Analyzer) AnalyzeVideo(ctx context.Context, videoID string) (Analysis, error) {
	if a.client == nil {
		return Analysis{}, apperrors.ExternalServiceError("llm", fmt.Errorf("no API key configured"))
	}
	if videoID == "" {
		return Analysis{}, apperrors.InvalidInput("missing video_id parameter")
	}

	video, err := a.videos.GetByAwemeID(ctx, videoID)
	if err != nil {
		return Analysis{}, err
	}

	metrics := computeMetrics(*video)
	prompt := buildAnalysisPrompt(*video, metrics)

	a.log.Info("analyzing video %s", videoID)
	response, err := a.client.ChatCompletion(ctx, a.model, prompt, a.maxTokens)
	if err != nil {
		return Analysis{}, apperrors.ExternalServiceError("llm", err)
	}

	return Analysis{
		VideoID:  video.AwemeID,
		Response: response,
		HTML:     renderMarkdown(response),
		Metrics:  metrics,
	}, nil
}

// Chat sends a free-form message to the LLM, prefixed with the stored
// data of one video when a video ID is given. An unknown video ID is not
// an error; the chat proceeds without context.
func (a *Analyzer) Chat(ctx context.Context, message, videoID string) (string, error) {
	if a.client == nil {
		return "", apperrors.ExternalServiceError("llm", fmt.Errorf("no API key configured"))
	}
	if strings.TrimSpace(message) == "" {
		return "", apperrors.InvalidInput("missing message content")
	}

	prompt := message
	if videoID != "" {
		video, err := a.videos.GetByAwemeID(ctx, videoID)
		if err != nil {
			a.log.Warn("chat context lookup for video %s failed: %v", videoID, err)
		} else {
			prompt = buildChatContext(*video) + "\n" + message
		}
	}

	response, err := a.client.ChatCompletion(ctx, a.model, prompt, a.maxTokens)
	if err != nil {
		return "", apperrors.ExternalServiceError("llm", err)
	}
	return response, nil
}

func computeMetrics(v record.Video) Metrics {
	viewCount := v.LikeCount * 10
	divisor := viewCount
	if divisor < 1 {
		divisor = 1
	}

	pct := func(n int64) float64 {
		return round2(float64(n) / float64(divisor) * 100)
	}

	return Metrics{
		ViewCount:       viewCount,
		LikeCount:       v.LikeCount,
		CommentCount:    v.CommentCount,
		ShareCount:      v.ShareCount,
		CollectCount:    v.CollectCount,
		InteractionRate: pct(v.LikeCount + v.CommentCount + v.ShareCount + v.CollectCount),
		LikeRate:        pct(v.LikeCount),
		CommentRate:     pct(v.CommentCount),
		ShareRate:       pct(v.ShareCount),
		CollectRate:     pct(v.CollectCount),
	}
}

func buildAnalysisPrompt(v record.Video, m Metrics) string {
	var b strings.Builder
	b.WriteString("请作为专业的抖音内容分析师，对以下视频数据进行深度分析：\n\n")
	b.WriteString("【视频基本信息】\n")
	fmt.Fprintf(&b, "- 视频ID: %s\n", v.AwemeID)
	fmt.Fprintf(&b, "- 创作者: %s\n", v.UserName)
	fmt.Fprintf(&b, "- 粉丝数: %d\n", v.FansCount)
	fmt.Fprintf(&b, "- 视频描述: %s\n", v.Description)
	fmt.Fprintf(&b, "- 视频时长: %d秒\n\n", v.DurationSeconds)
	b.WriteString("【数据表现】\n")
	fmt.Fprintf(&b, "- 点赞数: %d\n", v.LikeCount)
	fmt.Fprintf(&b, "- 评论数: %d\n", v.CommentCount)
	fmt.Fprintf(&b, "- 分享数: %d\n", v.ShareCount)
	fmt.Fprintf(&b, "- 收藏数: %d\n", v.CollectCount)
	fmt.Fprintf(&b, "- 互动率: %.2f%%\n\n", m.InteractionRate)
	b.WriteString("请从以下几个方面进行详细分析：\n\n")
	b.WriteString("1. 内容定位分析：主题风格、目标受众、内容独特性\n")
	fmt.Fprintf(&b, "2. 数据表现分析：点赞率(%.2f%%)、评论率(%.2f%%)、分享率(%.2f%%)、收藏率(%.2f%%)的合理性与优劣势\n",
		m.LikeRate, m.CommentRate, m.ShareRate, m.CollectRate)
	b.WriteString("3. 优化建议：标题描述优化、发布时间、内容改进、互动引导\n")
	b.WriteString("4. 风险评估：敏感内容、版权与违规风险\n")
	b.WriteString("5. 综合评分（0-100分）与总结性建议\n\n")
	b.WriteString("请以Markdown格式返回分析结果。")
	return b.String()
}

func buildChatContext(v record.Video) string {
	var b strings.Builder
	b.WriteString("当前视频数据：\n")
	fmt.Fprintf(&b, "- 视频ID: %s\n", v.AwemeID)
	fmt.Fprintf(&b, "- 用户名: %s\n", v.UserName)
	fmt.Fprintf(&b, "- 粉丝数: %d\n", v.FansCount)
	fmt.Fprintf(&b, "- 视频描述: %s\n", v.Description)
	fmt.Fprintf(&b, "- 视频时长: %d秒\n", v.DurationSeconds)
	fmt.Fprintf(&b, "- 点赞数: %d\n", v.LikeCount)
	fmt.Fprintf(&b, "- 评论数: %d\n", v.CommentCount)
	fmt.Fprintf(&b, "- 分享数: %d\n", v.ShareCount)
	fmt.Fprintf(&b, "- 收藏数: %d\n", v.CollectCount)
	return b.String()
}

func renderMarkdown(md string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(markdown.ToHTML([]byte(md), p, renderer))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
