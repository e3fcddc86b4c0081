package models

import (
	"strings"
	"time"
)

type ContentType string

const (
	ContentPost    ContentType = "post"
	ContentComment ContentType = "comment"
	ContentSong    ContentType = "song"
)

func (t ContentType) Valid() bool {
	switch t {
	case ContentPost, ContentComment, ContentSong:
		return true
	}
	return false
}

// ModerationReport is a pending user report against a post, comment or song.
// The snapshot fields keep evidence once the reported content is gone.
type ModerationReport struct {
	ID                   string      `json:"id" bson:"_id"`
	Type                 ContentType `json:"type" bson:"type"`
	TargetID             string      `json:"target_id" bson:"target_id"`
	PostID               string      `json:"post_id,omitempty" bson:"post_id,omitempty"`
	SongID               string      `json:"song_id,omitempty" bson:"song_id,omitempty"`
	ParentCommentID      string      `json:"parent_comment_id,omitempty" bson:"parent_comment_id,omitempty"`
	FanPostOwnerID       string      `json:"fan_post_owner_id,omitempty" bson:"fan_post_owner_id,omitempty"`
	Reason               string      `json:"reason" bson:"reason"`
	ReporterID           string      `json:"reporter_id" bson:"reporter_id"`
	ReporterNickname     string      `json:"reporter_nickname,omitempty" bson:"reporter_nickname,omitempty"`
	ReportedUserID       string      `json:"reported_user_id" bson:"reported_user_id"`
	ReportedUserNickname string      `json:"reported_user_nickname,omitempty" bson:"reported_user_nickname,omitempty"`
	CreatedAt            time.Time   `json:"created_at" bson:"created_at"`

	PostContentSnapshot     string `json:"post_content_snapshot,omitempty" bson:"post_content_snapshot,omitempty"`
	PostImageSnapshot       string `json:"post_image_snapshot,omitempty" bson:"post_image_snapshot,omitempty"`
	CommentContentSnapshot  string `json:"comment_content_snapshot,omitempty" bson:"comment_content_snapshot,omitempty"`
	CommentNicknameSnapshot string `json:"comment_nickname_snapshot,omitempty" bson:"comment_nickname_snapshot,omitempty"`
	SongTitleSnapshot       string `json:"song_title_snapshot,omitempty" bson:"song_title_snapshot,omitempty"`
}

// CaptureSnapshot fills empty snapshot fields from p. Evidence captured
// earlier is never overwritten.
func (r *ModerationReport) CaptureSnapshot(p *ContentPreview) {
	if p == nil {
		return
	}
	switch r.Type {
	case ContentPost:
		fill(&r.PostContentSnapshot, p.Content)
		fill(&r.PostImageSnapshot, p.ImageURL)
	case ContentComment:
		fill(&r.CommentContentSnapshot, p.Content)
		fill(&r.CommentNicknameSnapshot, p.Nickname)
	case ContentSong:
		fill(&r.SongTitleSnapshot, p.Title)
	}
}

func fill(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

// GuiltyReport is the terminal record of a report adjudicated guilty.
type GuiltyReport struct {
	ModerationReport `bson:",inline"`
	AdjudicatedAt    time.Time  `json:"adjudicated_at" bson:"adjudicated_at"`
	AdjudicatedBy    string     `json:"adjudicated_by" bson:"adjudicated_by"`
	Suspension       Suspension `json:"suspension" bson:"suspension"`
}

// MatchesSearch checks reporter and reported nicknames.
func (g *GuiltyReport) MatchesSearch(search string) bool {
	q := strings.TrimSpace(search)
	if q == "" {
		return true
	}
	return strings.Contains(g.ReporterNickname, q) || strings.Contains(g.ReportedUserNickname, q)
}

// ContentPreview is what an admin sees of the live reported content.
type ContentPreview struct {
	ID       string `json:"id"`
	Content  string `json:"content,omitempty"`
	Nickname string `json:"nickname,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	Title    string `json:"title,omitempty"`
}

// ReportView pairs a report with its content; Content is nil when the
// content no longer exists.
type ReportView struct {
	ModerationReport
	Content *ContentPreview `json:"content"`
}

type GuiltyListResponse struct {
	Reports      []GuiltyReport `json:"reports"`
	GuiltyCounts map[string]int `json:"guilty_counts"`
}

type VerdictRequest struct {
	Duration string `json:"duration"`
}
