package models

// A single comment record as delivered by the comment-retrieval layer.
// The analysis core treats these as read-only input.
type Comment struct {
	CommentID string `json:"comment_id"`
	Text      string `json:"text"`
	Author    string `json:"author"`
	IsReply   bool   `json:"is_reply,omitempty"`
	ParentID  string `json:"parent_id,omitempty"`
	LikeCount int    `json:"like_count,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// One unit of work for the pipeline: all retrieved comments of a video.
type CommentBatch struct {
	VideoID  string    `json:"video_id"`
	Comments []Comment `json:"comments"`
}
