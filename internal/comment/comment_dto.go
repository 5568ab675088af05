package comment

type AddCommentRequest struct {
	Comment string `json:"comment" binding:"required"`
	Type    string `json:"type" binding:"omitempty,max=50"`
}

type CommentResponse struct {
	ID        string `json:"id"`
	GuardID   string `json:"guard_id"`
	GuardName string `json:"guard_name,omitempty"`
	Comment   string `json:"comment"`
	Type      string `json:"type"`
	CreatedBy string `json:"created_by"`
	CreatedAt string `json:"created_at"`
}
