package request

type SubmitRequest struct {
	Type        string `json:"type" binding:"required,max=50"`
	Description string `json:"description" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Pending Approved Rejected"`
}

type EditRequest struct {
	Type        string `json:"type" binding:"omitempty,max=50"`
	Description string `json:"description"`
}

type RequestResponse struct {
	ID          string `json:"id"`
	FromUser    string `json:"from_user"`
	Role        string `json:"role"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Status      string `json:"status"`
	SubmittedAt string `json:"submitted_at"`
	RespondedAt string `json:"responded_at,omitempty"`
	UpdatedBy   string `json:"updated_by,omitempty"`
}
