package request

type CreateReviewRequest struct {
	CoachID    string  `json:"coach_id" validate:"required,uuid4"`
	EnsembleID string  `json:"ensemble_id" validate:"required,uuid4"`
	Rating     int     `json:"rating" validate:"required,min=1,max=5"`
	Comment    *string `json:"comment,omitempty" validate:"omitempty,max=500"`
}

type IssueInviteRequest struct {
	EnsembleEmail string `json:"ensemble_email" validate:"required,email"`
}

type AcceptInviteRequest struct {
	Rating  int     `json:"rating" validate:"required,min=1,max=5"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=500"`
}
