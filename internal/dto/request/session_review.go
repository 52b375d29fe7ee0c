package request

type SubmitSessionReviewRequest struct {
	Rating   int     `json:"rating" validate:"required,min=1,max=5"`
	Feedback *string `json:"feedback,omitempty" validate:"omitempty,max=1000"`
}
