package request

type CreateCoachProfileRequest struct {
	Name       string  `json:"name" validate:"required,min=2,max=100"`
	Location   string  `json:"location" validate:"required,max=100"`
	Bio        *string `json:"bio,omitempty" validate:"omitempty,max=2000"`
	HourlyRate float64 `json:"hourly_rate" validate:"required,gt=0"`
}

type CreateEnsembleProfileRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	EnsembleType string `json:"ensemble_type" validate:"required,oneof=choir orchestra band chamber jazz other"`
	Location     string `json:"location" validate:"required,max=100"`
	MemberCount  int    `json:"member_count" validate:"required,min=1,max=500"`
}
