package request

type CreateBookingRequest struct {
	CoachID       string   `json:"coach_id" validate:"required,uuid4"`
	EnsembleID    string   `json:"ensemble_id" validate:"required,uuid4"`
	ProposedDates []string `json:"proposed_dates" validate:"required,min=1,dive,required"`
	SessionType   string   `json:"session_type" validate:"required,oneof=clinic rehearsal sectional masterclass virtual"`
	Hours         int      `json:"hours" validate:"required,min=1,max=12"`
}

type AcceptBookingRequest struct {
	ConfirmedDate *string `json:"confirmed_date,omitempty"`
}
