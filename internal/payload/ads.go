package payload

type CreateAdRequest struct {
	Name      string  `json:"name"      validate:"required"`
	ImageURL  string  `json:"imageUrl"  validate:"required,url"`
	TargetURL string  `json:"targetUrl" validate:"required,url"`
	Placement string  `json:"placement" validate:"required"`
	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`
}

type UpdateAdRequest struct {
	Name      *string `json:"name,omitempty"`
	ImageURL  *string `json:"imageUrl,omitempty"`
	TargetURL *string `json:"targetUrl,omitempty"`
	Placement *string `json:"placement,omitempty"`
	// A date set to the empty string clears the bound.
	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`
}

type TrackAdRequest struct {
	Kind string `json:"kind" validate:"required,oneof=impression click"`
}

type BounceWebhookRequest struct {
	Email  string `json:"email"  validate:"required,email"`
	Reason string `json:"reason"`
}
