package dto

type ProviderRatingDTO struct {
	ProviderType  string  `json:"provider_type"`
	ProviderID    uint    `json:"provider_id"`
	Name          string  `json:"name"`
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int     `json:"total_reviews"`
}

type UnreadCountDTO struct {
	Unread int64 `json:"unread"`
}
