package dto

type PublishDTO struct {
	Title        string  `json:"title"        validate:"required,max=120"`
	Description  string  `json:"description"  validate:"required,max=4000"`
	VideoURL     string  `json:"videoUrl"     validate:"required,url"`
	ThumbnailURL string  `json:"thumbnailUrl" validate:"required,url"`
	Duration     float64 `json:"duration"     validate:"gte=0"`
	Published    *bool   `json:"published"`
}

// UpdateDTO needs at least one field; the service enforces that.
type UpdateDTO struct {
	Title        string `json:"title"        validate:"omitempty,max=120"`
	Description  string `json:"description"  validate:"omitempty,max=4000"`
	ThumbnailURL string `json:"thumbnailUrl" validate:"omitempty,url"`
}

type ListDTO struct {
	OwnerID  string `form:"ownerId"  validate:"omitempty,uuid"`
	Query    string `form:"query"    validate:"omitempty,max=120"`
	SortBy   string `form:"sortBy"   validate:"omitempty,oneof=created_at views duration title"`
	SortType string `form:"sortType" validate:"omitempty,oneof=asc desc"`
	Page     int    `form:"page"     validate:"omitempty,gte=1"`
	Limit    int    `form:"limit"    validate:"omitempty,gte=1,lte=50"`
}
