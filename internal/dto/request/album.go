package request

type CreateAlbumRequest struct {
	Title      string `json:"title" validate:"required,min=1,max=200"`
	Artist     string `json:"artist" validate:"required,min=1,max=200"`
	Genre      string `json:"genre" validate:"required,min=1,max=100"`
	Rating     int    `json:"rating" validate:"required,gte=1,lte=5"`
	ListenedAt string `json:"listenedAt" validate:"required,datetime=2006-01-02"`
}

type ListAlbumsRequest struct {
	Genre     string `json:"genre" validate:"omitempty,max=100"`
	MinRating int    `json:"min_rating" validate:"omitempty,gte=1,lte=5"`
	Limit     int    `json:"limit" validate:"omitempty,gte=1,lte=100"`
	Offset    int    `json:"offset" validate:"omitempty,gte=0"`
	OrderBy   string `json:"order_by" validate:"omitempty,oneof=listened_at rating created_at"`
	Order     string `json:"order" validate:"omitempty,oneof=asc desc"`
}
