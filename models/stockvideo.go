package models

// StockVideoList is the paginated response from the stock-video provider.
type StockVideoList struct {
	Page         int          `json:"page"`
	PerPage      int          `json:"per_page"`
	TotalResults int          `json:"total_results"`
	Videos       []StockVideo `json:"videos"`
}

// StockVideo is a single item from the stock-video provider. Fields the
// provider omits decode to zero values; normalization decides what is usable.
type StockVideo struct {
	ID          int64               `json:"id"`
	URL         string              `json:"url"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Tags        []string            `json:"tags"`
	Image       string              `json:"image"`
	Duration    int                 `json:"duration"`
	User        StockVideoUser      `json:"user"`
	VideoFiles  []StockVideoFile    `json:"video_files"`
	Pictures    []StockVideoPicture `json:"video_pictures"`
}

type StockVideoUser struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

type StockVideoFile struct {
	ID       int64  `json:"id"`
	Quality  string `json:"quality"`
	FileType string `json:"file_type"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Link     string `json:"link"`
}

type StockVideoPicture struct {
	ID      int64  `json:"id"`
	Picture string `json:"picture"`
	Nr      int    `json:"nr"`
}
