package dto

// RecordsData is the paged response of GET /api/records.
type RecordsData struct {
	Records     []RecordInfo `json:"records"`
	Length      int          `json:"length"`
	TotalPages  int          `json:"totalPages"`
	CurrentPage int          `json:"currentPage"`
	Limit       int          `json:"limit"`
}
