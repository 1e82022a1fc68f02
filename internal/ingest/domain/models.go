package domain

// RawRow is one spreadsheet row as parsed by the reader: header literal →
// cell value. Missing columns are simply absent.
type RawRow map[string]string

// Progress is the cumulative upload state after one batch write.
type Progress struct {
	Processed  int `json:"processed"`
	Saved      int `json:"saved"`
	Errors     int `json:"errors"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// Summary terminates a successful upload.
type Summary struct {
	TotalRecords int `json:"totalRecords"`
	SavedRecords int `json:"savedRecords"`
	Errors       int `json:"errors"`
}
