package models

type UploadResponse struct {
	FileID string   `json:"file_id"`
	Tables []string `json:"tables"`
}

type TablesResponse struct {
	Tables []string `json:"tables"`
}

type RowsResponse struct {
	TableName string   `json:"table_name"`
	RowNames  []string `json:"row_names"`
}

type RowSumResponse struct {
	Table string  `json:"table"`
	Row   string  `json:"row"`
	Sum   float64 `json:"sum"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Workbooks int    `json:"workbooks"`
}
