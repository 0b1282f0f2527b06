package dto

// RootResponse GET /
type RootResponse struct {
	Message   string        `json:"message" example:"Welcome to the Bookstore API"`
	Version   string        `json:"version" example:"1.0.0"`
	Endpoints RootEndpoints `json:"endpoints"`
}

// RootEndpoints 入口链接
type RootEndpoints struct {
	Books         string `json:"books" example:"/api/books"`
	Documentation string `json:"documentation" example:"/api-docs"`
}

// HealthResponse GET /health
type HealthResponse struct {
	Status    string `json:"status" example:"OK"`
	Timestamp string `json:"timestamp" example:"2024-05-20T08:00:00.000Z"`
}
