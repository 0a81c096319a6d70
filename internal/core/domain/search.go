package domain

// SearchOptions configures execution of a structured query.
type SearchOptions struct {
	// Page is 1-based.
	Page int

	// PerPage is the maximum number of hits per page.
	PerPage int
}

// Product is one document of the clothing catalogue collection.
type Product struct {
	ProductID       string  `json:"product_id"`
	SkuID           string  `json:"sku_id"`
	Name            string  `json:"name"`
	DepartmentName  string  `json:"department_name,omitempty"`
	CategoryName    string  `json:"category_name,omitempty"`
	SubCategoryName string  `json:"sub_category_name,omitempty"`
	BrandName       string  `json:"brand_name,omitempty"`
	Link            string  `json:"link,omitempty"`
	ImageURL        string  `json:"image_url,omitempty"`
	Stock           float64 `json:"stock,omitempty"`
	ListPrice       float64 `json:"list_price,omitempty"`
	Price           float64 `json:"price,omitempty"`
	Size            string  `json:"size,omitempty"`
	Color           string  `json:"color,omitempty"`
	Gender          string  `json:"gender,omitempty"`
}

// SearchResult is the outcome of executing a structured query.
type SearchResult struct {
	// Query is the structured query that was executed.
	Query StructuredQuery `json:"query"`

	// Found is the total number of matching documents.
	Found int `json:"found"`

	// Page is the page that was returned.
	Page int `json:"page"`

	// Products holds the hits of the requested page.
	Products []Product `json:"products"`
}
