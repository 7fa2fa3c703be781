package dto

type ProductResponse struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
}

type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
}
