package dto

// StockAlertResponse stock con las alertas que le aplican (LOW, EMPTY, EXPIRING, EXPIRED).
type StockAlertResponse struct {
	Stock  StockResponse `json:"stock"`
	Alerts []string      `json:"alerts"`
}

// CriticalShortageResponse producto crítico sin unidades en almacenes principales.
type CriticalShortageResponse struct {
	ProductID int64  `json:"product_id"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Units     int    `json:"units"`
}

// AlertListResponse lista de alertas de stock.
type AlertListResponse struct {
	Items []StockAlertResponse `json:"items"`
}
