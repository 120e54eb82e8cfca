package dto

// SweepResult una línea del resultado del barrido (alerta emitida o error).
type SweepResult struct {
	CompanyID   string `json:"company_id"`
	OrderID     string `json:"order_id,omitempty"`
	OrderNumber string `json:"order_number,omitempty"`
	Installment int    `json:"installment,omitempty"`
	AlertType   string `json:"alert_type,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	Error       string `json:"error,omitempty"`
}

// CronResponse respuesta del disparador externo.
type CronResponse struct {
	OK      bool          `json:"ok"`
	Message string        `json:"message"`
	Results []SweepResult `json:"results"`
}
