package entity

import "time"

// Company representa la empresa/tenant dueña de pedidos, proveedores y contactos.
// Cada consulta se acota por CompanyID; no hay datos compartidos entre empresas.
type Company struct {
	ID        string
	Name      string
	TaxID     string // RUT (Chile) u otro identificador fiscal
	Email     string
	Status    string // active, suspended
	CreatedAt time.Time
	UpdatedAt time.Time
}
