package entity

// Roles válidos en el token. La gestión de personal vive fuera de este servicio.
const (
	RoleAdmin          = "admin"
	RoleCashier        = "cashier"
	RoleInventoryClerk = "inventory_clerk"
)
