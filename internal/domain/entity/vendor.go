package entity

// Vendor proveedor de equipos (enumeración cerrada).
type Vendor string

const (
	VendorSandeep  Vendor = "Sandeep"
	VendorAbubakar Vendor = "Abubakar"
	VendorWebsite  Vendor = "Website"
	VendorAnees    Vendor = "Anees"
)

// Vendors lista ordenada de proveedores válidos.
var Vendors = []Vendor{VendorSandeep, VendorAbubakar, VendorWebsite, VendorAnees}

// Valid indica si v pertenece a la enumeración.
func (v Vendor) Valid() bool {
	for _, known := range Vendors {
		if v == known {
			return true
		}
	}
	return false
}

// PaymentStatus estado de cobro de una venta.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
)

// Valid indica si s es un estado conocido.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPaid, PaymentPending, PaymentPartial:
		return true
	}
	return false
}
