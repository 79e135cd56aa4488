package domain

// Product maps a catalog product to the partner's id in the WMS.
type Product struct {
	ProductID  string
	ExternalID string
}
