package model

import "github.com/shopspring/decimal"

// PV01 is the accumulated dollar sensitivity for one product.
type PV01 struct {
	Product  Bond
	Value    decimal.Decimal
	Quantity Quantity
}

// BucketedSector is a named set of products whose risk is summed for
// portfolio views.
type BucketedSector struct {
	Name     string
	Products []Bond
}

// SectorRisk is the on-demand aggregate PV01 for a sector.
type SectorRisk struct {
	Sector   BucketedSector
	Value    decimal.Decimal
	Quantity Quantity
}
