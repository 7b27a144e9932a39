package ops

import (
	"github.com/yanun0323/errors"

	"main/internal/model"
)

// SecurityMaster maps product identifiers to full bond definitions.
// Connectors join every parsed row against it; rows with an unknown
// identifier are skipped.
type SecurityMaster struct {
	bonds []model.Bond
	byID  map[string]model.Bond
}

// NewSecurityMaster creates an empty master.
func NewSecurityMaster() *SecurityMaster {
	return &SecurityMaster{byID: make(map[string]model.Bond)}
}

// Add registers a bond. Duplicate identifiers are rejected.
func (m *SecurityMaster) Add(bond model.Bond) error {
	if bond.ProductID == "" {
		return errors.Errorf("security master: empty product id")
	}
	if _, ok := m.byID[bond.ProductID]; ok {
		return errors.Errorf("security master: duplicate product id %s", bond.ProductID)
	}
	m.bonds = append(m.bonds, bond)
	m.byID[bond.ProductID] = bond
	return nil
}

// Lookup returns the bond for a product identifier.
func (m *SecurityMaster) Lookup(productID string) (model.Bond, bool) {
	bond, ok := m.byID[productID]
	return bond, ok
}

// Bonds returns every registered bond in insertion order.
func (m *SecurityMaster) Bonds() []model.Bond {
	return m.bonds
}

// Len returns the number of registered bonds.
func (m *SecurityMaster) Len() int {
	return len(m.bonds)
}
