package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderBy(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		want      string
	}{
		{"default", "", "", "created_at DESC, id DESC"},
		{"allowed asc", "delivery_date", "ASC", "delivery_date ASC, id ASC"},
		{"unknown column", "1; DROP TABLE shipments", "asc", "created_at ASC, id ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, orderBy(tt.sortBy, tt.sortOrder, shipmentSortColumns, "created_at"))
		})
	}
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%fresno%", likePattern("fresno"))
	assert.Equal(t, `%50\%\_off%`, likePattern("50%_off"))
}

func TestInvoiceModelKeepsShipmentOrder(t *testing.T) {
	inv := sampleInvoice()
	m := toInvoiceModel(inv)

	for i, s := range m.Shipments {
		assert.Equal(t, i, s.Position)
		assert.Equal(t, inv.ShipmentIDs[i], s.ShipmentID)
	}
	assert.Equal(t, inv.ShipmentIDs, toInvoiceEntity(m).ShipmentIDs)
}
