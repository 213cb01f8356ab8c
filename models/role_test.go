package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Level(t *testing.T) {
	prev := 0
	for _, r := range Roles() {
		assert.Greater(t, r.Level(), prev, r.String())
		prev = r.Level()
	}
	assert.Zero(t, Role("GUEST").Level())
	assert.Zero(t, Role("").Level())
}

func TestProductStatus_Toggled(t *testing.T) {
	assert.Equal(t, ProductInactive, ProductActive.Toggled())
	assert.Equal(t, ProductActive, ProductInactive.Toggled())
	assert.Equal(t, ProductActive, ProductDiscontinued.Toggled())
}

func TestProduct_Request(t *testing.T) {
	p := Product{ID: 9, SKU: "SKU-1", Name: "Lamp", Price: 12.5, Quantity: 3, Status: ProductActive}
	assert.Equal(t, ProductRequest{SKU: "SKU-1", Name: "Lamp", Price: 12.5, Quantity: 3, Status: ProductActive}, p.Request())
}

func TestBuildInfo(t *testing.T) {
	info := NewBuildInfo("", "", "")
	assert.Equal(t, BuildInfo{Version: "N/A", Date: "N/A", Commit: "N/A"}, info)

	info = NewBuildInfo("1.2.0", "2026-01-02", "abc123")
	assert.Equal(t, "version 1.2.0 (abc123, built 2026-01-02)", info.String())
}
