package sdk

import (
	"context"
	"fmt"
)

// MaterialGroup classifies materials; groups may nest through ParentID.
type MaterialGroup struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ParentID    *int64 `json:"parentId,omitempty"`
	CreatedAt   Time   `json:"createdAt"`
	UpdatedAt   Time   `json:"updatedAt"`
}

// UnitGroup groups convertible units of measure.
type UnitGroup struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ParentID    *int64 `json:"parentId,omitempty"`
	CreatedAt   Time   `json:"createdAt"`
	UpdatedAt   Time   `json:"updatedAt"`
}

// UnitGroupSummary is the compact group reference embedded in units.
type UnitGroupSummary struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// Unit is a unit of measure. The conversion ratio is relative to the
// group's base unit.
type Unit struct {
	ID                    int64            `json:"id"`
	Code                  string           `json:"code"`
	Name                  string           `json:"name"`
	UnitGroup             UnitGroupSummary `json:"unitGroup"`
	Enabled               bool             `json:"enabled"`
	ConversionNumerator   *float64         `json:"conversionNumerator,omitempty"`
	ConversionDenominator *float64         `json:"conversionDenominator,omitempty"`
	CreatedAt             Time             `json:"createdAt"`
	UpdatedAt             Time             `json:"updatedAt"`
}

// CreateUnitGroupInput creates a unit group.
type CreateUnitGroupInput struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UpdateUnitGroupInput patches a unit group; nil fields are left unchanged.
type UpdateUnitGroupInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CreateUnitInput creates a unit.
type CreateUnitInput struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	UnitGroupID int64  `json:"unitGroupId"`
	Enabled     *bool  `json:"enabled,omitempty"`
}

// UpdateUnitInput patches a unit; nil fields are left unchanged.
type UpdateUnitInput struct {
	Name                  *string  `json:"name,omitempty"`
	UnitGroupID           *int64   `json:"unitGroupId,omitempty"`
	Enabled               *bool    `json:"enabled,omitempty"`
	ConversionNumerator   *float64 `json:"conversionNumerator,omitempty"`
	ConversionDenominator *float64 `json:"conversionDenominator,omitempty"`
}

// BOMItem is one child line of a bill of materials. The child quantity per
// parent is Numerator/Denominator.
type BOMItem struct {
	ID                int64    `json:"id"`
	BOMID             int64    `json:"bomId"`
	Sequence          int      `json:"sequence"`
	ChildMaterialID   int64    `json:"childMaterialId"`
	ChildMaterialCode string   `json:"childMaterialCode"`
	ChildMaterialName string   `json:"childMaterialName"`
	ChildUnitID       int64    `json:"childUnitId"`
	ChildUnitCode     string   `json:"childUnitCode"`
	ChildUnitName     string   `json:"childUnitName"`
	Numerator         float64  `json:"numerator"`
	Denominator       float64  `json:"denominator"`
	ScrapRate         *float64 `json:"scrapRate,omitempty"`
	ChildBOMVersion   string   `json:"childBomVersion,omitempty"`
	Memo              string   `json:"memo,omitempty"`
	CreatedAt         Time     `json:"createdAt"`
	UpdatedAt         Time     `json:"updatedAt"`
}

// BillOfMaterial is one version of a material's bill of materials.
type BillOfMaterial struct {
	ID                int64     `json:"id"`
	MaterialID        int64     `json:"materialId"`
	MaterialCode      string    `json:"materialCode"`
	MaterialName      string    `json:"materialName"`
	MaterialGroupCode string    `json:"materialGroupCode"`
	MaterialGroupName string    `json:"materialGroupName"`
	Version           string    `json:"version"`
	Name              string    `json:"name,omitempty"`
	Category          string    `json:"category,omitempty"`
	Usage             string    `json:"usage,omitempty"`
	Description       string    `json:"description,omitempty"`
	Items             []BOMItem `json:"items"`
	CreatedAt         Time      `json:"createdAt"`
	UpdatedAt         Time      `json:"updatedAt"`
}

// Supplier is a vendor.
type Supplier struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	ShortName   string `json:"shortName,omitempty"`
	EnglishName string `json:"englishName,omitempty"`
	Description string `json:"description,omitempty"`
	CreatedAt   Time   `json:"createdAt"`
	UpdatedAt   Time   `json:"updatedAt"`
}

// ListMaterialGroups returns every material group.
func (c *Client) ListMaterialGroups(ctx context.Context) ([]MaterialGroup, error) {
	var groups []MaterialGroup
	if err := c.get(ctx, "/material-groups", nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// GetMaterialGroup fetches a material group by ID.
func (c *Client) GetMaterialGroup(ctx context.Context, id int64) (*MaterialGroup, error) {
	var g MaterialGroup
	if err := c.get(ctx, fmt.Sprintf("/material-groups/%d", id), nil, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// ListMaterialsByGroup returns the materials in a group.
func (c *Client) ListMaterialsByGroup(ctx context.Context, groupID int64) ([]Material, error) {
	var materials []Material
	if err := c.get(ctx, fmt.Sprintf("/materials/group/%d", groupID), nil, &materials); err != nil {
		return nil, err
	}
	return materials, nil
}

// ListUnitGroups returns every unit group.
func (c *Client) ListUnitGroups(ctx context.Context) ([]UnitGroup, error) {
	var groups []UnitGroup
	if err := c.get(ctx, "/unit-groups", nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// GetUnitGroup fetches a unit group by ID.
func (c *Client) GetUnitGroup(ctx context.Context, id int64) (*UnitGroup, error) {
	var g UnitGroup
	if err := c.get(ctx, fmt.Sprintf("/unit-groups/%d", id), nil, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// CreateUnitGroup creates a unit group.
func (c *Client) CreateUnitGroup(ctx context.Context, input CreateUnitGroupInput) (*UnitGroup, error) {
	if input.Code == "" || input.Name == "" {
		return nil, fmt.Errorf("unit group code and name are required")
	}
	var g UnitGroup
	if err := c.post(ctx, "/unit-groups", input, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// UpdateUnitGroup patches a unit group.
func (c *Client) UpdateUnitGroup(ctx context.Context, id int64, input UpdateUnitGroupInput) (*UnitGroup, error) {
	var g UnitGroup
	if err := c.put(ctx, fmt.Sprintf("/unit-groups/%d", id), input, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// DeleteUnitGroup deletes a unit group.
func (c *Client) DeleteUnitGroup(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/unit-groups/%d", id))
}

// ListUnits returns every unit.
func (c *Client) ListUnits(ctx context.Context) ([]Unit, error) {
	var units []Unit
	if err := c.get(ctx, "/units", nil, &units); err != nil {
		return nil, err
	}
	return units, nil
}

// ListUnitsByGroup returns the units of one group.
func (c *Client) ListUnitsByGroup(ctx context.Context, groupID int64) ([]Unit, error) {
	var units []Unit
	if err := c.get(ctx, fmt.Sprintf("/units/group/%d", groupID), nil, &units); err != nil {
		return nil, err
	}
	return units, nil
}

// GetUnit fetches a unit by ID.
func (c *Client) GetUnit(ctx context.Context, id int64) (*Unit, error) {
	var u Unit
	if err := c.get(ctx, fmt.Sprintf("/units/%d", id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUnit creates a unit.
func (c *Client) CreateUnit(ctx context.Context, input CreateUnitInput) (*Unit, error) {
	if input.Code == "" || input.Name == "" || input.UnitGroupID <= 0 {
		return nil, fmt.Errorf("unit code, name and group are required")
	}
	var u Unit
	if err := c.post(ctx, "/units", input, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUnit patches a unit.
func (c *Client) UpdateUnit(ctx context.Context, id int64, input UpdateUnitInput) (*Unit, error) {
	var u Unit
	if err := c.put(ctx, fmt.Sprintf("/units/%d", id), input, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteUnit deletes a unit.
func (c *Client) DeleteUnit(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/units/%d", id))
}

// ListBOMs returns every bill of materials.
func (c *Client) ListBOMs(ctx context.Context) ([]BillOfMaterial, error) {
	var boms []BillOfMaterial
	if err := c.get(ctx, "/boms", nil, &boms); err != nil {
		return nil, err
	}
	return boms, nil
}

// GetBOM fetches a bill of materials with its items.
func (c *Client) GetBOM(ctx context.Context, id int64) (*BillOfMaterial, error) {
	var bom BillOfMaterial
	if err := c.get(ctx, fmt.Sprintf("/boms/%d", id), nil, &bom); err != nil {
		return nil, err
	}
	return &bom, nil
}

// DeleteBOM deletes a bill of materials.
func (c *Client) DeleteBOM(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/boms/%d", id))
}

// ListSuppliers returns every supplier.
func (c *Client) ListSuppliers(ctx context.Context) ([]Supplier, error) {
	var suppliers []Supplier
	if err := c.get(ctx, "/suppliers", nil, &suppliers); err != nil {
		return nil, err
	}
	return suppliers, nil
}
