package sdk

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Material is a stocked item.
type Material struct {
	ID                int64  `json:"id"`
	Code              string `json:"code"`
	Name              string `json:"name"`
	Specification     string `json:"specification,omitempty"`
	MnemonicCode      string `json:"mnemonicCode,omitempty"`
	OldNumber         string `json:"oldNumber,omitempty"`
	Description       string `json:"description,omitempty"`
	ErpClsID          string `json:"erpClsId,omitempty"`
	MaterialGroupID   int64  `json:"materialGroupId"`
	MaterialGroupCode string `json:"materialGroupCode"`
	MaterialGroupName string `json:"materialGroupName"`
	BaseUnitID        int64  `json:"baseUnitId"`
	BaseUnitCode      string `json:"baseUnitCode"`
	BaseUnitName      string `json:"baseUnitName"`
	CreatedAt         Time   `json:"createdAt"`
	UpdatedAt         Time   `json:"updatedAt"`
}

// SaleOrderItem is one line of a sale order.
type SaleOrderItem struct {
	ID           int64   `json:"id"`
	Sequence     int     `json:"sequence"`
	MaterialCode string  `json:"materialCode"`
	MaterialName string  `json:"materialName"`
	UnitCode     string  `json:"unitCode"`
	Qty          float64 `json:"qty"`
	DeliveryDate string  `json:"deliveryDate,omitempty"`
	BOMVersion   string  `json:"bomVersion,omitempty"`
}

// SaleOrder is a customer order.
type SaleOrder struct {
	ID           int64           `json:"id"`
	BillNo       string          `json:"billNo"`
	OrderDate    string          `json:"orderDate"`
	Note         string          `json:"note,omitempty"`
	WoNumber     string          `json:"woNumber,omitempty"`
	CustomerID   int64           `json:"customerId"`
	CustomerCode string          `json:"customerCode"`
	CustomerName string          `json:"customerName"`
	Items        []SaleOrderItem `json:"items,omitempty"`
}

// SaleOrderQuery filters sale orders.
type SaleOrderQuery struct {
	PageQuery
	BillNo       string
	CustomerCode string
	StartDate    string
	EndDate      string
}

// ListMaterials returns every material.
func (c *Client) ListMaterials(ctx context.Context) ([]Material, error) {
	var materials []Material
	if err := c.get(ctx, "/materials", nil, &materials); err != nil {
		return nil, err
	}
	return materials, nil
}

// GetMaterial fetches a material by ID.
func (c *Client) GetMaterial(ctx context.Context, id int64) (*Material, error) {
	var m Material
	if err := c.get(ctx, fmt.Sprintf("/materials/%d", id), nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// SearchMaterials matches materials by code or name.
func (c *Client) SearchMaterials(ctx context.Context, keyword string, limit int) ([]Material, error) {
	if limit <= 0 {
		limit = 20
	}
	v := url.Values{}
	v.Set("keyword", keyword)
	v.Set("limit", strconv.Itoa(limit))

	var materials []Material
	if err := c.get(ctx, "/materials/search", v, &materials); err != nil {
		return nil, err
	}
	return materials, nil
}

// ListSaleOrders returns one page of sale orders.
// The backend nests paging under "page" for this endpoint; both shapes are accepted.
func (c *Client) ListSaleOrders(ctx context.Context, q SaleOrderQuery) (*Page[SaleOrder], error) {
	v := url.Values{}
	q.PageQuery.apply(v)
	setIfNotEmpty(v, "billNo", q.BillNo)
	setIfNotEmpty(v, "customerCode", q.CustomerCode)
	setIfNotEmpty(v, "startDate", q.StartDate)
	setIfNotEmpty(v, "endDate", q.EndDate)

	var resp struct {
		Page[SaleOrder]
		Nested *struct {
			Size          int   `json:"size"`
			Number        int   `json:"number"`
			TotalElements int64 `json:"totalElements"`
			TotalPages    int   `json:"totalPages"`
		} `json:"page"`
	}
	if err := c.get(ctx, "/sale-orders", v, &resp); err != nil {
		return nil, err
	}

	page := resp.Page
	if resp.Nested != nil {
		page.Size = resp.Nested.Size
		page.Number = resp.Nested.Number
		page.TotalElements = resp.Nested.TotalElements
		page.TotalPages = resp.Nested.TotalPages
	}
	return &page, nil
}

// GetSaleOrder fetches an order with its lines.
func (c *Client) GetSaleOrder(ctx context.Context, id int64) (*SaleOrder, error) {
	var order SaleOrder
	if err := c.get(ctx, fmt.Sprintf("/sale-orders/%d", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
