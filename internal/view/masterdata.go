package view

import (
	"fmt"
	"io"
	"strconv"

	"github.com/liyang960414/erp/pkg/sdk"
)

// BOMs renders bill of materials headers.
func BOMs(w io.Writer, boms []sdk.BillOfMaterial) error {
	t := newTable(w, "ID", "MATERIAL", "NAME", "VERSION", "CATEGORY", "ITEMS")
	for _, b := range boms {
		t.row(id(b.ID), b.MaterialCode, b.MaterialName, b.Version, b.Category, strconv.Itoa(len(b.Items)))
	}
	return t.flush()
}

// BOM renders one bill of materials and its child lines.
func BOM(w io.Writer, b *sdk.BillOfMaterial) error {
	if err := BOMs(w, []sdk.BillOfMaterial{*b}); err != nil {
		return err
	}
	fmt.Fprintln(w)
	t := newTable(w, "SEQ", "CHILD", "NAME", "QTY", "UNIT", "SCRAP", "CHILD BOM")
	for _, item := range b.Items {
		t.row(strconv.Itoa(item.Sequence), item.ChildMaterialCode, item.ChildMaterialName,
			ratio(item.Numerator, item.Denominator), item.ChildUnitCode, percent(item.ScrapRate), item.ChildBOMVersion)
	}
	return t.flush()
}

// Units renders units of measure with their conversion ratio.
func Units(w io.Writer, units []sdk.Unit) error {
	t := newTable(w, "ID", "CODE", "NAME", "GROUP", "CONVERSION", "ENABLED")
	for _, u := range units {
		conversion := ""
		if u.ConversionNumerator != nil && u.ConversionDenominator != nil {
			conversion = ratio(*u.ConversionNumerator, *u.ConversionDenominator)
		}
		t.row(id(u.ID), u.Code, u.Name, u.UnitGroup.Code, conversion, strconv.FormatBool(u.Enabled))
	}
	return t.flush()
}

// UnitGroups renders unit groups.
func UnitGroups(w io.Writer, groups []sdk.UnitGroup) error {
	t := newTable(w, "ID", "CODE", "NAME", "DESCRIPTION")
	for _, g := range groups {
		t.row(id(g.ID), g.Code, g.Name, g.Description)
	}
	return t.flush()
}

// MaterialGroups renders material groups.
func MaterialGroups(w io.Writer, groups []sdk.MaterialGroup) error {
	t := newTable(w, "ID", "CODE", "NAME", "PARENT", "DESCRIPTION")
	for _, g := range groups {
		parent := ""
		if g.ParentID != nil {
			parent = id(*g.ParentID)
		}
		t.row(id(g.ID), g.Code, g.Name, parent, g.Description)
	}
	return t.flush()
}

// Suppliers renders suppliers.
func Suppliers(w io.Writer, suppliers []sdk.Supplier) error {
	t := newTable(w, "ID", "CODE", "NAME", "SHORT NAME", "ENGLISH NAME")
	for _, s := range suppliers {
		t.row(id(s.ID), s.Code, s.Name, s.ShortName, s.EnglishName)
	}
	return t.flush()
}

// ratio prints n/d, or just n when d is 1.
func ratio(n, d float64) string {
	num := strconv.FormatFloat(n, 'f', -1, 64)
	if d == 0 || d == 1 {
		return num
	}
	return num + "/" + strconv.FormatFloat(d, 'f', -1, 64)
}

func percent(rate *float64) string {
	if rate == nil {
		return ""
	}
	return strconv.FormatFloat(*rate*100, 'g', 6, 64) + "%"
}
