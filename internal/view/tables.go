// Package view renders ERP data and pages for the terminal.
package view

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/liyang960414/erp/pkg/sdk"
)

const timeLayout = "2006-01-02 15:04:05"

type table struct {
	tw *tabwriter.Writer
}

func newTable(w io.Writer, header ...string) *table {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	return &table{tw: tw}
}

func (t *table) row(cols ...string) {
	for i, col := range cols {
		if col == "" {
			cols[i] = "-"
		}
	}
	fmt.Fprintln(t.tw, strings.Join(cols, "\t"))
}

func (t *table) flush() error {
	return t.tw.Flush()
}

// Users renders a user list.
func Users(w io.Writer, users []sdk.User) error {
	t := newTable(w, "ID", "USERNAME", "FULL NAME", "EMAIL", "ROLES", "ENABLED")
	for _, u := range users {
		roles := make([]string, 0, len(u.Roles))
		for _, r := range u.Roles {
			roles = append(roles, r.Name)
		}
		t.row(id(u.ID), u.Username, u.FullName, u.Email, strings.Join(roles, ", "), strconv.FormatBool(u.Enabled))
	}
	return t.flush()
}

// Profile renders the signed-in user as name/value pairs.
func Profile(w io.Writer, p *sdk.UserProfile) error {
	t := newTable(w, "FIELD", "VALUE")
	if p == nil {
		return t.flush()
	}
	roles := make([]string, 0, len(p.Roles))
	perms := make([]string, 0)
	seen := make(map[string]struct{})
	for _, r := range p.Roles {
		roles = append(roles, r.Name)
		for _, perm := range r.Permissions {
			if _, dup := seen[perm.Name]; dup {
				continue
			}
			seen[perm.Name] = struct{}{}
			perms = append(perms, perm.Name)
		}
	}
	sort.Strings(perms)
	t.row("ID", id(p.ID))
	t.row("Username", p.Username)
	t.row("Full name", p.FullName)
	t.row("Email", p.Email)
	t.row("Roles", strings.Join(roles, ", "))
	t.row("Permissions", strings.Join(perms, ", "))
	return t.flush()
}

// Roles renders roles with their permission names.
func Roles(w io.Writer, roles []sdk.Role) error {
	t := newTable(w, "ID", "NAME", "DESCRIPTION", "PERMISSIONS")
	for _, r := range roles {
		perms := make([]string, 0, len(r.Permissions))
		for _, p := range r.Permissions {
			perms = append(perms, p.Name)
		}
		t.row(id(r.ID), r.Name, r.Description, strings.Join(perms, ", "))
	}
	return t.flush()
}

// Permissions renders a permission list.
func Permissions(w io.Writer, perms []sdk.Permission) error {
	t := newTable(w, "ID", "NAME", "DESCRIPTION")
	for _, p := range perms {
		t.row(id(p.ID), p.Name, p.Description)
	}
	return t.flush()
}

// AuditLogs renders audit entries.
func AuditLogs(w io.Writer, logs []sdk.AuditLog) error {
	t := newTable(w, "TIME", "USERNAME", "MODULE", "ACTION", "STATUS", "DESCRIPTION")
	for _, l := range logs {
		t.row(stamp(l.CreatedAt), l.Username, l.Module, l.Action, l.Status, l.Description)
	}
	return t.flush()
}

// ImportTasks renders import task summaries.
func ImportTasks(w io.Writer, tasks []sdk.ImportTaskSummary) error {
	t := newTable(w, "ID", "CODE", "TYPE", "STATUS", "FILE", "PROGRESS", "CREATED BY", "CREATED")
	for _, task := range tasks {
		t.row(id(task.TaskID), task.TaskCode, task.ImportType, task.Status, task.FileName,
			progress(task.SuccessCount, task.FailureCount, task.TotalCount), task.CreatedBy, stamp(task.CreatedAt))
	}
	return t.flush()
}

// ImportTaskDetail renders a task and its per-file items.
func ImportTaskDetail(w io.Writer, detail *sdk.ImportTaskDetail) error {
	if err := ImportTasks(w, []sdk.ImportTaskSummary{detail.Task}); err != nil {
		return err
	}
	fmt.Fprintln(w)
	t := newTable(w, "ITEM", "SEQ", "STATUS", "FILE", "PROGRESS", "FAILURE")
	for _, item := range detail.Items {
		t.row(id(item.ItemID), strconv.Itoa(item.SequenceNo), item.Status, item.FileName,
			progress(item.SuccessCount, item.FailureCount, item.TotalCount), item.FailureReason)
	}
	return t.flush()
}

// ImportFailures renders the failed rows of an import task.
func ImportFailures(w io.Writer, failures []sdk.ImportTaskFailure) error {
	t := newTable(w, "ID", "SECTION", "ROW", "FIELD", "STATUS", "MESSAGE")
	for _, f := range failures {
		rowNo := ""
		if f.RowNumber != nil {
			rowNo = strconv.Itoa(*f.RowNumber)
		}
		t.row(id(f.ID), f.Section, rowNo, f.Field, f.Status, f.Message)
	}
	return t.flush()
}

// ImportResult renders the outcome of a synchronous import, one row per sheet.
func ImportResult(w io.Writer, result sdk.ImportResponse) error {
	sections := make([]string, 0, len(result))
	for name := range result {
		sections = append(sections, name)
	}
	sort.Strings(sections)

	t := newTable(w, "SECTION", "TOTAL", "SUCCESS", "FAILED")
	var rowErrors []sdk.ImportRowError
	for _, name := range sections {
		r := result[name]
		t.row(name, strconv.Itoa(r.TotalRows), strconv.Itoa(r.SuccessCount), strconv.Itoa(r.FailureCount))
		rowErrors = append(rowErrors, r.Errors...)
	}
	if err := t.flush(); err != nil {
		return err
	}
	if len(rowErrors) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	t = newTable(w, "SHEET", "ROW", "FIELD", "MESSAGE")
	for _, e := range rowErrors {
		t.row(e.SheetName, strconv.Itoa(e.RowNumber), e.Field, e.Message)
	}
	return t.flush()
}

// Materials renders a material list.
func Materials(w io.Writer, materials []sdk.Material) error {
	t := newTable(w, "ID", "CODE", "NAME", "SPECIFICATION", "GROUP", "UNIT")
	for _, m := range materials {
		t.row(id(m.ID), m.Code, m.Name, m.Specification, m.MaterialGroupName, m.BaseUnitName)
	}
	return t.flush()
}

// SaleOrders renders sale order headers.
func SaleOrders(w io.Writer, orders []sdk.SaleOrder) error {
	t := newTable(w, "ID", "BILL NO", "DATE", "CUSTOMER", "WO NUMBER", "LINES")
	for _, o := range orders {
		t.row(id(o.ID), o.BillNo, o.OrderDate, o.CustomerName, o.WoNumber, strconv.Itoa(len(o.Items)))
	}
	return t.flush()
}

// SaleOrder renders one order and its lines.
func SaleOrder(w io.Writer, o *sdk.SaleOrder) error {
	if err := SaleOrders(w, []sdk.SaleOrder{*o}); err != nil {
		return err
	}
	fmt.Fprintln(w)
	t := newTable(w, "SEQ", "MATERIAL", "NAME", "QTY", "UNIT", "DELIVERY", "BOM")
	for _, item := range o.Items {
		t.row(strconv.Itoa(item.Sequence), item.MaterialCode, item.MaterialName,
			strconv.FormatFloat(item.Qty, 'f', -1, 64), item.UnitCode, item.DeliveryDate, item.BOMVersion)
	}
	return t.flush()
}

// Footer prints the paging position under a table.
func Footer[T any](w io.Writer, page *sdk.Page[T]) {
	if page == nil || page.TotalPages <= 1 {
		return
	}
	fmt.Fprintf(w, "\npage %d/%d, %d total\n", page.Number+1, page.TotalPages, page.TotalElements)
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

func stamp(t sdk.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(timeLayout)
}

func progress(success, failure, total *int) string {
	if total == nil {
		return ""
	}
	done := 0
	if success != nil {
		done += *success
	}
	if failure != nil && *failure > 0 {
		return fmt.Sprintf("%d/%d (%d failed)", done, *total, *failure)
	}
	return fmt.Sprintf("%d/%d", done, *total)
}
