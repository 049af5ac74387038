package codes

import (
	"sort"
	"strings"

	"gopkg.in/reform.v1"
)

const sqlSchema = "bcpay"

// Tables справочники, которые можно править через админку.
var Tables = map[string]*Table{
	"corp_types":       {name: "corp_types"},
	"payment_methods":  {name: "payment_methods"},
	"payment_systems":  {name: "payment_systems"},
	"invoice_statuses": {name: "invoice_statuses"},
	"payment_statuses": {name: "payment_statuses"},
}

func TableNames() []string {
	out := make([]string, 0, len(Tables))
	for name := range Tables {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Table reform.Table for one of the code tables; all of them are (code pk, description).
type Table struct {
	name string
}

func (t *Table) Schema() string { return sqlSchema }

func (t *Table) Name() string { return t.name }

func (t *Table) Columns() []string { return []string{"code", "description"} }

func (t *Table) NewStruct() reform.Struct { return &Code{table: t} }

func (t *Table) NewRecord() reform.Record { return &Code{table: t} }

func (t *Table) PKColumnIndex() uint { return 0 }

// Code строка справочника.
type Code struct {
	Code        string `json:"code"`
	Description string `json:"description"`

	table *Table
}

func NewCode(t *Table, code, description string) *Code {
	return &Code{Code: code, Description: description, table: t}
}

func (c Code) String() string {
	res := make([]string, 2)
	res[0] = "Code: " + reform.Inspect(c.Code, true)
	res[1] = "Description: " + reform.Inspect(c.Description, true)
	return strings.Join(res, ", ")
}

func (c *Code) Values() []interface{} {
	return []interface{}{
		c.Code,
		c.Description,
	}
}

func (c *Code) Pointers() []interface{} {
	return []interface{}{
		&c.Code,
		&c.Description,
	}
}

func (c *Code) View() reform.View { return c.table }

func (c *Code) Table() reform.Table { return c.table }

func (c *Code) PKValue() interface{} { return c.Code }

func (c *Code) PKPointer() interface{} { return &c.Code }

func (c *Code) HasPK() bool { return c.Code != "" }

func (c *Code) SetPK(pk interface{}) { c.Code = pk.(string) }

// check interfaces
var (
	_ reform.Table  = (*Table)(nil)
	_ reform.Record = (*Code)(nil)
)
