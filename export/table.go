/*
Package export serializes collections and reports for download.

PURPOSE:
  Three output shapes share one tabular model:
  - CSV with the fixed company header block
  - XLSX fiscal statement workbook
  - PDF monthly statement

  Column order always follows the input record's field order, so an
  exported shift file reads exactly like the shift record itself.
*/
package export

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Table is the shared tabular form every writer consumes.
type Table struct {
	Columns []string
	Rows    [][]string
}

// FromRecords builds a Table from a slice of structs. Columns come from the
// json tags in declared field order; fields tagged "-" are skipped. This
// mirrors the persisted record layout, which is the export contract.
func FromRecords[T any](records []T) Table {
	var zero T
	rt := reflect.TypeOf(zero)

	var cols []string
	var fields []int
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		name := jsonName(f)
		if name == "" {
			continue
		}
		cols = append(cols, name)
		fields = append(fields, i)
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rv := reflect.ValueOf(rec)
		row := make([]string, 0, len(fields))
		for _, i := range fields {
			row = append(row, formatCell(rv.Field(i)))
		}
		rows = append(rows, row)
	}

	return Table{Columns: cols, Rows: rows}
}

func jsonName(f reflect.StructField) string {
	if !f.IsExported() {
		return ""
	}
	tag := f.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		name = f.Name
	}
	return name
}

func formatCell(v reflect.Value) string {
	switch val := v.Interface().(type) {
	case decimal.Decimal:
		return val.String()
	case time.Time:
		return val.Format(time.RFC3339)
	case *time.Time:
		if val == nil {
			return ""
		}
		return val.Format(time.RFC3339)
	case string:
		return val
	case bool:
		return fmt.Sprintf("%t", val)
	case fmt.Stringer:
		return val.String()
	}

	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fmt.Sprintf("%d", v.Int())
	case reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%v", v.Float())
	case reflect.Slice, reflect.Map, reflect.Struct, reflect.Ptr:
		// Nested payloads (staff documents, supplier fuel lists) export as
		// their JSON form, same as the persisted record.
		b, err := json.Marshal(v.Interface())
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}
