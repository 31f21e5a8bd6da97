package worker

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"workers/inner/common"

	"github.com/Masterminds/squirrel"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	MsgPageOutOfRange = "Page number is out of range"
)

// поля, по которым разрешены фильтрация и сортировка, и их колонки в запросе
var queryableColumns = map[string]string{
	"id":        "w.id",
	"name":      "w.name",
	"surname":   "w.surname",
	"email":     "w.email",
	"birthdate": "w.birthdate",
	"pesel":     "w.pesel",
	"gender":    "g.name",
}

type Condition struct {
	Field  string
	Column string
	Value  any
}

type Order struct {
	Field      string
	Column     string
	Descending bool
}

// QuerySpec отложенное описание выборки: условия равенства, сортировка, страница.
// Сам по себе ничего не выполняет
type QuerySpec struct {
	Conditions []Condition
	Orders     []Order
	Limit      uint64
	Offset     uint64
}

// Apply дописывает условия, сортировку и пагинацию к запросу
func (q QuerySpec) Apply(query squirrel.SelectBuilder) squirrel.SelectBuilder {
	for _, condition := range q.Conditions {
		query = query.Where(squirrel.Eq{condition.Column: condition.Value})
	}
	for _, order := range q.Orders {
		direction := "ASC"
		if order.Descending {
			direction = "DESC"
		}
		query = query.OrderBy(order.Column + " " + direction)
	}
	return query.Limit(q.Limit).Offset(q.Offset)
}

type fieldValue struct {
	key   string
	value any
}

// ParseQuery разбирает недоверенные параметры списка:
// filters и sorting это JSON-объекты, ключи проверяются по белому списку,
// порядок сортировки совпадает с порядком ключей в запросе
func ParseQuery(rawFilters, rawSorting string, page, limit int) (QuerySpec, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	// смещение должно помещаться в bigint
	if page-1 > math.MaxInt64/limit {
		return QuerySpec{}, common.RequestValidationError{Message: MsgPageOutOfRange}
	}
	spec := QuerySpec{
		Limit:  uint64(limit),
		Offset: uint64((page - 1) * limit),
	}

	filters, err := decodeObject(rawFilters)
	if err != nil {
		return QuerySpec{}, common.RequestValidationError{Message: fmt.Sprintf("Invalid filters: %v", err)}
	}
	for _, filter := range filters {
		column, ok := queryableColumns[filter.key]
		if !ok {
			return QuerySpec{}, common.RequestValidationError{Message: fmt.Sprintf("Unknown filter field %q", filter.key)}
		}
		switch value := filter.value.(type) {
		case string, bool, nil:
			spec.Conditions = append(spec.Conditions, Condition{Field: filter.key, Column: column, Value: value})
		case json.Number:
			spec.Conditions = append(spec.Conditions, Condition{Field: filter.key, Column: column, Value: value.String()})
		default:
			return QuerySpec{}, common.RequestValidationError{Message: fmt.Sprintf("Filter %q must be a scalar value", filter.key)}
		}
	}

	sorting, err := decodeObject(rawSorting)
	if err != nil {
		return QuerySpec{}, common.RequestValidationError{Message: fmt.Sprintf("Invalid sorting: %v", err)}
	}
	for _, sort := range sorting {
		column, ok := queryableColumns[sort.key]
		if !ok {
			return QuerySpec{}, common.RequestValidationError{Message: fmt.Sprintf("Unknown sorting field %q", sort.key)}
		}
		direction, _ := sort.value.(string)
		switch strings.ToLower(direction) {
		case "asc":
			spec.Orders = append(spec.Orders, Order{Field: sort.key, Column: column})
		case "desc":
			spec.Orders = append(spec.Orders, Order{Field: sort.key, Column: column, Descending: true})
		default:
			return QuerySpec{}, common.RequestValidationError{Message: fmt.Sprintf("Sorting direction for %q must be asc or desc", sort.key)}
		}
	}

	return spec, nil
}

// decodeObject читает JSON-объект верхнего уровня с сохранением порядка ключей
func decodeObject(raw string) ([]fieldValue, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	decoder := json.NewDecoder(strings.NewReader(raw))
	decoder.UseNumber()

	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("expected a JSON object")
	}

	var fields []fieldValue
	for decoder.More() {
		token, err = decoder.Token()
		if err != nil {
			return nil, err
		}
		key, _ := token.(string)

		var value any
		if err = decoder.Decode(&value); err != nil {
			return nil, err
		}
		fields = append(fields, fieldValue{key: key, value: value})
	}

	// закрывающая скобка объекта
	if _, err = decoder.Token(); err != nil {
		return nil, err
	}
	if _, err = decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON object")
	}
	return fields, nil
}
